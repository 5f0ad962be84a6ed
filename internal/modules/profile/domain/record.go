package domain

import (
	"fmt"

	apperrors "apnea/internal/platform/errors"
)

// Record is one calendar day's training entry.
type Record struct {
	Date          string `json:"date"`
	Day           string `json:"day"`
	Focus         string `json:"focus"`
	SessionType   string `json:"sessionType"`
	Details       string `json:"details"`
	Notes         string `json:"notes"`
	ActualMaxHold *int   `json:"actualMaxHold"`
	Completed     bool   `json:"completed"`
	SessionTime   int    `json:"sessionTime,omitempty"`
}

// RecordPatch holds optional edits; nil fields are left alone.
type RecordPatch struct {
	ActualMaxHold *int
	ClearMaxHold  bool
	Notes         *string
	Completed     *bool
}

// LatestMaxHold returns the most recent positive recorded max hold.
func LatestMaxHold(records []Record) (int, bool) {
	latest, found := "", 0
	for _, r := range records {
		if r.ActualMaxHold == nil || *r.ActualMaxHold <= 0 {
			continue
		}
		if latest == "" || r.Date > latest {
			latest, found = r.Date, *r.ActualMaxHold
		}
	}
	return found, latest != ""
}

func (p *Profile) Record(date string) (*Record, bool) {
	for i := range p.Sessions {
		if p.Sessions[i].Date == date {
			return &p.Sessions[i], true
		}
	}
	return nil, false
}

// UpdateRecord applies patch to the record for date. It reports whether the
// profile's max hold was raised by the new entry.
func (p *Profile) UpdateRecord(date string, patch RecordPatch) (Record, bool, error) {
	rec, ok := p.Record(date)
	if !ok {
		return Record{}, false, fmt.Errorf("%w: no session on %s", apperrors.ErrNotFound, date)
	}
	if patch.ActualMaxHold != nil && *patch.ActualMaxHold <= 0 {
		return Record{}, false, fmt.Errorf("%w: max hold must be positive", apperrors.ErrInvalidInput)
	}
	switch {
	case patch.ClearMaxHold:
		rec.ActualMaxHold = nil
	case patch.ActualMaxHold != nil:
		v := *patch.ActualMaxHold
		rec.ActualMaxHold = &v
	}
	if patch.Notes != nil {
		rec.Notes = *patch.Notes
	}
	if patch.Completed != nil {
		rec.Completed = *patch.Completed
	}
	updated := *rec
	return updated, patch.ActualMaxHold != nil && p.promoteMaxHold(), nil
}

func (p *Profile) ToggleComplete(date string) (Record, error) {
	rec, ok := p.Record(date)
	if !ok {
		return Record{}, fmt.Errorf("%w: no session on %s", apperrors.ErrNotFound, date)
	}
	rec.Completed = !rec.Completed
	return *rec, nil
}

// RecordSessionResult stores a finished run on its day, creating the record
// when the day was not scheduled. bestHold raises ActualMaxHold only upwards.
func (p *Profile) RecordSessionResult(date, day, focus string, sessionTime, bestHold int) (Record, bool) {
	rec, ok := p.Record(date)
	if !ok {
		p.Sessions = append(p.Sessions, Record{
			Date:        date,
			Day:         day,
			Focus:       focus,
			SessionType: focus,
			Details:     SessionDetails(focus, p.CurrentMaxHold),
		})
		p.sortSessions()
		rec, _ = p.Record(date)
	}
	rec.SessionTime = sessionTime
	rec.Completed = true
	raised := false
	if bestHold > 0 && (rec.ActualMaxHold == nil || *rec.ActualMaxHold < bestHold) {
		v := bestHold
		rec.ActualMaxHold = &v
		raised = p.promoteMaxHold()
	}
	// promoteMaxHold may have refreshed details; re-read the record.
	rec, _ = p.Record(date)
	return *rec, raised
}

func (p *Profile) promoteMaxHold() bool {
	latest, ok := LatestMaxHold(p.Sessions)
	if !ok {
		return false
	}
	if p.CurrentMaxHold != nil && latest <= *p.CurrentMaxHold {
		return false
	}
	p.CurrentMaxHold = &latest
	p.RefreshDetails()
	return true
}

// ExportData is the portable subset written by export and read by import.
type ExportData struct {
	Sessions       []Record `json:"sessions"`
	CurrentMaxHold *int     `json:"currentMaxHold"`
}

func (p *Profile) Export() ExportData {
	return ExportData{Sessions: append([]Record(nil), p.Sessions...), CurrentMaxHold: p.CurrentMaxHold}
}

// Import replaces the profile's records and max hold.
func (p *Profile) Import(data ExportData) {
	if data.Sessions == nil {
		data.Sessions = []Record{}
	}
	p.Sessions = data.Sessions
	p.CurrentMaxHold = data.CurrentMaxHold
	p.sortSessions()
}
