package domain

import "time"

const SchemaVersion = 1

// JournalEntry is the markdown note written for every session that trained
// for at least one second.
type JournalEntry struct {
	ID              string
	Date            string
	Focus           string
	Custom          bool
	TotalTime       int
	TotalPhases     int
	CompletedPhases int
	MaxHoldUsed     int
	MaxHoldTimes    []int
	EndedEarly      bool
	PersonalBest    bool
	StartedAt       time.Time
	EndedAt         time.Time
	Notes           string
	Path            string
}

func NewJournalEntry(id, date string, s Summary) JournalEntry {
	return JournalEntry{
		ID:              id,
		Date:            date,
		Focus:           s.Focus,
		Custom:          s.Custom,
		TotalTime:       s.TotalTime,
		TotalPhases:     s.TotalPhases,
		CompletedPhases: s.CompletedPhases,
		MaxHoldUsed:     s.MaxHoldUsed,
		MaxHoldTimes:    append([]int(nil), s.MaxHoldTimes...),
		EndedEarly:      s.EndedEarly,
		StartedAt:       s.StartedAt,
		EndedAt:         s.EndedAt,
	}
}

func (e JournalEntry) BestHold() int {
	best := 0
	for _, v := range e.MaxHoldTimes {
		best = max(best, v)
	}
	return best
}
