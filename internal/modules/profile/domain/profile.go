package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	catalog "apnea/internal/modules/catalog/domain"
	plan "apnea/internal/modules/plan/domain"
	apperrors "apnea/internal/platform/errors"
)

const (
	DefaultProfileID   = "default"
	DefaultProfileName = "Default Profile"
	DefaultMaxHold     = 240
	ScheduleHorizon    = 30
)

// Store is the whole persisted document.
type Store struct {
	Profiles       map[string]*Profile `json:"profiles"`
	CurrentProfile string              `json:"currentProfile"`
	LastUpdated    time.Time           `json:"lastUpdated"`
}

type Profile struct {
	Name           string                                  `json:"name"`
	Created        time.Time                               `json:"created"`
	Sessions       []Record                                `json:"sessions"`
	CurrentMaxHold *int                                    `json:"currentMaxHold"`
	CustomSessions map[string]plan.CustomSessionDefinition `json:"customSessions"`
	WeeklySchedule map[string]string                       `json:"weeklySchedule"`
}

// DefaultWeeklySchedule seeds the default profile's week plan.
func DefaultWeeklySchedule() map[string]string {
	return map[string]string{
		"monday":    catalog.MaximalBreathHoldTraining,
		"tuesday":   catalog.BreathControl,
		"wednesday": catalog.O2Tolerance,
		"thursday":  catalog.MentalTechnique,
		"friday":    catalog.MaxBreathHold,
		"saturday":  catalog.RecoveryFlexibility,
		"sunday":    catalog.TraditionalCO2Tables,
	}
}

// NewDefaultStore builds the first-run document: one profile with a month of
// scheduled sessions and a 4:00 max hold.
func NewDefaultStore(now time.Time) Store {
	maxHold := DefaultMaxHold
	today := DateOf(now)
	weekly := DefaultWeeklySchedule()
	return Store{
		Profiles: map[string]*Profile{
			DefaultProfileID: {
				Name:           DefaultProfileName,
				Created:        now,
				Sessions:       GenerateSchedule(today, today.AddDate(0, 0, ScheduleHorizon), &maxHold, weekly),
				CurrentMaxHold: &maxHold,
				CustomSessions: map[string]plan.CustomSessionDefinition{},
				WeeklySchedule: weekly,
			},
		},
		CurrentProfile: DefaultProfileID,
		LastUpdated:    now,
	}
}

// Normalize repairs documents written by older or hand-edited files.
func (s *Store) Normalize(now time.Time) {
	if s.Profiles == nil {
		s.Profiles = map[string]*Profile{}
	}
	if _, ok := s.Profiles[DefaultProfileID]; !ok {
		def := NewDefaultStore(now)
		s.Profiles[DefaultProfileID] = def.Profiles[DefaultProfileID]
	}
	for _, p := range s.Profiles {
		if p.Sessions == nil {
			p.Sessions = []Record{}
		}
		if p.CustomSessions == nil {
			p.CustomSessions = map[string]plan.CustomSessionDefinition{}
		}
		if p.WeeklySchedule == nil {
			p.WeeklySchedule = map[string]string{}
		}
		p.sortSessions()
	}
	if _, ok := s.Profiles[s.CurrentProfile]; !ok {
		s.CurrentProfile = DefaultProfileID
	}
}

func (s *Store) Current() *Profile {
	return s.Profiles[s.CurrentProfile]
}

// Lookup finds a profile by id or, failing that, by case-insensitive name.
func (s *Store) Lookup(ref string) (string, *Profile, bool) {
	if p, ok := s.Profiles[ref]; ok {
		return ref, p, true
	}
	for _, id := range s.IDs() {
		if strings.EqualFold(s.Profiles[id].Name, ref) {
			return id, s.Profiles[id], true
		}
	}
	return "", nil, false
}

// IDs lists profile ids with the default profile first.
func (s *Store) IDs() []string {
	ids := make([]string, 0, len(s.Profiles))
	for id := range s.Profiles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if ids[i] == DefaultProfileID || ids[j] == DefaultProfileID {
			return ids[i] == DefaultProfileID
		}
		return s.Profiles[ids[i]].Created.Before(s.Profiles[ids[j]].Created)
	})
	return ids
}

func (s *Store) AddProfile(id, name string, now time.Time, maxHold *int) (*Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: profile name is required", apperrors.ErrInvalidInput)
	}
	if _, _, ok := s.Lookup(name); ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrProfileExists, name)
	}
	if maxHold != nil && *maxHold <= 0 {
		maxHold = nil
	}
	today := DateOf(now)
	p := &Profile{
		Name:           name,
		Created:        now,
		Sessions:       GenerateSchedule(today, today.AddDate(0, 0, ScheduleHorizon), maxHold, nil),
		CurrentMaxHold: maxHold,
		CustomSessions: map[string]plan.CustomSessionDefinition{},
		WeeklySchedule: map[string]string{},
	}
	s.Profiles[id] = p
	s.CurrentProfile = id
	return p, nil
}

// RemoveProfile deletes a profile. The default profile stays; removing the
// current profile switches back to it.
func (s *Store) RemoveProfile(ref string) error {
	id, _, ok := s.Lookup(ref)
	if !ok {
		return fmt.Errorf("%w: profile %s", apperrors.ErrNotFound, ref)
	}
	if id == DefaultProfileID {
		return apperrors.ErrDefaultProfile
	}
	delete(s.Profiles, id)
	if s.CurrentProfile == id {
		s.CurrentProfile = DefaultProfileID
	}
	return nil
}

// MaxHold returns the profile's max hold, falling back to the latest recorded
// one.
func (p *Profile) MaxHold() (int, bool) {
	if p.CurrentMaxHold != nil && *p.CurrentMaxHold > 0 {
		return *p.CurrentMaxHold, true
	}
	return LatestMaxHold(p.Sessions)
}

func (p *Profile) SetMaxHold(seconds int) error {
	if seconds <= 0 {
		return fmt.Errorf("%w: max hold must be positive", apperrors.ErrInvalidInput)
	}
	p.CurrentMaxHold = &seconds
	p.RefreshDetails()
	return nil
}

// RefreshDetails rewrites the per-day summaries after the max hold changed.
func (p *Profile) RefreshDetails() {
	for i := range p.Sessions {
		p.Sessions[i].Details = SessionDetails(p.Sessions[i].Focus, p.CurrentMaxHold)
	}
}

func (p *Profile) SaveCustomSession(def plan.CustomSessionDefinition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	def.Name = strings.TrimSpace(def.Name)
	p.CustomSessions[def.Name] = def
	return nil
}

func (p *Profile) DeleteCustomSession(name string) error {
	if _, ok := p.CustomSessions[name]; !ok {
		return fmt.Errorf("%w: custom session %s", apperrors.ErrNotFound, name)
	}
	delete(p.CustomSessions, name)
	return nil
}

// CustomSessionNames returns names in alphabetical order.
func (p *Profile) CustomSessionNames() []string {
	names := make([]string, 0, len(p.CustomSessions))
	for name := range p.CustomSessions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *Profile) sortSessions() {
	sort.SliceStable(p.Sessions, func(i, j int) bool { return p.Sessions[i].Date < p.Sessions[j].Date })
}
