package dto

import (
	"time"

	plan "apnea/internal/modules/plan/domain"
)

type ProfileOutput struct {
	ID             string
	Name           string
	Created        time.Time
	Current        bool
	CurrentMaxHold *int
	// MaxHold is CurrentMaxHold or, when unset, the latest recorded hold.
	MaxHold        int
	HasMaxHold     bool
	Sessions       int
	Completed      int
	CustomSessions []string
	WeeklySchedule map[string]string
}

type CreateProfileInput struct {
	Name    string
	MaxHold *int
}

type RecordOutput struct {
	ProfileID     string
	Date          string
	Day           string
	Focus         string
	SessionType   string
	Details       string
	Notes         string
	ActualMaxHold *int
	Completed     bool
	SessionTime   int
}

type ListRecordsInput struct {
	// From and To are inclusive YYYY-MM-DD bounds; empty means open.
	From string
	To   string
}

type UpdateRecordInput struct {
	Date          string
	ActualMaxHold *int
	ClearMaxHold  bool
	Notes         *string
	Completed     *bool
}

type UpdateRecordOutput struct {
	Record       RecordOutput
	PersonalBest bool
	MaxHold      *int
}

type SessionResultInput struct {
	// Date defaults to today.
	Date        string
	Focus       string
	SessionTime int
	BestHold    int
}

type GenerateScheduleInput struct {
	From string
	To   string
}

type ScheduleOutput struct {
	Added   int
	Records []RecordOutput
}

type WeeklyScheduleInput struct {
	Weekday     string
	SessionType string
}

type CustomSessionInput struct {
	Definition plan.CustomSessionDefinition
}

type CustomSessionOutput struct {
	Definition plan.CustomSessionDefinition
}

type ExchangeInput struct {
	Path string
}

type ExchangeOutput struct {
	Path           string
	Sessions       int
	CurrentMaxHold *int
}
