package dto

import (
	"time"

	plan "apnea/internal/modules/plan/domain"
	"apnea/internal/modules/session/domain"
)

type PrepareInput struct {
	// SessionType may be empty to run the focus scheduled for Date.
	SessionType string
	Date        string
	MaxHold     *int
}

type PrepareOutput struct {
	Plan           plan.Plan
	Date           string
	MaxHoldMissing bool
}

type FinishInput struct {
	Date    string
	Summary domain.Summary
	Notes   string
}

type FinishOutput struct {
	EntryID      string
	Path         string
	Recorded     bool
	PersonalBest bool
	BestHold     int
}

type JournalInput struct {
	Limit int
}

type JournalOutput struct {
	ID              string
	Date            string
	Focus           string
	TotalTime       int
	CompletedPhases int
	TotalPhases     int
	BestHold        int
	EndedEarly      bool
	PersonalBest    bool
	StartedAt       time.Time
	Path            string
}

// RunInput drives Plan headlessly. Every value on Ticks is one second.
type RunInput struct {
	Plan     plan.Plan
	Date     string
	Strict   bool
	Ticks    <-chan time.Time
	Commands <-chan domain.Command
	Observer func(domain.State)
}

type RunOutput struct {
	Summary   domain.Summary
	Completed bool
	Finish    FinishOutput
}
