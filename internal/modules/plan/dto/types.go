package dto

import "apnea/internal/modules/plan/domain"

type PreviewInput struct {
	SessionType string
	// MaxHold overrides the profile's current max hold when non-nil.
	MaxHold *int
}

type PlanOutput struct {
	Plan           domain.Plan
	MaxHoldMissing bool
	TotalSeconds   int
	Indefinite     int
}
