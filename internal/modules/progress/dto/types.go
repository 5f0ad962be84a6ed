package dto

import "apnea/internal/modules/progress/domain"

type StatsInput struct {
	// ProfileID defaults to the current profile.
	ProfileID string
}

type StatsOutput struct {
	Profile string
	Stats   domain.Stats
}
