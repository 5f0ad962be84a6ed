package domain

import (
	"fmt"
	"slices"

	apperrors "apnea/internal/platform/errors"
)

// Strategy names the generation algorithm behind a session type. It is fixed
// per built-in type; editing a template never changes it.
type Strategy string

const (
	StrategyProgressiveTable    Strategy = "progressive_table"
	StrategyO2Table             Strategy = "o2_table"
	StrategyDecreasingRest      Strategy = "decreasing_rest"
	StrategyPercentageLadder    Strategy = "percentage_ladder"
	StrategyMaximalAttempts     Strategy = "maximal_attempts"
	StrategyBreathControl       Strategy = "breath_control"
	StrategyMentalTechnique     Strategy = "mental_technique"
	StrategyRecoveryFlexibility Strategy = "recovery_flexibility"
	StrategyComfortableCO2      Strategy = "comfortable_co2"
)

// DefaultCooldownDuration is the closing cool-down length in seconds.
const DefaultCooldownDuration = 180

// Template is the parameter bag of one session type. Only the fields read by
// its Strategy matter; the rest stay zero.
type Template struct {
	Strategy Strategy `yaml:"strategy"`

	// shared post-processing
	StretchConfirmation    bool `yaml:"stretch_confirmation"`
	TidalBreathingDuration int  `yaml:"tidal_breathing_duration,omitempty"`
	SkipCooldown           bool `yaml:"skip_cooldown,omitempty"`
	CooldownDuration       int  `yaml:"cooldown_duration,omitempty"`

	// progressive and percentage tables
	PhaseLabel             string  `yaml:"phase_label,omitempty"`
	HoldCount              int     `yaml:"hold_count,omitempty"`
	HoldStartDuration      int     `yaml:"hold_start_duration,omitempty"`
	HoldIncrease           int     `yaml:"hold_increase,omitempty"`
	RestDuration           int     `yaml:"rest_duration,omitempty"`
	HoldPercentage         float64 `yaml:"hold_percentage,omitempty"`
	HoldStartPercentage    float64 `yaml:"hold_start_percentage,omitempty"`
	HoldIncreasePercentage float64 `yaml:"hold_increase_percentage,omitempty"`
	MaxHoldPercentage      float64 `yaml:"max_hold_percentage,omitempty"`
	RestStartDuration      int     `yaml:"rest_start_duration,omitempty"`
	RestDecrease           float64 `yaml:"rest_decrease,omitempty"`
	MinRestDuration        int     `yaml:"min_rest_duration,omitempty"`
	RestPattern            []int   `yaml:"rest_pattern,omitempty,flow"`

	// max breath-hold ladder
	MaxHoldPercentages       []float64 `yaml:"max_hold_percentages,omitempty,flow"`
	RoundBreathingDuration   int       `yaml:"round_breathing_duration,omitempty"`
	CO2ToleranceSets         int       `yaml:"co2_tolerance_sets,omitempty"`
	CO2ToleranceHoldDuration int       `yaml:"co2_tolerance_hold_duration,omitempty"`
	CO2ToleranceRestDuration int       `yaml:"co2_tolerance_rest_duration,omitempty"`

	// maximal attempts
	MaximalAttempts  int `yaml:"maximal_attempts,omitempty"`
	RecoveryDuration int `yaml:"recovery_duration,omitempty"`

	// technique sessions
	DiaphragmaticDuration         int     `yaml:"diaphragmatic_duration,omitempty"`
	AlternateNostrilDuration      int     `yaml:"alternate_nostril_duration,omitempty"`
	BoxBreathingCycles            int     `yaml:"box_breathing_cycles,omitempty"`
	BoxBreathingDuration          int     `yaml:"box_breathing_duration,omitempty"`
	VisualizationDuration         int     `yaml:"visualization_duration,omitempty"`
	MindfulnessDuration           int     `yaml:"mindfulness_duration,omitempty"`
	ProgressiveRelaxationDuration int     `yaml:"progressive_relaxation_duration,omitempty"`
	MindfulHoldCount              int     `yaml:"mindful_hold_count,omitempty"`
	MindfulHoldPercentage         float64 `yaml:"mindful_hold_percentage,omitempty"`
	DiaphragmStretchCount         int     `yaml:"diaphragm_stretch_count,omitempty"`
	DiaphragmStretchDuration      int     `yaml:"diaphragm_stretch_duration,omitempty"`
	SideStretchCount              int     `yaml:"side_stretch_count,omitempty"`
	SideStretchDuration           int     `yaml:"side_stretch_duration,omitempty"`
}

// Clone returns a copy that shares no slices with t.
func (t Template) Clone() Template {
	t.RestPattern = slices.Clone(t.RestPattern)
	t.MaxHoldPercentages = slices.Clone(t.MaxHoldPercentages)
	return t
}

// Cooldown reports the cool-down length, or 0 when the template opts out.
func (t Template) Cooldown() int {
	if t.SkipCooldown {
		return 0
	}
	if t.CooldownDuration > 0 {
		return t.CooldownDuration
	}
	return DefaultCooldownDuration
}

// Validate rejects counts or durations below zero and percentages outside
// 0..100. Zero still means "use the built-in default".
func (t Template) Validate() error {
	counts := []struct {
		field string
		value int
	}{
		{"tidal_breathing_duration", t.TidalBreathingDuration},
		{"cooldown_duration", t.CooldownDuration},
		{"hold_count", t.HoldCount},
		{"hold_start_duration", t.HoldStartDuration},
		{"hold_increase", t.HoldIncrease},
		{"rest_duration", t.RestDuration},
		{"rest_start_duration", t.RestStartDuration},
		{"min_rest_duration", t.MinRestDuration},
		{"round_breathing_duration", t.RoundBreathingDuration},
		{"co2_tolerance_sets", t.CO2ToleranceSets},
		{"co2_tolerance_hold_duration", t.CO2ToleranceHoldDuration},
		{"co2_tolerance_rest_duration", t.CO2ToleranceRestDuration},
		{"maximal_attempts", t.MaximalAttempts},
		{"recovery_duration", t.RecoveryDuration},
		{"diaphragmatic_duration", t.DiaphragmaticDuration},
		{"alternate_nostril_duration", t.AlternateNostrilDuration},
		{"box_breathing_cycles", t.BoxBreathingCycles},
		{"box_breathing_duration", t.BoxBreathingDuration},
		{"visualization_duration", t.VisualizationDuration},
		{"mindfulness_duration", t.MindfulnessDuration},
		{"progressive_relaxation_duration", t.ProgressiveRelaxationDuration},
		{"mindful_hold_count", t.MindfulHoldCount},
		{"diaphragm_stretch_count", t.DiaphragmStretchCount},
		{"diaphragm_stretch_duration", t.DiaphragmStretchDuration},
		{"side_stretch_count", t.SideStretchCount},
		{"side_stretch_duration", t.SideStretchDuration},
	}
	for _, c := range counts {
		if c.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %d", apperrors.ErrInvalidInput, c.field, c.value)
		}
	}
	for i, rest := range t.RestPattern {
		if rest <= 0 {
			return fmt.Errorf("%w: rest_pattern[%d] must be positive, got %d", apperrors.ErrInvalidInput, i, rest)
		}
	}
	if t.RestDecrease < 0 {
		return fmt.Errorf("%w: rest_decrease must not be negative, got %g", apperrors.ErrInvalidInput, t.RestDecrease)
	}

	type percent struct {
		field string
		value float64
	}
	percentages := []percent{
		{"hold_percentage", t.HoldPercentage},
		{"hold_start_percentage", t.HoldStartPercentage},
		{"hold_increase_percentage", t.HoldIncreasePercentage},
		{"max_hold_percentage", t.MaxHoldPercentage},
		{"mindful_hold_percentage", t.MindfulHoldPercentage},
	}
	for i, pct := range t.MaxHoldPercentages {
		percentages = append(percentages, percent{fmt.Sprintf("max_hold_percentages[%d]", i), pct})
	}
	for _, p := range percentages {
		if p.value < 0 || p.value > 100 {
			return fmt.Errorf("%w: %s must be within 0..100, got %g", apperrors.ErrInvalidInput, p.field, p.value)
		}
	}
	return nil
}
