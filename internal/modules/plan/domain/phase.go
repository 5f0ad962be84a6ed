package domain

import "slices"

type Kind string

const (
	KindHold                Kind = "hold"
	KindRest                Kind = "rest"
	KindBreathing           Kind = "breathing"
	KindBox                 Kind = "box"
	KindVisualization       Kind = "visualization"
	KindRecovery            Kind = "recovery"
	KindWarmup              Kind = "warmup"
	KindStretch             Kind = "stretch"
	KindCooldown            Kind = "cooldown"
	KindTidalBreathing      Kind = "tidal_breathing"
	KindMaxHold             Kind = "max_hold"
	KindStretchConfirmation Kind = "stretch_confirmation"
)

var kinds = []Kind{
	KindHold, KindRest, KindBreathing, KindBox, KindVisualization, KindRecovery,
	KindWarmup, KindStretch, KindCooldown, KindTidalBreathing, KindMaxHold, KindStretchConfirmation,
}

func (k Kind) Valid() bool {
	return slices.Contains(kinds, k)
}

// Tag marks the training context of a phase. Tags select guidance and
// styling; they never change how the runtime advances.
type Tag string

const (
	TagMaxHold                Tag = "max_hold"
	TagMaximalHold            Tag = "maximal_hold"
	TagMaximalRest            Tag = "maximal_rest"
	TagMaximalRecovery        Tag = "maximal_recovery"
	TagTidalBreathing         Tag = "tidal_breathing"
	TagCO2Tolerance           Tag = "co2_tolerance"
	TagO2Tolerance            Tag = "o2_tolerance"
	TagAdvancedCO2            Tag = "advanced_co2"
	TagComfortableCO2         Tag = "comfortable_co2"
	TagComfortablePreparation Tag = "comfortable_preparation"
	TagComfortableRecovery    Tag = "comfortable_recovery"
	TagStopAtContractions     Tag = "stop_at_contractions"
	TagRecovery               Tag = "recovery"
)

// Phase is one timed or gated step of a session. A zero Duration means the
// phase only ends on an explicit confirmation.
type Phase struct {
	Kind        Kind     `json:"kind"`
	Duration    int      `json:"duration"`
	Description string   `json:"description"`
	Percentage  float64  `json:"percentage,omitempty"`
	Exercise    Exercise `json:"exercise,omitempty"`
	Tags        []Tag    `json:"tags,omitempty"`
}

func (p Phase) Indefinite() bool {
	return p.Duration == 0
}

func (p Phase) Has(tag Tag) bool {
	return slices.Contains(p.Tags, tag)
}

// IsMaxHold reports an indefinite max-effort hold, the only phase
// CompleteMaxHold can close.
func (p Phase) IsMaxHold() bool {
	return p.Indefinite() && (p.Kind == KindMaxHold || p.Has(TagMaxHold) || p.Has(TagMaximalHold))
}

func (p Phase) IsStretchConfirmation() bool {
	return p.Kind == KindStretchConfirmation
}

func (p Phase) Guidance() string {
	return GuidanceFor(p.Exercise)
}
