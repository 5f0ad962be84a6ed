package domain

import (
	"fmt"
	"math"
	"strings"

	catalog "apnea/internal/modules/catalog/domain"
	apperrors "apnea/internal/platform/errors"
)

type DurationType string

const (
	DurationFixed       DurationType = "fixed"
	DurationProgressive DurationType = "progressive"
	DurationMaxHold     DurationType = "maxHold"
)

// PhaseSpec is one user-authored step of a custom session.
type PhaseSpec struct {
	Kind              Kind         `json:"type"`
	DurationType      DurationType `json:"durationType"`
	Duration          int          `json:"duration"`
	ProgressiveChange int          `json:"progressiveChange,omitempty"`
	MaxHoldPercentage float64      `json:"maxHoldPercentage,omitempty"`
	Description       string       `json:"description,omitempty"`
}

// CustomSessionDefinition is a user-authored session stored on a profile.
type CustomSessionDefinition struct {
	Name                   string      `json:"name"`
	StretchConfirmation    bool        `json:"stretchConfirmation"`
	TidalBreathingDuration int         `json:"tidalBreathingDuration,omitempty"`
	AppendCooldown         bool        `json:"appendCooldown,omitempty"`
	CooldownDuration       int         `json:"cooldownDuration,omitempty"`
	Phases                 []PhaseSpec `json:"phases"`
}

func (d CustomSessionDefinition) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: custom session name is required", apperrors.ErrInvalidInput)
	}
	if len(d.Phases) == 0 {
		return fmt.Errorf("%w: custom session %q has no phases", apperrors.ErrInvalidInput, d.Name)
	}
	if d.TidalBreathingDuration < 0 || d.CooldownDuration < 0 {
		return fmt.Errorf("%w: negative duration in %q", apperrors.ErrInvalidInput, d.Name)
	}
	for i, spec := range d.Phases {
		if err := spec.validate(); err != nil {
			return fmt.Errorf("phase %d of %q: %w", i+1, d.Name, err)
		}
	}
	return nil
}

func (s PhaseSpec) validate() error {
	if !s.Kind.Valid() {
		return fmt.Errorf("%w: unknown phase type %q", apperrors.ErrInvalidInput, s.Kind)
	}
	switch s.DurationType {
	case DurationFixed, "":
		if s.Duration < 0 {
			return fmt.Errorf("%w: negative duration", apperrors.ErrInvalidInput)
		}
		if s.Duration == 0 && !gated(s.Kind) {
			return fmt.Errorf("%w: only stretch confirmation and max hold phases may be open-ended", apperrors.ErrInvalidInput)
		}
	case DurationProgressive:
		if s.Duration < 0 {
			return fmt.Errorf("%w: negative duration", apperrors.ErrInvalidInput)
		}
	case DurationMaxHold:
		if s.MaxHoldPercentage <= 0 || s.MaxHoldPercentage > 100 {
			return fmt.Errorf("%w: max hold percentage must be within (0, 100]", apperrors.ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown duration type %q", apperrors.ErrInvalidInput, s.DurationType)
	}
	return nil
}

func gated(k Kind) bool {
	return k == KindStretchConfirmation || k == KindMaxHold
}

// Resolve expands a custom definition into concrete phases.
//
// A progressive step adds ProgressiveChange to the most recent resolved step
// of the same kind; the first one of its kind uses Duration as is. The result
// never drops below one second.
func Resolve(def CustomSessionDefinition, maxHold int) ([]Phase, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	body := make([]Phase, 0, len(def.Phases))
	last := map[Kind]int{}
	for _, spec := range def.Phases {
		seconds := spec.Duration
		var pct float64
		switch spec.DurationType {
		case DurationProgressive:
			if prev, ok := last[spec.Kind]; ok {
				seconds = prev + spec.ProgressiveChange
			}
			seconds = max(seconds, 1)
		case DurationMaxHold:
			if maxHold <= 0 {
				return nil, fmt.Errorf("%w: %q scales phases by max hold", apperrors.ErrMaxHoldRequired, def.Name)
			}
			pct = spec.MaxHoldPercentage
			seconds = max(int(math.Round(pct/100*float64(maxHold))), 1)
		}
		last[spec.Kind] = seconds
		body = append(body, Phase{
			Kind:        spec.Kind,
			Duration:    seconds,
			Description: customDescription(spec),
			Percentage:  pct,
			Exercise:    exerciseForKind(spec.Kind),
		})
	}

	cooldown := 0
	if def.AppendCooldown {
		cooldown = def.CooldownDuration
		if cooldown == 0 {
			cooldown = catalog.DefaultCooldownDuration
		}
	}
	return finish(body, def.StretchConfirmation, def.TidalBreathingDuration, cooldown), nil
}

func customDescription(spec PhaseSpec) string {
	if d := strings.TrimSpace(spec.Description); d != "" {
		return d
	}
	label := strings.ReplaceAll(string(spec.Kind), "_", " ")
	return strings.ToUpper(label[:1]) + label[1:] + " Phase"
}

func exerciseForKind(k Kind) Exercise {
	switch k {
	case KindTidalBreathing, KindCooldown, KindRecovery:
		return ExerciseTidalBreathing
	case KindBox:
		return ExerciseBoxBreathing
	case KindVisualization:
		return ExerciseVisualization
	case KindMaxHold:
		return ExerciseMaxHold
	case KindStretchConfirmation:
		return ExerciseStretchConfirmation
	case KindHold:
		return ExerciseCO2Hold
	default:
		return ""
	}
}
