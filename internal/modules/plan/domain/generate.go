package domain

import (
	"fmt"
	"math"
	"strconv"

	catalog "apnea/internal/modules/catalog/domain"
	"apnea/internal/platform/duration"
	apperrors "apnea/internal/platform/errors"
)

// BoxMode selects how cycle-counted box breathing is laid out. Both modes
// produce the same total duration.
type BoxMode string

const (
	BoxMerged   BoxMode = "merged"
	BoxDiscrete BoxMode = "discrete"
)

const boxCycleSeconds = 16

type Options struct {
	BoxMode BoxMode
}

type strategyFunc func(t catalog.Template, maxHold int, opts Options) []Phase

var strategies = map[catalog.Strategy]strategyFunc{
	catalog.StrategyProgressiveTable:    progressiveTable,
	catalog.StrategyO2Table:             o2Table,
	catalog.StrategyDecreasingRest:      decreasingRestTable,
	catalog.StrategyPercentageLadder:    percentageLadder,
	catalog.StrategyMaximalAttempts:     maximalAttempts,
	catalog.StrategyBreathControl:       breathControl,
	catalog.StrategyMentalTechnique:     mentalTechnique,
	catalog.StrategyRecoveryFlexibility: recoveryFlexibility,
	catalog.StrategyComfortableCO2:      comfortableCO2,
}

// Generate expands a built-in session type into its ordered phase list. The
// result depends only on the arguments.
func Generate(sessionType string, t catalog.Template, maxHold int, opts Options) ([]Phase, error) {
	build, ok := strategies[t.Strategy]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownSessionType, sessionType)
	}
	return finish(build(t, maxHold, opts), t.StretchConfirmation, t.TidalBreathingDuration, t.Cooldown()), nil
}

// finish wraps a body with the optional stretch gate and warm-up in front and
// the cool-down at the end.
func finish(body []Phase, stretch bool, tidal, cooldown int) []Phase {
	phases := make([]Phase, 0, len(body)+3)
	if stretch {
		phases = append(phases, Phase{
			Kind:        KindStretchConfirmation,
			Description: "Stretch Confirmation",
			Exercise:    ExerciseStretchConfirmation,
		})
	}
	if tidal > 0 {
		phases = append(phases, tidalBreathing(tidal))
	}
	phases = append(phases, body...)
	if cooldown > 0 && len(phases) > 0 {
		phases = append(phases, Phase{
			Kind:        KindCooldown,
			Duration:    cooldown,
			Description: fmt.Sprintf("Cool-down (%s)", duration.Format(cooldown)),
			Exercise:    ExerciseTidalBreathing,
		})
	}
	return phases
}

func tidalBreathing(seconds int) Phase {
	return Phase{
		Kind:        KindTidalBreathing,
		Duration:    seconds,
		Description: fmt.Sprintf("Tidal Breathing (%s)", duration.Format(seconds)),
		Exercise:    ExerciseTidalBreathing,
		Tags:        []Tag{TagTidalBreathing},
	}
}

func progressiveTable(t catalog.Template, _ int, _ Options) []Phase {
	label := t.PhaseLabel
	if label == "" {
		label = "CO₂"
	}
	count := or(t.HoldCount, 5)
	start := or(t.HoldStartDuration, 45)
	increase := or(t.HoldIncrease, 15)
	rest := or(t.RestDuration, 45)

	var phases []Phase
	for i := 0; i < count; i++ {
		hold := start + i*increase
		phases = append(phases, Phase{
			Kind:        KindHold,
			Duration:    hold,
			Description: fmt.Sprintf("%s Hold %d/%d (%s)", label, i+1, count, duration.Format(hold)),
			Exercise:    ExerciseCO2Hold,
		})
		if i < count-1 {
			phases = append(phases, Phase{
				Kind:        KindRest,
				Duration:    rest,
				Description: fmt.Sprintf("%s Rest %d/%d (%s)", label, i+1, count-1, duration.Format(rest)),
			})
		}
	}
	return phases
}

func o2Table(t catalog.Template, maxHold int, _ Options) []Phase {
	count := or(t.HoldCount, 5)
	startPct := orf(t.HoldStartPercentage, 60)
	incPct := orf(t.HoldIncreasePercentage, 10)
	capPct := orf(t.MaxHoldPercentage, 95)
	rest := or(t.RestDuration, 180)

	var phases []Phase
	for i := 0; i < count; i++ {
		pct := math.Min(startPct+float64(i)*incPct, capPct)
		hold := percentOf(maxHold, pct)
		phases = append(phases, Phase{
			Kind:        KindHold,
			Duration:    hold,
			Description: fmt.Sprintf("O₂ Hold %d/%d (%s%% of max - %s)", i+1, count, pct2s(pct), duration.Format(hold)),
			Percentage:  pct,
			Exercise:    ExerciseO2Hold,
			Tags:        []Tag{TagO2Tolerance},
		})
		if i < count-1 {
			phases = append(phases, Phase{
				Kind:        KindRest,
				Duration:    rest,
				Description: fmt.Sprintf("O₂ Rest %d/%d (%s)", i+1, count-1, duration.Format(rest)),
				Tags:        []Tag{TagO2Tolerance},
			})
		}
	}
	return phases
}

func decreasingRestTable(t catalog.Template, maxHold int, _ Options) []Phase {
	count := or(t.HoldCount, 5)
	pct := orf(t.HoldPercentage, 62.5)
	restStart := float64(or(t.RestStartDuration, 120))
	restDecrease := orf(t.RestDecrease, 22.5)
	minRest := float64(or(t.MinRestDuration, 30))
	hold := percentOf(maxHold, pct)

	var phases []Phase
	for i := 0; i < count; i++ {
		phases = append(phases, Phase{
			Kind:        KindHold,
			Duration:    hold,
			Description: fmt.Sprintf("Advanced CO₂ Hold %d/%d (%s)", i+1, count, duration.Format(hold)),
			Percentage:  pct,
			Exercise:    ExerciseCO2Hold,
			Tags:        []Tag{TagAdvancedCO2},
		})
		if i < count-1 {
			rest := int(math.Round(math.Max(minRest, restStart-float64(i)*restDecrease)))
			phases = append(phases, Phase{
				Kind:        KindRest,
				Duration:    rest,
				Description: fmt.Sprintf("Advanced CO₂ Rest %d/%d (%s)", i+1, count-1, duration.Format(rest)),
				Tags:        []Tag{TagAdvancedCO2},
			})
		}
	}
	return phases
}

func percentageLadder(t catalog.Template, maxHold int, _ Options) []Phase {
	percentages := t.MaxHoldPercentages
	if len(percentages) == 0 {
		percentages = []float64{25, 35, 50, 65, 100, 100}
	}

	var phases []Phase
	for _, pct := range percentages {
		if t.RoundBreathingDuration > 0 {
			phases = append(phases, tidalBreathing(t.RoundBreathingDuration))
		}
		if pct == 100 {
			phases = append(phases, Phase{
				Kind:        KindMaxHold,
				Description: "Max Hold",
				Percentage:  pct,
				Exercise:    ExerciseMaxHold,
				Tags:        []Tag{TagMaxHold},
			})
			continue
		}
		hold := percentOf(maxHold, pct)
		phases = append(phases, Phase{
			Kind:        KindHold,
			Duration:    hold,
			Description: fmt.Sprintf("%s%% of max (%s)", pct2s(pct), duration.Format(hold)),
			Percentage:  pct,
		})
	}

	sets := or(t.CO2ToleranceSets, 3)
	hold := or(t.CO2ToleranceHoldDuration, 45)
	rest := or(t.CO2ToleranceRestDuration, 45)
	for i := 0; i < sets; i++ {
		phases = append(phases, Phase{
			Kind:        KindHold,
			Duration:    hold,
			Description: fmt.Sprintf("CO₂ Tolerance Hold %d/%d", i+1, sets),
			Exercise:    ExerciseCO2ToleranceTraining,
			Tags:        []Tag{TagCO2Tolerance},
		})
		if i < sets-1 {
			phases = append(phases, Phase{
				Kind:        KindRest,
				Duration:    rest,
				Description: fmt.Sprintf("CO₂ Tolerance Rest %d/%d", i+1, sets-1),
				Exercise:    ExerciseCO2ToleranceTraining,
				Tags:        []Tag{TagCO2Tolerance},
			})
		}
	}
	return phases
}

func maximalAttempts(t catalog.Template, _ int, _ Options) []Phase {
	attempts := or(t.MaximalAttempts, 3)
	rest := or(t.RestDuration, 240)

	var phases []Phase
	for i := 0; i < attempts; i++ {
		phases = append(phases, Phase{
			Kind:        KindMaxHold,
			Description: fmt.Sprintf("Maximal Breath-Hold Attempt %d/%d", i+1, attempts),
			Exercise:    ExerciseMaxHold,
			Tags:        []Tag{TagMaximalHold},
		})
		if i < attempts-1 {
			phases = append(phases, Phase{
				Kind:        KindRest,
				Duration:    rest,
				Description: fmt.Sprintf("Rest %d/%d (%s)", i+1, attempts-1, duration.Format(rest)),
				Exercise:    ExerciseTidalBreathing,
				Tags:        []Tag{TagMaximalRest},
			})
		}
	}
	if t.RecoveryDuration > 0 {
		phases = append(phases, Phase{
			Kind:        KindRecovery,
			Duration:    t.RecoveryDuration,
			Description: fmt.Sprintf("Recovery (%s)", duration.Format(t.RecoveryDuration)),
			Exercise:    ExerciseTidalBreathing,
			Tags:        []Tag{TagMaximalRecovery},
		})
	}
	return phases
}

func breathControl(t catalog.Template, _ int, opts Options) []Phase {
	diaphragmatic := or(t.DiaphragmaticDuration, 600)
	nostril := or(t.AlternateNostrilDuration, 300)
	phases := []Phase{
		{
			Kind:        KindBreathing,
			Duration:    diaphragmatic,
			Description: fmt.Sprintf("Diaphragmatic Breathing (%s)", duration.Format(diaphragmatic)),
			Exercise:    ExerciseDiaphragmatic,
		},
		{
			Kind:        KindBreathing,
			Duration:    nostril,
			Description: fmt.Sprintf("Alternate Nostril Breathing (%s)", duration.Format(nostril)),
			Exercise:    ExerciseAlternateNostril,
		},
	}
	if t.BoxBreathingDuration > 0 {
		phases = append(phases, boxBreathing(t.BoxBreathingDuration))
	} else {
		phases = append(phases, boxCycles(or(t.BoxBreathingCycles, 8), opts.BoxMode)...)
	}
	if t.RecoveryDuration > 0 {
		phases = append(phases, Phase{
			Kind:        KindRecovery,
			Duration:    t.RecoveryDuration,
			Description: fmt.Sprintf("Recovery (%s)", duration.Format(t.RecoveryDuration)),
			Exercise:    ExerciseTidalBreathing,
		})
	}
	return phases
}

func boxBreathing(seconds int, tags ...Tag) Phase {
	return Phase{
		Kind:        KindBox,
		Duration:    seconds,
		Description: fmt.Sprintf("Box Breathing (%s)", duration.Format(seconds)),
		Exercise:    ExerciseBoxBreathing,
		Tags:        tags,
	}
}

func boxCycles(cycles int, mode BoxMode) []Phase {
	if mode != BoxDiscrete {
		return []Phase{{
			Kind:        KindBox,
			Duration:    cycles * boxCycleSeconds,
			Description: fmt.Sprintf("Box Breathing (%d cycles, 4-4-4-4)", cycles),
			Exercise:    ExerciseBoxBreathing,
		}}
	}
	phases := make([]Phase, 0, cycles)
	for i := 0; i < cycles; i++ {
		phases = append(phases, Phase{
			Kind:        KindBox,
			Duration:    boxCycleSeconds,
			Description: fmt.Sprintf("Box Breathing Cycle %d/%d (4-4-4-4)", i+1, cycles),
			Exercise:    ExerciseBoxBreathing,
		})
	}
	return phases
}

func mentalTechnique(t catalog.Template, maxHold int, _ Options) []Phase {
	visualization := or(t.VisualizationDuration, 900)
	mindfulness := or(t.MindfulnessDuration, 600)
	relaxation := or(t.ProgressiveRelaxationDuration, 600)
	phases := []Phase{
		{
			Kind:        KindVisualization,
			Duration:    visualization,
			Description: fmt.Sprintf("Guided Visualization (%s)", duration.Format(visualization)),
			Exercise:    ExerciseVisualization,
		},
		{
			Kind:        KindBreathing,
			Duration:    mindfulness,
			Description: fmt.Sprintf("Mindfulness Breathing (%s)", duration.Format(mindfulness)),
			Exercise:    ExerciseMindfulness,
		},
		{
			Kind:        KindBreathing,
			Duration:    relaxation,
			Description: fmt.Sprintf("Progressive Muscle Relaxation (%s)", duration.Format(relaxation)),
			Exercise:    ExerciseProgressiveRelaxation,
		},
	}

	count := or(t.MindfulHoldCount, 2)
	pct := orf(t.MindfulHoldPercentage, 60)
	recovery := or(t.RecoveryDuration, 180)
	hold := percentOf(maxHold, pct)
	for i := 0; i < count; i++ {
		phases = append(phases, Phase{
			Kind:        KindHold,
			Duration:    hold,
			Description: fmt.Sprintf("Mindful Hold %d/%d (%s)", i+1, count, duration.Format(hold)),
			Percentage:  pct,
			Exercise:    ExerciseMindfulness,
		})
		if i < count-1 {
			phases = append(phases, Phase{
				Kind:        KindRest,
				Duration:    recovery,
				Description: fmt.Sprintf("Recovery %d/%d (%s)", i+1, count-1, duration.Format(recovery)),
				Exercise:    ExerciseTidalBreathing,
			})
		}
	}
	return phases
}

func recoveryFlexibility(t catalog.Template, _ int, _ Options) []Phase {
	diaphragmCount := or(t.DiaphragmStretchCount, 3)
	diaphragmSeconds := or(t.DiaphragmStretchDuration, 30)
	sideCount := or(t.SideStretchCount, 2)
	sideSeconds := or(t.SideStretchDuration, 45)

	var phases []Phase
	for i := 0; i < diaphragmCount; i++ {
		phases = append(phases, Phase{
			Kind:        KindStretch,
			Duration:    diaphragmSeconds,
			Description: fmt.Sprintf("Diaphragm Stretch %d/%d (%s)", i+1, diaphragmCount, duration.Format(diaphragmSeconds)),
			Tags:        []Tag{TagRecovery},
		})
	}
	for i := 0; i < sideCount; i++ {
		phases = append(phases, Phase{
			Kind:        KindStretch,
			Duration:    sideSeconds,
			Description: fmt.Sprintf("Side Stretch %d/%d (%s)", i+1, sideCount, duration.Format(sideSeconds)),
			Tags:        []Tag{TagRecovery},
		})
	}
	return append(phases, boxBreathing(or(t.BoxBreathingDuration, 300), TagRecovery))
}

func comfortableCO2(t catalog.Template, maxHold int, _ Options) []Phase {
	diaphragmatic := or(t.DiaphragmaticDuration, 180)
	box := or(t.BoxBreathingDuration, 120)
	phases := []Phase{
		{
			Kind:        KindBreathing,
			Duration:    diaphragmatic,
			Description: fmt.Sprintf("Diaphragmatic Breathing (%s)", duration.Format(diaphragmatic)),
			Exercise:    ExerciseDiaphragmatic,
			Tags:        []Tag{TagComfortablePreparation},
		},
		boxBreathing(box, TagComfortablePreparation),
	}

	count := or(t.HoldCount, 7)
	pattern := t.RestPattern
	if len(pattern) == 0 {
		pattern = []int{120, 105, 90, 75, 60, 75, 90}
	}
	hold := percentOf(maxHold, orf(t.HoldPercentage, 40))
	for i := 0; i < count; i++ {
		phases = append(phases, Phase{
			Kind:        KindHold,
			Duration:    hold,
			Description: fmt.Sprintf("Comfortable Hold %d/%d (%s)", i+1, count, duration.Format(hold)),
			Percentage:  orf(t.HoldPercentage, 40),
			Exercise:    ExerciseComfortableCO2,
			Tags:        []Tag{TagComfortableCO2, TagStopAtContractions},
		})
		if i < count-1 {
			// a short pattern repeats its last entry
			rest := pattern[min(i, len(pattern)-1)]
			phases = append(phases, Phase{
				Kind:        KindRest,
				Duration:    rest,
				Description: fmt.Sprintf("Rest %d/%d (%s)", i+1, count-1, duration.Format(rest)),
				Tags:        []Tag{TagComfortableCO2},
			})
		}
	}

	return append(phases,
		Phase{
			Kind:        KindBreathing,
			Duration:    120,
			Description: "Natural Tidal Breathing (02:00)",
			Exercise:    ExerciseComfortableRecovery,
			Tags:        []Tag{TagComfortableRecovery},
		},
		Phase{
			Kind:        KindBreathing,
			Duration:    180,
			Description: "Slow-Exhale Breathing (03:00)",
			Exercise:    ExerciseComfortableRecovery,
			Tags:        []Tag{TagComfortableRecovery},
		},
	)
}

// percentOf rounds half away from zero, so 62.5% of 240 is 150. A timed
// hold never drops below one second; only the 100% ladder entry is open-ended.
func percentOf(maxHold int, pct float64) int {
	return max(int(math.Round(float64(maxHold)*pct/100)), 1)
}

func pct2s(pct float64) string {
	return strconv.FormatFloat(pct, 'f', -1, 64)
}

func or(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}

func orf(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}
