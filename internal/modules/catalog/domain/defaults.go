package domain

const (
	MaximalBreathHoldTraining = "Maximal Breath-Hold Training"
	MaxBreathHold             = "Max Breath-Hold"
	TraditionalCO2Tables      = "Traditional CO₂ Tables"
	CO2Tolerance              = "CO₂ Tolerance"
	AdvancedCO2Table          = "Advanced CO₂ Table"
	O2Tolerance               = "O₂ Tolerance"
	BreathControl             = "Breath Control"
	MentalTechnique           = "Mental + Technique"
	RecoveryFlexibility       = "Recovery & Flexibility"
	ComfortableCO2Training    = "Comfortable CO₂ Training"
)

// Names lists the built-in session types in catalog order.
var Names = []string{
	MaximalBreathHoldTraining,
	MaxBreathHold,
	TraditionalCO2Tables,
	CO2Tolerance,
	AdvancedCO2Table,
	O2Tolerance,
	BreathControl,
	MentalTechnique,
	RecoveryFlexibility,
	ComfortableCO2Training,
}

type Category struct {
	Name  string
	Types []string
}

var Categories = []Category{
	{Name: "CO₂ Training", Types: []string{ComfortableCO2Training, TraditionalCO2Tables, AdvancedCO2Table, CO2Tolerance}},
	{Name: "O₂ Training", Types: []string{O2Tolerance}},
	{Name: "Max Training", Types: []string{MaximalBreathHoldTraining, MaxBreathHold}},
	{Name: "Mental & Technical", Types: []string{BreathControl, MentalTechnique}},
	{Name: "Recovery & Flexibility", Types: []string{RecoveryFlexibility}},
}

// CategoryOf returns the category a built-in type belongs to.
func CategoryOf(name string) string {
	for _, c := range Categories {
		for _, t := range c.Types {
			if t == name {
				return c.Name
			}
		}
	}
	return ""
}

func builtins() map[string]Template {
	return map[string]Template{
		MaximalBreathHoldTraining: {
			Strategy:               StrategyMaximalAttempts,
			StretchConfirmation:    true,
			TidalBreathingDuration: 120,
			MaximalAttempts:        3,
			RestDuration:           240,
			RecoveryDuration:       300,
		},
		MaxBreathHold: {
			Strategy:                 StrategyPercentageLadder,
			StretchConfirmation:      true,
			MaxHoldPercentages:       []float64{25, 35, 50, 65, 100, 100},
			RoundBreathingDuration:   120,
			CO2ToleranceSets:         3,
			CO2ToleranceHoldDuration: 45,
			CO2ToleranceRestDuration: 45,
		},
		TraditionalCO2Tables: {
			Strategy:               StrategyProgressiveTable,
			StretchConfirmation:    true,
			TidalBreathingDuration: 120,
			PhaseLabel:             "Traditional CO₂",
			HoldCount:              5,
			HoldStartDuration:      45,
			HoldIncrease:           15,
			RestDuration:           45,
		},
		CO2Tolerance: {
			Strategy:               StrategyProgressiveTable,
			StretchConfirmation:    true,
			TidalBreathingDuration: 120,
			PhaseLabel:             "CO₂",
			HoldCount:              5,
			HoldStartDuration:      45,
			HoldIncrease:           15,
			RestDuration:           45,
		},
		AdvancedCO2Table: {
			Strategy:               StrategyDecreasingRest,
			StretchConfirmation:    true,
			TidalBreathingDuration: 120,
			HoldCount:              5,
			HoldPercentage:         62.5,
			RestStartDuration:      120,
			RestDecrease:           22.5,
			MinRestDuration:        30,
		},
		O2Tolerance: {
			Strategy:               StrategyO2Table,
			StretchConfirmation:    true,
			TidalBreathingDuration: 120,
			HoldCount:              5,
			HoldStartPercentage:    60,
			HoldIncreasePercentage: 10,
			MaxHoldPercentage:      95,
			RestDuration:           180,
		},
		BreathControl: {
			Strategy:                 StrategyBreathControl,
			TidalBreathingDuration:   120,
			SkipCooldown:             true,
			DiaphragmaticDuration:    600,
			AlternateNostrilDuration: 300,
			BoxBreathingCycles:       8,
			RecoveryDuration:         120,
		},
		MentalTechnique: {
			Strategy:                      StrategyMentalTechnique,
			TidalBreathingDuration:        120,
			VisualizationDuration:         900,
			MindfulnessDuration:           600,
			ProgressiveRelaxationDuration: 600,
			MindfulHoldCount:              2,
			MindfulHoldPercentage:         60,
			RecoveryDuration:              180,
		},
		RecoveryFlexibility: {
			Strategy:                 StrategyRecoveryFlexibility,
			TidalBreathingDuration:   120,
			DiaphragmStretchCount:    3,
			DiaphragmStretchDuration: 30,
			SideStretchCount:         2,
			SideStretchDuration:      45,
			BoxBreathingDuration:     300,
		},
		ComfortableCO2Training: {
			Strategy:              StrategyComfortableCO2,
			StretchConfirmation:   true,
			DiaphragmaticDuration: 180,
			BoxBreathingDuration:  120,
			HoldPercentage:        40,
			HoldCount:             7,
			RestPattern:           []int{120, 105, 90, 75, 60, 75, 90},
		},
	}
}
