package domain

// Exercise identifies the technique practised during a phase.
type Exercise string

const (
	ExerciseTidalBreathing         Exercise = "tidal_breathing"
	ExerciseDiaphragmatic          Exercise = "diaphragmatic_breathing"
	ExerciseAlternateNostril       Exercise = "alternate_nostril"
	ExerciseBoxBreathing           Exercise = "box_breathing"
	ExerciseVisualization          Exercise = "visualization"
	ExerciseMindfulness            Exercise = "mindfulness"
	ExerciseProgressiveRelaxation  Exercise = "progressive_relaxation"
	ExerciseCO2Hold                Exercise = "co2_hold"
	ExerciseO2Hold                 Exercise = "o2_hold"
	ExerciseMaxHold                Exercise = "max_hold"
	ExerciseStretchConfirmation    Exercise = "stretch_confirmation"
	ExerciseCO2ToleranceTraining   Exercise = "co2_tolerance_training"
	ExerciseComfortableCO2         Exercise = "comfortable_co2_training"
	ExerciseComfortablePreparation Exercise = "comfortable_preparation"
	ExerciseComfortableRecovery    Exercise = "comfortable_recovery"
)

const defaultGuidance = "Focus on your breathing and stay relaxed."

type Instruction struct {
	Title   string
	Summary string
	Cue     string
	Steps   []string
}

var instructions = map[Exercise]Instruction{
	ExerciseTidalBreathing: {
		Title:   "Tidal Breathing",
		Summary: "Normal, relaxed breathing at your natural pace",
		Cue:     "Breathe naturally and relax. Focus on the rhythm of your breath without trying to control it.",
		Steps: []string{
			"Sit or lie in a comfortable position",
			"Breathe naturally through your nose",
			"Focus on the rhythm of your breath",
			"Let your body find its natural breathing pattern",
		},
	},
	ExerciseDiaphragmatic: {
		Title:   "Diaphragmatic Breathing",
		Summary: "Deep breathing driven by the diaphragm",
		Cue:     "Place one hand on your chest and one on your abdomen. Breathe deeply so your abdomen rises, not your chest.",
		Steps: []string{
			"Place one hand on your chest, one on your abdomen",
			"Breathe in slowly through your nose",
			"Feel your abdomen expand, not your chest",
			"Exhale slowly through your mouth",
			"Aim for 6-8 breaths per minute",
		},
	},
	ExerciseAlternateNostril: {
		Title:   "Alternate Nostril Breathing",
		Summary: "Balancing technique that calms the nervous system",
		Cue:     "Use your thumb and ring finger to alternate nostrils. Breathe slowly and evenly through each nostril.",
		Steps: []string{
			"Sit comfortably with your spine straight",
			"Close the right nostril and inhale through the left",
			"Close the left nostril and exhale through the right",
			"Inhale through the right, switch, exhale through the left",
			"Keep alternating for the full duration",
		},
	},
	ExerciseBoxBreathing: {
		Title:   "Box Breathing (4-4-4-4)",
		Summary: "Equal breathing pattern that promotes calm and focus",
		Cue:     "Follow the 4-4-4-4 pattern: inhale 4s, hold 4s, exhale 4s, hold empty 4s. Repeat this cycle.",
		Steps: []string{
			"Inhale through your nose for 4 seconds",
			"Hold for 4 seconds",
			"Exhale through your mouth for 4 seconds",
			"Hold empty lungs for 4 seconds",
		},
	},
	ExerciseVisualization: {
		Title:   "Guided Visualization",
		Summary: "Mental imagery to deepen relaxation",
		Cue:     "Close your eyes and imagine a peaceful underwater scene. Visualize yourself swimming effortlessly.",
		Steps: []string{
			"Close your eyes and get comfortable",
			"Picture a calm underwater scene",
			"See yourself gliding without effort",
			"If your mind wanders, return to the scene",
		},
	},
	ExerciseMindfulness: {
		Title:   "Mindfulness Breathing",
		Summary: "Present-moment awareness anchored on the breath",
		Cue:     "Focus your attention on your breath. When thoughts arise, acknowledge them and return to breathing.",
		Steps: []string{
			"Sit in a comfortable, alert position",
			"Notice air entering and leaving",
			"Acknowledge thoughts without judgment",
			"Return your focus to the breath",
		},
	},
	ExerciseProgressiveRelaxation: {
		Title:   "Progressive Muscle Relaxation",
		Summary: "Systematic tensing and releasing of muscle groups",
		Cue:     "Start with your toes and work up to your head. Tense each muscle group for 5 seconds, then release.",
		Steps: []string{
			"Start with your toes and work upwards",
			"Tense each muscle group for 5 seconds",
			"Release and notice the contrast",
			"Breathe deeply throughout",
		},
	},
	ExerciseCO2Hold: {
		Title:   "CO₂ Tolerance Hold",
		Summary: "Building tolerance to carbon dioxide",
		Cue:     "Take a normal breath and hold. Focus on staying relaxed as you feel the urge to breathe.",
		Steps: []string{
			"Take a normal breath in",
			"Hold without forcing",
			"Notice the urge to breathe without panicking",
			"Exhale slowly and take recovery breaths",
		},
	},
	ExerciseO2Hold: {
		Title:   "O₂ Tolerance Hold",
		Summary: "Training the body to work with less oxygen",
		Cue:     "Take a deep breath and hold comfortably. Stay relaxed and focus on your mental state.",
		Steps: []string{
			"Take a deep breath in",
			"Hold comfortably and avoid tension",
			"Exhale slowly when you need to breathe",
			"Take full recovery breaths between holds",
		},
	},
	ExerciseMaxHold: {
		Title:   "Maximum Breath Hold",
		Summary: "A controlled attempt at your limit",
		Cue:     "Take 2-3 deep breaths to prepare, then take your final breath and hold. Stay completely relaxed.",
		Steps: []string{
			"Take 2-3 deep breaths to prepare",
			"Take your final breath and hold",
			"Stay completely relaxed",
			"Release slowly and take several recovery breaths",
			"Mark the hold complete when you breathe",
		},
	},
	ExerciseStretchConfirmation: {
		Title:   "Pre-Session Stretching",
		Summary: "Loosen up before the first hold",
		Cue:     "Perform gentle stretches for your neck, shoulders, chest, and torso. Ensure you feel loose and ready.",
		Steps: []string{
			"Stretch your neck and shoulders",
			"Open your chest and rib cage",
			"Do gentle torso twists",
			"Confirm only when you feel ready",
		},
	},
	ExerciseCO2ToleranceTraining: {
		Title:   "CO₂ Tolerance Training",
		Summary: "Short hold and rest pairs after the max attempts",
		Cue:     "Take a normal breath and hold for the specified time. Focus on staying relaxed during the hold.",
		Steps: []string{
			"Take a normal breath in",
			"Hold for the set duration",
			"Exhale slowly and rest",
			"Repeat for every set",
		},
	},
	ExerciseComfortableCO2: {
		Title: "Comfortable CO₂ Hold",
		Cue:   "Stay in your comfort zone. Stop when you feel the first contraction.",
	},
	ExerciseComfortablePreparation: {
		Title: "Preparation",
		Cue:   "Prepare your body and mind for comfortable CO₂ training.",
	},
	ExerciseComfortableRecovery: {
		Title: "Recovery Breathing",
		Cue:   "Allow your body to recover naturally from the training session.",
	},
}

// GuidanceFor returns the one-line cue for an exercise.
func GuidanceFor(e Exercise) string {
	if in, ok := instructions[e]; ok && in.Cue != "" {
		return in.Cue
	}
	return defaultGuidance
}

// InstructionFor returns the step-by-step card for an exercise, if any.
func InstructionFor(e Exercise) (Instruction, bool) {
	in, ok := instructions[e]
	if !ok || len(in.Steps) == 0 {
		return Instruction{}, false
	}
	return in, true
}
