package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	catalog "apnea/internal/modules/catalog/domain"
	"apnea/internal/platform/duration"
	apperrors "apnea/internal/platform/errors"
)

const dateLayout = "2006-01-02"

// Rotation is the built-in focus per weekday, used when the profile's weekly
// schedule has no entry for that day.
var Rotation = map[time.Weekday]string{
	time.Monday:    catalog.CO2Tolerance,
	time.Tuesday:   catalog.BreathControl,
	time.Wednesday: catalog.O2Tolerance,
	time.Thursday:  catalog.MentalTechnique,
	time.Friday:    catalog.AdvancedCO2Table,
	time.Saturday:  catalog.MaxBreathHold,
	time.Sunday:    catalog.RecoveryFlexibility,
}

// DateOf truncates t to its local calendar day.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q, want YYYY-MM-DD", apperrors.ErrInvalidInput, s)
	}
	return t, nil
}

// ParseWeekday accepts "monday", "Mon" and similar.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || (len(s) >= 3 && strings.HasPrefix(name, s)) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: weekday %q", apperrors.ErrInvalidInput, s)
}

func WeekdayKey(d time.Weekday) string {
	return strings.ToLower(d.String())
}

// FocusFor picks the session type for a weekday.
func FocusFor(d time.Weekday, weekly map[string]string) string {
	if focus := weekly[WeekdayKey(d)]; focus != "" {
		return focus
	}
	return Rotation[d]
}

// GenerateSchedule emits one fresh record per calendar day in [start, end].
func GenerateSchedule(start, end time.Time, maxHold *int, weekly map[string]string) []Record {
	start, end = DateOf(start), DateOf(end)
	var records []Record
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		focus := FocusFor(day.Weekday(), weekly)
		records = append(records, Record{
			Date:        DateKey(day),
			Day:         day.Weekday().String(),
			Focus:       focus,
			SessionType: focus,
			Details:     SessionDetails(focus, maxHold),
		})
	}
	return records
}

// MergeSchedule adds generated days that are missing from existing. Existing
// records are never overwritten.
func MergeSchedule(existing, generated []Record) ([]Record, int) {
	seen := make(map[string]bool, len(existing))
	for _, r := range existing {
		seen[r.Date] = true
	}
	merged := append([]Record(nil), existing...)
	added := 0
	for _, r := range generated {
		if seen[r.Date] {
			continue
		}
		merged = append(merged, r)
		seen[r.Date] = true
		added++
	}
	p := Profile{Sessions: merged}
	p.sortSessions()
	return p.Sessions, added
}

// SessionDetails is the one-line preview shown next to a scheduled day.
func SessionDetails(focus string, maxHold *int) string {
	if maxHold == nil || *maxHold <= 0 {
		return "Set your max hold time to see personalized session details"
	}
	m := *maxHold
	pct := func(p float64) string {
		return duration.Format(int(math.Round(float64(m) * p / 100)))
	}
	switch focus {
	case catalog.CO2Tolerance, catalog.TraditionalCO2Tables:
		return "5× progressive holds (0:45 → 1:45). 1:1 rest ratio. ~18min total"
	case catalog.BreathControl:
		return "10min diaphragmatic + 5min alternate nostril + 8× box breathing (4-4-4-4) + 2min recovery. ~25min total"
	case catalog.O2Tolerance:
		return fmt.Sprintf("5× holds from 60%% to 95%% of max (%s → %s). 3:00 rests", pct(60), pct(95))
	case catalog.MentalTechnique:
		return fmt.Sprintf("15min visualization + 10min mindfulness + 10min PMR + 2× mindful holds (%s). ~45min total", pct(60))
	case catalog.AdvancedCO2Table:
		return fmt.Sprintf("5× %s holds. Rest: 2:00 → 0:53", pct(62.5))
	case catalog.MaxBreathHold:
		return "Progressive holds with tidal breathing: 25% → 35% → 50% → 65% → 2× max holds"
	case catalog.MaximalBreathHoldTraining:
		return "3× maximal attempts with 4:00 rests, then 5:00 recovery"
	case catalog.RecoveryFlexibility:
		return "3×30s diaphragm stretch, 2× side stretches, 5 min box breathing (4-4-4-4)"
	case catalog.ComfortableCO2Training:
		return fmt.Sprintf("7× comfortable holds at 40%% of max (%s). Stop at the first contraction", pct(40))
	default:
		return "Custom session"
	}
}
