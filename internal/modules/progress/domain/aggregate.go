package domain

import (
	"math"
	"sort"
)

const TrendLength = 10

// Record is the slice of a day's entry the statistics read.
type Record struct {
	Date          string
	Focus         string
	Completed     bool
	SessionTime   int
	ActualMaxHold *int
}

type TrendPoint struct {
	Date    string
	MaxHold int
}

type FocusCount struct {
	Focus string
	Count int
}

type Stats struct {
	TotalSessions        int
	CompletedSessions    int
	CompletionRate       int
	BestMaxHold          int
	AverageMaxHold       int
	TotalTrainingSeconds int
	Trend                []TrendPoint
	FocusDistribution    []FocusCount
}

// Aggregate computes the progress statistics. Empty input yields zeroes.
func Aggregate(records []Record) Stats {
	stats := Stats{TotalSessions: len(records), Trend: []TrendPoint{}, FocusDistribution: []FocusCount{}}
	focus := map[string]int{}
	var holds []TrendPoint
	sum := 0
	for _, r := range records {
		stats.TotalTrainingSeconds += r.SessionTime
		if r.Completed {
			stats.CompletedSessions++
			focus[r.Focus]++
		}
		if r.ActualMaxHold != nil && *r.ActualMaxHold > 0 {
			v := *r.ActualMaxHold
			holds = append(holds, TrendPoint{Date: r.Date, MaxHold: v})
			stats.BestMaxHold = max(stats.BestMaxHold, v)
			sum += v
		}
	}
	if stats.TotalSessions > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.CompletedSessions) / float64(stats.TotalSessions) * 100))
	}
	if len(holds) > 0 {
		stats.AverageMaxHold = int(math.Round(float64(sum) / float64(len(holds))))
		sort.SliceStable(holds, func(i, j int) bool { return holds[i].Date < holds[j].Date })
		stats.Trend = holds[max(len(holds)-TrendLength, 0):]
	}
	for name, count := range focus {
		stats.FocusDistribution = append(stats.FocusDistribution, FocusCount{Focus: name, Count: count})
	}
	sort.Slice(stats.FocusDistribution, func(i, j int) bool {
		a, b := stats.FocusDistribution[i], stats.FocusDistribution[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Focus < b.Focus
	})
	return stats
}
