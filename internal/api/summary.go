// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

// HistorySummary aggregates graded attempts.
type HistorySummary struct {
	Attempts int
	Graded   int
	Passed   int
	// Average and Best are percentages over graded attempts; zero when none are graded.
	Average float64
	Best    float64
}

// SummarizeHistory computes the score overview shown under the history table.
// An attempt counts as graded when it has a percentage, or a score and max score.
func SummarizeHistory(attempts []Attempt) HistorySummary {
	sum := HistorySummary{Attempts: len(attempts)}
	var total float64
	for _, a := range attempts {
		pct, ok := percentage(a)
		if !ok {
			continue
		}
		sum.Graded++
		total += pct
		if pct > sum.Best {
			sum.Best = pct
		}
		if a.Passed != nil && *a.Passed {
			sum.Passed++
		}
	}
	if sum.Graded > 0 {
		sum.Average = total / float64(sum.Graded)
	}
	return sum
}

func percentage(a Attempt) (float64, bool) {
	if a.Percentage != nil {
		return *a.Percentage, true
	}
	if a.Score != nil && a.MaxScore > 0 {
		return *a.Score / a.MaxScore * 100, true
	}
	return 0, false
}
