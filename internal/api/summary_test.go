// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"math"
	"testing"
)

func f64(v float64) *float64 { return &v }
func boolp(v bool) *bool     { return &v }

func TestSummarizeHistory(t *testing.T) {
	tests := []struct {
		name     string
		attempts []Attempt
		want     HistorySummary
	}{
		{
			name: "empty",
			want: HistorySummary{},
		},
		{
			name: "mix of graded and in progress",
			attempts: []Attempt{
				{ID: 1, Percentage: f64(80), Passed: boolp(true)},
				{ID: 2, Score: f64(3), MaxScore: 10, Passed: boolp(false)},
				{ID: 3, Status: "in_progress"},
			},
			want: HistorySummary{Attempts: 3, Graded: 2, Passed: 1, Average: 55, Best: 80},
		},
		{
			name:     "score without max is not graded",
			attempts: []Attempt{{ID: 1, Score: f64(5)}},
			want:     HistorySummary{Attempts: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SummarizeHistory(tt.attempts)
			if got.Attempts != tt.want.Attempts || got.Graded != tt.want.Graded || got.Passed != tt.want.Passed {
				t.Fatalf("counts = %+v, want %+v", got, tt.want)
			}
			if math.Abs(got.Average-tt.want.Average) > 1e-9 || math.Abs(got.Best-tt.want.Best) > 1e-9 {
				t.Fatalf("scores = %+v, want %+v", got, tt.want)
			}
		})
	}
}
