// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package recommend

import (
	"math"
	"testing"
)

func TestBuildRatings(t *testing.T) {
	tests := []struct {
		name   string
		clicks []ClickEvent
		want   []float64
	}{
		{
			name:   "empty input",
			clicks: nil,
			want:   []float64{},
		},
		{
			name:   "single click",
			clicks: clicks([3]int{1, 10, 3}),
			want:   []float64{1},
		},
		{
			name: "two categories",
			clicks: clicks(
				[3]int{1, 10, 3},
				[3]int{1, 11, 3},
				[3]int{1, 12, 4},
				[3]int{1, 13, 3},
			),
			want: []float64{0.75, 0.75, 0.25, 0.75},
		},
		{
			name: "users are independent",
			clicks: clicks(
				[3]int{1, 10, 3},
				[3]int{2, 10, 3},
				[3]int{2, 11, 5},
			),
			want: []float64{1, 0.5, 0.5},
		},
		{
			name: "repeated article clicks kept",
			clicks: clicks(
				[3]int{7, 10, 1},
				[3]int{7, 10, 1},
				[3]int{7, 20, 2},
			),
			want: []float64{2.0 / 3.0, 2.0 / 3.0, 1.0 / 3.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildRatings(tt.clicks)
			if got == nil {
				t.Fatal("BuildRatings() returned nil, want non-nil slice")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len(BuildRatings()) = %d, want %d", len(got), len(tt.want))
			}
			for i, r := range got {
				if math.Abs(r.Score-tt.want[i]) > 1e-12 {
					t.Errorf("rating[%d].Score = %v, want %v", i, r.Score, tt.want[i])
				}
				c := tt.clicks[i]
				if r.UserID != c.UserID || r.ArticleID != c.ArticleID || r.CategoryID != c.CategoryID {
					t.Errorf("rating[%d] = %+v, does not match click %+v", i, r, c)
				}
			}
		})
	}
}

func TestBuildRatings_CategorySharesSumToOne(t *testing.T) {
	in := clicks(
		[3]int{1, 10, 1}, [3]int{1, 11, 2}, [3]int{1, 12, 2}, [3]int{1, 13, 3},
		[3]int{2, 10, 1}, [3]int{2, 14, 1}, [3]int{2, 15, 9},
		[3]int{3, 16, 4},
	)

	// One rating per distinct (user, category) pair.
	type key struct{ user, category int }
	shares := make(map[key]float64)
	for _, r := range BuildRatings(in) {
		shares[key{r.UserID, r.CategoryID}] = r.Score
	}

	sums := make(map[int]float64)
	for k, v := range shares {
		sums[k.user] += v
	}
	for user, sum := range sums {
		if math.Abs(sum-1) > 1e-12 {
			t.Errorf("user %d category shares sum to %v, want 1", user, sum)
		}
	}
}
