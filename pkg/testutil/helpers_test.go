package testutil

import (
	"testing"

	"github.com/iwvelando/staffing-planner/pkg/solver"
)

func TestFindSchedule(t *testing.T) {
	results := []solver.Result{
		{Variation: 0, Days: []int{2, 2}},
		{Variation: 0.3333, Days: []int{1, 2}},
		{Variation: 0.5, Days: []int{1, 3}},
	}

	tests := []struct {
		name          string
		days          []int
		expectFound   bool
		wantVariation float64
	}{
		{
			name:          "Find first schedule",
			days:          []int{2, 2},
			expectFound:   true,
			wantVariation: 0,
		},
		{
			name:          "Find later schedule",
			days:          []int{1, 3},
			expectFound:   true,
			wantVariation: 0.5,
		},
		{
			name:        "Order matters",
			days:        []int{2, 1},
			expectFound: false,
		},
		{
			name:        "Length matters",
			days:        []int{1, 2, 0},
			expectFound: false,
		},
		{
			name:        "Nil days",
			days:        nil,
			expectFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindSchedule(results, tt.days)
			if !tt.expectFound {
				if got != nil {
					t.Errorf("FindSchedule(%v) = %v, expected nil", tt.days, got.Days)
				}
				return
			}
			if got == nil {
				t.Fatalf("FindSchedule(%v) returned nil", tt.days)
			}
			if got.Variation != tt.wantVariation {
				t.Errorf("FindSchedule(%v).Variation = %v, expected %v", tt.days, got.Variation, tt.wantVariation)
			}
		})
	}
}

func TestFindScheduleReturnsElement(t *testing.T) {
	results := []solver.Result{{Days: []int{4}}}
	got := FindSchedule(results, []int{4})
	if got != &results[0] {
		t.Fatal("expected pointer into results slice")
	}
}

func TestTotalCost(t *testing.T) {
	roles := []solver.Role{
		{Name: "a", DailyCost: 3, Headcount: 1},
		{Name: "b", DailyCost: 4, Headcount: 2},
	}

	if got := TotalCost(roles, []int{2, 5}); got != 3*2+4*2*5 {
		t.Errorf("TotalCost() = %d, expected %d", got, 46)
	}
	if got := TotalCost(roles, []int{2}); got != 6 {
		t.Errorf("TotalCost() with short days = %d, expected 6", got)
	}
	if got := TotalCost(nil, []int{1, 2}); got != 0 {
		t.Errorf("TotalCost() with no roles = %d, expected 0", got)
	}
}
