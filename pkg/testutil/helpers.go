// Package testutil provides common utility functions for testing.
package testutil

import (
	"slices"

	"github.com/iwvelando/staffing-planner/pkg/solver"
)

// FindSchedule finds the result whose working days equal days.
// Returns a pointer to the result if found, nil otherwise.
func FindSchedule(results []solver.Result, days []int) *solver.Result {
	for i := range results {
		if slices.Equal(results[i].Days, days) {
			return &results[i]
		}
	}
	return nil
}

// TotalCost returns what a schedule costs: the sum over roles of daily cost,
// headcount and working days.
func TotalCost(roles []solver.Role, days []int) int {
	total := 0
	for i, r := range roles {
		if i >= len(days) {
			break
		}
		total += r.DailyCost * r.Headcount * days[i]
	}
	return total
}
