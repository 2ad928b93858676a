package solver

import (
	"sort"

	"github.com/iwvelando/staffing-planner/pkg/mathutil"
)

// Rank scores each working-days vector by its coefficient of variation and
// sorts ascending. Equal scores keep their input order.
func Rank(days [][]int) []Result {
	results := make([]Result, 0, len(days))
	for _, d := range days {
		if mathutil.Mean(d) == 0 {
			panic("solver: working days with zero mean")
		}
		results = append(results, Result{
			Variation: mathutil.CoefficientOfVariation(d),
			Days:      d,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Variation < results[j].Variation
	})
	return results
}
