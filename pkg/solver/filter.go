package solver

// Filter converts solution vectors into working days by dividing each
// component by the matching headcount. Vectors with any inexact division are
// dropped. Order is preserved.
func Filter(vectors [][]int, headcounts []int) [][]int {
	days := make([][]int, 0, len(vectors))
	for _, vector := range vectors {
		if d, ok := workingDays(vector, headcounts); ok {
			days = append(days, d)
		}
	}
	return days
}

func workingDays(vector, headcounts []int) ([]int, bool) {
	days := make([]int, len(vector))
	for i, x := range vector {
		if x%headcounts[i] != 0 {
			return nil, false
		}
		days[i] = x / headcounts[i]
	}
	return days, true
}
