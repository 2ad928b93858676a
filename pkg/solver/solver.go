package solver

// Solve runs the full pipeline for roles and target: enumerate, filter by
// headcount, rank. An empty result means no feasible schedule exists.
func Solve(roles []Role, target int) []Result {
	results, _ := SolveWithLimit(roles, target, 0)
	return results
}

// SolveWithLimit is Solve with a budget on the number of raw solution vectors.
// On ErrLimitExceeded no results are returned, since a ranking of a partial
// enumeration would be misleading.
func SolveWithLimit(roles []Role, target, limit int) ([]Result, error) {
	vectors, err := EnumerateWithLimit(Costs(roles), target, limit)
	if err != nil {
		return nil, err
	}
	return Rank(Filter(vectors, Headcounts(roles))), nil
}
