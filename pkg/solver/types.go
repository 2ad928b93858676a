package solver

// Role is one staffing role: a fixed daily cost and the number of people
// filling it.
type Role struct {
	Name      string `json:"name" yaml:"name"`
	DailyCost int    `json:"dailyCost" yaml:"dailyCost"`
	Headcount int    `json:"headcount" yaml:"headcount"`
}

// Result is one ranked schedule: working days per role in role order and the
// coefficient of variation of those days.
type Result struct {
	Variation float64 `json:"variation"`
	Days      []int   `json:"days"`
}

// Costs returns the daily costs of roles in order.
func Costs(roles []Role) []int {
	costs := make([]int, len(roles))
	for i, r := range roles {
		costs[i] = r.DailyCost
	}
	return costs
}

// Headcounts returns the headcounts of roles in order.
func Headcounts(roles []Role) []int {
	counts := make([]int, len(roles))
	for i, r := range roles {
		counts[i] = r.Headcount
	}
	return counts
}
