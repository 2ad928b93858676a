// Package solver finds natural-number staffing schedules for a payroll target.
//
// Given roles with a fixed daily cost and a headcount, the solver enumerates
// every vector x of positive integers with
//
//	costs[0]*x[0] + costs[1]*x[1] + ... + costs[n-1]*x[n-1] = target
//
// under the ascending constraint x[i] >= x[i-1]. Each vector is converted to
// working days per role by dividing by the role's headcount, keeping only
// vectors that divide exactly, and the survivors are ranked by coefficient of
// variation so that the most evenly distributed schedules come first.
//
// The ascending constraint applies across roles even though roles are not
// interchangeable: a schedule in which a later role works fewer units than an
// earlier one is never produced. Role order is therefore significant. Whether
// this is an intended business rule (for example "later roles never work fewer
// days") or an artifact of a partition-style search is unconfirmed; the
// behavior is kept as is.
//
// Everything in this package is synchronous, deterministic, and free of shared
// state. The search space grows combinatorially with the number of roles and
// the ratio of target to cost; callers that need a bound use the WithLimit
// variants, and callers that must stay responsive run the solve on their own
// goroutine.
package solver
