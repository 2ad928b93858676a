package solver

import (
	"errors"
	"fmt"
)

// ErrLimitExceeded is returned when a search would produce more vectors than
// the caller's limit allows.
var ErrLimitExceeded = errors.New("solution limit exceeded")

// Enumerate returns every vector x with x[i] >= 1, x[i] >= x[i-1] and
// Σ costs[i]*x[i] == target, in depth-first enumeration order.
//
// Every cost must be positive; this is not checked here.
func Enumerate(costs []int, target int) [][]int {
	vectors, _ := EnumerateWithLimit(costs, target, 0)
	return vectors
}

// EnumerateWithLimit is Enumerate with a budget on the number of vectors. A
// limit <= 0 means unlimited. When the search finds more than limit vectors it
// stops and returns ErrLimitExceeded along with the first limit vectors.
func EnumerateWithLimit(costs []int, target, limit int) ([][]int, error) {
	if len(costs) == 0 {
		return [][]int{}, nil
	}

	s := &search{
		costs:     costs,
		limit:     limit,
		current:   make([]int, 0, len(costs)),
		solutions: [][]int{},
	}
	if !s.visit(0, target, 1) {
		return s.solutions, fmt.Errorf("more than %d vectors: %w", limit, ErrLimitExceeded)
	}
	return s.solutions, nil
}

// search holds the state of one enumeration. It is never shared between calls.
type search struct {
	costs     []int
	limit     int
	current   []int
	solutions [][]int
}

// visit assigns costs[index] with a floor of lo against the remaining target.
// It reports false once the limit has been exceeded.
func (s *search) visit(index, remaining, lo int) bool {
	coeff := s.costs[index]

	if index == len(s.costs)-1 {
		if remaining%coeff != 0 {
			return true
		}
		x := remaining / coeff
		if x < lo {
			return true
		}
		return s.emit(x)
	}

	for x := lo; coeff*x <= remaining; x++ {
		s.current = append(s.current, x)
		ok := s.visit(index+1, remaining-coeff*x, x)
		s.current = s.current[:len(s.current)-1]
		if !ok {
			return false
		}
	}
	return true
}

func (s *search) emit(last int) bool {
	if s.limit > 0 && len(s.solutions) >= s.limit {
		return false
	}
	vector := make([]int, len(s.current)+1)
	copy(vector, s.current)
	vector[len(s.current)] = last
	s.solutions = append(s.solutions, vector)
	return true
}
