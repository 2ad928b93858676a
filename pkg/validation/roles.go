package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/staffing-planner/pkg/solver"
)

// Role validation errors, checked in this order by ValidateRoles.
var (
	ErrNonPositiveRole   = errors.New("daily cost and headcount must be natural numbers of at least 1")
	ErrBlankRoleName     = errors.New("role name cannot be blank")
	ErrDuplicateRoleName = errors.New("role names must be unique")
	ErrNonPositiveTarget = errors.New("target amount must be a natural number of at least 1")
)

// ValidateRoles checks the preconditions of solver.Solve and returns the first
// violation found. The solver itself never re-validates.
func ValidateRoles(roles []solver.Role, target int) error {
	for _, r := range roles {
		if r.DailyCost < 1 || r.Headcount < 1 {
			return fmt.Errorf("role %q: %w", r.Name, ErrNonPositiveRole)
		}
	}

	for i, r := range roles {
		if strings.TrimSpace(r.Name) == "" {
			return fmt.Errorf("role %d: %w", i+1, ErrBlankRoleName)
		}
	}

	seen := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		if _, ok := seen[r.Name]; ok {
			return fmt.Errorf("role %q: %w", r.Name, ErrDuplicateRoleName)
		}
		seen[r.Name] = struct{}{}
	}

	if target < 1 {
		return fmt.Errorf("target %d: %w", target, ErrNonPositiveTarget)
	}

	return nil
}
