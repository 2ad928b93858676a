// Package paging splits a ranked result list into fixed-size pages and builds
// the page-number strip shown alongside a page.
package paging

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iwvelando/staffing-planner/pkg/constants"
)

// Markers placed in the list returned by Page.Numbers where page numbers were
// elided.
const (
	EllipsisStart = -1
	EllipsisEnd   = -2
)

// Page describes one page of a result list. Number is 0-based. Start and End
// are the half-open item range covered by the page.
type Page struct {
	Number     int `json:"number"`
	Size       int `json:"size"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
	Start      int `json:"start"`
	End        int `json:"end"`
}

// New builds the page for a list of total items. A size <= 0 selects
// constants.DefaultPageSize and number is clamped into range.
func New(total, size, number int) Page {
	if size <= 0 {
		size = constants.DefaultPageSize
	}
	if total < 0 {
		total = 0
	}

	totalPages := (total + size - 1) / size
	if number >= totalPages {
		number = totalPages - 1
	}
	if number < 0 {
		number = 0
	}

	start := number * size
	end := start + size
	if end > total {
		end = total
	}
	if start > end {
		start = end
	}

	return Page{
		Number:     number,
		Size:       size,
		Total:      total,
		TotalPages: totalPages,
		Start:      start,
		End:        end,
	}
}

// Slice returns the items covered by p.
func Slice[T any](items []T, p Page) []T {
	if p.Start >= len(items) {
		return items[:0]
	}
	end := p.End
	if end > len(items) {
		end = len(items)
	}
	return items[p.Start:end]
}

// Numbers lists the 0-based page numbers within window of the current page,
// with EllipsisStart and EllipsisEnd marking pages left out at either end.
func (p Page) Numbers(window int) []int {
	if p.TotalPages == 0 {
		return []int{}
	}
	if window < 0 {
		window = 0
	}

	start := p.Number - window
	if start < 0 {
		start = 0
	}
	end := p.Number + window
	if end > p.TotalPages-1 {
		end = p.TotalPages - 1
	}

	numbers := make([]int, 0, end-start+3)
	if start > 0 {
		numbers = append(numbers, EllipsisStart)
	}
	for i := start; i <= end; i++ {
		numbers = append(numbers, i)
	}
	if end < p.TotalPages-1 {
		numbers = append(numbers, EllipsisEnd)
	}
	return numbers
}

// ParseJump parses a 1-based page number typed by a user and returns the
// matching 0-based page.
func ParseJump(input string, totalPages int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("invalid page %q: %w", input, err)
	}
	if n < 1 || n > totalPages {
		return 0, fmt.Errorf("page %d out of range 1-%d", n, totalPages)
	}
	return n - 1, nil
}
