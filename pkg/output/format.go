// Package output provides utilities for formatting and displaying ranked schedules.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/iwvelando/staffing-planner/pkg/constants"
	"github.com/iwvelando/staffing-planner/pkg/format"
	"github.com/iwvelando/staffing-planner/pkg/paging"
	"github.com/iwvelando/staffing-planner/pkg/solver"
)

// NoScheduleMessage is printed in place of a table when nothing was found.
const NoScheduleMessage = "no feasible schedule found"

var cellStyle = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)

// PrettyFormat writes a human-readable table of one page of results.
func PrettyFormat(w io.Writer, roles []solver.Role, results []solver.Result, page paging.Page) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, NoScheduleMessage)
		return err
	}

	headers := make([]string, 0, len(roles)+1)
	for _, r := range roles {
		headers = append(headers, r.Name)
	}
	headers = append(headers, "Variation")

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(_, _ int) lipgloss.Style { return cellStyle }).
		Headers(headers...)
	for _, result := range paging.Slice(results, page) {
		t.Row(resultRow(result)...)
	}

	if _, err := fmt.Fprintf(w, "--- Working days per role: %s (page %d/%d) ---\n",
		format.Range(page.Start, page.End, page.Total), page.Number+1, page.TotalPages); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// CsvFormat writes all results in comma-separated value format.
func CsvFormat(w io.Writer, roles []solver.Role, results []solver.Result) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(roles)+1)
	for _, r := range roles {
		header = append(header, r.Name)
	}
	header = append(header, "variation")
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, result := range results {
		if err := cw.Write(resultRow(result)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// CsvString returns the CSV rendering of results.
func CsvString(roles []solver.Role, results []solver.Result) string {
	var b strings.Builder
	_ = CsvFormat(&b, roles, results)
	return b.String()
}

// Document is the JSON rendering of one page of results.
type Document struct {
	Roles   []solver.Role   `json:"roles"`
	Page    paging.Page     `json:"page"`
	Pages   []int           `json:"pages"`
	Results []solver.Result `json:"results"`
}

// JSONFormat writes one page of results as an indented JSON document.
func JSONFormat(w io.Writer, roles []solver.Role, results []solver.Result, page paging.Page) error {
	doc := Document{
		Roles:   roles,
		Page:    page,
		Pages:   page.Numbers(constants.PageWindow),
		Results: paging.Slice(results, page),
	}
	if doc.Roles == nil {
		doc.Roles = []solver.Role{}
	}
	if doc.Results == nil {
		doc.Results = []solver.Result{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func resultRow(result solver.Result) []string {
	row := make([]string, 0, len(result.Days)+1)
	for _, d := range result.Days {
		row = append(row, strconv.Itoa(d))
	}
	return append(row, format.Variation(result.Variation))
}
