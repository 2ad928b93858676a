package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iwvelando/staffing-planner/pkg/paging"
	"github.com/iwvelando/staffing-planner/pkg/solver"
	"github.com/stretchr/testify/require"
)

var testRoles = []solver.Role{
	{Name: "Lead", DailyCost: 1, Headcount: 1},
	{Name: "Technician", DailyCost: 1, Headcount: 1},
}

var testResults = []solver.Result{
	{Variation: 0, Days: []int{3, 3}},
	{Variation: 1.0 / 3.0, Days: []int{2, 4}},
	{Variation: 2.0 / 3.0, Days: []int{1, 5}},
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	page := paging.New(len(testResults), 2, 0)

	require.NoError(t, PrettyFormat(&buf, testRoles, testResults, page))
	out := buf.String()

	require.Contains(t, out, "--- Working days per role: 1-2 of 3 (page 1/2) ---")
	require.Contains(t, out, "Lead")
	require.Contains(t, out, "Technician")
	require.Contains(t, out, "Variation")
	require.Contains(t, out, "0.0000")
	require.Contains(t, out, "0.3333")
	require.NotContains(t, out, "0.6667", "third result belongs to the second page")
}

func TestPrettyFormatSecondPage(t *testing.T) {
	var buf bytes.Buffer
	page := paging.New(len(testResults), 2, 1)

	require.NoError(t, PrettyFormat(&buf, testRoles, testResults, page))
	out := buf.String()

	require.Contains(t, out, "3-3 of 3 (page 2/2)")
	require.Contains(t, out, "0.6667")
	require.NotContains(t, out, "0.3333")
}

func TestPrettyFormatEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrettyFormat(&buf, testRoles, nil, paging.New(0, 0, 0)))
	require.Equal(t, NoScheduleMessage+"\n", buf.String())
}

func TestCsvFormat(t *testing.T) {
	out := CsvString(testRoles, testResults)
	lines := strings.Split(strings.TrimSpace(out), "\n")

	require.Equal(t, []string{
		"Lead,Technician,variation",
		"3,3,0.0000",
		"2,4,0.3333",
		"1,5,0.6667",
	}, lines)
}

func TestCsvFormatQuotesNames(t *testing.T) {
	roles := []solver.Role{{Name: "Engineer, senior", DailyCost: 1, Headcount: 1}}
	out := CsvString(roles, []solver.Result{{Variation: 0, Days: []int{7}}})
	require.True(t, strings.HasPrefix(out, `"Engineer, senior",variation`))
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	page := paging.New(len(testResults), 2, 1)
	require.NoError(t, JSONFormat(&buf, testRoles, testResults, page))

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Equal(t, testRoles, doc.Roles)
	require.Equal(t, 1, doc.Page.Number)
	require.Equal(t, []int{0, 1}, doc.Pages)
	require.Len(t, doc.Results, 1)
	require.Equal(t, []int{1, 5}, doc.Results[0].Days)
}

func TestJSONFormatEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSONFormat(&buf, nil, nil, paging.New(0, 0, 0)))
	require.Contains(t, buf.String(), `"results": []`)
	require.Contains(t, buf.String(), `"pages": []`)
}
