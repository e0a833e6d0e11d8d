// Package output renders the two report sections and the warning stream
// described in §6: a right-aligned, padded human table (or a CSV
// equivalent), each preceded by a one-line count header, and warnings
// written ahead of both in the exact wire format spec.md mandates. It is
// grounded on the teacher's plain io.Writer report style (no template
// engine, no pack example reaches for one either) with encoding/csv
// standing in for the CSV branch per DESIGN.md.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jihwankim/genpairs/internal/model"
	"github.com/jihwankim/genpairs/internal/pairwise"
)

// WriteWarnings writes one "Warning - No pair possible" line per
// infeasible pair, in enumeration order, ahead of either report section
// (§6: "Written to the same stream as output, before the pairwise
// table").
func WriteWarnings(w io.Writer, warnings []string) {
	for _, line := range warnings {
		fmt.Fprintln(w, line)
	}
}

// Section is one labeled group of vectors to render: the pairwise
// section or the single/error section, each with its own category
// header row (varying-columns mode may narrow the pairwise section's
// columns independently of the single/error section's).
type Section struct {
	Label      string // e.g. "Pairwise coverage", "Single and error vectors"
	Categories []*model.Category
	Vectors    [][]*model.Choice // full Model.Categories width; Categories selects columns
}

// WriteHumanTable renders one section as a one-line count header
// followed by a right-aligned, padded header row of category names, an
// underscore separator line, and one row per vector (§6).
func WriteHumanTable(w io.Writer, sec Section, catIndex map[string]int) {
	fmt.Fprintf(w, "%s: %d  test vectors\n", sec.Label, len(sec.Vectors))
	if len(sec.Categories) == 0 || len(sec.Vectors) == 0 {
		return
	}

	widths := make([]int, len(sec.Categories))
	for i, cat := range sec.Categories {
		widths[i] = len(cat.Name)
	}
	rows := make([][]string, len(sec.Vectors))
	for r, vec := range sec.Vectors {
		row := make([]string, len(sec.Categories))
		for i, cat := range sec.Categories {
			ch := vec[catIndex[cat.Name]]
			val := ""
			if ch != nil {
				val = ch.ID.Name
			}
			row[i] = val
			if len(val) > widths[i] {
				widths[i] = len(val)
			}
		}
		rows[r] = row
	}

	header := make([]string, len(sec.Categories))
	sep := make([]string, len(sec.Categories))
	for i, cat := range sec.Categories {
		header[i] = pad(cat.Name, widths[i])
		sep[i] = strings.Repeat("_", widths[i])
	}
	fmt.Fprintln(w, strings.Join(header, " "))
	fmt.Fprintln(w, strings.Join(sep, " "))

	for _, row := range rows {
		padded := make([]string, len(row))
		for i, v := range row {
			padded[i] = pad(v, widths[i])
		}
		fmt.Fprintln(w, strings.Join(padded, " "))
	}
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// WriteCSV renders one section as a header row of category names
// followed by one data row per vector (§6: "no quoting unless a value
// contains a comma").
func WriteCSV(w io.Writer, sec Section, catIndex map[string]int) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := make([]string, len(sec.Categories))
	for i, cat := range sec.Categories {
		header[i] = cat.Name
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, vec := range sec.Vectors {
		row := make([]string, len(sec.Categories))
		for i, cat := range sec.Categories {
			ch := vec[catIndex[cat.Name]]
			if ch != nil {
				row[i] = ch.ID.Name
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}

// CategoryIndex builds the cat-name -> Model.Categories-index map every
// Section render needs to pull the right column out of a full-width
// vector.
func CategoryIndex(m *model.Model) map[string]int {
	idx := make(map[string]int, len(m.Categories))
	for i, cat := range m.Categories {
		idx[cat.Name] = i
	}
	return idx
}

// VaryingColumns narrows categories to those whose normal-choice count
// is greater than one (§6 "varying columns only": "suppress any column
// whose only non-error, non-single choice count is ≤ 1").
func VaryingColumns(categories []*model.Category) []*model.Category {
	var out []*model.Category
	for _, cat := range categories {
		if len(cat.Normals) > 1 {
			out = append(out, cat)
		}
	}
	return out
}

// WarningLines converts an Enumeration's accumulated warnings into the
// slice WriteWarnings expects, preserving the order pairwise.Enumerate
// and Builder recorded them in.
func WarningLines(e *pairwise.Enumeration) []string { return e.Warnings }

// jsonWarning is one infeasible pair rendered for the --json-warnings
// companion mode (SPEC_FULL.md §3): structured, for a CI caller to parse,
// never a replacement for the verbatim §6 warning lines on stdout.
type jsonWarning struct {
	CategoryA string `json:"category_a"`
	ChoiceA   string `json:"choice_a"`
	CategoryB string `json:"category_b"`
	ChoiceB   string `json:"choice_b"`
	Message   string `json:"message"`
}

// WriteJSONWarnings renders every infeasible pair recorded on e as a JSON
// array, one object per warning, in pair enumeration order. A pair the
// builder demoted appears at its enumeration position here, while the
// verbatim warning lines list it after the enumerator's own warnings.
// Intended for stderr alongside (never instead of) WriteWarnings' stdout
// output.
func WriteJSONWarnings(w io.Writer, e *pairwise.Enumeration) error {
	out := make([]jsonWarning, 0, len(e.Pairs))
	for _, p := range e.Pairs {
		if p.Feasible {
			continue
		}
		out = append(out, jsonWarning{
			CategoryA: p.A.ID.Cat,
			ChoiceA:   p.A.ID.Name,
			CategoryB: p.B.ID.Cat,
			ChoiceB:   p.B.ID.Name,
			Message:   pairwise.Warning(p.A, p.B),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
