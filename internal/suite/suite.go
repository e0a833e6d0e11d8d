// Package suite implements the Initial-suite Adapter (§4.6): it reads a
// tabular pre-existing suite of vectors, validates each row against the
// semantic model, and pre-marks the pairs it witnesses as covered before
// the Vector Builder runs. It is grounded on the same
// accumulate-then-report shape as package diag and
// pkg/scenario/validator.Validator, reading the table itself with
// encoding/csv since spec.md §4.6 specifies a header-row, one-vector-
// per-row tabular format and no example repo in the pack ships a CSV
// library of its own (see DESIGN.md).
package suite

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jihwankim/genpairs/internal/diag"
	"github.com/jihwankim/genpairs/internal/lexspec/token"
	"github.com/jihwankim/genpairs/internal/model"
	"github.com/jihwankim/genpairs/internal/pairwise"
)

// Row is one accepted initial-suite vector, aligned with Model.Categories
// order regardless of the column order the source file used.
type Row struct {
	Values []*model.Choice
}

// Suite holds every row accepted from an initial-suite file.
type Suite struct {
	Rows []Row
}

// Load reads a tabular initial suite: a header row of category names,
// then one data row per vector. Any row naming an unknown choice or
// having the wrong number of columns is reported in bag and skipped (§7:
// "initial-suite row rejection ... non-fatal; reported and skipped"). A
// header naming an unknown category is reported in bag and the whole
// suite is ignored, since every row would reference that column.
func Load(r io.Reader, m *model.Model) (*Suite, *diag.Bag) {
	bag := diag.New()
	s := &Suite{}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return s, bag
	}
	if err != nil {
		bag.Errorf(token.Position{}, "initial suite: %s", err)
		return s, bag
	}

	cols := make([]*model.Category, len(header))
	for i, name := range header {
		cat := m.CategoryByName(name)
		if cat == nil {
			bag.Warnf(token.Position{}, "initial suite: column %d names unknown category %q, suite ignored", i+1, name)
			return s, bag
		}
		cols[i] = cat
	}

	rowNum := 1
	for {
		rowNum++
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			bag.Warnf(token.Position{}, "initial suite: row %d: %s, skipped", rowNum, err)
			continue
		}
		if len(record) != len(cols) {
			bag.Warnf(token.Position{}, "initial suite: row %d: expected %d columns, got %d, skipped", rowNum, len(cols), len(record))
			continue
		}

		values := make([]*model.Choice, len(m.Categories))
		ok := true
		for i, name := range record {
			ch := findChoice(cols[i], name)
			if ch == nil {
				bag.Warnf(token.Position{}, "initial suite: row %d: category %q has no choice %q, skipped", rowNum, cols[i].Name, name)
				ok = false
				break
			}
			idx := categoryIndex(m, cols[i].Name)
			values[idx] = ch
		}
		if !ok {
			continue
		}
		s.Rows = append(s.Rows, Row{Values: values})
	}

	return s, bag
}

func findChoice(cat *model.Category, name string) *model.Choice {
	for _, ch := range cat.Choices {
		if ch.ID.Name == name {
			return ch
		}
	}
	return nil
}

func categoryIndex(m *model.Model, name string) int {
	for i, cat := range m.Categories {
		if cat.Name == name {
			return i
		}
	}
	return -1
}

// ApplyTo marks, for every accepted row, every feasible required pair
// the row witnesses as covered (§4.6: "marked covered in the pair table
// before §4.4 runs"). Unknown or non-normal columns contribute no pair.
func (s *Suite) ApplyTo(enum *pairwise.Enumeration) {
	for _, row := range s.Rows {
		for i := 0; i < len(row.Values); i++ {
			a := row.Values[i]
			if a == nil || !a.IsNormal() {
				continue
			}
			for j := i + 1; j < len(row.Values); j++ {
				b := row.Values[j]
				if b == nil || !b.IsNormal() {
					continue
				}
				if p := enum.Lookup(a, b); p != nil && p.Feasible {
					p.Covered = true
				}
			}
		}
	}
}

// UncoveredReport renders every feasible, still-uncovered pair for the
// "report uncovered pairs" mode (§4.6, §8.5), one per line, in
// enumeration order.
func UncoveredReport(enum *pairwise.Enumeration) []string {
	var lines []string
	for _, p := range enum.Uncovered() {
		lines = append(lines, fmt.Sprintf("%s %s", p.A.ID, p.B.ID))
	}
	return lines
}
