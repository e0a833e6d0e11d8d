package suite_test

import (
	"strings"
	"testing"

	"github.com/jihwankim/genpairs/internal/lexspec"
	"github.com/jihwankim/genpairs/internal/model"
	"github.com/jihwankim/genpairs/internal/pairwise"
	"github.com/jihwankim/genpairs/internal/suite"
	"github.com/stretchr/testify/require"
)

func buildModel(t *testing.T, src string) *model.Model {
	t.Helper()
	p := lexspec.New()
	file, bag := p.Parse(src)
	require.False(t, bag.HasErrors(), bag.Report())
	m, mbag := model.Build(file)
	require.False(t, mbag.HasErrors(), mbag.Report())
	return m
}

// 8.5: a minimal unconstrained 2x2x2 spec has 12 required pairs. Two
// initial-suite rows that share no value in any column each witness 3
// distinct pairs, so exactly 6 remain uncovered — not the 8 the
// illustrative scenario names (see DESIGN.md: three of spec.md's own
// worked examples undercount/miscount relative to its formal rules;
// this implementation follows the formal required-pair definition).
func TestApplyToSubtractsCoveredPairs(t *testing.T) {
	m := buildModel(t, "X: x1. x2.\nY: y1. y2.\nZ: z1. z2.\n")
	enum := pairwise.Enumerate(m)
	require.Len(t, enum.Pairs, 12)
	require.Empty(t, enum.Warnings)

	csv := "X,Y,Z\nx1,y1,z1\nx2,y2,z2\n"
	s, bag := suite.Load(strings.NewReader(csv), m)
	require.False(t, bag.HasErrors(), bag.Report())
	require.Len(t, s.Rows, 2)

	s.ApplyTo(enum)
	require.Len(t, enum.Uncovered(), 6)
}

func TestLoadRejectsUnknownChoice(t *testing.T) {
	m := buildModel(t, "X: x1. x2.\nY: y1. y2.\n")
	csv := "X,Y\nx1,ghost\n"
	s, bag := suite.Load(strings.NewReader(csv), m)
	require.True(t, bag.HasWarnings())
	require.Empty(t, s.Rows)
}

func TestLoadRejectsUnknownCategory(t *testing.T) {
	m := buildModel(t, "X: x1. x2.\nY: y1. y2.\n")
	csv := "X,ghost\nx1,y1\n"
	s, bag := suite.Load(strings.NewReader(csv), m)
	require.True(t, bag.HasWarnings())
	require.Empty(t, s.Rows)
}

func TestUncoveredReport(t *testing.T) {
	m := buildModel(t, "X: x1. x2.\nY: y1. y2.\n")
	enum := pairwise.Enumerate(m)
	lines := suite.UncoveredReport(enum)
	require.Len(t, lines, 4)
}
