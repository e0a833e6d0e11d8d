package pairwise_test

import (
	"testing"

	"github.com/jihwankim/genpairs/internal/lexspec"
	"github.com/jihwankim/genpairs/internal/model"
	"github.com/jihwankim/genpairs/internal/pairwise"
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

// 8.1: three unconstrained binary categories, 12 feasible pairs, no
// warnings, a builder result that covers every one of them.
func TestMinimal2x2x2(t *testing.T) {
	m := buildModel(t, "col0: v0.0. v0.1.\ncol1: v1.0. v1.1.\ncol2: v2.0. v2.1.\n")
	enum := pairwise.Enumerate(m)
	require.Len(t, enum.Pairs, 12)
	require.Empty(t, enum.Warnings)

	b := pairwise.NewBuilder(m, enum, 1)
	vectors := b.Build()
	require.NotEmpty(t, vectors)
	require.Empty(t, enum.Uncovered())
	for _, vec := range vectors {
		require.True(t, pairwise.ValidVector(vec))
	}
}

// 8.2's inconsistent spec names col1=v1.0/col1=v1.1 paired against
// col2=v2.0 as infeasible (v2.0 requires both v0 and v1, which only one
// mutually-exclusive col0 choice can ever supply at once). Those two
// warnings are the ones spec.md commits to by name; the same "only
// col0 declares v0/v1" reasoning also makes every col0-vs-col1 pair
// that crosses v0/v1 infeasible, so this implementation's warning count
// for the scenario runs higher than spec.md's own worked total (see
// DESIGN.md) — the two it explicitly calls out are asserted here
// without pinning the overall count.
func TestInconsistentSpecWarnings(t *testing.T) {
	src := "col0: e0 error; e1 error; v0.0 prop v0; v0.1 prop v1\ncol1: s0 single; s1 single; v1.0 if v0; v1.1 if v1\ncol2: v2.0 if v0 if v1; v2.1\n"
	m := buildModel(t, src)
	enum := pairwise.Enumerate(m)

	require.Contains(t, enum.Warnings, "Warning - No pair possible:  [ col1=v1.1 col2=v2.0 ]")
	require.Contains(t, enum.Warnings, "Warning - No pair possible:  [ col1=v1.0 col2=v2.0 ]")

	b := pairwise.NewBuilder(m, enum, 1)
	b.Build()
	require.Empty(t, enum.Uncovered(), "every feasible required pair must end up covered")
}

// 8.6: identical seed, identical spec, byte-identical results.
func TestDeterminism(t *testing.T) {
	src := "col0: e0 error; e1 error; v0.0 prop v0; v0.1 prop v1\ncol1: s0 single; s1 single; v1.0 if v0; v1.1 if v1\ncol2: v2.0 if v0 if v1; v2.1\n"

	run := func() []string {
		m := buildModel(t, src)
		enum := pairwise.Enumerate(m)
		b := pairwise.NewBuilder(m, enum, 42)
		vectors := b.Build()
		var rendered []string
		for _, vec := range vectors {
			var row string
			for _, ch := range vec {
				row += ch.ID.Name + ","
			}
			rendered = append(rendered, row)
		}
		return append(append([]string{}, enum.Warnings...), rendered...)
	}

	require.Equal(t, run(), run())
}

// 8.3: exclusion makes one pair infeasible; the remaining 3 feasible
// pairs — (a1,b2), (a2,b1), (a2,b2) — each need their own vector since
// two categories of two normals apiece means every vector covers
// exactly one A×B pair (see DESIGN.md: spec.md's own "≤ 2 vectors"
// wording for this scenario undercounts, the same class of slip as
// §8.2's warning count and §8.5's pair count).
func TestExclusion(t *testing.T) {
	m := buildModel(t, "A: a1 prop p. a2.\nB: b1 except p. b2.\n")
	enum := pairwise.Enumerate(m)
	require.Len(t, enum.Warnings, 1)
	require.Equal(t, "Warning - No pair possible:  [ A=a1 B=b1 ]", enum.Warnings[0])

	b := pairwise.NewBuilder(m, enum, 1)
	vectors := b.Build()
	require.Len(t, vectors, 3)
	require.Empty(t, enum.Uncovered())
}

// 8.4: the required vector (a1,b1,c1) must exist because b1 and c1 both
// need p, which only a1 provides.
func TestPropertyChainForcesProvider(t *testing.T) {
	m := buildModel(t, "A: a1 prop p. B: b1 if p. b2.\nC: c1 if p. c2.\n")
	enum := pairwise.Enumerate(m)
	require.Empty(t, enum.Warnings)

	b := pairwise.NewBuilder(m, enum, 1)
	vectors := b.Build()

	found := false
	for _, vec := range vectors {
		names := map[string]bool{}
		for _, ch := range vec {
			names[ch.ID.Name] = true
		}
		if names["b1"] && names["c1"] {
			require.True(t, names["a1"], "any vector containing b1 and c1 must also contain a1")
			found = true
		}
	}
	require.True(t, found, "expected some vector to cover (b1, c1)")
}
