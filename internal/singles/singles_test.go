package singles_test

import (
	"testing"

	"github.com/jihwankim/genpairs/internal/lexspec"
	"github.com/jihwankim/genpairs/internal/model"
	"github.com/jihwankim/genpairs/internal/singles"
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

// 8.2: two error choices and two single choices yield exactly four
// vectors, errors first, each with exactly one single/error column and
// every other column filled from a normal choice.
func TestEnumerateCountAndShape(t *testing.T) {
	src := "col0: e0 error; e1 error; v0.0 prop v0; v0.1 prop v1\ncol1: s0 single; s1 single; v1.0 if v0; v1.1 if v1\ncol2: v2.0 if v0 if v1; v2.1\n"
	m := buildModel(t, src)

	vectors := singles.Enumerate(m)
	require.Len(t, vectors, 4)

	require.Equal(t, "e0", vectors[0].Seed.ID.Name)
	require.Equal(t, "e1", vectors[1].Seed.ID.Name)
	require.Equal(t, "s0", vectors[2].Seed.ID.Name)
	require.Equal(t, "s1", vectors[3].Seed.ID.Name)

	for _, v := range vectors {
		require.Len(t, v.Values, len(m.Categories))
		seedCount := 0
		for i, cat := range m.Categories {
			ch := v.Values[i]
			require.NotNil(t, ch)
			if ch.ID == v.Seed.ID {
				seedCount++
				continue
			}
			require.True(t, ch.IsNormal(), "non-seed column %q must hold a normal choice", cat.Name)
		}
		require.Equal(t, 1, seedCount)
	}
}

func TestEnumerateEmptyWhenNoSinglesOrErrors(t *testing.T) {
	m := buildModel(t, "col0: v0.0. v0.1.\ncol1: v1.0. v1.1.\n")
	require.Empty(t, singles.Enumerate(m))
}
