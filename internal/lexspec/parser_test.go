package lexspec_test

import (
	"testing"

	"github.com/jihwankim/genpairs/internal/lexspec"
	"github.com/stretchr/testify/require"
)

func TestParseMinimal(t *testing.T) {
	src := `col0: v0.0. v0.1.
col1: v1.0. v1.1.
`
	p := lexspec.New()
	file, bag := p.Parse(src)
	require.False(t, bag.HasErrors(), bag.Report())
	require.Len(t, file.Categories, 2)
	require.Equal(t, "col0", file.Categories[0].Name)
	require.Len(t, file.Categories[0].Choices, 2)
	require.Equal(t, "v0.0", file.Categories[0].Choices[0].Name)
}

func TestParseInconsistentSpec(t *testing.T) {
	src := `col0: e0 error; e1 error; v0.0 prop v0; v0.1 prop v1
col1: s0 single; s1 single; v1.0 if v0; v1.1 if v1
col2: v2.0 if v0 if v1; v2.1
`
	p := lexspec.New()
	file, bag := p.Parse(src)
	require.False(t, bag.HasErrors(), bag.Report())
	require.Len(t, file.Categories, 3)

	col0 := file.Categories[0]
	require.Len(t, col0.Choices, 4)
	require.True(t, col0.Choices[0].Error)
	require.True(t, col0.Choices[1].Error)
	require.Equal(t, []string{"v0"}, col0.Choices[2].Props)
	require.Equal(t, []string{"v1"}, col0.Choices[3].Props)

	col1 := file.Categories[1]
	require.True(t, col1.Choices[0].Single)
	require.True(t, col1.Choices[1].Single)
	require.Equal(t, []string{"v0"}, col1.Choices[2].Needs)
	require.Equal(t, []string{"v1"}, col1.Choices[3].Needs)

	col2 := file.Categories[2]
	require.Equal(t, []string{"v0", "v1"}, col2.Choices[0].Needs)
	require.Empty(t, col2.Choices[1].Needs)
}

func TestParseRejectsSingleAndError(t *testing.T) {
	src := `col0: v0 single error.
`
	p := lexspec.New()
	_, bag := p.Parse(src)
	require.True(t, bag.HasErrors())
}

func TestParseRejectsDuplicateChoice(t *testing.T) {
	src := `col0: v0. v0.
`
	p := lexspec.New()
	_, bag := p.Parse(src)
	require.True(t, bag.HasErrors())
}

func TestParseRejectsDuplicateCategory(t *testing.T) {
	src := `col0: a. b.
col0: c. d.
`
	p := lexspec.New()
	_, bag := p.Parse(src)
	require.True(t, bag.HasErrors())
}

func TestParseRejectsReservedWordAsCategoryName(t *testing.T) {
	src := `prop: a. b.
`
	p := lexspec.New()
	_, bag := p.Parse(src)
	require.True(t, bag.HasErrors())
}
