package output_test

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/jihwankim/genpairs/internal/lexspec"
	"github.com/jihwankim/genpairs/internal/model"
	"github.com/jihwankim/genpairs/internal/output"
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

func TestWriteWarnings(t *testing.T) {
	var buf bytes.Buffer
	output.WriteWarnings(&buf, []string{"Warning - No pair possible:  [ A=a1 B=b1 ]"})
	require.Equal(t, "Warning - No pair possible:  [ A=a1 B=b1 ]\n", buf.String())
}

func TestWriteHumanTableRightAlignsAndCounts(t *testing.T) {
	m := buildModel(t, "col0: v0.0. v0.1.\ncol1: v1.0. v1.1.\n")
	enum := pairwise.Enumerate(m)
	b := pairwise.NewBuilder(m, enum, 1)
	vectors := b.Build()

	var buf bytes.Buffer
	catIndex := output.CategoryIndex(m)
	output.WriteHumanTable(&buf, output.Section{Label: "Pairwise coverage", Categories: m.Categories, Vectors: vectors}, catIndex)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Equal(t, "Pairwise coverage: "+strconv.Itoa(len(vectors))+"  test vectors", lines[0])
	require.Equal(t, "col0 col1", lines[1])
	require.Equal(t, "____ ____", lines[2])
	require.Len(t, lines, 3+len(vectors))
}

func TestWriteCSV(t *testing.T) {
	m := buildModel(t, "col0: v0.0. v0.1.\ncol1: v1.0. v1.1.\n")
	enum := pairwise.Enumerate(m)
	b := pairwise.NewBuilder(m, enum, 1)
	vectors := b.Build()

	var buf bytes.Buffer
	catIndex := output.CategoryIndex(m)
	err := output.WriteCSV(&buf, output.Section{Label: "Pairwise coverage", Categories: m.Categories, Vectors: vectors}, catIndex)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Equal(t, "col0,col1", lines[0])
	require.Len(t, lines, 1+len(vectors))
}

// 8.3: the one infeasible pair the exclusion example produces round-
// trips through the JSON companion mode with both endpoints named.
func TestWriteJSONWarnings(t *testing.T) {
	m := buildModel(t, "A: a1 prop p. a2.\nB: b1 except p. b2.\n")
	enum := pairwise.Enumerate(m)
	require.Len(t, enum.Warnings, 1)

	var buf bytes.Buffer
	require.NoError(t, output.WriteJSONWarnings(&buf, enum))

	var decoded []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	require.Equal(t, "A", decoded[0]["category_a"])
	require.Equal(t, "a1", decoded[0]["choice_a"])
	require.Equal(t, "B", decoded[0]["category_b"])
	require.Equal(t, "b1", decoded[0]["choice_b"])
	require.Equal(t, "Warning - No pair possible:  [ A=a1 B=b1 ]", decoded[0]["message"])
}

func TestVaryingColumnsSuppressesConstantCategories(t *testing.T) {
	m := buildModel(t, "col0: v0.0. v0.1.\ncol1: only1.\n")
	narrowed := output.VaryingColumns(m.Categories)
	require.Len(t, narrowed, 1)
	require.Equal(t, "col0", narrowed[0].Name)
}

