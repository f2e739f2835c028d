package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_AlignsVisibleWidths(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"Food", "Energy"},
		[][]string{
			{"Banana", "89 kcal"},
			{StyleGreen.Render("Oats"), "389 kcal"},
		},
	))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Food    Energy", lines[0])
	assert.True(t, strings.HasPrefix(lines[2], "Banana  89 kcal"))
	assert.True(t, strings.HasPrefix(lines[3], "Oats    389 kcal"),
		"styled cells pad by visible width")
}

func TestRenderTable_ShortRowsAndEmptyHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))

	out := stripANSI(RenderTable(
		[]string{"Day", "Logged", ""},
		[][]string{{"Mon"}},
	))
	assert.Contains(t, out, "Mon")
}
