package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "░░░░░   0%", ProgressBar(0, 0, 5))
	assert.Equal(t, "█████░░░░░  50%", ProgressBar(1, 2, 10))
	assert.Equal(t, "█████ 100%", ProgressBar(3, 3, 1))
}

func TestPanel_AlignsBorders(t *testing.T) {
	SetColorMode("never")
	SetTheme("mono")
	t.Cleanup(func() { SetColorMode("auto"); SetTheme("classic") })

	var buf bytes.Buffer
	Panel(&buf, []string{"Todos", C(Current().Success, "done item"), ""})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "+-----------+", lines[0])
	assert.Equal(t, "| Todos     |", lines[1])
	assert.Equal(t, "| done item |", lines[2])
	for _, ln := range lines {
		assert.Equal(t, len(lines[0]), len(ln))
	}
}

func TestC_RespectsNever(t *testing.T) {
	SetColorMode("never")
	t.Cleanup(func() { SetColorMode("auto") })
	assert.Equal(t, "x", C(fgRed, "x"))
}
