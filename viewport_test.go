package termcore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// historyTerm builds a 2x3 terminal whose scrollback holds L1..L4 and whose
// live screen shows L5, L6.
func historyTerm(t *testing.T) *Terminal {
	t.Helper()
	term := New(WithSize(2, 3), WithMaxScrollback(10))
	term.WriteString("L1\nL2\nL3\nL4\nL5\nL6")
	require.Equal(t, 4, term.ScrollbackLen())
	require.Equal(t, "L5", term.LineContent(0))
	require.Equal(t, "L6", term.LineContent(1))
	return term
}

func TestViewportLiveScreen(t *testing.T) {
	term := historyTerm(t)

	line, err := term.Line(0)
	require.NoError(t, err)
	assert.Equal(t, "L5 ", cellsToString(line))

	line, err = term.Line(1)
	require.NoError(t, err)
	assert.Equal(t, "L6 ", cellsToString(line))
}

func TestViewportOffsets(t *testing.T) {
	term := historyTerm(t)

	// Offset 1: one history line above the screen top.
	term.SetViewportOffset(1)
	first, _ := term.Line(0)
	second, _ := term.Line(1)
	assert.Equal(t, "L4 ", cellsToString(first))
	assert.Equal(t, "L5 ", cellsToString(second))

	// Offset equal to the full history shows the oldest lines.
	term.SetViewportOffset(4)
	first, _ = term.Line(0)
	second, _ = term.Line(1)
	assert.Equal(t, "L1 ", cellsToString(first))
	assert.Equal(t, "L2 ", cellsToString(second))
}

func TestViewportReadThroughWindow(t *testing.T) {
	term := historyTerm(t)
	all := []string{"L1 ", "L2 ", "L3 ", "L4 ", "L5 ", "L6 "}

	// For every offset the visible window ends offset lines above the bottom.
	for offset := 0; offset <= term.ScrollbackLen(); offset++ {
		term.SetViewportOffset(offset)
		start := len(all) - term.Rows() - offset
		for row := 0; row < term.Rows(); row++ {
			line, err := term.Line(row)
			require.NoError(t, err)
			assert.Equal(t, all[start+row], cellsToString(line), "offset %d row %d", offset, row)
		}
	}
}

func TestViewportClamped(t *testing.T) {
	term := historyTerm(t)

	term.SetViewportOffset(99)
	assert.Equal(t, 4, term.ViewportOffset())

	term.SetViewportOffset(-1)
	assert.Equal(t, 0, term.ViewportOffset())

	term.ScrollViewport(2)
	term.ScrollViewport(100)
	assert.Equal(t, 4, term.ViewportOffset())
	term.ScrollViewport(-1)
	assert.Equal(t, 3, term.ViewportOffset())
}

func TestViewportResetOnWrite(t *testing.T) {
	term := historyTerm(t)

	term.SetViewportOffset(3)
	term.WriteString("x")

	assert.Equal(t, 0, term.ViewportOffset())
}

func TestViewportOutOfRange(t *testing.T) {
	term := historyTerm(t)

	_, err := term.Line(-1)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	_, err = term.Line(2)
	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestViewportAlwaysFullWidth(t *testing.T) {
	term := historyTerm(t)
	require.NoError(t, term.Resize(2, 7))

	// History lines were captured at width 3; reads pad them to the new width.
	term.SetViewportOffset(2)
	line, err := term.Line(0)
	require.NoError(t, err)
	assert.Len(t, line, 7)
}

func TestViewportZeroOnAltScreen(t *testing.T) {
	term := historyTerm(t)

	term.WriteString("\x1b[?1049h")
	term.SetViewportOffset(3)

	assert.Equal(t, 0, term.ViewportOffset())
	line, err := term.Line(0)
	require.NoError(t, err)
	assert.Equal(t, "   ", cellsToString(line), "alternate screen reads come from its cleared grid")
}
