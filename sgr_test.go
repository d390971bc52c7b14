package termcore

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

// sgrTemplate runs an SGR sequence through a terminal and returns the cell
// produced by printing one character with the resulting attributes.
func sgrTemplate(t *testing.T, sequence string) *Cell {
	t.Helper()
	term := New(WithSize(1, 4))
	term.WriteString(sequence + "x")
	return term.Cell(0, 0)
}

func TestSgrBasicAttributes(t *testing.T) {
	cell := sgrTemplate(t, "\x1b[1;3;7;9m")

	assert.True(t, cell.HasFlag(CellFlagBold))
	assert.True(t, cell.HasFlag(CellFlagItalic))
	assert.True(t, cell.HasFlag(CellFlagReverse))
	assert.True(t, cell.HasFlag(CellFlagStrike))
}

func TestSgrAttributeResets(t *testing.T) {
	cell := sgrTemplate(t, "\x1b[1;3;7;9m\x1b[22;23;27;29m")

	assert.Equal(t, CellFlags(0), cell.Flags&(CellFlagBold|CellFlagItalic|CellFlagReverse|CellFlagStrike))
}

func TestSgrResetAll(t *testing.T) {
	cell := sgrTemplate(t, "\x1b[1;4;31;42m\x1b[0m")

	assert.Equal(t, CellFlags(0), cell.Flags)
	assert.Equal(t, NamedColor{Name: NamedColorForeground}, cell.Fg)
	assert.Equal(t, NamedColor{Name: NamedColorBackground}, cell.Bg)
}

func TestSgrEmptyResets(t *testing.T) {
	cell := sgrTemplate(t, "\x1b[1;31m\x1b[m")

	assert.Equal(t, CellFlags(0), cell.Flags)
	assert.Equal(t, NamedColor{Name: NamedColorForeground}, cell.Fg)
}

func TestSgrEightColor(t *testing.T) {
	cell := sgrTemplate(t, "\x1b[35;44m")

	assert.Equal(t, IndexedColor{Index: 5}, cell.Fg)
	assert.Equal(t, IndexedColor{Index: 4}, cell.Bg)
}

func TestSgrBrightColors(t *testing.T) {
	cell := sgrTemplate(t, "\x1b[92;103m")

	assert.Equal(t, IndexedColor{Index: 10}, cell.Fg)
	assert.Equal(t, IndexedColor{Index: 11}, cell.Bg)
}

func TestSgrDefaultColors(t *testing.T) {
	cell := sgrTemplate(t, "\x1b[31;41m\x1b[39;49m")

	assert.Equal(t, NamedColor{Name: NamedColorForeground}, cell.Fg)
	assert.Equal(t, NamedColor{Name: NamedColorBackground}, cell.Bg)
}

func TestSgrIndexedSemicolon(t *testing.T) {
	cell := sgrTemplate(t, "\x1b[38;5;123m\x1b[48;5;200m")

	assert.Equal(t, IndexedColor{Index: 123}, cell.Fg)
	assert.Equal(t, IndexedColor{Index: 200}, cell.Bg)
}

func TestSgrIndexedColon(t *testing.T) {
	cell := sgrTemplate(t, "\x1b[38:5:123m")

	assert.Equal(t, IndexedColor{Index: 123}, cell.Fg)
}

func TestSgrRgbSemicolon(t *testing.T) {
	cell := sgrTemplate(t, "\x1b[38;2;10;20;30m")

	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 255}, cell.Fg)
}

func TestSgrRgbColon(t *testing.T) {
	cell := sgrTemplate(t, "\x1b[38:2:10:20:30m")

	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 255}, cell.Fg)
}

func TestSgrRgbColonWithColorspace(t *testing.T) {
	cell := sgrTemplate(t, "\x1b[38:2::10:20:30m")

	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 255}, cell.Fg)
}

func TestSgrSeparatorFormsAgree(t *testing.T) {
	semicolon := sgrTemplate(t, "\x1b[48;2;1;2;3m")
	colon := sgrTemplate(t, "\x1b[48:2:1:2:3m")

	assert.Equal(t, semicolon.Bg, colon.Bg)
}

func TestSgrUnderlineStyles(t *testing.T) {
	tests := []struct {
		sequence string
		flag     CellFlags
	}{
		{"\x1b[4m", CellFlagUnderline},
		{"\x1b[4:1m", CellFlagUnderline},
		{"\x1b[4:2m", CellFlagDoubleUnderline},
		{"\x1b[4:3m", CellFlagCurlyUnderline},
		{"\x1b[4:4m", CellFlagDottedUnderline},
		{"\x1b[4:5m", CellFlagDashedUnderline},
		{"\x1b[21m", CellFlagDoubleUnderline},
	}

	for _, tc := range tests {
		cell := sgrTemplate(t, tc.sequence)
		assert.Equal(t, tc.flag, cell.Flags&underlineFlags, "sequence %q", tc.sequence)
	}
}

func TestSgrUnderlineStyleZeroAndReset(t *testing.T) {
	assert.Equal(t, CellFlags(0), sgrTemplate(t, "\x1b[4m\x1b[4:0m").Flags&underlineFlags)
	assert.Equal(t, CellFlags(0), sgrTemplate(t, "\x1b[4:3m\x1b[24m").Flags&underlineFlags)
}

func TestSgrUnderlineColor(t *testing.T) {
	cell := sgrTemplate(t, "\x1b[58;2;9;8;7m")
	assert.Equal(t, color.RGBA{R: 9, G: 8, B: 7, A: 255}, cell.UnderlineColor)

	cell = sgrTemplate(t, "\x1b[58;2;9;8;7m\x1b[59m")
	assert.Nil(t, cell.UnderlineColor)
}

func TestSgrUnknownParamsSkipped(t *testing.T) {
	cell := sgrTemplate(t, "\x1b[99;31;77m")

	assert.Equal(t, IndexedColor{Index: 1}, cell.Fg, "known params around unknown ones still apply")
}

func TestSgrMalformedExtendedColorConsumed(t *testing.T) {
	// A truncated 38;2 color must not bleed its arguments into other attributes.
	cell := sgrTemplate(t, "\x1b[38;2;10m")

	assert.Equal(t, NamedColor{Name: NamedColorForeground}, cell.Fg)
	assert.Equal(t, CellFlags(0), cell.Flags)
}
