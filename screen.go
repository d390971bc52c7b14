package termcore

// Screen bundles one display surface: its cell grid, its cursor, the SGR
// template applied to new characters, and the DECSC-saved cursor. The
// primary and alternate screens each own a complete Screen, so switching
// between them is a pointer flip rather than a state copy.
type Screen struct {
	buffer   *Buffer
	cursor   *Cursor
	template CellTemplate
	saved    *SavedCursor

	// pendingScroll is set when a line feed on the region's last row has
	// logically moved the cursor below it; the scroll is deferred until the
	// next character actually needs the new line.
	pendingScroll bool
}

func newScreen(rows, cols int, storage ScrollbackProvider) *Screen {
	return &Screen{
		buffer:   NewBufferWithStorage(rows, cols, storage),
		cursor:   NewCursor(),
		template: NewCellTemplate(),
	}
}

// Buffer returns the screen's cell grid.
func (s *Screen) Buffer() *Buffer {
	return s.buffer
}

// Cursor returns the screen's cursor.
func (s *Screen) Cursor() *Cursor {
	return s.cursor
}

// reset clears the grid and restores cursor and attributes to their initial
// state. Used on every entry into the alternate screen.
func (s *Screen) reset() {
	s.buffer.ClearAll()
	s.cursor.Row = 0
	s.cursor.Col = 0
	s.template = NewCellTemplate()
	s.saved = nil
	s.pendingScroll = false
}
