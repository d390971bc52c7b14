package termcore

import (
	"errors"
	"fmt"
	"sync"
)

// Ensure Terminal implements the parser's Handler interface.
var _ Handler = (*Terminal)(nil)

// TerminalMode is a bitmask of terminal behavior flags.
// Multiple modes can be active simultaneously.
type TerminalMode uint32

const (
	// ModeCursorKeys enables application cursor key mode (DECCKM).
	ModeCursorKeys TerminalMode = 1 << iota
	// ModeInsert enables insert mode (characters shift right instead of overwrite).
	ModeInsert
	// ModeOrigin enables origin mode (cursor positioning relative to scroll region).
	ModeOrigin
	// ModeLineWrap enables automatic line wrapping at column boundaries (DECAWM).
	ModeLineWrap
	// ModeShowCursor makes the cursor visible (DECTCEM).
	ModeShowCursor
	// ModeReportMouseClicks enables mouse click reporting.
	ModeReportMouseClicks
	// ModeReportCellMouseMotion enables mouse motion reporting (cell-based).
	ModeReportCellMouseMotion
	// ModeReportAllMouseMotion enables reporting of all mouse motion events.
	ModeReportAllMouseMotion
	// ModeReportFocusInOut enables focus in/out event reporting.
	ModeReportFocusInOut
	// ModeUTF8Mouse enables UTF-8 mouse encoding.
	ModeUTF8Mouse
	// ModeSGRMouse enables SGR mouse encoding.
	ModeSGRMouse
	// ModeBracketedPaste enables bracketed paste mode.
	ModeBracketedPaste
	// ModeKeypadApplication enables application keypad mode.
	ModeKeypadApplication
	// ModeAltScreen is set while the alternate screen is active.
	ModeAltScreen
)

const (
	// DEFAULT_ROWS is the default number of terminal rows.
	DEFAULT_ROWS = 24
	// DEFAULT_COLS is the default number of terminal columns.
	DEFAULT_COLS = 80
	// DEFAULT_SCROLLBACK is the default scrollback capacity in lines.
	DEFAULT_SCROLLBACK = 1000
	// MAX_DIMENSION bounds rows and columns.
	MAX_DIMENSION = 1000
)

// Typed failures for caller contract violations.
var (
	// ErrInvalidDimensions reports a Resize outside [1, MAX_DIMENSION].
	ErrInvalidDimensions = errors.New("termcore: invalid dimensions")
	// ErrOutOfRange reports a row query outside the visible grid.
	ErrOutOfRange = errors.New("termcore: row out of range")
)

// Terminal emulates a VT100/xterm-compatible display without rendering it.
// It consumes the byte stream of a PTY and maintains two screens: primary
// (with scrollback) and alternate (without). Rendering consumers read lines
// through the scrollback-aware viewport and repaint the rows reported dirty.
// Each operation and query takes an internal lock. Write feeds a single
// parser whose state is not locked, so concurrent Write calls are not safe.
type Terminal struct {
	mu sync.RWMutex

	// Dimensions
	rows int
	cols int

	// Screens
	primary   *Screen
	alternate *Screen
	active    *Screen

	// Scrolling region (0-based, exclusive bottom)
	scrollTop    int
	scrollBottom int

	// Modes
	modes TerminalMode

	// Charsets
	charsets      [4]Charset
	activeCharset int

	// Titles
	title      string
	iconTitle  string
	titleStack []string

	// Hyperlink applied to new cells
	currentHyperlink *Hyperlink

	// Working directory (OSC 7)
	workingDir string

	// Viewport offset from the live bottom; 0 shows the live screen.
	viewport int

	// Last printed character, for REP
	lastPrinted rune

	// Selection
	selection Selection

	// Byte stream decoder
	parser *Parser

	// Scrollback storage backing the primary screen
	scrollbackStorage ScrollbackProvider

	// Providers for external data/actions
	responseProvider  ResponseProvider
	bellProvider      BellProvider
	titleProvider     TitleProvider
	clipboardProvider ClipboardProvider
	hyperlinkProvider HyperlinkProvider
	oscProvider       OscProvider
	resizeProvider    ResizeProvider
	recordingProvider RecordingProvider
}

// Option configures a Terminal during construction.
type Option func(*Terminal)

// WithSize sets the terminal dimensions.
// Values outside [1, MAX_DIMENSION] are replaced with the defaults (24x80).
func WithSize(rows, cols int) Option {
	if rows < 1 || rows > MAX_DIMENSION {
		rows = DEFAULT_ROWS
	}
	if cols < 1 || cols > MAX_DIMENSION {
		cols = DEFAULT_COLS
	}

	return func(t *Terminal) {
		t.rows = rows
		t.cols = cols
	}
}

// WithScrollback sets the storage for scrollback lines.
// Lines scrolled off the top of the primary screen are pushed here.
func WithScrollback(storage ScrollbackProvider) Option {
	return func(t *Terminal) {
		t.scrollbackStorage = storage
	}
}

// WithMaxScrollback sets the capacity of the default in-memory scrollback
// ring. A capacity of 0 disables scrollback.
func WithMaxScrollback(lines int) Option {
	return func(t *Terminal) {
		t.scrollbackStorage = NewRingScrollback(lines)
	}
}

// WithResponse sets the writer for terminal responses (e.g., cursor position reports).
// If nil, responses are discarded.
func WithResponse(p ResponseProvider) Option {
	return func(t *Terminal) {
		t.responseProvider = p
	}
}

// WithBell sets the handler for bell/beep events.
// Defaults to a no-op if not set.
func WithBell(p BellProvider) Option {
	return func(t *Terminal) {
		t.bellProvider = p
	}
}

// WithTitle sets the handler for window title changes.
// Defaults to a no-op if not set.
func WithTitle(p TitleProvider) Option {
	return func(t *Terminal) {
		t.titleProvider = p
	}
}

// WithClipboard sets the handler for clipboard read/write operations (OSC 52).
// Defaults to a no-op if not set.
func WithClipboard(p ClipboardProvider) Option {
	return func(t *Terminal) {
		t.clipboardProvider = p
	}
}

// WithHyperlink sets the observer for hyperlink open/close events (OSC 8).
// Defaults to a no-op if not set.
func WithHyperlink(p HyperlinkProvider) Option {
	return func(t *Terminal) {
		t.hyperlinkProvider = p
	}
}

// WithOsc sets the handler for OSC sequences the terminal does not interpret.
// Defaults to a no-op if not set.
func WithOsc(p OscProvider) Option {
	return func(t *Terminal) {
		t.oscProvider = p
	}
}

// WithResizeNotify sets the observer for dimension changes.
// Defaults to a no-op if not set.
func WithResizeNotify(p ResizeProvider) Option {
	return func(t *Terminal) {
		t.resizeProvider = p
	}
}

// WithRecording sets the handler for capturing raw input bytes before
// parsing. Useful for replay, debugging, or regression testing.
func WithRecording(p RecordingProvider) Option {
	return func(t *Terminal) {
		t.recordingProvider = p
	}
}

// New creates a terminal with the given options.
// Defaults to 24x80 with line wrap and cursor visible, and an in-memory
// scrollback ring of DEFAULT_SCROLLBACK lines.
func New(opts ...Option) *Terminal {
	t := &Terminal{
		rows:              DEFAULT_ROWS,
		cols:              DEFAULT_COLS,
		bellProvider:      NoopBell{},
		titleProvider:     NoopTitle{},
		clipboardProvider: NoopClipboard{},
		hyperlinkProvider: NoopHyperlink{},
		oscProvider:       NoopOsc{},
		resizeProvider:    NoopResize{},
		recordingProvider: NoopRecording{},
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.scrollbackStorage == nil {
		t.scrollbackStorage = NewRingScrollback(DEFAULT_SCROLLBACK)
	}
	t.primary = newScreen(t.rows, t.cols, t.scrollbackStorage)
	t.alternate = newScreen(t.rows, t.cols, NoopScrollback{}) // no scrollback on the alternate screen
	t.active = t.primary

	t.scrollTop = 0
	t.scrollBottom = t.rows

	t.modes = ModeLineWrap | ModeShowCursor

	t.parser = NewParser(t)

	return t
}

// Print implements Handler: a decoded printable scalar.
func (t *Terminal) Print(r rune) {
	t.Input(r)
}

// Execute implements Handler: a C0 control byte.
func (t *Terminal) Execute(b byte) {
	switch b {
	case 0x07: // BEL
		t.Bell()
	case 0x08: // BS
		t.Backspace()
	case 0x09: // HT
		t.Tab(1)
	case 0x0a, 0x0b, 0x0c: // LF, VT, FF
		t.LineFeed()
	case 0x0d: // CR
		t.CarriageReturn()
	case 0x0e: // SO: invoke G1
		t.SetActiveCharset(1)
	case 0x0f: // SI: invoke G0
		t.SetActiveCharset(0)
	}
	// NUL, DEL, and the remaining C0 bytes are ignored.
}

// Write processes raw bytes, parsing escape sequences and updating the
// terminal state. New output snaps the viewport back to the live screen.
// Implements io.Writer; the call never fails.
func (t *Terminal) Write(data []byte) (int, error) {
	t.recordingProvider.Record(data)

	t.mu.Lock()
	t.viewport = 0
	t.mu.Unlock()

	return t.parser.Write(data)
}

// WriteString is a convenience method that converts the string to bytes and calls Write.
func (t *Terminal) WriteString(s string) (int, error) {
	return t.Write([]byte(s))
}

// Resize changes the terminal dimensions, resizing both screens. Content is
// preserved at the top-left; cursors are clamped; a scroll region that no
// longer fits is reset to the full screen; tab stops return to the default
// 8-column grid. Dimensions outside [1, MAX_DIMENSION] are rejected.
func (t *Terminal) Resize(rows, cols int) error {
	if rows < 1 || rows > MAX_DIMENSION || cols < 1 || cols > MAX_DIMENSION {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}

	t.mu.Lock()

	oldRows := t.rows

	t.rows = rows
	t.cols = cols
	t.primary.buffer.Resize(rows, cols)
	t.alternate.buffer.Resize(rows, cols)

	for _, scr := range []*Screen{t.primary, t.alternate} {
		scr.cursor.Row = clamp(scr.cursor.Row, 0, rows-1)
		scr.cursor.Col = clamp(scr.cursor.Col, 0, cols-1)
		scr.pendingScroll = false
	}

	if t.scrollBottom >= oldRows || t.scrollBottom > rows || t.scrollTop >= rows {
		t.scrollTop = 0
		t.scrollBottom = rows
	}

	if t.viewport > t.primary.buffer.ScrollbackLen() {
		t.viewport = t.primary.buffer.ScrollbackLen()
	}

	provider := t.resizeProvider
	t.mu.Unlock()

	guard(func() { provider.Resized(rows, cols) })
	return nil
}

// Rows returns the terminal height in character rows.
func (t *Terminal) Rows() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.rows
}

// Cols returns the terminal width in character columns.
func (t *Terminal) Cols() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cols
}

// Cell returns the cell at (row, col) in the active screen, ignoring the
// viewport. Returns nil if coordinates are out of bounds.
func (t *Terminal) Cell(row, col int) *Cell {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active.buffer.Cell(row, col)
}

// CursorPos returns the current cursor position (0-based). The column may
// equal Cols when the cursor rests in the deferred-wrap position.
func (t *Terminal) CursorPos() (row, col int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active.cursor.Row, t.active.cursor.Col
}

// CursorVisible returns true if the cursor is currently visible.
func (t *Terminal) CursorVisible() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active.cursor.Visible
}

// CursorStyle returns the current cursor rendering style.
func (t *Terminal) CursorStyle() CursorStyle {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active.cursor.Style
}

// Title returns the current window title string.
func (t *Terminal) Title() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.title
}

// IconTitle returns the current icon title string.
func (t *Terminal) IconTitle() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.iconTitle
}

// HasMode returns true if the specified mode flag is enabled.
func (t *Terminal) HasMode(mode TerminalMode) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.modes&mode != 0
}

// IsAlternateScreen returns true if the alternate screen is currently active.
func (t *Terminal) IsAlternateScreen() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.modes&ModeAltScreen != 0
}

// ScrollRegion returns the current scrolling boundaries (0-based, exclusive bottom).
func (t *Terminal) ScrollRegion() (top, bottom int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.scrollTop, t.scrollBottom
}

// --- Alternate screen ---

// enterAltScreen switches to the alternate screen, clearing it first.
// With saveCursor set (?1049), the primary cursor state is saved for the
// matching exit.
func (t *Terminal) enterAltScreen(saveCursor bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.modes&ModeAltScreen != 0 {
		return
	}
	if saveCursor {
		t.saveCursorLocked(t.primary)
	}
	t.alternate.reset()
	t.active = t.alternate
	t.modes |= ModeAltScreen
	t.viewport = 0
}

// exitAltScreen restores the primary screen verbatim. With restoreCursor set
// (?1049), the saved primary cursor state is restored as well.
func (t *Terminal) exitAltScreen(restoreCursor bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.modes&ModeAltScreen == 0 {
		return
	}
	t.active = t.primary
	t.modes &^= ModeAltScreen
	if restoreCursor {
		t.restoreCursorLocked(t.primary)
	}
}

// --- Viewport ---

// ViewportOffset returns the current offset from the live bottom; 0 shows
// the live screen.
func (t *Terminal) ViewportOffset() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.viewport
}

// SetViewportOffset positions the viewport offset lines above the live
// bottom, clamped to [0, scrollback length]. While the alternate screen is
// active the offset stays 0.
func (t *Terminal) SetViewportOffset(offset int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.modes&ModeAltScreen != 0 {
		t.viewport = 0
		return
	}
	t.viewport = clamp(offset, 0, t.primary.buffer.ScrollbackLen())
}

// ScrollViewport moves the viewport by delta lines; positive values scroll
// into history.
func (t *Terminal) ScrollViewport(delta int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.modes&ModeAltScreen != 0 {
		t.viewport = 0
		return
	}
	t.viewport = clamp(t.viewport+delta, 0, t.primary.buffer.ScrollbackLen())
}

// Line returns the viewport row at the given index as exactly Cols cells.
// With a viewport offset of n, the first n rows come from scrollback history
// and the remaining rows from the top of the live screen. Rows outside
// [0, Rows) fail with ErrOutOfRange.
func (t *Terminal) Line(row int) ([]Cell, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if row < 0 || row >= t.rows {
		return nil, fmt.Errorf("%w: %d", ErrOutOfRange, row)
	}

	offset := t.viewport
	if t.modes&ModeAltScreen != 0 {
		offset = 0
	}
	if sb := t.primary.buffer.ScrollbackLen(); offset > sb {
		offset = sb
	}

	if offset > 0 && row < offset {
		sb := t.primary.buffer
		return normalizeLine(sb.ScrollbackLine(sb.ScrollbackLen()-offset+row), t.cols), nil
	}
	return normalizeLine(t.active.buffer.Row(row-offset), t.cols), nil
}

// normalizeLine pads or truncates a stored line to exactly cols cells.
// A wide character split by the cut loses its surviving half.
func normalizeLine(line []Cell, cols int) []Cell {
	out := make([]Cell, cols)
	n := copy(out, line)
	for i := n; i < cols; i++ {
		out[i] = NewCell()
	}
	if cols > 0 && out[cols-1].IsWide() {
		out[cols-1].Reset()
	}
	if len(out) > 0 && out[0].IsWideSpacer() {
		out[0].Reset()
	}
	return out
}

// --- Dirty tracking ---

// HasDirty returns true if any row of the active screen was modified since
// the last ClearDirty call.
func (t *Terminal) HasDirty() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active.buffer.HasDirty()
}

// DirtyRows returns the indices of all rows modified since the last
// ClearDirty call, in ascending order.
func (t *Terminal) DirtyRows() []int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active.buffer.DirtyRows()
}

// ClearDirty marks all rows as clean, resetting the dirty tracking state.
func (t *Terminal) ClearDirty() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active.buffer.ClearDirty()
}

// --- Scrollback ---

// ScrollbackLen returns the number of lines stored in scrollback (primary screen only).
func (t *Terminal) ScrollbackLen() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.primary.buffer.ScrollbackLen()
}

// ScrollbackLine returns a line from scrollback, where 0 is the oldest line.
// Returns nil if index is out of range.
func (t *Terminal) ScrollbackLine(index int) []Cell {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.primary.buffer.ScrollbackLine(index)
}

// ClearScrollback removes all stored scrollback lines.
func (t *Terminal) ClearScrollback() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.primary.buffer.ClearScrollback()
	t.viewport = 0
}

// SetMaxScrollback sets the maximum number of scrollback lines to retain.
// Older lines are removed when the limit is exceeded.
func (t *Terminal) SetMaxScrollback(max int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.primary.buffer.SetMaxScrollback(max)
	if t.viewport > t.primary.buffer.ScrollbackLen() {
		t.viewport = t.primary.buffer.ScrollbackLen()
	}
}

// MaxScrollback returns the current maximum scrollback capacity.
func (t *Terminal) MaxScrollback() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.primary.buffer.MaxScrollback()
}

// --- Wrapped line tracking ---

// IsWrapped returns true if the line was wrapped due to column overflow,
// false if it ended with an explicit newline.
func (t *Terminal) IsWrapped(row int) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active.buffer.IsWrapped(row)
}

// SetWrapped sets whether the line was wrapped or ended with an explicit newline.
func (t *Terminal) SetWrapped(row int, wrapped bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active.buffer.SetWrapped(row, wrapped)
}

// --- Convenience ---

// LineContent returns the text content of a line of the active screen,
// trimming trailing spaces.
func (t *Terminal) LineContent(row int) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active.buffer.LineContent(row)
}

// String returns the visible screen content as a newline-separated string.
// Trailing empty lines are omitted. Implements fmt.Stringer.
func (t *Terminal) String() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	lines := make([]string, 0, t.rows)
	lastNonEmpty := -1

	for row := 0; row < t.rows; row++ {
		line := t.active.buffer.LineContent(row)
		lines = append(lines, line)
		if line != "" {
			lastNonEmpty = row
		}
	}

	if lastNonEmpty < 0 {
		return ""
	}

	result := ""
	for i, line := range lines[:lastNonEmpty+1] {
		if i > 0 {
			result += "\n"
		}
		result += line
	}

	return result
}

// --- Recording ---

// RecordedData returns all raw input bytes captured since the last ClearRecording call.
func (t *Terminal) RecordedData() []byte {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.recordingProvider.Data()
}

// ClearRecording discards all captured input data.
func (t *Terminal) ClearRecording() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.recordingProvider.Clear()
}

// --- Provider accessors ---

// SetResponseProvider sets the response provider at runtime.
func (t *Terminal) SetResponseProvider(p ResponseProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.responseProvider = p
}

// ResponseProvider returns the current response provider.
func (t *Terminal) ResponseProvider() ResponseProvider {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.responseProvider
}

// SetBellProvider sets the bell provider at runtime.
func (t *Terminal) SetBellProvider(p BellProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bellProvider = p
}

// SetTitleProvider sets the title provider at runtime.
func (t *Terminal) SetTitleProvider(p TitleProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.titleProvider = p
}

// SetClipboardProvider sets the clipboard provider at runtime.
func (t *Terminal) SetClipboardProvider(p ClipboardProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clipboardProvider = p
}

// SetHyperlinkProvider sets the hyperlink provider at runtime.
func (t *Terminal) SetHyperlinkProvider(p HyperlinkProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hyperlinkProvider = p
}

// SetOscProvider sets the raw OSC provider at runtime.
func (t *Terminal) SetOscProvider(p OscProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.oscProvider = p
}

// writeResponse writes a response back via the response provider if set.
// The provider is read under lock to avoid races with SetResponseProvider.
func (t *Terminal) writeResponse(data []byte) {
	t.mu.RLock()
	provider := t.responseProvider
	t.mu.RUnlock()

	if provider != nil {
		guard(func() { _, _ = provider.Write(data) })
	}
}

// writeResponseString writes a string response back via the writer if set.
func (t *Terminal) writeResponseString(s string) {
	t.writeResponse([]byte(s))
}
