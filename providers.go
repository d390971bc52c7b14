package termcore

import "io"

// ResponseProvider receives terminal responses (cursor position reports,
// device attributes, clipboard replies) to be written back to the PTY.
// Typically an io.Writer connected to the PTY input.
type ResponseProvider = io.Writer

// NoopResponse discards all response data (useful when responses are not needed).
type NoopResponse struct{}

func (NoopResponse) Write(p []byte) (n int, err error) {
	return len(p), nil
}

// --- Bell Provider ---

// BellProvider handles bell/beep events triggered by BEL (0x07) characters.
type BellProvider interface {
	// Ring is called when a bell character is received.
	Ring()
}

// NoopBell ignores all bell events.
type NoopBell struct{}

func (NoopBell) Ring() {}

// --- Title Provider ---

// TitleProvider handles window and icon title changes (OSC 0, 1, 2) and the
// xterm title stack (CSI 22/23 t).
type TitleProvider interface {
	// SetTitle is called when the window title changes.
	SetTitle(title string)
	// SetIconTitle is called when the icon title changes.
	SetIconTitle(title string)
	// PushTitle saves the current title to the stack.
	PushTitle()
	// PopTitle restores the title from the stack.
	PopTitle()
}

// NoopTitle ignores all title operations.
type NoopTitle struct{}

func (NoopTitle) SetTitle(title string)     {}
func (NoopTitle) SetIconTitle(title string) {}
func (NoopTitle) PushTitle()                {}
func (NoopTitle) PopTitle()                 {}

// --- Clipboard Provider ---

// ClipboardProvider handles clipboard read/write operations (OSC 52).
// An implementation may refuse either direction by doing nothing.
type ClipboardProvider interface {
	// Read returns content from the specified clipboard ('c' for clipboard, 'p' for primary selection).
	Read(clipboard byte) string
	// Write stores content to the specified clipboard.
	Write(clipboard byte, data []byte)
}

// NoopClipboard ignores all clipboard operations.
type NoopClipboard struct{}

func (NoopClipboard) Read(clipboard byte) string        { return "" }
func (NoopClipboard) Write(clipboard byte, data []byte) {}

// --- Hyperlink Provider ---

// HyperlinkProvider observes hyperlink state changes (OSC 8). Between Open
// and Close, every printed cell carries the link in its attributes.
type HyperlinkProvider interface {
	// Open is called when a hyperlink starts.
	Open(id, uri string)
	// Close is called when the current hyperlink ends.
	Close()
}

// NoopHyperlink ignores all hyperlink events.
type NoopHyperlink struct{}

func (NoopHyperlink) Open(id, uri string) {}
func (NoopHyperlink) Close()              {}

// --- OSC Provider ---

// OscProvider receives OSC sequences the terminal does not interpret itself,
// as a raw command number and payload. A command of -1 marks a payload whose
// command could not be parsed. A sequence that exceeds the parser's 64 KiB
// payload bound is dropped by the parser and never reaches the provider.
type OscProvider interface {
	// Receive is called with the command number and the payload after the first ';'.
	Receive(command int, payload []byte)
}

// NoopOsc ignores all uninterpreted OSC sequences.
type NoopOsc struct{}

func (NoopOsc) Receive(command int, payload []byte) {}

// --- Resize Provider ---

// ResizeProvider observes terminal dimension changes.
type ResizeProvider interface {
	// Resized is called after both screens have been resized.
	Resized(rows, cols int)
}

// NoopResize ignores all resize events.
type NoopResize struct{}

func (NoopResize) Resized(rows, cols int) {}

// --- Scrollback Provider ---

// ScrollbackProvider stores lines scrolled off the top of the primary buffer.
// Implementations can use in-memory storage, disk, database, etc.
type ScrollbackProvider interface {
	// Push appends a line to scrollback. Oldest lines should be removed if MaxLines is exceeded.
	Push(line []Cell)
	// Len returns the current number of stored lines.
	Len() int
	// Line returns the line at index, where 0 is the oldest line. Returns nil if out of range.
	Line(index int) []Cell
	// Clear removes all stored lines.
	Clear()
	// SetMaxLines sets the maximum capacity. Implementations should trim oldest lines if needed.
	SetMaxLines(max int)
	// MaxLines returns the current maximum capacity.
	MaxLines() int
}

// NoopScrollback discards all scrollback lines (used for the alternate buffer, which has no scrollback).
type NoopScrollback struct{}

func (NoopScrollback) Push(line []Cell)      {}
func (NoopScrollback) Len() int              { return 0 }
func (NoopScrollback) Line(index int) []Cell { return nil }
func (NoopScrollback) Clear()                {}
func (NoopScrollback) SetMaxLines(max int)   {}
func (NoopScrollback) MaxLines() int         { return 0 }

// --- Recording Provider ---

// RecordingProvider captures raw input bytes before parsing for replay or debugging.
type RecordingProvider interface {
	// Record appends raw bytes to the recording.
	Record(data []byte)
	// Data returns all captured bytes since the last Clear call.
	Data() []byte
	// Clear discards all recorded data.
	Clear()
}

// NoopRecording discards all input recordings.
type NoopRecording struct{}

func (NoopRecording) Record([]byte) {}
func (NoopRecording) Data() []byte  { return nil }
func (NoopRecording) Clear()        {}

// Ensure implementations satisfy their interfaces
var (
	_ ResponseProvider   = NoopResponse{}
	_ BellProvider       = NoopBell{}
	_ TitleProvider      = NoopTitle{}
	_ ClipboardProvider  = NoopClipboard{}
	_ HyperlinkProvider  = NoopHyperlink{}
	_ OscProvider        = NoopOsc{}
	_ ResizeProvider     = NoopResize{}
	_ ScrollbackProvider = NoopScrollback{}
	_ RecordingProvider  = NoopRecording{}
)

// guard runs a consumer callback, absorbing any panic so a failing provider
// cannot poison terminal state.
func guard(f func()) {
	defer func() {
		_ = recover()
	}()
	f()
}
