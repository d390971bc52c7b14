package termcore

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingClipboard struct {
	content map[byte][]byte
	reads   []byte
}

func newRecordingClipboard() *recordingClipboard {
	return &recordingClipboard{content: make(map[byte][]byte)}
}

func (c *recordingClipboard) Read(clipboard byte) string {
	c.reads = append(c.reads, clipboard)
	return string(c.content[clipboard])
}

func (c *recordingClipboard) Write(clipboard byte, data []byte) {
	c.content[clipboard] = data
}

type recordingHyperlink struct {
	opened []Hyperlink
	closes int
}

func (h *recordingHyperlink) Open(id, uri string) {
	h.opened = append(h.opened, Hyperlink{ID: id, URI: uri})
}

func (h *recordingHyperlink) Close() { h.closes++ }

type recordingOsc struct {
	commands []int
	payloads []string
}

func (o *recordingOsc) Receive(command int, payload []byte) {
	o.commands = append(o.commands, command)
	o.payloads = append(o.payloads, string(payload))
}

func TestOscTitleAndIcon(t *testing.T) {
	titles := &recordingTitle{}
	term := New(WithTitle(titles))

	term.WriteString("\x1b]2;window\x07")
	term.WriteString("\x1b]1;icon\x07")

	assert.Equal(t, "window", term.Title())
	assert.Equal(t, "icon", term.IconTitle())
	assert.Equal(t, []string{"window"}, titles.titles)
	assert.Equal(t, []string{"icon"}, titles.icons)
}

func TestOscTitleUtf8(t *testing.T) {
	term := New()

	term.WriteString("\x1b]0;héllo 世界\x1b\\")

	assert.Equal(t, "héllo 世界", term.Title())
}

func TestOscHyperlink(t *testing.T) {
	links := &recordingHyperlink{}
	term := New(WithSize(1, 10), WithHyperlink(links))

	term.WriteString("\x1b]8;id=foo;http://example.com\x1b\\ab\x1b]8;;\x1b\\c")

	require.Len(t, links.opened, 1)
	assert.Equal(t, "foo", links.opened[0].ID)
	assert.Equal(t, "http://example.com", links.opened[0].URI)
	assert.Equal(t, 1, links.closes)

	require.NotNil(t, term.Cell(0, 0).Hyperlink)
	assert.Equal(t, "http://example.com", term.Cell(0, 0).Hyperlink.URI)
	assert.NotNil(t, term.Cell(0, 1).Hyperlink)
	assert.Nil(t, term.Cell(0, 2).Hyperlink, "cells after the close carry no link")
}

func TestOscClipboardStore(t *testing.T) {
	clip := newRecordingClipboard()
	term := New(WithClipboard(clip))

	term.WriteString("\x1b]52;c;aGVsbG8=\x07") // "hello"

	assert.Equal(t, []byte("hello"), clip.content['c'])
}

func TestOscClipboardQuery(t *testing.T) {
	clip := newRecordingClipboard()
	clip.content['c'] = []byte("hi")
	var response bytes.Buffer
	term := New(WithClipboard(clip), WithResponse(&response))

	term.WriteString("\x1b]52;c;?\x07")

	assert.Equal(t, []byte{'c'}, clip.reads)
	assert.Equal(t, "\x1b]52;c;aGk=\x07", response.String())
}

func TestOscClipboardQueryStTerminated(t *testing.T) {
	clip := newRecordingClipboard()
	clip.content['c'] = []byte("hi")
	var response bytes.Buffer
	term := New(WithClipboard(clip), WithResponse(&response))

	term.WriteString("\x1b]52;c;?\x1b\\")

	assert.Equal(t, "\x1b]52;c;aGk=\x1b\\", response.String())
}

func TestOscClipboardBadBase64Dropped(t *testing.T) {
	clip := newRecordingClipboard()
	term := New(WithClipboard(clip))

	term.WriteString("\x1b]52;c;!!!not-base64!!!\x07")

	assert.Empty(t, clip.content)
}

func TestOscWorkingDirectory(t *testing.T) {
	term := New()

	term.WriteString("\x1b]7;file://host/home/user/src\x07")

	assert.Equal(t, "file://host/home/user/src", term.WorkingDirectory())
	assert.Equal(t, "/home/user/src", term.WorkingDirectoryPath())
}

func TestOscOtherForwardedRaw(t *testing.T) {
	osc := &recordingOsc{}
	term := New(WithOsc(osc))

	term.WriteString("\x1b]133;A\x07")
	term.WriteString("\x1b]9;notification text\x07")

	assert.Equal(t, []int{133, 9}, osc.commands)
	assert.Equal(t, []string{"A", "notification text"}, osc.payloads)
}

func TestOscNonNumericForwardedRaw(t *testing.T) {
	osc := &recordingOsc{}
	term := New(WithOsc(osc))

	term.WriteString("\x1b]garbage;stuff\x07")

	assert.Equal(t, []int{-1}, osc.commands)
	assert.Equal(t, []string{"garbage;stuff"}, osc.payloads)
}

func TestOscTitleStack(t *testing.T) {
	term := New()

	term.WriteString("\x1b]2;first\x07")
	term.WriteString("\x1b[22;0t")
	term.WriteString("\x1b]2;second\x07")
	assert.Equal(t, "second", term.Title())

	term.WriteString("\x1b[23;0t")
	assert.Equal(t, "first", term.Title())
}
