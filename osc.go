package termcore

import (
	"bytes"
	"encoding/base64"
	"net/url"
	"strconv"
	"strings"
)

// OscDispatch classifies a complete OSC payload. The payload splits at the
// first ';' into a numeric command and its argument; recognized commands are
// interpreted, everything else flows to the OSC provider untouched.
func (t *Terminal) OscDispatch(payload []byte, terminator OscTerminator) {
	cmdStr, rest, _ := bytes.Cut(payload, []byte{';'})

	cmd, err := strconv.Atoi(string(cmdStr))
	if err != nil {
		t.forwardOsc(-1, payload)
		return
	}

	switch cmd {
	case 0:
		title := string(rest)
		t.SetTitle(title)
		t.SetIconTitle(title)
	case 1:
		t.SetIconTitle(string(rest))
	case 2:
		t.SetTitle(string(rest))
	case 7:
		t.setWorkingDirectory(string(rest))
	case 8:
		t.oscHyperlink(rest)
	case 52:
		t.oscClipboard(rest, terminator)
	default:
		t.forwardOsc(cmd, rest)
	}
}

func (t *Terminal) forwardOsc(cmd int, payload []byte) {
	t.mu.RLock()
	provider := t.oscProvider
	t.mu.RUnlock()

	guard(func() { provider.Receive(cmd, payload) })
}

// oscHyperlink handles OSC 8: "params;URI". An empty URI closes the current
// hyperlink; params may carry an id=<value> pair among colon-separated keys.
func (t *Terminal) oscHyperlink(arg []byte) {
	paramStr, uri, ok := bytes.Cut(arg, []byte{';'})
	if !ok {
		return
	}

	if len(uri) == 0 {
		t.SetHyperlink(nil)
		return
	}

	var id string
	for _, kv := range strings.Split(string(paramStr), ":") {
		if v, found := strings.CutPrefix(kv, "id="); found {
			id = v
		}
	}

	t.SetHyperlink(&Hyperlink{ID: id, URI: string(uri)})
}

// oscClipboard handles OSC 52: "<target>;<base64>". A '?' payload queries
// the clipboard; anything else stores into it. Malformed base64 is dropped.
func (t *Terminal) oscClipboard(arg []byte, terminator OscTerminator) {
	targetStr, data, ok := bytes.Cut(arg, []byte{';'})
	if !ok {
		return
	}

	target := byte('c')
	if len(targetStr) > 0 {
		target = targetStr[0]
	}

	if string(data) == "?" {
		t.ClipboardLoad(target, terminator)
		return
	}

	decoded, err := base64.StdEncoding.DecodeString(string(data))
	if err != nil {
		return
	}
	t.ClipboardStore(target, decoded)
}

// setWorkingDirectory records the working directory reported via OSC 7.
func (t *Terminal) setWorkingDirectory(uri string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.workingDir = uri
}

// WorkingDirectory returns the working directory URI last reported via OSC 7.
func (t *Terminal) WorkingDirectory() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.workingDir
}

// WorkingDirectoryPath extracts the filesystem path from the OSC 7 URI.
// Returns empty if no directory was reported or the URI is not file://.
func (t *Terminal) WorkingDirectoryPath() string {
	t.mu.RLock()
	uri := t.workingDir
	t.mu.RUnlock()

	if uri == "" {
		return ""
	}
	if strings.HasPrefix(uri, "/") {
		return uri
	}
	if !strings.HasPrefix(uri, "file://") {
		return ""
	}

	parsed, err := url.Parse(uri)
	if err != nil || parsed.Path == "" {
		return ""
	}
	path, err := url.PathUnescape(parsed.Path)
	if err != nil {
		return ""
	}
	return path
}
