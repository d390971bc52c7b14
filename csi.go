package termcore

import (
	"bytes"
	"strconv"
)

// csiParam returns the parameter at index i, or def when it is absent or zero.
func csiParam(params []int, i, def int) int {
	if i < len(params) && params[i] > 0 {
		return params[i]
	}
	return def
}

// csiMode returns the raw parameter at index i, defaulting to 0 when absent.
// Used for selector parameters where 0 is meaningful.
func csiMode(params []int, i int) int {
	if i < len(params) {
		return params[i]
	}
	return 0
}

// CsiDispatch executes a complete CSI sequence. Row and column parameters
// are 1-based on the wire and converted to 0-based here; everything is
// clamped by the operations themselves. Unrecognized sequences are ignored.
func (t *Terminal) CsiDispatch(params []int, subparams []bool, intermediates []byte, final byte) {
	private := bytes.ContainsRune(intermediates, '?')

	if private {
		switch final {
		case 'h':
			t.setPrivateModes(params, true)
		case 'l':
			t.setPrivateModes(params, false)
		}
		return
	}

	if len(intermediates) > 0 {
		switch {
		case intermediates[0] == '!' && final == 'p':
			t.SoftReset()
		case intermediates[0] == ' ' && final == 'q':
			t.SetCursorStyle(cursorStyleFromParam(csiMode(params, 0)))
		case intermediates[0] == '>':
			// xterm resource and version queries are not answered.
		}
		return
	}

	switch final {
	case 'A':
		t.MoveUp(csiParam(params, 0, 1))
	case 'B':
		t.MoveDown(csiParam(params, 0, 1))
	case 'C', 'a':
		t.MoveForward(csiParam(params, 0, 1))
	case 'D':
		t.MoveBackward(csiParam(params, 0, 1))
	case 'E':
		t.MoveDownCr(csiParam(params, 0, 1))
	case 'F':
		t.MoveUpCr(csiParam(params, 0, 1))
	case 'G', '`':
		t.GotoCol(csiParam(params, 0, 1) - 1)
	case 'H', 'f':
		t.Goto(csiParam(params, 0, 1)-1, csiParam(params, 1, 1)-1)
	case 'd':
		t.GotoLine(csiParam(params, 0, 1) - 1)
	case 'e':
		t.MoveDown(csiParam(params, 0, 1))
	case 'J':
		mode := csiMode(params, 0)
		if mode >= 0 && mode <= 3 {
			t.ClearScreen(ScreenClearMode(mode))
		}
	case 'K':
		mode := csiMode(params, 0)
		if mode >= 0 && mode <= 2 {
			t.ClearLine(LineClearMode(mode))
		}
	case 'L':
		t.InsertBlankLines(csiParam(params, 0, 1))
	case 'M':
		t.DeleteLines(csiParam(params, 0, 1))
	case '@':
		t.InsertBlank(csiParam(params, 0, 1))
	case 'P':
		t.DeleteChars(csiParam(params, 0, 1))
	case 'X':
		t.EraseChars(csiParam(params, 0, 1))
	case 'S':
		t.ScrollUp(csiParam(params, 0, 1))
	case 'T':
		t.ScrollDown(csiParam(params, 0, 1))
	case 'I':
		t.MoveForwardTabs(csiParam(params, 0, 1))
	case 'Z':
		t.MoveBackwardTabs(csiParam(params, 0, 1))
	case 'g':
		mode := csiMode(params, 0)
		if mode == 0 || mode == 3 {
			t.ClearTabs(TabClearMode(mode))
		}
	case 'b':
		t.Repeat(csiParam(params, 0, 1))
	case 'm':
		t.mu.Lock()
		applySGR(&t.active.template, params, subparams)
		t.mu.Unlock()
	case 'h':
		t.setAnsiModes(params, true)
	case 'l':
		t.setAnsiModes(params, false)
	case 'r':
		t.SetScrollingRegion(csiParam(params, 0, 1), csiMode(params, 1))
	case 's':
		t.SaveCursorPosition()
	case 'u':
		t.RestoreCursorPosition()
	case 'n':
		t.DeviceStatus(csiMode(params, 0))
	case 'c':
		t.IdentifyTerminal()
	case 't':
		t.windowOp(params)
	}
}

// setPrivateModes applies DEC private set/reset (CSI ? ... h/l).
func (t *Terminal) setPrivateModes(params []int, set bool) {
	for _, p := range params {
		switch p {
		case 1:
			t.setModeFlag(ModeCursorKeys, set)
		case 6:
			t.setModeFlag(ModeOrigin, set)
			if set {
				t.mu.Lock()
				t.active.cursor.Row = t.scrollTop
				t.active.cursor.Col = 0
				t.mu.Unlock()
			}
		case 7:
			t.setModeFlag(ModeLineWrap, set)
		case 25:
			t.setModeFlag(ModeShowCursor, set)
			t.mu.Lock()
			t.active.cursor.Visible = set
			t.mu.Unlock()
		case 47, 1047:
			if set {
				t.enterAltScreen(false)
			} else {
				t.exitAltScreen(false)
			}
		case 1048:
			if set {
				t.SaveCursorPosition()
			} else {
				t.RestoreCursorPosition()
			}
		case 1049:
			if set {
				t.enterAltScreen(true)
			} else {
				t.exitAltScreen(true)
			}
		case 1000:
			t.setModeFlag(ModeReportMouseClicks, set)
		case 1002:
			t.setModeFlag(ModeReportCellMouseMotion, set)
		case 1003:
			t.setModeFlag(ModeReportAllMouseMotion, set)
		case 1004:
			t.setModeFlag(ModeReportFocusInOut, set)
		case 1005:
			t.setModeFlag(ModeUTF8Mouse, set)
		case 1006:
			t.setModeFlag(ModeSGRMouse, set)
		case 2004:
			t.setModeFlag(ModeBracketedPaste, set)
		}
	}
}

// setAnsiModes applies standard SM/RM (without the '?' marker).
func (t *Terminal) setAnsiModes(params []int, set bool) {
	for _, p := range params {
		if p == 4 {
			t.setModeFlag(ModeInsert, set)
		}
	}
}

func (t *Terminal) setModeFlag(mode TerminalMode, set bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if set {
		t.modes |= mode
	} else {
		t.modes &^= mode
	}
}

// windowOp handles the xterm window manipulation subset worth supporting in
// a headless core: title stack push/pop and the text-area size report.
func (t *Terminal) windowOp(params []int) {
	switch csiMode(params, 0) {
	case 18:
		t.mu.RLock()
		rows, cols := t.rows, t.cols
		t.mu.RUnlock()
		t.writeResponseString("\x1b[8;" + strconv.Itoa(rows) + ";" + strconv.Itoa(cols) + "t")
	case 22:
		t.PushTitle()
	case 23:
		t.PopTitle()
	}
}

func cursorStyleFromParam(p int) CursorStyle {
	switch p {
	case 0, 1:
		return CursorStyleBlinkingBlock
	case 2:
		return CursorStyleSteadyBlock
	case 3:
		return CursorStyleBlinkingUnderline
	case 4:
		return CursorStyleSteadyUnderline
	case 5:
		return CursorStyleBlinkingBar
	case 6:
		return CursorStyleSteadyBar
	default:
		return CursorStyleBlinkingBlock
	}
}
