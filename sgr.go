package termcore

import "image/color"

// applySGR mutates the template according to an SGR parameter list.
// subparams marks parameters that arrived colon-separated, which matters for
// underline styles (4:3) and extended colors (38:2:...): both tokenizations
// of an extended color carry the same meaning. Unknown parameters are skipped.
func applySGR(tmpl *CellTemplate, params []int, subparams []bool) {
	if len(params) == 0 {
		*tmpl = NewCellTemplate()
		return
	}

	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			*tmpl = NewCellTemplate()
		case p == 1:
			tmpl.SetFlag(CellFlagBold)
		case p == 2:
			tmpl.SetFlag(CellFlagDim)
		case p == 3:
			tmpl.SetFlag(CellFlagItalic)
		case p == 4:
			if i+1 < len(params) && subparams[i+1] {
				i++
				setUnderlineStyle(tmpl, params[i])
			} else {
				setUnderline(tmpl, CellFlagUnderline)
			}
		case p == 5:
			tmpl.SetFlag(CellFlagBlinkSlow)
		case p == 6:
			tmpl.SetFlag(CellFlagBlinkFast)
		case p == 7:
			tmpl.SetFlag(CellFlagReverse)
		case p == 8:
			tmpl.SetFlag(CellFlagHidden)
		case p == 9:
			tmpl.SetFlag(CellFlagStrike)
		case p == 21:
			setUnderline(tmpl, CellFlagDoubleUnderline)
		case p == 22:
			tmpl.ClearFlag(CellFlagBold | CellFlagDim)
		case p == 23:
			tmpl.ClearFlag(CellFlagItalic)
		case p == 24:
			tmpl.ClearFlag(underlineFlags)
		case p == 25:
			tmpl.ClearFlag(CellFlagBlinkSlow | CellFlagBlinkFast)
		case p == 27:
			tmpl.ClearFlag(CellFlagReverse)
		case p == 28:
			tmpl.ClearFlag(CellFlagHidden)
		case p == 29:
			tmpl.ClearFlag(CellFlagStrike)
		case p >= 30 && p <= 37:
			tmpl.Fg = IndexedColor{Index: p - 30}
		case p == 38:
			if c := parseExtendedColor(params, subparams, &i); c != nil {
				tmpl.Fg = c
			}
		case p == 39:
			tmpl.Fg = NamedColor{Name: NamedColorForeground}
		case p >= 40 && p <= 47:
			tmpl.Bg = IndexedColor{Index: p - 40}
		case p == 48:
			if c := parseExtendedColor(params, subparams, &i); c != nil {
				tmpl.Bg = c
			}
		case p == 49:
			tmpl.Bg = NamedColor{Name: NamedColorBackground}
		case p == 58:
			if c := parseExtendedColor(params, subparams, &i); c != nil {
				tmpl.UnderlineColor = c
			}
		case p == 59:
			tmpl.UnderlineColor = nil
		case p >= 90 && p <= 97:
			tmpl.Fg = IndexedColor{Index: p - 90 + 8}
		case p >= 100 && p <= 107:
			tmpl.Bg = IndexedColor{Index: p - 100 + 8}
		}
	}
}

// setUnderline enables one underline style, clearing the others.
func setUnderline(tmpl *CellTemplate, flag CellFlags) {
	tmpl.ClearFlag(underlineFlags)
	tmpl.SetFlag(flag)
}

// setUnderlineStyle maps a 4:n subparameter to an underline style.
func setUnderlineStyle(tmpl *CellTemplate, style int) {
	switch style {
	case 0:
		tmpl.ClearFlag(underlineFlags)
	case 1:
		setUnderline(tmpl, CellFlagUnderline)
	case 2:
		setUnderline(tmpl, CellFlagDoubleUnderline)
	case 3:
		setUnderline(tmpl, CellFlagCurlyUnderline)
	case 4:
		setUnderline(tmpl, CellFlagDottedUnderline)
	case 5:
		setUnderline(tmpl, CellFlagDashedUnderline)
	}
}

// parseExtendedColor consumes the arguments of a 38/48/58 extended color
// specification starting at params[*i] and advances *i past them. Both the
// semicolon form (38;5;n and 38;2;r;g;b) and the colon form (38:5:n,
// 38:2:r:g:b, and 38:2:<colorspace>:r:g:b) are accepted. Returns nil when
// the specification is malformed; the malformed arguments are still consumed.
func parseExtendedColor(params []int, subparams []bool, i *int) color.Color {
	// Collect a colon-joined run following the introducer, if any.
	j := *i + 1
	var sub []int
	for j < len(params) && subparams[j] {
		sub = append(sub, params[j])
		j++
	}

	if len(sub) > 0 {
		*i = j - 1
		switch sub[0] {
		case 5:
			if len(sub) >= 2 {
				return IndexedColor{Index: clampColorComponent(sub[1])}
			}
		case 2:
			// With five or more arguments the second is a colorspace id.
			if len(sub) >= 5 {
				return rgbColor(sub[2], sub[3], sub[4])
			}
			if len(sub) == 4 {
				return rgbColor(sub[1], sub[2], sub[3])
			}
		}
		return nil
	}

	// Semicolon form: arguments are plain positional parameters.
	if *i+1 >= len(params) {
		return nil
	}
	switch params[*i+1] {
	case 5:
		if *i+2 < len(params) {
			c := IndexedColor{Index: clampColorComponent(params[*i+2])}
			*i += 2
			return c
		}
		*i = len(params)
	case 2:
		if *i+4 < len(params) {
			c := rgbColor(params[*i+2], params[*i+3], params[*i+4])
			*i += 4
			return c
		}
		*i = len(params)
	default:
		*i++
	}
	return nil
}

func rgbColor(r, g, b int) color.Color {
	return color.RGBA{
		R: uint8(clampColorComponent(r)),
		G: uint8(clampColorComponent(g)),
		B: uint8(clampColorComponent(b)),
		A: 255,
	}
}

func clampColorComponent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
