// Package termcore provides a headless VT100/xterm-compatible terminal
// emulator core.
//
// The package consumes the byte stream produced by a PTY (or any equivalent
// source) and maintains a faithful model of what a terminal display would
// show, without rendering anything. It is built for:
//   - Embedding a terminal model in GUI, TUI, or web front ends
//   - Testing terminal applications without a display
//   - Building multiplexers, recorders, and session players
//   - Screen scraping and automation of CLI tools
//
// # Quick Start
//
// Create a terminal and write ANSI sequences to it:
//
//	term := termcore.New()
//	term.WriteString("\x1b[31mHello \x1b[32mWorld\x1b[0m!")
//	fmt.Println(term.String()) // "Hello World!"
//
// # Architecture
//
// The package is organized around these core types:
//
//   - [Parser]: The byte-level escape sequence state machine
//   - [Terminal]: The orchestrator that executes decoded sequences
//   - [Screen]: One display surface: grid, cursor, attributes, saved cursor
//   - [Buffer]: A 2D grid of cells with tab stops and dirty-row tracking
//   - [Cell]: A single character with colors and attributes
//   - [RingScrollback]: Bounded in-memory history of scrolled-off lines
//
// Bytes flow from [Terminal.Write] through the Parser, which dispatches
// printable characters, C0 controls, CSI, ESC, and OSC sequences back into
// the Terminal via the [Handler] interface. The Terminal mutates the active
// Screen, pushes evicted lines to scrollback, and marks modified rows dirty.
//
// # Terminal
//
// Terminal is the main entry point. It implements [io.Writer] so you can
// write raw bytes containing ANSI escape sequences:
//
//	term := termcore.New(
//	    termcore.WithSize(24, 80),          // 24 rows, 80 columns
//	    termcore.WithMaxScrollback(10000),  // History capacity in lines
//	    termcore.WithResponse(ptyWriter),   // Route DSR/DA replies to the PTY
//	)
//
//	cmd := exec.Command("ls", "-la", "--color")
//	cmd.Stdout = term
//	cmd.Run()
//
//	for row := 0; row < term.Rows(); row++ {
//	    fmt.Println(term.LineContent(row))
//	}
//
// # Dual Screens
//
// Terminal maintains two screens:
//
//   - Primary: normal mode, feeds the scrollback ring
//   - Alternate: used by full-screen apps (vim, less, htop), no scrollback
//
// Applications switch screens via CSI ?47, ?1047, or ?1049. Nothing executed
// on the alternate screen can touch primary cells or scrollback. Check which
// screen is active with [Terminal.IsAlternateScreen].
//
// # Viewport
//
// Rendering consumers read the display through [Terminal.Line], which maps a
// window over the concatenation of scrollback and the live screen. The
// offset is controlled with [Terminal.SetViewportOffset] and
// [Terminal.ScrollViewport]; new output snaps it back to the live screen.
// [Terminal.DirtyRows] reports which rows changed since the last
// [Terminal.ClearDirty], so a renderer only repaints what moved.
//
// # Cells, Colors, and Wide Characters
//
// Each cell stores a character with styling information:
//
//	cell := term.Cell(row, col)
//	if cell != nil {
//	    fmt.Printf("Char: %c bold=%v fg=%v\n",
//	        cell.Char, cell.HasFlag(termcore.CellFlagBold), cell.Fg)
//	}
//
// Colors use Go's [image/color] interface with three concrete shapes:
// [NamedColor] (theme defaults, resolved only at render time),
// [IndexedColor] (the 256-color palette), and color.RGBA (truecolor).
// [ResolveColor] maps any of them onto the built-in palette for consumers
// that do not carry a theme.
//
// Characters with an East Asian Width of F or W (and the common emoji
// ranges) occupy a wide cell plus a spacer cell; the pair moves and dies
// atomically under every grid operation.
//
// # Providers
//
// Everything the terminal cannot answer by itself is delegated to a
// provider: bell, title changes, clipboard access (OSC 52), hyperlinks
// (OSC 8), uninterpreted OSC sequences, resize notifications, and the
// response channel for DSR/DA replies. Each provider has a Noop default, so
// consumers wire only what they need. A panicking provider is contained and
// never corrupts terminal state.
package termcore
