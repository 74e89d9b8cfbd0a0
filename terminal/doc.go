// @focus: #sys { term }
// Package terminal provides direct ANSI terminal control.
//
// It writes sparse cell changes produced upstream, so it keeps cursor and SGR
// state but no frame buffers of its own. Input is parsed from raw stdin into
// key events; resize arrives via SIGWINCH.
//
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal
