package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	reset = "\033[0m"
	bold  = "\033[1m"
	dim   = "\033[2m"

	fgGray   = "\033[90m"
	fgGreen  = "\033[32m"
	fgYellow = "\033[33m"
	fgBlue   = "\033[34m"
	fgRed    = "\033[31m"

	symCheck = "✔"
	symCross = "✖"
)

var (
	forceColor   bool
	disableColor bool
)

func setColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
}

// SetColorMode applies the ui.color setting: auto, always or never.
// Call it before SetTheme; the mono theme turns colour off regardless.
func SetColorMode(mode string) error {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		setColorForcing(false, false)
	case "always":
		setColorForcing(true, false)
	case "never":
		setColorForcing(false, true)
	default:
		return fmt.Errorf("unknown color mode %q (want auto, always or never)", mode)
	}
	return nil
}

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// C colours s for stdout.
func C(color, s string) string { return colorFor(os.Stdout, color, s) }

// colorFor colours s when w is a terminal or colour is forced.
func colorFor(w io.Writer, color, s string) string {
	if disableColor || color == "" {
		return s
	}
	if forceColor || isTTY(w) {
		return color + s + reset
	}
	return s
}

func Dim(s string) string { return C(dim, s) }

func OK(w io.Writer, msg string)   { fmt.Fprintln(w, colorFor(w, fgGreen, symCheck+" "+msg)) }
func Fail(w io.Writer, msg string) { fmt.Fprintln(w, colorFor(w, fgRed, symCross+" "+msg)) }
func Hint(w io.Writer, msg string) { fmt.Fprintln(w, colorFor(w, fgGray, msg)) }
