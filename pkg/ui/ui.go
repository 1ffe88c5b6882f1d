// Package ui formats the one-line operator diagnostics splashgen
// emits: warnings for tolerated gaps, errors for fatal conditions.
// Styling is dropped when the output is not a terminal so build logs
// stay clean.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// Warningf prints a one-line warning to w
func Warningf(w io.Writer, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, render(w, warnStyle, "Warning: "+msg))
}

// Errorf prints a one-line error to w
func Errorf(w io.Writer, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, render(w, errorStyle, "Error: "+msg))
}

func render(w io.Writer, style lipgloss.Style, msg string) string {
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return style.Render(msg)
	}
	return msg
}
