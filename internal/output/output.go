// Package output provides consistent CLI status output with optional colour.
package output

import (
	"fmt"
	"io"
	"strings"
)

// Writer prints status lines for the CLI. Reports go to stdout; a Writer is
// normally bound to stderr so that piped reports stay clean.
type Writer struct {
	out    io.Writer
	styles Styles
}

// New creates a Writer. Colour is applied only when useColor is set.
func New(out io.Writer, useColor bool) *Writer {
	return &Writer{
		out:    out,
		styles: GetStyles(!useColor),
	}
}

// Styles returns the styles in use.
func (w *Writer) Styles() Styles {
	return w.styles
}

// Status prints a status message with an icon.
// Errors from writing are intentionally ignored for console output.
func (w *Writer) Status(icon, msg string) {
	if icon != "" {
		_, _ = fmt.Fprintf(w.out, "%s %s\n", icon, msg)
	} else {
		_, _ = fmt.Fprintf(w.out, "   %s\n", msg)
	}
}

// Statusf prints a formatted status message with an icon.
func (w *Writer) Statusf(icon, format string, args ...any) {
	w.Status(icon, fmt.Sprintf(format, args...))
}

// Success prints a success message with checkmark.
func (w *Writer) Success(msg string) {
	w.Status(w.styles.Success.Render("✅"), msg)
}

// Successf prints a formatted success message.
func (w *Writer) Successf(format string, args ...any) {
	w.Success(fmt.Sprintf(format, args...))
}

// Warning prints a warning message.
func (w *Writer) Warning(msg string) {
	w.Status(w.styles.Warning.Render("⚠️ "), msg)
}

// Warningf prints a formatted warning message.
func (w *Writer) Warningf(format string, args ...any) {
	w.Warning(fmt.Sprintf(format, args...))
}

// Error prints an error message.
func (w *Writer) Error(msg string) {
	w.Status(w.styles.Error.Render("❌"), msg)
}

// Errorf prints a formatted error message.
func (w *Writer) Errorf(format string, args ...any) {
	w.Error(fmt.Sprintf(format, args...))
}

// Raw prints text unchanged, e.g. a preformatted error block.
func (w *Writer) Raw(text string) {
	_, _ = io.WriteString(w.out, text)
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	_, _ = fmt.Fprintln(w.out)
}

// Bar renders value as a share of max in a fixed-width block bar.
func Bar(value, max int64, width int) string {
	if width <= 0 {
		return ""
	}
	if max <= 0 {
		return strings.Repeat("░", width)
	}

	filled := int(float64(value) / float64(max) * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	// Any non-zero count shows at least one block.
	if filled == 0 && value > 0 {
		filled = 1
	}

	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
