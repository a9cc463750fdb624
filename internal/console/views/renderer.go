package views

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/proofmine/proofmine-console/pkg/client/marketplace"
)

// Renderer writes view output to one destination, normally stdout. Colors
// and progress lines are enabled only when that destination is an
// interactive terminal; piped output stays plain.
type Renderer struct {
	w           io.Writer
	interactive bool

	green  func(format string, a ...interface{}) string
	red    func(format string, a ...interface{}) string
	yellow func(format string, a ...interface{}) string
	cyan   func(format string, a ...interface{}) string
	bold   func(format string, a ...interface{}) string
}

// NewRenderer creates a renderer for w, detecting whether it is an
// interactive terminal.
func NewRenderer(w io.Writer) *Renderer {
	interactive := false
	if f, ok := w.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}
	return newRenderer(w, interactive)
}

// NewPlainRenderer creates a renderer with colors and progress lines
// disabled regardless of the destination. Tests render through this.
func NewPlainRenderer(w io.Writer) *Renderer {
	return newRenderer(w, false)
}

func newRenderer(w io.Writer, interactive bool) *Renderer {
	paint := func(attrs ...color.Attribute) func(string, ...interface{}) string {
		if !interactive {
			return fmt.Sprintf
		}
		return color.New(attrs...).SprintfFunc()
	}
	return &Renderer{
		w:           w,
		interactive: interactive,
		green:       paint(color.FgGreen),
		red:         paint(color.FgRed),
		yellow:      paint(color.FgYellow),
		cyan:        paint(color.FgCyan),
		bold:        paint(color.Bold),
	}
}

// Interactive reports whether the destination is an interactive terminal
func (r *Renderer) Interactive() bool {
	return r.interactive
}

func (r *Renderer) Printf(format string, args ...interface{}) {
	fmt.Fprintf(r.w, format, args...)
}

func (r *Renderer) Println(args ...interface{}) {
	fmt.Fprintln(r.w, args...)
}

// Header prints a bold section header
func (r *Renderer) Header(title string) {
	fmt.Fprintf(r.w, "%s\n", r.bold(title))
}

// Success prints a green status line
func (r *Renderer) Success(msg string) {
	fmt.Fprintf(r.w, "%s\n", r.green(msg))
}

// Notice prints a yellow status line
func (r *Renderer) Notice(msg string) {
	fmt.Fprintf(r.w, "%s\n", r.yellow(msg))
}

// Loading prints a transient progress line on interactive terminals.
// Non-interactive destinations stay silent so piped output holds only
// results.
func (r *Renderer) Loading(label string) {
	if !r.interactive {
		return
	}
	fmt.Fprintf(r.w, "%s %s\n", r.cyan("..."), label)
}

// Failure renders the failure banner for a view's stored message. Every
// failure is paired with the action that re-triggers it; retry stays with
// the user, never with the transport.
func (r *Renderer) Failure(message, retry string) {
	fmt.Fprintf(r.w, "\n%s %s\n", r.red("ERROR:"), message)
	if retry != "" {
		fmt.Fprintf(r.w, "  %s %s\n", r.yellow("RETRY:"), retry)
	}
}

// FailureMessage converts an error into the human-readable message a view
// stores with its failed state. Backend-unreachable failures get the
// "verify the backend is running" text, API failures surface the
// backend's detail, everything else its plain Error text.
func FailureMessage(err error) string {
	if err == nil {
		return ""
	}
	if marketplace.IsBackendUnreachable(err) {
		return "Cannot reach the marketplace backend. Verify the backend is running and MARKETPLACE_API_URL points at it."
	}

	var apiErr *marketplace.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" && apiErr.Detail != "no error detail provided" {
			return apiErr.Detail
		}
		return fmt.Sprintf("the backend answered with status %d", apiErr.StatusCode)
	}
	return err.Error()
}

// formatAmount renders a token amount with thousands separators and at
// most four decimals
func formatAmount(amount float64) string {
	return humanize.CommafWithDigits(amount, 4)
}

// shortAddress compresses a wallet address for headers and cards
func shortAddress(address string) string {
	if len(address) <= 12 {
		return address
	}
	return address[:6] + "…" + address[len(address)-4:]
}

// progressBar renders value out of max as a fixed-width bar
func progressBar(value, max, width int) string {
	if max <= 0 || width <= 0 {
		return ""
	}
	if value < 0 {
		value = 0
	}
	if value > max {
		value = max
	}
	filled := value * width / max
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// indentLines prefixes every line of text with the given indent
func indentLines(text, indent string) string {
	return indent + strings.ReplaceAll(text, "\n", "\n"+indent)
}
