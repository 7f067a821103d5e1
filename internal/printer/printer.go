// Package printer writes gab's CLI output: status lines, chat messages and
// error boxes. Color is used only when the destination is a terminal.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ANSI color codes (Tokyo Night palette)
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[38;2;215;95;107m"  // #d75f6b
	colorGreen  = "\033[38;2;158;206;106m" // #9ece6a
	colorYellow = "\033[38;2;224;175;104m" // #e0af68
	colorGray   = "\033[38;2;86;95;137m"   // #565f89
)

// Symbols
const (
	Check = "✔"
	Cross = "✘"
	Dot   = "•"
)

type ctxKey struct{}

// Printer writes formatted output to a single destination.
type Printer struct {
	w     io.Writer
	color bool
}

// New creates a Printer for w. Color is enabled when w is a terminal and
// NO_COLOR is unset.
func New(w io.Writer) *Printer {
	return &Printer{w: w, color: supportsColor(w)}
}

// WithColor returns a copy of p with color forced on or off.
func (p *Printer) WithColor(enabled bool) *Printer {
	return &Printer{w: p.w, color: enabled}
}

func supportsColor(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// NewContext returns a context with the printer attached
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx retrieves the printer from context, falling back to stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stderr)
}

func (p *Printer) paint(code, text string) string {
	if !p.color {
		return text
	}
	return code + text + colorReset
}

func (p *Printer) line(s string) {
	_, _ = io.WriteString(p.w, s+"\n")
}

func (p *Printer) status(code, symbol, format string, args []any) {
	p.line(p.paint(code, symbol+" "+fmt.Sprintf(format, args...)))
}

// Successf prints a green check line.
func (p *Printer) Successf(format string, args ...any) { p.status(colorGreen, Check, format, args) }

// Errorf prints a red cross line.
func (p *Printer) Errorf(format string, args ...any) { p.status(colorRed, Cross, format, args) }

// Infof prints a gray dot line.
func (p *Printer) Infof(format string, args ...any) { p.status(colorGray, Dot, format, args) }

// Warnf prints a yellow dot line.
func (p *Printer) Warnf(format string, args ...any) { p.status(colorYellow, Dot, format, args) }

// Printf prints a plain line.
func (p *Printer) Printf(format string, args ...any) {
	p.line(fmt.Sprintf(format, args...))
}

// Success prints a success line with an indented gray detail line.
func (p *Printer) Success(message, detail string) {
	p.line(p.paint(colorGreen, Check+" "+message))
	if detail != "" {
		p.line("  " + p.paint(colorGray, detail))
	}
}

// Heading prints a bold section title.
func (p *Printer) Heading(title string) {
	p.line(p.paint(colorBold, title))
}
