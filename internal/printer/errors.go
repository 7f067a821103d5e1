package printer

import (
	"errors"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/gab/internal/core/chat"
)

// FatalError prints err in a boxed block. It does not exit; the caller owns
// the exit code.
func (p *Printer) FatalError(err error) {
	if err == nil {
		return
	}

	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		p.box("Validation Error", errorContext(err, fieldErrs), p.fieldLines(fieldErrs))
		return
	}

	var storageErr *chat.StorageError
	if errors.As(err, &storageErr) {
		p.box("Storage Error", errorContext(err, storageErr), []string{
			p.paint(colorGray, "operation: ") + storageErr.Op,
			p.paint(colorGray, "cause: ") + storageErr.Err.Error(),
			p.paint(colorGray, "check that the database path (--db, --data-dir) is writable"),
		})
		return
	}

	p.box("Error", "", []string{p.paint(colorGray, err.Error())})
}

// errorContext returns the wrapping text in front of inner, e.g.
// "send message" for "send message: author: author is required".
func errorContext(err, inner error) string {
	outer, in := err.Error(), inner.Error()
	if idx := strings.Index(outer, in); idx > 0 {
		return strings.TrimSuffix(outer[:idx], ": ")
	}
	return ""
}

func (p *Printer) fieldLines(fieldErrs criterio.FieldErrors) []string {
	lines := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		line := p.paint(colorRed, Cross) + " "
		if fe.Field != "" {
			line += p.paint(colorGray, fe.Field+": ")
		}
		lines = append(lines, line+fe.Err.Error())
	}
	return lines
}

func (p *Printer) box(title, context string, body []string) {
	bar := p.paint(colorRed, "│")

	p.line(p.paint(colorRed, "╭ "+title))
	if context != "" {
		p.line(bar + " " + p.paint(colorGray, context))
		p.line(bar)
	}
	for _, l := range body {
		p.line(bar + " " + l)
	}
	p.line(p.paint(colorRed, "╵"))
}
