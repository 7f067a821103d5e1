package tui

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/hay-kot/gab/internal/core/validate"
)

// NameForm wraps a huh.Form that asks for the user's display name.
type NameForm struct {
	form *huh.Form
	name string
}

// NewNameForm creates the display name prompt.
func NewNameForm() *NameForm {
	f := &NameForm{}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Enter your name").
				Description("Shown next to every message you send.").
				CharLimit(validate.MaxUsernameLength).
				Value(&f.name).
				Validate(validate.Username),
		),
	).
		WithTheme(FormTheme()).
		WithShowHelp(false)

	return f
}

// Form returns the underlying huh.Form for tea.Model integration.
func (f *NameForm) Form() *huh.Form {
	return f.form
}

// Submitted returns true if the form completed with a valid name.
func (f *NameForm) Submitted() bool {
	return f.form.State == huh.StateCompleted
}

// Name returns the entered name with surrounding whitespace removed.
func (f *NameForm) Name() string {
	return strings.TrimSpace(f.name)
}
