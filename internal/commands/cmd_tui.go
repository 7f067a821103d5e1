package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/gab/internal/core/session"
	"github.com/hay-kot/gab/internal/tui"
)

type TuiCmd struct {
	flags *Flags
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{
		flags: flags,
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	if err := cmd.flags.Store.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}

	cfg := cmd.flags.Config
	opts := tui.Options{
		Store:           cmd.flags.Store,
		Session:         session.New(),
		RefreshInterval: cfg.RefreshInterval,
		SidebarWidth:    cfg.SidebarWidth,
		Title:           cfg.Title,
		Logger:          log.With().Str("component", "tui").Logger(),
	}

	p := tea.NewProgram(tui.New(opts), tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}
