package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/gab/internal/printer"
)

type InitCmd struct {
	flags *Flags
}

// NewInitCmd creates a new init command
func NewInitCmd(flags *Flags) *InitCmd {
	return &InitCmd{flags: flags}
}

// Register adds the init command to the application
func (cmd *InitCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "init",
		Usage:       "Create the message database",
		UsageText:   "gab init",
		Description: "Creates the database file and messages table if they do not exist. Safe to run repeatedly.",
		Action:      cmd.run,
	})

	return app
}

func (cmd *InitCmd) run(ctx context.Context, _ *cli.Command) error {
	if err := cmd.flags.Store.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}

	printer.Ctx(ctx).Success("Database ready", cmd.flags.Config.DatabasePath())
	return nil
}
