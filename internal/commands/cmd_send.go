package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/gab/internal/core/chat"
	"github.com/hay-kot/gab/internal/printer"
)

type SendCmd struct {
	flags *Flags
	name  string

	// stdin is read when no message argument is given
	stdin io.Reader
}

// NewSendCmd creates a new send command
func NewSendCmd(flags *Flags) *SendCmd {
	return &SendCmd{
		flags: flags,
		stdin: os.Stdin,
	}
}

// Register adds the send command to the application
func (cmd *SendCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "send",
		Usage:     "Append a message to the chat log",
		UsageText: "gab send --name <author> [message]",
		Description: `Appends one message to the chat log without opening the TUI.

The message can be provided as:
- A command-line argument
- From stdin if no argument is provided

Examples:
  gab send --name alice "hello everyone"
  echo "build finished" | gab send --name ci`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "name",
				Aliases:     []string{"n"},
				Usage:       "display name to send as",
				Sources:     cli.EnvVars("GAB_NAME"),
				Required:    true,
				Destination: &cmd.name,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *SendCmd) run(ctx context.Context, c *cli.Command) error {
	body, err := cmd.readBody(c)
	if err != nil {
		return err
	}

	if err := cmd.flags.Store.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}

	if err := cmd.flags.Store.Append(ctx, cmd.name, body); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	printer.Ctx(ctx).Sent(chat.Message{Author: cmd.name, Body: body})
	return nil
}

// readBody returns the message from the arguments, or from stdin when it is
// not an interactive terminal.
func (cmd *SendCmd) readBody(c *cli.Command) (string, error) {
	if c.NArg() > 0 {
		return strings.Join(c.Args().Slice(), " "), nil
	}

	if f, ok := cmd.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", errors.New("no message provided: pass it as an argument or pipe it on stdin")
	}

	data, err := io.ReadAll(cmd.stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}

	return strings.TrimRight(string(data), "\r\n"), nil
}
