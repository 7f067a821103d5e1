package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/samber/lo"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/gab/internal/core/chat"
	"github.com/hay-kot/gab/internal/printer"
)

type LogCmd struct {
	flags *Flags

	json     bool
	last     int
	follow   bool
	interval time.Duration
}

// NewLogCmd creates a new log command
func NewLogCmd(flags *Flags) *LogCmd {
	return &LogCmd{flags: flags}
}

// Register adds the log command to the application
func (cmd *LogCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "log",
		Usage:     "Print the chat log",
		UsageText: "gab log [--json] [--last N] [--follow]",
		Description: `Prints every stored message in order as "author: body" lines.

Examples:
  gab log                  # full log as a table
  gab log --last 10        # last 10 messages
  gab log --json           # JSON array of messages
  gab log --follow         # keep printing new messages`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output messages as JSON",
				Destination: &cmd.json,
			},
			&cli.IntFlag{
				Name:        "last",
				Aliases:     []string{"n"},
				Usage:       "print only the last N messages",
				Destination: &cmd.last,
			},
			&cli.BoolFlag{
				Name:        "follow",
				Aliases:     []string{"f"},
				Usage:       "poll for new messages until interrupted",
				Destination: &cmd.follow,
			},
			&cli.DurationFlag{
				Name:        "interval",
				Usage:       "poll interval for --follow (default: refresh_interval from config)",
				Destination: &cmd.interval,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LogCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.last < 0 {
		return errors.New("--last must not be negative")
	}

	if err := cmd.flags.Store.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}

	messages, err := cmd.flags.Store.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("read messages: %w", err)
	}

	if cmd.last > 0 {
		messages = lo.Subset(messages, -cmd.last, uint(cmd.last))
	}

	out := c.Root().Writer

	if !cmd.follow && !cmd.json && len(messages) == 0 {
		printer.Ctx(ctx).Infof("No messages yet")
		return nil
	}

	if err := cmd.printMessages(out, messages); err != nil {
		return err
	}

	if !cmd.follow {
		return nil
	}

	var lastID int64
	if len(messages) > 0 {
		lastID = messages[len(messages)-1].ID
	}
	return cmd.followMessages(ctx, out, lastID)
}

// followMessages polls the store and prints messages newer than lastID until
// ctx is cancelled.
func (cmd *LogCmd) followMessages(ctx context.Context, out io.Writer, lastID int64) error {
	interval := cmd.interval
	if interval <= 0 {
		interval = cmd.flags.Config.RefreshInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			messages, err := cmd.flags.Store.ReadAll(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("read messages: %w", err)
			}

			fresh := lo.Filter(messages, func(m chat.Message, _ int) bool {
				return m.ID > lastID
			})
			if len(fresh) == 0 {
				continue
			}

			if err := cmd.printMessages(out, fresh); err != nil {
				return err
			}
			lastID = lo.MaxBy(fresh, func(a, b chat.Message) bool { return a.ID > b.ID }).ID
		}
	}
}

func (cmd *LogCmd) printMessages(out io.Writer, messages []chat.Message) error {
	if cmd.json {
		if cmd.follow {
			// One object per line so the stream can be consumed incrementally.
			enc := json.NewEncoder(out)
			for _, m := range messages {
				if err := enc.Encode(m); err != nil {
					return fmt.Errorf("encode message: %w", err)
				}
			}
			return nil
		}

		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(messages)
	}

	return printer.New(out).Messages(messages)
}
