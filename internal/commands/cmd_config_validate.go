package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/gab/internal/core/config"
	"github.com/hay-kot/gab/internal/printer"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "gab config validate [--format text|json]",
				Description: "Checks value ranges, the data directory, and the database path, then reports errors and warnings.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

// configIssue is one field-level problem in a validation report.
type configIssue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// configReport is the outcome of validating the loaded configuration.
type configReport struct {
	Valid      bool                       `json:"valid"`
	ConfigFile string                     `json:"config_file"`
	Database   string                     `json:"database"`
	Errors     []configIssue              `json:"errors,omitempty"`
	Warnings   []config.ValidationWarning `json:"warnings,omitempty"`
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	if cfg == nil {
		return errors.New("configuration not loaded")
	}

	report := newConfigReport(cfg, cmd.flags.ConfigPath)

	switch cmd.format {
	case "json":
		if err := writeJSONReport(c.Root().Writer, report); err != nil {
			return err
		}
	case "text":
		writeTextReport(printer.Ctx(ctx), report)
	default:
		return fmt.Errorf("unknown format %q (want text or json)", cmd.format)
	}

	if !report.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

func newConfigReport(cfg *config.Config, configPath string) configReport {
	report := configReport{
		ConfigFile: configPath,
		Database:   cfg.DatabasePath(),
		Warnings:   cfg.Warnings(),
	}

	err := cfg.ValidateDeep(configPath)
	report.Valid = err == nil

	var fieldErrs criterio.FieldErrors
	switch {
	case err == nil:
	case errors.As(err, &fieldErrs):
		for _, fe := range fieldErrs {
			report.Errors = append(report.Errors, configIssue{Field: fe.Field, Message: fe.Err.Error()})
		}
	default:
		report.Errors = append(report.Errors, configIssue{Message: err.Error()})
	}

	return report
}

func writeJSONReport(w io.Writer, report configReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func writeTextReport(p *printer.Printer, report configReport) {
	p.Infof("config file: %s", report.ConfigFile)
	p.Infof("database: %s", report.Database)

	if len(report.Errors) > 0 {
		p.Printf("")
		p.Heading("Errors")
		for _, issue := range report.Errors {
			if issue.Field != "" {
				p.Errorf("%s: %s", issue.Field, issue.Message)
			} else {
				p.Errorf("%s", issue.Message)
			}
		}
	}

	if len(report.Warnings) > 0 {
		p.Printf("")
		p.Heading("Warnings")
		for _, warn := range report.Warnings {
			p.Warnf("%s: %s", warn.Field, warn.Message)
		}
	}

	p.Printf("")
	if report.Valid {
		p.Successf("Configuration is valid (%d warning(s))", len(report.Warnings))
		return
	}
	p.Errorf("%d error(s), %d warning(s)", len(report.Errors), len(report.Warnings))
}
