package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hay-kot/criterio"
)

// slowRefresh is the interval above which the chat view feels stale.
const slowRefresh = 10 * time.Second

var validate = newValidator()

// newValidator returns a validator that reports fields by their yaml names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate checks the struct constraints of the configuration. Failures are
// returned as criterio.FieldErrors.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return criterio.NewFieldErrors("data_dir", fmt.Errorf("data directory cannot be empty"))
	}

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	var errs criterio.FieldErrorsBuilder
	for _, fe := range verrs {
		errs = errs.Append(fe.Field(), describe(fe))
	}
	return errs.ToError()
}

// describe turns a validator failure into a readable message.
func describe(fe validator.FieldError) error {
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("is required")
	case "gte", "min":
		return fmt.Errorf("must be at least %s, got %v", fe.Param(), fe.Value())
	case "lte", "max":
		if fe.Kind() == reflect.String {
			return fmt.Errorf("must be at most %s characters", fe.Param())
		}
		return fmt.Errorf("must be at most %s, got %v", fe.Param(), fe.Value())
	default:
		return fmt.Errorf("failed %q check", fe.Tag())
	}
}

// ValidateDeep performs comprehensive validation of the configuration.
// Unlike Validate(), this also checks file access for the config file,
// the data directory, and the database file.
func (c *Config) ValidateDeep(configPath string) error {
	var errs criterio.FieldErrorsBuilder

	if err := c.Validate(); err != nil {
		var fieldErrs criterio.FieldErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			errs = errs.Append(fe.Field, fe.Err)
		}
	}

	if configPath != "" {
		if info, err := os.Stat(configPath); err == nil && info.IsDir() {
			errs = errs.Append("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
		} else if err != nil && !os.IsNotExist(err) {
			errs = errs.Append("config_file", fmt.Errorf("cannot access %s: %w", configPath, err))
		}
	}

	if c.DataDir != "" {
		if info, err := os.Stat(c.DataDir); err == nil && !info.IsDir() {
			errs = errs.Append("data_dir", fmt.Errorf("%s exists but is not a directory", c.DataDir))
		} else if err != nil && !os.IsNotExist(err) {
			errs = errs.Append("data_dir", fmt.Errorf("cannot access %s: %w", c.DataDir, err))
		}
	}

	if c.Database != "" {
		dbPath := c.DatabasePath()
		if info, err := os.Stat(dbPath); err == nil && info.IsDir() {
			errs = errs.Append("database", fmt.Errorf("%s is a directory, not a file", dbPath))
		} else if info, err := os.Stat(filepath.Dir(dbPath)); err == nil && !info.IsDir() {
			errs = errs.Append("database", fmt.Errorf("parent of %s is not a directory", dbPath))
		}
	}

	return errs.ToError()
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.RefreshInterval > slowRefresh {
		warnings = append(warnings, ValidationWarning{
			Field:   "refresh_interval",
			Message: fmt.Sprintf("%s between refreshes; other users' messages will appear slowly", c.RefreshInterval),
		})
	}

	if c.DataDir != "" && !filepath.IsAbs(c.DataDir) {
		warnings = append(warnings, ValidationWarning{
			Field:   "data_dir",
			Message: "relative data directory depends on the working directory",
		})
	}

	return warnings
}
