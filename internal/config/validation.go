package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation error: field '%s' with value '%v': %s", e.Field, e.Value, e.Message)
}

// ValidationErrors represents multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// Validate validates the entire configuration.
func Validate(cfg *Config) error {
	var errors ValidationErrors

	if errs := validateChecker(&cfg.Checker); len(errs) > 0 {
		errors = append(errors, errs...)
	}
	if errs := validateLogging(&cfg.Logging); len(errs) > 0 {
		errors = append(errors, errs...)
	}
	if cfg.Version == "" {
		errors = append(errors, ValidationError{Field: "version", Value: cfg.Version, Message: "version cannot be empty"})
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func validateChecker(cfg *CheckerConfig) ValidationErrors {
	var errors ValidationErrors
	if cfg.MaxTypeDepth <= 0 {
		errors = append(errors, ValidationError{Field: "checker.max_type_depth", Value: cfg.MaxTypeDepth, Message: "must be positive"})
	}
	if cfg.MaxCycleDepth <= 0 {
		errors = append(errors, ValidationError{Field: "checker.max_cycle_depth", Value: cfg.MaxCycleDepth, Message: "must be positive"})
	}
	return errors
}

func validateLogging(cfg *LoggingConfig) ValidationErrors {
	var errors ValidationErrors
	switch cfg.Level {
	case "debug", "trace", "info", "warn", "error":
	default:
		errors = append(errors, ValidationError{Field: "logging.level", Value: cfg.Level, Message: "must be one of debug, trace, info, warn, error"})
	}
	switch cfg.Format {
	case "text", "json":
	default:
		errors = append(errors, ValidationError{Field: "logging.format", Value: cfg.Format, Message: "must be one of text, json"})
	}
	return errors
}
