package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aleister1102/dbreewatch/internal/common"
	"github.com/aleister1102/dbreewatch/internal/urlhandler"

	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the GlobalConfig structure.
// Every failure wraps common.ErrInvalidConfiguration.
func ValidateConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return fmt.Errorf("%w: configuration is nil", common.ErrInvalidConfiguration)
	}

	validate := validator.New()

	// Register custom validation for LogLevel
	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		level := strings.ToLower(fl.Field().String())
		switch level {
		case "", "debug", "info", "warn", "error", "fatal", "panic": // Allow empty for omitempty
			return true
		default:
			return false
		}
	})

	// Register custom validation for LogFormat
	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		format := strings.ToLower(fl.Field().String())
		switch format {
		case "", "console", "text", "json": // Allow empty for omitempty
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("storagebackend", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", StorageBackendLevelDB, StorageBackendSQLite:
			return true
		default:
			return false
		}
	})

	// Only http(s) base URIs can be searched
	_ = validate.RegisterValidation("httpurl", func(fl validator.FieldLevel) bool {
		raw := fl.Field().String()
		return raw == "" || urlhandler.ValidateURLFormat(raw) == nil
	})

	err := validate.Struct(cfg)
	if err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			var validationErrorMessages []string
			for _, e := range errs {
				fieldName := trimNamespace(e.StructNamespace())
				msg := fmt.Sprintf("Validation failed for '%s': rule '%s'", fieldName, e.Tag())
				if e.Param() != "" {
					msg += fmt.Sprintf(" (expected: %s)", e.Param())
				}
				if e.Value() != nil && e.Value() != "" {
					msg += fmt.Sprintf(", actual: '%v'", e.Value())
				}
				validationErrorMessages = append(validationErrorMessages, msg)
			}
			return fmt.Errorf("%w: configuration validation failed:\n  %s", common.ErrInvalidConfiguration, strings.Join(validationErrorMessages, "\n  "))
		}
		return fmt.Errorf("%w: configuration validation error: %v", common.ErrInvalidConfiguration, err)
	}
	return nil
}

// trimNamespace drops the root struct name, leaving e.g. "LogConfig.LogLevel".
func trimNamespace(namespace string) string {
	return strings.TrimPrefix(namespace, "GlobalConfig.")
}
