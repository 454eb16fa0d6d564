package config

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// structValidator returns the shared validator with yaml field names and
// the projectname rule registered.
func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("projectname", func(fl validator.FieldLevel) bool {
			return IsValidProjectName(fl.Field().String())
		})
	})
	return validate
}

// IsValidProjectName reports whether name can be used as a single directory
// name under the current working directory.
func IsValidProjectName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\:*?"<>|`) {
		return false
	}
	if strings.TrimSpace(name) != name || strings.HasPrefix(name, "-") {
		return false
	}
	return true
}

// @MX:ANCHOR: [AUTO] Validate gates every record before any installer runs.
// @MX:REASON: [AUTO] called from the wizard, the answers loader and the add command
// Validate checks the record for correctness, combining struct tag rules
// with engine-specific invariants.
func Validate(r *Record) error {
	var errs []ValidationError

	if err := structValidator().Struct(r); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		for _, fe := range fieldErrs {
			errs = append(errs, ValidationError{
				Field:   fieldPath(fe.Namespace()),
				Message: tagMessage(fe),
				Value:   fe.Value(),
				Wrapped: ErrInvalidConfig,
			})
		}
	}

	errs = append(errs, validateDatabase(&r.Database)...)
	errs = append(errs, validateSonar(&r.SonarQube)...)

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

// validateDatabase checks that the connection settings match the engine.
func validateDatabase(db *DatabaseConfig) []ValidationError {
	var errs []ValidationError
	if !db.Engine.IsValid() {
		return nil // reported by the struct rules
	}

	if db.Engine.IsDocument() {
		if db.URI == "" {
			errs = append(errs, dbError("database.uri", "required for MongoDB", nil))
		} else if u, err := url.Parse(db.URI); err != nil || (u.Scheme != "mongodb" && u.Scheme != "mongodb+srv") {
			errs = append(errs, dbError("database.uri", "must be a mongodb:// or mongodb+srv:// URI", db.URI))
		}
		if db.Host != "" || db.Name != "" || db.User != "" || db.Password != "" {
			errs = append(errs, dbError("database.host", "host, name, user and password are not used with MongoDB; set database.uri", nil))
		}
		return errs
	}

	if db.URI != "" {
		errs = append(errs, dbError("database.uri", fmt.Sprintf("not used with %s", db.Engine), db.URI))
	}
	if db.Host == "" {
		errs = append(errs, dbError("database.host", "required for "+string(db.Engine), nil))
	}
	if db.Name == "" {
		errs = append(errs, dbError("database.name", "required for "+string(db.Engine), nil))
	}
	if db.User == "" {
		errs = append(errs, dbError("database.user", "required for "+string(db.Engine), nil))
	}
	if n, err := strconv.Atoi(db.Port); err != nil || n < 1 || n > 65535 {
		errs = append(errs, dbError("database.port", "must be a number between 1 and 65535", db.Port))
	}
	if !db.UseTypeORM && (db.SSL || db.Synchronize || db.Logging) {
		errs = append(errs, dbError("database.ssl", "ssl, synchronize and logging require use_typeorm", nil))
	}
	return errs
}

func validateSonar(s *SonarConfig) []ValidationError {
	if s.Enabled && s.ServerURL == "" {
		return []ValidationError{{
			Field:   "sonarqube.server_url",
			Message: "required when sonarqube is enabled",
			Wrapped: ErrInvalidConfig,
		}}
	}
	return nil
}

func dbError(field, msg string, value any) ValidationError {
	return ValidationError{Field: field, Message: msg, Value: value, Wrapped: ErrInvalidDatabase}
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required field is empty"
	case "numeric":
		return "must be a number"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "url":
		return "must be a valid URL"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "projectname":
		return "must be a single directory name without path separators"
	}
	return "failed " + fe.Tag() + " rule"
}
