package plugin

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern   = regexp.MustCompile(`^\d+\.\d+\.\d+(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
	pluginIDPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Metadata describes plugin identity and dependency requirements.
type Metadata struct {
	ID           string       `validate:"required,plugin_id"`
	Version      string       `validate:"required,semver"`
	Name         string       `validate:"omitempty,max=100"`
	Description  string
	Author       string
	License      string
	Tags         []string     `validate:"omitempty,dive,required"`
	Dependencies []Dependency `validate:"omitempty,dive"`
}

// Dependency declares that a plugin needs another plugin, optionally within a version range.
type Dependency struct {
	ID       string `validate:"required,plugin_id"`
	Version  string `validate:"omitempty,version_constraint"`
	Optional bool
}

// Validate ensures metadata is well-formed.
func (m Metadata) Validate() error {
	if err := validatorInstance().Struct(m); err != nil {
		return convertValidationError(m.ID, err)
	}

	seen := map[string]struct{}{}
	for _, dep := range m.Dependencies {
		if dep.ID == m.ID {
			return fmt.Errorf("plugin '%s' cannot depend on itself", m.ID)
		}
		if _, exists := seen[dep.ID]; exists {
			return fmt.Errorf("plugin '%s' lists dependency '%s' more than once", m.ID, dep.ID)
		}
		seen[dep.ID] = struct{}{}
	}
	return nil
}

// ValidID reports whether id is an acceptable plugin id.
func ValidID(id string) bool {
	return pluginIDPattern.MatchString(id)
}

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("plugin_id", func(fl validator.FieldLevel) bool {
			return pluginIDPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("version_constraint", func(fl validator.FieldLevel) bool {
			_, err := ParseVersionConstraint(fl.Field().String())
			return err == nil
		})

		validateInst = v
	})

	return validateInst
}

func convertValidationError(id string, err error) error {
	ves, ok := err.(validator.ValidationErrors)
	if !ok || len(ves) == 0 {
		return err
	}

	messages := make([]string, 0, len(ves))
	for _, fe := range ves {
		messages = append(messages, fmt.Sprintf("%s failed validation for tag '%s' (value %q)", fieldName(fe), fe.Tag(), fmt.Sprint(fe.Value())))
	}
	if id == "" {
		return fmt.Errorf("%s", strings.Join(messages, "; "))
	}
	return fmt.Errorf("plugin '%s': %s", id, strings.Join(messages, "; "))
}

func fieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, part := range parts {
		parts[i] = strings.ToLower(part)
	}
	return strings.Join(parts, ".")
}
