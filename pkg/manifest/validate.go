package manifest

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/arthur-debert/linkany/pkg/errors"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	// Report fields by their document names
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		}
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
}

// Validate checks the version, every entry's fields and key uniqueness
func (m *Manifest) Validate() error {
	if m.Version != Version {
		return errors.Newf(errors.ErrManifestInvalid,
			"Unsupported manifest version: %d (expected %d)", m.Version, Version)
	}

	if err := validate.Struct(m); err != nil {
		return validationError(err, errors.ErrManifestInvalid, "Invalid manifest")
	}

	seen := make(map[string]int, len(m.Installs))
	for i, e := range m.Installs {
		if j, ok := seen[e.Key()]; ok {
			return errors.Newf(errors.ErrManifestInvalid,
				"Invalid manifest: installs[%d] and installs[%d] share the key %q", j, i, e.Key())
		}
		seen[e.Key()] = i
	}
	return nil
}

// ValidateEntry checks a single entry outside of any manifest
func ValidateEntry(e InstallEntry) error {
	if err := validate.Struct(e); err != nil {
		return validationError(err, errors.ErrInvalidInput, "Invalid entry")
	}
	return nil
}

// ValidatePaths checks resolved source and target. A mapping whose source is
// its own target would leave a symlink pointing at itself.
func ValidatePaths(source, target string) error {
	if source == target {
		return errors.Newf(errors.ErrInvalidInput,
			"Invalid entry: source and target are the same path: %s", source)
	}
	return nil
}

func validationError(err error, code errors.ErrorCode, prefix string) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return errors.Wrap(err, code, prefix)
	}

	fe := verrs[0]
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	var reason string
	switch fe.Tag() {
	case "required":
		reason = "is required"
	case "oneof":
		reason = fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fmt.Sprint(fe.Value()))
	default:
		reason = fmt.Sprintf("failed %s validation", fe.Tag())
	}
	return errors.Newf(code, "%s: %s %s", prefix, field, reason)
}
