package validation

import (
	"errors"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error is a structural-validation failure carrying every field violation
// found, not just the first, so clients can render form feedback in one pass.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Wrap converts a validator.v10 error into *Error. Non-validation errors are
// returned unchanged.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = formatFieldError(fe)
		}
		return &Error{Fields: fields}
	}
	return err
}

// IsError reports whether err is a structural-validation failure and returns it.
func IsError(err error) (*Error, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
