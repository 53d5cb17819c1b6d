// Package schemas validates and normalises raw request payloads before they
// reach the domain services. Payloads arrive as decoded JSON maps so unknown
// fields drop silently and the raw keys stay visible for immutable-field
// checks done later in the service layer.
package schemas

import (
	apierrors "github.com/mizuki-dev/project-management-api/internal/errors"
)

// Validation messages shared across schemas.
const (
	msgRequired     = "Missing data for required field."
	msgNotString    = "Not a valid string."
	msgNotInteger   = "Not a valid integer."
	msgNotDate      = "Not a valid date."
	msgNotEmail     = "Not a valid email address."
	msgLength1To120 = "Length must be between 1 and 120."
)

type fieldErrors map[string][]string

func (fe fieldErrors) add(field, message string) {
	fe[field] = append(fe[field], message)
}

func (fe fieldErrors) asError() error {
	if len(fe) == 0 {
		return nil
	}
	return apierrors.Validation(fe)
}

// loadString validates a payload entry as a non-null string of 1..120 runes.
// Returns nil when the field is absent, invalid, or out of bounds; the
// collector records why.
func loadString(payload map[string]any, key string, required bool, fe fieldErrors) *string {
	raw, present := payload[key]
	if !present {
		if required {
			fe.add(key, msgRequired)
		}
		return nil
	}
	value, ok := raw.(string)
	if !ok {
		fe.add(key, msgNotString)
		return nil
	}
	if len(value) < 1 || len(value) > 120 {
		fe.add(key, msgLength1To120)
		return nil
	}
	return &value
}

// loadNullableText validates an optional free-text field that may be null.
// The second return reports whether the key appeared in the payload at all.
func loadNullableText(payload map[string]any, key string, fe fieldErrors) (*string, bool) {
	raw, present := payload[key]
	if !present {
		return nil, false
	}
	if raw == nil {
		return nil, true
	}
	value, ok := raw.(string)
	if !ok {
		fe.add(key, msgNotString)
		return nil, true
	}
	return &value, true
}
