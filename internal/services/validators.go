package services

import (
	"sort"

	apierrors "github.com/mizuki-dev/project-management-api/internal/errors"
)

// EnsureImmutableFieldsUnchanged rejects an update wholesale when the raw
// payload names any immutable field. The check runs against the raw keys, not
// the validated data, so fields the schemas never load are still caught.
func EnsureImmutableFieldsUnchanged(payload map[string]any, immutable ...string) error {
	var invalid []string
	for _, field := range immutable {
		if _, ok := payload[field]; ok {
			invalid = append(invalid, field)
		}
	}
	if len(invalid) == 0 {
		return nil
	}
	sort.Strings(invalid)
	return apierrors.BusinessValidationWithDetails(
		"Attempted to update immutable fields.",
		map[string]any{"fields": invalid},
	)
}
