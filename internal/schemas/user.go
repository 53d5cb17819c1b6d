package schemas

import (
	"regexp"
	"unicode"

	"github.com/mizuki-dev/project-management-api/internal/constants"
	"github.com/mizuki-dev/project-management-api/internal/models"
)

const (
	msgRoleOneOf      = "Must be one of: manager, employee."
	msgPasswordLength = "Length must be between 12 and 128."
	msgPasswordPolicy = "Password must be at least 12 characters and include uppercase, lowercase, numeric, and special characters."
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// UserInput holds the validated fields of a user payload. Nil means the
// field was absent (only possible on partial loads).
type UserInput struct {
	Name     *string
	Email    *string
	Role     *models.UserRole
	Password *string
}

// LoadUser validates a raw user payload. With partial set, absent fields are
// allowed; present fields are always fully validated.
func LoadUser(payload map[string]any, partial bool) (*UserInput, error) {
	fe := fieldErrors{}
	input := &UserInput{}

	input.Name = loadString(payload, "name", !partial, fe)
	input.Email = loadEmail(payload, !partial, fe)
	input.Role = loadRole(payload, !partial, fe)
	input.Password = loadPassword(payload, !partial, fe)

	if err := fe.asError(); err != nil {
		return nil, err
	}
	return input, nil
}

func loadEmail(payload map[string]any, required bool, fe fieldErrors) *string {
	raw, present := payload["email"]
	if !present {
		if required {
			fe.add("email", msgRequired)
		}
		return nil
	}
	value, ok := raw.(string)
	if !ok || !emailPattern.MatchString(value) || len(value) > 120 {
		fe.add("email", msgNotEmail)
		return nil
	}
	return &value
}

func loadRole(payload map[string]any, required bool, fe fieldErrors) *models.UserRole {
	raw, present := payload["role"]
	if !present {
		if required {
			fe.add("role", msgRequired)
		}
		return nil
	}
	value, ok := raw.(string)
	if !ok {
		fe.add("role", msgNotString)
		return nil
	}
	role := models.UserRole(value)
	if !role.Valid() {
		fe.add("role", msgRoleOneOf)
		return nil
	}
	return &role
}

func loadPassword(payload map[string]any, required bool, fe fieldErrors) *string {
	raw, present := payload["password"]
	if !present {
		if required {
			fe.add("password", msgRequired)
		}
		return nil
	}
	value, ok := raw.(string)
	if !ok {
		fe.add("password", msgNotString)
		return nil
	}
	if len(value) < constants.MinPasswordLength || len(value) > constants.MaxPasswordLength {
		fe.add("password", msgPasswordLength)
		return nil
	}
	if !passwordComplexOK(value) {
		fe.add("password", msgPasswordPolicy)
		return nil
	}
	return &value
}

// passwordComplexOK requires at least one lowercase, uppercase, digit, and
// symbol character. Four class scans instead of one pattern because Go's
// regexp has no lookahead.
func passwordComplexOK(password string) bool {
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}
