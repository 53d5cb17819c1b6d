package services

import (
	"errors"
	"fmt"

	apierrors "github.com/mizuki-dev/project-management-api/internal/errors"
	"github.com/mizuki-dev/project-management-api/internal/models"
	"github.com/mizuki-dev/project-management-api/internal/repository"
	"github.com/mizuki-dev/project-management-api/internal/schemas"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Immutable user fields. Attempts to write these on update are rejected.
var userImmutableFields = []string{"id", "created_at", "updated_at"}

// UserService implements the business rules for user resources.
type UserService struct {
	users *repository.UserRepository
}

func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Create hashes the password and persists a new user. The plaintext is never
// stored. Constraint violations propagate raw for boundary translation.
func (s *UserService) Create(input *schemas.UserInput) (*models.User, error) {
	if input.Password == nil || *input.Password == "" {
		return nil, apierrors.BusinessValidation("Password is required.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         *input.Name,
		Email:        *input.Email,
		Role:         *input.Role,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// List returns one page of users.
func (s *UserService) List(page, perPage int) ([]models.User, repository.Meta, error) {
	return s.users.List(page, perPage)
}

// Get fetches a user or reports not found.
func (s *UserService) Get(id uint) (*models.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NotFound("User not found.")
		}
		return nil, err
	}
	return user, nil
}

// Update applies mutable user fields. A supplied password is re-hashed.
func (s *UserService) Update(id uint, payload map[string]any, input *schemas.UserInput) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := EnsureImmutableFieldsUnchanged(payload, userImmutableFields...); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Email != nil {
		updates["email"] = *input.Email
	}
	if input.Role != nil {
		updates["role"] = *input.Role
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password_hash"] = string(hash)
	}

	return s.users.Update(user, updates)
}

// Delete removes a user; project and task references are nullified by the
// repository, never cascade-deleted.
func (s *UserService) Delete(id uint) error {
	if err := s.users.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierrors.NotFound("User not found.")
		}
		return err
	}
	return nil
}
