package services

import (
	"errors"
	"fmt"
	"time"

	apierrors "github.com/mizuki-dev/project-management-api/internal/errors"
	"github.com/mizuki-dev/project-management-api/internal/models"
	"github.com/mizuki-dev/project-management-api/internal/repository"
	"github.com/mizuki-dev/project-management-api/internal/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService verifies credentials and issues access tokens.
type AuthService struct {
	users  *repository.UserRepository
	secret string
	ttl    time.Duration
}

func NewAuthService(users *repository.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		users:  users,
		secret: secret,
		ttl:    ttl,
	}
}

// Authenticate resolves credentials to a user. Unknown email and wrong
// password produce the identical error so responses never reveal which
// accounts exist.
func (s *AuthService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.Unauthorized("Invalid email or password.")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apierrors.Unauthorized("Invalid email or password.")
	}

	return user, nil
}

// IssueToken signs a fresh access token for the user.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	return token.Generate(user, s.secret, s.ttl)
}
