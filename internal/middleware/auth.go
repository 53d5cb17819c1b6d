package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mizuki-dev/project-management-api/internal/constants"
	apierrors "github.com/mizuki-dev/project-management-api/internal/errors"
	"github.com/mizuki-dev/project-management-api/internal/models"
	"github.com/mizuki-dev/project-management-api/internal/repository"
	"github.com/mizuki-dev/project-management-api/internal/token"
	"gorm.io/gorm"
)

// RequireAuth verifies the bearer token and attaches the resolved user to the
// request context.
func RequireAuth(users *repository.UserRepository, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := authenticate(c, users, secret)
		if err != nil {
			apierrors.AbortWith(c, err)
			return
		}
		c.Set(constants.ContextKeyCurrentUser, user)
		c.Next()
	}
}

// RequireManager verifies the bearer token and additionally requires the
// manager role.
func RequireManager(users *repository.UserRepository, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := authenticate(c, users, secret)
		if err != nil {
			apierrors.AbortWith(c, err)
			return
		}
		if user.Role != models.RoleManager {
			apierrors.AbortWith(c, apierrors.Forbidden("Manager role required for this operation."))
			return
		}
		c.Set(constants.ContextKeyCurrentUser, user)
		c.Next()
	}
}

// authenticate validates the Authorization header and resolves the token
// subject to an existing user. Any stale identity from an earlier middleware
// run is cleared before the attempt.
func authenticate(c *gin.Context, users *repository.UserRepository, secret string) (*models.User, error) {
	c.Set(constants.ContextKeyCurrentUser, nil)

	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, apierrors.Unauthorized("Missing or invalid bearer token.")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, apierrors.Unauthorized("Missing or invalid bearer token.")
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return nil, apierrors.Unauthorized("Missing or invalid bearer token.")
	}

	claims, err := token.Parse(tokenString, secret)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			return nil, apierrors.Unauthorized("Authentication token has expired.")
		}
		return nil, apierrors.Unauthorized("Invalid authentication token.")
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, apierrors.Unauthorized("Invalid authentication token.")
	}

	user, err := users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.Unauthorized("User referenced by token no longer exists.")
		}
		return nil, err
	}

	return user, nil
}

// CurrentUser retrieves the authenticated user attached by the guards.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyCurrentUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
