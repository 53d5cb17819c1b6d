package database

import (
	"fmt"
	"log"

	"github.com/mizuki-dev/project-management-api/internal/config"
	"github.com/mizuki-dev/project-management-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// SeedDefaultAdmin creates the configured manager account when the users
// table is empty. A no-op when the admin settings are absent or any user
// already exists.
func SeedDefaultAdmin(cfg *config.Config) error {
	if cfg.DefaultAdminEmail == "" || cfg.DefaultAdminPassword == "" {
		return nil
	}

	var count int64
	if err := DB.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check for existing users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash default admin password: %w", err)
	}

	admin := models.User{
		Name:         cfg.DefaultAdminName,
		Email:        cfg.DefaultAdminEmail,
		Role:         models.RoleManager,
		PasswordHash: string(hash),
	}
	if err := DB.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	log.Printf("Default admin %q created", admin.Email)
	return nil
}
