package repository

import (
	"github.com/mizuki-dev/project-management-api/internal/models"
	"gorm.io/gorm"
)

// UserRepository adds user-specific queries on top of the generic repository.
type UserRepository struct {
	*Repository[models.User]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{Repository: NewRepository[models.User](db)}
}

// FindByEmail returns the user matching the supplied email address.
func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.DB().Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes a user and nullifies the references held by projects and
// tasks, all within one transaction. Dependents are never cascade-deleted.
func (r *UserRepository) Delete(id uint) error {
	user, err := r.GetByID(id)
	if err != nil {
		return err
	}
	return r.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Project{}).
			Where("created_by = ?", id).
			Update("created_by", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Task{}).
			Where("assigned_to = ?", id).
			Update("assigned_to", nil).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}
