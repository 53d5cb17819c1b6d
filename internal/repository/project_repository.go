package repository

import (
	"github.com/mizuki-dev/project-management-api/internal/models"
	"gorm.io/gorm"
)

// ProjectRepository adds project-specific queries on top of the generic
// repository.
type ProjectRepository struct {
	*Repository[models.Project]
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{Repository: NewRepository[models.Project](db)}
}

// ListByCreator returns projects created by the given user.
func (r *ProjectRepository) ListByCreator(createdBy uint, page, perPage int) ([]models.Project, Meta, error) {
	query := r.DB().Model(&models.Project{}).Where("created_by = ?", createdBy)
	return r.Paginate(query, models.Project{}.DefaultOrdering(), page, perPage)
}

// Delete removes a project and all of its tasks in one transaction. The
// project owns its tasks exclusively, so the delete cascades.
func (r *ProjectRepository) Delete(id uint) error {
	project, err := r.GetByID(id)
	if err != nil {
		return err
	}
	return r.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(project).Error
	})
}
