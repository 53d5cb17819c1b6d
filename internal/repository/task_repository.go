package repository

import (
	"github.com/mizuki-dev/project-management-api/internal/models"
	"gorm.io/gorm"
)

// TaskRepository adds task-specific queries on top of the generic repository.
type TaskRepository struct {
	*Repository[models.Task]
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{Repository: NewRepository[models.Task](db)}
}

// ListByProject returns one page of a project's tasks.
func (r *TaskRepository) ListByProject(projectID uint, page, perPage int) ([]models.Task, Meta, error) {
	query := r.DB().Model(&models.Task{}).Where("project_id = ?", projectID)
	return r.Paginate(query, models.Task{}.DefaultOrdering(), page, perPage)
}

// GetByProjectAndID returns a task ensuring it belongs to the given project.
func (r *TaskRepository) GetByProjectAndID(projectID, taskID uint) (*models.Task, error) {
	var task models.Task
	err := r.DB().
		Where("id = ? AND project_id = ?", taskID, projectID).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}
