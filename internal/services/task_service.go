package services

import (
	"errors"
	"fmt"

	apierrors "github.com/mizuki-dev/project-management-api/internal/errors"
	"github.com/mizuki-dev/project-management-api/internal/models"
	"github.com/mizuki-dev/project-management-api/internal/repository"
	"github.com/mizuki-dev/project-management-api/internal/schemas"
	"gorm.io/gorm"
)

// Immutable task fields. A task can never move between projects.
var taskImmutableFields = []string{"id", "created_at", "updated_at", "project_id"}

// TaskService implements the business rules for task resources, composing
// the task, project and user repositories for referential checks.
type TaskService struct {
	tasks    *repository.TaskRepository
	projects *repository.ProjectRepository
	users    *repository.UserRepository
}

func NewTaskService(tasks *repository.TaskRepository, projects *repository.ProjectRepository, users *repository.UserRepository) *TaskService {
	return &TaskService{
		tasks:    tasks,
		projects: projects,
		users:    users,
	}
}

// Create persists a new task under an existing project. The assignee, when
// supplied, must exist.
func (s *TaskService) Create(projectID uint, input *schemas.TaskInput) (*models.Task, error) {
	project, err := s.getProject(projectID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureDueDateValid(input); err != nil {
		return nil, err
	}
	if err := s.ensureAssigneeExists(input.AssignedTo); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       *input.Title,
		Description: input.Description,
		Status:      *input.Status,
		DueDate:     input.DueDate,
		ProjectID:   project.ID,
		AssignedTo:  input.AssignedTo,
	}
	if err := s.tasks.Create(task); err != nil {
		return nil, err
	}
	return task, nil
}

// List returns one page of a project's tasks, verifying the project first.
func (s *TaskService) List(projectID uint, page, perPage int) ([]models.Task, repository.Meta, error) {
	if _, err := s.getProject(projectID); err != nil {
		return nil, repository.Meta{}, err
	}
	return s.tasks.ListByProject(projectID, page, perPage)
}

// Update applies mutable task fields, re-running the due-date and assignee
// rules exactly as on create.
func (s *TaskService) Update(projectID, taskID uint, payload map[string]any, input *schemas.TaskInput) (*models.Task, error) {
	task, err := s.tasks.GetByProjectAndID(projectID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NotFound(fmt.Sprintf("Task with ID %d does not belong to project %d.", taskID, projectID))
		}
		return nil, err
	}

	if err := EnsureImmutableFieldsUnchanged(payload, taskImmutableFields...); err != nil {
		return nil, err
	}
	if err := s.ensureDueDateValid(input); err != nil {
		return nil, err
	}
	if input.AssignedToSet {
		if err := s.ensureAssigneeExists(input.AssignedTo); err != nil {
			return nil, err
		}
	}

	updates := map[string]any{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.DescriptionSet {
		updates["description"] = input.Description
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.DueDateSet {
		updates["due_date"] = input.DueDate
	}
	if input.AssignedToSet {
		updates["assigned_to"] = input.AssignedTo
	}

	return s.tasks.Update(task, updates)
}

func (s *TaskService) getProject(projectID uint) (*models.Project, error) {
	project, err := s.projects.GetByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NotFound(fmt.Sprintf("Project with ID %d does not exist.", projectID))
		}
		return nil, err
	}
	return project, nil
}

// ensureDueDateValid backstops the schema-level check so the rule holds even
// for callers that bypass payload validation.
func (s *TaskService) ensureDueDateValid(input *schemas.TaskInput) error {
	if input.DueDate != nil && input.DueDate.Before(schemas.Today()) {
		return apierrors.BusinessValidation("Task due date cannot be in the past.")
	}
	return nil
}

func (s *TaskService) ensureAssigneeExists(assigneeID *uint) error {
	if assigneeID == nil {
		return nil
	}
	if _, err := s.users.GetByID(*assigneeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierrors.NotFound(fmt.Sprintf("User with ID %d does not exist.", *assigneeID))
		}
		return err
	}
	return nil
}
