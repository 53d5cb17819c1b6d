package services

import (
	"errors"

	apierrors "github.com/mizuki-dev/project-management-api/internal/errors"
	"github.com/mizuki-dev/project-management-api/internal/models"
	"github.com/mizuki-dev/project-management-api/internal/repository"
	"github.com/mizuki-dev/project-management-api/internal/schemas"
	"gorm.io/gorm"
)

// Immutable project fields. created_by is fixed at creation time.
var projectImmutableFields = []string{"id", "created_at", "updated_at", "created_by"}

// ProjectService implements the business rules for project resources.
type ProjectService struct {
	projects *repository.ProjectRepository
}

func NewProjectService(projects *repository.ProjectRepository) *ProjectService {
	return &ProjectService{projects: projects}
}

// Create persists a new project owned by the acting user. Any client-supplied
// created_by is ignored; the schema never loads it.
func (s *ProjectService) Create(input *schemas.ProjectInput, actor *models.User) (*models.Project, error) {
	if actor == nil {
		return nil, apierrors.BusinessValidation("Authenticated user is required to create projects.")
	}

	creatorID := actor.ID
	project := &models.Project{
		Name:        *input.Name,
		Description: input.Description,
		CreatedBy:   &creatorID,
	}
	if err := s.projects.Create(project); err != nil {
		return nil, err
	}
	return project, nil
}

// List returns one page of projects.
func (s *ProjectService) List(page, perPage int) ([]models.Project, repository.Meta, error) {
	return s.projects.List(page, perPage)
}

// Get fetches a project or reports not found.
func (s *ProjectService) Get(id uint) (*models.Project, error) {
	project, err := s.projects.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NotFound("Project not found.")
		}
		return nil, err
	}
	return project, nil
}

// Update applies mutable project fields.
func (s *ProjectService) Update(id uint, payload map[string]any, input *schemas.ProjectInput) (*models.Project, error) {
	project, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := EnsureImmutableFieldsUnchanged(payload, projectImmutableFields...); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.DescriptionSet {
		updates["description"] = input.Description
	}

	return s.projects.Update(project, updates)
}

// Delete removes a project and cascades to its tasks.
func (s *ProjectService) Delete(id uint) error {
	if err := s.projects.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierrors.NotFound("Project not found.")
		}
		return err
	}
	return nil
}
