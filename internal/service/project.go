package service

import (
	"context"
	"fmt"
	"log/slog"

	"beacon/internal/config"
	"beacon/internal/domain"
	"beacon/internal/domain/models"
	"beacon/internal/domain/repositories"
	"beacon/internal/domain/services"
)

// projectService implements the ProjectService interface.
//
// None of the checks below are atomic with the writes that follow them:
// two concurrent creates with the same id can both pass ValidateUniqueID,
// and only the store's primary key stops the second one. Event appends
// and record writes are separate calls with no transaction around them.
type projectService struct {
	projectRepo repositories.ProjectRepository
	eventRepo   repositories.EventRepository
	featureRepo repositories.FeatureToggleRepository
	access      services.AccessService
	logger      *slog.Logger
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo repositories.ProjectRepository,
	eventRepo repositories.EventRepository,
	featureRepo repositories.FeatureToggleRepository,
	access services.AccessService,
	logger *slog.Logger,
) services.ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		eventRepo:   eventRepo,
		featureRepo: featureRepo,
		access:      access,
		logger:      logger,
	}
}

// GetProjects retrieves all projects
func (s *projectService) GetProjects(ctx context.Context) ([]models.Project, error) {
	return s.projectRepo.GetAll(ctx)
}

// GetProject retrieves a project by ID
func (s *projectService) GetProject(ctx context.Context, id string) (*models.Project, error) {
	return s.projectRepo.Get(ctx, id)
}

// CreateProject creates a new project. A failure after the store write
// leaves the earlier steps in place.
func (s *projectService) CreateProject(ctx context.Context, newProject *models.Project, user *models.User) (*models.Project, error) {
	if err := requireActor(user); err != nil {
		return nil, err
	}

	data, err := validateProject(newProject)
	if err != nil {
		return nil, err
	}

	if err := s.ValidateUniqueID(ctx, data.ID); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Create(ctx, data); err != nil {
		return nil, err
	}

	if err := s.access.CreateDefaultProjectRoles(ctx, user, data.ID); err != nil {
		return nil, err
	}

	err = s.eventRepo.Store(ctx, &models.Event{
		Type:      models.EventProjectCreated,
		CreatedBy: user.Username,
		Data:      data,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		"id", data.ID,
		"name", data.Name,
		"user", user.Username,
	)

	return data, nil
}

// UpdateProject replaces a project with the validated payload. The
// existing record is only read to confirm it exists.
func (s *projectService) UpdateProject(ctx context.Context, updatedProject *models.Project, user *models.User) (*models.Project, error) {
	if err := requireActor(user); err != nil {
		return nil, err
	}
	if updatedProject == nil {
		return nil, fmt.Errorf("%w: project is required", domain.ErrValidation)
	}

	if _, err := s.projectRepo.Get(ctx, updatedProject.ID); err != nil {
		return nil, err
	}

	project, err := validateProject(updatedProject)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		Type:      models.EventProjectUpdated,
		CreatedBy: user.Username,
		Data:      project,
	}
	err = s.recordAndApply(ctx, event, func(ctx context.Context) error {
		return s.projectRepo.Update(ctx, project)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("project updated",
		"id", project.ID,
		"name", project.Name,
		"user", user.Username,
	)

	return project, nil
}

// DeleteProject deletes a project
func (s *projectService) DeleteProject(ctx context.Context, id string, user *models.User) error {
	if err := requireActor(user); err != nil {
		return err
	}

	if id == config.DefaultProjectID {
		return &domain.InvalidOperationError{
			Message: "You can not delete the default project!",
		}
	}

	toggles, err := s.featureRepo.GetFeaturesBy(ctx, models.FeatureToggleQuery{
		Project:  id,
		Archived: false,
	})
	if err != nil {
		return err
	}

	if len(toggles) > 0 {
		return &domain.InvalidOperationError{
			Message: "You can not delete a project with active feature toggles",
		}
	}

	event := &models.Event{
		Type:      models.EventProjectDeleted,
		CreatedBy: user.Username,
		Data:      map[string]string{"id": id},
	}
	err = s.recordAndApply(ctx, event, func(ctx context.Context) error {
		return s.projectRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("project deleted",
		"id", id,
		"user", user.Username,
	)

	return nil
}

// ValidateID checks the id format, then that it is not taken
func (s *projectService) ValidateID(ctx context.Context, id string) (bool, error) {
	if err := ValidateProjectID(id); err != nil {
		return false, err
	}

	if err := s.ValidateUniqueID(ctx, id); err != nil {
		return false, err
	}

	return true, nil
}

// ValidateUniqueID returns a conflict error when a project with the id
// exists. HasProject fails when the project is absent, so any probe
// error (including store failures) is read as "id is free".
func (s *projectService) ValidateUniqueID(ctx context.Context, id string) error {
	if err := s.projectRepo.HasProject(ctx, id); err != nil {
		s.logger.Debug("project id available", "id", id, "probe_error", err)
		return nil
	}

	return &domain.ConflictError{
		Message:      "A project with this id already exists.",
		ResourceType: "project",
		ResourceID:   id,
	}
}

// GetUsersWithAccess is a placeholder until project membership listing exists
func (s *projectService) GetUsersWithAccess(ctx context.Context, projectID string) (*models.UsersWithAccess, error) {
	return nil, fmt.Errorf("users with access to project %s: %w", projectID, domain.ErrNotImplemented)
}

// requireActor rejects mutations with no acting user. Every event names
// its author, so this runs before any collaborator is called.
func requireActor(user *models.User) error {
	if user == nil {
		return fmt.Errorf("%w: user is required", domain.ErrUnauthorized)
	}
	return nil
}

// recordAndApply appends the audit event and then runs the write. The
// event is stored first, so a failed write still leaves it in the log.
func (s *projectService) recordAndApply(ctx context.Context, event *models.Event, apply func(ctx context.Context) error) error {
	if err := s.eventRepo.Store(ctx, event); err != nil {
		return err
	}
	return apply(ctx)
}
