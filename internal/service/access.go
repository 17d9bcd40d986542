package service

import (
	"context"
	"fmt"
	"log/slog"

	"beacon/internal/domain"
	"beacon/internal/domain/models"
	"beacon/internal/domain/repositories"
	"beacon/internal/domain/services"
)

// accessService implements the AccessService interface
type accessService struct {
	roleRepo  repositories.RoleRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewAccessService creates a new access service
func NewAccessService(
	roleRepo repositories.RoleRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.AccessService {
	return &accessService{
		roleRepo:  roleRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// CreateDefaultProjectRoles creates the Admin and Regular roles for a
// project and adds the user to Admin. Users without an ID (e.g. API
// tokens) only get the roles created.
func (s *accessService) CreateDefaultProjectRoles(ctx context.Context, user *models.User, projectID string) error {
	if projectID == "" {
		return fmt.Errorf("%w: project id required", domain.ErrValidation)
	}

	adminRole := &models.Role{
		Name:        models.RoleAdmin,
		Description: "Users with the project admin role have superuser access to the project",
		Type:        models.RoleTypeProject,
		Project:     projectID,
	}
	regularRole := &models.Role{
		Name:        models.RoleRegular,
		Description: "Users with the regular role can create and update feature toggles in the project",
		Type:        models.RoleTypeProject,
		Project:     projectID,
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.roleRepo.CreateRole(txCtx, adminRole); err != nil {
			return fmt.Errorf("create admin role: %w", err)
		}
		if err := s.roleRepo.CreateRole(txCtx, regularRole); err != nil {
			return fmt.Errorf("create regular role: %w", err)
		}

		if user == nil || user.ID == "" {
			return nil
		}
		if err := s.roleRepo.AddUserToRole(txCtx, user.ID, adminRole.ID); err != nil {
			return fmt.Errorf("add user to admin role: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("default project roles created",
		"project", projectID,
		"admin_role_id", adminRole.ID,
		"regular_role_id", regularRole.ID,
	)

	return nil
}
