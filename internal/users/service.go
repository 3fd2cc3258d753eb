package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/audirhq/audir-backend/pkg/config"
	"github.com/audirhq/audir-backend/pkg/db"
	"github.com/audirhq/audir-backend/pkg/db/models"
	"github.com/audirhq/audir-backend/pkg/enums"
	pkgerrors "github.com/audirhq/audir-backend/pkg/errors"
	"github.com/audirhq/audir-backend/pkg/security"
	"gorm.io/gorm"
)

type usersRepository interface {
	List(ctx context.Context, tenantID int64) ([]models.User, error)
	Create(ctx context.Context, dto CreateUserDTO) (*models.User, error)
	FindByIDForTenant(ctx context.Context, id, tenantID int64) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
}

// Service exposes tenant-scoped user operations.
type Service interface {
	List(ctx context.Context, tenantID int64) ([]UserDTO, error)
	Create(ctx context.Context, tenantID int64, input CreateUserInput) (*UserDTO, error)
	Update(ctx context.Context, tenantID, userID int64, input UpdateUserInput) (*UserDTO, error)
	ResetPassword(ctx context.Context, tenantID, userID int64, input ResetPasswordInput) (*UserDTO, error)
}

type service struct {
	repo        usersRepository
	passwordCfg config.PasswordConfig
}

// NewService builds a user service with the provided repository.
func NewService(repo usersRepository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo, passwordCfg: passwordCfg}, nil
}

func (s *service) List(ctx context.Context, tenantID int64) ([]UserDTO, error) {
	rows, err := s.repo.List(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	return FromModels(rows), nil
}

func (s *service) Create(ctx context.Context, tenantID int64, input CreateUserInput) (*UserDTO, error) {
	role, err := enums.ParseRole(string(input.Role))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}
	status, err := enums.ParseUserStatus(string(input.Status))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.repo.Create(ctx, CreateUserDTO{
		TenantID:     tenantID,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		Department:   input.Department,
		Role:         role,
		Status:       status,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "idx_users_tenant_email") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return FromModel(user), nil
}

func (s *service) Update(ctx context.Context, tenantID, userID int64, input UpdateUserInput) (*UserDTO, error) {
	user, err := s.loadForTenant(ctx, userID, tenantID)
	if err != nil {
		return nil, err
	}

	if input.FirstName.Set {
		user.FirstName = input.FirstName.Ptr()
	}
	if input.LastName.Set {
		user.LastName = input.LastName.Ptr()
	}
	if input.Phone.Set {
		user.Phone = input.Phone.Ptr()
	}
	if input.Department.Set {
		user.Department = input.Department.Ptr()
	}
	if input.Role.Set {
		if !input.Role.Valid {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
		}
		role, err := enums.ParseRole(string(input.Role.Value))
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
		}
		user.Role = role
	}
	if input.Status.Set {
		if !input.Status.Valid {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
		}
		status, err := enums.ParseUserStatus(string(input.Status.Value))
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
		}
		user.Status = status
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	return FromModel(user), nil
}

func (s *service) ResetPassword(ctx context.Context, tenantID, userID int64, input ResetPasswordInput) (*UserDTO, error) {
	user, err := s.loadForTenant(ctx, userID, tenantID)
	if err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(input.NewPassword, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.repo.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user password")
	}
	user.PasswordHash = hash
	return FromModel(user), nil
}

func (s *service) loadForTenant(ctx context.Context, userID, tenantID int64) (*models.User, error) {
	user, err := s.repo.FindByIDForTenant(ctx, userID, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return user, nil
}
