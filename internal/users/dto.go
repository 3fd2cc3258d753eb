package users

import (
	"time"

	"github.com/audirhq/audir-backend/pkg/db/models"
	"github.com/audirhq/audir-backend/pkg/enums"
	"github.com/audirhq/audir-backend/pkg/types"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID         int64            `json:"id"`
	Email      string           `json:"email"`
	FirstName  *string          `json:"first_name,omitempty"`
	LastName   *string          `json:"last_name,omitempty"`
	Phone      *string          `json:"phone,omitempty"`
	Department *string          `json:"department,omitempty"`
	Role       enums.Role       `json:"role"`
	Status     enums.UserStatus `json:"status"`
	LastActive *time.Time       `json:"last_active,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}

// CreateUserInput holds the data required to provision a new user.
type CreateUserInput struct {
	Email      string           `json:"email" validate:"required,email"`
	Password   string           `json:"password" validate:"required,min=8"`
	FirstName  *string          `json:"first_name"`
	LastName   *string          `json:"last_name"`
	Phone      *string          `json:"phone"`
	Department *string          `json:"department"`
	Role       enums.Role       `json:"role" validate:"required"`
	Status     enums.UserStatus `json:"status" validate:"required"`
}

// UpdateUserInput carries the partial-merge fields. Absent fields leave the
// stored value untouched; explicit nulls clear nullable columns.
type UpdateUserInput struct {
	FirstName  types.Optional[string]           `json:"first_name"`
	LastName   types.Optional[string]           `json:"last_name"`
	Phone      types.Optional[string]           `json:"phone"`
	Department types.Optional[string]           `json:"department"`
	Role       types.Optional[enums.Role]       `json:"role"`
	Status     types.Optional[enums.UserStatus] `json:"status"`
}

// ResetPasswordInput carries the replacement credential.
type ResetPasswordInput struct {
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// CreateUserDTO is the repo-level record with the credential already hashed.
type CreateUserDTO struct {
	TenantID     int64
	Email        string
	PasswordHash string
	FirstName    *string
	LastName     *string
	Phone        *string
	Department   *string
	Role         enums.Role
	Status       enums.UserStatus
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Phone:      u.Phone,
		Department: u.Department,
		Role:       u.Role,
		Status:     u.Status,
		LastActive: u.LastActive,
		CreatedAt:  u.CreatedAt,
	}
}

func FromModels(rows []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}

func (c CreateUserDTO) ToModel() *models.User {
	status := c.Status
	if status == "" {
		status = enums.UserStatusActive
	}
	return &models.User{
		TenantID:     c.TenantID,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Phone:        c.Phone,
		Department:   c.Department,
		Role:         c.Role,
		Status:       status,
	}
}
