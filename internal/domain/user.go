package domain

import (
	"time"
)

type User struct {
	ID               int64     `json:"id"`
	Email            string    `json:"email"`
	DisplayName      string    `json:"display_name,omitempty"`
	PhotoURL         string    `json:"photo_url,omitempty"`
	PasswordHash     string    `json:"-"`
	Role             UserRole  `json:"role"`
	IsEmailVerified  bool      `json:"is_email_verified"`
	IsMobileVerified bool      `json:"is_mobile_verified"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type UserRole string

const (
	UserRolePatient UserRole = "patient"
	UserRoleDoctor  UserRole = "doctor"
	UserRoleAdmin   UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	return r == UserRolePatient || r == UserRoleDoctor || r == UserRoleAdmin
}

type CreateUserDTO struct {
	Email       string   `json:"email" binding:"required,email"`
	DisplayName string   `json:"display_name"`
	Password    string   `json:"password" binding:"required,min=6"`
	Role        UserRole `json:"role" binding:"required,oneof=patient doctor"`
}

// UpdateUserDTO несет частичное обновление профиля: nil-поля не меняются.
type UpdateUserDTO struct {
	DisplayName      *string `json:"display_name"`
	PhotoURL         *string `json:"photo_url"`
	Email            *string `json:"email" binding:"omitempty,email"`
	IsEmailVerified  *bool   `json:"is_email_verified"`
	IsMobileVerified *bool   `json:"is_mobile_verified"`
}

type PasswordUpdateDTO struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}
