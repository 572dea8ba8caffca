package dto

import "titlehub/internal/http-api/models"

// CreateUserDTO used for POST /v1/users (admin only)
type CreateUserDTO struct {
	Username  string  `json:"username" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Role      *string `json:"role,omitempty"`
}

// UpdateUserDTO used for PATCH /v1/users/:username and /v1/users/me
// (partial updates allowed). The self-service endpoint ignores Role.
type UpdateUserDTO struct {
	Username  *string `json:"username,omitempty"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Role      *string `json:"role,omitempty"`
}

// UserResponse mirrors the public user representation
type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
}

// Converters
func (d CreateUserDTO) ToModel() models.User {
	u := models.User{
		Username: d.Username,
		Email:    d.Email,
		Role:     models.RoleUser,
	}
	if d.FirstName != nil {
		u.FirstName = *d.FirstName
	}
	if d.LastName != nil {
		u.LastName = *d.LastName
	}
	if d.Bio != nil {
		u.Bio = *d.Bio
	}
	if d.Role != nil {
		u.Role = *d.Role
	}
	return u
}

// ApplyTo copies the provided fields onto the user. Role is applied here
// only for the admin endpoints; the self-service path overwrites it back.
func (d UpdateUserDTO) ApplyTo(u *models.User) {
	if d.Username != nil {
		u.Username = *d.Username
	}
	if d.Email != nil {
		u.Email = *d.Email
	}
	if d.FirstName != nil {
		u.FirstName = *d.FirstName
	}
	if d.LastName != nil {
		u.LastName = *d.LastName
	}
	if d.Bio != nil {
		u.Bio = *d.Bio
	}
	if d.Role != nil {
		u.Role = *d.Role
	}
}

func FromModelToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
	}
}
