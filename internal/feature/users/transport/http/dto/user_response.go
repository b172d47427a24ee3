package dto

import (
	"time"

	"user_backend/internal/feature/users/domain/entity"
)

// UserResponse is the public record for a user.
// The password field is deliberately absent from this type, so encrypted
// values can never leak into a response body.
type UserResponse struct {
	ID        uint      `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ErrorResponse is the common error body for the users endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewUserResponse shapes a user entity into its public record.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NewUserListResponse shapes a slice of user entities into public records.
// It always returns a non-nil slice so an empty store serializes as [].
func NewUserListResponse(users []entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
