// Package dto defines data transfer objects for the users feature's HTTP transport layer.
package dto

// UserReq represents the request body for POST /users and PUT /users/:id.
// It uses Gin's binding tags for validation (required fields, email format, password length).
type UserReq struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}
