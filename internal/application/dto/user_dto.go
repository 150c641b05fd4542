package dto

import "time"

// CreateUserRequest alta de usuario por un admin (cualquier rol).
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Role     string `json:"role" validate:"required,oneof=admin vet staff client"`
}

// RegisterRequest autoregistro; siempre queda con rol client.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"omitempty,max=200"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// SetUserStatusRequest activa o desactiva una cuenta.
type SetUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive"`
}
