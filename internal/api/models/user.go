package models

import "time"

// User represents a user in the database.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// RegisterRequest defines the structure for a user registration request.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,personname,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=50"`
}

// LoginRequest defines the structure for a user login request.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// EditUserRequest carries a partial profile update. Empty fields are
// left untouched. OldPassword is only consulted when Password is set.
type EditUserRequest struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email" binding:"omitempty,email"`
	Password    string `json:"password" binding:"omitempty,min=6,max=50"`
	OldPassword string `json:"oldpassword"`
}
