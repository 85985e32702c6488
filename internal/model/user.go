package model

import "time"

// Role values stored on User.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a staff member who can sign in to the admin area.
type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Username     string     `json:"username" gorm:"size:100;not null;uniqueIndex"`
	PasswordHash string     `json:"-" gorm:"column:password;size:255;not null"` // Never expose in JSON
	Email        string     `json:"email" gorm:"size:255;not null"`
	Role         string     `json:"role" gorm:"size:50;not null"`
	FullName     *string    `json:"fullName" gorm:"size:255"`
	LastLogin    *time.Time `json:"lastLogin"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// TableName overrides the table name.
func (User) TableName() string {
	return "users"
}

// UserInput is the insert shape for users. Password is plaintext here and
// hashed before it reaches storage.
type UserInput struct {
	Username string  `json:"username" validate:"required,max=100"`
	Password string  `json:"password" validate:"required,min=6"`
	Email    string  `json:"email" validate:"required,email"`
	Role     string  `json:"role" validate:"omitempty,oneof=user admin"`
	FullName *string `json:"fullName" validate:"omitnil,max=255"`
}
