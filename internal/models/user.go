package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleCompany UserRole = "company"
)

type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CompanyID    *string   `json:"companyId,omitempty" db:"company_id"`
	Role         UserRole  `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// UserSession binds an issued token to a live Redis session.
type UserSession struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CompanyID string    `json:"companyId,omitempty"`
	Role      UserRole  `json:"role"`
	TokenHash string    `json:"tokenHash"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
	IsActive  bool      `json:"isActive"`
}

type Claims struct {
	jwt.RegisteredClaims
	SessionID string   `json:"sid"`
	UserID    string   `json:"uid"`
	Email     string   `json:"email"`
	CompanyID string   `json:"cid,omitempty"`
	Role      UserRole `json:"role"`
}
