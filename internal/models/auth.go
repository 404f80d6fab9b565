package models

import "github.com/golang-jwt/jwt/v5"

// UserRole identifies what a portal user may do.
type UserRole string

const (
	RoleTrainee UserRole = "TRAINEE"
	RoleTrainer UserRole = "TRAINER"
	RoleAdmin   UserRole = "ADMIN"
)

// JWTClaims represents the bearer token payload issued by the identity provider.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Role     UserRole `json:"role"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	jwt.RegisteredClaims
}
