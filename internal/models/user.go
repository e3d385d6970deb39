package models

import (
	"strings"
	"time"
)

// Role describes what a person does in the fleet. It is informational only.
type Role string

const (
	RoleEmployee   Role = "employee"
	RoleManager    Role = "manager"
	RoleChauffeur  Role = "chauffeur"
	RoleFleetAdmin Role = "fleet_admin"
)

// User represents a person in the company directory.
type User struct {
	ID         string    `bson:"_id,omitempty" json:"id" yaml:"id"`
	Name       string    `bson:"name" json:"name" yaml:"name"`
	Email      string    `bson:"email" json:"email" yaml:"email"`
	Department string    `bson:"department" json:"department" yaml:"department"`
	Role       Role      `bson:"role" json:"role" yaml:"role"`
	IsActive   bool      `bson:"is_active" json:"is_active" yaml:"is_active"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at" yaml:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at" yaml:"updated_at"`
}

// CreateUserRequest is the payload accepted when adding a user to the directory.
type CreateUserRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Role       Role   `json:"role"`
}

// IsValidRole checks if a role is valid
func IsValidRole(role Role) bool {
	switch role {
	case RoleEmployee, RoleManager, RoleChauffeur, RoleFleetAdmin:
		return true
	default:
		return false
	}
}

// Validate checks the request fields. An empty role defaults to employee.
func (r *CreateUserRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errValidation("name is required")
	}
	if strings.TrimSpace(r.Department) == "" {
		return errValidation("department is required")
	}
	if r.Email != "" && (!strings.Contains(r.Email, "@") || !strings.Contains(r.Email, ".")) {
		return errValidation("invalid email format")
	}
	if r.Role == "" {
		r.Role = RoleEmployee
	}
	if !IsValidRole(r.Role) {
		return errValidation("invalid role")
	}
	return nil
}
