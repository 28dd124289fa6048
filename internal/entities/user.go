package entities

import (
	"strings"
	"time"
)

// Role is the closed set of account roles. The role is decided when the
// account is created and never changes afterwards.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCitizen Role = "citizen"
)

// ParseRole maps a client-supplied role hint to a Role. Only the exact
// string "admin" selects the admin role; every other value, including the
// empty string, is a citizen.
func ParseRole(hint string) Role {
	if hint == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleCitizen
}

// User is an account in the portal. Admins are identified by an ID number
// (stored as the username); citizens are identified by their email address.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:150" json:"username"`
	Email        string    `gorm:"index;size:255" json:"email"`
	PasswordHash string    `gorm:"size:100" json:"-"`
	FirstName    string    `gorm:"size:150" json:"first_name"`
	LastName     string    `gorm:"size:150" json:"last_name"`
	IsStaff      bool      `gorm:"default:false" json:"is_staff"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Role derives the account role from the staff flag.
func (u *User) Role() Role {
	if u.IsStaff {
		return RoleAdmin
	}
	return RoleCitizen
}

// RoleLabel returns the human-readable role name.
func (u *User) RoleLabel() string {
	if u.IsStaff {
		return "Admin"
	}
	return "Citizen"
}

// FullName joins the name parts, dropping the separator when either is empty.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// SplitName assigns a single "full name" input to the name fields, splitting
// on the first space. The last name stays empty when there is no space.
func (u *User) SplitName(name string) {
	first, last, _ := strings.Cut(strings.TrimSpace(name), " ")
	u.FirstName = first
	u.LastName = last
}

// UserSummary is the account representation exposed to admin listings.
// It never carries the password hash.
type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

// Summary builds the listing representation. The display name falls back to
// the username when no name was ever set.
func (u *User) Summary() UserSummary {
	fullName := u.FullName()
	if fullName == "" {
		fullName = u.Username
	}
	return UserSummary{
		ID:       u.ID,
		Username: u.Username,
		FullName: fullName,
		Role:     u.RoleLabel(),
		Email:    u.Email,
		IsActive: u.IsActive,
	}
}
