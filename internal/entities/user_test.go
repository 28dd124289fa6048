package entities

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		hint string
		want Role
	}{
		{"admin", RoleAdmin},
		{"citizen", RoleCitizen},
		{"", RoleCitizen},
		{"Admin", RoleCitizen},
		{"staff", RoleCitizen},
	}

	for _, tt := range tests {
		if got := ParseRole(tt.hint); got != tt.want {
			t.Errorf("ParseRole(%q) = %v, want %v", tt.hint, got, tt.want)
		}
	}
}

func TestUser_SplitName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantFirst string
		wantLast  string
	}{
		{"first and last", "Juan Dela Cruz", "Juan", "Dela Cruz"},
		{"single name", "Juan", "Juan", ""},
		{"surrounding spaces", "  Maria Clara  ", "Maria", "Clara"},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var u User
			u.SplitName(tt.input)
			if u.FirstName != tt.wantFirst {
				t.Errorf("FirstName = %q, want %q", u.FirstName, tt.wantFirst)
			}
			if u.LastName != tt.wantLast {
				t.Errorf("LastName = %q, want %q", u.LastName, tt.wantLast)
			}
		})
	}
}

func TestUser_Summary(t *testing.T) {
	u := User{
		ID:        7,
		Username:  "1001",
		Email:     "admin@example.com",
		FirstName: "Juan",
		LastName:  "Dela Cruz",
		IsStaff:   true,
		IsActive:  true,
	}

	s := u.Summary()
	if s.FullName != "Juan Dela Cruz" {
		t.Errorf("FullName = %q, want %q", s.FullName, "Juan Dela Cruz")
	}
	if s.Role != "Admin" {
		t.Errorf("Role = %q, want Admin", s.Role)
	}

	// Display name falls back to username when no name was set
	citizen := User{ID: 8, Username: "juan", Email: "juan@example.com"}
	s = citizen.Summary()
	if s.FullName != "juan" {
		t.Errorf("FullName = %q, want username fallback %q", s.FullName, "juan")
	}
	if s.Role != "Citizen" {
		t.Errorf("Role = %q, want Citizen", s.Role)
	}
}
