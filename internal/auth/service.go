package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nasugbu/geoportal/internal/database/users"
	"github.com/nasugbu/geoportal/internal/entities"
)

var (
	ErrPasswordRequired   = errors.New("password is required")
	ErrIDNumberRequired   = errors.New("id number is required")
	ErrEmailRequired      = errors.New("email is required")
	ErrNameRequired       = errors.New("name is required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMultipleAccounts   = errors.New("multiple accounts found with this email")
	ErrDuplicateIDNumber  = errors.New("id number already in use")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrAuthRequired       = errors.New("authentication required")
	ErrAdminRequired      = errors.New("admin access required")
	ErrUserNotFound       = errors.New("user not found")
	ErrSelfDelete         = errors.New("cannot delete own account")
)

// Credentials is the raw login bundle. Which identity field applies depends
// on the role: IDNumber for admins, Email for citizens.
type Credentials struct {
	IDNumber string
	Email    string
	Password string
}

// RegisterInput holds the self-registration fields.
type RegisterInput struct {
	IDNumber        string
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// CreateUserInput holds the admin-driven creation fields. There is no
// confirm-password field on this path.
type CreateUserInput struct {
	IDNumber string
	Name     string
	Email    string
	Password string
}

// Service resolves credentials to accounts and runs the account lifecycle.
type Service struct {
	users      *users.Repository
	bcryptCost int
}

// NewService creates a new authentication service.
func NewService(repo *users.Repository, bcryptCost int) *Service {
	return &Service{
		users:      repo,
		bcryptCost: bcryptCost,
	}
}

// Resolve turns a role and raw credentials into exactly one account or a
// definitive failure. Admins are looked up by ID number (their username),
// citizens by email; in both cases the password is verified against the
// account reached through its username. A missing account and a wrong
// password both collapse into ErrInvalidCredentials.
func (s *Service) Resolve(role entities.Role, creds Credentials) (*entities.User, error) {
	if creds.Password == "" {
		return nil, ErrPasswordRequired
	}

	var username string
	switch role {
	case entities.RoleAdmin:
		if creds.IDNumber == "" {
			return nil, ErrIDNumberRequired
		}
		username = creds.IDNumber
	default:
		if creds.Email == "" {
			return nil, ErrEmailRequired
		}
		account, err := s.users.GetByEmail(creds.Email)
		if err != nil {
			if errors.Is(err, users.ErrNotFound) {
				return nil, ErrInvalidCredentials
			}
			if errors.Is(err, users.ErrMultipleEmailMatches) {
				return nil, ErrMultipleAccounts
			}
			return nil, fmt.Errorf("failed to look up email: %w", err)
		}
		username = account.Username
	}

	user, err := s.users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := CheckPassword(creds.Password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return user, nil
}

// Register validates and creates a self-service account. The caller binds
// the session afterward (auto-login); the service itself never touches
// session state.
func (s *Service) Register(role entities.Role, in RegisterInput) (*entities.User, error) {
	if in.Password == "" {
		return nil, ErrPasswordRequired
	}
	if in.Password != in.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if len(in.Password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if role == entities.RoleAdmin {
		if in.IDNumber == "" {
			return nil, ErrIDNumberRequired
		}
		if in.Name == "" {
			return nil, ErrNameRequired
		}
		if in.Email == "" {
			return nil, ErrEmailRequired
		}
		return s.createAdmin(in.IDNumber, in.Name, in.Email, in.Password)
	}

	if in.Email == "" {
		return nil, ErrEmailRequired
	}
	return s.createCitizen(in.Email, in.Password)
}

// CreateUser creates an account on behalf of an admin. The new account is
// never bound to a session; the actor's own session stays untouched.
func (s *Service) CreateUser(actor *entities.User, role entities.Role, in CreateUserInput) (*entities.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if len(in.Password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if role == entities.RoleAdmin {
		if in.IDNumber == "" {
			return nil, ErrIDNumberRequired
		}
		return s.createAdmin(in.IDNumber, in.Name, in.Email, in.Password)
	}

	if in.Email == "" {
		return nil, ErrEmailRequired
	}
	return s.createCitizen(in.Email, in.Password)
}

// ListUsers returns all accounts in creation order as summaries.
func (s *Service) ListUsers(actor *entities.User) ([]entities.UserSummary, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	accounts, err := s.users.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	summaries := make([]entities.UserSummary, 0, len(accounts))
	for i := range accounts {
		summaries = append(summaries, accounts[i].Summary())
	}
	return summaries, nil
}

// DeleteUser removes the target account. Self-deletion is forbidden.
func (s *Service) DeleteUser(actor *entities.User, targetID uint) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	target, err := s.users.GetByID(targetID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to look up target: %w", err)
	}

	if target.ID == actor.ID {
		return ErrSelfDelete
	}

	if err := s.users.Delete(target.ID); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// GetUserByID retrieves an account by its ID.
func (s *Service) GetUserByID(id uint) (*entities.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// createAdmin creates an admin account. The ID number becomes the username;
// the email is stored without a uniqueness requirement.
func (s *Service) createAdmin(idNumber, name, email, password string) (*entities.User, error) {
	hash, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		Username:     idNumber,
		Email:        email,
		PasswordHash: hash,
		IsStaff:      true,
		IsActive:     true,
	}
	user.SplitName(name)

	if err := s.users.Create(user); err != nil {
		if errors.Is(err, users.ErrDuplicateUsername) {
			return nil, ErrDuplicateIDNumber
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return user, nil
}

// createCitizen creates a citizen account. The username is derived from the
// email local-part; on collision a fresh random suffix is appended and the
// insert retried once. Uniqueness is settled by the store's constraints, so
// concurrent registrations cannot slip past the generator.
func (s *Service) createCitizen(email, password string) (*entities.User, error) {
	// Any account holding the email blocks creation, admins included: the
	// email would otherwise become ambiguous and the new citizen could never
	// log in. Citizen-vs-citizen races are still settled atomically by the
	// store's uniqueness constraint below.
	taken, err := s.users.EmailExists(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, ErrDuplicateEmail
	}

	hash, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	localPart, _, _ := strings.Cut(email, "@")
	candidate := localPart

	for attempt := 0; attempt < 2; attempt++ {
		user := &entities.User{
			Username:     candidate,
			Email:        email,
			PasswordHash: hash,
			IsActive:     true,
		}
		err := s.users.Create(user)
		if err == nil {
			return user, nil
		}
		if errors.Is(err, users.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		if errors.Is(err, users.ErrDuplicateUsername) {
			candidate = localPart + "_" + usernameSuffix()
			continue
		}
		return nil, fmt.Errorf("failed to create citizen: %w", err)
	}
	return nil, fmt.Errorf("could not allocate a unique username for %q", localPart)
}

// usernameSuffix returns 8 random hex characters for collision avoidance.
func usernameSuffix() string {
	return uuid.NewString()[:8]
}

func requireAdmin(actor *entities.User) error {
	if actor == nil {
		return ErrAuthRequired
	}
	if !actor.IsStaff {
		return ErrAdminRequired
	}
	return nil
}
