// Package users provides database operations for portal accounts.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetByUsername("1001")
package users

import (
	"errors"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"github.com/nasugbu/geoportal/internal/entities"
)

var (
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateUsername and ErrDuplicateEmail are returned by Create when
	// the insert hits a uniqueness constraint. Callers rely on Create being
	// atomic: a preceding existence check is advisory only.
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
	// ErrMultipleEmailMatches signals corrupt data: more than one account
	// shares an email used for citizen login.
	ErrMultipleEmailMatches = errors.New("multiple accounts share this email")
)

// Repository handles all account database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the account, failing atomically on uniqueness violations.
func (r *Repository) Create(user *entities.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return translateConstraintErr(err)
	}
	return nil
}

// GetByID retrieves an account by primary key.
func (r *Repository) GetByID(id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsername retrieves an account by its unique username.
func (r *Repository) GetByUsername(username string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves the single account with the given email.
// Returns ErrMultipleEmailMatches when the email is ambiguous, which can
// happen because admin emails carry no uniqueness constraint.
func (r *Repository) GetByEmail(email string) (*entities.User, error) {
	var matches []entities.User
	if err := r.db.Where("email = ?", email).Find(&matches).Error; err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return &matches[0], nil
	default:
		return nil, ErrMultipleEmailMatches
	}
}

// UsernameExists reports whether any account holds the username.
func (r *Repository) UsernameExists(username string) (bool, error) {
	var count int64
	err := r.db.Model(&entities.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// EmailExists reports whether any account holds the email.
func (r *Repository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&entities.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// List returns all accounts in creation order.
func (r *Repository) List() ([]entities.User, error) {
	var users []entities.User
	err := r.db.Order("created_at asc, id asc").Find(&users).Error
	return users, err
}

// Delete removes an account by ID. Returns ErrNotFound if no row matched.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// translateConstraintErr maps sqlite unique-constraint violations onto the
// repository's duplicate errors, keyed by the column the constraint names.
func translateConstraintErr(err error) error {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}
	if sqliteErr.ExtendedCode != sqlite3.ErrConstraintUnique {
		return err
	}
	msg := sqliteErr.Error()
	switch {
	case strings.Contains(msg, "users.username"):
		return ErrDuplicateUsername
	case strings.Contains(msg, "users.email"):
		return ErrDuplicateEmail
	}
	return err
}
