package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nasugbu/geoportal/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Citizen emails must be unique so email login resolves to one account.
	// Admin emails are exempt, so this cannot be a gorm uniqueIndex tag.
	err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_citizen_email
		ON users(email) WHERE is_staff = 0`).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create citizen email index: %w", err)
	}

	// Session storage for scs/sqlite3store.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get SQL DB: %w", err)
	}
	_, err = sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, fmt.Errorf("failed to create sessions table: %w", err)
	}

	log.Printf("Database initialized at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// PruneExpiredSessions removes session rows whose expiry has passed.
// sqlite3store stores expiry as a julian day number.
func (d *Database) PruneExpiredSessions() (int64, error) {
	result := d.DB.Exec(`DELETE FROM sessions WHERE expiry < julianday('now')`)
	return result.RowsAffected, result.Error
}
