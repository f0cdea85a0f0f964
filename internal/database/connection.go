package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// Connect establishes a connection to the card store. SQLite is the
// default; DB_TYPE=postgres switches to the DSN in DATABASE_URL.
func Connect(sqlitePath string) error {
	dbType := os.Getenv("DB_TYPE")
	if dbType == "" {
		dbType = "sqlite"
	}

	if dbType == "postgres" {
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			return fmt.Errorf("DATABASE_URL environment variable is not set")
		}
		db, err := sqlx.Connect("postgres", dsn)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %v", err)
		}
		DB = db
		return initializeSchema()
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(sqlitePath), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %v", err)
	}

	db, err := sqlx.Connect("sqlite3", sqlitePath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %v", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite doesn't support multiple writers
	db.SetMaxIdleConns(1)

	DB = db

	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	_, err := DB.Exec(`
		CREATE TABLE IF NOT EXISTS sets (
			name TEXT PRIMARY KEY,
			description TEXT DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create sets table: %v", err)
	}

	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS cards (
			set_name TEXT NOT NULL,
			word TEXT NOT NULL,
			answer TEXT NOT NULL,
			level INTEGER DEFAULT 0,
			next_review TEXT DEFAULT '',
			PRIMARY KEY (set_name, word),
			FOREIGN KEY (set_name) REFERENCES sets(name)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create cards table: %v", err)
	}

	return nil
}
