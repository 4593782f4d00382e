package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: two users
// and one article to comment on. It is a no-op when users already exist.
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	var authorID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, display_name, profile_slug)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, "ada@talkpress.local", string(hash), "Ada", "ada").Scan(&authorID)
	if err != nil {
		return fmt.Errorf("seed insert author: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, profile_slug)
		VALUES ($1, $2, $3, $4)
	`, "grace@talkpress.local", string(hash), "Grace", "grace")
	if err != nil {
		return fmt.Errorf("seed insert reader: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO articles (slug, title, author_id)
		VALUES ($1, $2, $3)
	`, "hello-world", "Hello, World", authorID)
	if err != nil {
		return fmt.Errorf("seed insert article: %w", err)
	}

	slog.Info("database seeded with development data",
		"users", "ada@talkpress.local, grace@talkpress.local",
		"password", "password",
		"article", "hello-world",
	)

	return nil
}
