package database

import (
	"testing"
)

func TestSeedIdempotent(t *testing.T) {
	db, err := Connect(testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	// Seed should be callable safely — it creates data only when tables are
	// empty. We call it twice to verify idempotency. We don't clear the
	// database first because other test packages may be running
	// concurrently against the same database.
	if err := Seed(db); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	// Verify the seeded author exists.
	var userCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM users WHERE email = 'ada@talkpress.local'").Scan(&userCount); err != nil {
		t.Fatalf("count seeded users: %v", err)
	}
	if userCount < 1 {
		t.Errorf("expected at least 1 seeded user, got %d", userCount)
	}

	// Verify the seeded article exists.
	var articleCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM articles WHERE slug = 'hello-world'").Scan(&articleCount); err != nil {
		t.Fatalf("count seeded articles: %v", err)
	}
	if articleCount < 1 {
		t.Errorf("expected at least 1 seeded article, got %d", articleCount)
	}
}
