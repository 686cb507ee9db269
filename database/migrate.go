// database/migrate.go - Database Migration Runner
package database

import (
	"log"
	"pickleball/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Session{},
		&models.GuestPlayer{},
		&models.Match{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates indexes AutoMigrate does not cover
func createIndexes() {
	db := GetDB()

	// group_members is a join table managed by GORM; the composite unique
	// index makes membership inserts idempotent at the storage layer.
	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_group_members_edge ON group_members(group_id, user_id)")

	db.Exec("CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_guest_players_session ON guest_players(session_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_matches_date ON matches(match_date DESC)")
}
