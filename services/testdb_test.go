// services/testdb_test.go - Shared test database helpers
package services

import (
	"testing"

	"pickleball/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// One connection so every query sees the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Session{},
		&models.GuestPlayer{},
		&models.Match{},
	))
	require.NoError(t, db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_group_members_edge ON group_members(group_id, user_id)",
	).Error)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email, name string) *models.User {
	t.Helper()

	user := &models.User{
		Email:    &email,
		Password: "$2a$10$not.a.real.hash.but.non.empty",
		Name:     name,
		Role:     models.RoleUser,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
