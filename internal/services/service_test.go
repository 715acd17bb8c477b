package services

import (
	"testing"
	"time"

	"github.com/biostackhq/biostack/internal/config"
	"github.com/biostackhq/biostack/internal/database"
	"github.com/biostackhq/biostack/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a fresh in-memory database with the full schema.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:            "test-secret",
		JWTAccessExpiry:      15 * time.Minute,
		JWTRefreshExpiry:     168 * time.Hour,
		FreeProfileLimit:     3,
		ProProfileLimit:      10,
		SlugScope:            config.SlugScopeUser,
		DefaultThemeTemplate: "themes/default",
		ViewDedupWindow:      30 * time.Minute,
		SessionExpiry:        24 * time.Hour,
	}
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Email:    username + "@example.com",
		Username: username,
		Password: "not-a-real-hash",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createProfile(t *testing.T, db *gorm.DB, userID uuid.UUID, slug string) *models.Profile {
	t.Helper()
	profile := &models.Profile{
		UserID:     userID,
		FullName:   "Test Profile",
		Slug:       slug,
		Visibility: models.VisibilityPublic,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("create profile: %v", err)
	}
	return profile
}

// memSession is an in-memory session.Values for tests.
type memSession map[string]interface{}

func (m memSession) Get(key string) interface{} {
	return m[key]
}

func (m memSession) Set(key string, value interface{}) {
	m[key] = value
}

func (m memSession) Delete(key string) {
	delete(m, key)
}
