package repository_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/doggr/backend/internal/db"
)

// setupTestDB opens an isolated in-memory SQLite DB with foreign keys
// enforced, so the cascade behavior under test matches Postgres.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		NowFunc:                func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(database))
	return database
}

// seedUsers inserts n users and returns them.
func seedUsers(t *testing.T, gdb *gorm.DB, n int) []db.User {
	t.Helper()
	users := make([]db.User, 0, n)
	for i := 1; i <= n; i++ {
		u := db.User{
			Name:     fmt.Sprintf("user%d", i),
			Email:    fmt.Sprintf("u%d@test.com", i),
			Password: "$2b$10$notarealhashnotarealhashnotarealhash",
		}
		require.NoError(t, gdb.Create(&u).Error)
		users = append(users, u)
	}
	return users
}

// seedProfile inserts one pet profile for the given owner.
func seedProfile(t *testing.T, gdb *gorm.DB, userID uint, name string) db.Profile {
	t.Helper()
	p := db.Profile{Name: name, Picture: "ph.jpg", UserID: userID}
	require.NoError(t, gdb.Create(&p).Error)
	return p
}
