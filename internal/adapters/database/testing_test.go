package database

import (
	"fmt"
	"strings"
	"testing"

	"sns/internal/config"

	"gorm.io/gorm"
)

// newTestDB returns a migrated in-memory sqlite database private to the test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)

	db, err := config.OpenDatabase(config.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = config.CloseDB(db) })

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
