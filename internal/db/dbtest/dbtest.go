// Package dbtest opens a migrated postgres schema for tests that need the
// real database. Tests are skipped when TEST_DATABASE_URL is not set.
package dbtest

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	dbpkg "github.com/pranamithra/scheduler/internal/db"
)

const envURL = "TEST_DATABASE_URL"

// Open creates a throwaway schema, migrates it and returns a handle whose
// search_path points at it. The schema is dropped when the test ends.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv(envURL)
	if dsn == "" {
		t.Skipf("%s not set", envURL)
	}

	cfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}

	root, err := gorm.Open(postgres.Open(dsn), cfg)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	schema := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if err := root.Exec("CREATE SCHEMA " + schema).Error; err != nil {
		t.Fatalf("create schema: %v", err)
	}

	scoped, err := WithSearchPath(dsn, schema)
	if err != nil {
		t.Fatalf("scope dsn: %v", err)
	}
	db, err := gorm.Open(postgres.Open(scoped), cfg)
	if err != nil {
		t.Fatalf("connect %s: %v", schema, err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		if err := root.Exec("DROP SCHEMA IF EXISTS " + schema + " CASCADE").Error; err != nil {
			t.Logf("drop schema %s: %v", schema, err)
		}
		if sqlDB, err := root.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := dbpkg.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// WithSearchPath adds a search_path runtime parameter to a URL or
// keyword/value DSN.
func WithSearchPath(dsn, schema string) (string, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("parse dsn: %w", err)
		}
		q := u.Query()
		q.Set("search_path", schema)
		u.RawQuery = q.Encode()
		return u.String(), nil
	}
	return strings.TrimSpace(dsn) + " search_path=" + schema, nil
}
