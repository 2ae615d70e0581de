// Package testdb opens throwaway migrated databases for package tests.
package testdb

import (
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	database "github.com/shaunchuang/DtxEx/internals/databases"
)

// Open returns a private in-memory sqlite database with the full schema.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := database.OpenSQLite(dsn, zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// FailInserts makes every INSERT into table fail with err until the test ends.
func FailInserts(t testing.TB, db *gorm.DB, table string, err error) {
	t.Helper()
	name := "testdb:fail_" + table
	cb := db.Callback().Create()
	if e := cb.Before("gorm:create").Register(name, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			_ = tx.AddError(err)
		}
	}); e != nil {
		t.Fatalf("register %s: %v", name, e)
	}
	t.Cleanup(func() { _ = cb.Remove(name) })
}
