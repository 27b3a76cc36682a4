// Package database persists the menu catalog with gorm. Both sqlite3 and
// postgres dialects are supported; the store implements menu.Provider.
package database

import (
	"fmt"

	"github.com/jinzhu/gorm"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const (
	DialectSQLite   = "sqlite3"
	DialectPostgres = "postgres"
)

// Open opens a database connection for the dialect
func Open(dialect, url string) (*gorm.DB, error) {
	switch dialect {
	case DialectSQLite, DialectPostgres:
	default:
		return nil, fmt.Errorf("database: unsupported dialect %q", dialect)
	}
	db, err := gorm.Open(dialect, url)
	if err != nil {
		return nil, fmt.Errorf("database: open %s: %w", dialect, err)
	}
	if dialect == DialectSQLite {
		// one connection keeps :memory: databases coherent
		db.DB().SetMaxOpenConns(1)
	}
	return db, nil
}
