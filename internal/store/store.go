// Package store persists small named values. The pickup-line history is the only slot today.
package store

import (
	"context"
	"fmt"
)

// KV is a string-valued key/value port.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Open returns the KV backend for driver. dsn is ignored by the memory driver.
func Open(driver, dsn string) (KV, error) {
	switch driver {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverSQLite, DriverPostgres:
		return NewSQLStore(driver, dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
