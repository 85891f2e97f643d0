// Package storageutils is the storage utility package
package storageutils

import (
	"context"
	"fmt"

	"github.com/ledgerlens/ledgerlens/pkg/storage"
	"github.com/ledgerlens/ledgerlens/pkg/storage/inmemory"
	"github.com/ledgerlens/ledgerlens/pkg/storage/postgres"
	"github.com/ledgerlens/ledgerlens/pkg/storage/sqlite"
)

type NewStorageDriverOpts struct {
	ProviderType string
	DBPath       string
	ConnStr      string
}

// NewStorageDriver creates the configured answer archive driver.
func NewStorageDriver(ctx context.Context, o *NewStorageDriverOpts) (storage.Driver, error) {
	switch o.ProviderType {
	case "", "inmemory":
		return inmemory.NewInMemoryDriver(), nil
	case "sqlite":
		dbPath := o.DBPath
		if dbPath == "" {
			dbPath = "ledgerlens.db"
		}
		return sqlite.NewSQLiteDriver(dbPath)
	case "postgres":
		return postgres.NewDriver(ctx, o.ConnStr)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", o.ProviderType)
	}
}
