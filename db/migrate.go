package db

import (
	"embed"
	"errors"
	"net/http"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/httpfs"
	"github.com/ninja-software/terror/v2"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/lib/pq" // postgres driver for golang-migrate
)

//go:embed migrations
var migrations embed.FS

func newMigrate(connString string) (*migrate.Migrate, error) {
	source, err := httpfs.New(http.FS(migrations), "migrations")
	if err != nil {
		return nil, terror.Error(err, "could not read embedded migrations")
	}
	mig, err := migrate.NewWithSourceInstance("embed", source, connString)
	if err != nil {
		return nil, terror.Error(err, "could not initialise migrations")
	}
	return mig, nil
}

// MigrateUp applies all pending migrations.
func MigrateUp(connString string) error {
	mig, err := newMigrate(connString)
	if err != nil {
		return err
	}
	defer mig.Close()
	err = mig.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return terror.Error(err, "migrate up failed")
	}
	return nil
}

// MigrateDown reverts every migration, dropping the schema.
func MigrateDown(connString string) error {
	mig, err := newMigrate(connString)
	if err != nil {
		return err
	}
	defer mig.Close()
	err = mig.Down()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return terror.Error(err, "migrate down failed")
	}
	return nil
}
