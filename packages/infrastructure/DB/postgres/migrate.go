package postgres

import (
	"errors"
	"hoa/packages/common/config"
	log "hoa/packages/infrastructure/DB/postgres/logger"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

type Migrate struct {
	config *pgxpool.Config
}

func (m *Migrate) init() (*migrate.Migrate, error) {
	log.Migration.Trace("Initializing DB driver for migrations...", nil)

	db := stdlib.OpenDB(*m.config.ConnConfig)

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, err
	}

	migrator, err := migrate.NewWithDatabaseInstance(
		"file://"+config.DB.MigrationsPath,
		"postgres",
		dbDriver,
	)
	if err != nil {
		return nil, err
	}

	log.Migration.Trace("Initializing DB driver for migrations: OK", nil)

	return migrator, nil
}

func (m *Migrate) run(name string, fn func(*migrate.Migrate) error) error {
	migrator, err := m.init()
	if err != nil {
		log.Migration.Error("Failed to initialize migrations", err.Error(), nil)
		return err
	}
	defer migrator.Close()

	log.Migration.Info("Applying migrations ("+name+")...", nil)

	if err := fn(migrator); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Migration.Info("Applying migrations ("+name+"): no change", nil)
			return nil
		}
		log.Migration.Error("Failed to apply migrations ("+name+")", err.Error(), nil)
		return err
	}

	log.Migration.Info("Applying migrations ("+name+"): OK", nil)

	return nil
}

// Applies all pending migrations.
func (m *Migrate) Up() error {
	return m.run("up", (*migrate.Migrate).Up)
}

// Rolls back single migration.
func (m *Migrate) Down() error {
	return m.Steps(-1)
}

// Applies n migrations, rolls back if n is negative.
func (m *Migrate) Steps(n int) error {
	return m.run("steps "+strconv.Itoa(n), func(migrator *migrate.Migrate) error {
		return migrator.Steps(n)
	})
}
