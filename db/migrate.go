package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrator wraps a migrate instance over the embedded SQL files.
type Migrator struct {
	m  *migrate.Migrate
	db *sql.DB
}

// NewMigrator opens a dedicated connection for schema changes.
func NewMigrator(dsn string) (*Migrator, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db for migrations: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping db for migrations: %w", err)
	}

	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(conn, &postgres.Config{})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return &Migrator{m: m, db: conn}, nil
}

// Up applies all pending migrations.
func (mg *Migrator) Up() error {
	if err := mg.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	mg.logVersion()
	return nil
}

// Down rolls back steps migrations.
func (mg *Migrator) Down(steps int) error {
	if steps < 1 {
		return fmt.Errorf("steps must be positive")
	}
	if err := mg.m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("roll back migrations: %w", err)
	}
	mg.logVersion()
	return nil
}

// Version reports the applied version. Zero means no migrations ran.
func (mg *Migrator) Version() (uint, bool, error) {
	v, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}

func (mg *Migrator) logVersion() {
	version, dirty, err := mg.Version()
	if err != nil {
		zap.L().Warn("[migrate] could not read version", zap.Error(err))
		return
	}
	zap.L().Info("[migrate] schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
}

// RunMigrations applies every pending migration against dsn.
func RunMigrations(dsn string) error {
	mg, err := NewMigrator(dsn)
	if err != nil {
		return err
	}
	defer mg.Close()
	return mg.Up()
}
