package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Omar96MJ/sanad-sub001/config"
)

// InitializeDatabases creates the application and casbin databases when they
// do not exist yet. It connects through the maintenance database, so the
// configured user needs CREATEDB.
func InitializeDatabases(ctx context.Context, cfg *config.Config) error {
	names := []string{cfg.Database.DBName, cfg.CasbinDatabase.DBName}

	maintenance := FromCentralConfig(cfg.Database)
	maintenance.DBName = "postgres"

	conn, err := pgx.Connect(ctx, maintenance.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect to postgres database: %w", err)
	}
	defer conn.Close(ctx)

	for _, name := range names {
		if name == "" {
			continue
		}
		if err := createDatabaseIfNotExists(ctx, conn, name); err != nil {
			return fmt.Errorf("failed to create database %q: %w", name, err)
		}
	}

	return nil
}

func createDatabaseIfNotExists(ctx context.Context, conn *pgx.Conn, name string) error {
	var exists bool
	err := conn.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)`, name,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}
	if exists {
		return nil
	}

	// CREATE DATABASE cannot be parameterized.
	_, err = conn.Exec(ctx, fmt.Sprintf(`CREATE DATABASE %s`, pgx.Identifier{name}.Sanitize()))
	return err
}
