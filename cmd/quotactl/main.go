package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Muneerali199/website-builder/boltnewer/users"
	"github.com/Muneerali199/website-builder/internal/config"
	"github.com/Muneerali199/website-builder/internal/logger"
	"github.com/Muneerali199/website-builder/internal/usage"
)

func main() {
	root := newRootCmd(openPostgres)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

type postgresBackend struct {
	repo *users.Repository
}

func (b postgresBackend) Store(ctx context.Context, userID string) (usage.Store, error) {
	if _, err := b.repo.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	return usage.NewProfileStore(b.repo.Profile(userID)), nil
}

func (b postgresBackend) Email(ctx context.Context, userID string) (string, error) {
	user, err := b.repo.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}

	return user.Email, nil
}

// connects to the database behind DATABASE_URL
func openPostgres(ctx context.Context) (backend, func(), error) {
	databaseURL, err := config.LoadDatabaseURL()
	if err != nil {
		return nil, nil, err
	}

	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = 1
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(connectCtx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Debug("connected to database")

	return postgresBackend{repo: users.NewRepository(db)}, db.Close, nil
}
