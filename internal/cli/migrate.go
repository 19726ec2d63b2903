package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"patriot-quiz-bot/internal/config"
	"patriot-quiz-bot/internal/content"
	pgbank "patriot-quiz-bot/internal/infra/postgres"
	pgmigrations "patriot-quiz-bot/internal/infra/postgres/migrations"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

// NewMigrateCmd applies database migrations and seeds the default
// question bank.
func NewMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and seed the question bank",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrations(cmd.Context(), *configPath)
		},
	}
}

func runMigrations(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	return runMigrationsWithConfig(ctx, cfg)
}

func runMigrationsWithConfig(ctx context.Context, cfg config.Config) error {
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)

	if err := migrator.Init(ctx); err != nil {
		return err
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		return err
	}

	if err := seedDefaultBank(ctx, db); err != nil {
		return err
	}
	log.Printf("migrations applied")
	return nil
}

// seedDefaultBank upserts the built-in question catalog so a fresh
// database starts with content. An operator-edited bank keeps its id but
// is overwritten on the next migrate run.
func seedDefaultBank(ctx context.Context, db *bun.DB) error {
	data, err := json.Marshal(content.DefaultBank())
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		"INSERT INTO question_banks (id, data) VALUES (?, ?) ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data",
		pgbank.DefaultBankID, string(data))
	return err
}
