package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"rag-assessment/internal/definition"
	"rag-assessment/internal/domain"
	pgmigrations "rag-assessment/internal/infra/postgres/migrations"
)

type definitionRow struct {
	bun.BaseModel `bun:"table:assessment_definitions"`

	ID        string    `bun:"id,pk"`
	Data      string    `bun:"data,type:jsonb,notnull"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Open returns a bun handle over the pgdriver connector for dsn.
func Open(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

// Migrate applies every pending migration and returns the applied group.
func Migrate(ctx context.Context, db *bun.DB) (*migrate.MigrationGroup, error) {
	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return nil, fmt.Errorf("init migrations: %w", err)
	}
	group, err := migrator.Migrate(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return group, nil
}

// SaveDefinition upserts def as a JSON document keyed by its id.
func SaveDefinition(ctx context.Context, db bun.IDB, def domain.Definition) error {
	if def.ID == "" {
		return fmt.Errorf("%w: missing id", domain.ErrInvalidDefinition)
	}
	data, err := definition.Encode(def)
	if err != nil {
		return fmt.Errorf("encode definition: %w", err)
	}
	row := &definitionRow{ID: def.ID, Data: string(data), UpdatedAt: time.Now().UTC()}
	_, err = db.NewInsert().
		Model(row).
		On("CONFLICT (id) DO UPDATE").
		Set("data = EXCLUDED.data").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("save definition: %w", err)
	}
	return nil
}
