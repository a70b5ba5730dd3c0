package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"rag-assessment/internal/definition"
	"rag-assessment/internal/domain"
)

// DefinitionLoader loads definition documents stored as JSONB.
type DefinitionLoader struct {
	pool *pgxpool.Pool
}

func NewDefinitionLoader(pool *pgxpool.Pool) *DefinitionLoader {
	return &DefinitionLoader{pool: pool}
}

func (l *DefinitionLoader) LoadDefinition(ctx context.Context, definitionID string) (domain.Definition, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM assessment_definitions WHERE id=$1`, definitionID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Definition{}, domain.ErrDefinitionNotFound
	}
	if err != nil {
		return domain.Definition{}, fmt.Errorf("load definition: %w", err)
	}
	return definition.Decode(definitionID, raw, definition.FormatJSON)
}
