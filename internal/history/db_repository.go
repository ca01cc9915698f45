package history

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/verbapilot/internal/database"
)

// DBRepository stores results in the challenge_results table.
type DBRepository struct {
	db *sqlx.DB
}

var _ Repository = (*DBRepository)(nil)

func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// FindAll returns results oldest first.
func (r *DBRepository) FindAll(ctx context.Context) ([]Result, error) {
	var results []Result
	query := "SELECT id, target_language, correct, total, xp, played_at FROM challenge_results ORDER BY played_at, id"
	if err := r.db.SelectContext(ctx, &results, query); err != nil {
		return nil, fmt.Errorf("history.DBRepository.FindAll > %w", err)
	}
	return results, nil
}

func (r *DBRepository) Create(ctx context.Context, result *Result) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		_, err := tx.NamedExecContext(ctx,
			"INSERT INTO challenge_results (id, target_language, correct, total, xp, played_at) VALUES (:id, :target_language, :correct, :total, :xp, :played_at)",
			result,
		)
		if err != nil {
			return fmt.Errorf("history.DBRepository.Create > %w", err)
		}
		return nil
	})
}
