// Package history stores the outcome of checked challenge rounds.
package history

import (
	"context"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/at-ishikawa/verbapilot/internal/quiz"
)

// Result is one checked round.
type Result struct {
	ID             string    `db:"id" yaml:"id"`
	TargetLanguage string    `db:"target_language" yaml:"target_language"`
	Correct        int       `db:"correct" yaml:"correct"`
	Total          int       `db:"total" yaml:"total"`
	XP             int       `db:"xp" yaml:"xp"`
	PlayedAt       time.Time `db:"played_at" yaml:"played_at"`
}

// Repository persists results.
type Repository interface {
	FindAll(ctx context.Context) ([]Result, error)
	Create(ctx context.Context, result *Result) error
}

// NewResult records a scored round played at playedAt.
func NewResult(target string, score quiz.Result, playedAt time.Time) (*Result, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("gonanoid.New > %w", err)
	}
	return &Result{
		ID:             id,
		TargetLanguage: target,
		Correct:        score.Correct,
		Total:          score.Total,
		XP:             score.XP,
		PlayedAt:       playedAt.UTC(),
	}, nil
}

// TotalXP sums the XP of results.
func TotalXP(results []Result) int {
	total := 0
	for _, r := range results {
		total += r.XP
	}
	return total
}

// NopRepository drops everything it is given.
type NopRepository struct{}

func (NopRepository) FindAll(context.Context) ([]Result, error) { return nil, nil }

func (NopRepository) Create(context.Context, *Result) error { return nil }
