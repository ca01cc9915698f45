package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/verbapilot/internal/quiz"
)

func TestNewResult(t *testing.T) {
	playedAt := time.Date(2025, 3, 1, 9, 0, 0, 0, time.FixedZone("JST", 9*60*60))

	got, err := NewResult("es", quiz.Result{Correct: 2, Total: 3, XP: 20, Gold: []string{"a", "b", "c"}}, playedAt)
	require.NoError(t, err)

	assert.Len(t, got.ID, 21)
	assert.Equal(t, "es", got.TargetLanguage)
	assert.Equal(t, 2, got.Correct)
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 20, got.XP)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), got.PlayedAt)
}

func TestTotalXP(t *testing.T) {
	tests := []struct {
		name    string
		results []Result
		want    int
	}{
		{name: "none", want: 0},
		{
			name:    "sum",
			results: []Result{{XP: 30}, {XP: 0}, {XP: 10}},
			want:    40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalXP(tt.results))
		})
	}
}

func TestNopRepository(t *testing.T) {
	repo := NopRepository{}
	require.NoError(t, repo.Create(context.Background(), &Result{ID: "x", XP: 10}))

	got, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}
