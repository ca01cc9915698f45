package quiz

import (
	"context"
	"math/rand/v2"

	"github.com/at-ishikawa/verbapilot/internal/translator"
)

// Session keeps one player's current round and cumulative XP.
// It is meant for a single interactive user and is not safe for concurrent use.
type Session struct {
	pool   []string
	items  int
	source string
	rng    *rand.Rand

	xp    int
	round *Round
}

func NewSession(pool []string, items int, source string, rng *rand.Rand) *Session {
	return &Session{
		pool:   pool,
		items:  items,
		source: source,
		rng:    rng,
	}
}

// NewChallenge discards the current round and starts a new one.
func (s *Session) NewChallenge(target string) (*Round, error) {
	round, err := NewRound(s.pool, s.items, target, s.source, s.rng)
	if err != nil {
		return nil, err
	}
	s.round = round
	return round, nil
}

func (s *Session) Round() *Round {
	return s.round
}

// Check scores the current round and adds its XP to the session.
func (s *Session) Check(ctx context.Context, client translator.Client, answers []string) (Result, error) {
	if s.round == nil {
		return Result{}, ErrNoRound
	}
	result, err := s.round.Check(ctx, client, answers)
	if err != nil {
		return Result{}, err
	}
	s.xp += result.XP
	return result, nil
}

func (s *Session) XP() int {
	return s.xp
}
