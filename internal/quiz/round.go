package quiz

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/at-ishikawa/verbapilot/internal/translator"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

var (
	ErrEmptyPool    = errors.New("no challenge phrases available")
	ErrRoundChecked = errors.New("challenge round already checked")
	ErrNoRound      = errors.New("no challenge round in progress")
)

// Item is one phrase of a round. Gold and Answer are filled in when the round is checked.
type Item struct {
	Phrase string `json:"phrase"`
	Gold   string `json:"gold,omitempty"`
	Answer string `json:"answer,omitempty"`
}

// Round is a set of phrases to translate into TargetLanguage.
type Round struct {
	ID             string `json:"id"`
	TargetLanguage string `json:"target_language"`
	SourceLanguage string `json:"source_language"`
	Items          []Item `json:"items"`
	Checked        bool   `json:"checked"`
}

type Result struct {
	Correct int      `json:"correct"`
	Total   int      `json:"total"`
	XP      int      `json:"xp"`
	Gold    []string `json:"gold"`
}

// Summary is the one-line score shown after a check.
func (r Result) Summary() string {
	return fmt.Sprintf("You got %d/%d correct! (+%d XP)", r.Correct, r.Total, r.XP)
}

// NewRound samples up to n distinct phrases from pool.
// A nil rng uses the global random source.
func NewRound(pool []string, n int, target, source string, rng *rand.Rand) (*Round, error) {
	n = min(n, len(pool))
	if n <= 0 {
		return nil, ErrEmptyPool
	}

	var order []int
	if rng != nil {
		order = rng.Perm(len(pool))
	} else {
		order = rand.Perm(len(pool))
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("gonanoid.New > %w", err)
	}

	items := make([]Item, n)
	for i := range items {
		items[i] = Item{Phrase: pool[order[i]]}
	}
	return &Round{
		ID:             id,
		TargetLanguage: target,
		SourceLanguage: source,
		Items:          items,
	}, nil
}

func (r *Round) Phrases() []string {
	phrases := make([]string, len(r.Items))
	for i, item := range r.Items {
		phrases[i] = item.Phrase
	}
	return phrases
}

// Check translates the round's phrases in one request, one phrase per line, and
// scores answers against the resulting lines.
func (r *Round) Check(ctx context.Context, client translator.Client, answers []string) (Result, error) {
	if r.Checked {
		return Result{}, ErrRoundChecked
	}

	translations, err := client.TranslateMany(ctx, strings.Join(r.Phrases(), "\n"), []string{r.TargetLanguage}, r.SourceLanguage)
	if err != nil {
		return Result{}, fmt.Errorf("client.TranslateMany > %w", err)
	}
	goldText, ok := translations[r.TargetLanguage]
	if !ok {
		return Result{}, fmt.Errorf("no translation returned for %s", r.TargetLanguage)
	}
	gold := strings.Split(goldText, "\n")

	for i := range r.Items {
		if i < len(gold) {
			r.Items[i].Gold = gold[i]
		}
		if i < len(answers) {
			r.Items[i].Answer = answers[i]
		}
	}
	r.Checked = true

	correct := Score(answers, gold)
	return Result{
		Correct: correct,
		Total:   len(r.Items),
		XP:      XP(correct),
		Gold:    gold,
	}, nil
}
