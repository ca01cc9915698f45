package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/at-ishikawa/verbapilot/internal/history"
	"github.com/at-ishikawa/verbapilot/internal/quiz"
	"github.com/at-ishikawa/verbapilot/internal/translator"
)

// ErrTranslation marks failures of the translation provider while checking a round.
var ErrTranslation = errors.New("translation failed")

// ChallengeCLI plays challenge rounds in the terminal.
type ChallengeCLI struct {
	*InteractiveCLI
	session    *quiz.Session
	client     translator.Client
	history    history.Repository
	target     string
	targetName string
	now        func() time.Time
}

var _ Session = (*ChallengeCLI)(nil)

func NewChallengeCLI(
	session *quiz.Session,
	client translator.Client,
	repo history.Repository,
	target string,
	targetName string,
	stdin io.Reader,
	stdout io.Writer,
) *ChallengeCLI {
	if targetName == "" {
		targetName = target
	}
	return &ChallengeCLI{
		InteractiveCLI: newInteractiveCLI(stdin, stdout),
		session:        session,
		client:         client,
		history:        repo,
		target:         target,
		targetName:     targetName,
		now:            time.Now,
	}
}

// Session plays one round and asks whether to play another.
func (c *ChallengeCLI) Session(ctx context.Context) error {
	round, err := c.session.NewChallenge(c.target)
	if err != nil {
		return fmt.Errorf("session.NewChallenge > %w", err)
	}

	w := c.stdoutWriter
	_, _ = fmt.Fprintf(w, "Translate these phrases into %s:\n", c.bold.Sprint(c.targetName))
	answers := make([]string, len(round.Items))
	eof := false
	for i, item := range round.Items {
		_, _ = fmt.Fprintf(w, "%d. %s\n   > ", i+1, c.italic.Sprint(item.Phrase))
		if eof {
			_, _ = fmt.Fprintln(w)
			continue
		}
		answers[i], eof, err = c.readLine()
		if err != nil {
			return err
		}
	}

	result, err := c.session.Check(ctx, c.client, answers)
	if err != nil {
		return fmt.Errorf("session.Check > %w: %w", ErrTranslation, err)
	}
	RenderChallengeResult(w, round, result, c.session.XP())
	c.record(ctx, result)

	if eof {
		return errEnd
	}
	_, _ = fmt.Fprint(w, "Play another round? [Y/n] ")
	reply, eof, err := c.readLine()
	if err != nil {
		return err
	}
	if eof || strings.EqualFold(reply, "n") || strings.EqualFold(reply, "no") {
		return errEnd
	}
	_, _ = fmt.Fprintln(w)
	return nil
}

func (c *ChallengeCLI) record(ctx context.Context, score quiz.Result) {
	result, err := history.NewResult(c.target, score, c.now())
	if err == nil {
		err = c.history.Create(ctx, result)
	}
	if err != nil {
		slog.Default().Warn("failed to save challenge result", "error", err)
	}
}
