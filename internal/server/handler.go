// Package server exposes translation, expression lookup and challenges as
// Connect unary procedures.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"connectrpc.com/connect"

	"github.com/at-ishikawa/verbapilot/internal/history"
	"github.com/at-ishikawa/verbapilot/internal/language"
	"github.com/at-ishikawa/verbapilot/internal/phrase"
	"github.com/at-ishikawa/verbapilot/internal/quiz"
	"github.com/at-ishikawa/verbapilot/internal/translator"
)

// roundTTL is how long an unchecked round is kept.
const roundTTL = time.Hour

type ChallengeOptions struct {
	Pool           []string
	Items          int
	SourceLanguage string
}

// Handler serves every procedure of the translator service.
type Handler struct {
	client    translator.Client
	phrases   *phrase.Store
	languages language.Lister
	history   history.Repository
	challenge ChallengeOptions
	validator *requestValidator
	now       func() time.Time

	mu     sync.Mutex
	rounds map[string]*pendingRound
	xp     int
}

type pendingRound struct {
	round     *quiz.Round
	startedAt time.Time
}

// NewHandler creates a handler. A nil client makes every translation call
// fail with Unavailable. The running XP total starts from the persisted history.
func NewHandler(
	ctx context.Context,
	client translator.Client,
	phrases *phrase.Store,
	languages language.Lister,
	repo history.Repository,
	challenge ChallengeOptions,
) (*Handler, error) {
	v, err := newRequestValidator()
	if err != nil {
		return nil, fmt.Errorf("newRequestValidator > %w", err)
	}
	if repo == nil {
		repo = history.NopRepository{}
	}

	h := &Handler{
		client:    client,
		phrases:   phrases,
		languages: languages,
		history:   repo,
		challenge: challenge,
		validator: v,
		now:       time.Now,
		rounds:    make(map[string]*pendingRound),
	}
	results, err := repo.FindAll(ctx)
	if err != nil {
		slog.Default().Warn("failed to load challenge history", "error", err)
	}
	h.xp = history.TotalXP(results)
	return h, nil
}

// Routes returns the path prefix and handler to mount on a mux.
func (h *Handler) Routes(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(TranslateProcedure, connect.NewUnaryHandler(TranslateProcedure, h.Translate, opts...))
	mux.Handle(MultiTranslateProcedure, connect.NewUnaryHandler(MultiTranslateProcedure, h.MultiTranslate, opts...))
	mux.Handle(ExplainExpressionsProcedure, connect.NewUnaryHandler(ExplainExpressionsProcedure, h.ExplainExpressions, opts...))
	mux.Handle(ListLanguagesProcedure, connect.NewUnaryHandler(ListLanguagesProcedure, h.ListLanguages, opts...))
	mux.Handle(StartChallengeProcedure, connect.NewUnaryHandler(StartChallengeProcedure, h.StartChallenge, opts...))
	mux.Handle(CheckChallengeProcedure, connect.NewUnaryHandler(CheckChallengeProcedure, h.CheckChallenge, opts...))
	mux.Handle(ReloadPhrasesProcedure, connect.NewUnaryHandler(ReloadPhrasesProcedure, h.ReloadPhrases, opts...))
	return "/" + ServiceName + "/", mux
}

func (h *Handler) Translate(
	ctx context.Context,
	req *connect.Request[TranslateRequest],
) (*connect.Response[TranslateResponse], error) {
	if err := h.validator.check(req.Msg); err != nil {
		return nil, err
	}
	if err := h.requireClient(); err != nil {
		return nil, err
	}

	index := h.languageIndex(ctx)
	to, err := resolveTarget(index, "to", req.Msg.To)
	if err != nil {
		return nil, err
	}
	from, err := resolveSource(index, req.Msg.From)
	if err != nil {
		return nil, err
	}

	result, err := h.client.Translate(ctx, req.Msg.Text, to, from)
	if err != nil {
		return nil, unavailable(err)
	}
	return connect.NewResponse(&TranslateResponse{
		Text:             result.Text,
		To:               to,
		DetectedLanguage: result.DetectedLanguage,
		Expressions:      h.match(req.Msg.Text),
	}), nil
}

// MultiTranslate translates text into up to MaxTargets languages with one provider call.
func (h *Handler) MultiTranslate(
	ctx context.Context,
	req *connect.Request[MultiTranslateRequest],
) (*connect.Response[MultiTranslateResponse], error) {
	if err := h.validator.check(req.Msg); err != nil {
		return nil, err
	}
	if err := h.requireClient(); err != nil {
		return nil, err
	}

	index := h.languageIndex(ctx)
	targets := make([]string, 0, len(req.Msg.Targets))
	for i, input := range req.Msg.Targets {
		code, err := resolveTarget(index, fmt.Sprintf("targets[%d]", i), input)
		if err != nil {
			return nil, err
		}
		targets = append(targets, code)
	}
	from, err := resolveSource(index, req.Msg.From)
	if err != nil {
		return nil, err
	}

	results, err := h.client.TranslateMany(ctx, req.Msg.Text, targets, from)
	if err != nil {
		return nil, unavailable(err)
	}

	translations := make([]TargetTranslation, 0, len(targets))
	for _, code := range targets {
		t := TargetTranslation{Language: code, Text: results[code]}
		if index != nil {
			t.Name = index.Name(code)
		}
		translations = append(translations, t)
	}
	return connect.NewResponse(&MultiTranslateResponse{Translations: translations}), nil
}

func (h *Handler) ExplainExpressions(
	_ context.Context,
	req *connect.Request[ExplainExpressionsRequest],
) (*connect.Response[ExplainExpressionsResponse], error) {
	if err := h.validator.check(req.Msg); err != nil {
		return nil, err
	}

	res := &ExplainExpressionsResponse{Expressions: h.match(req.Msg.Text)}
	if len(res.Expressions) == 0 {
		res.Message = "No idioms or slang from our list were found."
	}
	return connect.NewResponse(res), nil
}

func (h *Handler) ListLanguages(
	ctx context.Context,
	_ *connect.Request[ListLanguagesRequest],
) (*connect.Response[ListLanguagesResponse], error) {
	if h.languages == nil {
		return nil, connect.NewError(connect.CodeUnavailable, errors.New("language list is not configured"))
	}
	languages, err := h.languages.List(ctx)
	if err != nil {
		return nil, unavailable(err)
	}
	return connect.NewResponse(&ListLanguagesResponse{Languages: languages}), nil
}

func (h *Handler) StartChallenge(
	ctx context.Context,
	req *connect.Request[StartChallengeRequest],
) (*connect.Response[StartChallengeResponse], error) {
	if err := h.validator.check(req.Msg); err != nil {
		return nil, err
	}

	target, err := resolveTarget(h.languageIndex(ctx), "target_language", req.Msg.TargetLanguage)
	if err != nil {
		return nil, err
	}
	items := h.challenge.Items
	if req.Msg.Items > 0 {
		items = req.Msg.Items
	}

	round, err := quiz.NewRound(h.challenge.Pool, items, target, h.challenge.SourceLanguage, nil)
	if errors.Is(err, quiz.ErrEmptyPool) {
		return nil, connect.NewError(connect.CodeFailedPrecondition, err)
	}
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("quiz.NewRound > %w", err))
	}

	now := h.now()
	h.mu.Lock()
	for id, pending := range h.rounds {
		if now.Sub(pending.startedAt) > roundTTL {
			delete(h.rounds, id)
		}
	}
	h.rounds[round.ID] = &pendingRound{round: round, startedAt: now}
	h.mu.Unlock()

	return connect.NewResponse(&StartChallengeResponse{
		RoundID:        round.ID,
		TargetLanguage: round.TargetLanguage,
		Phrases:        round.Phrases(),
	}), nil
}

// CheckChallenge scores a round once. The round is forgotten after a successful check.
func (h *Handler) CheckChallenge(
	ctx context.Context,
	req *connect.Request[CheckChallengeRequest],
) (*connect.Response[CheckChallengeResponse], error) {
	if err := h.validator.check(req.Msg); err != nil {
		return nil, err
	}
	if err := h.requireClient(); err != nil {
		return nil, err
	}

	h.mu.Lock()
	pending, ok := h.rounds[req.Msg.RoundID]
	if ok {
		delete(h.rounds, req.Msg.RoundID)
	}
	h.mu.Unlock()
	if !ok {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("challenge round %q not found", req.Msg.RoundID))
	}

	score, err := pending.round.Check(ctx, h.client, req.Msg.Answers)
	if err != nil {
		// the round can be retried once the provider is back
		h.mu.Lock()
		h.rounds[req.Msg.RoundID] = pending
		h.mu.Unlock()
		return nil, unavailable(err)
	}

	h.mu.Lock()
	h.xp += score.XP
	totalXP := h.xp
	h.mu.Unlock()

	result, err := history.NewResult(pending.round.TargetLanguage, score, h.now())
	if err == nil {
		err = h.history.Create(ctx, result)
	}
	if err != nil {
		slog.Default().Warn("failed to save challenge result", "round", req.Msg.RoundID, "error", err)
	}

	return connect.NewResponse(&CheckChallengeResponse{
		Correct: score.Correct,
		Total:   score.Total,
		XP:      score.XP,
		TotalXP: totalXP,
		Gold:    score.Gold,
		Message: score.Summary(),
	}), nil
}

func (h *Handler) ReloadPhrases(
	_ context.Context,
	_ *connect.Request[ReloadPhrasesRequest],
) (*connect.Response[ReloadPhrasesResponse], error) {
	if h.phrases == nil {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errors.New("phrase dictionary is not configured"))
	}
	db := h.phrases.Reload()
	return connect.NewResponse(&ReloadPhrasesResponse{
		Idioms: db.Idioms().Len(),
		Slang:  db.Slang().Len(),
	}), nil
}

func (h *Handler) match(text string) []phrase.Entry {
	if h.phrases == nil {
		return []phrase.Entry{}
	}
	hits := h.phrases.Match(text)
	if hits == nil {
		return []phrase.Entry{}
	}
	return hits
}

func (h *Handler) requireClient() error {
	if h.client == nil {
		return unavailable(translator.ErrNotConfigured)
	}
	return nil
}

// languageIndex returns nil when the language list cannot be fetched, in
// which case inputs are passed to the provider as they are.
func (h *Handler) languageIndex(ctx context.Context) *language.Index {
	if h.languages == nil {
		return nil
	}
	languages, err := h.languages.List(ctx)
	if err != nil {
		slog.Default().Warn("language list unavailable, passing codes through", "error", err)
		return nil
	}
	return language.NewIndex(languages)
}

func resolveTarget(index *language.Index, field, input string) (string, error) {
	if index == nil {
		return strings.TrimSpace(input), nil
	}
	lang, err := index.Resolve(input)
	if err != nil {
		return "", invalidArgument(field, err.Error())
	}
	return lang.Code, nil
}

func resolveSource(index *language.Index, input string) (string, error) {
	if index == nil {
		if translator.IsAutoDetect(input) {
			return translator.AutoDetect, nil
		}
		return strings.TrimSpace(input), nil
	}
	code, err := index.ResolveSource(input)
	if err != nil {
		return "", invalidArgument("from", err.Error())
	}
	return code, nil
}

// unavailable hides provider details from callers and logs them instead.
func unavailable(err error) *connect.Error {
	slog.Default().Warn("translation provider call failed", "error", err)
	return connect.NewError(connect.CodeUnavailable, errors.New(translator.UnavailableMessage))
}
