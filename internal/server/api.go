package server

import (
	"github.com/at-ishikawa/verbapilot/internal/language"
	"github.com/at-ishikawa/verbapilot/internal/phrase"
)

// ServiceName prefixes every procedure path.
const ServiceName = "verbapilot.v1.TranslatorService"

const (
	TranslateProcedure          = "/" + ServiceName + "/Translate"
	MultiTranslateProcedure     = "/" + ServiceName + "/MultiTranslate"
	ExplainExpressionsProcedure = "/" + ServiceName + "/ExplainExpressions"
	ListLanguagesProcedure      = "/" + ServiceName + "/ListLanguages"
	StartChallengeProcedure     = "/" + ServiceName + "/StartChallenge"
	CheckChallengeProcedure     = "/" + ServiceName + "/CheckChallenge"
	ReloadPhrasesProcedure      = "/" + ServiceName + "/ReloadPhrases"
)

// MaxTargets is the most languages one MultiTranslate call accepts.
const MaxTargets = 3

type TranslateRequest struct {
	Text string `json:"text" validate:"required,max=10000"`
	To   string `json:"to" validate:"required,max=64"`
	// From is a language code or name; empty or "auto" detects it.
	From string `json:"from,omitempty" validate:"max=64"`
}

type TranslateResponse struct {
	Text             string         `json:"text"`
	To               string         `json:"to"`
	DetectedLanguage string         `json:"detected_language,omitempty"`
	Expressions      []phrase.Entry `json:"expressions"`
}

type MultiTranslateRequest struct {
	Text    string   `json:"text" validate:"required,max=10000"`
	Targets []string `json:"targets" validate:"min=1,max=3,unique,dive,required,max=64"`
	From    string   `json:"from,omitempty" validate:"max=64"`
}

type TargetTranslation struct {
	Language string `json:"language"`
	Name     string `json:"name,omitempty"`
	Text     string `json:"text"`
}

type MultiTranslateResponse struct {
	Translations []TargetTranslation `json:"translations"`
}

type ExplainExpressionsRequest struct {
	Text string `json:"text" validate:"required,max=10000"`
}

type ExplainExpressionsResponse struct {
	Expressions []phrase.Entry `json:"expressions"`
	// Message is set when nothing matched.
	Message string `json:"message,omitempty"`
}

type ListLanguagesRequest struct{}

type ListLanguagesResponse struct {
	Languages []language.Language `json:"languages"`
}

type StartChallengeRequest struct {
	TargetLanguage string `json:"target_language" validate:"required,max=64"`
	// Items overrides the configured round size.
	Items int `json:"items,omitempty" validate:"omitempty,min=1,max=10"`
}

type StartChallengeResponse struct {
	RoundID        string   `json:"round_id"`
	TargetLanguage string   `json:"target_language"`
	Phrases        []string `json:"phrases"`
}

type CheckChallengeRequest struct {
	RoundID string   `json:"round_id" validate:"required"`
	Answers []string `json:"answers" validate:"max=10"`
}

type CheckChallengeResponse struct {
	Correct int      `json:"correct"`
	Total   int      `json:"total"`
	XP      int      `json:"xp"`
	TotalXP int      `json:"total_xp"`
	Gold    []string `json:"gold"`
	Message string   `json:"message"`
}

type ReloadPhrasesRequest struct{}

type ReloadPhrasesResponse struct {
	Idioms int `json:"idioms"`
	Slang  int `json:"slang"`
}
