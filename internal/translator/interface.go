// Package translator describes the translation provider the application delegates to.
package translator

import (
	"context"
	"errors"
	"strings"
)

//go:generate mockgen -source=interface.go -destination=../mocks/translator/mock_client.go -package=mock_translator

// Client translates text through an external provider.
type Client interface {
	// Translate translates text into one target language.
	// An empty or "auto" source language asks the provider to detect it.
	Translate(ctx context.Context, text, to, from string) (Translation, error)
	// TranslateMany translates text into every target and returns the results keyed by target code.
	TranslateMany(ctx context.Context, text string, targets []string, from string) (map[string]string, error)
}

type Translation struct {
	Text             string `json:"text"`
	DetectedLanguage string `json:"detected_language,omitempty"`
}

// AutoDetect is the source language value that lets the provider detect the language.
const AutoDetect = "auto"

var ErrNotConfigured = errors.New("missing translator credentials")

// UnavailableMessage is shown to users whenever the provider cannot be used.
const UnavailableMessage = "Translation service unavailable, check configuration (set AZURE_TRANSLATOR_KEY, AZURE_TRANSLATOR_REGION and AZURE_TRANSLATOR_ENDPOINT in the environment or .env)."

// UserMessage turns any provider failure into the single message users see.
// The detail is kept for logs only.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return UnavailableMessage
}

// IsAutoDetect reports whether from asks for source language detection.
func IsAutoDetect(from string) bool {
	from = strings.TrimSpace(from)
	return from == "" || strings.EqualFold(from, AutoDetect)
}
