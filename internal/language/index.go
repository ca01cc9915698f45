package language

import (
	"fmt"
	"strings"

	"github.com/at-ishikawa/verbapilot/internal/translator"
)

// Index resolves user input to provider language codes.
type Index struct {
	languages []Language
	byCode    map[string]Language
	byName    map[string]Language
}

func NewIndex(languages []Language) *Index {
	index := &Index{
		languages: languages,
		byCode:    make(map[string]Language, len(languages)),
		byName:    make(map[string]Language, len(languages)),
	}
	for _, lang := range languages {
		index.byCode[strings.ToLower(lang.Code)] = lang
		index.byName[strings.ToLower(lang.Name)] = lang
	}
	return index
}

func (index *Index) Languages() []Language {
	return index.languages
}

// Name returns the display name for code, or code itself when it is unknown.
func (index *Index) Name(code string) string {
	if lang, ok := index.byCode[strings.ToLower(code)]; ok {
		return lang.Name
	}
	return code
}

// Resolve accepts a language code or display name, ignoring case.
func (index *Index) Resolve(input string) (Language, error) {
	key := strings.ToLower(strings.TrimSpace(input))
	if lang, ok := index.byCode[key]; ok {
		return lang, nil
	}
	if lang, ok := index.byName[key]; ok {
		return lang, nil
	}
	return Language{}, fmt.Errorf("unknown language: %s", input)
}

// ResolveSource is Resolve that also accepts "auto" (or nothing) for detection.
func (index *Index) ResolveSource(input string) (string, error) {
	if translator.IsAutoDetect(input) {
		return translator.AutoDetect, nil
	}
	lang, err := index.Resolve(input)
	if err != nil {
		return "", err
	}
	return lang.Code, nil
}

// ResolveAll resolves every input and fails on the first unknown language.
func (index *Index) ResolveAll(inputs []string) ([]string, error) {
	codes := make([]string, 0, len(inputs))
	for _, input := range inputs {
		lang, err := index.Resolve(input)
		if err != nil {
			return nil, err
		}
		codes = append(codes, lang.Code)
	}
	return codes, nil
}
