// Package testutil provides shared test helpers for config files, phrase
// fixtures and a fake translation provider.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// PhraseFiles are the fixture files written by WritePhraseFiles.
type PhraseFiles struct {
	Idioms string
	Slang  string
	Pool   string
}

// WritePhraseFiles writes a small idiom dictionary, slang list and
// challenge pool into dir.
func WritePhraseFiles(t *testing.T, dir string) PhraseFiles {
	t.Helper()

	files := PhraseFiles{
		Idioms: filepath.Join(dir, "idioms.json"),
		Slang:  filepath.Join(dir, "slang.json"),
		Pool:   filepath.Join(dir, "phrases.json"),
	}
	require.NoError(t, os.WriteFile(files.Idioms, []byte(`{"break a leg": "good luck", "spill the beans": "reveal a secret"}`), 0644))
	require.NoError(t, os.WriteFile(files.Slang, []byte(`[{"phrase": "lit", "meaning": "exciting"}]`), 0644))
	require.NoError(t, os.WriteFile(files.Pool, []byte(`["Good morning"]`), 0644))
	return files
}

// SetupTestConfig writes phrase fixtures and a config.yml into dir that use
// them. Language lookups go to providerURL, which may be empty.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, dir, providerURL string) string {
	t.Helper()

	files := WritePhraseFiles(t, dir)
	languagesURL := "http://localhost:1/languages"
	if providerURL != "" {
		languagesURL = providerURL + "/languages"
	}

	configContent := fmt.Sprintf(`translator:
  azure:
    max_retry_attempts: 0
languages:
  url: %s
phrases:
  idioms_file: %s
  slang_file: %s
challenge:
  phrases_file: %s
  items: 1
  default_target: es
history:
  backend: yaml
  file: %s
`,
		languagesURL,
		files.Idioms,
		files.Slang,
		files.Pool,
		filepath.Join(dir, "history", "challenges.yml"),
	)

	cfgPath := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// NewFakeProvider serves the translate and languages endpoints. Every
// translated line is the target code, a colon and the input line.
func NewFakeProvider(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/translate", func(w http.ResponseWriter, r *http.Request) {
		var body []struct{ Text string }
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body) != 1 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		type translation struct {
			Text string `json:"text"`
			To   string `json:"to"`
		}
		var translations []translation
		for _, to := range r.URL.Query()["to"] {
			lines := strings.Split(body[0].Text, "\n")
			for i := range lines {
				lines[i] = fmt.Sprintf("%s:%s", to, lines[i])
			}
			translations = append(translations, translation{Text: strings.Join(lines, "\n"), To: to})
		}
		item := map[string]any{"translations": translations}
		if r.URL.Query().Get("from") == "" {
			item["detectedLanguage"] = map[string]any{"language": "en", "score": 1.0}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]any{item})
	})
	mux.HandleFunc("/languages", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"translation": {
			"en": {"name": "English", "nativeName": "English", "dir": "ltr"},
			"es": {"name": "Spanish", "nativeName": "Español", "dir": "ltr"},
			"fr": {"name": "French", "nativeName": "Français", "dir": "ltr"},
			"ja": {"name": "Japanese", "nativeName": "日本語", "dir": "ltr"}
		}}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}
