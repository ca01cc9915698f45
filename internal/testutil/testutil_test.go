package testutil

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTestConfig(t *testing.T) {
	tests := []struct {
		name         string
		providerURL  string
		wantLanguage string
	}{
		{name: "with provider", providerURL: "http://127.0.0.1:9999", wantLanguage: "url: http://127.0.0.1:9999/languages"},
		{name: "without provider", wantLanguage: "url: http://localhost:1/languages"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			got := SetupTestConfig(t, tmpDir, tt.providerURL)
			assert.Equal(t, filepath.Join(tmpDir, "config.yml"), got)

			content, err := os.ReadFile(got)
			require.NoError(t, err)
			assert.Contains(t, string(content), tt.wantLanguage)
			assert.Contains(t, string(content), filepath.Join(tmpDir, "idioms.json"))

			for _, name := range []string{"idioms.json", "slang.json", "phrases.json"} {
				_, err := os.Stat(filepath.Join(tmpDir, name))
				require.NoError(t, err, "%s should exist", name)
			}
		})
	}
}

func TestNewFakeProvider(t *testing.T) {
	server := NewFakeProvider(t)

	t.Run("translate", func(t *testing.T) {
		res, err := http.Post(server.URL+"/translate?to=es&to=fr", "application/json",
			strings.NewReader(`[{"Text": "Hello\nBye"}]`))
		require.NoError(t, err)
		defer func() { _ = res.Body.Close() }()

		var got []struct {
			DetectedLanguage struct{ Language string } `json:"detectedLanguage"`
			Translations     []struct {
				Text string `json:"text"`
				To   string `json:"to"`
			} `json:"translations"`
		}
		require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
		require.Len(t, got, 1)
		assert.Equal(t, "en", got[0].DetectedLanguage.Language)
		require.Len(t, got[0].Translations, 2)
		assert.Equal(t, "es:Hello\nes:Bye", got[0].Translations[0].Text)
		assert.Equal(t, "fr", got[0].Translations[1].To)
	})

	t.Run("bad request", func(t *testing.T) {
		res, err := http.Post(server.URL+"/translate?to=es", "application/json", strings.NewReader(`[]`))
		require.NoError(t, err)
		defer func() { _ = res.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("languages", func(t *testing.T) {
		res, err := http.Get(server.URL + "/languages")
		require.NoError(t, err)
		defer func() { _ = res.Body.Close() }()
		var got struct {
			Translation map[string]any `json:"translation"`
		}
		require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
		assert.Len(t, got.Translation, 4)
	})
}
