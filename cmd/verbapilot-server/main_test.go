package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/verbapilot/internal/bootstrap"
	"github.com/at-ishikawa/verbapilot/internal/config"
	"github.com/at-ishikawa/verbapilot/internal/history"
	"github.com/at-ishikawa/verbapilot/internal/phrase"
	"github.com/at-ishikawa/verbapilot/internal/server"
	"github.com/at-ishikawa/verbapilot/internal/testutil"
)

func newTestHTTPServer(t *testing.T) *httptest.Server {
	t.Helper()
	files := testutil.WritePhraseFiles(t, t.TempDir())

	handler, err := server.NewHandler(context.Background(), nil,
		phrase.NewStore(files.Idioms, "", phrase.MatchSubstring), nil, history.NopRepository{},
		server.ChallengeOptions{Pool: []string{"Hello"}, Items: 1, SourceLanguage: "en"})
	require.NoError(t, err)

	srv := httptest.NewServer(newHTTPHandler(handler, []string{"http://localhost:3000"}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewHTTPHandler(t *testing.T) {
	srv := newTestHTTPServer(t)

	t.Run("health", func(t *testing.T) {
		res, err := http.Get(srv.URL + "/healthz")
		require.NoError(t, err)
		defer func() { _ = res.Body.Close() }()
		assert.Equal(t, http.StatusOK, res.StatusCode)
	})

	t.Run("connect procedure", func(t *testing.T) {
		res, err := http.Post(srv.URL+server.ExplainExpressionsProcedure, "application/json",
			strings.NewReader(`{"text": "Break a leg!"}`))
		require.NoError(t, err)
		defer func() { _ = res.Body.Close() }()
		body, err := io.ReadAll(res.Body)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.JSONEq(t, `{"expressions": [{"phrase": "break a leg", "meaning": "good luck", "category": "idiom"}]}`, string(body))
	})

	t.Run("translation without credentials", func(t *testing.T) {
		res, err := http.Post(srv.URL+server.TranslateProcedure, "application/json",
			strings.NewReader(`{"text": "Hello", "to": "es"}`))
		require.NoError(t, err)
		defer func() { _ = res.Body.Close() }()
		assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
	})

	tests := []struct {
		name      string
		origin    string
		wantAllow string
	}{
		{name: "allowed origin", origin: "http://localhost:3000", wantAllow: "http://localhost:3000"},
		{name: "other origin", origin: "http://evil.example", wantAllow: ""},
	}
	for _, tt := range tests {
		t.Run("preflight "+tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodOptions, srv.URL+server.TranslateProcedure, nil)
			require.NoError(t, err)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			req.Header.Set("Access-Control-Request-Headers", "Content-Type")

			res, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer func() { _ = res.Body.Close() }()
			assert.Equal(t, tt.wantAllow, res.Header.Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestNewHistoryRepository(t *testing.T) {
	app := bootstrap.New()

	repo, err := newHistoryRepository(context.Background(), app, &config.Config{History: config.HistoryConfig{Backend: "none"}})
	require.NoError(t, err)
	assert.IsType(t, history.NopRepository{}, repo)

	repo, err = newHistoryRepository(context.Background(), app, &config.Config{History: config.HistoryConfig{Backend: "yaml", File: filepath.Join(t.TempDir(), "h.yml")}})
	require.NoError(t, err)
	assert.IsType(t, &history.YAMLRepository{}, repo)
}

func TestNewTranslator(t *testing.T) {
	assert.Nil(t, newTranslator(&config.Config{}))

	cfg := &config.Config{}
	cfg.Translator.Azure = config.AzureConfig{Endpoint: "https://example.com", Key: "k", Region: "westus"}
	assert.NotNil(t, newTranslator(cfg))
}
