package main

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/verbapilot/internal/testutil"
)

// setConfigFile sets the global configFile variable and registers a cleanup to restore it.
func setConfigFile(t *testing.T, cfgPath string) {
	t.Helper()
	oldConfigFile := configFile
	configFile = cfgPath
	t.Cleanup(func() { configFile = oldConfigFile })
}

// setupBrokenConfigFile creates a config file with invalid YAML that causes Load() to fail.
func setupBrokenConfigFile(t *testing.T) string {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("{{invalid yaml content"), 0644))
	return cfgPath
}

// setupConfig writes a config pointing at provider and a temporary data
// directory, and returns that directory.
func setupConfig(t *testing.T, provider *httptest.Server) string {
	t.Helper()
	dir := t.TempDir()

	providerURL := ""
	if provider != nil {
		providerURL = provider.URL
		t.Setenv("AZURE_TRANSLATOR_ENDPOINT", provider.URL)
		t.Setenv("AZURE_TRANSLATOR_KEY", "test-key")
		t.Setenv("AZURE_TRANSLATOR_REGION", "westus")
	} else {
		t.Setenv("AZURE_TRANSLATOR_KEY", "")
		t.Setenv("AZURE_TRANSLATOR_REGION", "")
	}
	setConfigFile(t, testutil.SetupTestConfig(t, dir, providerURL))
	return dir
}

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs(append([]string{"--config", configFile}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}
