package quiz

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// DefaultPool is used whenever no usable phrase file is available.
var DefaultPool = []string{
	"How are you?",
	"I’m fine, thank you.",
	"What’s your name?",
	"Nice to meet you.",
	"Where are you from?",
	"See you later.",
}

// LoadPool reads challenge phrases from a JSON array of strings, or from the string
// values of a JSON object in file order. It falls back to DefaultPool when the file is
// missing, broken or yields no phrase.
func LoadPool(path string) []string {
	pool, err := readPool(path)
	if err != nil {
		slog.Default().Debug("using the default challenge pool", "path", path, "error", err)
		return defaultPool()
	}
	if len(pool) == 0 {
		return defaultPool()
	}
	return pool
}

func defaultPool() []string {
	return append([]string(nil), DefaultPool...)
}

func readPool(path string) ([]string, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}

	decoder := json.NewDecoder(bytes.NewReader(contents))
	token, err := decoder.Token()
	if err != nil {
		return nil, fmt.Errorf("decoder.Token > %w", err)
	}
	delim, ok := token.(json.Delim)
	if !ok {
		return nil, nil
	}

	var pool []string
	for decoder.More() {
		if delim == '{' {
			if _, err := decoder.Token(); err != nil {
				return nil, fmt.Errorf("decoder.Token > %w", err)
			}
		}
		var value json.RawMessage
		if err := decoder.Decode(&value); err != nil {
			return nil, fmt.Errorf("decoder.Decode > %w", err)
		}
		var phrase string
		if err := json.Unmarshal(value, &phrase); err != nil {
			continue
		}
		if phrase = strings.TrimSpace(phrase); phrase != "" {
			pool = append(pool, phrase)
		}
	}
	if _, err := decoder.Token(); err != nil {
		return nil, fmt.Errorf("decoder.Token > %w", err)
	}
	if token, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected trailing data %v: %v", token, err)
	}
	return pool, nil
}
