package phrase

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
)

// Load builds a database from the idiom and slang files.
// A missing file is an empty category; a broken file is an empty category and a warning.
func Load(idiomsPath, slangPath string) *Database {
	return NewDatabase(loadSource(idiomsPath), loadSource(slangPath))
}

func loadSource(path string) Source {
	source, err := readSource(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Default().Debug("phrase source not found", "path", path)
		} else {
			slog.Default().Warn("failed to load phrase source, using an empty one",
				"path", path,
				"error", err)
		}
		return Source{Kind: SourceEmpty}
	}
	return source
}

func readSource(path string) (Source, error) {
	if path == "" {
		return Source{}, fs.ErrNotExist
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	source, err := ParseSource(contents)
	if err != nil {
		return Source{}, fmt.Errorf("ParseSource(%s) > %w", path, err)
	}
	return source, nil
}
