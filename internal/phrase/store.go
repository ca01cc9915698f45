package phrase

import (
	"fmt"
	"log/slog"
	"sync/atomic"
)

type MatchMode string

const (
	MatchSubstring MatchMode = "substring"
	MatchWord      MatchMode = "word"
)

var AllMatchModes = []MatchMode{MatchSubstring, MatchWord}

func ParseMatchMode(val string) (MatchMode, error) {
	for _, mode := range AllMatchModes {
		if val == string(mode) {
			return mode, nil
		}
	}
	return "", fmt.Errorf("invalid match mode: %s", val)
}

// Store hands out the current dictionary snapshot and rebuilds it on Reload.
// It is safe for concurrent use; a reload never mutates a snapshot in place.
type Store struct {
	idiomsPath string
	slangPath  string
	mode       MatchMode
	current    atomic.Pointer[Database]
}

func NewStore(idiomsPath, slangPath string, mode MatchMode) *Store {
	if mode == "" {
		mode = MatchSubstring
	}
	store := &Store{
		idiomsPath: idiomsPath,
		slangPath:  slangPath,
		mode:       mode,
	}
	store.Reload()
	return store
}

func (s *Store) Database() *Database {
	return s.current.Load()
}

// Reload reads both sources again and swaps in the new snapshot.
func (s *Store) Reload() *Database {
	db := Load(s.idiomsPath, s.slangPath)
	s.current.Store(db)
	slog.Default().Info("phrase dictionary loaded",
		"idioms", db.Idioms().Len(),
		"slang", db.Slang().Len())
	return db
}

func (s *Store) Match(text string) []Entry {
	db := s.Database()
	if s.mode == MatchWord {
		return db.MatchWords(text)
	}
	return db.Match(text)
}

// Paths returns the idiom and slang source files the store reads.
func (s *Store) Paths() []string {
	return []string{s.idiomsPath, s.slangPath}
}
