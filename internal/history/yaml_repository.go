package history

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// YAMLRepository keeps every result in a single YAML file.
type YAMLRepository struct {
	path string
	mu   sync.Mutex
}

var _ Repository = (*YAMLRepository)(nil)

func NewYAMLRepository(path string) *YAMLRepository {
	return &YAMLRepository{path: path}
}

// FindAll returns no results when the file does not exist yet.
func (r *YAMLRepository) FindAll(_ context.Context) ([]Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read()
}

func (r *YAMLRepository) Create(_ context.Context, result *Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	results, err := r.read()
	if err != nil {
		return err
	}
	results = append(results, *result)

	data, err := yaml.Marshal(results)
	if err != nil {
		return fmt.Errorf("yaml.Marshal > %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(r.path), err)
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("os.WriteFile(%s) > %w", tmp, err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("os.Rename(%s) > %w", r.path, err)
	}
	return nil
}

func (r *YAMLRepository) read() ([]Result, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", r.path, err)
	}

	var results []Result
	if err := yaml.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal(%s) > %w", r.path, err)
	}
	return results, nil
}
