// Package language lists the languages the translation provider supports.
package language

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/go-resty/resty/v2"
)

type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Lister lists supported languages.
type Lister interface {
	List(ctx context.Context) ([]Language, error)
}

// Response is the body of the provider's languages endpoint.
type Response struct {
	Translation map[string]Info `json:"translation"`
}

type Info struct {
	Name       string `json:"name"`
	NativeName string `json:"nativeName"`
	Dir        string `json:"dir"`
}

// Catalog fetches the language list once per process and keeps it until Invalidate.
type Catalog struct {
	url    string
	client *resty.Client
	// cachePath is empty when the on-disk cache is disabled
	cachePath string

	mu        sync.Mutex
	languages []Language
}

var _ Lister = (*Catalog)(nil)

// NewCatalog creates a catalog for the languages endpoint at url.
// An empty cacheDirectory disables the on-disk cache.
func NewCatalog(url string, cacheDirectory string) *Catalog {
	var cachePath string
	if cacheDirectory != "" {
		cachePath = filepath.Join(cacheDirectory, "languages.json")
	}
	return &Catalog{
		url:       url,
		client:    resty.New(),
		cachePath: cachePath,
	}
}

func (c *Catalog) List(ctx context.Context) ([]Language, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.languages != nil {
		return c.languages, nil
	}

	contents, err := c.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("c.load > %w", err)
	}

	var resp Response
	if err := json.Unmarshal(contents, &resp); err != nil {
		return nil, fmt.Errorf("json.Unmarshal > %w", err)
	}
	c.languages = FromResponse(resp)
	return c.languages, nil
}

// Invalidate drops the in-memory list so the next List fetches it again.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.languages = nil
}

// load reads the cached response when present, otherwise fetches and stores it.
func (c *Catalog) load(ctx context.Context) ([]byte, error) {
	if c.cachePath != "" {
		contents, err := os.ReadFile(c.cachePath)
		if err == nil {
			return contents, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Default().Warn("ignoring unreadable language cache", "path", c.cachePath, "error", err)
		}
	}

	contents, err := c.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("c.fetch > %w", err)
	}
	if c.cachePath == "" {
		return contents, nil
	}
	if err := writeCache(c.cachePath, contents); err != nil {
		slog.Default().Warn("failed to store language cache", "path", c.cachePath, "error", err)
	}
	return contents, nil
}

func writeCache(path string, contents []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, contents, 0644); err != nil {
		return fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	return nil
}

func (c *Catalog) fetch(ctx context.Context) ([]byte, error) {
	res, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("client.R.Get > %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}
	return res.Body(), nil
}

// FromResponse flattens the endpoint response into languages sorted by name.
func FromResponse(resp Response) []Language {
	languages := make([]Language, 0, len(resp.Translation))
	for code, info := range resp.Translation {
		languages = append(languages, Language{Code: code, Name: info.Name})
	}
	sort.Slice(languages, func(i, j int) bool {
		if languages[i].Name == languages[j].Name {
			return languages[i].Code < languages[j].Code
		}
		return languages[i].Name < languages[j].Name
	})
	return languages
}
