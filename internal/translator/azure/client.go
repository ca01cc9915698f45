// Package azure implements translator.Client on top of the Azure AI Translator v3 REST API.
package azure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/at-ishikawa/verbapilot/internal/translator"
	"github.com/avast/retry-go"
	"github.com/sony/gobreaker"
	"resty.dev/v3"
)

const apiVersion = "3.0"

var (
	ErrEmptyText = errors.New("text must not be empty")
	ErrNoTargets = errors.New("at least one target language is required")

	_ translator.Client = (*Client)(nil)
)

const defaultRetryDelay = 500 * time.Millisecond

type Config struct {
	Endpoint         string
	Key              string
	Region           string
	MaxRetryAttempts uint
	Timeout          time.Duration
}

type Client struct {
	httpClient       *resty.Client
	breaker          *gobreaker.CircuitBreaker
	maxRetryAttempts uint
	retryDelay       time.Duration
}

// NewClient returns translator.ErrNotConfigured unless endpoint, key and region are all set.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" || cfg.Key == "" || cfg.Region == "" {
		return nil, translator.ErrNotConfigured
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimRight(cfg.Endpoint, "/"))
	client.SetHeader("Ocp-Apim-Subscription-Key", cfg.Key)
	client.SetHeader("Ocp-Apim-Subscription-Region", cfg.Region)
	client.SetHeader("Content-Type", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &Client{
		httpClient:       client,
		breaker:          newBreaker(),
		maxRetryAttempts: cfg.MaxRetryAttempts,
		retryDelay:       defaultRetryDelay,
	}, nil
}

func newBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "azure-translator",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// Only transient failures count against the provider.
		IsSuccessful: func(err error) bool {
			return err == nil || !isRetryableError(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Default().Warn("translator circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String())
		},
	})
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

type RequestItem struct {
	Text string `json:"Text"`
}

type ResponseItem struct {
	DetectedLanguage *DetectedLanguage  `json:"detectedLanguage,omitempty"`
	Translations     []TranslationResult `json:"translations"`
}

type DetectedLanguage struct {
	Language string  `json:"language"`
	Score    float64 `json:"score"`
}

type TranslationResult struct {
	Text string `json:"text"`
	To   string `json:"to"`
}

// Translate implements the translator.Client interface
func (client *Client) Translate(ctx context.Context, text, to, from string) (translator.Translation, error) {
	item, err := client.translate(ctx, text, []string{to}, from)
	if err != nil {
		return translator.Translation{}, err
	}
	if len(item.Translations) == 0 {
		return translator.Translation{}, fmt.Errorf("no translation returned for %s", to)
	}

	result := translator.Translation{Text: item.Translations[0].Text}
	for _, t := range item.Translations {
		if strings.EqualFold(t.To, to) {
			result.Text = t.Text
			break
		}
	}
	if item.DetectedLanguage != nil {
		result.DetectedLanguage = item.DetectedLanguage.Language
	}
	return result, nil
}

// TranslateMany implements the translator.Client interface
func (client *Client) TranslateMany(ctx context.Context, text string, targets []string, from string) (map[string]string, error) {
	item, err := client.translate(ctx, text, targets, from)
	if err != nil {
		return nil, err
	}
	result := make(map[string]string, len(item.Translations))
	for _, t := range item.Translations {
		result[t.To] = t.Text
	}
	return result, nil
}

func (client *Client) translate(ctx context.Context, text string, targets []string, from string) (ResponseItem, error) {
	if strings.TrimSpace(text) == "" {
		return ResponseItem{}, ErrEmptyText
	}
	if len(targets) == 0 {
		return ResponseItem{}, ErrNoTargets
	}

	var result ResponseItem
	if err := retry.Do(
		func() error {
			item, err := client.execute(ctx, text, targets, from)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = item
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.Delay(client.retryDelay),
		retry.LastErrorOnly(true),
		// OnRetry also fires after the final attempt
		retry.OnRetry(func(n uint, err error) {
			if n < client.maxRetryAttempts {
				slog.Default().Info("retrying translator call",
					"attempt", n+1,
					"targets", targets,
					"error", err)
			}
		}),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return ResponseItem{}, fmt.Errorf("azure translate > %w", err)
	}
	return result, nil
}

// execute sends one request through the circuit breaker.
func (client *Client) execute(ctx context.Context, text string, targets []string, from string) (ResponseItem, error) {
	out, err := client.breaker.Execute(func() (interface{}, error) {
		return client.post(ctx, text, targets, from)
	})
	if err != nil {
		return ResponseItem{}, err
	}
	return out.(ResponseItem), nil
}

func (client *Client) post(ctx context.Context, text string, targets []string, from string) (ResponseItem, error) {
	params := url.Values{
		"api-version": {apiVersion},
		"to":          targets,
	}
	if !translator.IsAutoDetect(from) {
		params.Set("from", from)
	}

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		SetBody([]RequestItem{{Text: text}}).
		SetResult(&[]ResponseItem{}).
		Post("/translate")
	if err != nil {
		return ResponseItem{}, fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return ResponseItem{}, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	items, _ := response.Result().(*[]ResponseItem)
	if items == nil || len(*items) == 0 {
		return ResponseItem{}, fmt.Errorf("empty response body: %s", response.String())
	}
	slog.Default().Debug("azure translator response",
		"targets", targets,
		"response", (*items)[0])
	return (*items)[0], nil
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}
	// Retry on 5xx errors (server errors)
	if strings.Contains(errStr, "response error 5") {
		return true
	}
	// Retry on rate limiting (429)
	if strings.Contains(errStr, "response error 429") {
		return true
	}
	return false
}
