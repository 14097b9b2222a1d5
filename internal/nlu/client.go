package nlu

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/avast/retry-go"
	"golang.org/x/time/rate"
)

const userAgent = "story-soundtracker/1.0"

const (
	defaultTimeout  = 10 * time.Second
	retryAttempts   = 3
	retryBaseDelay  = 500 * time.Millisecond
	requestsPerSec  = 10
	requestBurstCap = 5
)

// ErrServiceUnavailable is returned when the language service keeps failing
// after retries.
var ErrServiceUnavailable = errors.New("language service unavailable")

// StatusError reports a non-success HTTP status from the language service.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("language service returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("language service returned %d", e.Status)
}

// transient reports whether the error is worth retrying.
func transient(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status >= 500
	}
	return false
}

// Client is a language service client with synonym caching and rate limiting.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter

	// In-memory synonym cache: the lexicon is fixed per service instance,
	// so entries never expire.
	synCache   map[string][]string
	synCacheMu sync.RWMutex
}

// NewClient creates a language service client from the provided configuration.
func NewClient(cfg *Config) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter:  rate.NewLimiter(rate.Limit(requestsPerSec), requestBurstCap),
		synCache: make(map[string][]string),
	}
}

// Analyze runs the full linguistic analysis for a text: sentence segmentation,
// tokens with part-of-speech tags and sentiment, named entities, and noun chunks.
func (c *Client) Analyze(ctx context.Context, text string) (*Analysis, error) {
	payload, err := json.Marshal(analyzeRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("encoding analyze request: %w", err)
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/analyze", payload)
	if err != nil {
		return nil, fmt.Errorf("analyzing text: %w", err)
	}

	var analysis Analysis
	if err := json.Unmarshal(body, &analysis); err != nil {
		return nil, fmt.Errorf("parsing analyze response: %w", err)
	}
	return &analysis, nil
}

// Synonyms returns the synonym set for a word. The lookup is a pure function
// of the service's lexicon, so results are cached for the client's lifetime.
// Returns an empty slice (not nil) when the word has no synonyms.
func (c *Client) Synonyms(ctx context.Context, word string) ([]string, error) {
	c.synCacheMu.RLock()
	if cached, ok := c.synCache[word]; ok {
		c.synCacheMu.RUnlock()
		return cached, nil
	}
	c.synCacheMu.RUnlock()

	path := "/synonyms?" + url.Values{"word": {word}}.Encode()
	body, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching synonyms: %w", err)
	}

	var resp synonymsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing synonyms response: %w", err)
	}

	synonyms := resp.Synonyms
	if synonyms == nil {
		synonyms = []string{}
	}

	c.synCacheMu.Lock()
	c.synCache[word] = synonyms
	c.synCacheMu.Unlock()

	return synonyms, nil
}

// doRequest performs an HTTP request, retrying transient failures.
func (c *Client) doRequest(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var body []byte
	err := retry.Do(
		func() error {
			var err error
			body, err = c.doSingleRequest(ctx, method, path, payload)
			return err
		},
		retry.Attempts(retryAttempts),
		retry.Delay(retryBaseDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			if ctx.Err() != nil {
				return false
			}
			return transient(err)
		}),
	)
	if err != nil {
		if transient(err) {
			return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
		}
		return nil, err
	}
	return body, nil
}

// doSingleRequest performs a single HTTP request against the service.
func (c *Client) doSingleRequest(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if jsonErr := json.Unmarshal(body, &apiErr); jsonErr == nil && apiErr.Error != "" {
			return nil, &StatusError{Status: resp.StatusCode, Message: apiErr.Error}
		}
		return nil, &StatusError{Status: resp.StatusCode}
	}

	return body, nil
}
