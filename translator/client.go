package translator

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	googletranslatefree "github.com/bas24/googletranslatefree"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL   = "https://translate.googleapis.com/translate_a/single"
	DefaultWorkers   = 4
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Engine selects how a response is turned into translated text.
type Engine string

const (
	// EngineScan fetches the endpoint directly and scans the raw body for the
	// first quoted segment.
	EngineScan Engine = "scan"
	// EngineFree delegates to googletranslatefree, which decodes the JSON and
	// joins every sentence chunk.
	EngineFree Engine = "free"
)

func ParseEngine(s string) (Engine, error) {
	switch Engine(strings.ToLower(strings.TrimSpace(s))) {
	case EngineScan, "":
		return EngineScan, nil
	case EngineFree:
		return EngineFree, nil
	default:
		return "", fmt.Errorf("unsupported engine: %s", s)
	}
}

type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
	logger    *zap.Logger
	workers   int
	timeout   time.Duration
	engine    Engine

	freeTranslate func(text, from, to string) (string, error)
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "?")
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithWorkers sets the concurrency used by TranslateAll. Values <= 0 mean one
// worker per available CPU.
func WithWorkers(n int) Option {
	return func(c *Client) {
		c.workers = n
	}
}

// WithTimeout bounds each request. The timeout is applied to a copy of the
// HTTP client so a shared client is never mutated.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithEngine(e Engine) Option {
	return func(c *Client) {
		if e != "" {
			c.engine = e
		}
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:       DefaultBaseURL,
		userAgent:     DefaultUserAgent,
		client:        &http.Client{},
		logger:        zap.NewNop(),
		workers:       DefaultWorkers,
		engine:        EngineScan,
		freeTranslate: googletranslatefree.Translate,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.client
		hc.Timeout = c.timeout
		c.client = &hc
	}
	return c
}

func (c *Client) Engine() Engine {
	return c.engine
}

func (c *Client) Workers() int {
	return c.workers
}

// Translate translates a single string. from may be "auto" to let the
// endpoint detect the source language.
func (c *Client) Translate(ctx context.Context, text, from, to string) (string, error) {
	c.logger.Debug("translating",
		zap.String("engine", string(c.engine)),
		zap.String("from", from),
		zap.String("to", to),
		zap.Int("bytes", len(text)),
	)

	var (
		translated string
		err        error
	)
	if c.engine == EngineFree {
		translated, err = c.translateFree(ctx, text, from, to)
	} else {
		translated, err = c.translateScan(ctx, text, from, to)
	}
	if err != nil {
		c.logger.Warn("translation failed",
			zap.String("from", from),
			zap.String("to", to),
			zap.Error(err),
		)
		return "", err
	}
	return translated, nil
}

func (c *Client) translateScan(ctx context.Context, text, from, to string) (string, error) {
	body, err := c.fetch(ctx, c.buildURL(text, from, to))
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(body) == "" {
		return "", ErrEmptyResponse
	}
	if isRateLimited(body) {
		return "", ErrRateLimited
	}
	return ParseTranslation(body)
}

func (c *Client) translateFree(ctx context.Context, text, from, to string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	translated, err := c.callFree(text, from, to)
	if err != nil {
		return "", fmt.Errorf("translation failed: %w", err)
	}
	if strings.TrimSpace(translated) == "" {
		return "", ErrEmptyResponse
	}
	return translated, nil
}

// callFree turns a panic inside googletranslatefree, which asserts on the
// shape of the decoded body without checking, into an error.
func (c *Client) callFree(text, from, to string) (translated string, err error) {
	defer func() {
		if r := recover(); r != nil {
			translated, err = "", fmt.Errorf("unexpected response: %v", r)
		}
	}()
	return c.freeTranslate(text, from, to)
}

func (c *Client) buildURL(text, from, to string) string {
	return fmt.Sprintf("%s?client=gtx&sl=%s&tl=%s&dt=t&q=%s",
		c.baseURL, EncodeQuery(from), EncodeQuery(to), EncodeQuery(text))
}

func (c *Client) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &RequestError{URL: url, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "*/*")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &RequestError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &RequestError{URL: url, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode == http.StatusServiceUnavailable:
		return "", ErrRateLimited
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", &RequestError{URL: url, StatusCode: resp.StatusCode}
	}

	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: %d byte body", ErrInvalidUTF8, len(raw))
	}
	return string(raw), nil
}
