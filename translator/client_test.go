package translator

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	opts = append([]Option{WithBaseURL(srv.URL + "/translate_a/single"), WithLogger(zap.NewNop())}, opts...)
	return NewClient(opts...)
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestTranslateBuildsRequest(t *testing.T) {
	var got *http.Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		_, _ = w.Write([]byte(`[[["Xin chào thế giới","Hello world",null,null,10]],null,"en"]`))
	}, WithUserAgent("quick-translate-test"))

	translated, err := c.Translate(context.Background(), "Hello world", "auto", "vi")
	require.NoError(t, err)
	assert.Equal(t, "Xin chào thế giới", translated)

	require.NotNil(t, got)
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/translate_a/single", got.URL.Path)
	assert.Equal(t, "client=gtx&sl=auto&tl=vi&dt=t&q=Hello%20world", got.URL.RawQuery)
	assert.Equal(t, "quick-translate-test", got.Header.Get("User-Agent"))
}

func TestTranslateErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{"blank body", respond(http.StatusOK, " \n\t"), ErrEmptyResponse},
		{"html block page", respond(http.StatusOK, "<html><body>sorry</body></html>"), ErrRateLimited},
		{"503 in body", respond(http.StatusOK, "Error 503"), ErrRateLimited},
		{"empty array", respond(http.StatusOK, "[]"), ErrRateLimited},
		{"too many requests", respond(http.StatusTooManyRequests, "slow down"), ErrRateLimited},
		{"service unavailable", respond(http.StatusServiceUnavailable, ""), ErrRateLimited},
		{"invalid utf-8", respond(http.StatusOK, "\xff\xfe\xfd"), ErrInvalidUTF8},
		{"blank translation", respond(http.StatusOK, `[[["  ","Hello"]]]`), ErrEmptyResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)
			_, err := c.Translate(context.Background(), "Hello", "auto", "vi")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTranslateParseError(t *testing.T) {
	c := newTestClient(t, respond(http.StatusOK, "INVALID"))
	_, err := c.Translate(context.Background(), "Hello", "auto", "vi")

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "INVALID", perr.Excerpt)
}

func TestTranslateUnexpectedStatus(t *testing.T) {
	c := newTestClient(t, respond(http.StatusInternalServerError, `[[["ignored","x"]]]`))
	_, err := c.Translate(context.Background(), "Hello", "auto", "vi")

	var rerr *RequestError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, http.StatusInternalServerError, rerr.StatusCode)
}

func TestTranslateTransportFailure(t *testing.T) {
	srv := httptest.NewServer(respond(http.StatusOK, ""))
	baseURL := srv.URL
	srv.Close()

	c := NewClient(WithBaseURL(baseURL))
	_, err := c.Translate(context.Background(), "Hello", "auto", "vi")

	var rerr *RequestError
	require.ErrorAs(t, err, &rerr)
	assert.Zero(t, rerr.StatusCode)
	assert.True(t, strings.HasPrefix(rerr.URL, baseURL))
}

func TestTranslateCanceledContext(t *testing.T) {
	c := newTestClient(t, respond(http.StatusOK, `[[["Xin chào","Hello"]]]`))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Translate(ctx, "Hello", "auto", "vi")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTranslateTimeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, WithTimeout(50*time.Millisecond))
	defer close(release)

	_, err := c.Translate(context.Background(), "Hello", "auto", "vi")
	var rerr *RequestError
	assert.ErrorAs(t, err, &rerr)
}

func TestWithTimeoutCopiesHTTPClient(t *testing.T) {
	shared := &http.Client{}
	c := NewClient(WithHTTPClient(shared), WithTimeout(time.Second))

	assert.Zero(t, shared.Timeout)
	assert.Equal(t, time.Second, c.client.Timeout)
}

func TestFreeEngine(t *testing.T) {
	c := NewClient(WithEngine(EngineFree))
	c.freeTranslate = func(text, from, to string) (string, error) {
		switch text {
		case "boom":
			return "", errors.New("connection reset")
		case "blank":
			return " ", nil
		}
		return from + ">" + to + ":" + text, nil
	}

	got, err := c.Translate(context.Background(), "Hello", "en", "vi")
	require.NoError(t, err)
	assert.Equal(t, "en>vi:Hello", got)

	_, err = c.Translate(context.Background(), "boom", "en", "vi")
	assert.ErrorContains(t, err, "translation failed: connection reset")

	_, err = c.Translate(context.Background(), "blank", "en", "vi")
	assert.ErrorIs(t, err, ErrEmptyResponse)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Translate(ctx, "Hello", "en", "vi")
	assert.ErrorIs(t, err, context.Canceled)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestFreeEngineMalformedBody(t *testing.T) {
	orig := http.DefaultTransport
	http.DefaultTransport = roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     make(http.Header),
			Body:       io.NopCloser(strings.NewReader(`[null,null,"en"]`)),
			Request:    r,
		}, nil
	})
	t.Cleanup(func() { http.DefaultTransport = orig })

	c := NewClient(WithEngine(EngineFree))
	var err error
	require.NotPanics(t, func() {
		_, err = c.Translate(context.Background(), "", "auto", "vi")
	})
	assert.ErrorContains(t, err, "translation failed: unexpected response")
}

func TestParseEngine(t *testing.T) {
	e, err := ParseEngine("")
	require.NoError(t, err)
	assert.Equal(t, EngineScan, e)

	e, err = ParseEngine(" FREE ")
	require.NoError(t, err)
	assert.Equal(t, EngineFree, e)

	_, err = ParseEngine("deepl")
	assert.ErrorContains(t, err, "unsupported engine")
}
