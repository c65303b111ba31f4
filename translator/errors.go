package translator

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyResponse = errors.New("empty response from server")
	ErrRateLimited   = errors.New("rate limited by Google Translate")
	ErrInvalidUTF8   = errors.New("response is not valid UTF-8")
)

// parseExcerptLen bounds how much of an unexpected body is kept in a ParseError.
const parseExcerptLen = 120

// RequestError reports that the HTTP fetch itself failed, either at the
// transport level or with an unexpected status code.
type RequestError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("request failed: status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// ParseError reports a body that does not contain a translation.
type ParseError struct {
	Excerpt string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unexpected response format: %s", e.Excerpt)
}
