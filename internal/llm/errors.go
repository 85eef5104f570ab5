package llm

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrMissingAPIKey is returned before any network call when no credential is set
var ErrMissingAPIKey = errors.New("missing API key in settings")

// ErrEmptyResponse is returned when the remote service answers without choices
var ErrEmptyResponse = errors.New("empty response from provider")

// StatusError is returned when the remote service answers with a non-success status
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s error: %d %s", e.Provider, e.StatusCode, e.Body)
}

const maxErrorBody = 64 << 10

// NewStatusError drains a bounded prefix of the body into a *StatusError
func NewStatusError(provider string, resp *http.Response) *StatusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		Provider:   provider,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}

// IsSuccess reports whether an HTTP status is 2xx
func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}
