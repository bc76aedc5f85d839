package gateway

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v62/github"
)

var (
	// ErrNotFound is returned when GitHub answers 404.
	ErrNotFound = errors.New("not found")
	// ErrTransient covers every other failure: network errors, 5xx, rate limiting.
	ErrTransient = errors.New("transient error")
)

// classify wraps err with the sentinel matching its HTTP status.
func classify(msg string, err error) error {
	if StatusCode(err) == http.StatusNotFound {
		return fmt.Errorf("%s: %w: %w", msg, ErrNotFound, err)
	}
	return fmt.Errorf("%s: %w: %w", msg, ErrTransient, err)
}

// StatusCode returns the HTTP status carried by a go-github error, or 0.
func StatusCode(err error) int {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return ghErr.Response.StatusCode
	}
	return 0
}
