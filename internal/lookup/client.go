// Package lookup talks to the word lookup API.
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

const wordPath = "/api/word/{word}"

var ErrMalformedBody = errors.New("malformed lookup response body")

// ResponseError is returned for any non-2xx response of the lookup API.
type ResponseError struct {
	StatusCode int
	Message    string
	Offline    bool
}

func (e *ResponseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("lookup failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("lookup failed with status %d: %s", e.StatusCode, e.Message)
}

//go:generate mockgen -source=client.go -destination=../mocks/lookup/mock_client.go -package=mock_lookup
type Client interface {
	Lookup(ctx context.Context, word string) (Result, error)
}

type HTTPClient struct {
	client *resty.Client
}

// NewHTTPClient creates a client for baseURL. A nil transport uses http.DefaultTransport.
func NewHTTPClient(baseURL string, transport http.RoundTripper) *HTTPClient {
	client := resty.New().SetBaseURL(baseURL)
	if transport != nil {
		client.SetTransport(transport)
	}
	return &HTTPClient{client: client}
}

func (c *HTTPClient) Lookup(ctx context.Context, word string) (Result, error) {
	res, err := c.client.R().
		SetContext(ctx).
		SetPathParam("word", word).
		Get(wordPath)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, fmt.Errorf("client.R.Get(%s) > %w", word, ctxErr)
		}
		return Result{}, fmt.Errorf("client.R.Get(%s) > %w", word, err)
	}

	if res.IsError() || res.StatusCode() < http.StatusOK || res.StatusCode() >= http.StatusMultipleChoices {
		return Result{}, newResponseError(res.StatusCode(), res.Body())
	}

	var result Result
	if err := json.Unmarshal(res.Body(), &result); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return result, nil
}

func newResponseError(statusCode int, body []byte) *ResponseError {
	var payload struct {
		Error   string `json:"error"`
		Offline bool   `json:"offline"`
	}
	// the body of an error response is informational only
	_ = json.Unmarshal(body, &payload)
	return &ResponseError{
		StatusCode: statusCode,
		Message:    payload.Error,
		Offline:    payload.Offline,
	}
}
