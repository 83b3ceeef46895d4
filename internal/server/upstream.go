package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/at-ishikawa/dictlens/internal/config"
	"github.com/at-ishikawa/dictlens/internal/lookup"
)

const (
	RelationSynonym = "rel_syn"
	RelationAntonym = "rel_ant"

	maxImages = 10
)

// StatusError is a non-2xx response from an upstream API.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("response error %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// Retryable reports whether the upstream may succeed on a later attempt.
func (e *StatusError) Retryable() bool {
	return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests
}

//go:generate mockgen -source=upstream.go -destination=../mocks/server/mock_upstream.go -package=mock_server
type Upstream interface {
	// Definition returns the first dictionary entry, or nil when the word is unknown.
	Definition(ctx context.Context, word string) (*lookup.Entry, error)
	Related(ctx context.Context, word string, relation string) ([]lookup.RelatedWord, error)
	Images(ctx context.Context, word string) ([]string, error)
}

// HTTPUpstream queries dictionaryapi.dev, Datamuse and Pixabay.
type HTTPUpstream struct {
	httpClient    *resty.Client
	dictionaryURL string
	datamuseURL   string
	pixabayURL    string
	pixabayKey    string
	retryAttempts uint
	retryDelay    time.Duration
	logger        *slog.Logger
}

func NewHTTPUpstream(cfg config.UpstreamsConfig, logger *slog.Logger) *HTTPUpstream {
	if logger == nil {
		logger = slog.Default()
	}
	client := resty.New()
	client.SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)
	client.SetHeader("Accept", "application/json")

	return &HTTPUpstream{
		httpClient:    client,
		dictionaryURL: strings.TrimSuffix(cfg.DictionaryURL, "/") + "/{word}",
		datamuseURL:   cfg.DatamuseURL,
		pixabayURL:    cfg.PixabayURL,
		pixabayKey:    cfg.PixabayKey,
		retryAttempts: cfg.RetryAttempts,
		retryDelay:    200 * time.Millisecond,
		logger:        logger,
	}
}

func (u *HTTPUpstream) Close() error {
	return u.httpClient.Close()
}

func (u *HTTPUpstream) Definition(ctx context.Context, word string) (*lookup.Entry, error) {
	var entries []lookup.Entry
	err := u.get(ctx, func(req *resty.Request) *resty.Request {
		return req.SetPathParam("word", word).SetResult(&entries)
	}, u.dictionaryURL)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

func (u *HTTPUpstream) Related(ctx context.Context, word string, relation string) ([]lookup.RelatedWord, error) {
	var words []lookup.RelatedWord
	if err := u.get(ctx, func(req *resty.Request) *resty.Request {
		return req.SetQueryParam(relation, word).SetResult(&words)
	}, u.datamuseURL); err != nil {
		return nil, err
	}
	return words, nil
}

type pixabayResponse struct {
	Hits []struct {
		WebformatURL string `json:"webformatURL"`
	} `json:"hits"`
}

func (u *HTTPUpstream) Images(ctx context.Context, word string) ([]string, error) {
	if u.pixabayKey == "" {
		u.logger.Debug("PIXABAY_API_KEY is not set, skipping images", slog.String("word", word))
		return nil, nil
	}

	var response pixabayResponse
	if err := u.get(ctx, func(req *resty.Request) *resty.Request {
		return req.SetQueryParams(map[string]string{
			"key":        u.pixabayKey,
			"q":          word,
			"per_page":   strconv.Itoa(maxImages),
			"image_type": "photo",
		}).SetResult(&response)
	}, u.pixabayURL); err != nil {
		return nil, err
	}

	images := make([]string, 0, maxImages)
	for _, hit := range response.Hits {
		if len(images) == maxImages {
			break
		}
		images = append(images, hit.WebformatURL)
	}
	return images, nil
}

// get retries network errors, 5xx and 429 with exponential backoff.
func (u *HTTPUpstream) get(ctx context.Context, build func(*resty.Request) *resty.Request, url string) error {
	return retry.Do(
		func() error {
			response, err := build(u.httpClient.R().SetContext(ctx)).Get(url)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return retry.Unrecoverable(fmt.Errorf("httpClient.Get(%s) > %w", url, ctxErr))
				}
				return fmt.Errorf("httpClient.Get(%s) > %w", url, err)
			}
			if response.IsError() {
				statusErr := &StatusError{URL: url, StatusCode: response.StatusCode(), Body: response.String()}
				if !statusErr.Retryable() {
					return retry.Unrecoverable(statusErr)
				}
				return statusErr
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(u.retryAttempts+1),
		retry.Delay(u.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			u.logger.Debug("retrying an upstream request",
				slog.String("url", url),
				slog.Uint64("attempt", uint64(n+1)),
				slog.Any("error", err),
			)
		}),
	)
}
