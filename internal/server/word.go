package server

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/errgroup"

	"github.com/at-ishikawa/dictlens/internal/config"
	"github.com/at-ishikawa/dictlens/internal/lookup"
)

const maxWordLength = 50

var wordPattern = regexp.MustCompile(`^[a-z\-']+$`)

// InvalidWordError is returned for a word the API refuses to look up.
type InvalidWordError struct {
	Message string
}

func (e *InvalidWordError) Error() string {
	return e.Message
}

// NormalizeWord trims and lower-cases word, then checks its length and characters.
func NormalizeWord(word string) (string, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if utf8.RuneCountInString(word) > maxWordLength {
		return "", &InvalidWordError{Message: fmt.Sprintf("Word too long (max %d characters)", maxWordLength)}
	}
	if !wordPattern.MatchString(word) {
		return "", &InvalidWordError{Message: "Invalid word format. Only letters, hyphens, and apostrophes allowed."}
	}
	return word, nil
}

// WordService aggregates the upstreams into a lookup.Result and caches it.
type WordService struct {
	upstream Upstream
	cache    *expirable.LRU[string, lookup.Result]
	logger   *slog.Logger
}

func NewWordService(upstream Upstream, cfg config.CacheConfig, logger *slog.Logger) *WordService {
	if logger == nil {
		logger = slog.Default()
	}
	return &WordService{
		upstream: upstream,
		cache:    expirable.NewLRU[string, lookup.Result](cfg.MaxEntries, nil, time.Duration(cfg.TTLMinutes)*time.Minute),
		logger:   logger,
	}
}

// Lookup returns the result for a normalized word. A failing upstream leaves its part empty.
// The error is non-nil only when ctx is done before the upstreams answer.
func (s *WordService) Lookup(ctx context.Context, word string) (lookup.Result, error) {
	if cached, ok := s.cache.Get(word); ok {
		s.logger.Debug("word cache hit", slog.String("word", word))
		return cached, nil
	}

	result := lookup.Result{
		Synonyms: []lookup.RelatedWord{},
		Antonyms: []lookup.RelatedWord{},
		Images:   []string{},
	}
	var eg errgroup.Group
	eg.Go(func() error {
		entry, err := s.upstream.Definition(ctx, word)
		if err != nil {
			s.logger.Error("failed to fetch a definition", slog.String("word", word), slog.Any("error", err))
			return nil
		}
		result.Definition = entry
		return nil
	})
	eg.Go(func() error {
		synonyms, err := s.upstream.Related(ctx, word, RelationSynonym)
		if err != nil {
			s.logger.Error("failed to fetch synonyms", slog.String("word", word), slog.Any("error", err))
			return nil
		}
		if synonyms != nil {
			result.Synonyms = synonyms
		}
		return nil
	})
	eg.Go(func() error {
		antonyms, err := s.upstream.Related(ctx, word, RelationAntonym)
		if err != nil {
			s.logger.Error("failed to fetch antonyms", slog.String("word", word), slog.Any("error", err))
			return nil
		}
		if antonyms != nil {
			result.Antonyms = antonyms
		}
		return nil
	})
	eg.Go(func() error {
		images, err := s.upstream.Images(ctx, word)
		if err != nil {
			s.logger.Error("failed to fetch images", slog.String("word", word), slog.Any("error", err))
			return nil
		}
		if images != nil {
			result.Images = images
		}
		return nil
	})
	_ = eg.Wait()

	if err := ctx.Err(); err != nil {
		return lookup.Result{}, fmt.Errorf("lookup %s > %w", word, err)
	}
	s.cache.Add(word, result)
	return result, nil
}

// CacheLen returns the number of cached words.
func (s *WordService) CacheLen() int {
	return s.cache.Len()
}
