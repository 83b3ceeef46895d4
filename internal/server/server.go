// Package server serves the word lookup API and the web assets.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"path"

	"github.com/at-ishikawa/dictlens/internal/assets"
	"github.com/at-ishikawa/dictlens/internal/config"
	"github.com/at-ishikawa/dictlens/internal/lookup"
)

const apiPrefix = "/api/"

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// WordLookuper looks up a normalized word.
type WordLookuper interface {
	Lookup(ctx context.Context, word string) (lookup.Result, error)
}

type Server struct {
	cfg    config.ServerConfig
	words  WordLookuper
	web    fs.FS
	logger *slog.Logger
}

func New(cfg config.ServerConfig, words WordLookuper, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:    cfg,
		words:  words,
		web:    assets.WebFS(),
		logger: logger,
	}
}

// Handler returns the routes wrapped with request IDs, panic recovery, CORS and rate limiting.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/word/{word}", s.handleWord)
	mux.HandleFunc("GET /{$}", s.handleStatic)
	mux.HandleFunc("GET /static/", s.handleStatic)
	mux.HandleFunc("/", s.handleNotFound)

	return s.withRequestID(s.withRecovery(s.withCORS(s.withRateLimit(mux))))
}

func (s *Server) handleWord(w http.ResponseWriter, r *http.Request) {
	word, err := NormalizeWord(r.PathValue("word"))
	if err != nil {
		var invalid *InvalidWordError
		if errors.As(err, &invalid) {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: invalid.Message})
			return
		}
		s.internalError(w, r, err)
		return
	}

	result, err := s.words.Lookup(r.Context(), word)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	name := path.Clean(r.URL.Path)
	if name == "/" {
		name = "/index.html"
	}
	name = name[1:]
	info, err := fs.Stat(s.web, name)
	if err != nil || info.IsDir() {
		s.handleNotFound(w, r)
		return
	}
	http.ServeFileFS(w, r, s.web, name)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorBody{Error: "Endpoint not found"})
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("internal server error",
		slog.String("request_id", RequestID(r.Context())),
		slog.Any("error", err),
	)
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal server error"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
