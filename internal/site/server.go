package site

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/Bitlatte/quill/internal/logger"
	"github.com/Bitlatte/quill/internal/search"
)

const (
	defaultSearchLimit  = 20
	defaultSuggestLimit = 5
)

// Server serves the build output for local preview together with a JSON
// search API backed by the current index. Rebuilds swap the index in place.
type Server struct {
	outputDir string

	mu  sync.RWMutex
	idx *search.Index
}

// NewServer serves outputDir and answers queries against idx.
func NewServer(outputDir string, idx *search.Index) *Server {
	return &Server{outputDir: outputDir, idx: idx}
}

// SetIndex replaces the index used by the search API.
func (s *Server) SetIndex(idx *search.Index) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idx = idx
}

func (s *Server) index() *search.Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idx
}

// Handler returns the HTTP handler for the preview server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/search", s.handleSearch)
	mux.HandleFunc("/api/suggest", s.handleSuggest)

	files := http.FileServer(http.Dir(s.outputDir))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		// Prevent directory listing
		if strings.HasSuffix(r.URL.Path, "/") && r.URL.Path != "/" {
			_, err := os.Stat(filepath.Join(s.outputDir, filepath.FromSlash(r.URL.Path), "index.html"))
			if os.IsNotExist(err) {
				http.NotFound(w, r)
				return
			}
		}
		// Set headers to prevent caching during development
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		files.ServeHTTP(w, r)
	})
	return mux
}

type searchResponse struct {
	Query   string          `json:"query"`
	Results []search.Result `json:"results"`
}

type suggestResponse struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query().Get("q")
	limit := queryLimit(r, defaultSearchLimit)
	writeJSONResponse(w, searchResponse{Query: q, Results: s.index().Search(q, limit)})
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query().Get("q")
	limit := queryLimit(r, defaultSuggestLimit)
	writeJSONResponse(w, suggestResponse{Query: q, Suggestions: s.index().Suggestions(q, limit)})
}

func queryLimit(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func writeJSONResponse(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to write JSON response", slog.Any("error", err))
	}
}
