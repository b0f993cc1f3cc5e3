package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gorilla/mux"
)

// DeckInfo describes one deck file in the served directory
type DeckInfo struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// Server hosts a directory of JSON decks for remote viewers.
type Server struct {
	Dir    string
	logger *slog.Logger
}

// New creates a server for the deck files under dir
func New(dir string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{Dir: dir, logger: logger}
}

// Router returns the HTTP routes:
//
//	GET /decks          list of deck files
//	GET /decks/{name}   one deck file (".json" optional)
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests, noStore)
	r.HandleFunc("/decks", s.listDecks).Methods(http.MethodGet)
	r.HandleFunc("/decks/{name}", s.getDeck).Methods(http.MethodGet)
	return r
}

func (s *Server) listDecks(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		s.logger.Error("reading deck directory", slog.String("dir", s.Dir), slog.String("error", err.Error()))
		http.Error(w, "deck directory unavailable", http.StatusInternalServerError)
		return
	}

	decks := []DeckInfo{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		decks = append(decks, DeckInfo{
			Name: strings.TrimSuffix(entry.Name(), ".json"),
			Path: "/decks/" + entry.Name(),
			Size: info.Size(),
		})
	}
	sort.Slice(decks, func(i, j int) bool { return decks[i].Name < decks[j].Name })

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(decks); err != nil {
		s.logger.Error("encoding deck list", slog.String("error", err.Error()))
	}
}

func (s *Server) getDeck(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		http.NotFound(w, r)
		return
	}
	if filepath.Ext(name) != ".json" {
		name += ".json"
	}

	data, err := os.ReadFile(filepath.Join(s.Dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		}
		s.logger.Error("reading deck", slog.String("name", name), slog.String("error", err.Error()))
		http.Error(w, "deck unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(data); err != nil {
		s.logger.Error("writing deck", slog.String("name", name), slog.String("error", err.Error()))
	}
}

func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("duration", time.Since(start)))
	})
}
