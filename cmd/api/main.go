package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bookworm-search/internal/bootstrap"
	"bookworm-search/internal/catalog"
	"bookworm-search/internal/config"
	"bookworm-search/internal/display"
	"bookworm-search/internal/logging"
	"bookworm-search/internal/ol"
	"bookworm-search/internal/query"
)

type server struct {
	search catalog.Searcher
	logger *log.Logger
}

func newServer(search catalog.Searcher, logger *log.Logger) *server {
	return &server{
		search: search,
		logger: logger,
	}
}

// searchResponse is the JSON body returned by /search.
type searchResponse struct {
	NumFound int                     `json:"num_found"`
	Results  []display.DisplayRecord `json:"results"`
}

func main() {
	cfg, err := config.Load(os.Getenv("BOOKWORM_CONFIG"))
	if err != nil {
		log.Fatal("failed to load config", "err", err)
	}
	logger := logging.New(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = logging.WithLogger(ctx, logger)

	client := bootstrap.NewClient(ctx, cfg)
	defer func() {
		if err := client.Close(); err != nil {
			logger.Warn("failed to close client resources", "err", err)
		}
	}()

	srv := newServer(client, logger)

	httpServer := &http.Server{
		Addr:              cfg.API.Addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "err", err)
		}
	}()

	logger.Info("api listening", "addr", cfg.API.Addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", "err", err)
	}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", s.handleSearch)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// handleSearch runs a catalog search and returns display records.
//
// Method: GET
// Path:   /search?title=...&author=...&isbn=...&fields=a,b&limit=5&page=1&sort=new
// Example:
//
//	curl "http://localhost:8080/search?title=the+hobbit&sort=new"
func (s *server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	crit, err := criteriaFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := s.search.Search(r.Context(), crit)
	if err != nil {
		var verr *query.ValidationError
		var rerr *ol.RemoteError
		switch {
		case errors.As(err, &verr):
			http.Error(w, verr.Error(), http.StatusBadRequest)
		case errors.As(err, &rerr):
			s.logger.Warn("catalog search failed", "err", err)
			http.Error(w, "catalog service unavailable", http.StatusBadGateway)
		default:
			s.logger.Error("search failed", "err", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, searchResponse{
		NumFound: resp.NumFound,
		Results:  display.FormatAll(resp),
	}, http.StatusOK)
}

// handleHealth reports liveness.
//
// Method: GET
// Path:   /healthz
func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func writeJSON(w http.ResponseWriter, payload any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func criteriaFromQuery(values url.Values) (query.SearchCriteria, error) {
	crit := query.NewCriteria()
	crit.Title = values.Get("title")
	crit.Author = values.Get("author")
	crit.ISBN = values.Get("isbn")
	crit.Sort = query.ParseSort(values.Get("sort"))

	if raw := strings.TrimSpace(values.Get("fields")); raw != "" {
		crit.Fields = strings.Split(raw, ",")
	}
	if raw := values.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return crit, errors.New("limit must be an integer")
		}
		crit.Limit = n
	}
	if raw := values.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return crit, errors.New("page must be an integer")
		}
		crit.Page = n
	}
	return crit, nil
}
