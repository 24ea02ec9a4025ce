// Package server exposes routing over HTTP: POST /api/route routes a
// query and returns the route-result wire shape, GET /api/skills lists
// the catalog, GET /healthz reports liveness. The handlers read the
// catalog through a snapshot store, so catalog reloads take effect
// without a restart.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/routelab/skillrouter/pkg/catalog"
	"github.com/routelab/skillrouter/pkg/contextgen"
	"github.com/routelab/skillrouter/pkg/logger"
	"github.com/routelab/skillrouter/pkg/router"
)

// Config holds the HTTP server settings.
type Config struct {
	Host string
	Port string
	// LLMTimeout bounds each Tier 3 invocation.
	LLMTimeout time.Duration
}

// Server serves the routing API.
type Server struct {
	store     *catalog.Store
	router    *router.Router
	assembler *contextgen.Assembler
	config    Config
	http      *http.Server
}

// New creates a server over a snapshot store and a wired router. The
// content loader's cache is invalidated whenever the snapshot swaps.
func New(store *catalog.Store, r *router.Router, loader *contextgen.ContentLoader, config Config) *Server {
	store.Subscribe(func(*catalog.Catalog) { loader.Invalidate() })

	s := &Server{
		store:     store,
		router:    r,
		assembler: contextgen.NewAssembler(loader),
		config:    config,
	}

	m := mux.NewRouter()
	m.Use(requestLogging)
	m.HandleFunc("/api/route", s.handleRoute).Methods(http.MethodPost)
	m.HandleFunc("/api/context", s.handleContext).Methods(http.MethodPost)
	m.HandleFunc("/api/skills", s.handleSkills).Methods(http.MethodGet)
	m.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	s.http = &http.Server{
		Addr:         config.Host + ":" + config.Port,
		Handler:      m,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return s
}

// Handler exposes the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// ListenAndServe blocks serving requests until Shutdown or failure.
func (s *Server) ListenAndServe() error {
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

type routeRequest struct {
	Query string `json:"query"`
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	var req routeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query cannot be empty")
		return
	}

	ctx := r.Context()
	if s.config.LLMTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.LLMTimeout)
		defer cancel()
	}

	result := s.router.Route(ctx, req.Query)
	writeJSON(w, http.StatusOK, result)
}

// handleContext routes a query and returns the assembled skill context
// block, the same payload the hook writes to stdout. An unroutable query
// yields an empty context.
func (s *Server) handleContext(w http.ResponseWriter, r *http.Request) {
	var req routeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query cannot be empty")
		return
	}

	ctx := r.Context()
	if s.config.LLMTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.LLMTimeout)
		defer cancel()
	}

	result := s.router.Route(ctx, req.Query)
	block := s.assembler.Assemble(ctx, result, s.store.Current())
	writeJSON(w, http.StatusOK, map[string]string{"context": block})
}

type skillInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Path        string `json:"path"`
}

func (s *Server) handleSkills(w http.ResponseWriter, r *http.Request) {
	cat := s.store.Current()
	skills := make([]skillInfo, 0, len(cat.SkillOrder))
	for _, skill := range cat.OrderedSkills() {
		skills = append(skills, skillInfo{
			Name:        skill.Name,
			Description: skill.Description,
			Path:        skill.Path,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"skills": skills})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	hostname, _ := os.Hostname()
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"host":   hostname,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.L.WithError(err).Warn("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
