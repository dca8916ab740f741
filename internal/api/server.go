// Package api provides the HTTP API for Skyline.
//
// The API exposes the layout pipeline over HTTP so clients can solve
// city layouts without a local installation:
//
//	POST /api/layout        solve a layout for a posted tree
//	GET  /api/layouts/{id}  fetch a previously solved layout
//	GET  /healthz           liveness check
//
// Solved layouts are persisted in a [store.Store] and cached through the
// shared pipeline Runner, so identical trees solved with identical options
// are served from cache.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/skylinehq/skyline/pkg/buildinfo"
	skyerrors "github.com/skylinehq/skyline/pkg/errors"
	"github.com/skylinehq/skyline/pkg/layout"
	"github.com/skylinehq/skyline/pkg/pipeline"
	"github.com/skylinehq/skyline/pkg/store"
	"github.com/skylinehq/skyline/pkg/tree"
)

// MaxTreeBytes bounds the size of a posted tree. A 400-node tree is a few
// kilobytes; the limit leaves room for content payloads without letting a
// client exhaust server memory.
const MaxTreeBytes = 8 << 20

// Server handles HTTP requests for the layout API.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// NewServer creates a server using the given runner and store.
// If st is nil, an in-process MemoryStore is used.
func NewServer(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if st == nil {
		st = store.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: st, logger: logger}
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/api/layout", s.handleCreateLayout)
	r.Get("/api/layouts/{id}", s.handleGetLayout)

	return r
}

// layoutRequest is the body of POST /api/layout.
type layoutRequest struct {
	Tree       *tree.Node `json:"tree"`
	Iterations int        `json:"iterations,omitempty"`
	Seed       uint64     `json:"seed,omitempty"`
	Refresh    bool       `json:"refresh,omitempty"`
}

// layoutResponse is the body of a successful solve.
type layoutResponse struct {
	ID       string        `json:"id"`
	Layout   layout.Layout `json:"layout"`
	TreeHash string        `json:"tree_hash"`
	Cached   bool          `json:"cached"`
}

// healthResponse is the body of GET /healthz.
type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Version: buildinfo.Version,
	})
}

func (s *Server) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxTreeBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, skyerrors.Wrap(skyerrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	if req.Tree == nil {
		writeError(w, skyerrors.New(skyerrors.ErrCodeInvalidInput, "tree is required"))
		return
	}
	if err := req.Tree.Validate(); err != nil {
		writeError(w, skyerrors.Wrap(skyerrors.ErrCodeInvalidTree, err, "invalid tree"))
		return
	}

	opts := pipeline.Options{
		Iterations: req.Iterations,
		Seed:       req.Seed,
		Refresh:    req.Refresh,
		Logger:     s.logger,
	}
	result, err := s.runner.ComputeLayoutWithCacheInfo(r.Context(), req.Tree, opts)
	if err != nil {
		writeError(w, skyerrors.Wrap(skyerrors.GetCode(err), err, "solve layout"))
		return
	}

	id, err := s.store.Save(r.Context(), result.Layout, result.TreeHash)
	if err != nil {
		writeError(w, skyerrors.Wrap(skyerrors.ErrCodeStore, err, "save layout"))
		return
	}

	writeJSON(w, http.StatusCreated, layoutResponse{
		ID:       id,
		Layout:   result.Layout,
		TreeHash: result.TreeHash,
		Cached:   result.CacheInfo.LayoutHit,
	})
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := skyerrors.ValidateLayoutID(id); err != nil {
		writeError(w, err)
		return
	}

	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, skyerrors.New(skyerrors.ErrCodeLayoutNotFound, "layout %s not found", id))
			return
		}
		writeError(w, skyerrors.Wrap(skyerrors.ErrCodeStore, err, "get layout %s", id))
		return
	}

	writeJSON(w, http.StatusOK, layoutResponse{
		ID:       rec.ID,
		Layout:   rec.Layout,
		TreeHash: rec.TreeHash,
	})
}

// ----- Error envelope -----

// errorResponse is the JSON envelope for all error responses.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusFor maps error codes to HTTP status codes.
func statusFor(code skyerrors.Code) int {
	switch code {
	case skyerrors.ErrCodeInvalidInput,
		skyerrors.ErrCodeInvalidTree,
		skyerrors.ErrCodeInvalidIterations,
		skyerrors.ErrCodeInvalidLayoutID:
		return http.StatusBadRequest
	case skyerrors.ErrCodeNotFound, skyerrors.ErrCodeLayoutNotFound:
		return http.StatusNotFound
	case skyerrors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := skyerrors.GetCode(err)
	writeJSON(w, statusFor(code), errorResponse{
		Error: errorBody{
			Code:    string(code),
			Message: skyerrors.UserMessage(err),
		},
	})
}

// ----- Serve -----

// ListenAndServe runs the API server until ctx is canceled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
