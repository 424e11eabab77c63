// Package server serves enumerations over HTTP.
//
// Items are streamed as newline-delimited JSON, one array of elements per
// line, and are generated while the response is written, so the server never
// holds more than one item per request in memory.
//
// Routes:
//
//	GET /healthz                 liveness and version
//	GET /v1/{kind}?items=a,b,c   stream the enumeration (k and limit optional)
//	GET /v1/{kind}/count         exact item count as a decimal string
//
// Every response carries an X-Request-ID header, taken from the request when
// the client sends one and generated otherwise.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/permute/pkg/buildinfo"
	perrors "github.com/matzehuels/permute/pkg/errors"
	"github.com/matzehuels/permute/pkg/observability"
	"github.com/matzehuels/permute/pkg/permute"
)

// RequestIDHeader is the header carrying the request ID.
const RequestIDHeader = "X-Request-ID"

// TotalCountHeader carries the full size of a streamed enumeration,
// independent of the limit applied to the response.
const TotalCountHeader = "X-Total-Count"

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	// Addr is the listen address, e.g. "127.0.0.1:8080".
	Addr string
	// MaxItems caps the items streamed per request. Zero means no cap.
	MaxItems int
	// MaxElements caps the elements accepted per request. Zero means no cap.
	MaxElements int
	// Logger receives server lifecycle messages. Nil uses the default logger.
	Logger *log.Logger
}

// Server is the enumeration HTTP server.
type Server struct {
	opts   Options
	logger *log.Logger
	router chi.Router
}

// New creates a Server with its routes registered.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{opts: opts, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(observe)
	r.Use(middleware.Recoverer)
	r.Use(serverHeader)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1/{kind}", func(r chi.Router) {
		r.Get("/", s.handleEnumerate)
		r.Get("/count", s.handleCount)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, perrors.New(perrors.ErrCodeNotFound, "no route for %s", r.URL.Path))
	})
	return r
}

// ListenAndServe serves on opts.Addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidArgument, err, "listen on %s", s.opts.Addr)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("Listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// =============================================================================
// Handlers
// =============================================================================

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

type countResponse struct {
	Kind     permute.Kind `json:"kind"`
	Elements int          `json:"n"`
	Size     int          `json:"k"`
	Count    string       `json:"count"`
}

func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	q, err := s.parseQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	count, err := permute.Count(q.kind, len(q.items), q.k)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{
		Kind:     q.kind,
		Elements: len(q.items),
		Size:     q.k,
		Count:    count.String(),
	})
}

func (s *Server) handleEnumerate(w http.ResponseWriter, r *http.Request) {
	q, err := s.parseQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	seq, err := permute.Enumerate(q.kind, q.items, q.k)
	if err != nil {
		writeError(w, r, err)
		return
	}
	total, err := permute.Count(q.kind, len(q.items), q.k)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ctx := r.Context()
	hooks := observability.Enumeration()
	hooks.OnEnumerateStart(ctx, string(q.kind), len(q.items), q.k)
	start := time.Now()

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set(TotalCountHeader, total.String())
	w.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	flusher, _ := w.(http.Flusher)

	var written int64
	for item := range permute.Take(seq, q.limit) {
		if err = ctx.Err(); err != nil {
			break
		}
		if err = enc.Encode(item); err != nil {
			break
		}
		written++
		if flusher != nil && written%256 == 0 {
			flusher.Flush()
		}
	}
	hooks.OnEnumerateComplete(ctx, string(q.kind), written, time.Since(start), err)
}

// =============================================================================
// Query parsing
// =============================================================================

type query struct {
	kind  permute.Kind
	items []string
	k     int
	limit int
}

// parseQuery reads the kind path parameter and the items, k and limit query
// parameters. Items are comma-separated and may also be repeated.
func (s *Server) parseQuery(r *http.Request) (query, error) {
	var q query

	kind, err := permute.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		return q, err
	}
	q.kind = kind

	values := r.URL.Query()
	q.items = []string{}
	for _, v := range values["items"] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part == "" {
				continue
			}
			if err := perrors.ValidateElement(part); err != nil {
				return q, err
			}
			q.items = append(q.items, part)
		}
	}
	if s.opts.MaxElements > 0 && len(q.items) > s.opts.MaxElements {
		return q, perrors.New(perrors.ErrCodeInvalidInput, "too many items: %d (max %d)", len(q.items), s.opts.MaxElements)
	}

	if q.k, err = intParam(values.Get("k"), "k", 0); err != nil {
		return q, err
	}
	if kind.UsesSize() && !values.Has("k") {
		return q, perrors.New(perrors.ErrCodeInvalidArgument, "%s needs the k parameter", kind)
	}
	if err := perrors.ValidateSize(q.k); err != nil {
		return q, err
	}

	if q.limit, err = intParam(values.Get("limit"), "limit", 0); err != nil {
		return q, err
	}
	if err := perrors.ValidateCount(q.limit); err != nil {
		return q, err
	}
	if s.opts.MaxItems > 0 && (q.limit == 0 || q.limit > s.opts.MaxItems) {
		q.limit = s.opts.MaxItems
	}
	return q, nil
}

func intParam(raw, name string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, perrors.Wrap(perrors.ErrCodeInvalidArgument, err, "parameter %s must be an integer", name)
	}
	return v, nil
}

// =============================================================================
// Responses
// =============================================================================

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      perrors.Code `json:"code"`
	Message   string       `json:"message"`
	RequestID string       `json:"request_id,omitempty"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code perrors.Code) int {
	switch code {
	case perrors.ErrCodeInvalidArgument, perrors.ErrCodeInvalidInput,
		perrors.ErrCodeInvalidFormat, perrors.ErrCodeInvalidKind:
		return http.StatusBadRequest
	case perrors.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := perrors.GetCode(err)
	if code == "" {
		code = perrors.ErrCodeInternal
	}
	writeJSON(w, statusFor(code), errorBody{Error: errorDetail{
		Code:      code,
		Message:   perrors.UserMessage(err),
		RequestID: RequestIDFromContext(r.Context()),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
