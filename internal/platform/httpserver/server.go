package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	card "cardhub/contexts/card-directory/card-service"
	user "cardhub/contexts/identity-access/user-service"
	"cardhub/internal/platform/auth"
	"cardhub/internal/shared/identity"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "cardhub/internal/platform/httpserver/docs"
)

const maxBodyBytes = 1 << 20

// TokenVerifier decodes a bearer token into a verified identity claim.
type TokenVerifier interface {
	Verify(token string) (identity.Claim, error)
}

// HealthCheck reports whether a backing store is reachable.
type HealthCheck func(ctx context.Context) error

type Options struct {
	Addr               string
	CORSAllowedOrigins []string
	Health             HealthCheck
}

type Server struct {
	mux        *http.ServeMux
	handler    http.Handler
	httpServer *http.Server
	logger     *slog.Logger
	addr       string
	users      user.Module
	cards      card.Module
	tokens     TokenVerifier
	health     HealthCheck
	origins    []string
}

func New(
	users user.Module,
	cards card.Module,
	tokens TokenVerifier,
	logger *slog.Logger,
	opts Options,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	addr := opts.Addr
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:     http.NewServeMux(),
		logger:  logger,
		addr:    addr,
		users:   users,
		cards:   cards,
		tokens:  tokens,
		health:  opts.Health,
		origins: opts.CORSAllowedOrigins,
	}
	s.registerRoutes()
	s.handler = s.withCORS(s.withAccessLog(s.mux))
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routed mux wrapped in CORS and access logging.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start blocks until the server stops. A graceful Shutdown is not an error.
func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server stopping",
		"event", "http_server_stopping",
		"module", "internal/platform/httpserver",
		"layer", "platform",
	)
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.mux.HandleFunc("POST /api/users", s.handleRegister)
	s.mux.HandleFunc("POST /api/users/login", s.handleLogin)
	s.mux.HandleFunc("GET /api/users", s.handleListUsers)
	s.mux.HandleFunc("GET /api/users/profile", s.handleProfile)
	s.mux.HandleFunc("GET /api/users/{id}", s.handleGetUser)
	s.mux.HandleFunc("PUT /api/users/{id}", s.handleUpdateUser)
	s.mux.HandleFunc("PATCH /api/users/{id}", s.handleToggleBusiness)
	s.mux.HandleFunc("DELETE /api/users/{id}", s.handleDeleteUser)

	s.mux.HandleFunc("GET /api/card", s.handleListCards)
	s.mux.HandleFunc("GET /api/card/my-cards", s.handleMyCards)
	s.mux.HandleFunc("GET /api/card/user/{userId}", s.handleUserCards)
	s.mux.HandleFunc("GET /api/card/{id}", s.handleGetCard)
	s.mux.HandleFunc("POST /api/card", s.handleCreateCard)
	s.mux.HandleFunc("PUT /api/card/{cardId}", s.handleUpdateCard)
	s.mux.HandleFunc("PATCH /api/card/{id}/like", s.handleToggleLike)
	s.mux.HandleFunc("DELETE /api/card/{cardId}", s.handleDeleteCard)
}

type healthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.health(ctx); err != nil {
			s.logger.Warn("health check failed",
				"event", "http_health_check_failed",
				"module", "internal/platform/httpserver",
				"layer", "platform",
				"error", err.Error(),
			)
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// requireIdentity verifies the caller's token into a claim. The Authorization
// bearer header wins; x-auth-token is accepted for older clients.
func (s *Server) requireIdentity(w http.ResponseWriter, r *http.Request) (identity.Claim, bool) {
	token, ok := bearerToken(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "access denied: no token provided")
		return identity.Claim{}, false
	}
	claim, err := s.tokens.Verify(token)
	if err != nil {
		s.logger.Debug("token rejected",
			"event", "http_token_rejected",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"path", r.URL.Path,
			"error", err.Error(),
		)
		writeError(w, http.StatusUnauthorized, "unauthenticated", "invalid or expired token")
		return identity.Claim{}, false
	}
	return claim, true
}

func bearerToken(r *http.Request) (string, bool) {
	if header := strings.TrimSpace(r.Header.Get("Authorization")); header != "" {
		return auth.BearerToken(header)
	}
	token := strings.TrimSpace(r.Header.Get("x-auth-token"))
	return token, token != ""
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("http request",
			"event", "http_request_completed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(started).Milliseconds(),
		)
	})
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			header := w.Header()
			if slices.Contains(s.origins, "*") {
				header.Set("Access-Control-Allow-Origin", "*")
			} else {
				header.Set("Access-Control-Allow-Origin", origin)
				header.Add("Vary", "Origin")
			}
			header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			header.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, x-auth-token")
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	for _, allowed := range s.origins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
