package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	card "cardhub/contexts/card-directory/card-service"
	user "cardhub/contexts/identity-access/user-service"
	"cardhub/contexts/identity-access/user-service/adapters/credentials"
	usermemory "cardhub/contexts/identity-access/user-service/adapters/memory"
	"cardhub/contexts/identity-access/user-service/application/commands"
	"cardhub/internal/app/bridge"
	"cardhub/internal/platform/auth"
	"cardhub/internal/shared/identity"

	"golang.org/x/crypto/bcrypt"
)

const (
	testAdminEmail    = "admin@cardhub.test"
	testAdminPassword = "Admin!2345"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestServer() *Server {
	return newTestServerWithOptions(Options{Addr: ":0"})
}

func newTestServerWithOptions(opts Options) *Server {
	signer, err := auth.NewSigner("httpserver-test-secret", "cardhub", time.Hour)
	if err != nil {
		panic(err)
	}
	userStore := usermemory.NewStore()
	cards := card.NewInMemoryModule(quietLogger, bridge.UserDirectory{Users: userStore})
	users := user.NewModule(user.Dependencies{
		Repository:  userStore,
		Hasher:      credentials.NewBcryptHasher(bcrypt.MinCost),
		Tokens:      credentials.TokenIssuer{Signer: signer},
		Cards:       bridge.CardPurger{Purge: cards.PurgeOwner},
		Clock:       userStore,
		IDGenerator: userStore,
		Logger:      quietLogger,
	})
	users.Store = userStore
	return New(users, cards, signer, quietLogger, opts)
}

func serve(server *Server, method string, path string, token string, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), out); err != nil {
		t.Fatalf("decode body %q: %v", rr.Body.String(), err)
	}
}

type authBody struct {
	Token string `json:"token"`
	User  struct {
		ID         string `json:"id"`
		IsAdmin    bool   `json:"isAdmin"`
		IsBusiness bool   `json:"isBusiness"`
	} `json:"user"`
}

func registerUser(t *testing.T, server *Server, email string, business bool) (string, string) {
	t.Helper()
	body, _ := json.Marshal(map[string]any{
		"email":      email,
		"password":   "Passw0rd!",
		"name":       "Test User",
		"phone":      "050-1234567",
		"isBusiness": business,
	})
	rr := serve(server, http.MethodPost, "/api/users", "", string(body))
	if rr.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d body=%s", email, rr.Code, rr.Body.String())
	}
	var resp authBody
	decodeBody(t, rr, &resp)
	return resp.Token, resp.User.ID
}

func adminToken(t *testing.T, server *Server) string {
	t.Helper()
	if _, _, err := server.users.SeedAdmin.Execute(context.Background(), commands.SeedAdminCommand{
		Email:    testAdminEmail,
		Password: testAdminPassword,
	}); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	rr := serve(server, http.MethodPost, "/api/users/login", "",
		`{"email":"`+testAdminEmail+`","password":"`+testAdminPassword+`"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("admin login: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var resp authBody
	decodeBody(t, rr, &resp)
	return resp.Token
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	decodeBody(t, rr, &resp)
	return resp.Code
}

func TestHealthzReportsOK(t *testing.T) {
	server := newTestServer()
	rr := serve(server, http.MethodGet, "/healthz", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestHealthzReportsUnavailableStore(t *testing.T) {
	server := newTestServerWithOptions(Options{
		Health: func(context.Context) error { return errors.New("connection refused") },
	})
	rr := serve(server, http.MethodGet, "/healthz", "", "")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	server := newTestServer()
	rr := serve(server, http.MethodGet, "/api/users/profile", "", "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
	if code := errorCode(t, rr); code != "unauthenticated" {
		t.Fatalf("expected unauthenticated code, got %q", code)
	}
}

func TestProtectedRouteRejectsForgedToken(t *testing.T) {
	server := newTestServer()
	forger, err := auth.NewSigner("some-other-secret", "cardhub", time.Hour)
	if err != nil {
		t.Fatalf("signer: %v", err)
	}
	_, userID := registerUser(t, server, "victim@example.com", false)
	forged, err := forger.Issue(identity.Claim{UserID: userID, IsAdmin: true})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	rr := serve(server, http.MethodGet, "/api/users", forged, "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestLegacyTokenHeaderAccepted(t *testing.T) {
	server := newTestServer()
	token, _ := registerUser(t, server, "legacy@example.com", false)

	req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
	req.Header.Set("x-auth-token", token)
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCORSPreflightForAllowedOrigin(t *testing.T) {
	server := newTestServerWithOptions(Options{CORSAllowedOrigins: []string{"https://app.example.com"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/card", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Fatalf("unexpected allow-origin %q", got)
	}
}

func TestCORSIgnoresUnknownOrigin(t *testing.T) {
	server := newTestServerWithOptions(Options{CORSAllowedOrigins: []string{"https://app.example.com"}})

	req := httptest.NewRequest(http.MethodGet, "/api/card", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allow-origin header, got %q", got)
	}
}
