package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setMemoryEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "bootstrap-test-secret")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("SEED_ADMIN_EMAIL", "root@cardhub.test")
	t.Setenv("SEED_ADMIN_PASSWORD", "Root!23456")
}

func TestBuildAPIWiresMemoryStoreAndSeedsAdmin(t *testing.T) {
	setMemoryEnv(t)

	app, err := BuildAPI(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	login := httptest.NewRecorder()
	app.server.Handler().ServeHTTP(login, httptest.NewRequest(http.MethodPost, "/api/users/login",
		bytes.NewReader([]byte(`{"email":"root@cardhub.test","password":"Root!23456"}`))))
	require.Equal(t, http.StatusOK, login.Code, login.Body.String())

	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &session))

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	list := httptest.NewRecorder()
	app.server.Handler().ServeHTTP(list, req)
	assert.Equal(t, http.StatusOK, list.Code)
}

func TestBuildAPIRequiresSecret(t *testing.T) {
	setMemoryEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := BuildAPI(context.Background())
	assert.Error(t, err)
}

func TestBuildMigrateRejectsMemoryDriver(t *testing.T) {
	setMemoryEnv(t)

	_, err := BuildMigrate(context.Background())
	assert.Error(t, err)
}

func TestRunStopsOnCancel(t *testing.T) {
	setMemoryEnv(t)
	t.Setenv("HTTP_PORT", "0")

	app, err := BuildAPI(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, app.Run(ctx))
}
