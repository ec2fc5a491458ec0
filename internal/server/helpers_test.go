package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"freelancehub/internal/config"
	"freelancehub/internal/flash"
	"freelancehub/internal/middleware"
	"freelancehub/internal/models"
)

const testJWTSecret = "freelancehub_test_jwt_secret"

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// a single connection so every query sees the same in-memory database
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Review{},
		&models.Message{},
	))

	cfg := config.Config{
		AppPort:         "8080",
		JWTSecret:       testJWTSecret,
		JWTExpiresMin:   60,
		FrontendBaseURL: "http://localhost:3000",
	}

	app := New(Deps{DB: gdb, Cfg: cfg, Flash: flash.NewMemoryStore()})
	return app, gdb
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	var rd io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, ck := range resp.Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

// registerAndLogin creates an account and returns its session cookie.
func registerAndLogin(t *testing.T, app *fiber.App, username, email, password string, freelancer bool) *http.Cookie {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/register", map[string]any{
		"username":      username,
		"email":         email,
		"password":      password,
		"is_freelancer": freelancer,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/login", map[string]any{
		"email":    email,
		"password": password,
	})
	body := decodeBody(t, resp)
	require.Equal(t, true, body["success"], "login failed: %v", body)

	session := findCookie(resp, middleware.SessionCookie)
	require.NotNil(t, session, "expected session cookie after login")
	return session
}
