package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"freelancehub/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	app, _ := newTestApp(t)

	session := registerAndLogin(t, app, "alice", "alice@example.com", "secret123", false)

	resp := doJSON(t, app, http.MethodGet, "/me", nil, session)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]any)
	require.Equal(t, "alice", data["username"])
	require.Equal(t, "alice@example.com", data["email"])
	require.Equal(t, false, data["is_freelancer"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, gdb := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/register", map[string]any{
		"username": "bob",
		"email":    "bob@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/register", map[string]any{
		"username": "bob2",
		"email":    "bob@example.com",
		"password": "secret456",
	})
	body := decodeBody(t, resp)
	require.Equal(t, false, body["success"])
	errs := body["errors"].(map[string]any)
	require.Contains(t, errs, "email")

	var count int64
	require.NoError(t, gdb.Model(&models.User{}).Where("email = ?", "bob@example.com").Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/register", map[string]any{
		"username": "carol",
		"email":    "carol@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/register", map[string]any{
		"username": "carol",
		"email":    "other@example.com",
		"password": "secret123",
	})
	body := decodeBody(t, resp)
	require.Equal(t, false, body["success"])
	errs := body["errors"].(map[string]any)
	require.Contains(t, errs, "username")
}

func TestLoginWrongPassword(t *testing.T) {
	app, _ := newTestApp(t)
	registerAndLogin(t, app, "dave", "dave@example.com", "secret123", false)

	resp := doJSON(t, app, http.MethodPost, "/login", map[string]any{
		"email":    "dave@example.com",
		"password": "wrong-password",
	})
	body := decodeBody(t, resp)
	require.Equal(t, false, body["success"])
	require.Equal(t, "Invalid email or password", body["message"])
}

func TestLoginUnknownEmailSameMessage(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/login", map[string]any{
		"email":    "nobody@example.com",
		"password": "whatever123",
	})
	body := decodeBody(t, resp)
	require.Equal(t, false, body["success"])

	// the message must not reveal whether the email exists
	require.Equal(t, "Invalid email or password", body["message"])
}

func TestProtectedRouteRequiresSession(t *testing.T) {
	app, _ := newTestApp(t)

	for _, path := range []string{"/me", "/dashboard", "/post_project", "/chat"} {
		resp := doJSON(t, app, http.MethodGet, path, nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode, "path %s", path)
		resp.Body.Close()
	}
}

func TestLogoutClearsSessionCookie(t *testing.T) {
	app, _ := newTestApp(t)
	session := registerAndLogin(t, app, "erin", "erin@example.com", "secret123", false)

	resp := doJSON(t, app, http.MethodGet, "/logout", nil, session)
	body := decodeBody(t, resp)
	require.Equal(t, true, body["success"])

	cleared := findCookie(resp, session.Name)
	require.NotNil(t, cleared)
	require.Empty(t, cleared.Value)
}

func TestRegisterFlashShownOnceOnLoginPage(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/register", map[string]any{
		"username": "frank",
		"email":    "frank@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	flashCk := findCookie(resp, "fh_flash")
	require.NotNil(t, flashCk, "expected flash cookie on register")

	resp = doJSON(t, app, http.MethodGet, "/login", nil, flashCk)
	body := decodeBody(t, resp)
	notices := body["notices"].([]any)
	require.Len(t, notices, 1)
	notice := notices[0].(map[string]any)
	require.Equal(t, "success", notice["level"])
	require.Equal(t, "Account created! Please log in.", notice["message"])

	// one-shot: a second fetch comes back empty
	resp = doJSON(t, app, http.MethodGet, "/login", nil, flashCk)
	body = decodeBody(t, resp)
	require.Empty(t, body["notices"])
}

func TestUnknownRouteReturns404(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/does-not-exist", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, false, body["success"])
	require.Equal(t, "Page not found", body["message"])
}
