// handlers/routes_test.go - HTTP status contracts through the Fiber app
package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pickleball/database"
	"pickleball/middleware"
	"pickleball/models"
	"pickleball/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestApp wires the handlers against an in-memory database and registers
// the routes under test with the app-wide error handler.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", "routes-test-secret-routes-test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// One connection so every query sees the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Session{},
		&models.GuestPlayer{},
		&models.Match{},
	))
	require.NoError(t, db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_group_members_edge ON group_members(group_id, user_id)",
	).Error)

	database.SetDB(db)
	InitHandlers()

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Post("/api/auth/register", Register)
	app.Post("/api/auth/login", Login)
	app.Post("/api/sessions", middleware.AuthMiddleware, CreateSession)
	app.Get("/api/sessions/:code", GetSession)
	app.Post("/api/sessions/:code/join", JoinSession)
	app.Get("/api/sessions/:code/participants", GetParticipants)
	app.Put("/api/sessions/:code/close", middleware.AuthMiddleware, CloseSession)
	return app
}

func jsonRequest(method, target, token, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

// registerAndLogin creates an account through the API and returns its token.
func registerAndLogin(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	creds := `{"email":"` + email + `","password":"secret1","name":"Test"}`
	resp, err := app.Test(jsonRequest("POST", "/api/auth/register", "", creds))
	require.NoError(t, err)
	require.Equal(t, 201, resp.StatusCode)

	resp, err = app.Test(jsonRequest("POST", "/api/auth/login", "",
		`{"email":"`+email+`","password":"secret1"}`))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var auth AuthResponse
	decodeBody(t, resp, &auth)
	require.NotEmpty(t, auth.Token)
	return auth.Token
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	app := newTestApp(t)

	body := `{"email":"alice@example.com","password":"secret1","name":"Alice"}`
	resp, err := app.Test(jsonRequest("POST", "/api/auth/register", "", body))
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	// Second registration with the same email hits the unique index.
	resp, err = app.Test(jsonRequest("POST", "/api/auth/register", "", body))
	require.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)

	var out map[string]interface{}
	decodeBody(t, resp, &out)
	assert.Equal(t, "Email already in use", out["error"])

	// Same email in different case is the same account.
	resp, err = app.Test(jsonRequest("POST", "/api/auth/register", "",
		`{"email":"ALICE@Example.com","password":"secret1","name":"Alice"}`))
	require.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)
}

func TestLoginBadCredentials(t *testing.T) {
	app := newTestApp(t)
	registerAndLogin(t, app, "alice@example.com")

	resp, err := app.Test(jsonRequest("POST", "/api/auth/login", "",
		`{"email":"alice@example.com","password":"wrong"}`))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	resp, err = app.Test(jsonRequest("POST", "/api/auth/login", "",
		`{"email":"nobody@example.com","password":"secret1"}`))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestSessionRouteStatuses(t *testing.T) {
	app := newTestApp(t)
	creatorToken := registerAndLogin(t, app, "alice@example.com")
	otherToken := registerAndLogin(t, app, "bob@example.com")

	// Creating a session requires a token.
	resp, err := app.Test(jsonRequest("POST", "/api/sessions", "", `{"name":"Open Play"}`))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	resp, err = app.Test(jsonRequest("POST", "/api/sessions", creatorToken, `{"name":"Open Play"}`))
	require.NoError(t, err)
	require.Equal(t, 201, resp.StatusCode)

	var session services.SessionDetail
	decodeBody(t, resp, &session)
	require.NotEmpty(t, session.Code)

	// Unknown code is 404 on the public reads.
	resp, err = app.Test(jsonRequest("GET", "/api/sessions/XXXX-XXXX", "", ""))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	// Join is public, blank name rejected.
	resp, err = app.Test(jsonRequest("POST", "/api/sessions/"+session.Code+"/join", "", `{"player_name":"  "}`))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	resp, err = app.Test(jsonRequest("POST", "/api/sessions/"+session.Code+"/join", "", `{"player_name":"Carol"}`))
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	resp, err = app.Test(jsonRequest("GET", "/api/sessions/"+session.Code+"/participants", "", ""))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	// Only the creator may close.
	resp, err = app.Test(jsonRequest("PUT", "/api/sessions/"+session.Code+"/close", otherToken, ""))
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)

	resp, err = app.Test(jsonRequest("PUT", "/api/sessions/"+session.Code+"/close", creatorToken, ""))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	// Joining a closed session is gone, not a validation error.
	resp, err = app.Test(jsonRequest("POST", "/api/sessions/"+session.Code+"/join", "", `{"player_name":"Dave"}`))
	require.NoError(t, err)
	assert.Equal(t, 410, resp.StatusCode)
}
