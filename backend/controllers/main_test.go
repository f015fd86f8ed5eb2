package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"dsamentor/backend/config"
	"dsamentor/backend/realtime"
	"dsamentor/backend/routes"
	"dsamentor/backend/utils"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestApp builds a full app over a private in-memory database, so each
// test starts from a clean slate.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, utils.MigrateDB(db))

	cfg := &config.Config{
		JWTSecret:  "testsecret",
		ServerPort: "3001",
		AppEnv:     "test",
	}

	app := fiber.New()
	routes.SetupRoutes(app, db, cfg, realtime.NewHub(), log.New(io.Discard, "", 0))
	return app, db
}

// doJSON sends a JSON request through the app and decodes the JSON reply.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&result)
	return resp.StatusCode, result
}

// data unwraps the success envelope.
func data(t *testing.T, result map[string]interface{}) map[string]interface{} {
	t.Helper()
	payload, ok := result["data"].(map[string]interface{})
	require.True(t, ok, "response has no data payload: %v", result)
	return payload
}

// registerUser registers a fresh account and returns its session token.
func registerUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	status, result := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": "password123",
		"name":     "Test User",
	})
	require.Equal(t, fiber.StatusCreated, status)
	token, ok := data(t, result)["token"].(string)
	require.True(t, ok)
	return token
}
