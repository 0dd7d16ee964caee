package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"skillboard_backend/internal/app"
	"skillboard_backend/internal/config"
	"skillboard_backend/internal/logger"
	"skillboard_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TestServer hosts the full router against the test database. Requests are
// dispatched through ServeHTTP with the test transaction injected into the
// request context, so each test runs isolated and rolls back at the end.
type TestServer struct {
	Router *gin.Engine
	DB     *gorm.DB
}

func NewTestServer(t *testing.T) *TestServer {
	gin.SetMode(gin.TestMode)

	config.LoadConfig()
	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)

	uploadDir, err := os.MkdirTemp("", "skillboard-test-uploads-")
	if err != nil {
		t.Fatalf("Failed to create temp upload dir: %v", err)
	}
	cfg.Storage.BasePath = uploadDir

	db, err := app.OpenDB(cfg.Database.DSN)
	if err != nil {
		t.Fatalf("Failed to connect to test database (%s): %v", cfg.Database.DSN, err)
	}

	if err := app.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get *sql.DB from GORM: %v", err)
	}

	router := app.SetupRouter(cfg, db, sqlDB)

	return &TestServer{
		Router: router,
		DB:     db,
	}
}

func (ts *TestServer) Close() {
	sqlDB, _ := ts.DB.DB()
	sqlDB.Close()
}

// BeginTransaction opens the per-test transaction. Everything the test and
// the server do rides on it and disappears on rollback.
func (ts *TestServer) BeginTransaction(t *testing.T) *gorm.DB {
	tx := ts.DB.Begin()
	if tx.Error != nil {
		t.Fatalf("Failed to begin test transaction: %v", tx.Error)
	}
	return tx
}

func (ts *TestServer) RollbackTransaction(t *testing.T, tx *gorm.DB) {
	if err := tx.Rollback().Error; err != nil && err != gorm.ErrInvalidTransaction {
		t.Logf("Rollback returned: %v", err)
	}
}

// SendRequest dispatches a JSON request through the router on the given
// transaction and returns the response plus its body.
func (ts *TestServer) SendRequest(t *testing.T, tx *gorm.DB, method, path, token string, body interface{}) (*http.Response, string) {
	return ts.SendRequestWithSession(t, tx, method, path, token, "", body)
}

// SendRequestWithSession additionally presents an endorsement session
// cookie, as a browser would on repeat visits.
func (ts *TestServer) SendRequestWithSession(t *testing.T, tx *gorm.DB, method, path, token, sessionKey string, body interface{}) (*http.Response, string) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to encode request JSON: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req = req.WithContext(context.WithValue(req.Context(), contextkeys.DBContextKey, tx))

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionKey != "" {
		req.AddCookie(&http.Cookie{Name: "sb_session", Value: sessionKey})
	}

	rec := httptest.NewRecorder()
	ts.Router.ServeHTTP(rec, req)

	res := rec.Result()
	resBodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	res.Body.Close()

	return res, string(resBodyBytes)
}
