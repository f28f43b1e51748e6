package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ecosept/booking-api/internal/config"
	dbpkg "github.com/ecosept/booking-api/internal/db"
	"github.com/ecosept/booking-api/internal/routes"
)

// setupServer builds a full router over an in-memory database with the
// standard seed data (roles, categories, admin/employee/guest users).
func setupServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))

	cfg := &config.Config{
		JWTSecret:    "test-secret",
		ServerPort:   "0",
		RateLimitRPS: 1000,
	}

	r := gin.New()
	routes.RegisterRoutes(r, db, cfg)

	return r, db
}

func doRequest(
	t *testing.T,
	r *gin.Engine,
	method, path, token string,
	body any,
) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// login authenticates one of the seeded users and returns its token.
func login(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/login", "", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	decodeBody(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func loginAdmin(t *testing.T, r *gin.Engine) string {
	return login(t, r, "admin@test.com", "admin123")
}

func loginEmployee(t *testing.T, r *gin.Engine) string {
	return login(t, r, "employee@test.com", "employee123")
}

func loginGuest(t *testing.T, r *gin.Engine) string {
	return login(t, r, "guest@test.com", "guest123")
}

// seedCatalog installs the default services via the admin endpoint.
func seedCatalog(t *testing.T, r *gin.Engine, adminToken string) {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/api/init/services", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
