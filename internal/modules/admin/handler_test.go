package admin

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"secrethouse/internal/database"
	"secrethouse/internal/middleware"
	"secrethouse/internal/migrations"
	"secrethouse/internal/pkg/jwt"
	"secrethouse/internal/pricing"
)

const testPassword = "open-sesame"

func testRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, migrations.Migrate(db))

	ratesPath := filepath.Join(t.TempDir(), "rates.json")
	writeRates(t, ratesPath, 10000)

	catalog, err := pricing.LoadCatalog(ratesPath)
	require.NoError(t, err)
	rules := pricing.NewRuleIndex()
	require.NoError(t, rules.Reload(ratesPath))

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	tokens := jwt.New("test-secret", time.Hour)
	h := NewHandler(db, tokens, string(hash), catalog, rules, ratesPath)

	router := gin.New()
	api := router.Group("/api")
	h.RegisterRoutes(api)
	h.RegisterProtectedRoutes(api.Group("", middleware.RequireAdmin(tokens)))
	return router, ratesPath
}

func writeRates(t *testing.T, path string, price int64) {
	t.Helper()
	raw := map[string]any{
		"rates": []map[string]any{
			{"tariff": "DAY", "price": price, "max_people": 2, "duration_hours": 24},
		},
		"date_rules": []map[string]any{
			{"id": 1, "name": "june", "start_date": "2024-06-01", "end_date": "2024-06-30", "price_override": price + 500},
		},
	}
	data, err := json.Marshal(raw)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func doJSON(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/api/admin/login", "", gin.H{"password": testPassword})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func TestLoginWrongPassword(t *testing.T) {
	router, _ := testRouter(t)

	w := doJSON(router, http.MethodPost, "/api/admin/login", "", gin.H{"password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router, _ := testRouter(t)

	w := doJSON(router, http.MethodPost, "/api/admin/reload", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodPost, "/api/admin/reload", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReloadPicksUpNewRates(t *testing.T) {
	router, ratesPath := testRouter(t)
	token := login(t, router)

	writeRates(t, ratesPath, 20000)
	w := doJSON(router, http.MethodPost, "/api/admin/reload", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Tariffs int `json:"tariffs"`
			Rules   int `json:"rules"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.Tariffs)
	assert.Equal(t, 1, resp.Data.Rules)
}

func TestReloadBadFileKeepsServing(t *testing.T) {
	router, ratesPath := testRouter(t)
	token := login(t, router)

	require.NoError(t, os.WriteFile(ratesPath, []byte("{broken"), 0o644))
	w := doJSON(router, http.MethodPost, "/api/admin/reload", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestIntegrityCleanDatabase(t *testing.T) {
	router, _ := testRouter(t)
	token := login(t, router)

	w := doJSON(router, http.MethodGet, "/api/admin/integrity", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Clean bool `json:"clean"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Clean)
}
