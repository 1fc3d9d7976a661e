package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"secrethouse/internal/database"
	"secrethouse/internal/domain"
	"secrethouse/internal/middleware"
	"secrethouse/internal/migrations"
	"secrethouse/internal/modules/admin"
	"secrethouse/internal/modules/booking"
	"secrethouse/internal/modules/drafts"
	"secrethouse/internal/modules/promo"
	"secrethouse/internal/modules/quote"
	jwtsvc "secrethouse/internal/pkg/jwt"
	"secrethouse/internal/pricing"
	"secrethouse/internal/repository"
	"secrethouse/internal/session"
)

const adminPassword = "test-admin-password"

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type suite struct {
	router *gin.Engine
	db     *gorm.DB
	users  *repository.UserRepository
}

func setup(t *testing.T) *suite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, migrations.Migrate(db))

	ratesPath := filepath.Join(t.TempDir(), "rates.json")
	raw := `{
		"rates": [
			{"tariff": "DAY", "price": 10000, "sauna_price": 2000, "secret_room_price": 1500,
			 "second_bedroom_price": 1000, "max_people": 2, "extra_people_price": 500,
			 "duration_hours": 24, "extra_hour_price": 300,
			 "multi_day_prices": {"2": 18000}},
			{"tariff": "GIFT", "price": 12000, "max_people": 2, "duration_hours": 24}
		],
		"date_rules": [
			{"id": 1, "name": "новый год", "start_date": "2024-12-30", "end_date": "2025-01-02", "price_override": 15000}
		]
	}`
	require.NoError(t, os.WriteFile(ratesPath, []byte(raw), 0o644))

	catalog, err := pricing.LoadCatalog(ratesPath)
	require.NoError(t, err)
	rules := pricing.NewRuleIndex()
	require.NoError(t, rules.Reload(ratesPath))
	engine := pricing.NewEngine(catalog, rules)

	userRepo := repository.NewUserRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	giftRepo := repository.NewGiftRepository(db)
	promoRepo := repository.NewPromoCodeRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)
	tokens := jwtsvc.New("e2e-secret", time.Hour)

	bookingHandler := booking.NewHandler(booking.NewService(userRepo, bookingRepo, giftRepo, engine, nil))
	quoteHandler := quote.NewHandler(quote.NewService(engine, catalog))
	promoHandler := promo.NewHandler(promo.NewService(promoRepo))
	adminHandler := admin.NewHandler(db, tokens, string(hash), catalog, rules, ratesPath)
	draftsHandler := drafts.NewHandler(session.NewStore(), engine)

	router := gin.New()
	router.Use(middleware.ErrorLogger())
	v1 := router.Group("/api/v1")
	quoteHandler.RegisterRoutes(v1)
	bookingHandler.RegisterRoutes(v1)
	draftsHandler.RegisterRoutes(v1)
	promoHandler.RegisterRoutes(v1)
	adminHandler.RegisterRoutes(v1)
	protected := v1.Group("", middleware.RequireAdmin(tokens))
	adminHandler.RegisterProtectedRoutes(protected)
	promoHandler.RegisterAdminRoutes(protected)

	return &suite{router: router, db: db, users: userRepo}
}

func (s *suite) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, TestResponse) {
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
	s.router.ServeHTTP(w, req)

	var resp TestResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func (s *suite) createUser(t *testing.T, name string, chatID int64) int64 {
	t.Helper()
	u := &domain.User{UserName: name, ChatID: &chatID, IsActive: true}
	require.NoError(t, s.users.Create(context.Background(), u))
	return u.ID
}

func (s *suite) adminToken(t *testing.T) string {
	t.Helper()
	w, resp := s.do(t, http.MethodPost, "/api/v1/admin/login", "", gin.H{"password": adminPassword})
	require.Equal(t, http.StatusOK, w.Code)
	return resp.Data["token"].(string)
}

func TestQuoteFlow(t *testing.T) {
	s := setup(t)

	w, resp := s.do(t, http.MethodPost, "/api/v1/quote", "", gin.H{
		"tariff":       "DAY",
		"booking_date": "2024-06-15",
		"is_sauna":     true,
		"count_people": 3,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(12500), resp.Data["amount"])
	assert.Equal(t, "сауна, 3 гостей", resp.Data["label"])
}

func TestQuoteDateOverrideFlow(t *testing.T) {
	s := setup(t)

	w, resp := s.do(t, http.MethodPost, "/api/v1/quote", "", gin.H{
		"tariff":       "DAY",
		"booking_date": "2024-12-31",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(15000), resp.Data["amount"])
	assert.Equal(t, "новый год", resp.Data["rule_name"])
}

func TestBookingLifecycle(t *testing.T) {
	s := setup(t)
	userID := s.createUser(t, "Анна", 100500)

	w, resp := s.do(t, http.MethodPost, "/api/v1/bookings", "", gin.H{
		"user_id":      userID,
		"tariff":       1,
		"booking_date": "2024-06-15T00:00:00Z",
		"count_people": 2,
		"is_sauna":     true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	bookingID := int64(resp.Data["id"].(float64))
	assert.Equal(t, float64(12000), resp.Data["amount"])

	// counters follow the write
	u, err := s.users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, u.HasBookings)
	assert.Equal(t, 1, u.TotalBookings)
	assert.Equal(t, 0, u.CompletedBookings)

	w, _ = s.do(t, http.MethodPost, "/api/v1/bookings/"+itoa(bookingID)+"/complete", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	u, err = s.users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, u.CompletedBookings)

	w, _ = s.do(t, http.MethodPost, "/api/v1/bookings/"+itoa(bookingID)+"/feedback", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = s.do(t, http.MethodGet, "/api/v1/users/"+itoa(userID)+"/bookings", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestBookingCancelTwiceConflicts(t *testing.T) {
	s := setup(t)
	userID := s.createUser(t, "Виктор", 100501)

	w, resp := s.do(t, http.MethodPost, "/api/v1/bookings", "", gin.H{
		"user_id":      userID,
		"tariff":       1,
		"booking_date": "2024-06-15T00:00:00Z",
		"count_people": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	bookingID := itoa(int64(resp.Data["id"].(float64)))

	w, _ = s.do(t, http.MethodPost, "/api/v1/bookings/"+bookingID+"/cancel", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/v1/bookings/"+bookingID+"/cancel", "", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGiftRedemption(t *testing.T) {
	s := setup(t)
	buyerID := s.createUser(t, "Даритель", 200100)
	guestID := s.createUser(t, "Гостья", 200101)

	w, resp := s.do(t, http.MethodPost, "/api/v1/gifts", "", gin.H{
		"user_id": buyerID,
		"tariff":  6,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	code := resp.Data["code"].(string)
	require.Len(t, code, 10)
	assert.Equal(t, float64(12000), resp.Data["amount"])

	w, _ = s.do(t, http.MethodPost, "/api/v1/bookings", "", gin.H{
		"user_id":      guestID,
		"tariff":       1,
		"booking_date": "2024-06-15T00:00:00Z",
		"count_people": 2,
		"gift_code":    code,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// second redemption of the same code must fail
	w, _ = s.do(t, http.MethodPost, "/api/v1/bookings", "", gin.H{
		"user_id":      guestID,
		"tariff":       1,
		"booking_date": "2024-06-16T00:00:00Z",
		"count_people": 2,
		"gift_code":    code,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPromoCodeAdminFlow(t *testing.T) {
	s := setup(t)
	token := s.adminToken(t)

	// creating needs the admin token
	w, _ := s.do(t, http.MethodPost, "/api/v1/promocodes", "", gin.H{})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w, resp := s.do(t, http.MethodPost, "/api/v1/promocodes", token, gin.H{})
	require.Equal(t, http.StatusCreated, w.Code)
	code := resp.Data["code"].(string)
	id := int64(resp.Data["id"].(float64))

	// public redeem check
	w, _ = s.do(t, http.MethodGet, "/api/v1/promocodes/"+code, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/v1/promocodes/"+itoa(id)+"/deactivate", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/v1/promocodes/"+code, "", nil)
	assert.Equal(t, http.StatusGone, w.Code)
}

func TestDraftToBooking(t *testing.T) {
	s := setup(t)

	w, _ := s.do(t, http.MethodPut, "/api/v1/drafts/300500", "", gin.H{
		"tariff":       1,
		"booking_date": "2024-06-15T00:00:00Z",
		"count_people": 2,
		"is_sauna":     true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := s.do(t, http.MethodGet, "/api/v1/drafts/300500/quote", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(12000), resp.Data["amount"])

	w, _ = s.do(t, http.MethodDelete, "/api/v1/drafts/300500", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestIntegrityReportAfterManualDamage(t *testing.T) {
	s := setup(t)
	token := s.adminToken(t)
	userID := s.createUser(t, "Жертва", 300100)

	w, _ := s.do(t, http.MethodPost, "/api/v1/bookings", "", gin.H{
		"user_id":      userID,
		"tariff":       1,
		"booking_date": "2024-06-15T00:00:00Z",
		"count_people": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// simulate the damage older deployments left behind
	require.NoError(t, s.db.Exec(`DELETE FROM users WHERE id = ?`, userID).Error)

	w, resp := s.do(t, http.MethodGet, "/api/v1/admin/integrity", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, resp.Data["clean"])
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
