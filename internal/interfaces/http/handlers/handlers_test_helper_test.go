package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"loyaltyjo.backend/internal/infrastructure/models"
	"loyaltyjo.backend/internal/infrastructure/repositories"
	"loyaltyjo.backend/internal/interfaces/http/middleware"
	"loyaltyjo.backend/internal/usecases"
	"loyaltyjo.backend/pkg/crypto"
	"loyaltyjo.backend/pkg/jwt"
)

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	jwt    *jwt.JWTService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := repositories.NewTestDB(t)
	jwtService := jwt.NewJWTService("handler-test-secret", time.Hour)

	businessRepo := repositories.NewBusinessRepository(db)
	cardRepo := repositories.NewCardRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	membershipRepo := repositories.NewMembershipRepository(db)
	txRepo := repositories.NewStampTransactionRepository(db)
	uow := repositories.NewUnitOfWork(db)

	authHandler := NewAuthHandler(usecases.NewAuthUsecase(
		businessRepo,
		repositories.NewStaffRepository(db),
		repositories.NewAdminRepository(db),
		jwtService,
		60*24*time.Hour,
	))
	cardHandler := NewCardHandler(usecases.NewCardUsecase(cardRepo, 10))
	ledgerHandler := NewLedgerHandler(usecases.NewLedgerUsecase(cardRepo, customerRepo, membershipRepo, txRepo, uow))
	analyticsHandler := NewAnalyticsHandler(usecases.NewAnalyticsUsecase(membershipRepo, cardRepo, txRepo))
	adminHandler := NewAdminHandler(usecases.NewAdminUsecase(businessRepo, customerRepo, repositories.NewSubscriptionRepository(db), uow))

	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)
	v1.POST("/auth/staff/login", authHandler.StaffLogin)
	v1.POST("/admin/login", authHandler.AdminLogin)
	v1.POST("/customers/register", ledgerHandler.RegisterCustomer)
	v1.GET("/public/cards/:cardId", cardHandler.GetPublicCard)

	business := v1.Group("")
	business.Use(middleware.AuthMiddleware(jwtService), middleware.RequireBusiness())
	business.GET("/business", authHandler.GetBusiness)
	business.GET("/cards", cardHandler.ListCards)
	business.POST("/cards", middleware.RequireOwner(), cardHandler.UpsertCard)
	business.GET("/customers", ledgerHandler.ListCustomers)
	business.POST("/customers/scan", ledgerHandler.ScanCustomer)
	business.POST("/stamps/add", ledgerHandler.AddStamp)
	business.POST("/stamps/redeem", ledgerHandler.RedeemReward)
	business.GET("/memberships/:id/transactions", ledgerHandler.ListTransactions)
	business.GET("/analytics/dashboard", analyticsHandler.Dashboard)
	business.GET("/analytics/today", analyticsHandler.Today)
	business.GET("/staff", middleware.RequireOwner(), authHandler.ListStaff)
	business.POST("/staff", middleware.RequireOwner(), authHandler.CreateStaff)

	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(jwtService), middleware.RequireAdmin())
	admin.GET("/dashboard", adminHandler.GetStats)
	admin.GET("/analytics", adminHandler.GetAnalytics)
	admin.GET("/businesses", adminHandler.ListBusinesses)
	admin.POST("/businesses", adminHandler.CreateBusiness)
	admin.PUT("/businesses/:id/status", adminHandler.UpdateBusinessStatus)
	admin.GET("/plans", adminHandler.ListPlans)
	admin.GET("/subscriptions", adminHandler.ListSubscriptions)

	return &testServer{router: r, db: db, jwt: jwtService}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.AuthorizationHeader, middleware.BearerPrefix+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// registerOwner signs up a business and returns its owner token and business id
func (s *testServer) registerOwner(t *testing.T, email string) (string, string) {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"businessName": "Shop " + email,
		"ownerName":    "Owner",
		"email":        email,
		"password":     "Password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	business := body["business"].(map[string]interface{})
	return body["token"].(string), business["id"].(string)
}

// createCard creates the owner's card and returns its card code
func (s *testServer) createCard(t *testing.T, token string, stamps int) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/cards", token, gin.H{
		"cardName":          "Coffee card",
		"stampsRequired":    stamps,
		"rewardDescription": "Free coffee",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	card := decode(t, w)["card"].(map[string]interface{})
	return card["cardCode"].(string)
}

func (s *testServer) seedAdmin(t *testing.T, email, password string) {
	t.Helper()
	hash, err := crypto.HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, s.db.Create(&models.AdminUser{
		Email:        email,
		PasswordHash: hash,
		FullName:     "Platform Admin",
		Role:         "super_admin",
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}).Error)
}

func (s *testServer) seedPlan(t *testing.T, name string, price float64, months int) string {
	t.Helper()
	plan := &models.SubscriptionPlan{PlanName: name, Price: price, DurationMonths: months, IsActive: true, CreatedAt: time.Now().UTC()}
	require.NoError(t, s.db.Create(plan).Error)
	return plan.ID.String()
}
