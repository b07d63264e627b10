package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerHandler_StampCardLifecycle(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.registerOwner(t, "cafe@example.com")
	cardCode := s.createCard(t, token, 3)

	w := s.do(t, http.MethodPost, "/api/v1/customers/register", "", gin.H{"phone": "0790000001", "name": "Sami", "cardId": cardCode})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reg := decode(t, w)
	membershipID := reg["customerCardId"].(string)
	qrToken := reg["qrToken"].(string)
	assert.Equal(t, float64(3), reg["maxStamps"])

	w = s.do(t, http.MethodPost, "/api/v1/customers/register", "", gin.H{"phone": "0790000001", "cardId": cardCode})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, membershipID, decode(t, w)["customerCardId"])

	for i := 0; i < 3; i++ {
		w = s.do(t, http.MethodPost, "/api/v1/stamps/add", token, gin.H{"customerCardId": qrToken})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, true, decode(t, w)["success"])
	}

	w = s.do(t, http.MethodPost, "/api/v1/customers/scan", token, gin.H{"qrCode": qrToken})
	require.Equal(t, http.StatusOK, w.Code)
	customer := decode(t, w)["customer"].(map[string]interface{})
	assert.Equal(t, float64(3), customer["currentStamps"])
	assert.Equal(t, "Today", customer["lastVisit"])

	w = s.do(t, http.MethodPost, "/api/v1/stamps/redeem", token, gin.H{"customerCardId": membershipID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Reward redeemed successfully", decode(t, w)["message"])

	w = s.do(t, http.MethodPost, "/api/v1/customers/scan", token, gin.H{"phone": "0790000001"})
	require.Equal(t, http.StatusOK, w.Code)
	customer = decode(t, w)["customer"].(map[string]interface{})
	assert.Equal(t, float64(0), customer["currentStamps"])
	assert.Equal(t, float64(1), customer["rewardsRedeemed"])

	w = s.do(t, http.MethodGet, "/api/v1/memberships/"+membershipID+"/transactions", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["transactions"], 4)

	w = s.do(t, http.MethodGet, "/api/v1/customers?page=1&limit=10", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Len(t, body["customers"], 1)
	assert.Equal(t, float64(1), body["pagination"].(map[string]interface{})["totalCount"])

	w = s.do(t, http.MethodGet, "/api/v1/analytics/today", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode(t, w)["stats"].(map[string]interface{})
	assert.Equal(t, float64(3), stats["stampsGiven"])
	assert.Equal(t, float64(1), stats["rewardsRedeemed"])

	w = s.do(t, http.MethodGet, "/api/v1/analytics/dashboard", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats = decode(t, w)["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["totalCustomers"])
	assert.Equal(t, float64(1), stats["activeCards"])
}

func TestLedgerHandler_TenantIsolation(t *testing.T) {
	s := newTestServer(t)
	ownerToken, _ := s.registerOwner(t, "owner@example.com")
	otherToken, _ := s.registerOwner(t, "other@example.com")
	cardCode := s.createCard(t, ownerToken, 5)

	w := s.do(t, http.MethodPost, "/api/v1/customers/register", "", gin.H{"phone": "0790000009", "cardId": cardCode})
	require.Equal(t, http.StatusCreated, w.Code)
	membershipID := decode(t, w)["customerCardId"].(string)

	w = s.do(t, http.MethodPost, "/api/v1/stamps/add", otherToken, gin.H{"customerCardId": membershipID})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "customer card not found", decode(t, w)["message"])

	w = s.do(t, http.MethodPost, "/api/v1/stamps/redeem", otherToken, gin.H{"customerCardId": membershipID})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/memberships/"+membershipID+"/transactions", otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/customers/scan", otherToken, gin.H{"phone": "0790000009"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLedgerHandler_Validation(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.registerOwner(t, "v@example.com")

	w := s.do(t, http.MethodPost, "/api/v1/customers/register", "", gin.H{"phone": "0790000001", "cardId": "CARD-UNKNOWN"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/customers/register", "", gin.H{"cardId": "CARD-UNKNOWN"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/stamps/add", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/customers/scan", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/memberships/not-a-uuid/transactions", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/stamps/add", "", gin.H{"customerCardId": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
