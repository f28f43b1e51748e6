package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The whole customer journey through the public API: sign up, book a
// service, then watch the back office confirm it.
func TestBookingJourney(t *testing.T) {
	r, _ := setupServer(t)
	admin := loginAdmin(t, r)
	seedCatalog(t, r, admin)

	w := doRequest(t, r, http.MethodPost, "/api/register", "", gin.H{
		"username": "anna",
		"email":    "anna@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	anna := login(t, r, "anna@example.com", "secret123")

	created := createOrder(t, r, anna, 1, futureTime(24))
	assert.Equal(t, "pending", created.Status)

	// Anna sees exactly her order.
	var rows []orderRowResp
	list := doRequest(t, r, http.MethodGet, "/api/orders", anna, nil)
	require.Equal(t, http.StatusOK, list.Code)
	decodeBody(t, list, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, created.ID, rows[0].ID)

	// The admin sees it among all orders and confirms it.
	list = doRequest(t, r, http.MethodGet, "/api/orders", admin, nil)
	require.Equal(t, http.StatusOK, list.Code)
	decodeBody(t, list, &rows)
	require.Len(t, rows, 1)

	w = doRequest(t, r, http.MethodPatch, "/api/orders/1/status", admin, gin.H{
		"status": "confirmed",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// The confirmation is visible to Anna on her next listing.
	list = doRequest(t, r, http.MethodGet, "/api/orders", anna, nil)
	require.Equal(t, http.StatusOK, list.Code)
	decodeBody(t, list, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, "confirmed", rows[0].Status)

	// Having used the service, she leaves feedback for the order.
	w = doRequest(t, r, http.MethodPost, "/api/feedback", anna, gin.H{
		"order_id": created.ID,
		"rating":   5,
		"comment":  "Приехали вовремя, все чисто",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}
