package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile(t *testing.T) {
	r, _ := setupServer(t)
	guest := loginGuest(t, r)

	w := doRequest(t, r, http.MethodGet, "/api/profile", guest, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Role     string `json:"role"`
		RoleID   uint   `json:"role_id"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, "guest", resp.Username)
	assert.Equal(t, "guest@test.com", resp.Email)
	assert.Equal(t, "guest", resp.Role)
	assert.Equal(t, uint(3), resp.RoleID)
}

func TestUpdateProfile(t *testing.T) {
	r, _ := setupServer(t)
	guest := loginGuest(t, r)

	w := doRequest(t, r, http.MethodPut, "/api/profile", guest, gin.H{
		"username": "guest",
		"email":    "guest@test.com",
		"phone":    "+79991234567",
		"address":  "пос. Сосновый, 12",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Phone   string `json:"phone"`
		Address string `json:"address"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, "+79991234567", resp.Phone)
	assert.Equal(t, "пос. Сосновый, 12", resp.Address)

	t.Run("missing required fields", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPut, "/api/profile", guest, gin.H{
			"phone": "+79991234567",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("taken username", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPut, "/api/profile", guest, gin.H{
			"username": "admin",
			"email":    "guest@test.com",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body struct {
			ErrorCode string `json:"error_code"`
		}
		decodeBody(t, w, &body)
		assert.Equal(t, "user_exists", body.ErrorCode)
	})

	t.Run("keeping own identity is not a conflict", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPut, "/api/profile", guest, gin.H{
			"username": "guest",
			"email":    "guest@test.com",
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestChangePassword(t *testing.T) {
	r, _ := setupServer(t)
	guest := loginGuest(t, r)

	t.Run("wrong current password", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPut, "/api/profile/password", guest, gin.H{
			"currentPassword": "nope",
			"newPassword":     "newpass123",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body struct {
			ErrorCode string `json:"error_code"`
		}
		decodeBody(t, w, &body)
		assert.Equal(t, "invalid_current_password", body.ErrorCode)
	})

	w := doRequest(t, r, http.MethodPut, "/api/profile/password", guest, gin.H{
		"currentPassword": "guest123",
		"newPassword":     "newpass123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Old password stops working, the new one logs in.
	old := doRequest(t, r, http.MethodPost, "/api/login", "", gin.H{
		"email":    "guest@test.com",
		"password": "guest123",
	})
	assert.Equal(t, http.StatusBadRequest, old.Code)

	login(t, r, "guest@test.com", "newpass123")
}
