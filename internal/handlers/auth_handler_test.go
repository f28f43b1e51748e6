package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	r, _ := setupServer(t)

	w := doRequest(t, r, http.MethodPost, "/api/register", "", gin.H{
		"username": "maria",
		"email":    "Maria@Example.com",
		"password": "secret123",
		"phone":    "+79990001122",
		"address":  "ул. Ленина, 1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID       uint   `json:"id"`
			Username string `json:"username"`
			Email    string `json:"email"`
			Role     string `json:"role"`
			RoleID   uint   `json:"role_id"`
		} `json:"user"`
	}
	decodeBody(t, w, &resp)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "maria", resp.User.Username)
	// Email is stored lowercased.
	assert.Equal(t, "maria@example.com", resp.User.Email)
	// Registration defaults to the guest role.
	assert.Equal(t, "guest", resp.User.Role)
	assert.Equal(t, uint(3), resp.User.RoleID)

	// The fresh token works right away.
	me := doRequest(t, r, http.MethodGet, "/api/profile", resp.Token, nil)
	assert.Equal(t, http.StatusOK, me.Code)

	// Login with the lowercased email.
	token := login(t, r, "maria@example.com", "secret123")
	assert.NotEmpty(t, token)
}

func TestRegisterDuplicate(t *testing.T) {
	r, _ := setupServer(t)

	first := doRequest(t, r, http.MethodPost, "/api/register", "", gin.H{
		"username": "maria",
		"email":    "maria@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, first.Code)

	var firstResp struct {
		Token string `json:"token"`
	}
	decodeBody(t, first, &firstResp)

	// Same username, different email.
	dup := doRequest(t, r, http.MethodPost, "/api/register", "", gin.H{
		"username": "maria",
		"email":    "other@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, dup.Code)

	// Same email, different username.
	dup = doRequest(t, r, http.MethodPost, "/api/register", "", gin.H{
		"username": "maria2",
		"email":    "maria@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, dup.Code)

	var body struct {
		ErrorCode string `json:"error_code"`
	}
	decodeBody(t, dup, &body)
	assert.Equal(t, "user_exists", body.ErrorCode)

	// The rejected attempt must not invalidate the original account.
	me := doRequest(t, r, http.MethodGet, "/api/profile", firstResp.Token, nil)
	assert.Equal(t, http.StatusOK, me.Code)
}

func TestRegisterValidation(t *testing.T) {
	r, _ := setupServer(t)

	missing := doRequest(t, r, http.MethodPost, "/api/register", "", gin.H{
		"username": "maria",
	})
	assert.Equal(t, http.StatusBadRequest, missing.Code)

	badEmail := doRequest(t, r, http.MethodPost, "/api/register", "", gin.H{
		"username": "maria",
		"email":    "not-an-email",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, badEmail.Code)

	var body struct {
		ErrorCode string `json:"error_code"`
	}
	decodeBody(t, badEmail, &body)
	assert.Equal(t, "invalid_email", body.ErrorCode)
}

func TestLoginInvalidCredentials(t *testing.T) {
	r, _ := setupServer(t)

	// Wrong password and unknown email get the same answer.
	wrongPass := doRequest(t, r, http.MethodPost, "/api/login", "", gin.H{
		"email":    "admin@test.com",
		"password": "nope",
	})
	unknown := doRequest(t, r, http.MethodPost, "/api/login", "", gin.H{
		"email":    "ghost@test.com",
		"password": "nope",
	})

	assert.Equal(t, http.StatusBadRequest, wrongPass.Code)
	assert.Equal(t, http.StatusBadRequest, unknown.Code)

	var a, b struct {
		ErrorCode string `json:"error_code"`
	}
	decodeBody(t, wrongPass, &a)
	decodeBody(t, unknown, &b)
	assert.Equal(t, "invalid_credentials", a.ErrorCode)
	assert.Equal(t, a.ErrorCode, b.ErrorCode)
}

func TestAuthMiddlewareRejections(t *testing.T) {
	r, _ := setupServer(t)

	// No header.
	w := doRequest(t, r, http.MethodGet, "/api/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage token.
	w = doRequest(t, r, http.MethodGet, "/api/profile", "not-a-jwt", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
