package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/ecosept/booking-api/internal/config"
	"github.com/ecosept/booking-api/internal/httperr"
)

const ContextUserID = "userID"

// AuthMiddleware verifies the bearer token and stores the embedded user id
// for downstream handlers. A missing or malformed header is 401; a token
// that fails signature or expiry checks is 403.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Требуется авторизация.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Некорректный заголовок авторизации.")
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			httperr.Forbidden(c, "invalid_token", "Недействительный токен.")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Forbidden(c, "invalid_token_claims", "Недействительный токен.")
			c.Abort()
			return
		}

		userID, ok := claims["sub"].(float64)
		if !ok {
			httperr.Forbidden(c, "invalid_token_payload", "Недействительный токен.")
			c.Abort()
			return
		}

		c.Set(ContextUserID, uint(userID))
		c.Next()
	}
}
