package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ecosept/booking-api/internal/domain/role"
	"github.com/ecosept/booking-api/internal/httperr"
	"github.com/ecosept/booking-api/internal/models"
)

const ContextUserRole = "userRole"

// RequireRoles resolves the caller's stored role to its canonical value
// and denies the request unless it is one of the allowed roles. The role
// is read from the store per request so role changes take effect
// immediately, without reissuing tokens.
func RequireRoles(db *gorm.DB, allowed ...role.Canonical) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet(ContextUserID).(uint)

		var user models.User
		if err := db.Preload("Role").First(&user, userID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				httperr.NotFound(c, "user_not_found", "Пользователь не найден.")
			} else {
				httperr.Internal(c, "role_lookup_failed", "Ошибка при проверке прав.")
			}
			c.Abort()
			return
		}

		canonical := role.Resolve(user.RoleID, user.Role.Name)
		if !canonical.In(allowed...) {
			httperr.Forbidden(c, "insufficient_rights", "Недостаточно прав для выполнения операции.")
			c.Abort()
			return
		}

		c.Set(ContextUserRole, canonical)
		c.Next()
	}
}
