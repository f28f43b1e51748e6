package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ecosept/booking-api/internal/httperr"
	"github.com/ecosept/booking-api/internal/middleware"
	"github.com/ecosept/booking-api/internal/models"
)

type ProfileHandler struct {
	db *gorm.DB
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

// --------- Requests ---------

type UpdateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// --------- Handlers ---------

func (h *ProfileHandler) Get(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.Preload("Role").First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "user_not_found", "Пользователь не найден.")
			return
		}
		httperr.Internal(c, "profile_failed", "Ошибка при получении профиля.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"phone":      user.Phone,
		"address":    user.Address,
		"role":       user.Role.Name,
		"role_id":    user.RoleID,
		"created_at": user.CreatedAt,
	})
}

func (h *ProfileHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Некорректный запрос.")
		return
	}

	if req.Username == "" || req.Email == "" {
		httperr.BadRequest(c, "missing_fields", "Необходимо заполнить все обязательные поля.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	if err := h.db.Model(&models.User{}).
		Where("(username = ? OR email = ?) AND id <> ?", req.Username, email, userID).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "profile_update_failed", "Ошибка при обновлении профиля.")
		return
	}
	if count > 0 {
		httperr.Conflict(c, "user_exists", "Пользователь с таким именем или email уже существует.")
		return
	}

	updates := map[string]any{
		"username": req.Username,
		"email":    email,
		"phone":    req.Phone,
		"address":  req.Address,
	}
	if err := h.db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(updates).Error; err != nil {
		httperr.Internal(c, "profile_update_failed", "Ошибка при обновлении профиля.")
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.Internal(c, "profile_update_failed", "Ошибка при обновлении профиля.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"phone":    user.Phone,
		"address":  user.Address,
	})
}

func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Некорректный запрос.")
		return
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		httperr.BadRequest(c, "missing_fields", "Необходимо заполнить все поля.")
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "user_not_found", "Пользователь не найден.")
			return
		}
		httperr.Internal(c, "password_change_failed", "Ошибка при изменении пароля.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		httperr.BadRequest(c, "invalid_current_password", "Неверный текущий пароль.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "password_change_failed", "Ошибка при изменении пароля.")
		return
	}

	if err := h.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("password_hash", string(hashed)).Error; err != nil {
		httperr.Internal(c, "password_change_failed", "Ошибка при изменении пароля.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Пароль успешно изменен"})
}
