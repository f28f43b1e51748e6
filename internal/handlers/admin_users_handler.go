package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ecosept/booking-api/internal/audit"
	"github.com/ecosept/booking-api/internal/httperr"
	"github.com/ecosept/booking-api/internal/middleware"
	"github.com/ecosept/booking-api/internal/models"
)

type AdminUsersHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewAdminUsersHandler(db *gorm.DB, audit *audit.Dispatcher) *AdminUsersHandler {
	return &AdminUsersHandler{db: db, audit: audit}
}

// --------- Requests ---------

type UpdateUserRoleRequest struct {
	RoleID uint `json:"role_id"`
}

type AdminUpdateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// UserRow is the admin user listing row with the role name joined in.
type UserRow struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// --------- Handlers ---------

func (h *AdminUsersHandler) List(c *gin.Context) {
	var rows []UserRow
	if err := h.db.
		Table("users").
		Select(`users.id, users.username, users.email, users.phone, users.address,
			roles.name AS role, users.created_at`).
		Joins("JOIN roles ON users.role_id = roles.id").
		Order("users.created_at DESC").
		Scan(&rows).Error; err != nil {
		httperr.Internal(c, "users_list_failed", "Ошибка при получении пользователей.")
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (h *AdminUsersHandler) UpdateRole(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Некорректный ID пользователя.")
		return
	}

	var req UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Некорректный запрос.")
		return
	}

	if req.RoleID != models.RoleIDAdmin &&
		req.RoleID != models.RoleIDEmployee &&
		req.RoleID != models.RoleIDGuest {
		httperr.BadRequest(c, "invalid_role_id", "Некорректный ID роли.")
		return
	}

	res := h.db.Model(&models.User{}).
		Where("id = ?", id).
		Update("role_id", req.RoleID)
	if res.Error != nil {
		httperr.Internal(c, "role_update_failed", "Ошибка при обновлении роли.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "user_not_found", "Пользователь не найден.")
		return
	}

	targetID := uint(id)
	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "user_role_changed",
		Entity:   "user",
		EntityID: &targetID,
		Metadata: map[string]any{"role_id": req.RoleID},
	})

	var user models.User
	if err := h.db.Preload("Role").First(&user, id).Error; err != nil {
		httperr.Internal(c, "role_update_failed", "Ошибка при получении данных.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role.Name,
	})
}

// UpdateProfile edits another user's profile. The field set is fixed:
// migrations are authoritative for the schema, so there is no
// column-presence branching here.
func (h *AdminUsersHandler) UpdateProfile(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Некорректный ID пользователя.")
		return
	}

	var req AdminUpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Некорректный запрос.")
		return
	}

	if req.Username == "" || req.Email == "" {
		httperr.BadRequest(c, "missing_fields", "Имя пользователя и email обязательны для заполнения.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	if err := h.db.Model(&models.User{}).
		Where("(username = ? OR email = ?) AND id <> ?", req.Username, email, id).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "profile_update_failed", "Ошибка при обновлении профиля пользователя.")
		return
	}
	if count > 0 {
		httperr.Conflict(c, "user_exists", "Пользователь с таким именем или email уже существует.")
		return
	}

	res := h.db.Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"username": req.Username,
			"email":    email,
			"phone":    req.Phone,
			"address":  req.Address,
		})
	if res.Error != nil {
		httperr.Internal(c, "profile_update_failed", "Ошибка при обновлении профиля пользователя.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "user_not_found", "Пользователь не найден.")
		return
	}

	targetID := uint(id)
	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "user_profile_updated",
		Entity:   "user",
		EntityID: &targetID,
	})

	var user models.User
	if err := h.db.Preload("Role").First(&user, id).Error; err != nil {
		httperr.Internal(c, "profile_update_failed", "Ошибка при получении данных пользователя.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"phone":    user.Phone,
		"address":  user.Address,
		"role":     user.Role.Name,
	})
}
