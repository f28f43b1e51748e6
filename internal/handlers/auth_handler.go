package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ecosept/booking-api/internal/config"
	"github.com/ecosept/booking-api/internal/httperr"
	"github.com/ecosept/booking-api/internal/models"
	"github.com/ecosept/booking-api/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	RoleID   uint   `json:"role_id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PublicUser is the user shape returned by auth and profile endpoints,
// with the role name joined in.
type PublicUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Role     string `json:"role"`
	RoleID   uint   `json:"role_id"`
}

func publicUser(u *models.User) PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Phone:    u.Phone,
		Address:  u.Address,
		Role:     u.Role.Name,
		RoleID:   u.RoleID,
	}
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Некорректный запрос.")
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		httperr.BadRequest(c, "missing_fields", "Необходимо заполнить все обязательные поля.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailValid(email) {
		httperr.BadRequest(c, "invalid_email", "Некорректный email.")
		return
	}

	var count int64
	if err := h.db.Model(&models.User{}).
		Where("username = ? OR email = ?", req.Username, email).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "registration_failed", "Ошибка при регистрации пользователя.")
		return
	}
	if count > 0 {
		httperr.Conflict(c, "user_exists", "Пользователь с таким именем или email уже существует.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Ошибка при регистрации пользователя.")
		return
	}

	roleID := req.RoleID
	if roleID == 0 {
		roleID = models.RoleIDGuest
	}

	user := models.User{
		Username:     req.Username,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Address:      req.Address,
		RoleID:       roleID,
	}

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_create_user", "Ошибка при регистрации пользователя.")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Ошибка при регистрации пользователя.")
		return
	}

	if err := h.db.Preload("Role").First(&user, user.ID).Error; err != nil {
		httperr.Internal(c, "failed_to_load_user", "Ошибка при регистрации пользователя.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  publicUser(&user),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Некорректный запрос.")
		return
	}

	if req.Email == "" || req.Password == "" {
		httperr.BadRequest(c, "missing_fields", "Email и пароль обязательны.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Preload("Role").
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			// Same answer as a wrong password: never reveal whether the
			// email exists.
			httperr.BadRequest(c, "invalid_credentials", "Неверный email или пароль.")
			return
		}
		httperr.Internal(c, "login_failed", "Ошибка при входе в систему.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.BadRequest(c, "invalid_credentials", "Неверный email или пароль.")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Ошибка при входе в систему.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  publicUser(&user),
	})
}

// --------- JWT ---------

// Both register and login issue a 24h token. The predecessor system set an
// expiry on registration only; that asymmetry was an oversight.
func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub": user.ID,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
