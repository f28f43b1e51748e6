package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ecosept/booking-api/internal/httperr"
	"github.com/ecosept/booking-api/internal/middleware"
	"github.com/ecosept/booking-api/internal/models"
)

type FeedbackHandler struct {
	db *gorm.DB
}

func NewFeedbackHandler(db *gorm.DB) *FeedbackHandler {
	return &FeedbackHandler{db: db}
}

// --------- Requests ---------

type SubmitFeedbackRequest struct {
	OrderID uint   `json:"order_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// FeedbackRow is a public feedback listing row. ServiceTitle is empty for
// general reviews not tied to an order.
type FeedbackRow struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"user_id"`
	OrderID      uint      `json:"order_id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
	Username     string    `json:"username"`
	ServiceTitle string    `json:"service_title"`
}

// --------- Handlers ---------

// Submit stores a rating. An order-linked feedback (order_id != 0) must
// reference the caller's own order and be the first feedback for it; a
// general review (order_id == 0) skips both checks, so a user may leave
// any number of them.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Некорректный запрос.")
		return
	}

	if req.Rating < 1 || req.Rating > 5 {
		httperr.BadRequest(c, "invalid_rating", "Некорректные данные отзыва.")
		return
	}

	fb := models.Feedback{
		UserID:  userID,
		OrderID: req.OrderID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	if req.OrderID == 0 {
		if err := h.db.Create(&fb).Error; err != nil {
			httperr.Internal(c, "feedback_failed", "Ошибка при добавлении отзыва.")
			return
		}
		c.JSON(http.StatusCreated, fb)
		return
	}

	// Ownership check, uniqueness check and insert are one transaction.
	txErr := h.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Where("id = ? AND user_id = ?", req.OrderID, userID).
			First(&order).Error; err != nil {
			return httperr.ErrBusiness("order_not_found")
		}

		var count int64
		if err := tx.Model(&models.Feedback{}).
			Where("order_id = ?", req.OrderID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness("feedback_exists")
		}

		return tx.Create(&fb).Error
	})

	switch {
	case httperr.IsBusiness(txErr, "order_not_found"):
		httperr.NotFound(c, "order_not_found", "Заказ не найден или не принадлежит пользователю.")
		return
	case httperr.IsBusiness(txErr, "feedback_exists"):
		httperr.Conflict(c, "feedback_exists", "Отзыв для данного заказа уже существует.")
		return
	case txErr != nil:
		httperr.Internal(c, "feedback_failed", "Ошибка при добавлении отзыва.")
		return
	}

	c.JSON(http.StatusCreated, fb)
}

// List is public. LEFT JOINs keep general reviews (order_id = 0) visible;
// their service title is simply empty.
func (h *FeedbackHandler) List(c *gin.Context) {
	var rows []FeedbackRow
	if err := h.db.
		Table("feedback").
		Select(`feedback.id, feedback.user_id, feedback.order_id, feedback.rating,
			feedback.comment, feedback.created_at,
			users.username, services.title AS service_title`).
		Joins("JOIN users ON feedback.user_id = users.id").
		Joins("LEFT JOIN orders ON feedback.order_id = orders.id").
		Joins("LEFT JOIN services ON orders.service_id = services.id").
		Order("feedback.created_at DESC").
		Scan(&rows).Error; err != nil {
		httperr.Internal(c, "feedback_list_failed", "Ошибка при получении отзывов.")
		return
	}

	c.JSON(http.StatusOK, rows)
}
