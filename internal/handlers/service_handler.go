package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ecosept/booking-api/internal/audit"
	"github.com/ecosept/booking-api/internal/httperr"
	"github.com/ecosept/booking-api/internal/middleware"
	"github.com/ecosept/booking-api/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, audit *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, audit: audit}
}

// --------- Requests ---------

type ServiceRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Duration    string  `json:"duration"`
	CategoryID  uint    `json:"category_id"`
}

// ServiceRow is a service listing row with the category name joined in.
type ServiceRow struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Duration    string  `json:"duration"`
	Category    string  `json:"category"`
	CategoryID  uint    `json:"category_id"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	var rows []ServiceRow
	if err := h.db.
		Table("services").
		Select(`services.id, services.title, services.description, services.price,
			services.duration, categories.name AS category, categories.id AS category_id`).
		Joins("JOIN categories ON services.category_id = categories.id").
		Order("services.id ASC").
		Scan(&rows).Error; err != nil {
		httperr.Internal(c, "services_list_failed", "Ошибка при получении услуг.")
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Некорректный запрос.")
		return
	}

	if req.Title == "" || req.Description == "" || req.Price == 0 || req.Duration == "" || req.CategoryID == 0 {
		httperr.BadRequest(c, "missing_fields", "Все поля обязательны.")
		return
	}

	service := models.Service{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
		CategoryID:  req.CategoryID,
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "service_create_failed", "Ошибка при добавлении услуги.")
		return
	}

	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Некорректный ID услуги.")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Некорректный запрос.")
		return
	}

	if req.Title == "" || req.Description == "" || req.Price == 0 || req.Duration == "" || req.CategoryID == 0 {
		httperr.BadRequest(c, "missing_fields", "Все поля обязательны.")
		return
	}

	var service models.Service
	if err := h.db.First(&service, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "service_not_found", "Услуга не найдена.")
			return
		}
		httperr.Internal(c, "service_update_failed", "Ошибка при обновлении услуги.")
		return
	}

	service.Title = req.Title
	service.Description = req.Description
	service.Price = req.Price
	service.Duration = req.Duration
	service.CategoryID = req.CategoryID

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "service_update_failed", "Ошибка при обновлении услуги.")
		return
	}

	c.JSON(http.StatusOK, service)
}

// Delete removes a service unless orders still reference it. The count
// check and the delete run in one transaction so an order created in
// between cannot dangle.
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Некорректный ID услуги.")
		return
	}

	actorID := c.MustGet(middleware.ContextUserID).(uint)

	var orderCount int64
	txErr := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Order{}).
			Where("service_id = ?", id).
			Count(&orderCount).Error; err != nil {
			return err
		}
		if orderCount > 0 {
			return httperr.ErrBusiness("service_in_use")
		}

		res := tx.Delete(&models.Service{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("service_not_found")
		}
		return nil
	})

	switch {
	case httperr.IsBusiness(txErr, "service_in_use"):
		c.JSON(http.StatusBadRequest, gin.H{
			"error_code": "service_in_use",
			"message":    "Невозможно удалить услугу: на неё есть заказы.",
			"count":      orderCount,
		})
		return
	case httperr.IsBusiness(txErr, "service_not_found"):
		httperr.NotFound(c, "service_not_found", "Услуга не найдена.")
		return
	case txErr != nil:
		httperr.Internal(c, "service_delete_failed", "Ошибка при удалении услуги.")
		return
	}

	serviceID := uint(id)
	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "service_deleted",
		Entity:   "service",
		EntityID: &serviceID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Услуга удалена", "id": id})
}
