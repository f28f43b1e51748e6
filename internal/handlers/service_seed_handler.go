package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecosept/booking-api/internal/httperr"
	"github.com/ecosept/booking-api/internal/models"
)

// The fixed default catalog. Category ids follow the seed order of the
// categories migration.
var defaultServices = []models.Service{
	{Title: "Откачка септиков", Description: "Профессиональная откачка септиков и выгребных ям для частных домов", Price: 2000, Duration: "30-60 минут", CategoryID: 1},
	{Title: "Обслуживание предприятий", Description: "Комплексное обслуживание промышленных предприятий и производств", Price: 5000, Duration: "1-2 часа", CategoryID: 2},
	{Title: "Откачка отстойников", Description: "Очистка и откачка промышленных отстойников любого объема", Price: 15000, Duration: "2-4 часа", CategoryID: 2},
	{Title: "Утилизация отходов", Description: "Безопасная утилизация жидких бытовых отходов с соблюдением экологических норм", Price: 3000, Duration: "1-2 часа", CategoryID: 3},
	{Title: "Регулярное обслуживание", Description: "Плановая откачка по графику с гибкой системой скидок", Price: 1800, Duration: "30-60 минут", CategoryID: 4},
	{Title: "Экспертиза и консультация", Description: "Профессиональная оценка состояния септиков и канализационных систем", Price: 1500, Duration: "1 час", CategoryID: 5},
	{Title: "Очистка канализации", Description: "Прочистка и промывка канализационных систем", Price: 2500, Duration: "1-3 часа", CategoryID: 1},
	{Title: "Аварийный выезд", Description: "Срочный выезд в случае переполнения или аварийной ситуации", Price: 3500, Duration: "30-60 минут", CategoryID: 6},
}

// InitServices bulk-inserts the default catalog. Idempotent: it refuses to
// run when any service already exists.
func (h *ServiceHandler) InitServices(c *gin.Context) {
	var count int64
	if err := h.db.Model(&models.Service{}).Count(&count).Error; err != nil {
		httperr.Internal(c, "services_check_failed", "Ошибка при проверке услуг.")
		return
	}
	if count > 0 {
		httperr.Conflict(c, "services_exist", "Услуги уже существуют в системе.")
		return
	}

	services := make([]models.Service, len(defaultServices))
	copy(services, defaultServices)

	if err := h.db.Create(&services).Error; err != nil {
		httperr.Internal(c, "services_seed_failed", "Ошибка при добавлении услуг.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Услуги успешно добавлены",
		"count":   len(services),
	})
}

// RestoreServices re-seeds the catalog after data loss. Same no-op rule as
// InitServices, but it additionally refuses to run before categories exist
// because the seed rows reference them by id.
func (h *ServiceHandler) RestoreServices(c *gin.Context) {
	var count int64
	if err := h.db.Model(&models.Service{}).Count(&count).Error; err != nil {
		httperr.Internal(c, "services_check_failed", "Ошибка при проверке услуг.")
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error_code": "services_exist",
			"message":    "В системе уже есть услуги.",
			"count":      count,
		})
		return
	}

	var catCount int64
	if err := h.db.Model(&models.Category{}).Count(&catCount).Error; err != nil {
		httperr.Internal(c, "categories_check_failed", "Ошибка при проверке категорий.")
		return
	}
	if catCount == 0 {
		httperr.Conflict(c, "categories_missing", "Сначала необходимо добавить категории услуг.")
		return
	}

	services := make([]models.Service, len(defaultServices))
	copy(services, defaultServices)

	if err := h.db.Create(&services).Error; err != nil {
		httperr.Internal(c, "services_seed_failed", "Ошибка при добавлении услуг.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Услуги успешно восстановлены",
		"count":   len(services),
	})
}
