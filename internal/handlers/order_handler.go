package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/ecosept/booking-api/internal/domain/order"
	"github.com/ecosept/booking-api/internal/domain/role"
	"github.com/ecosept/booking-api/internal/httperr"
	"github.com/ecosept/booking-api/internal/middleware"
	"github.com/ecosept/booking-api/internal/models"
	ucOrder "github.com/ecosept/booking-api/internal/usecase/order"
)

// ======================================================
// HANDLER
// ======================================================

type OrderHandler struct {
	db *gorm.DB

	createUC    *ucOrder.CreateOrder
	listUC      *ucOrder.ListOrders
	updateUC    *ucOrder.UpdateOrder
	statusUC    *ucOrder.UpdateOrderStatus
	cancelUC    *ucOrder.CancelOwnOrder
	busyTimesUC *ucOrder.ListBusyTimes
}

func NewOrderHandler(
	db *gorm.DB,
	createUC *ucOrder.CreateOrder,
	listUC *ucOrder.ListOrders,
	updateUC *ucOrder.UpdateOrder,
	statusUC *ucOrder.UpdateOrderStatus,
	cancelUC *ucOrder.CancelOwnOrder,
	busyTimesUC *ucOrder.ListBusyTimes,
) *OrderHandler {
	return &OrderHandler{
		db:          db,
		createUC:    createUC,
		listUC:      listUC,
		updateUC:    updateUC,
		statusUC:    statusUC,
		cancelUC:    cancelUC,
		busyTimesUC: busyTimesUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// CreateOrderRequest tolerates both snake_case and camelCase field names;
// historical clients send either.
type CreateOrderRequest struct {
	ServiceID       uint   `json:"service_id"`
	ServiceIDCamel  uint   `json:"serviceId"`
	ScheduledTime   string `json:"scheduled_time"`
	ScheduledTimeCC string `json:"scheduledTime"`
	Address         string `json:"address"`
}

type UpdateOrderRequest struct {
	ServiceID     uint   `json:"service_id"`
	ScheduledTime string `json:"scheduled_time"`
	Address       string `json:"address"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type CheckAvailabilityRequest struct {
	ServiceID     uint   `json:"service_id"`
	ScheduledTime string `json:"scheduled_time"`
}

// ======================================================
// CREATE
// ======================================================

func (h *OrderHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Некорректный запрос.")
		return
	}

	serviceID := req.ServiceID
	if serviceID == 0 {
		serviceID = req.ServiceIDCamel
	}
	scheduledStr := req.ScheduledTime
	if scheduledStr == "" {
		scheduledStr = req.ScheduledTimeCC
	}

	if serviceID == 0 || scheduledStr == "" {
		httperr.BadRequest(c, "missing_fields", "Все поля обязательны.")
		return
	}

	scheduled, err := parseScheduledTime(scheduledStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_datetime", "Некорректная дата или время.")
		return
	}

	created, err := h.createUC.Execute(c.Request.Context(), ucOrder.CreateOrderInput{
		UserID:        userID,
		ServiceID:     serviceID,
		ScheduledTime: scheduled,
		Address:       req.Address,
	})
	if err != nil {
		switch httperr.BusinessCode(err) {
		case "missing_fields":
			httperr.BadRequest(c, "missing_fields", "Все поля обязательны.")
		case "past_date":
			httperr.BadRequest(c, "past_date", "Невозможно создать заказ на прошедшую дату. Пожалуйста, выберите сегодняшний или будущий день.")
		case "past_time":
			httperr.BadRequest(c, "past_time", "Невозможно создать заказ на прошедшее время. Пожалуйста, выберите будущее время.")
		case "user_not_found":
			httperr.NotFound(c, "user_not_found", "Пользователь не найден.")
		case "service_not_found":
			httperr.NotFound(c, "service_not_found", "Услуга не найдена.")
		default:
			httperr.Internal(c, "order_create_failed", "Ошибка при создании заказа.")
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ======================================================
// LIST
// ======================================================

func (h *OrderHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.Preload("Role").First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Пользователь не найден.")
		return
	}

	callerRole := role.Resolve(user.RoleID, user.Role.Name)

	orders, err := h.listUC.Execute(c.Request.Context(), userID, callerRole)
	if err != nil {
		httperr.Internal(c, "orders_list_failed", "Ошибка при получении заказов.")
		return
	}

	c.JSON(http.StatusOK, orders)
}

// ======================================================
// UPDATE (BACK OFFICE)
// ======================================================

func (h *OrderHandler) Update(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Некорректный ID заказа.")
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Некорректный запрос.")
		return
	}

	scheduled, err := parseScheduledTime(req.ScheduledTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_datetime", "Некорректная дата или время.")
		return
	}

	updated, err := h.updateUC.Execute(c.Request.Context(), actorID, ucOrder.UpdateOrderInput{
		OrderID:       uint(orderID),
		ServiceID:     req.ServiceID,
		ScheduledTime: scheduled,
		Address:       req.Address,
	})
	if err != nil {
		switch httperr.BusinessCode(err) {
		case "missing_fields":
			httperr.BadRequest(c, "missing_fields", "Все поля обязательны.")
		case "order_not_found":
			httperr.NotFound(c, "order_not_found", "Заказ не найден.")
		case "service_not_found":
			httperr.NotFound(c, "service_not_found", "Услуга не найдена.")
		default:
			httperr.Internal(c, "order_update_failed", "Ошибка при обновлении заказа.")
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// ======================================================
// STATUS (BACK OFFICE)
// ======================================================

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Некорректный ID заказа.")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Некорректный запрос.")
		return
	}

	err = h.statusUC.Execute(c.Request.Context(), actorID, uint(orderID), domain.Status(req.Status))
	if err != nil {
		switch httperr.BusinessCode(err) {
		case "invalid_status":
			httperr.BadRequest(c, "invalid_status", "Некорректный статус.")
		case "order_not_found":
			httperr.NotFound(c, "order_not_found", "Заказ не найден.")
		default:
			httperr.Internal(c, "status_update_failed", "Ошибка при обновлении статуса.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Статус заказа обновлен", "status": req.Status})
}

// ======================================================
// CANCEL (OWNER)
// ======================================================

func (h *OrderHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Некорректный ID заказа.")
		return
	}

	o, err := h.cancelUC.Execute(c.Request.Context(), userID, uint(orderID))
	if err != nil {
		switch httperr.BusinessCode(err) {
		case "order_not_found":
			httperr.NotFound(c, "order_not_found", "Заказ не найден.")
		case "invalid_state":
			httperr.BadRequest(c, "invalid_state", "Заказ не может быть отменен.")
		default:
			httperr.Internal(c, "order_cancel_failed", "Ошибка при отмене заказа.")
		}
		return
	}

	c.JSON(http.StatusOK, o)
}

// ======================================================
// AVAILABILITY / BUSY TIMES (PUBLIC)
// ======================================================

func (h *OrderHandler) CheckAvailability(c *gin.Context) {
	var req CheckAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Некорректный запрос.")
		return
	}

	if req.ServiceID == 0 || req.ScheduledTime == "" {
		httperr.BadRequest(c, "missing_fields", "Необходимо указать услугу и дату.")
		return
	}

	scheduled, err := parseScheduledTime(req.ScheduledTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_datetime", "Некорректная дата или время.")
		return
	}

	c.JSON(http.StatusOK, ucOrder.CheckAvailability(scheduled))
}

func (h *OrderHandler) BusyTimes(c *gin.Context) {
	var filter domain.BusyTimesFilter

	if s := c.Query("service_id"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil {
			httperr.BadRequest(c, "invalid_service_id", "Некорректный ID услуги.")
			return
		}
		filter.ServiceID = uint(id)
	}

	if s := c.Query("date_from"); s != "" {
		t, err := parseScheduledTime(s)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Некорректная дата.")
			return
		}
		filter.DateFrom = t
	}

	if s := c.Query("date_to"); s != "" {
		t, err := parseScheduledTime(s)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Некорректная дата.")
			return
		}
		filter.DateTo = t
	}

	result, err := h.busyTimesUC.Execute(c.Request.Context(), filter)
	if err != nil {
		httperr.Internal(c, "busy_times_failed", "Ошибка при получении занятых дат.")
		return
	}

	c.JSON(http.StatusOK, result)
}
