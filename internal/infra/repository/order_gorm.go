package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/ecosept/booking-api/internal/domain/order"
	"github.com/ecosept/booking-api/internal/dto"
	"github.com/ecosept/booking-api/internal/models"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

const orderRowSelect = `orders.id, orders.user_id, orders.service_id, orders.status,
	orders.discount_applied, orders.final_price, orders.address,
	orders.scheduled_time, orders.created_at,
	services.title AS service_title, services.description AS service_description,
	services.duration`

// --------------------------------------------------
// Lookups
// --------------------------------------------------

func (r *OrderGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *OrderGormRepository) GetServiceByID(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Order (create / read)
// --------------------------------------------------

func (r *OrderGormRepository) CreateOrder(
	ctx context.Context,
	o *models.Order,
) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OrderGormRepository) GetOrderByID(
	ctx context.Context,
	id uint,
) (*models.Order, error) {

	var o models.Order
	if err := r.db.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderGormRepository) GetOrderForUser(
	ctx context.Context,
	orderID uint,
	userID uint,
) (*models.Order, error) {

	var o models.Order
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderGormRepository) GetOrderRow(
	ctx context.Context,
	id uint,
) (*dto.OrderRow, error) {

	var row dto.OrderRow
	err := r.db.WithContext(ctx).
		Table("orders").
		Select(orderRowSelect).
		Joins("JOIN services ON orders.service_id = services.id").
		Where("orders.id = ?", id).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// --------------------------------------------------
// Order (listings)
// --------------------------------------------------

func (r *OrderGormRepository) ListAllOrders(
	ctx context.Context,
) ([]dto.OrderRow, error) {

	var rows []dto.OrderRow
	err := r.db.WithContext(ctx).
		Table("orders").
		Select(orderRowSelect + `,
			users.username AS user_name, users.email AS user_email`).
		Joins("JOIN services ON orders.service_id = services.id").
		Joins("JOIN users ON orders.user_id = users.id").
		Order("orders.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *OrderGormRepository) ListOrdersForUser(
	ctx context.Context,
	userID uint,
) ([]dto.OrderRow, error) {

	var rows []dto.OrderRow
	err := r.db.WithContext(ctx).
		Table("orders").
		Select(orderRowSelect).
		Joins("JOIN services ON orders.service_id = services.id").
		Where("orders.user_id = ?", userID).
		Order("orders.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *OrderGormRepository) ListBusySlots(
	ctx context.Context,
	filter domain.BusyTimesFilter,
) ([]dto.BusySlot, error) {

	q := r.db.WithContext(ctx).
		Table("orders").
		Select(`orders.scheduled_time, services.title AS service_name,
			services.duration, orders.status`).
		Joins("JOIN services ON orders.service_id = services.id").
		Where("orders.status <> ?", string(domain.StatusCancelled))

	if filter.ServiceID != 0 {
		q = q.Where("orders.service_id = ?", filter.ServiceID)
	}
	if !filter.DateFrom.IsZero() {
		q = q.Where("orders.scheduled_time >= ?", filter.DateFrom)
	}
	if !filter.DateTo.IsZero() {
		q = q.Where("orders.scheduled_time <= ?", filter.DateTo)
	}

	var slots []dto.BusySlot
	if err := q.Order("orders.scheduled_time ASC").Scan(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// --------------------------------------------------
// Order (mutation)
// --------------------------------------------------

func (r *OrderGormRepository) UpdateOrder(
	ctx context.Context,
	o *models.Order,
) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *OrderGormRepository) UpdateOrderStatus(
	ctx context.Context,
	orderID uint,
	status domain.Status,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", string(status))
	return res.RowsAffected, res.Error
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *OrderGormRepository) Transaction(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&OrderGormRepository{db: tx})
	})
}

// Compile-time check
var _ domain.Repository = (*OrderGormRepository)(nil)
