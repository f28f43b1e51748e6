package order

import (
	"context"
	"time"

	"github.com/ecosept/booking-api/internal/dto"
	"github.com/ecosept/booking-api/internal/models"
)

// BusyTimesFilter narrows the informational busy-times listing. Zero
// values mean "no filter".
type BusyTimesFilter struct {
	ServiceID uint
	DateFrom  time.Time
	DateTo    time.Time
}

type Repository interface {
	// -------- Lookups --------
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetServiceByID(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Order (create / read) --------
	CreateOrder(
		ctx context.Context,
		o *models.Order,
	) error

	GetOrderByID(
		ctx context.Context,
		id uint,
	) (*models.Order, error)

	GetOrderForUser(
		ctx context.Context,
		orderID uint,
		userID uint,
	) (*models.Order, error)

	GetOrderRow(
		ctx context.Context,
		id uint,
	) (*dto.OrderRow, error)

	// -------- Order (listings) --------
	ListAllOrders(
		ctx context.Context,
	) ([]dto.OrderRow, error)

	ListOrdersForUser(
		ctx context.Context,
		userID uint,
	) ([]dto.OrderRow, error)

	ListBusySlots(
		ctx context.Context,
		filter BusyTimesFilter,
	) ([]dto.BusySlot, error)

	// -------- Order (mutation) --------
	UpdateOrder(
		ctx context.Context,
		o *models.Order,
	) error

	UpdateOrderStatus(
		ctx context.Context,
		orderID uint,
		status Status,
	) (rowsAffected int64, err error)

	// Transaction runs fn against a repository bound to one store
	// transaction, committing when fn returns nil.
	Transaction(
		ctx context.Context,
		fn func(Repository) error,
	) error
}
