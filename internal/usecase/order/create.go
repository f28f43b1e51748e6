package order

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ecosept/booking-api/internal/audit"
	"github.com/ecosept/booking-api/internal/clock"
	domain "github.com/ecosept/booking-api/internal/domain/order"
	"github.com/ecosept/booking-api/internal/dto"
	"github.com/ecosept/booking-api/internal/httperr"
	"github.com/ecosept/booking-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateOrderInput struct {
	UserID        uint
	ServiceID     uint
	ScheduledTime time.Time
	Address       string
}

// ======================================================
// USE CASE
// ======================================================

type CreateOrder struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateOrder {
	return &CreateOrder{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateOrder) Execute(
	ctx context.Context,
	in CreateOrderInput,
) (*dto.OrderRow, error) {

	if in.ServiceID == 0 || in.ScheduledTime.IsZero() {
		return nil, httperr.ErrBusiness("missing_fields")
	}

	if err := domain.ValidateFuture(in.ScheduledTime, clock.Now()); err != nil {
		return nil, err
	}

	var created *dto.OrderRow

	// User lookup, service lookup, price snapshot and insert are one
	// transaction so the service cannot vanish between check and write.
	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if _, err := tx.GetUserByID(ctx, in.UserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("user_not_found")
			}
			return err
		}

		service, err := tx.GetServiceByID(ctx, in.ServiceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("service_not_found")
			}
			return err
		}

		o := &models.Order{
			UserID:          in.UserID,
			ServiceID:       service.ID,
			Status:          string(domain.InitialStatus()),
			DiscountApplied: false,
			FinalPrice:      service.Price,
			Address:         in.Address,
			ScheduledTime:   in.ScheduledTime,
		}

		if err := tx.CreateOrder(ctx, o); err != nil {
			return err
		}

		created, err = tx.GetOrderRow(ctx, o.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "order_created",
		Entity:   "order",
		EntityID: &created.ID,
	})

	return created, nil
}
