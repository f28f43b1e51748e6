package order

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ecosept/booking-api/internal/audit"
	domain "github.com/ecosept/booking-api/internal/domain/order"
	"github.com/ecosept/booking-api/internal/dto"
	"github.com/ecosept/booking-api/internal/httperr"
)

type UpdateOrderInput struct {
	OrderID       uint
	ServiceID     uint
	ScheduledTime time.Time
	Address       string
}

type UpdateOrder struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateOrder {
	return &UpdateOrder{
		repo:  repo,
		audit: audit,
	}
}

// Execute reschedules an order and snapshots the (possibly new) service's
// current price. Back-office staff reschedule and backfill orders, so
// unlike creation there is no past-date check here.
func (uc *UpdateOrder) Execute(
	ctx context.Context,
	actorID uint,
	in UpdateOrderInput,
) (*dto.OrderRow, error) {

	if in.ServiceID == 0 || in.ScheduledTime.IsZero() {
		return nil, httperr.ErrBusiness("missing_fields")
	}

	var updated *dto.OrderRow

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		o, err := tx.GetOrderByID(ctx, in.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("order_not_found")
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

		o.ServiceID = service.ID
		o.ScheduledTime = in.ScheduledTime
		o.Address = in.Address
		o.FinalPrice = service.Price

		if err := tx.UpdateOrder(ctx, o); err != nil {
			return err
		}

		updated, err = tx.GetOrderRow(ctx, o.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "order_updated",
		Entity:   "order",
		EntityID: &updated.ID,
	})

	return updated, nil
}
