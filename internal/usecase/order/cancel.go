package order

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ecosept/booking-api/internal/audit"
	domain "github.com/ecosept/booking-api/internal/domain/order"
	"github.com/ecosept/booking-api/internal/httperr"
	"github.com/ecosept/booking-api/internal/models"
)

type CancelOwnOrder struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelOwnOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelOwnOrder {
	return &CancelOwnOrder{
		repo:  repo,
		audit: audit,
	}
}

// Execute is the self-service cancellation path. Unlike the back-office
// status endpoint it enforces the lifecycle: only pending or confirmed
// orders cancel, and only for their owner.
func (uc *CancelOwnOrder) Execute(
	ctx context.Context,
	userID uint,
	orderID uint,
) (*models.Order, error) {

	o, err := uc.repo.GetOrderForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("order_not_found")
		}
		return nil, err
	}

	if err := domain.CanCancel(domain.Status(o.Status)); err != nil {
		return nil, err
	}

	o.Status = string(domain.StatusCancelled)
	if err := uc.repo.UpdateOrder(ctx, o); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "order_cancelled",
		Entity:   "order",
		EntityID: &o.ID,
	})

	return o, nil
}
