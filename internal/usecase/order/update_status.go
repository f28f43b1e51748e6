package order

import (
	"context"

	"github.com/ecosept/booking-api/internal/audit"
	domain "github.com/ecosept/booking-api/internal/domain/order"
	"github.com/ecosept/booking-api/internal/httperr"
)

type UpdateOrderStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateOrderStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateOrderStatus {
	return &UpdateOrderStatus{
		repo:  repo,
		audit: audit,
	}
}

// Execute sets any of the four lifecycle values without walking the
// transition graph; the back office is trusted to correct misfiled
// statuses, including jumps the UI never offers.
func (uc *UpdateOrderStatus) Execute(
	ctx context.Context,
	actorID uint,
	orderID uint,
	status domain.Status,
) error {

	if !domain.IsValid(status) {
		return httperr.ErrBusiness("invalid_status")
	}

	rows, err := uc.repo.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		return err
	}
	if rows == 0 {
		return httperr.ErrBusiness("order_not_found")
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "order_status_changed",
		Entity:   "order",
		EntityID: &orderID,
		Metadata: map[string]any{"status": string(status)},
	})

	return nil
}
