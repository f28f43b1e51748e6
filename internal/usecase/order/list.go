package order

import (
	"context"

	domain "github.com/ecosept/booking-api/internal/domain/order"
	"github.com/ecosept/booking-api/internal/domain/role"
	"github.com/ecosept/booking-api/internal/dto"
)

type ListOrders struct {
	repo domain.Repository
}

func NewListOrders(repo domain.Repository) *ListOrders {
	return &ListOrders{repo: repo}
}

// Execute returns every order for back-office roles and only the caller's
// own orders otherwise, newest first. The branch is a server-side
// visibility rule, not a query parameter.
func (uc *ListOrders) Execute(
	ctx context.Context,
	userID uint,
	callerRole role.Canonical,
) ([]dto.OrderRow, error) {

	if callerRole.In(role.Admin, role.Employee) {
		return uc.repo.ListAllOrders(ctx)
	}
	return uc.repo.ListOrdersForUser(ctx, userID)
}
