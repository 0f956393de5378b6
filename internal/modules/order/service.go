package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tmwanza/storefront-backend/internal/apperr"
	"github.com/tmwanza/storefront-backend/internal/modules/cart"
	"github.com/tmwanza/storefront-backend/internal/modules/identity"
)

// Service defines the order engine business logic.
type Service interface {
	// Create validates the cart lines against current stock and prices,
	// then atomically decrements stock, persists the order as pending,
	// and clears the caller's cart.
	Create(ctx context.Context, caller identity.Caller, req CreateRequest) (*Order, error)

	// Get retrieves one order; callers see their own, admins see any.
	Get(ctx context.Context, caller identity.Caller, id uint64) (*Order, error)

	// ListMine returns the caller's orders.
	ListMine(ctx context.Context, caller identity.Caller) ([]*Order, error)

	// ListAll returns every order. Admin only.
	ListAll(ctx context.Context, caller identity.Caller) ([]*Order, error)

	// UpdateStatus advances an order through the lifecycle graph. Admin only.
	UpdateStatus(ctx context.Context, caller identity.Caller, id uint64, req StatusRequest) (*Order, error)
}

type service struct{ repo Repository }

// NewService creates a new order service.
func NewService(repo Repository) Service { return &service{repo: repo} }

// validTransitions defines the allowed status state machine. Delivered and
// cancelled are terminal; nothing moves backward.
var validTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// priceTolerance is how far the caller-submitted total may drift from the
// recomputed total before the order is rejected. Covers rounding on the
// client, not price changes.
var priceTolerance = decimal.NewFromFloat(0.01)

func (s *service) Create(ctx context.Context, caller identity.Caller, req CreateRequest) (*Order, error) {
	if !caller.Authenticated() {
		return nil, apperr.Unauthorized("sign in to place an order")
	}
	if len(req.Items) == 0 {
		return nil, apperr.InvalidArgument("order must contain at least one item")
	}

	// Merge duplicate lines so the stock check sees the real demand.
	quantities := make(map[uint64]uint64, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, apperr.InvalidArgument("quantity must be at least 1 for product %d", item.ProductID)
		}
		quantities[item.ProductID] += item.Quantity
	}
	items := make([]cart.Item, 0, len(quantities))
	for _, item := range req.Items {
		if qty, ok := quantities[item.ProductID]; ok {
			items = append(items, cart.Item{ProductID: item.ProductID, Quantity: qty})
			delete(quantities, item.ProductID)
		}
	}

	// Re-price server-side; the cart holds no price memory.
	total := decimal.Zero
	for _, item := range items {
		price, err := s.repo.GetProductPrice(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if req.Total.Sub(total).Abs().GreaterThan(priceTolerance) {
		return nil, apperr.PriceMismatch("submitted total %s does not match current total %s", req.Total, total)
	}

	o := &Order{
		UserID:    caller.Principal,
		Items:     items,
		Total:     total,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) Get(ctx context.Context, caller identity.Caller, id uint64) (*Order, error) {
	o, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.Role.IsAdmin() && o.UserID != caller.Principal {
		return nil, apperr.Unauthorized("order %d does not belong to the caller", id)
	}
	return o, nil
}

func (s *service) ListMine(ctx context.Context, caller identity.Caller) ([]*Order, error) {
	if !caller.Authenticated() {
		return nil, apperr.Unauthorized("sign in to view your orders")
	}
	return s.repo.ListByUser(ctx, caller.Principal)
}

func (s *service) ListAll(ctx context.Context, caller identity.Caller) ([]*Order, error) {
	if !caller.Role.IsAdmin() {
		return nil, apperr.Unauthorized("only admins may list all orders")
	}
	return s.repo.ListAll(ctx)
}

func (s *service) UpdateStatus(ctx context.Context, caller identity.Caller, id uint64, req StatusRequest) (*Order, error) {
	if !caller.Role.IsAdmin() {
		return nil, apperr.Unauthorized("only admins may update order status")
	}
	next, ok := ParseStatus(req.Status)
	if !ok {
		return nil, apperr.InvalidArgument("unknown status %q", req.Status)
	}
	o, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !transitionAllowed(o.Status, next) {
		return nil, apperr.InvalidTransition("cannot move order %d from %s to %s", id, o.Status, next)
	}
	// Compare-and-swap on the source status: a concurrent transition that
	// already moved the order makes this request the loser.
	if err := s.repo.UpdateStatus(ctx, id, o.Status, next); err != nil {
		return nil, err
	}
	o.Status = next
	return o, nil
}

func transitionAllowed(from, to Status) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
