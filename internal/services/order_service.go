package services

import (
	"context"
	"errors"

	"shopmart/internal/common"
	"shopmart/internal/metrics"
	"shopmart/internal/models"
	"shopmart/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderService coordinates checkout. A checkout is one transaction over
// five steps: the guarded stock decrement, the order row, its detail
// rows, the payment row and the cart deletion. Any failure rolls the
// whole thing back; stock, orders, payments and carts move together or
// not at all.
type OrderService interface {
	Checkout(ctx context.Context, customerID uuid.UUID, shipping models.ShippingInfo) (*models.Order, error)
	GuestCheckout(ctx context.Context, productID uuid.UUID, quantity int, shipping models.ShippingInfo) (*models.Order, error)
	GetOrder(ctx context.Context, customerID, orderID uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, customerID uuid.UUID) ([]*models.Order, error)
}

type orderService struct {
	db            repositories.Database
	cartRepo      repositories.CartRepository
	inventoryRepo repositories.InventoryRepository
	orderRepo     repositories.OrderRepository
	metrics       *metrics.Metrics
}

func NewOrderService(db repositories.Database, cartRepo repositories.CartRepository,
	inventoryRepo repositories.InventoryRepository, orderRepo repositories.OrderRepository,
	m *metrics.Metrics) OrderService {
	return &orderService{
		db:            db,
		cartRepo:      cartRepo,
		inventoryRepo: inventoryRepo,
		orderRepo:     orderRepo,
		metrics:       m,
	}
}

func (s *orderService) Checkout(ctx context.Context, customerID uuid.UUID, shipping models.ShippingInfo) (*models.Order, error) {
	if err := validateShipping(shipping); err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrEmptyCart
		}
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, common.NewStorageError("checkout", 0, err)
	}
	defer tx.Rollback(ctx)

	lines, err := s.inventoryRepo.CheckoutLines(ctx, tx, cart.ID)
	if err != nil {
		return nil, common.NewStorageError("checkout", 0, err)
	}
	if len(lines) == 0 {
		return nil, common.ErrEmptyCart
	}

	order, err := s.placeOrder(ctx, tx, &customerID, lines, shipping)
	if err != nil {
		s.metrics.CheckoutsTotal.WithLabelValues(outcomeLabel(err)).Inc()
		return nil, err
	}

	// step 5: the purchased cart disappears with the commit
	if err := s.cartRepo.Delete(ctx, tx, cart.ID); err != nil {
		s.metrics.CheckoutsTotal.WithLabelValues("error").Inc()
		return nil, common.NewStorageError("checkout", 5, err)
	}

	if err := tx.Commit(ctx); err != nil {
		s.metrics.CheckoutsTotal.WithLabelValues("error").Inc()
		return nil, common.NewStorageError("checkout", 6, err)
	}

	s.metrics.CheckoutsTotal.WithLabelValues("ok").Inc()
	value, _ := order.Total.Float64()
	s.metrics.OrderValue.Observe(value)
	return order, nil
}

// GuestCheckout orders a single product with no account and no cart; the
// shipping snapshot is the only identity the order carries.
func (s *orderService) GuestCheckout(ctx context.Context, productID uuid.UUID, quantity int, shipping models.ShippingInfo) (*models.Order, error) {
	if err := common.ValidatePositiveQuantity(quantity, "quantity"); err != nil {
		return nil, err
	}
	if err := validateShipping(shipping); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, common.NewStorageError("guest checkout", 0, err)
	}
	defer tx.Rollback(ctx)

	line, err := s.inventoryRepo.ProductLine(ctx, tx, productID, quantity)
	if err != nil {
		return nil, err
	}

	order, err := s.placeOrder(ctx, tx, nil, []*models.CheckoutLine{line}, shipping)
	if err != nil {
		s.metrics.CheckoutsTotal.WithLabelValues(outcomeLabel(err)).Inc()
		return nil, err
	}

	// no cart to delete, so the commit is step 5 here
	if err := tx.Commit(ctx); err != nil {
		s.metrics.CheckoutsTotal.WithLabelValues("error").Inc()
		return nil, common.NewStorageError("guest checkout", 5, err)
	}

	s.metrics.CheckoutsTotal.WithLabelValues("ok").Inc()
	value, _ := order.Total.Float64()
	s.metrics.OrderValue.Observe(value)
	return order, nil
}

// placeOrder runs steps 1 through 4 on the caller's transaction:
// decrement stock, insert the order, its details and its payment. The
// caller commits.
func (s *orderService) placeOrder(ctx context.Context, tx repositories.Querier, customerID *uuid.UUID,
	lines []*models.CheckoutLine, shipping models.ShippingInfo) (*models.Order, error) {

	if err := s.inventoryRepo.VerifyStock(lines); err != nil {
		return nil, err
	}

	if err := s.inventoryRepo.DecrementStock(ctx, tx, lines); err != nil {
		if errors.Is(err, common.ErrInsufficientStock) {
			return nil, err
		}
		return nil, common.NewStorageError("checkout", 1, err)
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.UnitPrice().Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	order := &models.Order{
		ID:         uuid.New(),
		CustomerID: customerID,
		VendorID:   lines[0].VendorID,
		Total:      total,
		Status:     models.OrderStatusOrdered,
		Shipping:   shipping,
	}
	if err := s.orderRepo.InsertOrder(ctx, tx, order); err != nil {
		return nil, common.NewStorageError("checkout", 2, err)
	}

	details := make([]*models.OrderDetail, 0, len(lines))
	for _, line := range lines {
		details = append(details, &models.OrderDetail{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: line.ProductID,
			UnitPrice: line.UnitPrice(),
			Quantity:  line.Quantity,
		})
	}
	if err := s.orderRepo.InsertDetails(ctx, tx, details); err != nil {
		return nil, common.NewStorageError("checkout", 3, err)
	}
	order.Details = details

	payment := &models.Payment{
		ID:      uuid.New(),
		OrderID: order.ID,
		Amount:  total,
	}
	if err := s.orderRepo.InsertPayment(ctx, tx, payment); err != nil {
		return nil, common.NewStorageError("checkout", 4, err)
	}

	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, customerID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID == nil || *order.CustomerID != customerID {
		return nil, common.ErrForbidden
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, customerID uuid.UUID) ([]*models.Order, error) {
	return s.orderRepo.ListByCustomer(ctx, customerID)
}

func validateShipping(shipping models.ShippingInfo) error {
	if err := common.ValidateRequiredString(shipping.Name, "name"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(shipping.AddressLine1, "address_line1"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(shipping.City, "city"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(shipping.PostalCode, "postal_code"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(shipping.Country, "country"); err != nil {
		return err
	}
	return common.ValidateRequiredString(shipping.Email, "email")
}

func outcomeLabel(err error) string {
	if errors.Is(err, common.ErrInsufficientStock) {
		return "insufficient_stock"
	}
	return "error"
}
