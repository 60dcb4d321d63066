package services

import (
	"context"

	"shopmart/internal/common"
	"shopmart/internal/models"
	"shopmart/internal/repositories"

	"github.com/google/uuid"
)

// CartView is a cart together with its lines, the shape handlers return.
type CartView struct {
	Cart  *models.Cart       `json:"cart"`
	Lines []*models.CartLine `json:"lines"`
}

type CartService interface {
	AddToCart(ctx context.Context, customerID, productID uuid.UUID, quantity int) error
	ModifyCart(ctx context.Context, customerID, productID uuid.UUID, quantity int) error
	GetCart(ctx context.Context, customerID uuid.UUID) (*CartView, error)
}

type cartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) CartService {
	return &cartService{cartRepo: cartRepo, productRepo: productRepo}
}

// AddToCart resolves the customer's single cart, creating it on first
// use, and merges the product into it. Repeat adds accumulate quantity
// on the existing line.
func (s *cartService) AddToCart(ctx context.Context, customerID, productID uuid.UUID, quantity int) error {
	if err := common.ValidatePositiveQuantity(quantity, "quantity"); err != nil {
		return err
	}
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return err
	}

	cart, err := s.cartRepo.FindOrCreate(ctx, customerID)
	if err != nil {
		return err
	}
	return s.cartRepo.AddOrIncrement(ctx, cart.ID, productID, quantity)
}

// ModifyCart replaces a line's quantity outright; zero removes the line.
// Stock is not checked here, only checkout enforces availability.
func (s *cartService) ModifyCart(ctx context.Context, customerID, productID uuid.UUID, quantity int) error {
	if quantity < 0 {
		return &common.ValidationError{Field: "quantity", Reason: "must not be negative"}
	}

	cart, err := s.cartRepo.GetByCustomer(ctx, customerID)
	if err != nil {
		return err
	}
	return s.cartRepo.SetQuantityOrRemove(ctx, cart.ID, productID, quantity)
}

func (s *cartService) GetCart(ctx context.Context, customerID uuid.UUID) (*CartView, error) {
	cart, err := s.cartRepo.GetByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	lines, err := s.cartRepo.Lines(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	return &CartView{Cart: cart, Lines: lines}, nil
}
