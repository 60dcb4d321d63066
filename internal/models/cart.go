package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is the single cart a customer owns; uniqueness on customer_id is
// enforced by the storage layer so two racing first-adds collapse into one.
type Cart struct {
	ID         uuid.UUID `json:"id" db:"cart_id"`
	CustomerID uuid.UUID `json:"customer_id" db:"customer_id"`
}

type CartLine struct {
	CartID    uuid.UUID `json:"cart_id" db:"cart_id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	Quantity  int       `json:"quantity" db:"cart_quantity"`
}

// CheckoutLine is a cart line joined with the product state the order
// coordinator needs: live stock and both price columns.
type CheckoutLine struct {
	ProductID       uuid.UUID        `json:"product_id" db:"product_id"`
	VendorID        uuid.UUID        `json:"vendor_id" db:"vendor_id"`
	StockQuantity   int              `json:"stock_quantity" db:"stock_quantity"`
	PriceOriginal   decimal.Decimal  `json:"price_original" db:"price_original"`
	PriceDiscounted *decimal.Decimal `json:"price_discounted" db:"price_discounted"`
	Quantity        int              `json:"quantity" db:"cart_quantity"`
}

// UnitPrice mirrors Product.UnitPrice for joined checkout rows.
func (l *CheckoutLine) UnitPrice() decimal.Decimal {
	if l.PriceDiscounted != nil {
		return *l.PriceDiscounted
	}
	return l.PriceOriginal
}
