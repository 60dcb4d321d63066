package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShippingInfo is the address snapshot captured at checkout time,
// decoupled from whatever the customer record says afterwards.
type ShippingInfo struct {
	Name         string  `json:"name"`
	AddressLine1 string  `json:"address_line1"`
	AddressLine2 *string `json:"address_line2"`
	City         string  `json:"city"`
	PostalCode   string  `json:"postal_code"`
	Country      string  `json:"country"`
	Phone        string  `json:"phone"`
	Email        string  `json:"email"`
}

// Order is the committed snapshot of a checkout. CustomerID is nil for
// guest checkouts.
type Order struct {
	ID         uuid.UUID       `json:"id" db:"order_id"`
	CustomerID *uuid.UUID      `json:"customer_id" db:"customer_id"`
	VendorID   uuid.UUID       `json:"vendor_id" db:"vendor_id"`
	Total      decimal.Decimal `json:"total" db:"price_total"`
	Status     string          `json:"status" db:"order_status"`
	Shipping   ShippingInfo    `json:"shipping" db:"-"`
	CreatedAt  time.Time       `json:"created_at" db:"order_date"`
	Details    []*OrderDetail  `json:"details,omitempty" db:"-"`
}

// OrderDetail snapshots one line of an order: the unit price actually
// charged (original or discounted, frozen at checkout) and the quantity.
type OrderDetail struct {
	ID        uuid.UUID       `json:"id" db:"order_detail_id"`
	OrderID   uuid.UUID       `json:"order_id" db:"order_id"`
	ProductID uuid.UUID       `json:"product_id" db:"product_id"`
	UnitPrice decimal.Decimal `json:"unit_price" db:"price_each"`
	Quantity  int             `json:"quantity" db:"order_quantity"`
}

// Payment records exactly one payment per order, equal to the order total.
type Payment struct {
	ID        uuid.UUID       `json:"id" db:"payment_id"`
	OrderID   uuid.UUID       `json:"order_id" db:"order_id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	CreatedAt time.Time       `json:"created_at" db:"payment_date"`
}

const OrderStatusOrdered = "ordered"
