package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID              uuid.UUID        `json:"id" db:"product_id"`
	VendorID        uuid.UUID        `json:"vendor_id" db:"vendor_id"`
	CategoryID      uuid.UUID        `json:"category_id" db:"category_id"`
	Name            string           `json:"name" db:"product_name"`
	StockQuantity   int              `json:"stock_quantity" db:"stock_quantity"`
	PriceOriginal   decimal.Decimal  `json:"price_original" db:"price_original"`
	PriceDiscounted *decimal.Decimal `json:"price_discounted" db:"price_discounted"`
	Tag             *string          `json:"tag" db:"tag"`
	Description     *string          `json:"description" db:"product_description"`
	Rating          float64          `json:"rating" db:"product_rating"`
	ReviewCount     int              `json:"review_count" db:"review_count"`
	OrderCount      int              `json:"order_count" db:"order_count"`
	ViewCount       int              `json:"view_count" db:"view_count"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
}

// UnitPrice returns the price a buyer is charged right now: the
// discounted price when one is set, the original price otherwise.
func (p *Product) UnitPrice() decimal.Decimal {
	if p.PriceDiscounted != nil {
		return *p.PriceDiscounted
	}
	return p.PriceOriginal
}

type ProductImage struct {
	ID        uuid.UUID `json:"id" db:"image_id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	Path      string    `json:"path" db:"image_pathname"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
