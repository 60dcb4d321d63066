package models

import (
	"time"

	"github.com/google/uuid"
)

// Review carries at most one entry per (customer, product) pair; the
// uniqueness is enforced before insert and backed by a constraint.
type Review struct {
	ID         uuid.UUID `json:"id" db:"review_id"`
	CustomerID uuid.UUID `json:"customer_id" db:"customer_id"`
	ProductID  uuid.UUID `json:"product_id" db:"product_id"`
	Rating     int       `json:"rating" db:"review_rating"`
	Text       *string   `json:"text" db:"review_text"`
	CreatedAt  time.Time `json:"created_at" db:"review_date"`
}
