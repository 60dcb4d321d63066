package repositories

import (
	"context"

	"shopmart/internal/models"

	"github.com/google/uuid"
)

type ReviewRepository interface {
	Exists(ctx context.Context, customerID, productID uuid.UUID) (bool, error)
	Create(ctx context.Context, q Querier, review *models.Review) error
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.Review, error)
}

type reviewRepo struct {
	db Database
}

func NewReviewRepo(db Database) ReviewRepository {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) Exists(ctx context.Context, customerID, productID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM reviews WHERE customer_id = $1 AND product_id = $2
		)
	`, customerID, productID).Scan(&exists)
	return exists, err
}

// Create runs on the caller's Querier so the review row and the product
// rating aggregate commit together.
func (r *reviewRepo) Create(ctx context.Context, q Querier, review *models.Review) error {
	_, err := q.Exec(ctx, `
		INSERT INTO reviews (review_id, customer_id, product_id, review_rating, review_text)
		VALUES ($1, $2, $3, $4, $5)
	`, review.ID, review.CustomerID, review.ProductID, review.Rating, review.Text)
	return err
}

func (r *reviewRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.Review, error) {
	rows, err := r.db.Query(ctx, `
		SELECT review_id, customer_id, product_id, review_rating, review_text, review_date
		FROM reviews
		WHERE product_id = $1
		ORDER BY review_date DESC
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		review := &models.Review{}
		if err := rows.Scan(&review.ID, &review.CustomerID, &review.ProductID,
			&review.Rating, &review.Text, &review.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}
