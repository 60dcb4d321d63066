package repositories

import (
	"context"
	"errors"

	"shopmart/internal/common"
	"shopmart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CartRepository interface {
	FindOrCreate(ctx context.Context, customerID uuid.UUID) (*models.Cart, error)
	GetByCustomer(ctx context.Context, customerID uuid.UUID) (*models.Cart, error)
	AddOrIncrement(ctx context.Context, cartID, productID uuid.UUID, quantity int) error
	SetQuantityOrRemove(ctx context.Context, cartID, productID uuid.UUID, quantity int) error
	Lines(ctx context.Context, cartID uuid.UUID) ([]*models.CartLine, error)
	Delete(ctx context.Context, q Querier, cartID uuid.UUID) error
}

type cartRepo struct {
	db Database
}

func NewCartRepo(db Database) CartRepository {
	return &cartRepo{db: db}
}

// FindOrCreate resolves the customer's single cart in one statement.
// The unique constraint on customer_id plus ON CONFLICT means two
// racing first-adds both land on the same row.
func (r *cartRepo) FindOrCreate(ctx context.Context, customerID uuid.UUID) (*models.Cart, error) {
	cart := &models.Cart{}
	err := r.db.QueryRow(ctx, `
		INSERT INTO carts (cart_id, customer_id)
		VALUES ($1, $2)
		ON CONFLICT (customer_id) DO UPDATE SET customer_id = EXCLUDED.customer_id
		RETURNING cart_id, customer_id
	`, uuid.New(), customerID).Scan(&cart.ID, &cart.CustomerID)
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (r *cartRepo) GetByCustomer(ctx context.Context, customerID uuid.UUID) (*models.Cart, error) {
	cart := &models.Cart{}
	err := r.db.QueryRow(ctx, `
		SELECT cart_id, customer_id FROM carts WHERE customer_id = $1
	`, customerID).Scan(&cart.ID, &cart.CustomerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return cart, nil
}

// AddOrIncrement merges repeat adds of the same product into one line.
func (r *cartRepo) AddOrIncrement(ctx context.Context, cartID, productID uuid.UUID, quantity int) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO cartdetails (cart_id, product_id, cart_quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, product_id) DO UPDATE
		SET cart_quantity = cartdetails.cart_quantity + EXCLUDED.cart_quantity
	`, cartID, productID, quantity)
	return err
}

// SetQuantityOrRemove overwrites a line's quantity; zero drops the line.
func (r *cartRepo) SetQuantityOrRemove(ctx context.Context, cartID, productID uuid.UUID, quantity int) error {
	if quantity == 0 {
		tag, err := r.db.Exec(ctx, `
			DELETE FROM cartdetails WHERE cart_id = $1 AND product_id = $2
		`, cartID, productID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return common.ErrNotFound
		}
		return nil
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE cartdetails SET cart_quantity = $1 WHERE cart_id = $2 AND product_id = $3
	`, quantity, cartID, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *cartRepo) Lines(ctx context.Context, cartID uuid.UUID) ([]*models.CartLine, error) {
	rows, err := r.db.Query(ctx, `
		SELECT cart_id, product_id, cart_quantity FROM cartdetails WHERE cart_id = $1
	`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*models.CartLine
	for rows.Next() {
		line := &models.CartLine{}
		if err := rows.Scan(&line.CartID, &line.ProductID, &line.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// Delete clears the cart and its lines; it runs on the checkout
// transaction's Querier as the final step before commit.
func (r *cartRepo) Delete(ctx context.Context, q Querier, cartID uuid.UUID) error {
	if _, err := q.Exec(ctx, `DELETE FROM cartdetails WHERE cart_id = $1`, cartID); err != nil {
		return err
	}
	_, err := q.Exec(ctx, `DELETE FROM carts WHERE cart_id = $1`, cartID)
	return err
}
