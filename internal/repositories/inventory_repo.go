package repositories

import (
	"context"
	"errors"

	"shopmart/internal/common"
	"shopmart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// InventoryRepository covers the stock side of checkout: reading the
// cart joined with live product state and applying the guarded
// decrement that makes oversell impossible.
type InventoryRepository interface {
	CheckoutLines(ctx context.Context, q Querier, cartID uuid.UUID) ([]*models.CheckoutLine, error)
	ProductLine(ctx context.Context, q Querier, productID uuid.UUID, quantity int) (*models.CheckoutLine, error)
	VerifyStock(lines []*models.CheckoutLine) error
	DecrementStock(ctx context.Context, q Querier, lines []*models.CheckoutLine) error
}

type inventoryRepo struct {
	db Database
}

func NewInventoryRepo(db Database) InventoryRepository {
	return &inventoryRepo{db: db}
}

// CheckoutLines reads the cart's lines joined with the product columns
// checkout prices against. It runs on the checkout transaction's Querier
// so the snapshot and the decrement see the same rows.
func (r *inventoryRepo) CheckoutLines(ctx context.Context, q Querier, cartID uuid.UUID) ([]*models.CheckoutLine, error) {
	rows, err := q.Query(ctx, `
		SELECT p.product_id, p.vendor_id, p.stock_quantity, p.price_original, p.price_discounted, cd.cart_quantity
		FROM cartdetails cd
		JOIN products p ON p.product_id = cd.product_id
		WHERE cd.cart_id = $1
	`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*models.CheckoutLine
	for rows.Next() {
		line := &models.CheckoutLine{}
		if err := rows.Scan(&line.ProductID, &line.VendorID, &line.StockQuantity,
			&line.PriceOriginal, &line.PriceDiscounted, &line.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// ProductLine builds the single line a guest checkout orders, straight
// from the product row.
func (r *inventoryRepo) ProductLine(ctx context.Context, q Querier, productID uuid.UUID, quantity int) (*models.CheckoutLine, error) {
	line := &models.CheckoutLine{Quantity: quantity}
	err := q.QueryRow(ctx, `
		SELECT product_id, vendor_id, stock_quantity, price_original, price_discounted
		FROM products
		WHERE product_id = $1
	`, productID).Scan(&line.ProductID, &line.VendorID, &line.StockQuantity,
		&line.PriceOriginal, &line.PriceDiscounted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return line, nil
}

// VerifyStock fails fast on lines whose requested quantity exceeds the
// snapshot stock, so a doomed checkout writes nothing at all. The
// guarded decrement still re-checks under the transaction; only that
// check is authoritative.
func (r *inventoryRepo) VerifyStock(lines []*models.CheckoutLine) error {
	for _, line := range lines {
		if line.Quantity > line.StockQuantity {
			return common.ErrInsufficientStock
		}
	}
	return nil
}

// DecrementStock applies every line's decrement in one statement, guarded
// by the live stock level, and bumps order_count on the same rows. If any
// product lost the race since the cart was read its row fails the
// stock_quantity >= qty predicate, the affected count comes up short and
// the caller rolls the transaction back with ErrInsufficientStock.
func (r *inventoryRepo) DecrementStock(ctx context.Context, q Querier, lines []*models.CheckoutLine) error {
	productIDs := make([]uuid.UUID, len(lines))
	quantities := make([]int32, len(lines))
	for i, line := range lines {
		productIDs[i] = line.ProductID
		quantities[i] = int32(line.Quantity)
	}

	tag, err := q.Exec(ctx, `
		UPDATE products AS p
		SET stock_quantity = p.stock_quantity - d.qty,
			order_count = p.order_count + 1
		FROM (SELECT unnest($1::uuid[]) AS product_id, unnest($2::int[]) AS qty) AS d
		WHERE p.product_id = d.product_id AND p.stock_quantity >= d.qty
	`, productIDs, quantities)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != int64(len(lines)) {
		return common.ErrInsufficientStock
	}
	return nil
}
