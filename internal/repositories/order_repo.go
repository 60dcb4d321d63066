package repositories

import (
	"context"
	"errors"

	"shopmart/internal/common"
	"shopmart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OrderRepository interface {
	InsertOrder(ctx context.Context, q Querier, order *models.Order) error
	InsertDetails(ctx context.Context, q Querier, details []*models.OrderDetail) error
	InsertPayment(ctx context.Context, q Querier, payment *models.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*models.Order, error)
	HasPurchased(ctx context.Context, customerID, productID uuid.UUID) (bool, error)
}

type orderRepo struct {
	db Database
}

func NewOrderRepo(db Database) OrderRepository {
	return &orderRepo{db: db}
}

const orderColumns = `order_id, customer_id, vendor_id, price_total, order_status,
	ship_name, ship_address_line1, ship_address_line2, ship_city, ship_postal_code,
	ship_country, ship_phone, ship_email, order_date`

// The Insert* methods all run on the checkout transaction's Querier; the
// coordinator in the service layer owns begin, commit and step tracking.

func (r *orderRepo) InsertOrder(ctx context.Context, q Querier, order *models.Order) error {
	_, err := q.Exec(ctx, `
		INSERT INTO orders (order_id, customer_id, vendor_id, price_total, order_status,
			ship_name, ship_address_line1, ship_address_line2, ship_city, ship_postal_code,
			ship_country, ship_phone, ship_email)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, order.ID, order.CustomerID, order.VendorID, order.Total, order.Status,
		order.Shipping.Name, order.Shipping.AddressLine1, order.Shipping.AddressLine2,
		order.Shipping.City, order.Shipping.PostalCode, order.Shipping.Country,
		order.Shipping.Phone, order.Shipping.Email)
	return err
}

func (r *orderRepo) InsertDetails(ctx context.Context, q Querier, details []*models.OrderDetail) error {
	for _, detail := range details {
		if _, err := q.Exec(ctx, `
			INSERT INTO orderdetails (order_detail_id, order_id, product_id, price_each, order_quantity)
			VALUES ($1, $2, $3, $4, $5)
		`, detail.ID, detail.OrderID, detail.ProductID, detail.UnitPrice, detail.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (r *orderRepo) InsertPayment(ctx context.Context, q Querier, payment *models.Payment) error {
	_, err := q.Exec(ctx, `
		INSERT INTO payments (payment_id, order_id, amount)
		VALUES ($1, $2, $3)
	`, payment.ID, payment.OrderID, payment.Amount)
	return err
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := r.scanOne(r.db.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE order_id = $1
	`, id))
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT order_detail_id, order_id, product_id, price_each, order_quantity
		FROM orderdetails
		WHERE order_id = $1
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		detail := &models.OrderDetail{}
		if err := rows.Scan(&detail.ID, &detail.OrderID, &detail.ProductID,
			&detail.UnitPrice, &detail.Quantity); err != nil {
			return nil, err
		}
		order.Details = append(order.Details, detail)
	}
	return order, rows.Err()
}

func (r *orderRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*models.Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE customer_id = $1
		ORDER BY order_date DESC
	`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// HasPurchased gates review submission: only a customer with at least
// one committed order line for the product may review it.
func (r *orderRepo) HasPurchased(ctx context.Context, customerID, productID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM orders o
			JOIN orderdetails od ON od.order_id = o.order_id
			WHERE o.customer_id = $1 AND od.product_id = $2
		)
	`, customerID, productID).Scan(&exists)
	return exists, err
}

func (r *orderRepo) scanOne(row pgx.Row) (*models.Order, error) {
	order := &models.Order{}
	err := row.Scan(&order.ID, &order.CustomerID, &order.VendorID, &order.Total, &order.Status,
		&order.Shipping.Name, &order.Shipping.AddressLine1, &order.Shipping.AddressLine2,
		&order.Shipping.City, &order.Shipping.PostalCode, &order.Shipping.Country,
		&order.Shipping.Phone, &order.Shipping.Email, &order.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}
