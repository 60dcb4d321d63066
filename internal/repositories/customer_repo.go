package repositories

import (
	"context"
	"errors"

	"shopmart/internal/common"
	"shopmart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	GetByUsername(ctx context.Context, username string) (*models.Customer, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type customerRepo struct {
	db Database
}

func NewCustomerRepo(db Database) CustomerRepository {
	return &customerRepo{db: db}
}

const customerColumns = `customer_id, username, password, first_name, last_name, email, phone,
	address_line1, address_line2, city, postal_code, country, created_at`

func (r *customerRepo) Create(ctx context.Context, customer *models.Customer) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO customers (customer_id, username, password, first_name, last_name, email, phone,
			address_line1, address_line2, city, postal_code, country)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, customer.ID, customer.Username, customer.PasswordHash, customer.FirstName, customer.LastName,
		customer.Email, customer.Phone, customer.AddressLine1, customer.AddressLine2, customer.City,
		customer.PostalCode, customer.Country)
	return err
}

func (r *customerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	return r.scanOne(r.db.QueryRow(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE customer_id = $1
	`, id))
}

func (r *customerRepo) GetByUsername(ctx context.Context, username string) (*models.Customer, error) {
	return r.scanOne(r.db.QueryRow(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE username = $1
	`, username))
}

func (r *customerRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := r.db.Exec(ctx, `UPDATE customers SET password = $1 WHERE customer_id = $2`, passwordHash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *customerRepo) scanOne(row pgx.Row) (*models.Customer, error) {
	customer := &models.Customer{}
	err := row.Scan(&customer.ID, &customer.Username, &customer.PasswordHash, &customer.FirstName,
		&customer.LastName, &customer.Email, &customer.Phone, &customer.AddressLine1,
		&customer.AddressLine2, &customer.City, &customer.PostalCode, &customer.Country,
		&customer.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return customer, nil
}
