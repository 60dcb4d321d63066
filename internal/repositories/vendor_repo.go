package repositories

import (
	"context"
	"errors"

	"shopmart/internal/common"
	"shopmart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type VendorRepository interface {
	Create(ctx context.Context, q Querier, vendor *models.Vendor) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	GetByUsername(ctx context.Context, username string) (*models.Vendor, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type vendorRepo struct {
	db Database
}

func NewVendorRepo(db Database) VendorRepository {
	return &vendorRepo{db: db}
}

const vendorColumns = `vendor_id, username, password, vendor_name, email, phone,
	address_line1, address_line2, city, postal_code, country, created_at`

// Create runs on the caller's Querier so registration can insert the
// vendor row and its root category in one transaction.
func (r *vendorRepo) Create(ctx context.Context, q Querier, vendor *models.Vendor) error {
	_, err := q.Exec(ctx, `
		INSERT INTO vendors (vendor_id, username, password, vendor_name, email, phone,
			address_line1, address_line2, city, postal_code, country)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, vendor.ID, vendor.Username, vendor.PasswordHash, vendor.Name, vendor.Email, vendor.Phone,
		vendor.AddressLine1, vendor.AddressLine2, vendor.City, vendor.PostalCode, vendor.Country)
	return err
}

func (r *vendorRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	return r.scanOne(r.db.QueryRow(ctx, `
		SELECT `+vendorColumns+`
		FROM vendors
		WHERE vendor_id = $1
	`, id))
}

func (r *vendorRepo) GetByUsername(ctx context.Context, username string) (*models.Vendor, error) {
	return r.scanOne(r.db.QueryRow(ctx, `
		SELECT `+vendorColumns+`
		FROM vendors
		WHERE username = $1
	`, username))
}

func (r *vendorRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := r.db.Exec(ctx, `UPDATE vendors SET password = $1 WHERE vendor_id = $2`, passwordHash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *vendorRepo) scanOne(row pgx.Row) (*models.Vendor, error) {
	vendor := &models.Vendor{}
	err := row.Scan(&vendor.ID, &vendor.Username, &vendor.PasswordHash, &vendor.Name, &vendor.Email,
		&vendor.Phone, &vendor.AddressLine1, &vendor.AddressLine2, &vendor.City, &vendor.PostalCode,
		&vendor.Country, &vendor.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return vendor, nil
}
