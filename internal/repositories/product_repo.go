package repositories

import (
	"context"
	"errors"

	"shopmart/internal/common"
	"shopmart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	CreateBatch(ctx context.Context, products []*models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListAll(ctx context.Context) ([]*models.Product, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*models.Product, error)
	ListByCategoryRange(ctx context.Context, lft, rgt int) ([]*models.Product, error)
	UpdateRating(ctx context.Context, q Querier, productID uuid.UUID, rating float64, reviewCount int) error
	ListLowStock(ctx context.Context, threshold int) ([]*models.Product, error)
}

type productRepo struct {
	db Database
}

func NewProductRepo(db Database) ProductRepository {
	return &productRepo{db: db}
}

const productColumns = `product_id, vendor_id, category_id, product_name, stock_quantity,
	price_original, price_discounted, tag, product_description, product_rating,
	review_count, order_count, view_count, created_at`

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO products (product_id, vendor_id, category_id, product_name, stock_quantity,
			price_original, price_discounted, tag, product_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, product.ID, product.VendorID, product.CategoryID, product.Name, product.StockQuantity,
		product.PriceOriginal, product.PriceDiscounted, product.Tag, product.Description)
	return err
}

// CreateBatch inserts a whole catalog upload in one transaction so a bad
// row rejects the entire file instead of leaving a partial import.
func (r *productRepo) CreateBatch(ctx context.Context, products []*models.Product) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return common.NewStorageError("product batch insert", 0, err)
	}
	defer tx.Rollback(ctx)

	for i, product := range products {
		if _, err := tx.Exec(ctx, `
			INSERT INTO products (product_id, vendor_id, category_id, product_name, stock_quantity,
				price_original, price_discounted, tag, product_description)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, product.ID, product.VendorID, product.CategoryID, product.Name, product.StockQuantity,
			product.PriceOriginal, product.PriceDiscounted, product.Tag, product.Description); err != nil {
			return common.NewStorageError("product batch insert", i+1, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return common.NewStorageError("product batch insert", len(products)+1, err)
	}
	return nil
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product := &models.Product{}
	err := r.db.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE product_id = $1
	`, id).Scan(&product.ID, &product.VendorID, &product.CategoryID, &product.Name,
		&product.StockQuantity, &product.PriceOriginal, &product.PriceDiscounted, &product.Tag,
		&product.Description, &product.Rating, &product.ReviewCount, &product.OrderCount,
		&product.ViewCount, &product.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

// ListAll is the whole-storefront listing. Unlike the vendor and
// category listings it does not bump view_count; only targeted browsing
// counts as a view.
func (r *productRepo) ListAll(ctx context.Context) ([]*models.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		ORDER BY product_name ASC
	`)
	if err != nil {
		return nil, err
	}
	return scanProducts(rows)
}

// ListByVendor bumps view_count on the listed rows and returns them in
// the same transaction, so the counter and the snapshot stay consistent.
func (r *productRepo) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*models.Product, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, common.NewStorageError("product list by vendor", 0, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		UPDATE products SET view_count = view_count + 1 WHERE vendor_id = $1
	`, vendorID); err != nil {
		return nil, common.NewStorageError("product list by vendor", 1, err)
	}

	rows, err := tx.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE vendor_id = $1
		ORDER BY product_name ASC
	`, vendorID)
	if err != nil {
		return nil, common.NewStorageError("product list by vendor", 2, err)
	}
	products, err := scanProducts(rows)
	if err != nil {
		return nil, common.NewStorageError("product list by vendor", 2, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, common.NewStorageError("product list by vendor", 3, err)
	}
	return products, nil
}

// ListByCategoryRange serves subtree browsing: the caller resolves the
// category's nested-set interval and every product whose category falls
// inside it is listed, with the same view_count bump as vendor listing.
func (r *productRepo) ListByCategoryRange(ctx context.Context, lft, rgt int) ([]*models.Product, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, common.NewStorageError("product list by category", 0, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		UPDATE products SET view_count = view_count + 1
		WHERE category_id IN (SELECT category_id FROM categories WHERE lft >= $1 AND rgt <= $2)
	`, lft, rgt); err != nil {
		return nil, common.NewStorageError("product list by category", 1, err)
	}

	rows, err := tx.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE category_id IN (SELECT category_id FROM categories WHERE lft >= $1 AND rgt <= $2)
		ORDER BY product_name ASC
	`, lft, rgt)
	if err != nil {
		return nil, common.NewStorageError("product list by category", 2, err)
	}
	products, err := scanProducts(rows)
	if err != nil {
		return nil, common.NewStorageError("product list by category", 2, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, common.NewStorageError("product list by category", 3, err)
	}
	return products, nil
}

// UpdateRating writes the recomputed aggregate; it runs on the caller's
// Querier because review submission updates the review row and the
// product aggregate together.
func (r *productRepo) UpdateRating(ctx context.Context, q Querier, productID uuid.UUID, rating float64, reviewCount int) error {
	tag, err := q.Exec(ctx, `
		UPDATE products SET product_rating = $1, review_count = $2 WHERE product_id = $3
	`, rating, reviewCount, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *productRepo) ListLowStock(ctx context.Context, threshold int) ([]*models.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE stock_quantity <= $1
		ORDER BY stock_quantity ASC
	`, threshold)
	if err != nil {
		return nil, err
	}
	return scanProducts(rows)
}

func scanProducts(rows pgx.Rows) ([]*models.Product, error) {
	defer rows.Close()
	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		if err := rows.Scan(&product.ID, &product.VendorID, &product.CategoryID, &product.Name,
			&product.StockQuantity, &product.PriceOriginal, &product.PriceDiscounted, &product.Tag,
			&product.Description, &product.Rating, &product.ReviewCount, &product.OrderCount,
			&product.ViewCount, &product.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}
