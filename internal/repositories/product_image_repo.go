package repositories

import (
	"context"

	"shopmart/internal/models"

	"github.com/google/uuid"
)

type ProductImageRepository interface {
	Create(ctx context.Context, image *models.ProductImage) error
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.ProductImage, error)
}

type productImageRepo struct {
	db Database
}

func NewProductImageRepo(db Database) ProductImageRepository {
	return &productImageRepo{db: db}
}

func (r *productImageRepo) Create(ctx context.Context, image *models.ProductImage) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO productimages (image_id, product_id, image_pathname)
		VALUES ($1, $2, $3)
	`, image.ID, image.ProductID, image.Path)
	return err
}

func (r *productImageRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.ProductImage, error) {
	rows, err := r.db.Query(ctx, `
		SELECT image_id, product_id, image_pathname, created_at
		FROM productimages
		WHERE product_id = $1
		ORDER BY created_at ASC
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []*models.ProductImage
	for rows.Next() {
		image := &models.ProductImage{}
		if err := rows.Scan(&image.ID, &image.ProductID, &image.Path, &image.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, image)
	}
	return images, rows.Err()
}
