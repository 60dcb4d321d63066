package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"shopmart/internal/caching"
	"shopmart/internal/common"
	"shopmart/internal/models"
	"shopmart/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const productCacheTTL = 2 * time.Minute

type CreateProductInput struct {
	CategoryID      uuid.UUID
	Name            string
	StockQuantity   int
	PriceOriginal   decimal.Decimal
	PriceDiscounted *decimal.Decimal
	Tag             *string
	Description     *string
}

type ProductService interface {
	Create(ctx context.Context, vendorID uuid.UUID, input CreateProductInput) (*models.Product, error)
	CreateBatch(ctx context.Context, vendorID uuid.UUID, inputs []CreateProductInput) ([]*models.Product, error)
	Get(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	ListAll(ctx context.Context) ([]*models.Product, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*models.Product, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*models.Product, error)
	ListReviews(ctx context.Context, productID uuid.UUID) ([]*models.Review, error)
	AttachImage(ctx context.Context, vendorID, productID uuid.UUID, path string) (*models.ProductImage, error)
	ListImages(ctx context.Context, productID uuid.UUID) ([]*models.ProductImage, error)
}

type productService struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	reviewRepo   repositories.ReviewRepository
	imageRepo    repositories.ProductImageRepository
	cache        caching.CacheService
}

func NewProductService(productRepo repositories.ProductRepository,
	categoryRepo repositories.CategoryRepository, reviewRepo repositories.ReviewRepository,
	imageRepo repositories.ProductImageRepository, cache caching.CacheService) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		reviewRepo:   reviewRepo,
		imageRepo:    imageRepo,
		cache:        cache,
	}
}

func (s *productService) Create(ctx context.Context, vendorID uuid.UUID, input CreateProductInput) (*models.Product, error) {
	product, err := s.buildProduct(ctx, vendorID, input)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// CreateBatch validates the whole upload before touching storage; the
// insert itself is transactional so a constraint failure on row N cannot
// leave rows 1..N-1 behind.
func (s *productService) CreateBatch(ctx context.Context, vendorID uuid.UUID, inputs []CreateProductInput) ([]*models.Product, error) {
	if len(inputs) == 0 {
		return nil, &common.ValidationError{Field: "products", Reason: "must not be empty"}
	}

	products := make([]*models.Product, 0, len(inputs))
	for _, input := range inputs {
		product, err := s.buildProduct(ctx, vendorID, input)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := s.productRepo.CreateBatch(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *productService) buildProduct(ctx context.Context, vendorID uuid.UUID, input CreateProductInput) (*models.Product, error) {
	if err := common.ValidateRequiredString(input.Name, "name"); err != nil {
		return nil, err
	}
	if input.StockQuantity < 0 {
		return nil, &common.ValidationError{Field: "stock_quantity", Reason: "must not be negative"}
	}
	if !input.PriceOriginal.IsPositive() {
		return nil, &common.ValidationError{Field: "price_original", Reason: "must be positive"}
	}
	if input.PriceDiscounted != nil {
		if !input.PriceDiscounted.IsPositive() {
			return nil, &common.ValidationError{Field: "price_discounted", Reason: "must be positive when set"}
		}
		if input.PriceDiscounted.GreaterThanOrEqual(input.PriceOriginal) {
			return nil, &common.ValidationError{Field: "price_discounted", Reason: "must be below the original price"}
		}
	}

	category, err := s.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category.VendorID != vendorID {
		return nil, common.ErrForbidden
	}

	return &models.Product{
		ID:              uuid.New(),
		VendorID:        vendorID,
		CategoryID:      input.CategoryID,
		Name:            input.Name,
		StockQuantity:   input.StockQuantity,
		PriceOriginal:   input.PriceOriginal,
		PriceDiscounted: input.PriceDiscounted,
		Tag:             input.Tag,
		Description:     input.Description,
	}, nil
}

func (s *productService) Get(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	cacheKey := fmt.Sprintf("product:%s", productID)
	cached := &models.Product{}
	if hit, err := s.cache.GetJSON(ctx, cacheKey, cached); err == nil && hit {
		return cached, nil
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetJSON(ctx, cacheKey, product, productCacheTTL); err != nil {
		log.Printf("cache product %s: %v", productID, err)
	}
	return product, nil
}

func (s *productService) ListAll(ctx context.Context) ([]*models.Product, error) {
	return s.productRepo.ListAll(ctx)
}

// ListByCategory resolves the category's nested-set interval and lists
// every product attached anywhere in that subtree.
func (s *productService) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*models.Product, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return s.productRepo.ListByCategoryRange(ctx, category.Lft, category.Rgt)
}

func (s *productService) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*models.Product, error) {
	return s.productRepo.ListByVendor(ctx, vendorID)
}

func (s *productService) ListReviews(ctx context.Context, productID uuid.UUID) ([]*models.Review, error) {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.reviewRepo.ListByProduct(ctx, productID)
}

func (s *productService) AttachImage(ctx context.Context, vendorID, productID uuid.UUID, path string) (*models.ProductImage, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.VendorID != vendorID {
		return nil, common.ErrForbidden
	}

	image := &models.ProductImage{
		ID:        uuid.New(),
		ProductID: productID,
		Path:      path,
	}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *productService) ListImages(ctx context.Context, productID uuid.UUID) ([]*models.ProductImage, error) {
	return s.imageRepo.ListByProduct(ctx, productID)
}
