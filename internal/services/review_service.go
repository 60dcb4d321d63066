package services

import (
	"context"
	"fmt"
	"log"

	"shopmart/internal/caching"
	"shopmart/internal/common"
	"shopmart/internal/models"
	"shopmart/internal/repositories"

	"github.com/google/uuid"
)

type ReviewService interface {
	PostReview(ctx context.Context, customerID, productID uuid.UUID, rating int, text *string) (*models.Review, error)
}

type reviewService struct {
	db          repositories.Database
	orderRepo   repositories.OrderRepository
	reviewRepo  repositories.ReviewRepository
	productRepo repositories.ProductRepository
	cache       caching.CacheService
}

func NewReviewService(db repositories.Database, orderRepo repositories.OrderRepository,
	reviewRepo repositories.ReviewRepository, productRepo repositories.ProductRepository,
	cache caching.CacheService) ReviewService {
	return &reviewService{
		db:          db,
		orderRepo:   orderRepo,
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		cache:       cache,
	}
}

// PostReview gates on purchase history first, then on prior reviews, so
// a customer who both never bought the product and already reviewed it
// is told about the purchase problem. The review row and the product's
// rating aggregate commit in one transaction.
//
// The aggregate is maintained incrementally:
//
//	newRating = (reviewCount*oldRating + rating) / (reviewCount + 1)
//
// which avoids rescanning all reviews on every submission.
func (s *reviewService) PostReview(ctx context.Context, customerID, productID uuid.UUID, rating int, text *string) (*models.Review, error) {
	if err := common.ValidateRating(rating); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	purchased, err := s.orderRepo.HasPurchased(ctx, customerID, productID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, common.ErrNotPurchased
	}

	exists, err := s.reviewRepo.Exists(ctx, customerID, productID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.ErrAlreadyReviewed
	}

	review := &models.Review{
		ID:         uuid.New(),
		CustomerID: customerID,
		ProductID:  productID,
		Rating:     rating,
		Text:       text,
	}

	newRating := (float64(product.ReviewCount)*product.Rating + float64(rating)) / float64(product.ReviewCount+1)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, common.NewStorageError("post review", 0, err)
	}
	defer tx.Rollback(ctx)

	if err := s.reviewRepo.Create(ctx, tx, review); err != nil {
		return nil, common.NewStorageError("post review", 1, err)
	}
	if err := s.productRepo.UpdateRating(ctx, tx, productID, newRating, product.ReviewCount+1); err != nil {
		return nil, common.NewStorageError("post review", 2, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, common.NewStorageError("post review", 3, err)
	}

	if err := s.cache.Delete(ctx, fmt.Sprintf("product:%s", productID)); err != nil {
		log.Printf("invalidate product cache %s: %v", productID, err)
	}
	return review, nil
}
