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
)

const subtreeCacheTTL = 5 * time.Minute

// CatalogService owns category tree mutations and reads. Mutations are
// restricted to the owning vendor; reads are public and cached because
// storefront navigation hits subtrees far more often than vendors
// restructure them.
type CatalogService interface {
	AddCategory(ctx context.Context, vendorID uuid.UUID, parentID *uuid.UUID, name string) (*models.Category, error)
	DeleteCategory(ctx context.Context, vendorID, categoryID uuid.UUID) error
	Subtree(ctx context.Context, categoryID uuid.UUID) ([]*models.Category, error)
	VendorTree(ctx context.Context, vendorID uuid.UUID) ([]*models.Category, error)
}

type catalogService struct {
	categoryRepo repositories.CategoryRepository
	cache        caching.CacheService
}

func NewCatalogService(categoryRepo repositories.CategoryRepository, cache caching.CacheService) CatalogService {
	return &catalogService{categoryRepo: categoryRepo, cache: cache}
}

func (s *catalogService) AddCategory(ctx context.Context, vendorID uuid.UUID, parentID *uuid.UUID, name string) (*models.Category, error) {
	if err := common.ValidateRequiredString(name, "name"); err != nil {
		return nil, err
	}
	if err := common.ValidateStringLength(name, "name", 1, 128); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.Insert(ctx, vendorID, parentID, name)
	if err != nil {
		return nil, err
	}
	s.invalidateSubtrees(ctx)
	return category, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, vendorID, categoryID uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category.VendorID != vendorID {
		return common.ErrForbidden
	}
	if category.ParentID == nil {
		// the root node is part of the vendor account, not deletable catalog data
		return common.ErrForbidden
	}

	if err := s.categoryRepo.Delete(ctx, categoryID); err != nil {
		return err
	}
	s.invalidateSubtrees(ctx)
	return nil
}

func (s *catalogService) Subtree(ctx context.Context, categoryID uuid.UUID) ([]*models.Category, error) {
	cacheKey := fmt.Sprintf("subtree:%s", categoryID)
	var cached []*models.Category
	if hit, err := s.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	subtree, err := s.categoryRepo.Subtree(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetJSON(ctx, cacheKey, subtree, subtreeCacheTTL); err != nil {
		log.Printf("cache subtree %s: %v", categoryID, err)
	}
	return subtree, nil
}

func (s *catalogService) VendorTree(ctx context.Context, vendorID uuid.UUID) ([]*models.Category, error) {
	return s.categoryRepo.ListByVendor(ctx, vendorID)
}

// invalidateSubtrees drops all cached subtrees. Structural edits shift
// lft/rgt values on unrelated vendors' rows too, so there is no safe
// per-key invalidation.
func (s *catalogService) invalidateSubtrees(ctx context.Context) {
	if err := s.cache.DeleteByPrefix(ctx, "subtree:"); err != nil {
		log.Printf("invalidate subtree cache: %v", err)
	}
}
