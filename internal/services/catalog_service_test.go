package services

import (
	"context"
	"testing"

	"shopmart/internal/common"
	"shopmart/internal/repositories"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogService(mock pgxmock.PgxPoolIface) CatalogService {
	return NewCatalogService(repositories.NewCategoryRepo(mock), nopCache{})
}

func TestDeleteCategoryOfAnotherVendor(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	vendorID := uuid.New()
	otherVendorID := uuid.New()
	rootID := uuid.New()
	categoryID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM categories WHERE category_id`).
		WithArgs(categoryID).
		WillReturnRows(mock.NewRows([]string{"category_id", "vendor_id", "parent_id", "category_name", "lft", "rgt"}).
			AddRow(categoryID, otherVendorID, &rootID, "Shoes", 2, 3))

	svc := newCatalogService(mock)
	err = svc.DeleteCategory(context.Background(), vendorID, categoryID)
	assert.ErrorIs(t, err, common.ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCategoryRootRefused(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	vendorID := uuid.New()
	rootID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM categories WHERE category_id`).
		WithArgs(rootID).
		WillReturnRows(mock.NewRows([]string{"category_id", "vendor_id", "parent_id", "category_name", "lft", "rgt"}).
			AddRow(rootID, vendorID, nil, "root", 1, 2))

	svc := newCatalogService(mock)
	err = svc.DeleteCategory(context.Background(), vendorID, rootID)
	assert.ErrorIs(t, err, common.ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddCategoryRequiresName(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	svc := newCatalogService(mock)
	_, err = svc.AddCategory(context.Background(), uuid.New(), nil, "  ")

	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)
}
