package services

import (
	"context"
	"testing"

	"shopmart/internal/common"
	"shopmart/internal/repositories"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductService(mock pgxmock.PgxPoolIface) ProductService {
	return NewProductService(
		repositories.NewProductRepo(mock),
		repositories.NewCategoryRepo(mock),
		repositories.NewReviewRepo(mock),
		repositories.NewProductImageRepo(mock),
		nopCache{},
	)
}

func TestCreateProductRejectsDiscountAtOrAboveOriginal(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	discounted := decimal.RequireFromString("30.00")
	svc := newProductService(mock)
	_, err = svc.Create(context.Background(), uuid.New(), CreateProductInput{
		CategoryID:      uuid.New(),
		Name:            "Sneaker",
		StockQuantity:   5,
		PriceOriginal:   decimal.RequireFromString("30.00"),
		PriceDiscounted: &discounted,
	})

	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "price_discounted", ve.Field)
}

func TestCreateProductRejectsZeroDiscount(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	discounted := decimal.Zero
	svc := newProductService(mock)
	_, err = svc.Create(context.Background(), uuid.New(), CreateProductInput{
		CategoryID:      uuid.New(),
		Name:            "Sneaker",
		StockQuantity:   5,
		PriceOriginal:   decimal.RequireFromString("30.00"),
		PriceDiscounted: &discounted,
	})

	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "price_discounted", ve.Field)
}

func TestCreateProductInForeignCategory(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	vendorID := uuid.New()
	otherVendorID := uuid.New()
	categoryID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM categories WHERE category_id`).
		WithArgs(categoryID).
		WillReturnRows(mock.NewRows([]string{"category_id", "vendor_id", "parent_id", "category_name", "lft", "rgt"}).
			AddRow(categoryID, otherVendorID, nil, "Shoes", 1, 2))

	svc := newProductService(mock)
	_, err = svc.Create(context.Background(), vendorID, CreateProductInput{
		CategoryID:    categoryID,
		Name:          "Sneaker",
		StockQuantity: 5,
		PriceOriginal: decimal.RequireFromString("30.00"),
	})
	assert.ErrorIs(t, err, common.ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAllSkipsViewBump(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	// a single read, no transaction and no view_count update
	mock.ExpectQuery(`SELECT (.+) FROM products`).
		WillReturnRows(productRow(mock, uuid.New(), uuid.New(), 4.5, 2))

	svc := newProductService(mock)
	products, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Sneaker", products[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByCategoryBumpsViewsInSameTransaction(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	vendorID := uuid.New()
	categoryID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM categories WHERE category_id`).
		WithArgs(categoryID).
		WillReturnRows(mock.NewRows([]string{"category_id", "vendor_id", "parent_id", "category_name", "lft", "rgt"}).
			AddRow(categoryID, vendorID, nil, "Shoes", 2, 7))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE products SET view_count = view_count \+ 1`).
		WithArgs(2, 7).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery(`SELECT (.+) FROM products`).
		WithArgs(2, 7).
		WillReturnRows(productRow(mock, uuid.New(), vendorID, 4.5, 2))
	mock.ExpectCommit()

	svc := newProductService(mock)
	products, err := svc.ListByCategory(context.Background(), categoryID)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Sneaker", products[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
