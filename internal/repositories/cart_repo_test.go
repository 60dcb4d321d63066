package repositories

import (
	"context"
	"testing"

	"shopmart/internal/common"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartFindOrCreateReturnsExistingRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	customerID := uuid.New()
	existingCartID := uuid.New()

	// ON CONFLICT lands on the already existing cart row
	mock.ExpectQuery(`INSERT INTO carts`).
		WithArgs(pgxmock.AnyArg(), customerID).
		WillReturnRows(mock.NewRows([]string{"cart_id", "customer_id"}).
			AddRow(existingCartID, customerID))

	repo := NewCartRepo(mock)
	cart, err := repo.FindOrCreate(context.Background(), customerID)
	require.NoError(t, err)
	assert.Equal(t, existingCartID, cart.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartAddOrIncrement(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	cartID := uuid.New()
	productID := uuid.New()

	mock.ExpectExec(`INSERT INTO cartdetails`).
		WithArgs(cartID, productID, 3).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewCartRepo(mock)
	require.NoError(t, repo.AddOrIncrement(context.Background(), cartID, productID, 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartSetQuantityZeroRemovesLine(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	cartID := uuid.New()
	productID := uuid.New()

	mock.ExpectExec(`DELETE FROM cartdetails`).
		WithArgs(cartID, productID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	repo := NewCartRepo(mock)
	require.NoError(t, repo.SetQuantityOrRemove(context.Background(), cartID, productID, 0))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartSetQuantityMissingLine(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	cartID := uuid.New()
	productID := uuid.New()

	mock.ExpectExec(`UPDATE cartdetails SET cart_quantity`).
		WithArgs(5, cartID, productID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewCartRepo(mock)
	err = repo.SetQuantityOrRemove(context.Background(), cartID, productID, 5)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
