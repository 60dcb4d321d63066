package repositories

import (
	"context"
	"testing"

	"shopmart/internal/common"
	"shopmart/internal/models"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecrementStockAllLinesSucceed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	lines := []*models.CheckoutLine{
		{ProductID: uuid.New(), Quantity: 2},
		{ProductID: uuid.New(), Quantity: 1},
	}

	mock.ExpectExec(`UPDATE products AS p`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))

	repo := NewInventoryRepo(mock)
	require.NoError(t, repo.DecrementStock(context.Background(), mock, lines))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyStock(t *testing.T) {
	repo := NewInventoryRepo(nil)

	ok := []*models.CheckoutLine{
		{ProductID: uuid.New(), StockQuantity: 5, Quantity: 3},
		{ProductID: uuid.New(), StockQuantity: 1, Quantity: 1},
	}
	assert.NoError(t, repo.VerifyStock(ok))

	short := []*models.CheckoutLine{
		{ProductID: uuid.New(), StockQuantity: 5, Quantity: 3},
		{ProductID: uuid.New(), StockQuantity: 2, Quantity: 3},
	}
	assert.ErrorIs(t, repo.VerifyStock(short), common.ErrInsufficientStock)
}

func TestDecrementStockShortRowCount(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	lines := []*models.CheckoutLine{
		{ProductID: uuid.New(), Quantity: 2},
		{ProductID: uuid.New(), Quantity: 500},
	}

	// the second product fails the stock_quantity >= qty guard
	mock.ExpectExec(`UPDATE products AS p`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewInventoryRepo(mock)
	err = repo.DecrementStock(context.Background(), mock, lines)
	assert.ErrorIs(t, err, common.ErrInsufficientStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}
