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

func categoryRows(mock pgxmock.PgxPoolIface) *pgxmock.Rows {
	return mock.NewRows([]string{"category_id", "vendor_id", "parent_id", "category_name", "lft", "rgt"})
}

func TestCategoryInsertUnderParent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	vendorID := uuid.New()
	parentID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM categories WHERE category_id`).
		WithArgs(parentID).
		WillReturnRows(categoryRows(mock).AddRow(parentID, vendorID, nil, "root", 1, 4))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE categories SET lft = lft \+ 2 WHERE lft > \$1`).
		WithArgs(4).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectExec(`UPDATE categories SET rgt = rgt \+ 2 WHERE rgt >= \$1`).
		WithArgs(4).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`INSERT INTO categories`).
		WithArgs(pgxmock.AnyArg(), vendorID, &parentID, "Shoes", 4, 5).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	repo := NewCategoryRepo(mock)
	node, err := repo.Insert(context.Background(), vendorID, &parentID, "Shoes")
	require.NoError(t, err)

	assert.Equal(t, 4, node.Lft)
	assert.Equal(t, 5, node.Rgt)
	require.NotNil(t, node.ParentID)
	assert.Equal(t, parentID, *node.ParentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryInsertUnderVendorRoot(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	vendorID := uuid.New()
	rootID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM categories WHERE vendor_id = \$1 AND parent_id IS NULL`).
		WithArgs(vendorID).
		WillReturnRows(categoryRows(mock).AddRow(rootID, vendorID, nil, "root", 1, 2))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE categories SET lft = lft \+ 2`).
		WithArgs(2).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectExec(`UPDATE categories SET rgt = rgt \+ 2`).
		WithArgs(2).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`INSERT INTO categories`).
		WithArgs(pgxmock.AnyArg(), vendorID, &rootID, "Shoes", 2, 3).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	repo := NewCategoryRepo(mock)
	node, err := repo.Insert(context.Background(), vendorID, nil, "Shoes")
	require.NoError(t, err)

	assert.Equal(t, 2, node.Lft)
	assert.Equal(t, 3, node.Rgt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryInsertForeignParent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	vendorID := uuid.New()
	otherVendorID := uuid.New()
	parentID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM categories WHERE category_id`).
		WithArgs(parentID).
		WillReturnRows(categoryRows(mock).AddRow(parentID, otherVendorID, nil, "root", 1, 4))

	repo := NewCategoryRepo(mock)
	_, err = repo.Insert(context.Background(), vendorID, &parentID, "Shoes")
	assert.ErrorIs(t, err, common.ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryInsertRollsBackOnShiftFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	vendorID := uuid.New()
	parentID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM categories WHERE category_id`).
		WithArgs(parentID).
		WillReturnRows(categoryRows(mock).AddRow(parentID, vendorID, nil, "root", 1, 4))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE categories SET lft = lft \+ 2`).
		WithArgs(4).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	repo := NewCategoryRepo(mock)
	_, err = repo.Insert(context.Background(), vendorID, &parentID, "Shoes")
	require.Error(t, err)

	var se *common.StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 1, se.Step)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryDeleteLeaf(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	vendorID := uuid.New()
	rootID := uuid.New()
	leafID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM categories WHERE category_id`).
		WithArgs(leafID).
		WillReturnRows(categoryRows(mock).AddRow(leafID, vendorID, &rootID, "Shoes", 2, 3))

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM categories WHERE category_id`).
		WithArgs(leafID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`UPDATE categories SET lft = lft - 2 WHERE lft > \$1`).
		WithArgs(3).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectExec(`UPDATE categories SET rgt = rgt - 2 WHERE rgt > \$1`).
		WithArgs(3).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	repo := NewCategoryRepo(mock)
	require.NoError(t, repo.Delete(context.Background(), leafID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryDeleteWithChildren(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	vendorID := uuid.New()
	rootID := uuid.New()
	nodeID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM categories WHERE category_id`).
		WithArgs(nodeID).
		WillReturnRows(categoryRows(mock).AddRow(nodeID, vendorID, &rootID, "Shoes", 2, 7))

	repo := NewCategoryRepo(mock)
	err = repo.Delete(context.Background(), nodeID)
	assert.ErrorIs(t, err, common.ErrHasChildren)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryInsertThenDeleteRestoresBounds(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	vendorID := uuid.New()
	parentID := uuid.New()

	// insert under parent [1,4]: widen at the parent's rgt = 4,
	// new leaf takes [4,5]
	mock.ExpectQuery(`SELECT (.+) FROM categories WHERE category_id`).
		WithArgs(parentID).
		WillReturnRows(categoryRows(mock).AddRow(parentID, vendorID, nil, "root", 1, 4))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE categories SET lft = lft \+ 2 WHERE lft > \$1`).
		WithArgs(4).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))
	mock.ExpectExec(`UPDATE categories SET rgt = rgt \+ 2 WHERE rgt >= \$1`).
		WithArgs(4).
		WillReturnResult(pgxmock.NewResult("UPDATE", 4))
	mock.ExpectExec(`INSERT INTO categories`).
		WithArgs(pgxmock.AnyArg(), vendorID, &parentID, "Shoes", 4, 5).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	repo := NewCategoryRepo(mock)
	leaf, err := repo.Insert(context.Background(), vendorID, &parentID, "Shoes")
	require.NoError(t, err)
	require.Equal(t, 4, leaf.Lft)
	require.Equal(t, 5, leaf.Rgt)

	// deleting that same leaf shrinks past its rgt = 5: exactly the
	// rows widened above (now past the closed gap) shift back by 2,
	// so every other node regains its pre-insert bounds
	mock.ExpectQuery(`SELECT (.+) FROM categories WHERE category_id`).
		WithArgs(leaf.ID).
		WillReturnRows(categoryRows(mock).AddRow(leaf.ID, vendorID, &parentID, "Shoes", leaf.Lft, leaf.Rgt))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM categories WHERE category_id`).
		WithArgs(leaf.ID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`UPDATE categories SET lft = lft - 2 WHERE lft > \$1`).
		WithArgs(leaf.Rgt).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))
	mock.ExpectExec(`UPDATE categories SET rgt = rgt - 2 WHERE rgt > \$1`).
		WithArgs(leaf.Rgt).
		WillReturnResult(pgxmock.NewResult("UPDATE", 4))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), leaf.ID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategorySubtree(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	vendorID := uuid.New()
	rootID := uuid.New()
	nodeID := uuid.New()
	childID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM categories WHERE category_id`).
		WithArgs(nodeID).
		WillReturnRows(categoryRows(mock).AddRow(nodeID, vendorID, &rootID, "Shoes", 2, 5))

	mock.ExpectQuery(`SELECT (.+) FROM categories WHERE lft >= \$1 AND rgt <= \$2`).
		WithArgs(2, 5).
		WillReturnRows(categoryRows(mock).
			AddRow(nodeID, vendorID, &rootID, "Shoes", 2, 5).
			AddRow(childID, vendorID, &nodeID, "Sneakers", 3, 4))

	repo := NewCategoryRepo(mock)
	subtree, err := repo.Subtree(context.Background(), nodeID)
	require.NoError(t, err)
	require.Len(t, subtree, 2)
	assert.Equal(t, "Shoes", subtree[0].Name)
	assert.Equal(t, "Sneakers", subtree[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
