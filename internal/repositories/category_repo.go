package repositories

import (
	"context"
	"errors"

	"shopmart/internal/common"
	"shopmart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CategoryRepository owns the nested-set encoding of the category forest.
// Inserting or deleting a node shifts lft/rgt boundaries across the whole
// forest; every structural mutation runs as one atomic transaction so no
// partial width adjustment is ever observable.
type CategoryRepository interface {
	CreateRoot(ctx context.Context, q Querier, vendorID uuid.UUID, name string) (*models.Category, error)
	Insert(ctx context.Context, vendorID uuid.UUID, parentID *uuid.UUID, name string) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	RootForVendor(ctx context.Context, vendorID uuid.UUID) (*models.Category, error)
	Subtree(ctx context.Context, id uuid.UUID) ([]*models.Category, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*models.Category, error)
}

type categoryRepo struct {
	db Database
}

func NewCategoryRepo(db Database) CategoryRepository {
	return &categoryRepo{db: db}
}

const categoryColumns = `category_id, vendor_id, parent_id, category_name, lft, rgt`

// CreateRoot inserts a vendor's synthetic root node at the right edge of
// the forest: [max(rgt)+1, max(rgt)+2]. It runs on the caller's Querier
// because vendor registration wraps it in the same transaction as the
// vendor row itself.
func (r *categoryRepo) CreateRoot(ctx context.Context, q Querier, vendorID uuid.UUID, name string) (*models.Category, error) {
	var maxRgt int
	err := q.QueryRow(ctx, `SELECT COALESCE(MAX(rgt), 0) FROM categories`).Scan(&maxRgt)
	if err != nil {
		return nil, err
	}

	root := &models.Category{
		ID:       uuid.New(),
		VendorID: vendorID,
		Name:     name,
		Lft:      maxRgt + 1,
		Rgt:      maxRgt + 2,
	}
	_, err = q.Exec(ctx, `
		INSERT INTO categories (category_id, vendor_id, parent_id, category_name, lft, rgt)
		VALUES ($1, $2, NULL, $3, $4, $5)
	`, root.ID, root.VendorID, root.Name, root.Lft, root.Rgt)
	if err != nil {
		return nil, err
	}
	return root, nil
}

// Insert adds a new leaf as the rightmost child of the target node (the
// vendor's root when parentID is nil). Let r be the target's rgt: every
// lft > r shifts by +2, every rgt >= r shifts by +2, and the new leaf
// takes [r, r+1] using the pre-shift value.
func (r *categoryRepo) Insert(ctx context.Context, vendorID uuid.UUID, parentID *uuid.UUID, name string) (*models.Category, error) {
	var target *models.Category
	var err error
	if parentID == nil {
		target, err = r.RootForVendor(ctx, vendorID)
	} else {
		target, err = r.GetByID(ctx, *parentID)
	}
	if err != nil {
		return nil, err
	}
	if target.VendorID != vendorID {
		return nil, common.ErrForbidden
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, common.NewStorageError("category insert", 0, err)
	}
	defer tx.Rollback(ctx)

	right := target.Rgt

	if _, err := tx.Exec(ctx, `UPDATE categories SET lft = lft + 2 WHERE lft > $1`, right); err != nil {
		return nil, common.NewStorageError("category insert", 1, err)
	}
	if _, err := tx.Exec(ctx, `UPDATE categories SET rgt = rgt + 2 WHERE rgt >= $1`, right); err != nil {
		return nil, common.NewStorageError("category insert", 2, err)
	}

	node := &models.Category{
		ID:       uuid.New(),
		VendorID: vendorID,
		ParentID: &target.ID,
		Name:     name,
		Lft:      right,
		Rgt:      right + 1,
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO categories (category_id, vendor_id, parent_id, category_name, lft, rgt)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, node.ID, node.VendorID, node.ParentID, node.Name, node.Lft, node.Rgt); err != nil {
		return nil, common.NewStorageError("category insert", 3, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, common.NewStorageError("category insert", 4, err)
	}
	return node, nil
}

// Delete removes a leaf node and closes the two-unit gap it occupied.
// Nodes with descendants are refused; deletion never cascades.
func (r *categoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	node, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !node.IsLeaf() {
		return common.ErrHasChildren
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return common.NewStorageError("category delete", 0, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM categories WHERE category_id = $1`, node.ID); err != nil {
		return common.NewStorageError("category delete", 1, err)
	}
	if _, err := tx.Exec(ctx, `UPDATE categories SET lft = lft - 2 WHERE lft > $1`, node.Rgt); err != nil {
		return common.NewStorageError("category delete", 2, err)
	}
	if _, err := tx.Exec(ctx, `UPDATE categories SET rgt = rgt - 2 WHERE rgt > $1`, node.Rgt); err != nil {
		return common.NewStorageError("category delete", 3, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return common.NewStorageError("category delete", 4, err)
	}
	return nil
}

func (r *categoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category := &models.Category{}
	err := r.db.QueryRow(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE category_id = $1
	`, id).Scan(&category.ID, &category.VendorID, &category.ParentID, &category.Name, &category.Lft, &category.Rgt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return category, nil
}

func (r *categoryRepo) RootForVendor(ctx context.Context, vendorID uuid.UUID) (*models.Category, error) {
	category := &models.Category{}
	err := r.db.QueryRow(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE vendor_id = $1 AND parent_id IS NULL
	`, vendorID).Scan(&category.ID, &category.VendorID, &category.ParentID, &category.Name, &category.Lft, &category.Rgt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return category, nil
}

// Subtree returns the node and all of its descendants, i.e. every row
// whose interval is contained in the node's own. The containment
// predicate is the whole point of the nested-set encoding: one range
// query instead of a recursive walk.
func (r *categoryRepo) Subtree(ctx context.Context, id uuid.UUID) ([]*models.Category, error) {
	node, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE lft >= $1 AND rgt <= $2
		ORDER BY lft ASC
	`, node.Lft, node.Rgt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCategories(rows)
}

func (r *categoryRepo) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*models.Category, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE vendor_id = $1
		ORDER BY lft ASC
	`, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCategories(rows)
}

func scanCategories(rows pgx.Rows) ([]*models.Category, error) {
	var categories []*models.Category
	for rows.Next() {
		category := &models.Category{}
		if err := rows.Scan(&category.ID, &category.VendorID, &category.ParentID, &category.Name, &category.Lft, &category.Rgt); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}
