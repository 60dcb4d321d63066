package models

import (
	"github.com/google/uuid"
)

// Category is a node in the nested-set category forest. A node's subtree
// is exactly the set of nodes whose [Lft, Rgt] interval is contained in
// its own; a leaf has Rgt - Lft == 1. ParentID is nil only for a vendor's
// synthetic root, created at vendor registration.
type Category struct {
	ID       uuid.UUID  `json:"id" db:"category_id"`
	VendorID uuid.UUID  `json:"vendor_id" db:"vendor_id"`
	ParentID *uuid.UUID `json:"parent_id" db:"parent_id"`
	Name     string     `json:"name" db:"category_name"`
	Lft      int        `json:"lft" db:"lft"`
	Rgt      int        `json:"rgt" db:"rgt"`
}

// IsLeaf reports whether the node has no descendants.
func (c *Category) IsLeaf() bool {
	return c.Rgt-c.Lft == 1
}

// Contains reports whether other lies strictly inside c's interval.
func (c *Category) Contains(other *Category) bool {
	return c.Lft < other.Lft && other.Rgt < c.Rgt
}
