package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryIntervals(t *testing.T) {
	root := &Category{Name: "root", Lft: 1, Rgt: 8}
	shoes := &Category{Name: "Shoes", Lft: 2, Rgt: 7}
	sneakers := &Category{Name: "Sneakers", Lft: 3, Rgt: 4}
	boots := &Category{Name: "Boots", Lft: 5, Rgt: 6}

	assert.False(t, root.IsLeaf())
	assert.False(t, shoes.IsLeaf())
	assert.True(t, sneakers.IsLeaf())

	assert.True(t, root.Contains(shoes))
	assert.True(t, shoes.Contains(sneakers))
	assert.True(t, root.Contains(sneakers))

	// siblings are disjoint, never partially overlapping
	assert.False(t, sneakers.Contains(boots))
	assert.False(t, boots.Contains(sneakers))
	assert.False(t, sneakers.Contains(shoes))
}
