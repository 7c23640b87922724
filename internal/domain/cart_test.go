package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func product(id int64, price float64) Product {
	return Product{ID: id, Title: "p", Price: price}
}

func TestCart_AddProduct_MergesQuantity(t *testing.T) {
	c := &Cart{UserID: 1}

	c.AddProduct(product(10, 5), 1)
	c.AddProduct(product(10, 5), 2)
	c.AddProduct(product(11, 3), 1)

	assert.Len(t, c.Items, 2)
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.Equal(t, 4, c.ItemCount())
}

func TestCart_RemoveProduct(t *testing.T) {
	c := &Cart{UserID: 1}
	c.AddProduct(product(10, 5), 2)
	c.AddProduct(product(11, 3), 1)

	c.RemoveProduct(10)
	assert.Equal(t, 1, c.Items[c.FindItemIndex(10)].Quantity)

	c.RemoveProduct(10)
	assert.Equal(t, -1, c.FindItemIndex(10))
	assert.Len(t, c.Items, 1)

	// Removing something absent is a no-op.
	c.RemoveProduct(99)
	assert.Len(t, c.Items, 1)
}

func TestCart_Total(t *testing.T) {
	c := &Cart{UserID: 1}
	assert.Zero(t, c.Total())

	c.AddProduct(product(10, 9.99), 2)
	c.AddProduct(product(11, 0.01), 1)

	assert.InDelta(t, 19.99, c.Total(), 1e-9)
}

func TestCart_FindItemIndex_Empty(t *testing.T) {
	c := &Cart{}
	assert.Equal(t, -1, c.FindItemIndex(1))
}
