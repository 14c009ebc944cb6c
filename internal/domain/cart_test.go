package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineKey(t *testing.T) {
	assert.Equal(t, "p1-red", LineKey("p1", "red"))
	assert.Equal(t, "p1-default", LineKey("p1", ""))
	assert.Equal(t, "p1-default", LineKey("p1", "default"))
}

func TestCartLine_Key(t *testing.T) {
	l := CartLine{ProductID: "p1", VariantKey: "blue"}
	assert.Equal(t, "p1-blue", l.Key())

	l = CartLine{ProductID: "p1"}
	assert.Equal(t, "p1-default", l.Key())
}

func TestCartLine_Subtotal(t *testing.T) {
	l := CartLine{UnitPrice: 1999, Quantity: 3}
	assert.Equal(t, int64(5997), l.Subtotal())
}

func TestTotalItems(t *testing.T) {
	c := &Cart{Lines: []CartLine{
		{Quantity: 2},
		{Quantity: 3},
		{Quantity: 1},
	}}
	assert.Equal(t, 6, c.TotalItems())
}

func TestTotalItems_EmptyCart(t *testing.T) {
	assert.Equal(t, 0, (&Cart{}).TotalItems())
	assert.Equal(t, 0, (&Cart{Lines: []CartLine{}}).TotalItems())
}

func TestTotalPrice(t *testing.T) {
	c := &Cart{Lines: []CartLine{
		{UnitPrice: 1000, Quantity: 2},
		{UnitPrice: 500, Quantity: 3},
		{UnitPrice: 2500, Quantity: 1},
	}}
	// 2000 + 1500 + 2500 = 6000
	assert.Equal(t, int64(6000), c.TotalPrice())
}

func TestTotalPrice_EmptyCart(t *testing.T) {
	assert.Equal(t, int64(0), (&Cart{}).TotalPrice())
}

func TestFindLine(t *testing.T) {
	c := &Cart{Lines: []CartLine{
		{ProductID: "p1", VariantKey: "red"},
		{ProductID: "p2", VariantKey: "default"},
	}}

	assert.Equal(t, 0, c.FindLine("p1-red"))
	assert.Equal(t, 1, c.FindLine("p2-default"))
	assert.Equal(t, -1, c.FindLine("p1-blue"))
	assert.Equal(t, -1, c.FindLine("p9-red"))
}

func TestFindLine_EmptyCart(t *testing.T) {
	assert.Equal(t, -1, (&Cart{}).FindLine("p1-red"))
}
