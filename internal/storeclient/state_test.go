package storeclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateAddItem(t *testing.T) {
	widget := Product{ID: "p1", Name: "Widget", Price: 100}

	t.Run("merges lines for the same product", func(t *testing.T) {
		s := State{}.AddItem(widget, 1).AddItem(widget, 1)

		require.Len(t, s.Cart, 1)
		assert.Equal(t, 2, s.Cart[0].Quantity)
		assert.Equal(t, 2, s.CartCount())
	})

	t.Run("ignores non-positive quantity", func(t *testing.T) {
		s := State{}.AddItem(widget, 0).AddItem(widget, -1)
		assert.Empty(t, s.Cart)
	})

	t.Run("does not mutate the receiver", func(t *testing.T) {
		before := State{}.AddItem(widget, 1)
		_ = before.AddItem(widget, 5)
		assert.Equal(t, 1, before.Cart[0].Quantity)
	})
}

func TestStateSetQuantity(t *testing.T) {
	widget := Product{ID: "p1", Name: "Widget", Price: 100}

	t.Run("updates the line", func(t *testing.T) {
		s := State{}.AddItem(widget, 1).SetQuantity("p1", 4)
		assert.Equal(t, 4, s.Cart[0].Quantity)
	})

	t.Run("zero removes the line", func(t *testing.T) {
		s := State{}.AddItem(widget, 3).SetQuantity("p1", 0)
		assert.Empty(t, s.Cart)
	})

	t.Run("negative removes the line", func(t *testing.T) {
		s := State{}.AddItem(widget, 3).SetQuantity("p1", -2)
		assert.Empty(t, s.Cart)
	})
}

func TestStateTotal(t *testing.T) {
	s := State{}.
		AddItem(Product{ID: "p1", Price: 100}, 2).
		AddItem(Product{ID: "p2", Price: 50}, 1)

	assert.Equal(t, "250", s.Total().String())

	s = s.RemoveItem("p1")
	assert.Equal(t, "50", s.Total().String())

	s = s.ClearCart()
	assert.True(t, s.Total().IsZero())
}

func TestStateTotalAvoidsFloatDrift(t *testing.T) {
	s := State{}.AddItem(Product{ID: "p1", Price: 0.1}, 3)
	assert.Equal(t, "0.3", s.Total().String())
}

func TestStateWishlistToggle(t *testing.T) {
	s := State{}.ToggleWishlist("p1")
	assert.True(t, s.InWishlist("p1"))

	s = s.ToggleWishlist("p1")
	assert.False(t, s.InWishlist("p1"))
}

func TestFilterProducts(t *testing.T) {
	products := []Product{
		{ID: "p1", Name: "Galaxy S24", Description: "flagship phone", Category: "Mobile"},
		{ID: "p2", Name: "MacBook Pro", Description: "laptop for pros", Category: "Laptop"},
	}

	assert.Len(t, filterProducts(products, "galaxy"), 1)
	assert.Len(t, filterProducts(products, "LAPTOP"), 1)
	assert.Len(t, filterProducts(products, "pro"), 1)
	assert.Empty(t, filterProducts(products, "camera"))

	assert.Len(t, filterByCategory(products, "mobile"), 1)
	assert.Empty(t, filterByCategory(products, "TV"))
}
