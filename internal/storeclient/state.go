package storeclient

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// CartItem is one line of the client-owned cart.
type CartItem struct {
	ProductID string
	Name      string
	Price     float64
	Image     string
	Quantity  int
}

// State is an immutable snapshot of the client's view: the loaded catalog,
// the cart, the wishlist, and the signed-in account. Mutating methods return
// a new State and leave the receiver untouched.
type State struct {
	Products []Product
	Cart     []CartItem
	Wishlist []string
	User     *User
	Token    string
}

func (s State) cloneCart() []CartItem {
	return slices.Clone(s.Cart)
}

// AddItem adds quantity of p to the cart, merging with an existing line for
// the same product.
func (s State) AddItem(p Product, quantity int) State {
	if quantity <= 0 {
		return s
	}

	cart := s.cloneCart()
	for i := range cart {
		if cart[i].ProductID == p.ID {
			cart[i].Quantity += quantity
			s.Cart = cart
			return s
		}
	}

	s.Cart = append(cart, CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Quantity:  quantity,
	})
	return s
}

// SetQuantity sets the quantity of a cart line. A quantity of zero or less
// removes the line.
func (s State) SetQuantity(productID string, quantity int) State {
	if quantity <= 0 {
		return s.RemoveItem(productID)
	}

	cart := s.cloneCart()
	for i := range cart {
		if cart[i].ProductID == productID {
			cart[i].Quantity = quantity
			break
		}
	}
	s.Cart = cart
	return s
}

// RemoveItem deletes a cart line.
func (s State) RemoveItem(productID string) State {
	s.Cart = slices.DeleteFunc(s.cloneCart(), func(it CartItem) bool {
		return it.ProductID == productID
	})
	return s
}

// ClearCart empties the cart.
func (s State) ClearCart() State {
	s.Cart = nil
	return s
}

// Total recomputes the cart total from its lines.
func (s State) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.Cart {
		line := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(line)
	}
	return total.Round(2)
}

// CartCount is the number of units across all cart lines.
func (s State) CartCount() int {
	count := 0
	for _, it := range s.Cart {
		count += it.Quantity
	}
	return count
}

// ToggleWishlist adds the product to the wishlist, or removes it when already
// present. The wishlist never leaves the client.
func (s State) ToggleWishlist(productID string) State {
	if s.InWishlist(productID) {
		s.Wishlist = slices.DeleteFunc(slices.Clone(s.Wishlist), func(id string) bool {
			return id == productID
		})
		return s
	}
	s.Wishlist = append(slices.Clone(s.Wishlist), productID)
	return s
}

// InWishlist reports whether the product is wishlisted.
func (s State) InWishlist(productID string) bool {
	return slices.Contains(s.Wishlist, productID)
}

// filterProducts is the local fallback for search: case-insensitive substring
// match over name, description, and category.
func filterProducts(products []Product, term string) []Product {
	term = strings.ToLower(term)
	var out []Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) ||
			strings.Contains(strings.ToLower(p.Category), term) {
			out = append(out, p)
		}
	}
	return out
}

// filterByCategory is the local fallback for category browsing.
func filterByCategory(products []Product, category string) []Product {
	var out []Product
	for _, p := range products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}
