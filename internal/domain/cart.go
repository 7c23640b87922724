package domain

// Cart holds a user's shopping cart. Carts are keyed by the owning user and
// live only as long as the backing store keeps them.
type Cart struct {
	UserID int64      `json:"userId"`
	Items  []CartItem `json:"items"`
}

// CartItem is a product plus the quantity in the cart.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Total returns the cart total: sum of price times quantity over all items.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

// ItemCount returns the total number of units across all items.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// FindItemIndex returns the index of the cart item for the given product, or
// -1 when the product is not in the cart.
func (c *Cart) FindItemIndex(productID int64) int {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// AddProduct increments the quantity for the product, appending a new line
// when the product is not yet in the cart. The original UI added one unit per
// click; quantity generalizes that.
func (c *Cart) AddProduct(p Product, quantity int) {
	if i := c.FindItemIndex(p.ID); i >= 0 {
		c.Items[i].Quantity += quantity
		return
	}
	c.Items = append(c.Items, CartItem{Product: p, Quantity: quantity})
}

// RemoveProduct decrements the quantity for the product, dropping the line
// entirely when it reaches zero. Removing a product not in the cart is a
// no-op.
func (c *Cart) RemoveProduct(productID int64) {
	i := c.FindItemIndex(productID)
	if i < 0 {
		return
	}
	if c.Items[i].Quantity > 1 {
		c.Items[i].Quantity--
		return
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
}
