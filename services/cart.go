package services

import (
	"cafe-gandom/models"
)

// Cart is the customer's unsubmitted selection, ordered by first add and unique by item id.
type Cart struct {
	items []models.CartItem
}

func NewCart() *Cart {
	return &Cart{}
}

func (c *Cart) index(id string) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

// AddItem bumps the quantity of an existing line or appends a new one with quantity 1.
func (c *Cart) AddItem(item models.MenuItem) {
	if i := c.index(item.ID); i >= 0 {
		c.items[i].Quantity++
		return
	}
	c.items = append(c.items, models.CartItem{MenuItem: item, Quantity: 1})
}

// UpdateQuantity applies delta, clamping at zero; a line that reaches zero is removed.
// Unknown ids are ignored.
func (c *Cart) UpdateQuantity(id string, delta int) {
	i := c.index(id)
	if i < 0 {
		return
	}
	qty := c.items[i].Quantity + delta
	if qty <= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
		return
	}
	c.items[i].Quantity = qty
}

func (c *Cart) RemoveItem(id string) {
	if i := c.index(id); i >= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
}

func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, it := range c.items {
		total += it.LineTotal()
	}
	return total
}

func (c *Cart) TotalItemCount() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Quantity returns the quantity for id, or 0 when it is not in the cart.
func (c *Cart) Quantity(id string) int {
	if i := c.index(id); i >= 0 {
		return c.items[i].Quantity
	}
	return 0
}

func (c *Cart) Items() []models.CartItem {
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int { return len(c.items) }

func (c *Cart) Clear() {
	c.items = nil
}
