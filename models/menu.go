package models

type MenuItem struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	NumericPrice int64  `json:"numericPrice"`
}

// CartItem is a menu item with the quantity picked by the customer (always >= 1).
type CartItem struct {
	MenuItem
	Quantity int `json:"quantity"`
}

// LineTotal is price × quantity for one cart line.
func (ci CartItem) LineTotal() int64 {
	return ci.NumericPrice * int64(ci.Quantity)
}
