package domain

import "time"

// Cart is the server-side cart aggregate, one per customer, stored as a
// JSON snapshot in Redis. Checkout consumes the snapshot; the cart never
// holds prices, those are read from the catalog at placement time.
type Cart struct {
	CustomerID uint       `json:"customer_id"`
	Items      []CartItem `json:"items"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type CartItem struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// Merge adds quantity for an already-present product or appends a new line.
func (c *Cart) Merge(item CartItem) {
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity
			return
		}
	}
	c.Items = append(c.Items, item)
}

// Remove drops the line for productID, if present.
func (c *Cart) Remove(productID uint) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}
