package domain

// Item is one product record from the menu feed. The feed is read-only and
// fetched once per session; items are never mutated after load.
type Item struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quote       string  `json:"quote"`
	Image       string  `json:"image"`
	Price       int64   `json:"price"`
	Rating      float64 `json:"rating"`
}

// Displayable reports whether the record carries everything the storefront
// needs to list it and add it to a cart directly.
func (i Item) Displayable() bool {
	return i.ID != "" && i.Name != "" && i.Price >= 0
}
