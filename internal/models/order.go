// Package models contains data structures for the application's domain models.
package models

// OrderItem is one line of an incoming order. The item id is deliberately not
// checked against the catalog; the current intake accepts unknown ids.
type OrderItem struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

// OrderRequest is the body of POST /api/order. Orders are transient: accepted,
// logged and discarded, never persisted.
type OrderRequest struct {
	Items []OrderItem `json:"items" validate:"dive"`
}
