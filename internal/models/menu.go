// Package models contains data structures for the application's domain models.
package models

// MenuItem is one entry in the menu service's read-only catalog. The JSON
// field names mirror what the storefront consumes, including the camelCase
// isFeatured and imageUrl.
type MenuItem struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Price       float64 `json:"price" yaml:"price"`
	Category    string  `json:"category" yaml:"category"`
	Rating      float64 `json:"rating" yaml:"rating"`
	IsFeatured  bool    `json:"isFeatured" yaml:"isFeatured"`
	ImageURL    string  `json:"imageUrl" yaml:"imageUrl"`
}
