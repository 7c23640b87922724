package domain

// Product mirrors the shape served by the external catalog API. The catalog
// is read-only to this system; products are never stored locally.
type Product struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
}

// Category is a product grouping served by the external catalog API.
type Category struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}
