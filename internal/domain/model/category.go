package model

// Category is read-only taxonomy data fetched from the catalog API.
type Category struct {
	ID   string
	Name string
}
