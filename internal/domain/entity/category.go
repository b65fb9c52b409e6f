package entity

// Category representa una categoría de materiales.
type Category struct {
	ID   string
	Name string
}
