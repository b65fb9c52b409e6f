package entity

// Supplier representa un proveedor de materiales.
type Supplier struct {
	ID      string
	Name    string
	Contact string
	Email   string
	Phone   string
}
