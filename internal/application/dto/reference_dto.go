package dto

// MachineResponse salida de una máquina.
type MachineResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// NamedResponse salida de categorías y ubicaciones.
type NamedResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}
