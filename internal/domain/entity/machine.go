package entity

// Estados posibles de una máquina.
const (
	MachineStatusActive      = "active"
	MachineStatusInactive    = "inactive"
	MachineStatusMaintenance = "maintenance"
)

// Machine representa una máquina que consume materiales.
type Machine struct {
	ID          string
	Name        string
	Description string
	Status      string // active, inactive, maintenance
}

// ValidMachineStatus indica si s es uno de los estados admitidos.
func ValidMachineStatus(s string) bool {
	switch s {
	case MachineStatusActive, MachineStatusInactive, MachineStatusMaintenance:
		return true
	}
	return false
}
