package domain

type MilkType string

const (
	MilkTypeCow     MilkType = "COW"
	MilkTypeBuffalo MilkType = "BUF"
	MilkTypeAll     MilkType = "ALL"
)

func (m MilkType) Valid() bool {
	switch m {
	case MilkTypeCow, MilkTypeBuffalo, MilkTypeAll:
		return true
	}
	return false
}

type Shift string

const (
	ShiftMorning Shift = "MORNING"
	ShiftEvening Shift = "EVENING"
)

func (s Shift) Valid() bool {
	return s == ShiftMorning || s == ShiftEvening
}

// Member is a milk producer registered on a collection device. Code is a
// 1-4 digit numeric string unique within the device.
type Member struct {
	Code           string
	Name           string
	MilkType       MilkType
	CommissionType string
	Status         string
}

// Device is a milk-collection unit. The first three characters of its ID
// are the owning dairy's code.
type Device struct {
	ID        string
	DairyCode string
	Members   []Member
}

// OwnerCode returns the dairy code embedded in the device ID.
func (d Device) OwnerCode() string {
	if len(d.ID) < 3 {
		return d.ID
	}
	return d.ID[:3]
}
