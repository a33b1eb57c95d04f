package store

// Device is a directory row as persisted in the embedded store.
type Device struct {
	ID        string
	DairyCode string
}

// Member is a directory row. Position preserves the upstream ordering of a
// device's member list, which drives member-code range defaults.
type Member struct {
	DeviceID       string
	Code           string
	Name           string
	MilkType       string
	CommissionType string
	Status         string
	Position       int
}
