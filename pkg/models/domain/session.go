package domain

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleDairy  Role = "DAIRY"
	RoleDevice Role = "DEVICE"
)

// Session is the caller's identity for the lifetime of a login.
// It is read-only inside the report pipeline.
type Session struct {
	Role      Role
	DairyCode string
	DeviceID  string
}
