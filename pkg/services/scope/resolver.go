package scope

import (
	"context"

	"github.com/dairy-tools/milk-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Directory is the read-only device/member directory the resolver draws
// from. The report pipeline never writes through it.
type Directory interface {
	ListAllDevices(ctx context.Context) ([]domain.Device, error)
	ListDevicesByDairyCode(ctx context.Context, dairyCode string) ([]domain.Device, error)
	GetDeviceByID(ctx context.Context, id string) (domain.Device, error)
}

type Resolver interface {
	// ResolveScope returns the devices the session may query. For admin
	// sessions selectedDairy narrows the scope to one dairy; other roles
	// ignore it. A directory outage yields an empty scope, not an error.
	ResolveScope(ctx context.Context, session domain.Session, selectedDairy string) ([]domain.Device, error)
}

type resolver struct {
	directory Directory
}

func NewResolver(directory Directory) Resolver {
	return &resolver{directory: directory}
}

func (r *resolver) ResolveScope(
	ctx context.Context,
	session domain.Session,
	selectedDairy string,
) ([]domain.Device, error) {
	logger := zerolog.Ctx(ctx)

	var (
		devices []domain.Device
		err     error
	)

	switch session.Role {
	case domain.RoleDevice:
		var d domain.Device
		d, err = r.directory.GetDeviceByID(ctx, session.DeviceID)
		if err == nil {
			devices = []domain.Device{d}
		}
	case domain.RoleDairy:
		devices, err = r.directory.ListDevicesByDairyCode(ctx, session.DairyCode)
	case domain.RoleAdmin:
		if selectedDairy == "" {
			devices, err = r.directory.ListAllDevices(ctx)
		} else {
			devices, err = r.directory.ListDevicesByDairyCode(ctx, selectedDairy)
		}
	default:
		logger.Warn().Str("role", string(session.Role)).Msg("unknown role, resolving empty scope")
		return []domain.Device{}, nil
	}

	if err != nil {
		// Scope-dependent filters are disabled upstream when the set is
		// empty; a directory outage must not be a hard failure.
		logger.Warn().Err(err).Msg("device directory unavailable, resolving empty scope")
		return []domain.Device{}, nil
	}
	return devices, nil
}

// DeviceIDs projects a resolved scope onto its identifiers.
func DeviceIDs(devices []domain.Device) []string {
	ids := make([]string, 0, len(devices))
	for _, d := range devices {
		ids = append(ids, d.ID)
	}
	return ids
}
