package directory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dairy-tools/milk-atlas/pkg/adapters"
	"github.com/dairy-tools/milk-atlas/pkg/models/domain"
	"github.com/dairy-tools/milk-atlas/pkg/models/store"
	"github.com/dairy-tools/milk-atlas/pkg/store/duckdb"
	"github.com/rs/zerolog"
)

// Store is the embedded device/member directory. The report pipeline only
// reads it; ReplaceAll exists for the sync path that mirrors the upstream
// directory.
type Store interface {
	ListAllDevices(ctx context.Context) ([]domain.Device, error)
	ListDevicesByDairyCode(ctx context.Context, dairyCode string) ([]domain.Device, error)
	GetDeviceByID(ctx context.Context, id string) (domain.Device, error)
	ReplaceAll(ctx context.Context, devices []domain.Device) error
}

type directoryStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &directoryStore{db: db}, nil
}

func (d *directoryStore) ListAllDevices(ctx context.Context) ([]domain.Device, error) {
	return d.listDevices(ctx, `SELECT id, dairy_code FROM devices ORDER BY id`)
}

func (d *directoryStore) ListDevicesByDairyCode(ctx context.Context, dairyCode string) ([]domain.Device, error) {
	return d.listDevices(ctx, `SELECT id, dairy_code FROM devices WHERE dairy_code = ? ORDER BY id`, dairyCode)
}

func (d *directoryStore) GetDeviceByID(ctx context.Context, id string) (domain.Device, error) {
	row := d.db.QueryRowContext(ctx, `SELECT id, dairy_code FROM devices WHERE id = ?`, id)

	var dev store.Device
	if err := row.Scan(&dev.ID, &dev.DairyCode); err != nil {
		if err == sql.ErrNoRows {
			return domain.Device{}, fmt.Errorf("device not found: %s", id)
		}
		return domain.Device{}, fmt.Errorf("device lookup failed: %w", err)
	}

	members, err := d.listMembers(ctx, dev.ID)
	if err != nil {
		return domain.Device{}, err
	}

	return domain.Device{ID: dev.ID, DairyCode: dev.DairyCode, Members: members}, nil
}

func (d *directoryStore) listDevices(ctx context.Context, query string, args ...any) ([]domain.Device, error) {
	logger := zerolog.Ctx(ctx)

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("device query failed: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close device query rows")
		}
	}(rows)

	var devices []domain.Device
	for rows.Next() {
		var dev store.Device
		if err := rows.Scan(&dev.ID, &dev.DairyCode); err != nil {
			return nil, err
		}
		members, err := d.listMembers(ctx, dev.ID)
		if err != nil {
			return nil, err
		}
		devices = append(devices, domain.Device{ID: dev.ID, DairyCode: dev.DairyCode, Members: members})
	}
	return devices, rows.Err()
}

func (d *directoryStore) listMembers(ctx context.Context, deviceID string) ([]domain.Member, error) {
	logger := zerolog.Ctx(ctx)

	rows, err := d.db.QueryContext(ctx, `
		SELECT device_id, code, name, milk_type, commission_type, status, position
		FROM members
		WHERE device_id = ?
		ORDER BY position`, deviceID)
	if err != nil {
		return nil, fmt.Errorf("member query failed: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close member query rows")
		}
	}(rows)

	var members []domain.Member
	for rows.Next() {
		var m store.Member
		if err := rows.Scan(&m.DeviceID, &m.Code, &m.Name, &m.MilkType, &m.CommissionType, &m.Status, &m.Position); err != nil {
			return nil, err
		}
		members = append(members, adapters.MapStoreMemberToDomain(m))
	}
	return members, rows.Err()
}

// ReplaceAll swaps the whole directory in one transaction. The pipeline's
// reads always see either the old or the new directory, never a mix.
func (d *directoryStore) ReplaceAll(ctx context.Context, devices []domain.Device) error {
	tx := duckdb.GetTransaction(ctx)
	ownTx := tx == nil
	if ownTx {
		var err error
		tx, err = d.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin directory replace: %w", err)
		}
		defer func() { _ = tx.Rollback() }()
	}

	for _, query := range []string{`DELETE FROM members`, `DELETE FROM devices`} {
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("clear directory: %w", err)
		}
	}

	deviceStmt, err := tx.PrepareContext(ctx, `INSERT INTO devices (id, dairy_code) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare device insert: %w", err)
	}
	defer deviceStmt.Close()

	memberStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO members (device_id, code, name, milk_type, commission_type, status, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare member insert: %w", err)
	}
	defer memberStmt.Close()

	for _, dev := range devices {
		if _, err := deviceStmt.ExecContext(ctx, dev.ID, dev.DairyCode); err != nil {
			return fmt.Errorf("insert device %s: %w", dev.ID, err)
		}
		for i, m := range dev.Members {
			row := adapters.MapDomainMemberToStore(dev.ID, i, m)
			_, err := memberStmt.ExecContext(ctx,
				row.DeviceID, row.Code, row.Name, row.MilkType, row.CommissionType, row.Status, row.Position)
			if err != nil {
				return fmt.Errorf("insert member %s/%s: %w", dev.ID, m.Code, err)
			}
		}
	}

	if ownTx {
		return tx.Commit()
	}
	return nil
}
