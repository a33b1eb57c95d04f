package directory

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dairy-tools/milk-atlas/pkg/models/domain"
	"github.com/dairy-tools/milk-atlas/pkg/store/duckdb"
	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupFixture(t *testing.T) *fixture {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)

	store, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return &fixture{db: db, store: store}
}

func seedDirectory(t *testing.T, f *fixture) {
	err := f.store.ReplaceAll(context.Background(), []domain.Device{
		{
			ID:        "ABC0001",
			DairyCode: "ABC",
			Members: []domain.Member{
				{Code: "5", Name: "Anand", MilkType: domain.MilkTypeCow, Status: "ACTIVE"},
				{Code: "2", Name: "Bala", MilkType: domain.MilkTypeBuffalo, Status: "ACTIVE"},
				{Code: "31", Name: "Chitra", MilkType: domain.MilkTypeCow, Status: "INACTIVE"},
			},
		},
		{ID: "ABC0002", DairyCode: "ABC"},
		{ID: "XYZ0001", DairyCode: "XYZ"},
	})
	require.NoError(t, err)
}

func TestDirectoryStore_ListAllDevices(t *testing.T) {
	f := setupFixture(t)
	seedDirectory(t, f)

	devices, err := f.store.ListAllDevices(context.Background())
	require.NoError(t, err)
	require.Len(t, devices, 3)
	assert.Equal(t, "ABC0001", devices[0].ID)
	assert.Equal(t, "XYZ0001", devices[2].ID)
}

func TestDirectoryStore_ListDevicesByDairyCode(t *testing.T) {
	f := setupFixture(t)
	seedDirectory(t, f)

	devices, err := f.store.ListDevicesByDairyCode(context.Background(), "ABC")
	require.NoError(t, err)
	require.Len(t, devices, 2)
	for _, d := range devices {
		assert.Equal(t, "ABC", d.DairyCode)
	}
}

func TestDirectoryStore_GetDeviceByID(t *testing.T) {
	f := setupFixture(t)
	seedDirectory(t, f)

	t.Run("members keep upstream order", func(t *testing.T) {
		device, err := f.store.GetDeviceByID(context.Background(), "ABC0001")
		require.NoError(t, err)

		codes := make([]string, 0, len(device.Members))
		for _, m := range device.Members {
			codes = append(codes, m.Code)
		}
		// Insertion order, not code order: range defaults depend on it.
		assert.Equal(t, []string{"5", "2", "31"}, codes)
	})

	t.Run("unknown device", func(t *testing.T) {
		_, err := f.store.GetDeviceByID(context.Background(), "NOPE001")
		assert.ErrorContains(t, err, "device not found")
	})
}

func TestDirectoryStore_ReplaceAllSwapsAtomically(t *testing.T) {
	f := setupFixture(t)
	seedDirectory(t, f)

	err := f.store.ReplaceAll(context.Background(), []domain.Device{
		{ID: "NEW0001", DairyCode: "NEW"},
	})
	require.NoError(t, err)

	devices, err := f.store.ListAllDevices(context.Background())
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "NEW0001", devices[0].ID)

	var members int
	require.NoError(t, f.db.QueryRow(`SELECT COUNT(*) FROM members`).Scan(&members))
	assert.Zero(t, members, "old members must be gone")
}

func TestDirectoryStore_QueryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, dairy_code FROM devices").
		WillReturnError(sql.ErrConnDone)

	store, err := NewStore(db)
	require.NoError(t, err)

	_, err = store.ListAllDevices(context.Background())
	assert.ErrorContains(t, err, "device query failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}
