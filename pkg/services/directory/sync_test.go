package directory

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/dairy-tools/milk-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUpstream struct {
	mock.Mock
}

func (m *mockUpstream) Get(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	args := m.Called(ctx, endpoint, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) ListAllDevices(ctx context.Context) ([]domain.Device, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Device), args.Error(1)
}

func (m *mockStore) ListDevicesByDairyCode(ctx context.Context, code string) ([]domain.Device, error) {
	args := m.Called(ctx, code)
	return args.Get(0).([]domain.Device), args.Error(1)
}

func (m *mockStore) GetDeviceByID(ctx context.Context, id string) (domain.Device, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Device), args.Error(1)
}

func (m *mockStore) ReplaceAll(ctx context.Context, devices []domain.Device) error {
	args := m.Called(ctx, devices)
	return args.Error(0)
}

func TestSync_ReplacesDirectory(t *testing.T) {
	payload := `{"data": [
		{"ID": "SCT0001", "DAIRYCODE": "SCT", "MEMBERS": [
			{"CODE": "1", "NAME": "First", "MILKTYPE": "COW", "STATUS": "ACTIVE"},
			{"CODE": "250", "NAME": "Last", "MILKTYPE": "BUF", "STATUS": "ACTIVE"}
		]},
		{"ID": "PLN0001"}
	]}`

	upstream := &mockUpstream{}
	upstream.On("Get", mock.Anything, "/directory/devices", mock.Anything).
		Return(json.RawMessage(payload), nil)

	var replaced []domain.Device
	st := &mockStore{}
	st.On("ReplaceAll", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			replaced = args.Get(1).([]domain.Device)
		}).
		Return(nil)

	n, err := NewSyncer(upstream, st).Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.Len(t, replaced, 2)
	assert.Equal(t, "SCT0001", replaced[0].ID)
	require.Len(t, replaced[0].Members, 2)
	assert.Equal(t, domain.MilkTypeBuffalo, replaced[0].Members[1].MilkType)

	// Missing dairy code falls back to the ID prefix.
	assert.Equal(t, "PLN", replaced[1].DairyCode)
}

func TestSync_MalformedResponse(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "not json", payload: `<html>bad gateway</html>`},
		{name: "device without id", payload: `{"data":[{"DAIRYCODE":"SCT"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := &mockUpstream{}
			upstream.On("Get", mock.Anything, "/directory/devices", mock.Anything).
				Return(json.RawMessage(tt.payload), nil)

			st := &mockStore{}
			_, err := NewSyncer(upstream, st).Sync(context.Background())

			var ferr *domain.FetchError
			require.ErrorAs(t, err, &ferr)
			st.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything)
		})
	}
}

func TestSync_StoreFailure(t *testing.T) {
	upstream := &mockUpstream{}
	upstream.On("Get", mock.Anything, "/directory/devices", mock.Anything).
		Return(json.RawMessage(`{"data":[]}`), nil)

	st := &mockStore{}
	st.On("ReplaceAll", mock.Anything, mock.Anything).
		Return(errors.New("disk full"))

	_, err := NewSyncer(upstream, st).Sync(context.Background())
	assert.ErrorContains(t, err, "disk full")
}
