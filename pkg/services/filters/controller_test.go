package filters

import (
	"testing"
	"time"

	"github.com/dairy-tools/milk-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testScope = []domain.Device{
	{
		ID:        "ABC0001",
		DairyCode: "ABC",
		Members: []domain.Member{
			{Code: "1", Name: "First", MilkType: domain.MilkTypeCow},
			{Code: "17", Name: "Middle", MilkType: domain.MilkTypeBuffalo},
			{Code: "250", Name: "Last", MilkType: domain.MilkTypeCow},
		},
	},
	{ID: "ABC0002", DairyCode: "ABC"},
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
}

func newTestController(report domain.ReportType, session domain.Session) *Controller {
	c := NewController(report, session, testScope)
	c.now = fixedNow
	return c
}

func adminSession() domain.Session {
	return domain.Session{Role: domain.RoleAdmin}
}

func TestCommit_RequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		report domain.ReportType
		draft  map[Field]string
		field  string
	}{
		{
			name:   "daywise without date",
			report: domain.ReportDaywise,
			draft:  map[Field]string{FieldDevice: "ABC0001"},
			field:  "date",
		},
		{
			name:   "daywise without device",
			report: domain.ReportDaywise,
			draft:  map[Field]string{FieldDate: "10/06/2025"},
			field:  "device",
		},
		{
			name:   "codewise without member code",
			report: domain.ReportCodewise,
			draft: map[Field]string{
				FieldDevice: "ABC0001",
				FieldFrom:   "01/06/2025",
				FieldTo:     "10/06/2025",
			},
			field: "member_code",
		},
		{
			name:   "cumulative without member range",
			report: domain.ReportCumulative,
			draft: map[Field]string{
				FieldDevice:     "ABC0002",
				FieldFrom:       "01/06/2025",
				FieldTo:         "10/06/2025",
				FieldMemberFrom: "1",
			},
			field: "member_to",
		},
		{
			name:   "absent members without shift",
			report: domain.ReportAbsent,
			draft:  map[Field]string{FieldDevice: "ABC0001", FieldDate: "10/06/2025"},
			field:  "shift",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(tt.report, adminSession())
			for f, v := range tt.draft {
				c.Set(f, v)
			}

			_, err := c.Commit()
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)

			_, ok := c.Applied()
			assert.False(t, ok, "failed commit must not touch applied state")
		})
	}
}

func TestCommit_DateRules(t *testing.T) {
	tests := []struct {
		name  string
		draft map[Field]string
	}{
		{
			name: "from after to",
			draft: map[Field]string{
				FieldDevice: "ABC0001",
				FieldFrom:   "10/06/2025",
				FieldTo:     "01/06/2025",
			},
		},
		{
			name: "future date",
			draft: map[Field]string{
				FieldDevice: "ABC0001",
				FieldFrom:   "01/06/2025",
				FieldTo:     "16/06/2025",
			},
		},
		{
			name: "unparseable date",
			draft: map[Field]string{
				FieldDevice: "ABC0001",
				FieldFrom:   "2025-06-01",
				FieldTo:     "10/06/2025",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(domain.ReportDatewiseSummary, adminSession())
			for f, v := range tt.draft {
				c.Set(f, v)
			}

			_, err := c.Commit()
			var verr *domain.ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestCommit_Atomic(t *testing.T) {
	c := newTestController(domain.ReportDatewiseSummary, adminSession())
	c.Set(FieldDevice, "ABC0001")
	c.Set(FieldFrom, "01/06/2025")
	c.Set(FieldTo, "10/06/2025")

	first, err := c.Commit()
	require.NoError(t, err)

	// Invalid edit: fromDate after toDate.
	c.Set(FieldFrom, "10/06/2025")
	c.Set(FieldTo, "01/06/2025")
	_, err = c.Commit()

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	applied, ok := c.Applied()
	require.True(t, ok)
	assert.Equal(t, first, applied, "failed commit must leave applied byte-identical")
}

func TestCommit_ScopeContainment(t *testing.T) {
	c := newTestController(domain.ReportDaywise, adminSession())
	c.Set(FieldDevice, "XYZ0009")
	c.Set(FieldDate, "10/06/2025")

	_, err := c.Commit()
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Rule, "scope")
}

func TestDeviceRole_SeedsAndLocksDevice(t *testing.T) {
	session := domain.Session{Role: domain.RoleDevice, DeviceID: "ABC0001"}
	c := NewController(domain.ReportDaywise, session, testScope)
	c.now = fixedNow

	assert.Equal(t, "ABC0001", c.Draft()[FieldDevice])

	c.Set(FieldDevice, "ABC0002")
	assert.Equal(t, "ABC0001", c.Draft()[FieldDevice], "device field is read-only for device sessions")

	c.Set(FieldDate, "10/06/2025")
	filter, err := c.Commit()
	require.NoError(t, err)
	assert.Equal(t, []string{"ABC0001"}, filter.Devices)
}

func TestMemberRangeDefaults(t *testing.T) {
	t.Run("seeded on device selection", func(t *testing.T) {
		c := newTestController(domain.ReportCumulative, adminSession())
		c.Set(FieldDevice, "ABC0001")

		draft := c.Draft()
		assert.Equal(t, "1", draft[FieldMemberFrom])
		assert.Equal(t, "250", draft[FieldMemberTo])
	})

	t.Run("override survives until commit", func(t *testing.T) {
		c := newTestController(domain.ReportCumulative, adminSession())
		c.Set(FieldDevice, "ABC0001")
		c.Set(FieldMemberFrom, "17")
		c.Set(FieldFrom, "01/06/2025")
		c.Set(FieldTo, "10/06/2025")

		filter, err := c.Commit()
		require.NoError(t, err)
		assert.Equal(t, "17", filter.MemberFrom)
		assert.Equal(t, "250", filter.MemberTo)
	})

	t.Run("device without members leaves range empty", func(t *testing.T) {
		c := newTestController(domain.ReportCumulative, adminSession())
		c.Set(FieldDevice, "ABC0002")

		draft := c.Draft()
		assert.Empty(t, draft[FieldMemberFrom])
		assert.Empty(t, draft[FieldMemberTo])
	})
}

func TestCommit_DimensionValues(t *testing.T) {
	c := newTestController(domain.ReportDaywise, adminSession())
	c.Set(FieldDevice, "ABC0001")
	c.Set(FieldDate, "10/06/2025")
	c.Set(FieldShift, "NOON")

	_, err := c.Commit()
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "shift", verr.Field)

	c.Set(FieldShift, "MORNING")
	c.Set(FieldMilkType, "COW")
	filter, err := c.Commit()
	require.NoError(t, err)
	assert.Equal(t, domain.ShiftMorning, filter.Shift)
	assert.Equal(t, domain.MilkTypeCow, filter.MilkType)
}
