package filters

import (
	"regexp"
	"strings"
	"time"

	"github.com/dairy-tools/milk-atlas/pkg/models/domain"
)

// Field names one editable filter input.
type Field string

const (
	FieldDevice     Field = "device"
	FieldDevices    Field = "devices"
	FieldDate       Field = "date"
	FieldFrom       Field = "from"
	FieldTo         Field = "to"
	FieldShift      Field = "shift"
	FieldMilkType   Field = "milk_type"
	FieldMemberCode Field = "member_code"
	FieldMemberFrom Field = "member_from"
	FieldMemberTo   Field = "member_to"
)

// requiredFields is the per-report-type validation table checked on commit.
var requiredFields = map[domain.ReportType][]Field{
	domain.ReportDaywise:          {FieldDevice, FieldDate},
	domain.ReportDashboard:        {FieldDevices, FieldDate},
	domain.ReportCodewise:         {FieldDevice, FieldMemberCode, FieldFrom, FieldTo},
	domain.ReportDatewiseSummary:  {FieldDevice, FieldFrom, FieldTo},
	domain.ReportDatewiseDetailed: {FieldDevice, FieldFrom, FieldTo},
	domain.ReportCumulative:       {FieldDevice, FieldFrom, FieldTo, FieldMemberFrom, FieldMemberTo},
	domain.ReportAbsent:           {FieldDevice, FieldDate, FieldShift},
}

var memberCodePattern = regexp.MustCompile(`^[0-9]{1,4}$`)

// Controller holds the draft (raw form values, edited live) and applied
// (validated, used for the last query) filter records for one report type.
// Commit is the only way draft values reach the applied record.
type Controller struct {
	report  domain.ReportType
	session domain.Session
	scope   []domain.Device

	draft        map[Field]string
	applied      *domain.ReportFilter
	deviceLocked bool

	now func() time.Time
}

func NewController(report domain.ReportType, session domain.Session, scope []domain.Device) *Controller {
	c := &Controller{
		report:  report,
		session: session,
		scope:   scope,
		draft:   map[Field]string{},
		now:     time.Now,
	}

	// Device-role sessions always query their own device; the field is
	// seeded from the session and not editable.
	if session.Role == domain.RoleDevice {
		c.deviceLocked = true
		c.draft[FieldDevice] = session.DeviceID
		c.draft[FieldDevices] = session.DeviceID
		c.defaultMemberRange(session.DeviceID)
	}

	return c
}

// Report returns the report type this controller validates for.
func (c *Controller) Report() domain.ReportType {
	return c.report
}

// Set stores a raw draft value. It never validates; bad values surface at
// commit. Changing the device selection re-defaults the member-code range
// to the device's first and last member.
func (c *Controller) Set(field Field, value string) {
	if c.deviceLocked && (field == FieldDevice || field == FieldDevices) {
		return
	}
	if field == FieldDevice && c.draft[field] != value {
		c.defaultMemberRangeFor(value)
	}
	c.draft[field] = value
}

// UpdateScope replaces the resolved device scope, e.g. after an admin
// selects a different dairy.
func (c *Controller) UpdateScope(scope []domain.Device) {
	if c.deviceLocked {
		return
	}
	c.scope = scope
}

// Draft returns a copy of the raw draft values.
func (c *Controller) Draft() map[Field]string {
	out := make(map[Field]string, len(c.draft))
	for k, v := range c.draft {
		out[k] = v
	}
	return out
}

// Applied returns the last committed filter, if any.
func (c *Controller) Applied() (domain.ReportFilter, bool) {
	if c.applied == nil {
		return domain.ReportFilter{}, false
	}
	return *c.applied, true
}

// Commit validates the draft against the report type's rules and, on
// success, atomically replaces the applied record. On failure the applied
// record is left untouched and a ValidationError names the violated rule.
func (c *Controller) Commit() (domain.ReportFilter, error) {
	filter, err := c.validate()
	if err != nil {
		return domain.ReportFilter{}, err
	}
	c.applied = &filter
	return filter, nil
}

func (c *Controller) validate() (domain.ReportFilter, error) {
	var zero domain.ReportFilter

	for _, f := range requiredFields[c.report] {
		if strings.TrimSpace(c.draft[f]) == "" {
			return zero, &domain.ValidationError{Field: string(f), Rule: "required"}
		}
	}

	filter := domain.ReportFilter{}

	if v := c.draft[FieldDevices]; v != "" && c.report == domain.ReportDashboard {
		for _, id := range strings.Split(v, ",") {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			filter.Devices = append(filter.Devices, id)
		}
	} else if v := c.draft[FieldDevice]; v != "" {
		filter.Devices = []string{v}
	}
	for _, id := range filter.Devices {
		if !c.inScope(id) {
			return zero, &domain.ValidationError{Field: string(FieldDevice), Rule: "device outside session scope"}
		}
	}

	today := truncateDay(c.now())

	parseDate := func(field Field) (time.Time, error) {
		t, err := domain.ParseDate(c.draft[field])
		if err != nil {
			return time.Time{}, &domain.ValidationError{Field: string(field), Rule: "must be a DD/MM/YYYY date"}
		}
		if t.After(today) {
			return time.Time{}, &domain.ValidationError{Field: string(field), Rule: "must not be in the future"}
		}
		return t, nil
	}

	if c.draft[FieldDate] != "" {
		t, err := parseDate(FieldDate)
		if err != nil {
			return zero, err
		}
		filter.Date = t
	}
	if c.draft[FieldFrom] != "" {
		t, err := parseDate(FieldFrom)
		if err != nil {
			return zero, err
		}
		filter.From = t
	}
	if c.draft[FieldTo] != "" {
		t, err := parseDate(FieldTo)
		if err != nil {
			return zero, err
		}
		filter.To = t
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.From.After(filter.To) {
		return zero, &domain.ValidationError{Field: string(FieldFrom), Rule: "from date must not be after to date"}
	}

	if v := c.draft[FieldShift]; v != "" {
		s := domain.Shift(v)
		if !s.Valid() {
			return zero, &domain.ValidationError{Field: string(FieldShift), Rule: "must be MORNING or EVENING"}
		}
		filter.Shift = s
	}
	if v := c.draft[FieldMilkType]; v != "" {
		m := domain.MilkType(v)
		if !m.Valid() {
			return zero, &domain.ValidationError{Field: string(FieldMilkType), Rule: "must be COW, BUF or ALL"}
		}
		filter.MilkType = m
	}

	for _, f := range []Field{FieldMemberCode, FieldMemberFrom, FieldMemberTo} {
		if v := c.draft[f]; v != "" {
			if !memberCodePattern.MatchString(v) {
				return zero, &domain.ValidationError{Field: string(f), Rule: "must be a 1-4 digit member code"}
			}
		}
	}
	filter.MemberCode = c.draft[FieldMemberCode]
	filter.MemberFrom = c.draft[FieldMemberFrom]
	filter.MemberTo = c.draft[FieldMemberTo]

	return filter, nil
}

func (c *Controller) inScope(deviceID string) bool {
	for _, d := range c.scope {
		if d.ID == deviceID {
			return true
		}
	}
	return false
}

func (c *Controller) defaultMemberRange(deviceID string) {
	c.defaultMemberRangeFor(deviceID)
}

func (c *Controller) defaultMemberRangeFor(deviceID string) {
	for _, d := range c.scope {
		if d.ID != deviceID || len(d.Members) == 0 {
			continue
		}
		c.draft[FieldMemberFrom] = d.Members[0].Code
		c.draft[FieldMemberTo] = d.Members[len(d.Members)-1].Code
		return
	}
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
