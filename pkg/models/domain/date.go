package domain

import "time"

const (
	// DateLayout is the wire and display format for sample dates.
	DateLayout = "02/01/2006"
	// FileDateLayout is used in export file names.
	FileDateLayout = "02-01-2006"
)

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func FormatFileDate(t time.Time) string {
	return t.Format(FileDateLayout)
}
