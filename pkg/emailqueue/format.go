package emailqueue

import (
	"time"
	_ "time/tzdata" // Europe/Paris must resolve on minimal images
)

const (
	// DefaultSubject is used when a job does not provide a subject.
	DefaultSubject = "Notification Staka Livres"

	// DateLayout is the display format of the createdAt variable.
	DateLayout = "02/01/2006 à 15:04"

	// DefaultTimezone is the zone createdAt is displayed in.
	DefaultTimezone = "Europe/Paris"
)

var inputLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02 15:04:05",
}

// formatDate renders v in loc using DateLayout. Values it cannot interpret
// are returned unchanged with ok=false.
func formatDate(v any, loc *time.Location) (string, bool) {
	var t time.Time
	switch val := v.(type) {
	case time.Time:
		t = val
	case *time.Time:
		if val == nil {
			return "", false
		}
		t = *val
	case string:
		parsed, ok := parseDate(val)
		if !ok {
			return val, false
		}
		t = parsed
	case int64:
		t = time.UnixMilli(val)
	case float64:
		t = time.UnixMilli(int64(val))
	default:
		return "", false
	}
	return t.In(loc).Format(DateLayout), true
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
