package invoice

import (
	"strings"
	"time"
)

type Status string

const (
	StatusDraft Status = "draft"
	StatusSent  Status = "sent"
	StatusPaid  Status = "paid"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusDraft:
		return StatusDraft, true
	case StatusSent:
		return StatusSent, true
	case StatusPaid:
		return StatusPaid, true
	}
	return "", false
}

// StatusOrDraft is what create and full update use: unknown values fall
// back to draft silently.
func StatusOrDraft(s string) Status {
	if st, ok := ParseStatus(s); ok {
		return st
	}
	return StatusDraft
}

// ParseDate accepts "" (nil), YYYY-MM-DD in loc, or RFC3339.
func ParseDate(s string, loc *time.Location) (*time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return &t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, true
	}
	return nil, false
}
