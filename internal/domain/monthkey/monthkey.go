// Package monthkey handles YYYY-MM billing-period keys. A key names the
// month a payment is credited to, not the month the payment was made in.
package monthkey

import (
	"fmt"
	"time"
)

const layout = "2006-01"

// For returns the key of the month containing t.
func For(t time.Time) string {
	return t.Format(layout)
}

// Parse validates s and returns the first instant of that month (UTC).
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month key %q: want YYYY-MM", s)
	}
	return t, nil
}

// Valid reports whether s is a well-formed YYYY-MM key.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}
