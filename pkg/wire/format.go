// Package wire provides streaming, pull-style readers and writers for the XML and
// JSON documents exchanged with the Redmine REST API.
//
// Readers and writers keep the first error they encounter and turn every later call
// into a no-op, so entity codecs can be written as flat field-by-field code and check
// the error once at the end.
package wire

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05 MST",
	time.DateTime,
	time.DateOnly,
}

// ParseDate parses a yyyy-mm-dd value. Empty input yields nil.
func ParseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		// some servers send full timestamps for date fields
		return ParseTime(raw)
	}
	return &t, nil
}

// ParseTime parses an ISO-8601 timestamp. Empty input yields nil.
func ParseTime(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("wire: invalid timestamp %q", raw)
}

// FormatDate renders t as yyyy-mm-dd.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// FormatTime renders t as RFC 3339.
func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// FormatFloat renders f with a '.' separator and no exponent or grouping.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func parseInt(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err == nil {
		return n, nil
	}
	// integral decimals such as "50.0" are accepted
	if f, ferr := strconv.ParseFloat(raw, 64); ferr == nil && f == float64(int(f)) {
		return int(f), nil
	}
	return 0, fmt.Errorf("wire: invalid integer %q", raw)
}

func parseFloat(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("wire: invalid number %q", raw)
	}
	return &f, nil
}

func parseBool(raw string) (bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, nil
	}
	switch raw {
	case "1":
		return true, nil
	case "0":
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("wire: invalid boolean %q", raw)
	}
	return b, nil
}
