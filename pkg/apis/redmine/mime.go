package redmine

import (
	"fmt"
	"strings"
)

// MimeType selects the wire format used for request and response bodies.
type MimeType string

const (
	MimeXML  MimeType = "xml"
	MimeJSON MimeType = "json"
)

// ParseMimeType accepts "xml" or "json" in any case.
func ParseMimeType(raw string) (MimeType, error) {
	switch MimeType(strings.ToLower(strings.TrimSpace(raw))) {
	case MimeXML:
		return MimeXML, nil
	case MimeJSON:
		return MimeJSON, nil
	default:
		return "", fmt.Errorf("redmine: unsupported format %q", raw)
	}
}

// String returns the URL extension for the format.
func (m MimeType) String() string {
	return string(m)
}

// ContentType returns the media type sent in Content-Type and Accept headers.
func (m MimeType) ContentType() string {
	if m == MimeJSON {
		return "application/json"
	}
	return "application/xml"
}
