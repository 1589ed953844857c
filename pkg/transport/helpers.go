package transport

import (
	"io"
	"net/url"
)

// ReadBodyLimited reads response body up to maxBytes.
func ReadBodyLimited(reader io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		return io.ReadAll(reader)
	}

	limited := &io.LimitedReader{R: reader, N: maxBytes}
	return io.ReadAll(limited)
}

// EncodeQuery encodes values sorted by key; nil or empty values yield "".
func EncodeQuery(values url.Values) string {
	if len(values) == 0 {
		return ""
	}
	return values.Encode()
}
