package wire

import (
	"io"
	"time"

	"github.com/go-json-experiment/json/jsontext"
)

// JSONWriter emits JSON tokens. Objects and arrays are opened and closed by the
// scoped block methods, never by hand.
type JSONWriter struct {
	enc *jsontext.Encoder
	err error
}

// NewJSONWriter returns a writer over w.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{enc: jsontext.NewEncoder(w)}
}

// Err returns the first error encountered.
func (w *JSONWriter) Err() error {
	return w.err
}

// Close returns the first error encountered.
func (w *JSONWriter) Close() error {
	return w.err
}

func (w *JSONWriter) emit(tok jsontext.Token) {
	if w.err != nil {
		return
	}
	w.err = w.enc.WriteToken(tok)
}

func (w *JSONWriter) name(name string) {
	w.emit(jsontext.String(name))
}

// Object writes { fn } as a value.
func (w *JSONWriter) Object(fn func()) {
	w.emit(jsontext.ObjectStart)
	if fn != nil && w.err == nil {
		fn()
	}
	w.emit(jsontext.ObjectEnd)
}

// ObjectProperty writes "name": { fn }.
func (w *JSONWriter) ObjectProperty(name string, fn func()) {
	w.name(name)
	w.Object(fn)
}

// ArrayProperty writes "name": [ fn ].
func (w *JSONWriter) ArrayProperty(name string, fn func()) {
	w.name(name)
	w.emit(jsontext.ArrayStart)
	if fn != nil && w.err == nil {
		fn()
	}
	w.emit(jsontext.ArrayEnd)
}

// StringValue writes a bare string value, typically an array element.
func (w *JSONWriter) StringValue(value string) {
	w.emit(jsontext.String(value))
}

// IntValue writes a bare integer value.
func (w *JSONWriter) IntValue(value int) {
	w.emit(jsontext.Int(int64(value)))
}

// String writes "name": "value".
func (w *JSONWriter) String(name, value string) {
	w.name(name)
	w.StringValue(value)
}

// StringIfNotEmpty writes "name": "value" only for a non-empty value.
func (w *JSONWriter) StringIfNotEmpty(name, value string) {
	if value != "" {
		w.String(name, value)
	}
}

// Int writes "name": value.
func (w *JSONWriter) Int(name string, value int) {
	w.name(name)
	w.IntValue(value)
}

// IntIfNotZero writes "name": value unless value is 0.
func (w *JSONWriter) IntIfNotZero(name string, value int) {
	if value != 0 {
		w.Int(name, value)
	}
}

// OptInt writes "name": value when value is set.
func (w *JSONWriter) OptInt(name string, value *int) {
	if value != nil {
		w.Int(name, *value)
	}
}

// Bool writes "name": true|false.
func (w *JSONWriter) Bool(name string, value bool) {
	w.name(name)
	w.emit(jsontext.Bool(value))
}

// FloatOrEmpty writes a decimal, or "" when value is nil.
func (w *JSONWriter) FloatOrEmpty(name string, value *float64) {
	if value == nil {
		w.String(name, "")
		return
	}
	w.name(name)
	w.emit(jsontext.Float(*value))
}

// DateOrEmpty writes a yyyy-mm-dd string, or "" when value is nil.
func (w *JSONWriter) DateOrEmpty(name string, value *time.Time) {
	if value == nil || value.IsZero() {
		w.String(name, "")
		return
	}
	w.String(name, FormatDate(*value))
}

// DateIfNotNil writes a yyyy-mm-dd string when value is set.
func (w *JSONWriter) DateIfNotNil(name string, value *time.Time) {
	if value != nil && !value.IsZero() {
		w.String(name, FormatDate(*value))
	}
}

// Ints writes "name": [values...] unless values is empty.
func (w *JSONWriter) Ints(name string, values []int) {
	if len(values) == 0 {
		return
	}
	w.ArrayProperty(name, func() {
		for _, v := range values {
			w.IntValue(v)
		}
	})
}

// Strings writes "name": [values...] unless values is empty.
func (w *JSONWriter) Strings(name string, values []string) {
	if len(values) == 0 {
		return
	}
	w.ArrayProperty(name, func() {
		for _, v := range values {
			w.StringValue(v)
		}
	})
}
