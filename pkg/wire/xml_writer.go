package wire

import (
	"encoding/xml"
	"io"
	"strconv"
	"time"
)

// XMLWriter emits XML elements. Start and end tags are always written in pairs by
// the scoped block methods.
type XMLWriter struct {
	enc *xml.Encoder
	err error
}

// NewXMLWriter returns a writer over w.
func NewXMLWriter(w io.Writer) *XMLWriter {
	return &XMLWriter{enc: xml.NewEncoder(w)}
}

// Err returns the first error encountered.
func (w *XMLWriter) Err() error {
	return w.err
}

// Close flushes buffered output and returns the first error encountered.
func (w *XMLWriter) Close() error {
	if w.err != nil {
		return w.err
	}
	w.err = w.enc.Flush()
	return w.err
}

func (w *XMLWriter) emit(tok xml.Token) {
	if w.err != nil {
		return
	}
	w.err = w.enc.EncodeToken(tok)
}

// Element writes <name attrs...>, runs fn for the content and closes the element.
func (w *XMLWriter) Element(name string, fn func(), attrs ...xml.Attr) {
	start := xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs}
	w.emit(start)
	if fn != nil && w.err == nil {
		fn()
	}
	w.emit(start.End())
}

// Array writes a <name type="array"> collection element around fn.
func (w *XMLWriter) Array(name string, fn func()) {
	w.Element(name, fn, xml.Attr{Name: xml.Name{Local: "type"}, Value: "array"})
}

// Text writes character data inside the current element.
func (w *XMLWriter) Text(value string) {
	w.emit(xml.CharData(value))
}

// String writes <name>value</name>, including when value is empty.
func (w *XMLWriter) String(name, value string) {
	w.Element(name, func() {
		if value != "" {
			w.Text(value)
		}
	})
}

// StringIfNotEmpty writes <name>value</name> only for a non-empty value.
func (w *XMLWriter) StringIfNotEmpty(name, value string) {
	if value != "" {
		w.String(name, value)
	}
}

// Int writes an integer element.
func (w *XMLWriter) Int(name string, value int) {
	w.String(name, strconv.Itoa(value))
}

// IntIfNotZero writes an integer element unless value is 0.
func (w *XMLWriter) IntIfNotZero(name string, value int) {
	if value != 0 {
		w.Int(name, value)
	}
}

// OptInt writes an integer element when value is set.
func (w *XMLWriter) OptInt(name string, value *int) {
	if value != nil {
		w.Int(name, *value)
	}
}

// Bool writes a lower-case boolean element.
func (w *XMLWriter) Bool(name string, value bool) {
	w.String(name, strconv.FormatBool(value))
}

// FloatOrEmpty writes a decimal element, or an empty element when value is nil.
func (w *XMLWriter) FloatOrEmpty(name string, value *float64) {
	if value == nil {
		w.String(name, "")
		return
	}
	w.String(name, FormatFloat(*value))
}

// DateOrEmpty writes a yyyy-mm-dd element, or an empty element when value is nil.
func (w *XMLWriter) DateOrEmpty(name string, value *time.Time) {
	if value == nil || value.IsZero() {
		w.String(name, "")
		return
	}
	w.String(name, FormatDate(*value))
}

// DateIfNotNil writes a yyyy-mm-dd element when value is set.
func (w *XMLWriter) DateIfNotNil(name string, value *time.Time) {
	if value != nil && !value.IsZero() {
		w.String(name, FormatDate(*value))
	}
}

// Ints writes a typed array of integer items.
func (w *XMLWriter) Ints(name, item string, values []int) {
	if len(values) == 0 {
		return
	}
	w.Array(name, func() {
		for _, v := range values {
			w.Int(item, v)
		}
	})
}

// Strings writes a typed array of string items.
func (w *XMLWriter) Strings(name, item string, values []string) {
	if len(values) == 0 {
		return
	}
	w.Array(name, func() {
		for _, v := range values {
			w.String(item, v)
		}
	})
}
