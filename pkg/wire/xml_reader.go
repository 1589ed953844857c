package wire

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// XMLReader walks an XML document one token at a time.
//
// Element handlers receive the start tag of their element and must leave the reader
// positioned just past the matching end tag. Children enforces this for every child.
type XMLReader struct {
	dec   *xml.Decoder
	depth int
	err   error
}

// NewXMLReader returns a reader over r.
func NewXMLReader(r io.Reader) *XMLReader {
	dec := xml.NewDecoder(r)
	dec.Strict = true
	return &XMLReader{dec: dec}
}

// Err returns the first error encountered.
func (r *XMLReader) Err() error {
	return r.err
}

// Fail records err unless an earlier error is already recorded.
func (r *XMLReader) Fail(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

func (r *XMLReader) token() xml.Token {
	if r.err != nil {
		return nil
	}
	tok, err := r.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		r.Fail(err)
		return nil
	}
	switch tok.(type) {
	case xml.StartElement:
		r.depth++
	case xml.EndElement:
		r.depth--
	}
	return tok
}

// Root consumes tokens up to and including the document element's start tag.
func (r *XMLReader) Root() (xml.StartElement, error) {
	for r.err == nil {
		if se, ok := r.token().(xml.StartElement); ok {
			return se, nil
		}
	}
	if errors.Is(r.err, io.ErrUnexpectedEOF) {
		r.err = errors.New("wire: document has no root element")
	}
	return xml.StartElement{}, r.err
}

// Children calls fn for every child element of the element whose start tag was
// consumed last. It returns after consuming that element's end tag.
func (r *XMLReader) Children(fn func(el xml.StartElement)) error {
	level := r.depth
	for r.err == nil {
		switch t := r.token().(type) {
		case xml.StartElement:
			fn(t)
			if r.err == nil && r.depth != level {
				r.Fail(fmt.Errorf("wire: element <%s> was not consumed up to its end tag", t.Name.Local))
			}
		case xml.EndElement:
			return nil
		}
	}
	return r.err
}

// Skip discards the remainder of the element whose start tag was consumed last.
func (r *XMLReader) Skip() {
	if r.err != nil {
		return
	}
	if err := r.dec.Skip(); err != nil {
		r.Fail(err)
		return
	}
	r.depth--
}

// Text returns the character data of the current element and consumes its end tag.
// Nested elements are skipped.
func (r *XMLReader) Text() string {
	var sb strings.Builder
	for r.err == nil {
		switch t := r.token().(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			r.Skip()
		case xml.EndElement:
			return sb.String()
		}
	}
	return ""
}

// Int reads the current element as an integer; an empty element yields 0.
func (r *XMLReader) Int() int {
	n, err := parseInt(r.Text())
	r.Fail(err)
	return n
}

// OptInt reads the current element as an optional integer.
func (r *XMLReader) OptInt() *int {
	raw := strings.TrimSpace(r.Text())
	if raw == "" {
		return nil
	}
	n, err := parseInt(raw)
	if err != nil {
		r.Fail(err)
		return nil
	}
	return &n
}

// Float reads the current element as an optional decimal.
func (r *XMLReader) Float() *float64 {
	f, err := parseFloat(r.Text())
	r.Fail(err)
	return f
}

// Bool reads the current element as a boolean; an empty element yields false.
func (r *XMLReader) Bool() bool {
	b, err := parseBool(r.Text())
	r.Fail(err)
	return b
}

// Date reads the current element as an optional yyyy-mm-dd date.
func (r *XMLReader) Date() *time.Time {
	t, err := ParseDate(r.Text())
	r.Fail(err)
	return t
}

// Time reads the current element as an optional timestamp.
func (r *XMLReader) Time() *time.Time {
	t, err := ParseTime(r.Text())
	r.Fail(err)
	return t
}

// Strings reads the text of every child named item.
func (r *XMLReader) Strings(item string) []string {
	var out []string
	r.Children(func(el xml.StartElement) {
		if el.Name.Local != item {
			r.Skip()
			return
		}
		out = append(out, r.Text())
	})
	return out
}

// Ints reads the integer text of every child named item.
func (r *XMLReader) Ints(item string) []int {
	var out []int
	r.Children(func(el xml.StartElement) {
		if el.Name.Local != item {
			r.Skip()
			return
		}
		out = append(out, r.Int())
	})
	return out
}

// Attr returns the value of the named attribute, or "" when absent.
func Attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// HasAttr reports whether the named attribute is present.
func HasAttr(el xml.StartElement, name string) bool {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return true
		}
	}
	return false
}

// AttrInt reads the named attribute as an integer. Malformed values are recorded on r.
func (r *XMLReader) AttrInt(el xml.StartElement, name string) int {
	n, err := parseInt(Attr(el, name))
	r.Fail(err)
	return n
}

// AttrBool reads the named attribute as a boolean.
func (r *XMLReader) AttrBool(el xml.StartElement, name string) bool {
	b, err := parseBool(Attr(el, name))
	r.Fail(err)
	return b
}
