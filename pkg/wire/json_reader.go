package wire

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-json-experiment/json/jsontext"
)

// JSONReader walks a JSON document one token at a time.
//
// Object and Array hand control to a callback for every member or element; the
// callback must consume exactly one value. The decoder's stack index is checked after
// every callback so a handler that reads too little or too much fails immediately
// instead of corrupting the rest of the document.
type JSONReader struct {
	dec *jsontext.Decoder
	err error
}

// NewJSONReader returns a reader over r.
func NewJSONReader(r io.Reader) *JSONReader {
	return &JSONReader{dec: jsontext.NewDecoder(r)}
}

// Err returns the first error encountered.
func (r *JSONReader) Err() error {
	return r.err
}

// Fail records err unless an earlier error is already recorded.
func (r *JSONReader) Fail(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

// Kind reports the kind of the next token without consuming it.
// It returns 0 once an error has been recorded.
func (r *JSONReader) Kind() jsontext.Kind {
	if r.err != nil {
		return 0
	}
	return r.dec.PeekKind()
}

func (r *JSONReader) read() jsontext.Token {
	if r.err != nil {
		return jsontext.Null
	}
	tok, err := r.dec.ReadToken()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		r.Fail(err)
		return jsontext.Null
	}
	return tok
}

// Skip discards the next value, including any nested objects or arrays.
func (r *JSONReader) Skip() {
	if r.err != nil {
		return
	}
	if err := r.dec.SkipValue(); err != nil {
		r.Fail(err)
	}
}

// Object calls fn with the name of every member of the next object. A null value is
// consumed without calling fn.
func (r *JSONReader) Object(fn func(name string)) error {
	switch k := r.Kind(); k {
	case 'n':
		r.read()
		return r.err
	case '{':
	default:
		if k == 0 {
			r.read()
		}
		if r.err == nil {
			r.Fail(fmt.Errorf("wire: expected object, found %v", k))
		}
		return r.err
	}
	r.read()
	depth := r.dec.StackDepth()
	for r.err == nil {
		if r.dec.PeekKind() == '}' {
			r.read()
			break
		}
		name := r.read()
		if r.err != nil {
			break
		}
		fn(name.String())
		if r.err != nil {
			break
		}
		if _, n := r.dec.StackIndex(depth); r.dec.StackDepth() != depth || n%2 != 0 {
			r.Fail(fmt.Errorf("wire: value of member %q was not consumed exactly", name.String()))
		}
	}
	return r.err
}

// Array calls fn once per element of the next array. A null value is consumed
// without calling fn.
func (r *JSONReader) Array(fn func()) error {
	switch k := r.Kind(); k {
	case 'n':
		r.read()
		return r.err
	case '[':
	default:
		if k == 0 {
			r.read()
		}
		if r.err == nil {
			r.Fail(fmt.Errorf("wire: expected array, found %v", k))
		}
		return r.err
	}
	r.read()
	depth := r.dec.StackDepth()
	for r.err == nil {
		if r.dec.PeekKind() == ']' {
			r.read()
			break
		}
		_, before := r.dec.StackIndex(depth)
		fn()
		if r.err != nil {
			break
		}
		if _, after := r.dec.StackIndex(depth); r.dec.StackDepth() != depth || after != before+1 {
			r.Fail(fmt.Errorf("wire: array element %d was not consumed exactly", before))
		}
	}
	return r.err
}

// String reads a scalar as text. Strings are unescaped, numbers and booleans keep
// their literal form and null yields "". Objects and arrays are skipped.
func (r *JSONReader) String() string {
	switch r.Kind() {
	case '{', '[':
		r.Skip()
		return ""
	}
	tok := r.read()
	if r.err != nil {
		return ""
	}
	switch tok.Kind() {
	case 'n':
		return ""
	default:
		return tok.String()
	}
}

// Int reads an integer; null and "" yield 0.
func (r *JSONReader) Int() int {
	n, err := parseInt(r.String())
	r.Fail(err)
	return n
}

// OptInt reads an optional integer.
func (r *JSONReader) OptInt() *int {
	raw := strings.TrimSpace(r.String())
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

// Float reads an optional decimal.
func (r *JSONReader) Float() *float64 {
	f, err := parseFloat(r.String())
	r.Fail(err)
	return f
}

// Bool reads a boolean; null yields false.
func (r *JSONReader) Bool() bool {
	b, err := parseBool(r.String())
	r.Fail(err)
	return b
}

// Date reads an optional yyyy-mm-dd date.
func (r *JSONReader) Date() *time.Time {
	t, err := ParseDate(r.String())
	r.Fail(err)
	return t
}

// Time reads an optional timestamp.
func (r *JSONReader) Time() *time.Time {
	t, err := ParseTime(r.String())
	r.Fail(err)
	return t
}

// Strings reads an array of scalars. A lone scalar is returned as a one-element slice.
func (r *JSONReader) Strings() []string {
	if r.Kind() != '[' {
		if r.Kind() == 'n' {
			r.read()
			return nil
		}
		return []string{r.String()}
	}
	var out []string
	r.Array(func() {
		out = append(out, r.String())
	})
	return out
}

// Ints reads an array of integers.
func (r *JSONReader) Ints() []int {
	var out []int
	r.Array(func() {
		out = append(out, r.Int())
	})
	return out
}
