package redmine

import (
	"encoding/xml"
	"strings"

	"github.com/SeniorPomidorro/redmine-go-kit/pkg/wire"
)

// ErrorMessage is one validation message of a 422 response:
//
//	<errors type="array"><error>Name can't be blank</error></errors>
//	{"errors":["Name can't be blank"]}
type ErrorMessage struct {
	Info string
}

func (*ErrorMessage) resource() Meta {
	return Meta{Element: "error", Collection: "errors"}
}

func (*ErrorMessage) acceptsScalar() {}

func (e *ErrorMessage) EncodeXML(w *wire.XMLWriter) {
	w.Text(e.Info)
}

func (e *ErrorMessage) EncodeJSON(w *wire.JSONWriter) {
	w.String("message", e.Info)
}

func (e *ErrorMessage) DecodeXML(r *wire.XMLReader, _ xml.StartElement) error {
	e.Info = r.Text()
	return r.Err()
}

// DecodeJSON reads a plain string. Older servers send objects or nested arrays; all
// their string values are collected and joined with ", ".
func (e *ErrorMessage) DecodeJSON(r *wire.JSONReader) error {
	if r.Kind() == '"' {
		e.Info = r.String()
		return r.Err()
	}
	var parts []string
	collectStrings(r, &parts)
	e.Info = strings.Join(parts, ", ")
	return r.Err()
}

func collectStrings(r *wire.JSONReader, parts *[]string) {
	switch r.Kind() {
	case '{':
		r.Object(func(string) { collectStrings(r, parts) })
	case '[':
		r.Array(func() { collectStrings(r, parts) })
	case '"':
		*parts = append(*parts, r.String())
	default:
		r.Skip()
	}
}
