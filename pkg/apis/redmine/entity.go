package redmine

import (
	"encoding/xml"
	"fmt"

	"github.com/SeniorPomidorro/redmine-go-kit/pkg/wire"
)

// Scope describes how a resource is nested under a parent in REST paths.
type Scope int

const (
	// ScopeNone resources live at the top level, e.g. /issues.
	ScopeNone Scope = iota
	// ScopeProject resources require a project id, e.g. /projects/{id}/versions.
	ScopeProject
	// ScopeIssue resources require an issue id, e.g. /issues/{id}/relations.
	ScopeIssue
	// ScopeOptionalProject resources are listed globally or per project; creation
	// requires the project.
	ScopeOptionalProject
)

// Meta is the per-type routing and naming data used by serializers and the URL builder.
type Meta struct {
	// Element is the root element (XML) or root property (JSON) of a single entity.
	Element string
	// Collection is the list root name.
	Collection string
	// Path is the REST path segment. Empty for types served only by named endpoints.
	Path  string
	Scope Scope
}

// Entity is implemented by every resource type.
//
// Encode methods write the entity's fields only; the serializer wraps them in the
// root element. DecodeXML receives the entity's start tag and must consume through
// the matching end tag. DecodeJSON must consume exactly one JSON value.
type Entity interface {
	EncodeXML(w *wire.XMLWriter)
	EncodeJSON(w *wire.JSONWriter)
	DecodeXML(r *wire.XMLReader, start xml.StartElement) error
	DecodeJSON(r *wire.JSONReader) error

	resource() Meta
}

// EntityPtr constrains generic operations to pointers of resource types, so callers
// write Get[Issue] instead of Get[*Issue].
type EntityPtr[T any] interface {
	*T
	Entity
}

// PaginatedResult is one page of a list response.
type PaginatedResult[T any] struct {
	Items  []T
	Total  int
	Offset int
	Limit  int
}

// scalarItem marks entities whose JSON list items may be bare strings or arrays.
type scalarItem interface {
	acceptsScalar()
}

func typeName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}

type decodable[T any] interface {
	*T
	DecodeXML(r *wire.XMLReader, start xml.StartElement) error
	DecodeJSON(r *wire.JSONReader) error
}

// readXMLList decodes every child named item of the current element.
func readXMLList[T any, PT decodable[T]](r *wire.XMLReader, item string) []T {
	var out []T
	r.Children(func(el xml.StartElement) {
		if el.Name.Local != item {
			r.Skip()
			return
		}
		var v T
		_ = PT(&v).DecodeXML(r, el)
		out = append(out, v)
	})
	return out
}

// readJSONList decodes an array of objects; null and scalar elements are skipped.
func readJSONList[T any, PT decodable[T]](r *wire.JSONReader) []T {
	var out []T
	r.Array(func() {
		if r.Kind() != '{' {
			r.Skip()
			return
		}
		var v T
		_ = PT(&v).DecodeJSON(r)
		out = append(out, v)
	})
	return out
}
