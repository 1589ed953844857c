package redmine

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"github.com/SeniorPomidorro/redmine-go-kit/pkg/wire"
)

// Page carries the pagination attributes of a list response.
type Page struct {
	Total  int
	Offset int
	Limit  int
}

// Serializer converts entities to and from one wire format.
type Serializer interface {
	MimeType() MimeType
	// Serialize writes e wrapped in its root element.
	Serialize(e Entity) (string, error)
	// Deserialize reads a single-entity document into dst.
	Deserialize(payload string, dst Entity) error
	// DeserializeList reads a collection document, calling newItem for every element.
	DeserializeList(payload string, newItem func() Entity) ([]Entity, Page, error)
	// Count reads only the total_count of a collection document.
	Count(payload string) (int, error)
}

// NewSerializer returns the serializer for m.
func NewSerializer(m MimeType) (Serializer, error) {
	switch m {
	case MimeXML:
		return xmlSerializer{}, nil
	case MimeJSON:
		return jsonSerializer{}, nil
	default:
		return nil, fmt.Errorf("redmine: unsupported format %q", m)
	}
}

// Deserialize decodes a single T from payload.
func Deserialize[T any, PT EntityPtr[T]](s Serializer, payload string) (*T, error) {
	v := new(T)
	if err := s.Deserialize(payload, PT(v)); err != nil {
		return nil, err
	}
	return v, nil
}

// DeserializeList decodes a page of T from payload.
func DeserializeList[T any, PT EntityPtr[T]](s Serializer, payload string) (*PaginatedResult[T], error) {
	items, page, err := s.DeserializeList(payload, func() Entity { return PT(new(T)) })
	if err != nil {
		return nil, err
	}
	out := &PaginatedResult[T]{
		Items:  make([]T, 0, len(items)),
		Total:  page.Total,
		Offset: page.Offset,
		Limit:  page.Limit,
	}
	for _, item := range items {
		out.Items = append(out.Items, *item.(PT))
	}
	return out, nil
}

type xmlSerializer struct{}

func (xmlSerializer) MimeType() MimeType { return MimeXML }

func (xmlSerializer) Serialize(e Entity) (string, error) {
	if e == nil {
		return "", &SerializationError{Format: MimeXML, Err: errors.New("entity is nil")}
	}
	var buf bytes.Buffer
	w := wire.NewXMLWriter(&buf)
	w.Element(e.resource().Element, func() { e.EncodeXML(w) })
	if err := w.Close(); err != nil {
		return "", &SerializationError{Format: MimeXML, Err: err}
	}
	return buf.String(), nil
}

func (xmlSerializer) root(payload string) (*wire.XMLReader, xml.StartElement, error) {
	if strings.TrimSpace(payload) == "" {
		return nil, xml.StartElement{}, &DeserializationError{Format: MimeXML, Err: errEmptyPayload}
	}
	r := wire.NewXMLReader(strings.NewReader(payload))
	root, err := r.Root()
	if err != nil {
		return nil, xml.StartElement{}, &DeserializationError{Format: MimeXML, Err: err}
	}
	return r, root, nil
}

func (s xmlSerializer) Deserialize(payload string, dst Entity) error {
	r, root, err := s.root(payload)
	if err != nil {
		return err
	}
	if want := dst.resource().Element; root.Name.Local != want {
		return &DeserializationError{Format: MimeXML, Err: fmt.Errorf("expected root <%s>, found <%s>", want, root.Name.Local)}
	}
	if err := dst.DecodeXML(r, root); err != nil {
		return &DeserializationError{Format: MimeXML, Err: err}
	}
	return nil
}

func (s xmlSerializer) DeserializeList(payload string, newItem func() Entity) ([]Entity, Page, error) {
	r, root, err := s.root(payload)
	if err != nil {
		return nil, Page{}, err
	}
	element := newItem().resource().Element

	page := Page{
		Total:  r.AttrInt(root, "total_count"),
		Offset: r.AttrInt(root, "offset"),
		Limit:  r.AttrInt(root, "limit"),
	}
	var items []Entity
	err = r.Children(func(el xml.StartElement) {
		if el.Name.Local != element {
			r.Skip()
			return
		}
		item := newItem()
		_ = item.DecodeXML(r, el)
		items = append(items, item)
	})
	if err != nil {
		return nil, Page{}, &DeserializationError{Format: MimeXML, Err: err}
	}
	if !wire.HasAttr(root, "total_count") {
		page.Total = len(items)
	}
	return items, page, nil
}

func (s xmlSerializer) Count(payload string) (int, error) {
	r, root, err := s.root(payload)
	if err != nil {
		return 0, err
	}
	total := r.AttrInt(root, "total_count")
	if err := r.Err(); err != nil {
		return 0, &DeserializationError{Format: MimeXML, Err: err}
	}
	return total, nil
}

type jsonSerializer struct{}

func (jsonSerializer) MimeType() MimeType { return MimeJSON }

func (jsonSerializer) Serialize(e Entity) (string, error) {
	if e == nil {
		return "", &SerializationError{Format: MimeJSON, Err: errors.New("entity is nil")}
	}
	var buf bytes.Buffer
	w := wire.NewJSONWriter(&buf)
	w.Object(func() {
		w.ObjectProperty(e.resource().Element, func() { e.EncodeJSON(w) })
	})
	if err := w.Close(); err != nil {
		return "", &SerializationError{Format: MimeJSON, Err: err}
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func (jsonSerializer) reader(payload string) (*wire.JSONReader, error) {
	if strings.TrimSpace(payload) == "" {
		return nil, &DeserializationError{Format: MimeJSON, Err: errEmptyPayload}
	}
	return wire.NewJSONReader(strings.NewReader(payload)), nil
}

func (s jsonSerializer) Deserialize(payload string, dst Entity) error {
	r, err := s.reader(payload)
	if err != nil {
		return err
	}
	element := dst.resource().Element
	found := false
	err = r.Object(func(name string) {
		if name != element || found {
			r.Skip()
			return
		}
		found = true
		_ = dst.DecodeJSON(r)
	})
	if err != nil {
		return &DeserializationError{Format: MimeJSON, Err: err}
	}
	if !found {
		return &DeserializationError{Format: MimeJSON, Err: fmt.Errorf("root property %q not found", element)}
	}
	return nil
}

func (s jsonSerializer) DeserializeList(payload string, newItem func() Entity) ([]Entity, Page, error) {
	r, err := s.reader(payload)
	if err != nil {
		return nil, Page{}, err
	}
	collection := newItem().resource().Collection

	var (
		items    []Entity
		page     Page
		hasTotal bool
	)
	err = r.Object(func(name string) {
		switch name {
		case collection:
			r.Array(func() {
				switch r.Kind() {
				case '{':
				case '"', '[':
					if _, ok := newItem().(scalarItem); !ok {
						r.Skip()
						return
					}
				default:
					r.Skip()
					return
				}
				item := newItem()
				_ = item.DecodeJSON(r)
				items = append(items, item)
			})
		case "total_count":
			page.Total = r.Int()
			hasTotal = true
		case "offset":
			page.Offset = r.Int()
		case "limit":
			page.Limit = r.Int()
		default:
			r.Skip()
		}
	})
	if err != nil {
		return nil, Page{}, &DeserializationError{Format: MimeJSON, Err: err}
	}
	if !hasTotal {
		page.Total = len(items)
	}
	return items, page, nil
}

func (s jsonSerializer) Count(payload string) (int, error) {
	r, err := s.reader(payload)
	if err != nil {
		return 0, err
	}
	total := 0
	err = r.Object(func(name string) {
		if name == "total_count" {
			total = r.Int()
			return
		}
		r.Skip()
	})
	if err != nil {
		return 0, &DeserializationError{Format: MimeJSON, Err: err}
	}
	return total, nil
}

// scalarPayload serializes a bare {"name": value} body, used by the group-user and
// watcher endpoints.
func scalarPayload(format MimeType, name string, value int) (string, error) {
	var buf bytes.Buffer
	if format == MimeJSON {
		w := wire.NewJSONWriter(&buf)
		w.Object(func() { w.Int(name, value) })
		if err := w.Close(); err != nil {
			return "", &SerializationError{Format: format, Err: err}
		}
		return strings.TrimSuffix(buf.String(), "\n"), nil
	}
	w := wire.NewXMLWriter(&buf)
	w.Int(name, value)
	if err := w.Close(); err != nil {
		return "", &SerializationError{Format: format, Err: err}
	}
	return buf.String(), nil
}
