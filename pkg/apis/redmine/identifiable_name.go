package redmine

import (
	"encoding/xml"
	"strconv"

	"github.com/SeniorPomidorro/redmine-go-kit/pkg/wire"
)

// IdentifiableName is a reference to another resource, e.g. <project id="1" name="Alpha"/>.
type IdentifiableName struct {
	ID   int
	Name string
}

// NewRef returns a reference carrying only an id.
func NewRef(id int) *IdentifiableName {
	return &IdentifiableName{ID: id}
}

// DecodeXML reads the id and name attributes, or id and name child elements.
func (n *IdentifiableName) DecodeXML(r *wire.XMLReader, start xml.StartElement) error {
	n.ID = r.AttrInt(start, "id")
	n.Name = wire.Attr(start, "name")
	return r.Children(func(el xml.StartElement) {
		switch el.Name.Local {
		case "id":
			n.ID = r.Int()
		case "name":
			n.Name = r.Text()
		default:
			r.Skip()
		}
	})
}

// DecodeJSON reads {"id":..,"name":..}.
func (n *IdentifiableName) DecodeJSON(r *wire.JSONReader) error {
	return r.Object(func(name string) {
		switch name {
		case "id":
			n.ID = r.Int()
		case "name":
			n.Name = r.String()
		default:
			r.Skip()
		}
	})
}

func (n IdentifiableName) String() string {
	if n.Name != "" {
		return n.Name
	}
	return strconv.Itoa(n.ID)
}

func refID(ref *IdentifiableName) int {
	if ref == nil {
		return 0
	}
	return ref.ID
}

func refIDs(refs []IdentifiableName) []int {
	if len(refs) == 0 {
		return nil
	}
	ids := make([]int, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ID)
	}
	return ids
}

func refsFromIDs(ids []int) []IdentifiableName {
	if len(ids) == 0 {
		return nil
	}
	refs := make([]IdentifiableName, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, IdentifiableName{ID: id})
	}
	return refs
}

func refNames(refs []IdentifiableName) []string {
	if len(refs) == 0 {
		return nil
	}
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, ref.Name)
	}
	return names
}

func refsFromNames(names []string) []IdentifiableName {
	if len(names) == 0 {
		return nil
	}
	refs := make([]IdentifiableName, 0, len(names))
	for _, name := range names {
		refs = append(refs, IdentifiableName{Name: name})
	}
	return refs
}

// xmlRef decodes a reference element such as <tracker id="1" name="Bug"/>.
func xmlRef(r *wire.XMLReader, el xml.StartElement) *IdentifiableName {
	ref := &IdentifiableName{}
	_ = ref.DecodeXML(r, el)
	return ref
}

// xmlRefID decodes an id-only element such as <tracker_id>1</tracker_id>.
func xmlRefID(r *wire.XMLReader) *IdentifiableName {
	if id := r.OptInt(); id != nil {
		return NewRef(*id)
	}
	return nil
}

func jsonRef(r *wire.JSONReader) *IdentifiableName {
	if r.Kind() == 'n' {
		r.Skip()
		return nil
	}
	ref := &IdentifiableName{}
	_ = ref.DecodeJSON(r)
	return ref
}

func jsonRefID(r *wire.JSONReader) *IdentifiableName {
	if id := r.OptInt(); id != nil {
		return NewRef(*id)
	}
	return nil
}

// References are written as <name>id</name>; unset references are omitted.
func xmlWriteRef(w *wire.XMLWriter, name string, ref *IdentifiableName) {
	w.IntIfNotZero(name, refID(ref))
}

func jsonWriteRef(w *wire.JSONWriter, name string, ref *IdentifiableName) {
	w.IntIfNotZero(name, refID(ref))
}
