package redmine

import (
	"encoding/xml"

	"github.com/SeniorPomidorro/redmine-go-kit/pkg/wire"
)

// Tracker is an issue type such as Bug or Feature.
type Tracker struct {
	ID                    int
	Name                  string
	DefaultStatus         *IdentifiableName
	Description           string
	EnabledStandardFields []string
}

func (*Tracker) resource() Meta {
	return Meta{Element: "tracker", Collection: "trackers", Path: "trackers"}
}

func (t *Tracker) EncodeXML(w *wire.XMLWriter) {
	w.String("name", t.Name)
	xmlWriteRef(w, "default_status_id", t.DefaultStatus)
	w.StringIfNotEmpty("description", t.Description)
}

func (t *Tracker) EncodeJSON(w *wire.JSONWriter) {
	w.String("name", t.Name)
	jsonWriteRef(w, "default_status_id", t.DefaultStatus)
	w.StringIfNotEmpty("description", t.Description)
}

func (t *Tracker) DecodeXML(r *wire.XMLReader, start xml.StartElement) error {
	if wire.HasAttr(start, "id") {
		t.ID = r.AttrInt(start, "id")
		t.Name = wire.Attr(start, "name")
	}
	return r.Children(func(el xml.StartElement) {
		switch el.Name.Local {
		case "id":
			t.ID = r.Int()
		case "name":
			t.Name = r.Text()
		case "default_status":
			t.DefaultStatus = xmlRef(r, el)
		case "default_status_id":
			t.DefaultStatus = xmlRefID(r)
		case "description":
			t.Description = r.Text()
		case "enabled_standard_fields":
			t.EnabledStandardFields = r.Strings("field")
		default:
			r.Skip()
		}
	})
}

func (t *Tracker) DecodeJSON(r *wire.JSONReader) error {
	return r.Object(func(name string) {
		switch name {
		case "id":
			t.ID = r.Int()
		case "name":
			t.Name = r.String()
		case "default_status":
			t.DefaultStatus = jsonRef(r)
		case "default_status_id":
			t.DefaultStatus = jsonRefID(r)
		case "description":
			t.Description = r.String()
		case "enabled_standard_fields":
			t.EnabledStandardFields = r.Strings()
		default:
			r.Skip()
		}
	})
}
