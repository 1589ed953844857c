package redmine

import (
	"encoding/xml"
	"strconv"

	"github.com/SeniorPomidorro/redmine-go-kit/pkg/wire"
)

// CustomFieldValue is one value of a custom field.
type CustomFieldValue struct {
	Info string
}

// IssueCustomField is a custom field value attached to an issue, project, user,
// time entry, group or version.
//
// A field with more than one value is written as an array and flagged multiple;
// a single value is written as a scalar.
type IssueCustomField struct {
	ID       int
	Name     string
	Multiple bool
	Values   []CustomFieldValue
}

// NewCustomField returns a field with the given values.
func NewCustomField(id int, values ...string) IssueCustomField {
	f := IssueCustomField{ID: id, Multiple: len(values) > 1}
	for _, v := range values {
		f.Values = append(f.Values, CustomFieldValue{Info: v})
	}
	return f
}

// Value returns the first value, or "".
func (f IssueCustomField) Value() string {
	if len(f.Values) == 0 {
		return ""
	}
	return f.Values[0].Info
}

func (f *IssueCustomField) DecodeXML(r *wire.XMLReader, start xml.StartElement) error {
	f.ID = r.AttrInt(start, "id")
	f.Name = wire.Attr(start, "name")
	f.Multiple = r.AttrBool(start, "multiple")
	return r.Children(func(el xml.StartElement) {
		if el.Name.Local != "value" {
			r.Skip()
			return
		}
		if wire.Attr(el, "type") == "array" {
			for _, v := range r.Strings("value") {
				f.Values = append(f.Values, CustomFieldValue{Info: v})
			}
			return
		}
		f.Values = append(f.Values, CustomFieldValue{Info: r.Text()})
	})
}

func (f *IssueCustomField) DecodeJSON(r *wire.JSONReader) error {
	return r.Object(func(name string) {
		switch name {
		case "id":
			f.ID = r.Int()
		case "name":
			f.Name = r.String()
		case "multiple":
			f.Multiple = r.Bool()
		case "value":
			for _, v := range r.Strings() {
				f.Values = append(f.Values, CustomFieldValue{Info: v})
			}
		default:
			r.Skip()
		}
	})
}

func (f IssueCustomField) encodeXML(w *wire.XMLWriter) {
	attrs := []xml.Attr{{Name: xml.Name{Local: "id"}, Value: strconv.Itoa(f.ID)}}
	if f.Name != "" {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "name"}, Value: f.Name})
	}
	if len(f.Values) > 1 {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "multiple"}, Value: "true"})
	}
	w.Element("custom_field", func() {
		if len(f.Values) > 1 {
			w.Array("value", func() {
				for _, v := range f.Values {
					w.String("value", v.Info)
				}
			})
			return
		}
		w.String("value", f.Value())
	}, attrs...)
}

func (f IssueCustomField) encodeJSON(w *wire.JSONWriter) {
	w.Object(func() {
		w.Int("id", f.ID)
		w.StringIfNotEmpty("name", f.Name)
		if len(f.Values) > 1 {
			w.Bool("multiple", true)
			w.ArrayProperty("value", func() {
				for _, v := range f.Values {
					w.StringValue(v.Info)
				}
			})
			return
		}
		w.String("value", f.Value())
	})
}

func xmlWriteCustomFields(w *wire.XMLWriter, fields []IssueCustomField) {
	if len(fields) == 0 {
		return
	}
	w.Array("custom_fields", func() {
		for _, f := range fields {
			f.encodeXML(w)
		}
	})
}

func jsonWriteCustomFields(w *wire.JSONWriter, fields []IssueCustomField) {
	if len(fields) == 0 {
		return
	}
	w.ArrayProperty("custom_fields", func() {
		for _, f := range fields {
			f.encodeJSON(w)
		}
	})
}

func xmlCustomFields(r *wire.XMLReader) []IssueCustomField {
	return readXMLList[IssueCustomField](r, "custom_field")
}

func jsonCustomFields(r *wire.JSONReader) []IssueCustomField {
	return readJSONList[IssueCustomField](r)
}
