package redmine

import (
	"encoding/xml"

	"github.com/SeniorPomidorro/redmine-go-kit/pkg/wire"
)

// CustomField is a custom field definition from /custom_fields (admin only).
type CustomField struct {
	ID             int
	Name           string
	Description    string
	CustomizedType string
	FieldFormat    string
	Regexp         string
	MinLength      *int
	MaxLength      *int
	IsRequired     bool
	IsFilter       bool
	Searchable     bool
	Multiple       bool
	DefaultValue   string
	Visible        bool
	PossibleValues []CustomFieldPossibleValue
	Trackers       []IdentifiableName
	Roles          []IdentifiableName
}

// CustomFieldPossibleValue is one option of a list custom field.
type CustomFieldPossibleValue struct {
	Value string
	Label string
}

// Definitions are read-only over the API. The encoders write the scalar attributes
// only; possible values, trackers and roles are never sent.
func (*CustomField) resource() Meta {
	return Meta{Element: "custom_field", Collection: "custom_fields", Path: "custom_fields"}
}

func (f *CustomField) EncodeXML(w *wire.XMLWriter) {
	w.String("name", f.Name)
	w.StringIfNotEmpty("description", f.Description)
	w.String("customized_type", f.CustomizedType)
	w.String("field_format", f.FieldFormat)
	w.StringIfNotEmpty("regexp", f.Regexp)
	w.OptInt("min_length", f.MinLength)
	w.OptInt("max_length", f.MaxLength)
	w.Bool("is_required", f.IsRequired)
	w.Bool("is_filter", f.IsFilter)
	w.Bool("searchable", f.Searchable)
	w.Bool("multiple", f.Multiple)
	w.StringIfNotEmpty("default_value", f.DefaultValue)
	w.Bool("visible", f.Visible)
}

func (f *CustomField) EncodeJSON(w *wire.JSONWriter) {
	w.String("name", f.Name)
	w.StringIfNotEmpty("description", f.Description)
	w.String("customized_type", f.CustomizedType)
	w.String("field_format", f.FieldFormat)
	w.StringIfNotEmpty("regexp", f.Regexp)
	w.OptInt("min_length", f.MinLength)
	w.OptInt("max_length", f.MaxLength)
	w.Bool("is_required", f.IsRequired)
	w.Bool("is_filter", f.IsFilter)
	w.Bool("searchable", f.Searchable)
	w.Bool("multiple", f.Multiple)
	w.StringIfNotEmpty("default_value", f.DefaultValue)
	w.Bool("visible", f.Visible)
}

func (f *CustomField) DecodeXML(r *wire.XMLReader, _ xml.StartElement) error {
	return r.Children(func(el xml.StartElement) {
		switch el.Name.Local {
		case "id":
			f.ID = r.Int()
		case "name":
			f.Name = r.Text()
		case "description":
			f.Description = r.Text()
		case "customized_type":
			f.CustomizedType = r.Text()
		case "field_format":
			f.FieldFormat = r.Text()
		case "regexp":
			f.Regexp = r.Text()
		case "min_length":
			f.MinLength = r.OptInt()
		case "max_length":
			f.MaxLength = r.OptInt()
		case "is_required":
			f.IsRequired = r.Bool()
		case "is_filter":
			f.IsFilter = r.Bool()
		case "searchable":
			f.Searchable = r.Bool()
		case "multiple":
			f.Multiple = r.Bool()
		case "default_value":
			f.DefaultValue = r.Text()
		case "visible":
			f.Visible = r.Bool()
		case "possible_values":
			f.PossibleValues = readXMLList[CustomFieldPossibleValue](r, "possible_value")
		case "trackers":
			f.Trackers = readXMLList[IdentifiableName](r, "tracker")
		case "roles":
			f.Roles = readXMLList[IdentifiableName](r, "role")
		default:
			r.Skip()
		}
	})
}

func (f *CustomField) DecodeJSON(r *wire.JSONReader) error {
	return r.Object(func(name string) {
		switch name {
		case "id":
			f.ID = r.Int()
		case "name":
			f.Name = r.String()
		case "description":
			f.Description = r.String()
		case "customized_type":
			f.CustomizedType = r.String()
		case "field_format":
			f.FieldFormat = r.String()
		case "regexp":
			f.Regexp = r.String()
		case "min_length":
			f.MinLength = r.OptInt()
		case "max_length":
			f.MaxLength = r.OptInt()
		case "is_required":
			f.IsRequired = r.Bool()
		case "is_filter":
			f.IsFilter = r.Bool()
		case "searchable":
			f.Searchable = r.Bool()
		case "multiple":
			f.Multiple = r.Bool()
		case "default_value":
			f.DefaultValue = r.String()
		case "visible":
			f.Visible = r.Bool()
		case "possible_values":
			f.PossibleValues = readJSONList[CustomFieldPossibleValue](r)
		case "trackers":
			f.Trackers = readJSONList[IdentifiableName](r)
		case "roles":
			f.Roles = readJSONList[IdentifiableName](r)
		default:
			r.Skip()
		}
	})
}

func (v *CustomFieldPossibleValue) DecodeXML(r *wire.XMLReader, _ xml.StartElement) error {
	return r.Children(func(el xml.StartElement) {
		switch el.Name.Local {
		case "value":
			v.Value = r.Text()
		case "label":
			v.Label = r.Text()
		default:
			r.Skip()
		}
	})
}

func (v *CustomFieldPossibleValue) DecodeJSON(r *wire.JSONReader) error {
	return r.Object(func(name string) {
		switch name {
		case "value":
			v.Value = r.String()
		case "label":
			v.Label = r.String()
		default:
			r.Skip()
		}
	})
}
