package redmine

import (
	"encoding/xml"

	"github.com/SeniorPomidorro/redmine-go-kit/pkg/wire"
)

// Enumeration holds the fields shared by the /enumerations/* resources.
type Enumeration struct {
	ID        int
	Name      string
	IsDefault bool
	IsActive  bool
}

func (e *Enumeration) EncodeXML(w *wire.XMLWriter) {
	w.String("name", e.Name)
	w.Bool("is_default", e.IsDefault)
	w.Bool("active", e.IsActive)
}

func (e *Enumeration) EncodeJSON(w *wire.JSONWriter) {
	w.String("name", e.Name)
	w.Bool("is_default", e.IsDefault)
	w.Bool("active", e.IsActive)
}

func (e *Enumeration) DecodeXML(r *wire.XMLReader, _ xml.StartElement) error {
	return r.Children(func(el xml.StartElement) {
		switch el.Name.Local {
		case "id":
			e.ID = r.Int()
		case "name":
			e.Name = r.Text()
		case "is_default":
			e.IsDefault = r.Bool()
		case "active":
			e.IsActive = r.Bool()
		default:
			r.Skip()
		}
	})
}

func (e *Enumeration) DecodeJSON(r *wire.JSONReader) error {
	return r.Object(func(name string) {
		switch name {
		case "id":
			e.ID = r.Int()
		case "name":
			e.Name = r.String()
		case "is_default":
			e.IsDefault = r.Bool()
		case "active":
			e.IsActive = r.Bool()
		default:
			r.Skip()
		}
	})
}

// IssuePriority is an issue priority from /enumerations/issue_priorities.
type IssuePriority struct {
	Enumeration
}

func (*IssuePriority) resource() Meta {
	return Meta{Element: "issue_priority", Collection: "issue_priorities", Path: "enumerations/issue_priorities"}
}

// TimeEntryActivity is a time tracking activity from /enumerations/time_entry_activities.
type TimeEntryActivity struct {
	Enumeration
}

func (*TimeEntryActivity) resource() Meta {
	return Meta{Element: "time_entry_activity", Collection: "time_entry_activities", Path: "enumerations/time_entry_activities"}
}

// DocumentCategory is a document category from /enumerations/document_categories.
type DocumentCategory struct {
	Enumeration
}

func (*DocumentCategory) resource() Meta {
	return Meta{Element: "document_category", Collection: "document_categories", Path: "enumerations/document_categories"}
}
