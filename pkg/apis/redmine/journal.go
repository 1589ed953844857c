package redmine

import (
	"encoding/xml"
	"time"

	"github.com/SeniorPomidorro/redmine-go-kit/pkg/wire"
)

// Journal is one entry of an issue's history.
type Journal struct {
	ID           int
	User         *IdentifiableName
	Notes        string
	CreatedOn    *time.Time
	UpdatedOn    *time.Time
	UpdatedBy    *IdentifiableName
	PrivateNotes bool
	Details      []Detail
}

// Detail is a single attribute change recorded by a journal.
type Detail struct {
	Property string
	Name     string
	OldValue string
	NewValue string
}

// Journals can only be edited (notes, private_notes); they are created through issue updates.
func (*Journal) resource() Meta {
	return Meta{Element: "journal", Collection: "journals", Path: "journals"}
}

func (j *Journal) EncodeXML(w *wire.XMLWriter) {
	w.String("notes", j.Notes)
	w.Bool("private_notes", j.PrivateNotes)
}

func (j *Journal) EncodeJSON(w *wire.JSONWriter) {
	w.String("notes", j.Notes)
	w.Bool("private_notes", j.PrivateNotes)
}

func (j *Journal) DecodeXML(r *wire.XMLReader, start xml.StartElement) error {
	if wire.HasAttr(start, "id") {
		j.ID = r.AttrInt(start, "id")
	}
	return r.Children(func(el xml.StartElement) {
		switch el.Name.Local {
		case "id":
			j.ID = r.Int()
		case "user":
			j.User = xmlRef(r, el)
		case "notes":
			j.Notes = r.Text()
		case "created_on":
			j.CreatedOn = r.Time()
		case "updated_on":
			j.UpdatedOn = r.Time()
		case "updated_by":
			j.UpdatedBy = xmlRef(r, el)
		case "private_notes":
			j.PrivateNotes = r.Bool()
		case "details":
			j.Details = readXMLList[Detail](r, "detail")
		default:
			r.Skip()
		}
	})
}

func (j *Journal) DecodeJSON(r *wire.JSONReader) error {
	return r.Object(func(name string) {
		switch name {
		case "id":
			j.ID = r.Int()
		case "user":
			j.User = jsonRef(r)
		case "notes":
			j.Notes = r.String()
		case "created_on":
			j.CreatedOn = r.Time()
		case "updated_on":
			j.UpdatedOn = r.Time()
		case "updated_by":
			j.UpdatedBy = jsonRef(r)
		case "private_notes":
			j.PrivateNotes = r.Bool()
		case "details":
			j.Details = readJSONList[Detail](r)
		default:
			r.Skip()
		}
	})
}

func (d *Detail) DecodeXML(r *wire.XMLReader, start xml.StartElement) error {
	d.Property = wire.Attr(start, "property")
	d.Name = wire.Attr(start, "name")
	return r.Children(func(el xml.StartElement) {
		switch el.Name.Local {
		case "old_value":
			d.OldValue = r.Text()
		case "new_value":
			d.NewValue = r.Text()
		default:
			r.Skip()
		}
	})
}

func (d *Detail) DecodeJSON(r *wire.JSONReader) error {
	return r.Object(func(name string) {
		switch name {
		case "property":
			d.Property = r.String()
		case "name":
			d.Name = r.String()
		case "old_value":
			d.OldValue = r.String()
		case "new_value":
			d.NewValue = r.String()
		default:
			r.Skip()
		}
	})
}
