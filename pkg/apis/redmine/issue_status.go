package redmine

import (
	"encoding/xml"

	"github.com/SeniorPomidorro/redmine-go-kit/pkg/wire"
)

// IssueStatus is a workflow status. Inside an issue it is sent as attributes
// (<status id="1" name="New" is_closed="false"/>), in /issue_statuses as elements.
type IssueStatus struct {
	ID          int
	Name        string
	IsClosed    bool
	IsDefault   bool
	Description string
}

// Statuses are read-only over the API.
func (*IssueStatus) resource() Meta {
	return Meta{Element: "issue_status", Collection: "issue_statuses", Path: "issue_statuses"}
}

func (s *IssueStatus) EncodeXML(w *wire.XMLWriter) {
	w.String("name", s.Name)
	w.Bool("is_closed", s.IsClosed)
	w.Bool("is_default", s.IsDefault)
	w.StringIfNotEmpty("description", s.Description)
}

func (s *IssueStatus) EncodeJSON(w *wire.JSONWriter) {
	w.String("name", s.Name)
	w.Bool("is_closed", s.IsClosed)
	w.Bool("is_default", s.IsDefault)
	w.StringIfNotEmpty("description", s.Description)
}

func (s *IssueStatus) DecodeXML(r *wire.XMLReader, start xml.StartElement) error {
	s.ID = r.AttrInt(start, "id")
	s.Name = wire.Attr(start, "name")
	s.IsClosed = r.AttrBool(start, "is_closed")
	return r.Children(func(el xml.StartElement) {
		switch el.Name.Local {
		case "id":
			s.ID = r.Int()
		case "name":
			s.Name = r.Text()
		case "is_closed":
			s.IsClosed = r.Bool()
		case "is_default":
			s.IsDefault = r.Bool()
		case "description":
			s.Description = r.Text()
		default:
			r.Skip()
		}
	})
}

func (s *IssueStatus) DecodeJSON(r *wire.JSONReader) error {
	return r.Object(func(name string) {
		switch name {
		case "id":
			s.ID = r.Int()
		case "name":
			s.Name = r.String()
		case "is_closed":
			s.IsClosed = r.Bool()
		case "is_default":
			s.IsDefault = r.Bool()
		case "description":
			s.Description = r.String()
		default:
			r.Skip()
		}
	})
}
