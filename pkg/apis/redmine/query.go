package redmine

import (
	"encoding/xml"

	"github.com/SeniorPomidorro/redmine-go-kit/pkg/wire"
)

// Query is a saved issue query. Pass its id as query_id when listing issues.
type Query struct {
	ID        int
	Name      string
	IsPublic  bool
	ProjectID *int
}

// Queries are read-only over the API.
func (*Query) resource() Meta {
	return Meta{Element: "query", Collection: "queries", Path: "queries"}
}

func (q *Query) EncodeXML(w *wire.XMLWriter) {
	w.String("name", q.Name)
	w.Bool("is_public", q.IsPublic)
	w.OptInt("project_id", q.ProjectID)
}

func (q *Query) EncodeJSON(w *wire.JSONWriter) {
	w.String("name", q.Name)
	w.Bool("is_public", q.IsPublic)
	w.OptInt("project_id", q.ProjectID)
}

func (q *Query) DecodeXML(r *wire.XMLReader, _ xml.StartElement) error {
	return r.Children(func(el xml.StartElement) {
		switch el.Name.Local {
		case "id":
			q.ID = r.Int()
		case "name":
			q.Name = r.Text()
		case "is_public":
			q.IsPublic = r.Bool()
		case "project_id":
			q.ProjectID = r.OptInt()
		default:
			r.Skip()
		}
	})
}

func (q *Query) DecodeJSON(r *wire.JSONReader) error {
	return r.Object(func(name string) {
		switch name {
		case "id":
			q.ID = r.Int()
		case "name":
			q.Name = r.String()
		case "is_public":
			q.IsPublic = r.Bool()
		case "project_id":
			q.ProjectID = r.OptInt()
		default:
			r.Skip()
		}
	})
}
