package redmine

import (
	"encoding/xml"

	"github.com/SeniorPomidorro/redmine-go-kit/pkg/wire"
)

// IssueCategory groups issues inside a project.
type IssueCategory struct {
	ID         int
	Project    *IdentifiableName
	AssignedTo *IdentifiableName
	Name       string
}

func (*IssueCategory) resource() Meta {
	return Meta{Element: "issue_category", Collection: "issue_categories", Path: "issue_categories", Scope: ScopeProject}
}

func (c *IssueCategory) EncodeXML(w *wire.XMLWriter) {
	w.String("name", c.Name)
	xmlWriteRef(w, "assigned_to_id", c.AssignedTo)
}

func (c *IssueCategory) EncodeJSON(w *wire.JSONWriter) {
	w.String("name", c.Name)
	jsonWriteRef(w, "assigned_to_id", c.AssignedTo)
}

func (c *IssueCategory) DecodeXML(r *wire.XMLReader, _ xml.StartElement) error {
	return r.Children(func(el xml.StartElement) {
		switch el.Name.Local {
		case "id":
			c.ID = r.Int()
		case "project":
			c.Project = xmlRef(r, el)
		case "assigned_to":
			c.AssignedTo = xmlRef(r, el)
		case "assigned_to_id":
			c.AssignedTo = xmlRefID(r)
		case "name":
			c.Name = r.Text()
		default:
			r.Skip()
		}
	})
}

func (c *IssueCategory) DecodeJSON(r *wire.JSONReader) error {
	return r.Object(func(name string) {
		switch name {
		case "id":
			c.ID = r.Int()
		case "project":
			c.Project = jsonRef(r)
		case "assigned_to":
			c.AssignedTo = jsonRef(r)
		case "assigned_to_id":
			c.AssignedTo = jsonRefID(r)
		case "name":
			c.Name = r.String()
		default:
			r.Skip()
		}
	})
}
