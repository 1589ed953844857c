package redmine

import (
	"encoding/xml"

	"github.com/SeniorPomidorro/redmine-go-kit/pkg/wire"
)

// Role is a set of permissions granted through project memberships.
type Role struct {
	ID                    int
	Name                  string
	IsAssignable          bool
	IssuesVisibility      string
	TimeEntriesVisibility string
	UsersVisibility       string
	Permissions           []string
}

func (*Role) resource() Meta {
	return Meta{Element: "role", Collection: "roles", Path: "roles"}
}

func (role *Role) EncodeXML(w *wire.XMLWriter) {
	w.String("name", role.Name)
	w.Bool("assignable", role.IsAssignable)
	w.StringIfNotEmpty("issues_visibility", role.IssuesVisibility)
	w.StringIfNotEmpty("time_entries_visibility", role.TimeEntriesVisibility)
	w.StringIfNotEmpty("users_visibility", role.UsersVisibility)
	w.Strings("permissions", "permission", role.Permissions)
}

func (role *Role) EncodeJSON(w *wire.JSONWriter) {
	w.String("name", role.Name)
	w.Bool("assignable", role.IsAssignable)
	w.StringIfNotEmpty("issues_visibility", role.IssuesVisibility)
	w.StringIfNotEmpty("time_entries_visibility", role.TimeEntriesVisibility)
	w.StringIfNotEmpty("users_visibility", role.UsersVisibility)
	w.Strings("permissions", role.Permissions)
}

func (role *Role) DecodeXML(r *wire.XMLReader, start xml.StartElement) error {
	if wire.HasAttr(start, "id") {
		role.ID = r.AttrInt(start, "id")
		role.Name = wire.Attr(start, "name")
	}
	return r.Children(func(el xml.StartElement) {
		switch el.Name.Local {
		case "id":
			role.ID = r.Int()
		case "name":
			role.Name = r.Text()
		case "assignable":
			role.IsAssignable = r.Bool()
		case "issues_visibility":
			role.IssuesVisibility = r.Text()
		case "time_entries_visibility":
			role.TimeEntriesVisibility = r.Text()
		case "users_visibility":
			role.UsersVisibility = r.Text()
		case "permissions":
			role.Permissions = r.Strings("permission")
		default:
			r.Skip()
		}
	})
}

func (role *Role) DecodeJSON(r *wire.JSONReader) error {
	return r.Object(func(name string) {
		switch name {
		case "id":
			role.ID = r.Int()
		case "name":
			role.Name = r.String()
		case "assignable":
			role.IsAssignable = r.Bool()
		case "issues_visibility":
			role.IssuesVisibility = r.String()
		case "time_entries_visibility":
			role.TimeEntriesVisibility = r.String()
		case "users_visibility":
			role.UsersVisibility = r.String()
		case "permissions":
			role.Permissions = r.Strings()
		default:
			r.Skip()
		}
	})
}
