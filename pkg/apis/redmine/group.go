package redmine

import (
	"encoding/xml"

	"github.com/SeniorPomidorro/redmine-go-kit/pkg/wire"
)

// Group is a named set of users. Users and Memberships are only returned when
// requested with include=users,memberships.
type Group struct {
	ID           int
	Name         string
	Users        []IdentifiableName
	CustomFields []IssueCustomField
	Memberships  []Membership
}

func (*Group) resource() Meta {
	return Meta{Element: "group", Collection: "groups", Path: "groups"}
}

func (g *Group) EncodeXML(w *wire.XMLWriter) {
	w.String("name", g.Name)
	w.Ints("user_ids", "user_id", refIDs(g.Users))
	xmlWriteCustomFields(w, g.CustomFields)
}

func (g *Group) EncodeJSON(w *wire.JSONWriter) {
	w.String("name", g.Name)
	w.Ints("user_ids", refIDs(g.Users))
	jsonWriteCustomFields(w, g.CustomFields)
}

func (g *Group) DecodeXML(r *wire.XMLReader, _ xml.StartElement) error {
	return r.Children(func(el xml.StartElement) {
		switch el.Name.Local {
		case "id":
			g.ID = r.Int()
		case "name":
			g.Name = r.Text()
		case "users":
			g.Users = readXMLList[IdentifiableName](r, "user")
		case "user_ids":
			g.Users = refsFromIDs(r.Ints("user_id"))
		case "custom_fields":
			g.CustomFields = xmlCustomFields(r)
		case "memberships":
			g.Memberships = readXMLList[Membership](r, "membership")
		default:
			r.Skip()
		}
	})
}

func (g *Group) DecodeJSON(r *wire.JSONReader) error {
	return r.Object(func(name string) {
		switch name {
		case "id":
			g.ID = r.Int()
		case "name":
			g.Name = r.String()
		case "users":
			g.Users = readJSONList[IdentifiableName](r)
		case "user_ids":
			g.Users = refsFromIDs(r.Ints())
		case "custom_fields":
			g.CustomFields = jsonCustomFields(r)
		case "memberships":
			g.Memberships = readJSONList[Membership](r)
		default:
			r.Skip()
		}
	})
}
