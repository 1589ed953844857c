package redmine

import (
	"encoding/xml"

	"github.com/SeniorPomidorro/redmine-go-kit/pkg/wire"
)

// ProjectMembership grants roles on a project to a user or a group. Created under
// /projects/{id}/memberships; read, updated and deleted at /memberships/{id}.
type ProjectMembership struct {
	ID      int
	Project *IdentifiableName
	User    *IdentifiableName
	Group   *IdentifiableName
	Roles   []MembershipRole
}

func (*ProjectMembership) resource() Meta {
	return Meta{Element: "membership", Collection: "memberships", Path: "memberships", Scope: ScopeProject}
}

// principalID is the user or group the membership is created for.
func (m *ProjectMembership) principalID() int {
	if id := refID(m.User); id != 0 {
		return id
	}
	return refID(m.Group)
}

func (m *ProjectMembership) EncodeXML(w *wire.XMLWriter) {
	w.IntIfNotZero("user_id", m.principalID())
	w.Ints("role_ids", "role_id", roleIDs(m.Roles))
}

func (m *ProjectMembership) EncodeJSON(w *wire.JSONWriter) {
	w.IntIfNotZero("user_id", m.principalID())
	w.Ints("role_ids", roleIDs(m.Roles))
}

func (m *ProjectMembership) DecodeXML(r *wire.XMLReader, _ xml.StartElement) error {
	return r.Children(func(el xml.StartElement) {
		switch el.Name.Local {
		case "id":
			m.ID = r.Int()
		case "project":
			m.Project = xmlRef(r, el)
		case "user":
			m.User = xmlRef(r, el)
		case "user_id":
			m.User = xmlRefID(r)
		case "group":
			m.Group = xmlRef(r, el)
		case "roles":
			m.Roles = readXMLList[MembershipRole](r, "role")
		case "role_ids":
			m.Roles = rolesFromIDs(r.Ints("role_id"))
		default:
			r.Skip()
		}
	})
}

func (m *ProjectMembership) DecodeJSON(r *wire.JSONReader) error {
	return r.Object(func(name string) {
		switch name {
		case "id":
			m.ID = r.Int()
		case "project":
			m.Project = jsonRef(r)
		case "user":
			m.User = jsonRef(r)
		case "user_id":
			m.User = jsonRefID(r)
		case "group":
			m.Group = jsonRef(r)
		case "roles":
			m.Roles = readJSONList[MembershipRole](r)
		case "role_ids":
			m.Roles = rolesFromIDs(r.Ints())
		default:
			r.Skip()
		}
	})
}
