package redmine

import (
	"encoding/xml"
	"time"

	"github.com/SeniorPomidorro/redmine-go-kit/pkg/wire"
)

// VersionStatus is open, locked or closed.
type VersionStatus string

const (
	VersionOpen   VersionStatus = "open"
	VersionLocked VersionStatus = "locked"
	VersionClosed VersionStatus = "closed"
)

// VersionSharing controls which projects can use a version.
type VersionSharing string

const (
	SharingNone        VersionSharing = "none"
	SharingDescendants VersionSharing = "descendants"
	SharingHierarchy   VersionSharing = "hierarchy"
	SharingTree        VersionSharing = "tree"
	SharingSystem      VersionSharing = "system"
)

// Version is a project milestone, created under /projects/{id}/versions.
type Version struct {
	ID             int
	Project        *IdentifiableName
	Name           string
	Description    string
	Status         VersionStatus
	DueDate        *time.Time
	Sharing        VersionSharing
	WikiPageTitle  string
	EstimatedHours *float64
	SpentHours     *float64
	CreatedOn      *time.Time
	UpdatedOn      *time.Time
	CustomFields   []IssueCustomField
}

func (*Version) resource() Meta {
	return Meta{Element: "version", Collection: "versions", Path: "versions", Scope: ScopeProject}
}

func (v *Version) EncodeXML(w *wire.XMLWriter) {
	w.String("name", v.Name)
	w.StringIfNotEmpty("status", string(v.Status))
	w.StringIfNotEmpty("sharing", string(v.Sharing))
	w.DateOrEmpty("due_date", v.DueDate)
	w.String("description", v.Description)
	w.StringIfNotEmpty("wiki_page_title", v.WikiPageTitle)
	xmlWriteCustomFields(w, v.CustomFields)
}

func (v *Version) EncodeJSON(w *wire.JSONWriter) {
	w.String("name", v.Name)
	w.StringIfNotEmpty("status", string(v.Status))
	w.StringIfNotEmpty("sharing", string(v.Sharing))
	w.DateOrEmpty("due_date", v.DueDate)
	w.String("description", v.Description)
	w.StringIfNotEmpty("wiki_page_title", v.WikiPageTitle)
	jsonWriteCustomFields(w, v.CustomFields)
}

func (v *Version) DecodeXML(r *wire.XMLReader, _ xml.StartElement) error {
	return r.Children(func(el xml.StartElement) {
		switch el.Name.Local {
		case "id":
			v.ID = r.Int()
		case "project":
			v.Project = xmlRef(r, el)
		case "name":
			v.Name = r.Text()
		case "description":
			v.Description = r.Text()
		case "status":
			v.Status = VersionStatus(r.Text())
		case "due_date":
			v.DueDate = r.Date()
		case "sharing":
			v.Sharing = VersionSharing(r.Text())
		case "wiki_page_title":
			v.WikiPageTitle = r.Text()
		case "estimated_hours":
			v.EstimatedHours = r.Float()
		case "spent_hours":
			v.SpentHours = r.Float()
		case "created_on":
			v.CreatedOn = r.Time()
		case "updated_on":
			v.UpdatedOn = r.Time()
		case "custom_fields":
			v.CustomFields = xmlCustomFields(r)
		default:
			r.Skip()
		}
	})
}

func (v *Version) DecodeJSON(r *wire.JSONReader) error {
	return r.Object(func(name string) {
		switch name {
		case "id":
			v.ID = r.Int()
		case "project":
			v.Project = jsonRef(r)
		case "name":
			v.Name = r.String()
		case "description":
			v.Description = r.String()
		case "status":
			v.Status = VersionStatus(r.String())
		case "due_date":
			v.DueDate = r.Date()
		case "sharing":
			v.Sharing = VersionSharing(r.String())
		case "wiki_page_title":
			v.WikiPageTitle = r.String()
		case "estimated_hours":
			v.EstimatedHours = r.Float()
		case "spent_hours":
			v.SpentHours = r.Float()
		case "created_on":
			v.CreatedOn = r.Time()
		case "updated_on":
			v.UpdatedOn = r.Time()
		case "custom_fields":
			v.CustomFields = jsonCustomFields(r)
		default:
			r.Skip()
		}
	})
}
