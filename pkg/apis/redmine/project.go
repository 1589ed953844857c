package redmine

import (
	"encoding/xml"
	"time"

	"github.com/SeniorPomidorro/redmine-go-kit/pkg/wire"
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus int

const (
	ProjectActive   ProjectStatus = 1
	ProjectClosed   ProjectStatus = 5
	ProjectArchived ProjectStatus = 9
)

// Project is a Redmine project.
//
// Trackers, EnabledModules and IssueCustomFields are read from the server's nested
// form and written as tracker_ids, enabled_module_names and issue_custom_field_ids.
type Project struct {
	ID              int
	Name            string
	Identifier      string
	Description     string
	HomePage        string
	Parent          *IdentifiableName
	IsPublic        bool
	InheritMembers  bool
	Status          ProjectStatus
	DefaultVersion  *IdentifiableName
	DefaultAssignee *IdentifiableName
	CreatedOn       *time.Time
	UpdatedOn       *time.Time

	Trackers            []IdentifiableName
	EnabledModules      []IdentifiableName
	IssueCategories     []IdentifiableName
	TimeEntryActivities []IdentifiableName
	IssueCustomFields   []IdentifiableName
	CustomFields        []IssueCustomField
}

func (*Project) resource() Meta {
	return Meta{Element: "project", Collection: "projects", Path: "projects"}
}

func (p *Project) EncodeXML(w *wire.XMLWriter) {
	w.String("name", p.Name)
	w.String("identifier", p.Identifier)
	w.StringIfNotEmpty("description", p.Description)
	w.StringIfNotEmpty("homepage", p.HomePage)
	w.Bool("is_public", p.IsPublic)
	w.Bool("inherit_members", p.InheritMembers)
	xmlWriteRef(w, "parent_id", p.Parent)
	xmlWriteRef(w, "default_version_id", p.DefaultVersion)
	xmlWriteRef(w, "default_assigned_to_id", p.DefaultAssignee)
	w.Ints("tracker_ids", "tracker_id", refIDs(p.Trackers))
	w.Strings("enabled_module_names", "enabled_module_name", refNames(p.EnabledModules))
	w.Ints("issue_custom_field_ids", "issue_custom_field_id", refIDs(p.IssueCustomFields))
	xmlWriteCustomFields(w, p.CustomFields)
}

func (p *Project) EncodeJSON(w *wire.JSONWriter) {
	w.String("name", p.Name)
	w.String("identifier", p.Identifier)
	w.StringIfNotEmpty("description", p.Description)
	w.StringIfNotEmpty("homepage", p.HomePage)
	w.Bool("is_public", p.IsPublic)
	w.Bool("inherit_members", p.InheritMembers)
	jsonWriteRef(w, "parent_id", p.Parent)
	jsonWriteRef(w, "default_version_id", p.DefaultVersion)
	jsonWriteRef(w, "default_assigned_to_id", p.DefaultAssignee)
	w.Ints("tracker_ids", refIDs(p.Trackers))
	w.Strings("enabled_module_names", refNames(p.EnabledModules))
	w.Ints("issue_custom_field_ids", refIDs(p.IssueCustomFields))
	jsonWriteCustomFields(w, p.CustomFields)
}

func (p *Project) DecodeXML(r *wire.XMLReader, _ xml.StartElement) error {
	return r.Children(func(el xml.StartElement) {
		switch el.Name.Local {
		case "id":
			p.ID = r.Int()
		case "name":
			p.Name = r.Text()
		case "identifier":
			p.Identifier = r.Text()
		case "description":
			p.Description = r.Text()
		case "homepage":
			p.HomePage = r.Text()
		case "parent":
			p.Parent = xmlRef(r, el)
		case "parent_id":
			p.Parent = xmlRefID(r)
		case "is_public":
			p.IsPublic = r.Bool()
		case "inherit_members":
			p.InheritMembers = r.Bool()
		case "status":
			p.Status = ProjectStatus(r.Int())
		case "default_version":
			p.DefaultVersion = xmlRef(r, el)
		case "default_version_id":
			p.DefaultVersion = xmlRefID(r)
		case "default_assignee":
			p.DefaultAssignee = xmlRef(r, el)
		case "default_assigned_to_id":
			p.DefaultAssignee = xmlRefID(r)
		case "created_on":
			p.CreatedOn = r.Time()
		case "updated_on":
			p.UpdatedOn = r.Time()
		case "trackers":
			p.Trackers = readXMLList[IdentifiableName](r, "tracker")
		case "tracker_ids":
			p.Trackers = refsFromIDs(r.Ints("tracker_id"))
		case "enabled_modules":
			p.EnabledModules = readXMLList[IdentifiableName](r, "enabled_module")
		case "enabled_module_names":
			p.EnabledModules = refsFromNames(r.Strings("enabled_module_name"))
		case "issue_categories":
			p.IssueCategories = readXMLList[IdentifiableName](r, "issue_category")
		case "time_entry_activities":
			p.TimeEntryActivities = readXMLList[IdentifiableName](r, "time_entry_activity")
		case "issue_custom_fields":
			p.IssueCustomFields = readXMLList[IdentifiableName](r, "custom_field")
		case "issue_custom_field_ids":
			p.IssueCustomFields = refsFromIDs(r.Ints("issue_custom_field_id"))
		case "custom_fields":
			p.CustomFields = xmlCustomFields(r)
		default:
			r.Skip()
		}
	})
}

func (p *Project) DecodeJSON(r *wire.JSONReader) error {
	return r.Object(func(name string) {
		switch name {
		case "id":
			p.ID = r.Int()
		case "name":
			p.Name = r.String()
		case "identifier":
			p.Identifier = r.String()
		case "description":
			p.Description = r.String()
		case "homepage":
			p.HomePage = r.String()
		case "parent":
			p.Parent = jsonRef(r)
		case "parent_id":
			p.Parent = jsonRefID(r)
		case "is_public":
			p.IsPublic = r.Bool()
		case "inherit_members":
			p.InheritMembers = r.Bool()
		case "status":
			p.Status = ProjectStatus(r.Int())
		case "default_version":
			p.DefaultVersion = jsonRef(r)
		case "default_version_id":
			p.DefaultVersion = jsonRefID(r)
		case "default_assignee":
			p.DefaultAssignee = jsonRef(r)
		case "default_assigned_to_id":
			p.DefaultAssignee = jsonRefID(r)
		case "created_on":
			p.CreatedOn = r.Time()
		case "updated_on":
			p.UpdatedOn = r.Time()
		case "trackers":
			p.Trackers = readJSONList[IdentifiableName](r)
		case "tracker_ids":
			p.Trackers = refsFromIDs(r.Ints())
		case "enabled_modules":
			p.EnabledModules = readJSONList[IdentifiableName](r)
		case "enabled_module_names":
			p.EnabledModules = refsFromNames(r.Strings())
		case "issue_categories":
			p.IssueCategories = readJSONList[IdentifiableName](r)
		case "time_entry_activities":
			p.TimeEntryActivities = readJSONList[IdentifiableName](r)
		case "issue_custom_fields":
			p.IssueCustomFields = readJSONList[IdentifiableName](r)
		case "issue_custom_field_ids":
			p.IssueCustomFields = refsFromIDs(r.Ints())
		case "custom_fields":
			p.CustomFields = jsonCustomFields(r)
		default:
			r.Skip()
		}
	})
}
