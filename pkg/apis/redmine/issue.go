package redmine

import (
	"encoding/xml"
	"time"

	"github.com/SeniorPomidorro/redmine-go-kit/pkg/wire"
)

// Issue is a Redmine issue.
//
// References (Project, Tracker, Status...) are read from both the nested form returned
// by the server and the *_id form written on create and update.
type Issue struct {
	ID           int
	Project      *IdentifiableName
	Tracker      *IdentifiableName
	Status       *IssueStatus
	Priority     *IdentifiableName
	Author       *IdentifiableName
	Category     *IdentifiableName
	AssignedTo   *IdentifiableName
	FixedVersion *IdentifiableName
	ParentIssue  *IdentifiableName

	Subject     string
	Description string
	StartDate   *time.Time
	DueDate     *time.Time
	DoneRatio   *int
	IsPrivate   bool

	EstimatedHours      *float64
	TotalEstimatedHours *float64
	SpentHours          *float64
	TotalSpentHours     *float64

	CustomFields []IssueCustomField
	CreatedOn    *time.Time
	UpdatedOn    *time.Time
	ClosedOn     *time.Time

	// Notes and PrivateNotes are only sent on update and add a journal entry.
	Notes        string
	PrivateNotes bool

	Journals        []Journal
	Attachments     []Attachment
	Relations       []IssueRelation
	Children        []IssueChild
	ChangeSets      []ChangeSet
	Watchers        []IdentifiableName
	AllowedStatuses []IssueStatus
	Uploads         []Upload
}

func (*Issue) resource() Meta {
	return Meta{Element: "issue", Collection: "issues", Path: "issues"}
}

func (i *Issue) EncodeXML(w *wire.XMLWriter) {
	w.String("subject", i.Subject)
	w.StringIfNotEmpty("notes", i.Notes)
	if i.PrivateNotes {
		w.Bool("private_notes", true)
	}
	w.String("description", i.Description)
	w.Bool("is_private", i.IsPrivate)
	xmlWriteRef(w, "project_id", i.Project)
	xmlWriteRef(w, "priority_id", i.Priority)
	w.IntIfNotZero("status_id", i.statusID())
	xmlWriteRef(w, "category_id", i.Category)
	xmlWriteRef(w, "tracker_id", i.Tracker)
	xmlWriteRef(w, "assigned_to_id", i.AssignedTo)
	xmlWriteRef(w, "parent_issue_id", i.ParentIssue)
	xmlWriteRef(w, "fixed_version_id", i.FixedVersion)
	w.FloatOrEmpty("estimated_hours", i.EstimatedHours)
	w.OptInt("done_ratio", i.DoneRatio)
	w.DateOrEmpty("start_date", i.StartDate)
	w.DateOrEmpty("due_date", i.DueDate)
	xmlWriteUploads(w, i.Uploads)
	xmlWriteCustomFields(w, i.CustomFields)
	w.Ints("watcher_user_ids", "watcher_user_id", refIDs(i.Watchers))
}

func (i *Issue) EncodeJSON(w *wire.JSONWriter) {
	w.String("subject", i.Subject)
	w.StringIfNotEmpty("notes", i.Notes)
	if i.PrivateNotes {
		w.Bool("private_notes", true)
	}
	w.String("description", i.Description)
	w.Bool("is_private", i.IsPrivate)
	jsonWriteRef(w, "project_id", i.Project)
	jsonWriteRef(w, "priority_id", i.Priority)
	w.IntIfNotZero("status_id", i.statusID())
	jsonWriteRef(w, "category_id", i.Category)
	jsonWriteRef(w, "tracker_id", i.Tracker)
	jsonWriteRef(w, "assigned_to_id", i.AssignedTo)
	jsonWriteRef(w, "parent_issue_id", i.ParentIssue)
	jsonWriteRef(w, "fixed_version_id", i.FixedVersion)
	w.FloatOrEmpty("estimated_hours", i.EstimatedHours)
	w.OptInt("done_ratio", i.DoneRatio)
	w.DateOrEmpty("start_date", i.StartDate)
	w.DateOrEmpty("due_date", i.DueDate)
	jsonWriteUploads(w, i.Uploads)
	jsonWriteCustomFields(w, i.CustomFields)
	w.Ints("watcher_user_ids", refIDs(i.Watchers))
}

func (i *Issue) statusID() int {
	if i.Status == nil {
		return 0
	}
	return i.Status.ID
}

func (i *Issue) DecodeXML(r *wire.XMLReader, _ xml.StartElement) error {
	return r.Children(func(el xml.StartElement) {
		switch el.Name.Local {
		case "id":
			i.ID = r.Int()
		case "project":
			i.Project = xmlRef(r, el)
		case "project_id":
			i.Project = xmlRefID(r)
		case "tracker":
			i.Tracker = xmlRef(r, el)
		case "tracker_id":
			i.Tracker = xmlRefID(r)
		case "status":
			i.Status = &IssueStatus{}
			_ = i.Status.DecodeXML(r, el)
		case "status_id":
			if id := r.OptInt(); id != nil {
				i.Status = &IssueStatus{ID: *id}
			}
		case "priority":
			i.Priority = xmlRef(r, el)
		case "priority_id":
			i.Priority = xmlRefID(r)
		case "author":
			i.Author = xmlRef(r, el)
		case "category":
			i.Category = xmlRef(r, el)
		case "category_id":
			i.Category = xmlRefID(r)
		case "assigned_to":
			i.AssignedTo = xmlRef(r, el)
		case "assigned_to_id":
			i.AssignedTo = xmlRefID(r)
		case "fixed_version":
			i.FixedVersion = xmlRef(r, el)
		case "fixed_version_id":
			i.FixedVersion = xmlRefID(r)
		case "parent":
			i.ParentIssue = xmlRef(r, el)
		case "parent_issue_id":
			i.ParentIssue = xmlRefID(r)
		case "subject":
			i.Subject = r.Text()
		case "description":
			i.Description = r.Text()
		case "notes":
			i.Notes = r.Text()
		case "private_notes":
			i.PrivateNotes = r.Bool()
		case "start_date":
			i.StartDate = r.Date()
		case "due_date":
			i.DueDate = r.Date()
		case "done_ratio":
			i.DoneRatio = r.OptInt()
		case "is_private":
			i.IsPrivate = r.Bool()
		case "estimated_hours":
			i.EstimatedHours = r.Float()
		case "total_estimated_hours":
			i.TotalEstimatedHours = r.Float()
		case "spent_hours":
			i.SpentHours = r.Float()
		case "total_spent_hours":
			i.TotalSpentHours = r.Float()
		case "custom_fields":
			i.CustomFields = xmlCustomFields(r)
		case "created_on":
			i.CreatedOn = r.Time()
		case "updated_on":
			i.UpdatedOn = r.Time()
		case "closed_on":
			i.ClosedOn = r.Time()
		case "journals":
			i.Journals = readXMLList[Journal](r, "journal")
		case "attachments":
			i.Attachments = readXMLList[Attachment](r, "attachment")
		case "relations":
			i.Relations = readXMLList[IssueRelation](r, "relation")
		case "children":
			i.Children = readXMLList[IssueChild](r, "issue")
		case "changesets":
			i.ChangeSets = readXMLList[ChangeSet](r, "changeset")
		case "watchers":
			i.Watchers = readXMLList[IdentifiableName](r, "user")
		case "watcher_user_ids":
			i.Watchers = refsFromIDs(r.Ints("watcher_user_id"))
		case "allowed_statuses":
			i.AllowedStatuses = readXMLList[IssueStatus](r, "status")
		case "uploads":
			i.Uploads = readXMLList[Upload](r, "upload")
		default:
			r.Skip()
		}
	})
}

func (i *Issue) DecodeJSON(r *wire.JSONReader) error {
	return r.Object(func(name string) {
		switch name {
		case "id":
			i.ID = r.Int()
		case "project":
			i.Project = jsonRef(r)
		case "project_id":
			i.Project = jsonRefID(r)
		case "tracker":
			i.Tracker = jsonRef(r)
		case "tracker_id":
			i.Tracker = jsonRefID(r)
		case "status":
			if r.Kind() == 'n' {
				r.Skip()
				return
			}
			i.Status = &IssueStatus{}
			_ = i.Status.DecodeJSON(r)
		case "status_id":
			if id := r.OptInt(); id != nil {
				i.Status = &IssueStatus{ID: *id}
			}
		case "priority":
			i.Priority = jsonRef(r)
		case "priority_id":
			i.Priority = jsonRefID(r)
		case "author":
			i.Author = jsonRef(r)
		case "category":
			i.Category = jsonRef(r)
		case "category_id":
			i.Category = jsonRefID(r)
		case "assigned_to":
			i.AssignedTo = jsonRef(r)
		case "assigned_to_id":
			i.AssignedTo = jsonRefID(r)
		case "fixed_version":
			i.FixedVersion = jsonRef(r)
		case "fixed_version_id":
			i.FixedVersion = jsonRefID(r)
		case "parent":
			i.ParentIssue = jsonRef(r)
		case "parent_issue_id":
			i.ParentIssue = jsonRefID(r)
		case "subject":
			i.Subject = r.String()
		case "description":
			i.Description = r.String()
		case "notes":
			i.Notes = r.String()
		case "private_notes":
			i.PrivateNotes = r.Bool()
		case "start_date":
			i.StartDate = r.Date()
		case "due_date":
			i.DueDate = r.Date()
		case "done_ratio":
			i.DoneRatio = r.OptInt()
		case "is_private":
			i.IsPrivate = r.Bool()
		case "estimated_hours":
			i.EstimatedHours = r.Float()
		case "total_estimated_hours":
			i.TotalEstimatedHours = r.Float()
		case "spent_hours":
			i.SpentHours = r.Float()
		case "total_spent_hours":
			i.TotalSpentHours = r.Float()
		case "custom_fields":
			i.CustomFields = jsonCustomFields(r)
		case "created_on":
			i.CreatedOn = r.Time()
		case "updated_on":
			i.UpdatedOn = r.Time()
		case "closed_on":
			i.ClosedOn = r.Time()
		case "journals":
			i.Journals = readJSONList[Journal](r)
		case "attachments":
			i.Attachments = readJSONList[Attachment](r)
		case "relations":
			i.Relations = readJSONList[IssueRelation](r)
		case "children":
			i.Children = readJSONList[IssueChild](r)
		case "changesets":
			i.ChangeSets = readJSONList[ChangeSet](r)
		case "watchers":
			i.Watchers = readJSONList[IdentifiableName](r)
		case "watcher_user_ids":
			i.Watchers = refsFromIDs(r.Ints())
		case "allowed_statuses":
			i.AllowedStatuses = readJSONList[IssueStatus](r)
		case "uploads":
			i.Uploads = readJSONList[Upload](r)
		default:
			r.Skip()
		}
	})
}

// IssueChild is a sub-task summary listed under an issue.
type IssueChild struct {
	ID       int
	Tracker  *IdentifiableName
	Subject  string
	Children []IssueChild
}

func (c *IssueChild) DecodeXML(r *wire.XMLReader, start xml.StartElement) error {
	c.ID = r.AttrInt(start, "id")
	return r.Children(func(el xml.StartElement) {
		switch el.Name.Local {
		case "id":
			c.ID = r.Int()
		case "tracker":
			c.Tracker = xmlRef(r, el)
		case "subject":
			c.Subject = r.Text()
		case "children":
			c.Children = readXMLList[IssueChild](r, "issue")
		default:
			r.Skip()
		}
	})
}

func (c *IssueChild) DecodeJSON(r *wire.JSONReader) error {
	return r.Object(func(name string) {
		switch name {
		case "id":
			c.ID = r.Int()
		case "tracker":
			c.Tracker = jsonRef(r)
		case "subject":
			c.Subject = r.String()
		case "children":
			c.Children = readJSONList[IssueChild](r)
		default:
			r.Skip()
		}
	})
}

// ChangeSet is a repository revision associated with an issue.
type ChangeSet struct {
	Revision    string
	User        *IdentifiableName
	Comments    string
	CommittedOn *time.Time
}

func (c *ChangeSet) DecodeXML(r *wire.XMLReader, start xml.StartElement) error {
	c.Revision = wire.Attr(start, "revision")
	return r.Children(func(el xml.StartElement) {
		switch el.Name.Local {
		case "revision":
			c.Revision = r.Text()
		case "user":
			c.User = xmlRef(r, el)
		case "comments":
			c.Comments = r.Text()
		case "committed_on":
			c.CommittedOn = r.Time()
		default:
			r.Skip()
		}
	})
}

func (c *ChangeSet) DecodeJSON(r *wire.JSONReader) error {
	return r.Object(func(name string) {
		switch name {
		case "revision":
			c.Revision = r.String()
		case "user":
			c.User = jsonRef(r)
		case "comments":
			c.Comments = r.String()
		case "committed_on":
			c.CommittedOn = r.Time()
		default:
			r.Skip()
		}
	})
}
