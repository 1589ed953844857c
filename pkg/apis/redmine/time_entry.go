package redmine

import (
	"encoding/xml"
	"time"

	"github.com/SeniorPomidorro/redmine-go-kit/pkg/wire"
)

// TimeEntry is time logged against a project or issue.
type TimeEntry struct {
	ID           int
	Project      *IdentifiableName
	Issue        *IdentifiableName
	User         *IdentifiableName
	Activity     *IdentifiableName
	Hours        float64
	Comments     string
	SpentOn      *time.Time
	CreatedOn    *time.Time
	UpdatedOn    *time.Time
	CustomFields []IssueCustomField
}

func (*TimeEntry) resource() Meta {
	return Meta{Element: "time_entry", Collection: "time_entries", Path: "time_entries"}
}

func (t *TimeEntry) EncodeXML(w *wire.XMLWriter) {
	xmlWriteRef(w, "issue_id", t.Issue)
	xmlWriteRef(w, "project_id", t.Project)
	w.DateOrEmpty("spent_on", t.SpentOn)
	w.String("hours", wire.FormatFloat(t.Hours))
	xmlWriteRef(w, "activity_id", t.Activity)
	w.String("comments", t.Comments)
	xmlWriteRef(w, "user_id", t.User)
	xmlWriteCustomFields(w, t.CustomFields)
}

func (t *TimeEntry) EncodeJSON(w *wire.JSONWriter) {
	jsonWriteRef(w, "issue_id", t.Issue)
	jsonWriteRef(w, "project_id", t.Project)
	w.DateOrEmpty("spent_on", t.SpentOn)
	hours := t.Hours
	w.FloatOrEmpty("hours", &hours)
	jsonWriteRef(w, "activity_id", t.Activity)
	w.String("comments", t.Comments)
	jsonWriteRef(w, "user_id", t.User)
	jsonWriteCustomFields(w, t.CustomFields)
}

func (t *TimeEntry) DecodeXML(r *wire.XMLReader, _ xml.StartElement) error {
	return r.Children(func(el xml.StartElement) {
		switch el.Name.Local {
		case "id":
			t.ID = r.Int()
		case "project":
			t.Project = xmlRef(r, el)
		case "project_id":
			t.Project = xmlRefID(r)
		case "issue":
			t.Issue = xmlRef(r, el)
		case "issue_id":
			t.Issue = xmlRefID(r)
		case "user":
			t.User = xmlRef(r, el)
		case "user_id":
			t.User = xmlRefID(r)
		case "activity":
			t.Activity = xmlRef(r, el)
		case "activity_id":
			t.Activity = xmlRefID(r)
		case "hours":
			if h := r.Float(); h != nil {
				t.Hours = *h
			}
		case "comments":
			t.Comments = r.Text()
		case "spent_on":
			t.SpentOn = r.Date()
		case "created_on":
			t.CreatedOn = r.Time()
		case "updated_on":
			t.UpdatedOn = r.Time()
		case "custom_fields":
			t.CustomFields = xmlCustomFields(r)
		default:
			r.Skip()
		}
	})
}

func (t *TimeEntry) DecodeJSON(r *wire.JSONReader) error {
	return r.Object(func(name string) {
		switch name {
		case "id":
			t.ID = r.Int()
		case "project":
			t.Project = jsonRef(r)
		case "project_id":
			t.Project = jsonRefID(r)
		case "issue":
			t.Issue = jsonRef(r)
		case "issue_id":
			t.Issue = jsonRefID(r)
		case "user":
			t.User = jsonRef(r)
		case "user_id":
			t.User = jsonRefID(r)
		case "activity":
			t.Activity = jsonRef(r)
		case "activity_id":
			t.Activity = jsonRefID(r)
		case "hours":
			if h := r.Float(); h != nil {
				t.Hours = *h
			}
		case "comments":
			t.Comments = r.String()
		case "spent_on":
			t.SpentOn = r.Date()
		case "created_on":
			t.CreatedOn = r.Time()
		case "updated_on":
			t.UpdatedOn = r.Time()
		case "custom_fields":
			t.CustomFields = jsonCustomFields(r)
		default:
			r.Skip()
		}
	})
}
