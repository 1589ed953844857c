package redmine

import (
	"encoding/xml"
	"time"

	"github.com/SeniorPomidorro/redmine-go-kit/pkg/wire"
)

// News is a project news item. News is listed globally or per project and always
// created under a project.
type News struct {
	ID          int
	Project     *IdentifiableName
	Author      *IdentifiableName
	Title       string
	Summary     string
	Description string
	CreatedOn   *time.Time
	Comments    []NewsComment
	Attachments []Attachment
	Uploads     []Upload
}

// NewsComment is a comment on a news item.
type NewsComment struct {
	ID      int
	Author  *IdentifiableName
	Content string
}

func (*News) resource() Meta {
	return Meta{Element: "news", Collection: "news", Path: "news", Scope: ScopeOptionalProject}
}

func (n *News) EncodeXML(w *wire.XMLWriter) {
	w.String("title", n.Title)
	w.StringIfNotEmpty("summary", n.Summary)
	w.String("description", n.Description)
	xmlWriteUploads(w, n.Uploads)
}

func (n *News) EncodeJSON(w *wire.JSONWriter) {
	w.String("title", n.Title)
	w.StringIfNotEmpty("summary", n.Summary)
	w.String("description", n.Description)
	jsonWriteUploads(w, n.Uploads)
}

func (n *News) DecodeXML(r *wire.XMLReader, _ xml.StartElement) error {
	return r.Children(func(el xml.StartElement) {
		switch el.Name.Local {
		case "id":
			n.ID = r.Int()
		case "project":
			n.Project = xmlRef(r, el)
		case "author":
			n.Author = xmlRef(r, el)
		case "title":
			n.Title = r.Text()
		case "summary":
			n.Summary = r.Text()
		case "description":
			n.Description = r.Text()
		case "created_on":
			n.CreatedOn = r.Time()
		case "comments":
			n.Comments = readXMLList[NewsComment](r, "comment")
		case "attachments":
			n.Attachments = readXMLList[Attachment](r, "attachment")
		case "uploads":
			n.Uploads = readXMLList[Upload](r, "upload")
		default:
			r.Skip()
		}
	})
}

func (n *News) DecodeJSON(r *wire.JSONReader) error {
	return r.Object(func(name string) {
		switch name {
		case "id":
			n.ID = r.Int()
		case "project":
			n.Project = jsonRef(r)
		case "author":
			n.Author = jsonRef(r)
		case "title":
			n.Title = r.String()
		case "summary":
			n.Summary = r.String()
		case "description":
			n.Description = r.String()
		case "created_on":
			n.CreatedOn = r.Time()
		case "comments":
			n.Comments = readJSONList[NewsComment](r)
		case "attachments":
			n.Attachments = readJSONList[Attachment](r)
		case "uploads":
			n.Uploads = readJSONList[Upload](r)
		default:
			r.Skip()
		}
	})
}

func (c *NewsComment) DecodeXML(r *wire.XMLReader, start xml.StartElement) error {
	c.ID = r.AttrInt(start, "id")
	return r.Children(func(el xml.StartElement) {
		switch el.Name.Local {
		case "id":
			c.ID = r.Int()
		case "author":
			c.Author = xmlRef(r, el)
		case "content":
			c.Content = r.Text()
		default:
			r.Skip()
		}
	})
}

func (c *NewsComment) DecodeJSON(r *wire.JSONReader) error {
	return r.Object(func(name string) {
		switch name {
		case "id":
			c.ID = r.Int()
		case "author":
			c.Author = jsonRef(r)
		case "content":
			c.Content = r.String()
		default:
			r.Skip()
		}
	})
}
