package redmine

import (
	"encoding/xml"
	"time"

	"github.com/SeniorPomidorro/redmine-go-kit/pkg/wire"
)

// WikiPage is a page of a project wiki, addressed by title rather than id.
type WikiPage struct {
	Title       string
	ParentTitle string
	Text        string
	Version     int
	Author      *IdentifiableName
	Comments    string
	CreatedOn   *time.Time
	UpdatedOn   *time.Time
	Attachments []Attachment
	Uploads     []Upload
}

// Served only by the Client wiki operations.
func (*WikiPage) resource() Meta {
	return Meta{Element: "wiki_page", Collection: "wiki_pages"}
}

// Version, when set, makes the server reject the update if the page changed since.
func (p *WikiPage) EncodeXML(w *wire.XMLWriter) {
	w.String("text", p.Text)
	w.StringIfNotEmpty("comments", p.Comments)
	w.IntIfNotZero("version", p.Version)
	xmlWriteUploads(w, p.Uploads)
}

func (p *WikiPage) EncodeJSON(w *wire.JSONWriter) {
	w.String("text", p.Text)
	w.StringIfNotEmpty("comments", p.Comments)
	w.IntIfNotZero("version", p.Version)
	jsonWriteUploads(w, p.Uploads)
}

func (p *WikiPage) DecodeXML(r *wire.XMLReader, _ xml.StartElement) error {
	return r.Children(func(el xml.StartElement) {
		switch el.Name.Local {
		case "title":
			p.Title = r.Text()
		case "parent":
			p.ParentTitle = wire.Attr(el, "title")
			r.Skip()
		case "text":
			p.Text = r.Text()
		case "version":
			p.Version = r.Int()
		case "author":
			p.Author = xmlRef(r, el)
		case "comments":
			p.Comments = r.Text()
		case "created_on":
			p.CreatedOn = r.Time()
		case "updated_on":
			p.UpdatedOn = r.Time()
		case "attachments":
			p.Attachments = readXMLList[Attachment](r, "attachment")
		case "uploads":
			p.Uploads = readXMLList[Upload](r, "upload")
		default:
			r.Skip()
		}
	})
}

func (p *WikiPage) DecodeJSON(r *wire.JSONReader) error {
	return r.Object(func(name string) {
		switch name {
		case "title":
			p.Title = r.String()
		case "parent":
			r.Object(func(name string) {
				if name == "title" {
					p.ParentTitle = r.String()
					return
				}
				r.Skip()
			})
		case "text":
			p.Text = r.String()
		case "version":
			p.Version = r.Int()
		case "author":
			p.Author = jsonRef(r)
		case "comments":
			p.Comments = r.String()
		case "created_on":
			p.CreatedOn = r.Time()
		case "updated_on":
			p.UpdatedOn = r.Time()
		case "attachments":
			p.Attachments = readJSONList[Attachment](r)
		case "uploads":
			p.Uploads = readJSONList[Upload](r)
		default:
			r.Skip()
		}
	})
}
