package redmine

import (
	"encoding/xml"
	"time"

	"github.com/SeniorPomidorro/redmine-go-kit/pkg/wire"
)

// Attachment is a file attached to an issue, wiki page, news item or document.
type Attachment struct {
	ID           int
	FileName     string
	FileSize     int
	ContentType  string
	Description  string
	ContentURL   string
	ThumbnailURL string
	Digest       string
	Author       *IdentifiableName
	CreatedOn    *time.Time
}

// Only filename and description can be changed once an attachment exists.
func (*Attachment) resource() Meta {
	return Meta{Element: "attachment", Collection: "attachments", Path: "attachments"}
}

func (a *Attachment) EncodeXML(w *wire.XMLWriter) {
	w.IntIfNotZero("id", a.ID)
	w.StringIfNotEmpty("filename", a.FileName)
	w.StringIfNotEmpty("description", a.Description)
}

func (a *Attachment) EncodeJSON(w *wire.JSONWriter) {
	w.IntIfNotZero("id", a.ID)
	w.StringIfNotEmpty("filename", a.FileName)
	w.StringIfNotEmpty("description", a.Description)
}

func (a *Attachment) DecodeXML(r *wire.XMLReader, _ xml.StartElement) error {
	return r.Children(func(el xml.StartElement) {
		switch el.Name.Local {
		case "id":
			a.ID = r.Int()
		case "filename":
			a.FileName = r.Text()
		case "filesize":
			a.FileSize = r.Int()
		case "content_type":
			a.ContentType = r.Text()
		case "description":
			a.Description = r.Text()
		case "content_url":
			a.ContentURL = r.Text()
		case "thumbnail_url":
			a.ThumbnailURL = r.Text()
		case "digest":
			a.Digest = r.Text()
		case "author":
			a.Author = xmlRef(r, el)
		case "created_on":
			a.CreatedOn = r.Time()
		default:
			r.Skip()
		}
	})
}

func (a *Attachment) DecodeJSON(r *wire.JSONReader) error {
	return r.Object(func(name string) {
		switch name {
		case "id":
			a.ID = r.Int()
		case "filename":
			a.FileName = r.String()
		case "filesize":
			a.FileSize = r.Int()
		case "content_type":
			a.ContentType = r.String()
		case "description":
			a.Description = r.String()
		case "content_url":
			a.ContentURL = r.String()
		case "thumbnail_url":
			a.ThumbnailURL = r.String()
		case "digest":
			a.Digest = r.String()
		case "author":
			a.Author = jsonRef(r)
		case "created_on":
			a.CreatedOn = r.Time()
		default:
			r.Skip()
		}
	})
}
