package redmine

import (
	"encoding/xml"

	"github.com/SeniorPomidorro/redmine-go-kit/pkg/wire"
)

// Upload is the token returned by POST /uploads. It is attached to an issue, news
// item or wiki page by listing it under "uploads".
type Upload struct {
	ID          int
	Token       string
	FileName    string
	Description string
	ContentType string
}

// Uploads are created through Client.UploadFile.
func (*Upload) resource() Meta {
	return Meta{Element: "upload", Collection: "uploads"}
}

func (u *Upload) EncodeXML(w *wire.XMLWriter) {
	w.String("token", u.Token)
	w.StringIfNotEmpty("filename", u.FileName)
	w.StringIfNotEmpty("description", u.Description)
	w.StringIfNotEmpty("content_type", u.ContentType)
}

func (u *Upload) EncodeJSON(w *wire.JSONWriter) {
	w.String("token", u.Token)
	w.StringIfNotEmpty("filename", u.FileName)
	w.StringIfNotEmpty("description", u.Description)
	w.StringIfNotEmpty("content_type", u.ContentType)
}

func (u *Upload) DecodeXML(r *wire.XMLReader, _ xml.StartElement) error {
	return r.Children(func(el xml.StartElement) {
		switch el.Name.Local {
		case "id":
			u.ID = r.Int()
		case "token":
			u.Token = r.Text()
		case "filename":
			u.FileName = r.Text()
		case "description":
			u.Description = r.Text()
		case "content_type":
			u.ContentType = r.Text()
		default:
			r.Skip()
		}
	})
}

func (u *Upload) DecodeJSON(r *wire.JSONReader) error {
	return r.Object(func(name string) {
		switch name {
		case "id":
			u.ID = r.Int()
		case "token":
			u.Token = r.String()
		case "filename":
			u.FileName = r.String()
		case "description":
			u.Description = r.String()
		case "content_type":
			u.ContentType = r.String()
		default:
			r.Skip()
		}
	})
}

func xmlWriteUploads(w *wire.XMLWriter, uploads []Upload) {
	if len(uploads) == 0 {
		return
	}
	w.Array("uploads", func() {
		for i := range uploads {
			w.Element("upload", func() { uploads[i].EncodeXML(w) })
		}
	})
}

func jsonWriteUploads(w *wire.JSONWriter, uploads []Upload) {
	if len(uploads) == 0 {
		return
	}
	w.ArrayProperty("uploads", func() {
		for i := range uploads {
			w.Object(func() { uploads[i].EncodeJSON(w) })
		}
	})
}
