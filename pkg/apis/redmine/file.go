package redmine

import (
	"encoding/xml"
	"time"

	"github.com/SeniorPomidorro/redmine-go-kit/pkg/wire"
)

// File is a file published in a project's Files section. A file is created by
// uploading the content first and then posting the upload token.
type File struct {
	ID          int
	FileName    string
	FileSize    int
	ContentType string
	Description string
	ContentURL  string
	Author      *IdentifiableName
	CreatedOn   *time.Time
	Version     *IdentifiableName
	Digest      string
	Downloads   int
	Token       string
}

func (*File) resource() Meta {
	return Meta{Element: "file", Collection: "files", Path: "files", Scope: ScopeProject}
}

func (f *File) EncodeXML(w *wire.XMLWriter) {
	w.String("token", f.Token)
	xmlWriteRef(w, "version_id", f.Version)
	w.StringIfNotEmpty("filename", f.FileName)
	w.StringIfNotEmpty("description", f.Description)
}

func (f *File) EncodeJSON(w *wire.JSONWriter) {
	w.String("token", f.Token)
	jsonWriteRef(w, "version_id", f.Version)
	w.StringIfNotEmpty("filename", f.FileName)
	w.StringIfNotEmpty("description", f.Description)
}

func (f *File) DecodeXML(r *wire.XMLReader, _ xml.StartElement) error {
	return r.Children(func(el xml.StartElement) {
		switch el.Name.Local {
		case "id":
			f.ID = r.Int()
		case "filename":
			f.FileName = r.Text()
		case "filesize":
			f.FileSize = r.Int()
		case "content_type":
			f.ContentType = r.Text()
		case "description":
			f.Description = r.Text()
		case "content_url":
			f.ContentURL = r.Text()
		case "author":
			f.Author = xmlRef(r, el)
		case "created_on":
			f.CreatedOn = r.Time()
		case "version":
			f.Version = xmlRef(r, el)
		case "version_id":
			f.Version = xmlRefID(r)
		case "digest":
			f.Digest = r.Text()
		case "downloads":
			f.Downloads = r.Int()
		case "token":
			f.Token = r.Text()
		default:
			r.Skip()
		}
	})
}

func (f *File) DecodeJSON(r *wire.JSONReader) error {
	return r.Object(func(name string) {
		switch name {
		case "id":
			f.ID = r.Int()
		case "filename":
			f.FileName = r.String()
		case "filesize":
			f.FileSize = r.Int()
		case "content_type":
			f.ContentType = r.String()
		case "description":
			f.Description = r.String()
		case "content_url":
			f.ContentURL = r.String()
		case "author":
			f.Author = jsonRef(r)
		case "created_on":
			f.CreatedOn = r.Time()
		case "version":
			f.Version = jsonRef(r)
		case "version_id":
			f.Version = jsonRefID(r)
		case "digest":
			f.Digest = r.String()
		case "downloads":
			f.Downloads = r.Int()
		case "token":
			f.Token = r.String()
		default:
			r.Skip()
		}
	})
}
