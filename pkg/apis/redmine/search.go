package redmine

import (
	"encoding/xml"
	"time"

	"github.com/SeniorPomidorro/redmine-go-kit/pkg/wire"
)

// Search is one hit of /search. Type names the matched resource, e.g. "issue" or "wiki-page".
type Search struct {
	ID          int
	Title       string
	Type        string
	URL         string
	Description string
	DateTime    *time.Time
}

// Results are read-only; the encoders exist so results can be re-serialized.
func (*Search) resource() Meta {
	return Meta{Element: "result", Collection: "results", Path: "search"}
}

func (s *Search) EncodeXML(w *wire.XMLWriter) {
	w.Int("id", s.ID)
	w.String("title", s.Title)
	w.String("type", s.Type)
	w.String("url", s.URL)
	w.String("description", s.Description)
	if s.DateTime != nil {
		w.String("datetime", wire.FormatTime(*s.DateTime))
	}
}

func (s *Search) EncodeJSON(w *wire.JSONWriter) {
	w.Int("id", s.ID)
	w.String("title", s.Title)
	w.String("type", s.Type)
	w.String("url", s.URL)
	w.String("description", s.Description)
	if s.DateTime != nil {
		w.String("datetime", wire.FormatTime(*s.DateTime))
	}
}

func (s *Search) DecodeXML(r *wire.XMLReader, _ xml.StartElement) error {
	return r.Children(func(el xml.StartElement) {
		switch el.Name.Local {
		case "id":
			s.ID = r.Int()
		case "title":
			s.Title = r.Text()
		case "type":
			s.Type = r.Text()
		case "url":
			s.URL = r.Text()
		case "description":
			s.Description = r.Text()
		case "datetime":
			s.DateTime = r.Time()
		default:
			r.Skip()
		}
	})
}

func (s *Search) DecodeJSON(r *wire.JSONReader) error {
	return r.Object(func(name string) {
		switch name {
		case "id":
			s.ID = r.Int()
		case "title":
			s.Title = r.String()
		case "type":
			s.Type = r.String()
		case "url":
			s.URL = r.String()
		case "description":
			s.Description = r.String()
		case "datetime":
			s.DateTime = r.Time()
		default:
			r.Skip()
		}
	})
}
