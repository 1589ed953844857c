package wire

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"
	"time"
)

func TestXMLReaderChildrenSkipsUnknownElements(t *testing.T) {
	t.Parallel()

	doc := `<?xml version="1.0" encoding="UTF-8"?>
<issue>
  <id>7</id>
  <future_field><nested a="1">x</nested></future_field>
  <project id="3" name="Alpha"/>
  <subject>Hello &amp; bye</subject>
  <estimated_hours>2.5</estimated_hours>
  <start_date>2024-03-01</start_date>
  <is_private>true</is_private>
</issue>`

	r := NewXMLReader(strings.NewReader(doc))
	root, err := r.Root()
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	if root.Name.Local != "issue" {
		t.Fatalf("unexpected root: %s", root.Name.Local)
	}

	var (
		id        int
		projectID int
		project   string
		subject   string
		hours     *float64
		start     *time.Time
		private   bool
	)
	err = r.Children(func(el xml.StartElement) {
		switch el.Name.Local {
		case "id":
			id = r.Int()
		case "project":
			projectID = r.AttrInt(el, "id")
			project = Attr(el, "name")
			r.Skip()
		case "subject":
			subject = r.Text()
		case "estimated_hours":
			hours = r.Float()
		case "start_date":
			start = r.Date()
		case "is_private":
			private = r.Bool()
		default:
			r.Skip()
		}
	})
	if err != nil {
		t.Fatalf("children: %v", err)
	}

	if id != 7 || projectID != 3 || project != "Alpha" {
		t.Fatalf("unexpected identity fields: id=%d project=%d/%q", id, projectID, project)
	}
	if subject != "Hello & bye" {
		t.Fatalf("unexpected subject: %q", subject)
	}
	if hours == nil || *hours != 2.5 {
		t.Fatalf("unexpected hours: %v", hours)
	}
	if start == nil || !start.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start date: %v", start)
	}
	if !private {
		t.Fatalf("expected is_private=true")
	}
}

func TestXMLReaderChildrenDetectsUnconsumedElement(t *testing.T) {
	t.Parallel()

	r := NewXMLReader(strings.NewReader(`<root><a id="1"/><b>2</b></root>`))
	if _, err := r.Root(); err != nil {
		t.Fatalf("root: %v", err)
	}

	err := r.Children(func(el xml.StartElement) {
		// handler forgets to consume <a/>
	})
	if err == nil {
		t.Fatalf("expected boundary error")
	}
	if !strings.Contains(err.Error(), "<a>") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestXMLReaderNestedHandlersStopAtTheirBoundary(t *testing.T) {
	t.Parallel()

	doc := `<list><item id="1"><name>one</name><extra><x/></extra></item><item id="2"><name>two</name></item><tail>t</tail></list>`
	r := NewXMLReader(strings.NewReader(doc))
	if _, err := r.Root(); err != nil {
		t.Fatalf("root: %v", err)
	}

	var names []string
	var tail string
	err := r.Children(func(el xml.StartElement) {
		switch el.Name.Local {
		case "item":
			r.Children(func(child xml.StartElement) {
				if child.Name.Local == "name" {
					names = append(names, r.Text())
					return
				}
				r.Skip()
			})
		case "tail":
			tail = r.Text()
		default:
			r.Skip()
		}
	})
	if err != nil {
		t.Fatalf("children: %v", err)
	}
	if strings.Join(names, ",") != "one,two" || tail != "t" {
		t.Fatalf("unexpected result: names=%v tail=%q", names, tail)
	}
}

func TestXMLReaderRejectsEmptyDocument(t *testing.T) {
	t.Parallel()

	r := NewXMLReader(strings.NewReader("   "))
	if _, err := r.Root(); err == nil {
		t.Fatalf("expected error for empty document")
	}
}

func TestXMLReaderRecordsMalformedNumbers(t *testing.T) {
	t.Parallel()

	r := NewXMLReader(strings.NewReader(`<a><id>abc</id></a>`))
	if _, err := r.Root(); err != nil {
		t.Fatalf("root: %v", err)
	}
	err := r.Children(func(el xml.StartElement) {
		_ = r.Int()
	})
	if err == nil {
		t.Fatalf("expected invalid integer error")
	}
}

func TestXMLWriterScopedElements(t *testing.T) {
	t.Parallel()

	hours := 1.25
	due := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	w := NewXMLWriter(&buf)
	w.Element("issue", func() {
		w.String("subject", "a<b")
		w.IntIfNotZero("project_id", 0)
		w.Int("tracker_id", 2)
		w.FloatOrEmpty("estimated_hours", &hours)
		w.DateOrEmpty("start_date", nil)
		w.DateOrEmpty("due_date", &due)
		w.Ints("watcher_user_ids", "watcher_user_id", []int{4, 5})
	})
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	want := `<issue><subject>a&lt;b</subject><tracker_id>2</tracker_id>` +
		`<estimated_hours>1.25</estimated_hours><start_date></start_date><due_date>2024-12-31</due_date>` +
		`<watcher_user_ids type="array"><watcher_user_id>4</watcher_user_id><watcher_user_id>5</watcher_user_id></watcher_user_ids></issue>`
	if got := buf.String(); got != want {
		t.Fatalf("unexpected xml:\n got %s\nwant %s", got, want)
	}
}
