package redmine

import (
	"encoding/xml"

	"github.com/SeniorPomidorro/redmine-go-kit/pkg/wire"
)

// RelationType is the kind of link between two issues.
type RelationType string

const (
	RelationRelates    RelationType = "relates"
	RelationDuplicates RelationType = "duplicates"
	RelationDuplicated RelationType = "duplicated"
	RelationBlocks     RelationType = "blocks"
	RelationBlocked    RelationType = "blocked"
	RelationPrecedes   RelationType = "precedes"
	RelationFollows    RelationType = "follows"
	RelationCopiedTo   RelationType = "copied_to"
	RelationCopiedFrom RelationType = "copied_from"
)

// IssueRelation links IssueID to IssueToID. Relations are created under
// /issues/{issue_id}/relations and read or deleted at /relations/{id}.
type IssueRelation struct {
	ID        int
	IssueID   int
	IssueToID int
	Type      RelationType
	// Delay in days, only meaningful for precedes and follows.
	Delay *int
}

func (*IssueRelation) resource() Meta {
	return Meta{Element: "relation", Collection: "relations", Path: "relations", Scope: ScopeIssue}
}

func (rel *IssueRelation) hasDelay() bool {
	return rel.Delay != nil && (rel.Type == RelationPrecedes || rel.Type == RelationFollows)
}

func (rel *IssueRelation) EncodeXML(w *wire.XMLWriter) {
	w.Int("issue_to_id", rel.IssueToID)
	w.String("relation_type", string(rel.Type))
	if rel.hasDelay() {
		w.OptInt("delay", rel.Delay)
	}
}

func (rel *IssueRelation) EncodeJSON(w *wire.JSONWriter) {
	w.Int("issue_to_id", rel.IssueToID)
	w.String("relation_type", string(rel.Type))
	if rel.hasDelay() {
		w.OptInt("delay", rel.Delay)
	}
}

func (rel *IssueRelation) DecodeXML(r *wire.XMLReader, start xml.StartElement) error {
	if wire.HasAttr(start, "id") {
		rel.ID = r.AttrInt(start, "id")
		rel.IssueID = r.AttrInt(start, "issue_id")
		rel.IssueToID = r.AttrInt(start, "issue_to_id")
		rel.Type = RelationType(wire.Attr(start, "relation_type"))
		if wire.Attr(start, "delay") != "" {
			delay := r.AttrInt(start, "delay")
			rel.Delay = &delay
		}
	}
	return r.Children(func(el xml.StartElement) {
		switch el.Name.Local {
		case "id":
			rel.ID = r.Int()
		case "issue_id":
			rel.IssueID = r.Int()
		case "issue_to_id":
			rel.IssueToID = r.Int()
		case "relation_type":
			rel.Type = RelationType(r.Text())
		case "delay":
			rel.Delay = r.OptInt()
		default:
			r.Skip()
		}
	})
}

func (rel *IssueRelation) DecodeJSON(r *wire.JSONReader) error {
	return r.Object(func(name string) {
		switch name {
		case "id":
			rel.ID = r.Int()
		case "issue_id":
			rel.IssueID = r.Int()
		case "issue_to_id":
			rel.IssueToID = r.Int()
		case "relation_type":
			rel.Type = RelationType(r.String())
		case "delay":
			rel.Delay = r.OptInt()
		default:
			r.Skip()
		}
	})
}
