package redmine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
)

func TestGetIssueWithInclude(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/issues/5.json" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("include"); got != "journals,watchers" {
			t.Errorf("unexpected include: %q", got)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("unexpected accept header: %q", got)
		}
		_, _ = w.Write([]byte(`{"issue":{"id":5,"subject":"Broken build","journals":[{"id":1,"notes":"seen"}],"watchers":[{"id":2,"name":"Jane"}]}}`))
	}, WithFormat(MimeJSON))

	issue, err := Get[Issue](context.Background(), client, "5", url.Values{"include": {"journals,watchers"}})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if issue.ID != 5 || issue.Subject != "Broken build" {
		t.Fatalf("unexpected issue: %+v", issue)
	}
	if len(issue.Journals) != 1 || issue.Journals[0].Notes != "seen" {
		t.Fatalf("unexpected journals: %+v", issue.Journals)
	}
	if len(issue.Watchers) != 1 || issue.Watchers[0].Name != "Jane" {
		t.Fatalf("unexpected watchers: %+v", issue.Watchers)
	}
}

func TestCreateIssueXML(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/issues.xml" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Content-Type"); got != "application/xml" {
			t.Errorf("unexpected content type: %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		for _, want := range []string{"<subject>New feature</subject>", "<project_id>1</project_id>", "<tracker_id>2</tracker_id>"} {
			if !strings.Contains(string(body), want) {
				t.Errorf("request body %s does not contain %s", body, want)
			}
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><issue><id>10</id><project id="1" name="Alpha"/><subject>New feature</subject></issue>`))
	})

	created, err := Create(context.Background(), client, &Issue{Subject: "New feature", Project: NewRef(1), Tracker: NewRef(2)}, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != 10 {
		t.Fatalf("unexpected id: %d", created.ID)
	}
	if created.Project == nil || created.Project.Name != "Alpha" {
		t.Fatalf("unexpected project: %+v", created.Project)
	}
}

func TestCreateNestedResource(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/projects/alpha/versions.json" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"name":"1.0"`) {
			t.Errorf("unexpected body: %s", body)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"version":{"id":3,"project":{"id":1,"name":"Alpha"},"name":"1.0","status":"open"}}`))
	}, WithFormat(MimeJSON))

	version, err := Create(context.Background(), client, &Version{Name: "1.0"}, "alpha")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if version.ID != 3 || version.Status != VersionOpen {
		t.Fatalf("unexpected version: %+v", version)
	}

	if _, err := Create(context.Background(), client, &Version{Name: "2.0"}, ""); err == nil {
		t.Fatalf("expected missing project error")
	}
}

func TestCreateReturnsEntityOnEmptyResponse(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/issues/7/relations.xml" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	rel := &IssueRelation{IssueToID: 8, Type: RelationRelates}
	got, err := Create(context.Background(), client, rel, "7")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got != rel {
		t.Fatalf("expected the submitted entity back")
	}
}

func TestUpdateIssue(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/issues/10.json" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"notes":"Fixed in r42"`) || !strings.Contains(string(body), `"status_id":3`) {
			t.Errorf("unexpected body: %s", body)
		}
		w.WriteHeader(http.StatusNoContent)
	}, WithFormat(MimeJSON))

	err := Update(context.Background(), client, "10", &Issue{Subject: "S", Notes: "Fixed in r42", Status: &IssueStatus{ID: 3}})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if err := Update[Issue](context.Background(), client, "10", nil); err == nil {
		t.Fatalf("expected error for nil entity")
	}
}

func TestDeleteWithReassign(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/issue_categories/3.json" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("reassign_to_id"); got != "4" {
			t.Errorf("unexpected reassign_to_id: %q", got)
		}
		w.WriteHeader(http.StatusNoContent)
	}, WithFormat(MimeJSON))

	if err := Delete[IssueCategory](context.Background(), client, "3", "4"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestListAllFollowsPagination(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		q := r.URL.Query()
		if q.Get("status_id") != "open" {
			t.Errorf("filter was not forwarded: %s", r.URL.RawQuery)
		}
		if q.Get("limit") != "2" {
			t.Errorf("unexpected limit: %q", q.Get("limit"))
		}
		offset, _ := strconv.Atoi(q.Get("offset"))

		var items []string
		for id := offset + 1; id <= 5 && id <= offset+2; id++ {
			items = append(items, fmt.Sprintf(`{"id":%d}`, id))
		}
		_, _ = fmt.Fprintf(w, `{"issues":[%s],"total_count":5,"offset":%d,"limit":2}`, strings.Join(items, ","), offset)
	}, WithFormat(MimeJSON), WithPageSize(2))

	issues, err := ListAll[Issue](context.Background(), client, url.Values{"status_id": {"open"}})
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(issues) != 5 {
		t.Fatalf("expected 5 issues, got %d", len(issues))
	}
	for i, issue := range issues {
		if issue.ID != i+1 {
			t.Fatalf("unexpected order: %+v", issues)
		}
	}
	if got := requests.Load(); got != 3 {
		t.Fatalf("expected 3 requests, got %d", got)
	}
}

func TestListAllStopsOnEmptyPage(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			_, _ = w.Write([]byte(`<projects type="array" total_count="10" offset="0" limit="25"><project><id>1</id></project></projects>`))
			return
		}
		_, _ = w.Write([]byte(`<projects type="array" total_count="10" offset="1" limit="25"></projects>`))
	})

	projects, err := ListAll[Project](context.Background(), client, nil)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}
	if got := requests.Load(); got != 2 {
		t.Fatalf("expected 2 requests, got %d", got)
	}
}

func TestListNestedResource(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/projects/alpha/memberships.xml" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Has("project_id") {
			t.Errorf("project_id leaked into query: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`<memberships type="array" total_count="1" offset="0" limit="25">
  <membership>
    <id>1</id>
    <project id="1" name="Alpha"/>
    <user id="3" name="John Smith"/>
    <roles type="array"><role id="4" name="Developer"/><role id="5" name="Reporter" inherited="true"/></roles>
  </membership>
</memberships>`))
	})

	page, err := List[ProjectMembership](context.Background(), client, url.Values{"project_id": {"alpha"}})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Total != 1 || len(page.Items) != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
	m := page.Items[0]
	if m.User == nil || m.User.Name != "John Smith" {
		t.Fatalf("unexpected user: %+v", m.User)
	}
	if len(m.Roles) != 2 || !m.Roles[1].Inherited {
		t.Fatalf("unexpected roles: %+v", m.Roles)
	}

	_, err = List[ProjectMembership](context.Background(), client, nil)
	var missing *MissingParameterError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingParameterError, got %v", err)
	}
}

func TestCountRequestsSingleItem(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("limit") != "1" || q.Get("offset") != "0" {
			t.Errorf("unexpected paging: %s", r.URL.RawQuery)
		}
		if q.Get("tracker_id") != "1" {
			t.Errorf("filter was not forwarded: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`<issues type="array" total_count="42" offset="0" limit="1"><issue><id>1</id></issue></issues>`))
	})

	n, err := Count[Issue](context.Background(), client, url.Values{"tracker_id": {"1"}, "limit": {"100"}})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 42 {
		t.Fatalf("expected 42, got %d", n)
	}
}

func TestGenericOperationsRejectUnroutableTypes(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
	})

	_, err := Get[WikiPage](context.Background(), client, "Start", nil)
	var unknown *UnknownTypeError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownTypeError, got %v", err)
	}
}
