package redmine

import (
	"errors"
	"net/url"
	"testing"
)

func mustBuilder(t *testing.T, host string, format MimeType) *URLBuilder {
	t.Helper()
	b, err := NewURLBuilder(host, format)
	if err != nil {
		t.Fatalf("new url builder: %v", err)
	}
	return b
}

func TestURLBuilderGenericURLs(t *testing.T) {
	t.Parallel()

	xmlB := mustBuilder(t, "http://localhost", MimeXML)
	jsonB := mustBuilder(t, "https://example.com/redmine/", MimeJSON)

	tests := []struct {
		name  string
		build func() (string, error)
		want  string
	}{
		{
			name:  "get issue",
			build: func() (string, error) { return GetURL[Issue](xmlB, "5") },
			want:  "http://localhost/issues/5.xml",
		},
		{
			name:  "update uses get url",
			build: func() (string, error) { return UpdateURL[Project](jsonB, "alpha") },
			want:  "https://example.com/redmine/projects/alpha.json",
		},
		{
			name:  "id is path escaped",
			build: func() (string, error) { return GetURL[Project](xmlB, "my project") },
			want:  "http://localhost/projects/my%20project.xml",
		},
		{
			name:  "list without params",
			build: func() (string, error) { return ItemsURL[Issue](xmlB, nil) },
			want:  "http://localhost/issues.xml",
		},
		{
			name: "list with params",
			build: func() (string, error) {
				return ItemsURL[Issue](jsonB, url.Values{"status_id": {"open"}, "limit": {"10"}})
			},
			want: "https://example.com/redmine/issues.json?limit=10&status_id=open",
		},
		{
			name:  "enumeration path",
			build: func() (string, error) { return ItemsURL[IssuePriority](xmlB, nil) },
			want:  "http://localhost/enumerations/issue_priorities.xml",
		},
		{
			name:  "create file under project",
			build: func() (string, error) { return CreateURL[File](xmlB, "1") },
			want:  "http://localhost/projects/1/files.xml",
		},
		{
			name:  "create top level ignores owner",
			build: func() (string, error) { return CreateURL[Issue](xmlB, "9") },
			want:  "http://localhost/issues.xml",
		},
		{
			name:  "create relation under issue",
			build: func() (string, error) { return CreateURL[IssueRelation](jsonB, "7") },
			want:  "https://example.com/redmine/issues/7/relations.json",
		},
		{
			name: "list versions moves project_id into path",
			build: func() (string, error) {
				return ItemsURL[Version](xmlB, url.Values{"project_id": {"foo"}, "limit": {"2"}})
			},
			want: "http://localhost/projects/foo/versions.xml?limit=2",
		},
		{
			name: "list memberships",
			build: func() (string, error) {
				return ItemsURL[ProjectMembership](xmlB, url.Values{"project_id": {"3"}})
			},
			want: "http://localhost/projects/3/memberships.xml",
		},
		{
			name: "list relations",
			build: func() (string, error) {
				return ItemsURL[IssueRelation](xmlB, url.Values{"issue_id": {"7"}})
			},
			want: "http://localhost/issues/7/relations.xml",
		},
		{
			name:  "list news globally",
			build: func() (string, error) { return ItemsURL[News](xmlB, nil) },
			want:  "http://localhost/news.xml",
		},
		{
			name: "list news per project",
			build: func() (string, error) {
				return ItemsURL[News](xmlB, url.Values{"project_id": {"p"}})
			},
			want: "http://localhost/projects/p/news.xml",
		},
		{
			name:  "delete with reassign",
			build: func() (string, error) { return DeleteURL[IssueCategory](xmlB, "3", "4") },
			want:  "http://localhost/issue_categories/3.xml?reassign_to_id=4",
		},
		{
			name:  "delete without reassign",
			build: func() (string, error) { return DeleteURL[User](xmlB, "3", "") },
			want:  "http://localhost/users/3.xml",
		},
		{
			name:  "search results",
			build: func() (string, error) { return ItemsURL[Search](xmlB, url.Values{"q": {"bug"}}) },
			want:  "http://localhost/search.xml?q=bug",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := tc.build()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("unexpected url:\n got %s\nwant %s", got, tc.want)
			}
		})
	}
}

func TestURLBuilderRequiresParent(t *testing.T) {
	t.Parallel()

	b := mustBuilder(t, "http://localhost", MimeXML)

	tests := []struct {
		name      string
		build     func() (string, error)
		parameter string
	}{
		{"version list", func() (string, error) { return ItemsURL[Version](b, nil) }, "project_id"},
		{"category list", func() (string, error) { return ItemsURL[IssueCategory](b, url.Values{"project_id": {" "}}) }, "project_id"},
		{"file create", func() (string, error) { return CreateURL[File](b, "") }, "project_id"},
		{"news create", func() (string, error) { return CreateURL[News](b, "") }, "project_id"},
		{"relation list", func() (string, error) { return ItemsURL[IssueRelation](b, nil) }, "issue_id"},
		{"relation create", func() (string, error) { return CreateURL[IssueRelation](b, "") }, "issue_id"},
		{"empty id", func() (string, error) { return GetURL[Issue](b, "") }, "id"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := tc.build()
			var missing *MissingParameterError
			if !errors.As(err, &missing) {
				t.Fatalf("expected MissingParameterError, got %v", err)
			}
			if missing.Parameter != tc.parameter {
				t.Fatalf("unexpected parameter %q, want %q", missing.Parameter, tc.parameter)
			}
		})
	}
}

func TestURLBuilderUnknownType(t *testing.T) {
	t.Parallel()

	b := mustBuilder(t, "http://localhost", MimeJSON)

	for _, build := range []func() (string, error){
		func() (string, error) { return GetURL[WikiPage](b, "1") },
		func() (string, error) { return ItemsURL[Upload](b, nil) },
		func() (string, error) { return CreateURL[MyAccount](b, "") },
		func() (string, error) { return DeleteURL[ErrorMessage](b, "1", "") },
	} {
		_, err := build()
		var unknown *UnknownTypeError
		if !errors.As(err, &unknown) {
			t.Fatalf("expected UnknownTypeError, got %v", err)
		}
	}
}

func TestNewURLBuilderRejectsInvalidHost(t *testing.T) {
	t.Parallel()

	for _, host := range []string{"", "   ", "localhost", "ftp://example.com", "http://", "http://example.com?x=1"} {
		if _, err := NewURLBuilder(host, MimeXML); !errors.Is(err, ErrInvalidHost) {
			t.Fatalf("host %q: expected ErrInvalidHost, got %v", host, err)
		}
	}
}

func TestURLBuilderNamedURLs(t *testing.T) {
	t.Parallel()

	b := mustBuilder(t, "http://localhost", MimeJSON)

	check := func(got, want string, err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Fatalf("unexpected url:\n got %s\nwant %s", got, want)
		}
	}

	check(b.UploadURL("a b.txt"), "http://localhost/uploads.json?filename=a+b.txt", nil)
	check(b.UploadURL(""), "http://localhost/uploads.json", nil)
	check(b.CurrentUserURL(), "http://localhost/users/current.json", nil)
	check(b.MyAccountURL(), "http://localhost/my/account.json", nil)

	got, err := b.WikisURL("p")
	check(got, "http://localhost/projects/p/wiki/index.json", err)
	got, err = b.WikiPageURL("p", "Start Page", 0)
	check(got, "http://localhost/projects/p/wiki/Start%20Page.json", err)
	got, err = b.WikiPageURL("p", "Start", 3)
	check(got, "http://localhost/projects/p/wiki/Start/3.json", err)
	got, err = b.AttachmentUpdateURL("12")
	check(got, "http://localhost/attachments/issues/12.json", err)
	got, err = b.GroupUsersURL("2")
	check(got, "http://localhost/groups/2/users.json", err)
	got, err = b.GroupUserURL("2", "5")
	check(got, "http://localhost/groups/2/users/5.json", err)
	got, err = b.WatchersURL("1")
	check(got, "http://localhost/issues/1/watchers.json", err)
	got, err = b.WatcherURL("1", "5")
	check(got, "http://localhost/issues/1/watchers/5.json", err)
	got, err = b.SearchURL("foo bar", url.Values{"issues": {"1"}})
	check(got, "http://localhost/search.json?issues=1&q=foo+bar", err)

	if _, err := b.WikiPageURL("p", "", 0); err == nil {
		t.Fatalf("expected error for empty title")
	}
	if _, err := b.SearchURL(" ", nil); err == nil {
		t.Fatalf("expected error for empty query")
	}
}
