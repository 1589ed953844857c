package redmine

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func TestUploadFile(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/uploads.json" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("filename"); got != "trace.log" {
			t.Errorf("unexpected filename: %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/octet-stream" {
			t.Errorf("unexpected content type: %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "panic: boom" {
			t.Errorf("unexpected body: %q", body)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"upload":{"id":7,"token":"7.ed32257a2ab0f7526c0d72c32994c58b"}}`))
	}, WithFormat(MimeJSON), WithAPIKey("key"))

	upload, err := client.UploadFile(context.Background(), "trace.log", []byte("panic: boom"))
	if err != nil {
		t.Fatalf("UploadFile: %v", err)
	}
	if upload.ID != 7 || upload.Token != "7.ed32257a2ab0f7526c0d72c32994c58b" {
		t.Fatalf("unexpected upload: %+v", upload)
	}
	if upload.FileName != "trace.log" {
		t.Fatalf("expected filename to be filled in, got %q", upload.FileName)
	}
}

func TestDownloadFile(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/attachments/download/9/trace.log" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Accept"); got != "application/octet-stream" {
			t.Errorf("unexpected accept header: %q", got)
		}
		_, _ = w.Write([]byte("raw bytes"))
	})

	for _, address := range []string{
		"/attachments/download/9/trace.log",
		"attachments/download/9/trace.log",
		client.URLs().Host() + "/attachments/download/9/trace.log",
	} {
		data, err := client.DownloadFile(context.Background(), address)
		if err != nil {
			t.Fatalf("DownloadFile(%q): %v", address, err)
		}
		if string(data) != "raw bytes" {
			t.Fatalf("unexpected content: %q", data)
		}
	}

	_, err := client.DownloadFile(context.Background(), " ")
	var missing *MissingParameterError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingParameterError, got %v", err)
	}
}

func TestUpdateAttachment(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/attachments/issues/12.json" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"attachment":{"id":5,"filename":"renamed.log"}}` {
			t.Errorf("unexpected body: %s", body)
		}
		w.WriteHeader(http.StatusNoContent)
	}, WithFormat(MimeJSON))

	if err := client.UpdateAttachment(context.Background(), 12, &Attachment{ID: 5, FileName: "renamed.log"}); err != nil {
		t.Fatalf("UpdateAttachment: %v", err)
	}
}

func TestWikiPages(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/projects/alpha/wiki/index.json":
			_, _ = w.Write([]byte(`{"wiki_pages":[{"title":"Start","version":2},{"title":"Setup","parent":{"title":"Start"},"version":1}]}`))
		case r.Method == http.MethodGet && r.URL.Path == "/projects/alpha/wiki/Start/2.json":
			if got := r.URL.Query().Get("include"); got != "attachments" {
				t.Errorf("unexpected include: %q", got)
			}
			_, _ = w.Write([]byte(`{"wiki_page":{"title":"Start","text":"h1. Start","version":2,"author":{"id":1,"name":"Admin"},"comments":"typo",` +
				`"attachments":[{"id":4,"filename":"diagram.png"}]}}`))
		case r.Method == http.MethodDelete && r.URL.EscapedPath() == "/projects/alpha/wiki/Old%20Page.json":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.EscapedPath())
			w.WriteHeader(http.StatusNotFound)
		}
	}, WithFormat(MimeJSON))

	pages, err := client.WikiPages(context.Background(), "alpha")
	if err != nil {
		t.Fatalf("WikiPages: %v", err)
	}
	if len(pages) != 2 || pages[1].Title != "Setup" || pages[1].ParentTitle != "Start" {
		t.Fatalf("unexpected pages: %+v", pages)
	}

	page, err := client.WikiPage(context.Background(), "alpha", "Start", 2, url.Values{"include": {"attachments"}})
	if err != nil {
		t.Fatalf("WikiPage: %v", err)
	}
	if page.Text != "h1. Start" || page.Version != 2 || page.Author == nil || page.Author.Name != "Admin" {
		t.Fatalf("unexpected page: %+v", page)
	}
	if len(page.Attachments) != 1 || page.Attachments[0].FileName != "diagram.png" {
		t.Fatalf("unexpected attachments: %+v", page.Attachments)
	}

	if err := client.DeleteWikiPage(context.Background(), "alpha", "Old Page"); err != nil {
		t.Fatalf("DeleteWikiPage: %v", err)
	}
}

func TestSaveWikiPage(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("unexpected method: %s", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), "<text>h1. Hello</text>") {
			t.Errorf("unexpected body: %s", body)
		}
		switch r.URL.Path {
		case "/projects/alpha/wiki/New.xml":
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`<wiki_page><title>New</title><text>h1. Hello</text><version>1</version></wiki_page>`))
		case "/projects/alpha/wiki/Existing.xml":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	})

	created, err := client.SaveWikiPage(context.Background(), "alpha", "New", &WikiPage{Text: "h1. Hello"})
	if err != nil {
		t.Fatalf("SaveWikiPage create: %v", err)
	}
	if created.Title != "New" || created.Version != 1 {
		t.Fatalf("unexpected created page: %+v", created)
	}

	page := &WikiPage{Text: "h1. Hello", Comments: "edit"}
	updated, err := client.SaveWikiPage(context.Background(), "alpha", "Existing", page)
	if err != nil {
		t.Fatalf("SaveWikiPage update: %v", err)
	}
	if updated != page {
		t.Fatalf("expected the submitted page back")
	}
}

func TestWatchersAndGroupUsers(t *testing.T) {
	t.Parallel()

	type call struct {
		method string
		path   string
		body   string
	}
	calls := make(chan call, 4)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		calls <- call{method: r.Method, path: r.URL.Path, body: string(body)}
		w.WriteHeader(http.StatusNoContent)
	})

	ctx := context.Background()
	if err := client.AddWatcher(ctx, 1, 5); err != nil {
		t.Fatalf("AddWatcher: %v", err)
	}
	if err := client.RemoveWatcher(ctx, 1, 5); err != nil {
		t.Fatalf("RemoveWatcher: %v", err)
	}
	if err := client.AddUserToGroup(ctx, 2, 6); err != nil {
		t.Fatalf("AddUserToGroup: %v", err)
	}
	if err := client.RemoveUserFromGroup(ctx, 2, 6); err != nil {
		t.Fatalf("RemoveUserFromGroup: %v", err)
	}
	close(calls)

	want := []call{
		{http.MethodPost, "/issues/1/watchers.xml", "<user_id>5</user_id>"},
		{http.MethodDelete, "/issues/1/watchers/5.xml", ""},
		{http.MethodPost, "/groups/2/users.xml", "<user_id>6</user_id>"},
		{http.MethodDelete, "/groups/2/users/6.xml", ""},
	}
	i := 0
	for got := range calls {
		if got != want[i] {
			t.Fatalf("call %d: got %+v, want %+v", i, got, want[i])
		}
		i++
	}
	if i != len(want) {
		t.Fatalf("expected %d calls, got %d", len(want), i)
	}

	var missing *MissingParameterError
	if err := client.AddWatcher(ctx, 1, 0); !errors.As(err, &missing) {
		t.Fatalf("expected MissingParameterError, got %v", err)
	}
}

func TestAddWatcherJSONBody(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"user_id":5}` {
			t.Errorf("unexpected body: %s", body)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("unexpected content type: %q", got)
		}
		w.WriteHeader(http.StatusNoContent)
	}, WithFormat(MimeJSON))

	if err := client.AddWatcher(context.Background(), 1, 5); err != nil {
		t.Fatalf("AddWatcher: %v", err)
	}
}

func TestMyAccount(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/my/account.json" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`{"user":{"id":1,"login":"admin","admin":true,"firstname":"Redmine","lastname":"Admin",` +
				`"mail":"admin@example.net","api_key":"abc","custom_fields":[{"id":4,"name":"Phone","value":"123"}]}}`))
		case http.MethodPut:
			body, _ := io.ReadAll(r.Body)
			if !strings.Contains(string(body), `"firstname":"Root"`) {
				t.Errorf("unexpected body: %s", body)
			}
			w.WriteHeader(http.StatusNoContent)
		}
	}, WithFormat(MimeJSON))

	account, err := client.MyAccount(context.Background())
	if err != nil {
		t.Fatalf("MyAccount: %v", err)
	}
	if account.Login != "admin" || !account.IsAdmin || account.APIKey != "abc" {
		t.Fatalf("unexpected account: %+v", account)
	}
	if len(account.CustomFields) != 1 || account.CustomFields[0].Value() != "123" {
		t.Fatalf("unexpected custom fields: %+v", account.CustomFields)
	}

	account.FirstName = "Root"
	if err := client.UpdateMyAccount(context.Background(), account); err != nil {
		t.Fatalf("UpdateMyAccount: %v", err)
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search.xml" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "crash" || q.Get("titles_only") != "1" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`<results type="array" total_count="2" offset="0" limit="25">
  <result><id>1</id><title>Bug #1 (New): crash</title><type>issue</type><url>http://localhost/issues/1</url>
    <description></description><datetime>2024-01-02T03:04:05Z</datetime></result>
  <result><id>3</id><title>Wiki: Crash</title><type>wiki-page</type><url>http://localhost/projects/a/wiki/Crash</url>
    <description>notes</description><datetime>2024-01-03T00:00:00Z</datetime></result>
</results>`))
	})

	page, err := client.Search(context.Background(), "crash", url.Values{"titles_only": {"1"}})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Total != 2 || len(page.Items) != 2 {
		t.Fatalf("unexpected page: %+v", page)
	}
	if page.Items[1].Type != "wiki-page" || page.Items[0].DateTime == nil {
		t.Fatalf("unexpected results: %+v", page.Items)
	}

	if _, err := client.Search(context.Background(), "", nil); err == nil {
		t.Fatalf("expected error for empty query")
	}
}
