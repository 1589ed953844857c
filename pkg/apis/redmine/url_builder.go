package redmine

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/SeniorPomidorro/redmine-go-kit/pkg/transport"
)

// URLBuilder produces absolute REST URLs for a host and wire format.
type URLBuilder struct {
	host   string
	format MimeType
}

// NewURLBuilder validates host, which must be an absolute http or https URL. A path
// prefix such as https://example.com/redmine is kept.
func NewURLBuilder(host string, format MimeType) (*URLBuilder, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return nil, fmt.Errorf("%w: host is required", ErrInvalidHost)
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHost, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q must include http(s) scheme and host", ErrInvalidHost, host)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return nil, fmt.Errorf("%w: %q must not contain a query or fragment", ErrInvalidHost, host)
	}
	if format != MimeXML && format != MimeJSON {
		return nil, fmt.Errorf("redmine: unsupported format %q", format)
	}
	u.User = nil
	return &URLBuilder{host: strings.TrimRight(u.String(), "/"), format: format}, nil
}

// Host returns the normalized host without a trailing slash.
func (b *URLBuilder) Host() string {
	return b.host
}

// Format returns the wire format used as URL extension.
func (b *URLBuilder) Format() MimeType {
	return b.format
}

// build joins segments under host, appends the format extension and the query.
func (b *URLBuilder) build(query url.Values, segments ...string) string {
	return appendQuery(b.host+"/"+strings.Join(segments, "/")+"."+b.format.String(), query)
}

func appendQuery(rawURL string, query url.Values) string {
	encoded := transport.EncodeQuery(query)
	if encoded == "" {
		return rawURL
	}
	return rawURL + "?" + encoded
}

func cloneValues(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for k, v := range values {
		out[k] = append([]string(nil), v...)
	}
	return out
}

func resourceOf[T any, PT EntityPtr[T]]() (Meta, error) {
	meta := PT(new(T)).resource()
	if meta.Path == "" {
		return meta, &UnknownTypeError{Type: typeName[T]()}
	}
	return meta, nil
}

func requireParam[T any](name, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", &MissingParameterError{Type: typeName[T](), Parameter: name}
	}
	return url.PathEscape(value), nil
}

// GetURL returns {host}/{path}/{id}.{ext}.
func GetURL[T any, PT EntityPtr[T]](b *URLBuilder, id string) (string, error) {
	meta, err := resourceOf[T, PT]()
	if err != nil {
		return "", err
	}
	id, err = requireParam[T]("id", id)
	if err != nil {
		return "", err
	}
	return b.build(nil, meta.Path, id), nil
}

// UpdateURL returns the same URL as GetURL.
func UpdateURL[T any, PT EntityPtr[T]](b *URLBuilder, id string) (string, error) {
	return GetURL[T, PT](b, id)
}

// DeleteURL returns GetURL with ?reassign_to_id= when reassignID is set.
func DeleteURL[T any, PT EntityPtr[T]](b *URLBuilder, id, reassignID string) (string, error) {
	rawURL, err := GetURL[T, PT](b, id)
	if err != nil {
		return "", err
	}
	if reassignID = strings.TrimSpace(reassignID); reassignID != "" {
		rawURL = appendQuery(rawURL, url.Values{"reassign_to_id": {reassignID}})
	}
	return rawURL, nil
}

// CreateURL returns the collection URL new entities are posted to. ownerID is the
// project or issue id for nested resources and ignored otherwise.
func CreateURL[T any, PT EntityPtr[T]](b *URLBuilder, ownerID string) (string, error) {
	meta, err := resourceOf[T, PT]()
	if err != nil {
		return "", err
	}
	switch meta.Scope {
	case ScopeProject, ScopeOptionalProject:
		pid, err := requireParam[T]("project_id", ownerID)
		if err != nil {
			return "", err
		}
		return b.build(nil, "projects", pid, meta.Path), nil
	case ScopeIssue:
		iid, err := requireParam[T]("issue_id", ownerID)
		if err != nil {
			return "", err
		}
		return b.build(nil, "issues", iid, meta.Path), nil
	default:
		return b.build(nil, meta.Path), nil
	}
}

// ItemsURL returns the list URL. For nested resources the parent is taken from the
// project_id or issue_id parameter, which is removed from the query string.
func ItemsURL[T any, PT EntityPtr[T]](b *URLBuilder, params url.Values) (string, error) {
	meta, err := resourceOf[T, PT]()
	if err != nil {
		return "", err
	}
	query := cloneValues(params)
	switch meta.Scope {
	case ScopeProject:
		pid, err := requireParam[T]("project_id", query.Get("project_id"))
		if err != nil {
			return "", err
		}
		query.Del("project_id")
		return b.build(query, "projects", pid, meta.Path), nil
	case ScopeOptionalProject:
		pid := strings.TrimSpace(query.Get("project_id"))
		if pid == "" {
			return b.build(query, meta.Path), nil
		}
		query.Del("project_id")
		return b.build(query, "projects", url.PathEscape(pid), meta.Path), nil
	case ScopeIssue:
		iid, err := requireParam[T]("issue_id", query.Get("issue_id"))
		if err != nil {
			return "", err
		}
		query.Del("issue_id")
		return b.build(query, "issues", iid, meta.Path), nil
	default:
		return b.build(query, meta.Path), nil
	}
}

// UploadURL returns {host}/uploads.{ext}.
func (b *URLBuilder) UploadURL(fileName string) string {
	var query url.Values
	if fileName = strings.TrimSpace(fileName); fileName != "" {
		query = url.Values{"filename": {fileName}}
	}
	return b.build(query, "uploads")
}

// CurrentUserURL returns {host}/users/current.{ext}.
func (b *URLBuilder) CurrentUserURL() string {
	return b.build(nil, "users", "current")
}

// MyAccountURL returns {host}/my/account.{ext}.
func (b *URLBuilder) MyAccountURL() string {
	return b.build(nil, "my", "account")
}

// WikisURL returns {host}/projects/{projectID}/wiki/index.{ext}.
func (b *URLBuilder) WikisURL(projectID string) (string, error) {
	pid, err := requireParam[WikiPage]("project_id", projectID)
	if err != nil {
		return "", err
	}
	return b.build(nil, "projects", pid, "wiki", "index"), nil
}

// WikiPageURL returns {host}/projects/{projectID}/wiki/{title}[/{version}].{ext}.
// A version of 0 addresses the current version.
func (b *URLBuilder) WikiPageURL(projectID, title string, version int) (string, error) {
	pid, err := requireParam[WikiPage]("project_id", projectID)
	if err != nil {
		return "", err
	}
	title, err = requireParam[WikiPage]("title", title)
	if err != nil {
		return "", err
	}
	if version > 0 {
		return b.build(nil, "projects", pid, "wiki", title, strconv.Itoa(version)), nil
	}
	return b.build(nil, "projects", pid, "wiki", title), nil
}

// AttachmentUpdateURL returns {host}/attachments/issues/{issueID}.{ext}.
func (b *URLBuilder) AttachmentUpdateURL(issueID string) (string, error) {
	iid, err := requireParam[Attachment]("issue_id", issueID)
	if err != nil {
		return "", err
	}
	return b.build(nil, "attachments", "issues", iid), nil
}

// GroupUsersURL returns {host}/groups/{groupID}/users.{ext}.
func (b *URLBuilder) GroupUsersURL(groupID string) (string, error) {
	gid, err := requireParam[Group]("group_id", groupID)
	if err != nil {
		return "", err
	}
	return b.build(nil, "groups", gid, "users"), nil
}

// GroupUserURL returns {host}/groups/{groupID}/users/{userID}.{ext}.
func (b *URLBuilder) GroupUserURL(groupID, userID string) (string, error) {
	gid, err := requireParam[Group]("group_id", groupID)
	if err != nil {
		return "", err
	}
	uid, err := requireParam[Group]("user_id", userID)
	if err != nil {
		return "", err
	}
	return b.build(nil, "groups", gid, "users", uid), nil
}

// WatchersURL returns {host}/issues/{issueID}/watchers.{ext}.
func (b *URLBuilder) WatchersURL(issueID string) (string, error) {
	iid, err := requireParam[Issue]("issue_id", issueID)
	if err != nil {
		return "", err
	}
	return b.build(nil, "issues", iid, "watchers"), nil
}

// WatcherURL returns {host}/issues/{issueID}/watchers/{userID}.{ext}.
func (b *URLBuilder) WatcherURL(issueID, userID string) (string, error) {
	iid, err := requireParam[Issue]("issue_id", issueID)
	if err != nil {
		return "", err
	}
	uid, err := requireParam[Issue]("user_id", userID)
	if err != nil {
		return "", err
	}
	return b.build(nil, "issues", iid, "watchers", uid), nil
}

// SearchURL returns {host}/search.{ext}?q=...
func (b *URLBuilder) SearchURL(q string, params url.Values) (string, error) {
	if strings.TrimSpace(q) == "" {
		return "", &MissingParameterError{Type: typeName[Search](), Parameter: "q"}
	}
	query := cloneValues(params)
	query.Set("q", q)
	return b.build(query, "search"), nil
}
