package redmine

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// CurrentUser returns the authenticated user.
func (c *Client) CurrentUser(ctx context.Context, params url.Values) (*User, error) {
	body, err := c.get(ctx, appendQuery(c.urls.CurrentUserURL(), params))
	if err != nil {
		return nil, err
	}
	return Deserialize[User](c.serializer, string(body))
}

// MyAccount returns the authenticated user's account.
func (c *Client) MyAccount(ctx context.Context) (*MyAccount, error) {
	body, err := c.get(ctx, c.urls.MyAccountURL())
	if err != nil {
		return nil, err
	}
	return Deserialize[MyAccount](c.serializer, string(body))
}

// UpdateMyAccount saves names, mail and custom fields of the authenticated user.
func (c *Client) UpdateMyAccount(ctx context.Context, account *MyAccount) error {
	if account == nil {
		return errors.New("redmine: account is nil")
	}
	payload, err := c.serializer.Serialize(account)
	if err != nil {
		return err
	}
	_, err = c.send(ctx, http.MethodPut, c.urls.MyAccountURL(), payload)
	return err
}

// WikiPages lists the pages of a project wiki. Page text is not included.
func (c *Client) WikiPages(ctx context.Context, projectID string) ([]WikiPage, error) {
	rawURL, err := c.urls.WikisURL(projectID)
	if err != nil {
		return nil, err
	}
	body, err := c.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	page, err := DeserializeList[WikiPage](c.serializer, string(body))
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// WikiPage fetches a wiki page. A version of 0 returns the current version.
func (c *Client) WikiPage(ctx context.Context, projectID, title string, version int, params url.Values) (*WikiPage, error) {
	rawURL, err := c.urls.WikiPageURL(projectID, title, version)
	if err != nil {
		return nil, err
	}
	body, err := c.get(ctx, appendQuery(rawURL, params))
	if err != nil {
		return nil, err
	}
	return Deserialize[WikiPage](c.serializer, string(body))
}

// SaveWikiPage creates or updates a wiki page. The server answers 201 with the page
// on create and 204 on update, in which case page is returned unchanged.
func (c *Client) SaveWikiPage(ctx context.Context, projectID, title string, page *WikiPage) (*WikiPage, error) {
	if page == nil {
		return nil, errors.New("redmine: wiki page is nil")
	}
	rawURL, err := c.urls.WikiPageURL(projectID, title, 0)
	if err != nil {
		return nil, err
	}
	payload, err := c.serializer.Serialize(page)
	if err != nil {
		return nil, err
	}
	body, err := c.send(ctx, http.MethodPut, rawURL, payload)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(body)) == "" {
		return page, nil
	}
	return Deserialize[WikiPage](c.serializer, string(body))
}

// DeleteWikiPage deletes a wiki page with its history.
func (c *Client) DeleteWikiPage(ctx context.Context, projectID, title string) error {
	rawURL, err := c.urls.WikiPageURL(projectID, title, 0)
	if err != nil {
		return err
	}
	return c.delete(ctx, rawURL)
}

// AddUserToGroup adds a user to a group.
func (c *Client) AddUserToGroup(ctx context.Context, groupID, userID int) error {
	rawURL, err := c.urls.GroupUsersURL(strconv.Itoa(groupID))
	if err != nil {
		return err
	}
	return c.postUserID(ctx, rawURL, userID)
}

// RemoveUserFromGroup removes a user from a group.
func (c *Client) RemoveUserFromGroup(ctx context.Context, groupID, userID int) error {
	rawURL, err := c.urls.GroupUserURL(strconv.Itoa(groupID), strconv.Itoa(userID))
	if err != nil {
		return err
	}
	return c.delete(ctx, rawURL)
}

// AddWatcher adds a user to the watchers of an issue.
func (c *Client) AddWatcher(ctx context.Context, issueID, userID int) error {
	rawURL, err := c.urls.WatchersURL(strconv.Itoa(issueID))
	if err != nil {
		return err
	}
	return c.postUserID(ctx, rawURL, userID)
}

// RemoveWatcher removes a user from the watchers of an issue.
func (c *Client) RemoveWatcher(ctx context.Context, issueID, userID int) error {
	rawURL, err := c.urls.WatcherURL(strconv.Itoa(issueID), strconv.Itoa(userID))
	if err != nil {
		return err
	}
	return c.delete(ctx, rawURL)
}

func (c *Client) postUserID(ctx context.Context, rawURL string, userID int) error {
	if userID <= 0 {
		return &MissingParameterError{Type: "user", Parameter: "user_id"}
	}
	payload, err := scalarPayload(c.serializer.MimeType(), "user_id", userID)
	if err != nil {
		return err
	}
	_, err = c.send(ctx, http.MethodPost, rawURL, payload)
	return err
}

// UploadFile sends raw content to /uploads and returns the token to reference it
// from an issue, news item, wiki page or project file.
func (c *Client) UploadFile(ctx context.Context, fileName string, data []byte) (*Upload, error) {
	if data == nil {
		data = []byte{}
	}
	req, err := c.newRequest(ctx, http.MethodPost, c.urls.UploadURL(fileName), data, octetStream)
	if err != nil {
		return nil, err
	}
	body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	upload, err := Deserialize[Upload](c.serializer, string(body))
	if err != nil {
		return nil, err
	}
	if upload.FileName == "" {
		upload.FileName = fileName
	}
	return upload, nil
}

// DownloadFile fetches raw content, typically an Attachment.ContentURL. Relative
// addresses are resolved against the client's host.
func (c *Client) DownloadFile(ctx context.Context, address string) ([]byte, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, &MissingParameterError{Type: typeName[Attachment](), Parameter: "address"}
	}
	if !strings.HasPrefix(address, "http://") && !strings.HasPrefix(address, "https://") {
		address = c.urls.Host() + "/" + strings.TrimLeft(address, "/")
	}
	req, err := c.newRequest(ctx, http.MethodGet, address, nil, "")
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", octetStream)
	return c.do(req)
}

// UpdateAttachment attaches previously uploaded files to an issue through
// PATCH /attachments/issues/{id}.
func (c *Client) UpdateAttachment(ctx context.Context, issueID int, attachment *Attachment) error {
	if attachment == nil {
		return errors.New("redmine: attachment is nil")
	}
	rawURL, err := c.urls.AttachmentUpdateURL(strconv.Itoa(issueID))
	if err != nil {
		return err
	}
	payload, err := c.serializer.Serialize(attachment)
	if err != nil {
		return err
	}
	_, err = c.send(ctx, http.MethodPatch, rawURL, payload)
	return err
}

// Search runs a full-text search. params accepts the server's filters, e.g.
// scope, titles_only, issues=1, offset and limit.
func (c *Client) Search(ctx context.Context, q string, params url.Values) (*PaginatedResult[Search], error) {
	rawURL, err := c.urls.SearchURL(q, params)
	if err != nil {
		return nil, err
	}
	body, err := c.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return DeserializeList[Search](c.serializer, string(body))
}
