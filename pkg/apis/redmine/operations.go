package redmine

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Get fetches the T with the given id. params adds query options such as
// include=journals,attachments.
func Get[T any, PT EntityPtr[T]](ctx context.Context, c *Client, id string, params url.Values) (*T, error) {
	rawURL, err := GetURL[T, PT](c.urls, id)
	if err != nil {
		return nil, err
	}
	body, err := c.get(ctx, appendQuery(rawURL, params))
	if err != nil {
		return nil, err
	}
	return Deserialize[T, PT](c.serializer, string(body))
}

// List fetches one page of T. Nested resources take their parent from the
// project_id or issue_id parameter.
func List[T any, PT EntityPtr[T]](ctx context.Context, c *Client, params url.Values) (*PaginatedResult[T], error) {
	rawURL, err := ItemsURL[T, PT](c.urls, params)
	if err != nil {
		return nil, err
	}
	body, err := c.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return DeserializeList[T, PT](c.serializer, string(body))
}

// ListAll follows offset/limit pagination until total_count items were read or a
// page comes back empty. The limit parameter, when given, sets the page size.
func ListAll[T any, PT EntityPtr[T]](ctx context.Context, c *Client, params url.Values) ([]T, error) {
	query := cloneValues(params)
	limit := c.pageSize
	if v, err := strconv.Atoi(query.Get("limit")); err == nil && v > 0 {
		limit = v
	}
	offset := 0
	if v, err := strconv.Atoi(query.Get("offset")); err == nil && v > 0 {
		offset = v
	}

	var all []T
	for {
		query.Set("limit", strconv.Itoa(limit))
		query.Set("offset", strconv.Itoa(offset))
		page, err := List[T, PT](ctx, c, query)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)
		offset += len(page.Items)
		if len(page.Items) == 0 || offset >= page.Total {
			return all, nil
		}
	}
}

// Count returns total_count for the list of T matching params, fetching a single item.
func Count[T any, PT EntityPtr[T]](ctx context.Context, c *Client, params url.Values) (int, error) {
	query := cloneValues(params)
	query.Set("limit", "1")
	query.Set("offset", "0")
	rawURL, err := ItemsURL[T, PT](c.urls, query)
	if err != nil {
		return 0, err
	}
	body, err := c.get(ctx, rawURL)
	if err != nil {
		return 0, err
	}
	return c.serializer.Count(string(body))
}

// Create posts entity and returns the created resource as echoed by the server.
// ownerID is the project or issue id for nested resources.
func Create[T any, PT EntityPtr[T]](ctx context.Context, c *Client, entity *T, ownerID string) (*T, error) {
	if entity == nil {
		return nil, errors.New("redmine: entity is nil")
	}
	rawURL, err := CreateURL[T, PT](c.urls, ownerID)
	if err != nil {
		return nil, err
	}
	payload, err := c.serializer.Serialize(PT(entity))
	if err != nil {
		return nil, err
	}
	body, err := c.send(ctx, http.MethodPost, rawURL, payload)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(body)) == "" {
		return entity, nil
	}
	return Deserialize[T, PT](c.serializer, string(body))
}

// Update puts entity to the resource with the given id.
func Update[T any, PT EntityPtr[T]](ctx context.Context, c *Client, id string, entity *T) error {
	if entity == nil {
		return errors.New("redmine: entity is nil")
	}
	rawURL, err := UpdateURL[T, PT](c.urls, id)
	if err != nil {
		return err
	}
	payload, err := c.serializer.Serialize(PT(entity))
	if err != nil {
		return err
	}
	_, err = c.send(ctx, http.MethodPut, rawURL, payload)
	return err
}

// Delete removes the resource with the given id. reassignID is honored by
// resources that move dependents on delete, e.g. issue categories.
func Delete[T any, PT EntityPtr[T]](ctx context.Context, c *Client, id, reassignID string) error {
	rawURL, err := DeleteURL[T, PT](c.urls, id, reassignID)
	if err != nil {
		return err
	}
	return c.delete(ctx, rawURL)
}
