package wp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
)

const apiPrefix = "/wp-json/wp/v2/"

// PostType describes one content type as reported by the types endpoint.
// The schema is kept as a generic map because its shape varies by type and
// WordPress version; use the accessors in fields.go to walk it.
type PostType struct {
	Name         string                 `json:"name"`
	Slug         string                 `json:"slug"`
	Description  string                 `json:"description"`
	RESTBase     string                 `json:"rest_base"`
	Hierarchical bool                   `json:"hierarchical"`
	Viewable     bool                   `json:"viewable"`
	Supports     map[string]interface{} `json:"supports"`
	Schema       map[string]interface{} `json:"schema"`
}

// Item is a generic content item returned by a collection endpoint.
type Item map[string]interface{}

// Identity is the authenticated user as reported by /users/me.
type Identity struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	Roles        []string        `json:"roles,omitempty"`
	Capabilities map[string]bool `json:"capabilities,omitempty"`
}

// ListPostTypes fetches all post types with their schemas. The edit context
// is required for WordPress to include rest_base and capability details.
func (c *Client) ListPostTypes(ctx context.Context) (map[string]PostType, error) {
	params := url.Values{"context": {"edit"}}
	body, err := c.Get(ctx, apiPrefix+"types", params)
	if err != nil {
		return nil, err
	}
	var types map[string]PostType
	if err := json.Unmarshal(body, &types); err != nil {
		return nil, fmt.Errorf("GET %stypes: %w: %v", apiPrefix, ErrDecode, err)
	}
	return types, nil
}

// ValidateConnection reports whether the site is reachable with the
// configured credentials. Every failure collapses to false.
func (c *Client) ValidateConnection(ctx context.Context) bool {
	_, err := c.ListPostTypes(ctx)
	return err == nil
}

// Whoami fetches the authenticated user for diagnostics.
func (c *Client) Whoami(ctx context.Context) (*Identity, error) {
	var id Identity
	if err := c.GetJSON(ctx, apiPrefix+"users/me", nil, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

// WhoamiEdit is Whoami with context=edit, which includes roles and
// capabilities when the credentials allow it.
func (c *Client) WhoamiEdit(ctx context.Context) (*Identity, error) {
	var id Identity
	params := url.Values{"context": {"edit"}}
	if err := c.GetJSON(ctx, apiPrefix+"users/me", params, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

// FetchSampleItems GETs the type's collection endpoint (server default page
// size) to sample existing items for custom-field discovery. A 404 means
// the type has no queryable collection and is treated as "no items", not an
// error. The raw body is returned alongside the decoded items so callers
// can probe buckets the generic decode flattens.
func (c *Client) FetchSampleItems(ctx context.Context, restBase string) ([]Item, []byte, error) {
	body, err := c.Get(ctx, apiPrefix+restBase, nil)
	if err != nil {
		var he *HTTPError
		if errors.As(err, &he) && he.Status == 404 {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	var items []Item
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, nil, fmt.Errorf("GET %s%s: %w: %v", apiPrefix, restBase, ErrDecode, err)
	}
	return items, body, nil
}

// CreateItem POSTs one payload as one content item. Single attempt, no
// retry: any failure is terminal for that row and carried back with status
// and body for display.
func (c *Client) CreateItem(ctx context.Context, restBase string, payload map[string]interface{}) error {
	_, _, err := c.Post(ctx, apiPrefix+restBase, payload)
	return err
}
