package client

import (
	"context"
	"net/url"
	"strconv"

	"tosika/pkg/listquery"
)

// ListController drives a paginated, filterable listing against one list
// endpoint. Changing a filter resets to the first page; changing the page
// keeps every filter. After Refresh the server's meta is authoritative.
type ListController[T any] struct {
	client *Client
	path   string
	authed bool

	search     string
	status     string
	campaignID string
	sortBy     string
	sortOrder  string
	page       int
	limit      int

	items []T
	meta  listquery.Meta
}

func NewListController[T any](c *Client, path string, authed bool) *ListController[T] {
	return &ListController[T]{
		client: c,
		path:   path,
		authed: authed,
		page:   1,
		limit:  listquery.DefaultLimit,
	}
}

func (lc *ListController[T]) SetSearch(search string) {
	lc.search = search
	lc.page = 1
}

func (lc *ListController[T]) SetStatus(status string) {
	lc.status = status
	lc.page = 1
}

func (lc *ListController[T]) SetCampaign(campaignID string) {
	lc.campaignID = campaignID
	lc.page = 1
}

func (lc *ListController[T]) SetSort(sortBy, sortOrder string) {
	lc.sortBy = sortBy
	lc.sortOrder = sortOrder
	lc.page = 1
}

// SetPage moves to another page without touching the filters.
func (lc *ListController[T]) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	lc.page = page
}

func (lc *ListController[T]) SetLimit(limit int) {
	if limit < 1 {
		limit = listquery.DefaultLimit
	}
	lc.limit = limit
	lc.page = 1
}

// Refresh re-issues the query with the current facets and replaces the held
// items and meta. The server's page is trusted over the requested one, so an
// out-of-range page snaps back to what the server actually returned.
func (lc *ListController[T]) Refresh(ctx context.Context) error {
	items, meta, err := List[T](ctx, lc.client, lc.path, lc.query(), lc.authed)
	if err != nil {
		return err
	}

	lc.items = items
	lc.meta = meta
	if meta.Page > 0 {
		lc.page = meta.Page
	}
	return nil
}

func (lc *ListController[T]) Items() []T {
	return lc.items
}

func (lc *ListController[T]) Meta() listquery.Meta {
	return lc.meta
}

func (lc *ListController[T]) Page() int {
	return lc.page
}

func (lc *ListController[T]) query() url.Values {
	values := url.Values{}
	if lc.search != "" {
		values.Set("search", lc.search)
	}
	if lc.status != "" {
		values.Set("status", lc.status)
	}
	if lc.campaignID != "" {
		values.Set("campaignId", lc.campaignID)
	}
	if lc.sortBy != "" {
		values.Set("sortBy", lc.sortBy)
	}
	if lc.sortOrder != "" {
		values.Set("sortOrder", lc.sortOrder)
	}
	values.Set("page", strconv.Itoa(lc.page))
	values.Set("limit", strconv.Itoa(lc.limit))
	return values
}
