package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/milestonemotors/motors/internal/catalog"
	domain "github.com/milestonemotors/motors/pkg/types"
)

// BrowseParams defines query parameters for browsing listings.
type BrowseParams struct {
	Search    string
	Sort      string
	Fuel      string
	Condition string
	Brand     string
	Page      int
}

// Browse returns one page of listings matching the given parameters.
func (c *Client) Browse(ctx context.Context, params *BrowseParams) (*catalog.Page, error) {
	q := url.Values{}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if params.Sort != "" {
		q.Set("sort", params.Sort)
	}
	if params.Fuel != "" {
		q.Set("fuel", params.Fuel)
	}
	if params.Condition != "" {
		q.Set("condition", params.Condition)
	}
	if params.Brand != "" {
		q.Set("brand", params.Brand)
	}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}

	path := "/api/v1/listings"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var page catalog.Page
	if err := c.get(ctx, path, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetListing returns a single listing by ID.
func (c *Client) GetListing(ctx context.Context, id int64) (*domain.Listing, error) {
	var l domain.Listing
	if err := c.get(ctx, fmt.Sprintf("/api/v1/listings/%d", id), &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// Healthz reports whether the server is up.
func (c *Client) Healthz(ctx context.Context) error {
	return c.get(ctx, "/healthz", nil)
}
