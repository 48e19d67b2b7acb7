package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/milestonemotors/motors/internal/catalog"
	"github.com/milestonemotors/motors/internal/metrics"
	"github.com/milestonemotors/motors/internal/store"
	domain "github.com/milestonemotors/motors/pkg/types"
)

// CatalogHandler serves the public read-only listing API.
type CatalogHandler struct {
	catalog *catalog.Service
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalog: svc}
}

// --- Input/Output types ---

// BrowseInput is the input for browsing the catalog.
type BrowseInput struct {
	Search    string `query:"search"    doc:"Prefix match on brand or model, case-insensitive"`
	Sort      string `query:"sort"      doc:"Sort key; unrecognized keys leave newest-first order" example:"priceAsc"`
	Fuel      string `query:"fuel"      doc:"Filter by fuel type"`
	Condition string `query:"condition" doc:"Filter by condition"`
	Brand     string `query:"brand"     doc:"Filter by brand"`
	Page      int    `query:"page"      doc:"1-based page number (6 listings per page)" minimum:"0"`
}

// BrowseOutput is the response for browsing the catalog.
type BrowseOutput struct {
	Body catalog.Page
}

// GetListingInput is the input for fetching a single listing.
type GetListingInput struct {
	ID int64 `path:"id" doc:"Listing id"`
}

// GetListingOutput is the response for fetching a single listing.
type GetListingOutput struct {
	Body domain.Listing
}

// --- Handlers ---

// Browse runs the catalog pipeline: search, sort, filters, pagination.
// Unrecognized filter values are rejected; an unrecognized sort key is
// not.
func (h *CatalogHandler) Browse(ctx context.Context, input *BrowseInput) (*BrowseOutput, error) {
	q := catalog.Query{
		Search: input.Search,
		Sort:   input.Sort,
		Page:   input.Page,
	}

	if input.Fuel != "" {
		fuel, err := domain.ParseFuelType(input.Fuel)
		if err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}
		q.Fuel = &fuel
	}

	if input.Condition != "" {
		cond, err := domain.ParseCondition(input.Condition)
		if err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}
		q.Condition = &cond
	}

	if input.Brand != "" {
		brand, err := domain.ParseBrand(input.Brand)
		if err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}
		q.Brand = &brand
	}

	page, err := h.catalog.Browse(ctx, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("catalog query failed: " + err.Error())
	}

	filtered := q.Fuel != nil || q.Condition != nil || q.Brand != nil
	metrics.CatalogQueriesTotal.WithLabelValues(
		strconv.FormatBool(q.Search != ""),
		strconv.FormatBool(filtered),
		q.Sort,
	).Inc()
	if len(page.Listings) == 0 {
		metrics.CatalogEmptyPagesTotal.Inc()
	}

	return &BrowseOutput{Body: page}, nil
}

// GetListing returns one listing by id.
func (h *CatalogHandler) GetListing(ctx context.Context, input *GetListingInput) (*GetListingOutput, error) {
	l, err := h.catalog.Get(ctx, input.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, huma.Error404NotFound("listing not found")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("loading listing failed: " + err.Error())
	}
	return &GetListingOutput{Body: *l}, nil
}

// RegisterCatalogRoutes registers the public catalog endpoints with the
// Huma API.
func RegisterCatalogRoutes(api huma.API, h *CatalogHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "browse-listings",
		Method:      http.MethodGet,
		Path:        "/api/v1/listings",
		Summary:     "Browse the catalog",
		Description: "Searches, sorts, filters, and paginates the published listings.",
		Tags:        []string{"catalog"},
		Errors:      []int{http.StatusBadRequest},
	}, h.Browse)

	huma.Register(api, huma.Operation{
		OperationID: "get-listing",
		Method:      http.MethodGet,
		Path:        "/api/v1/listings/{id}",
		Summary:     "Get one listing",
		Tags:        []string{"catalog"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetListing)
}
