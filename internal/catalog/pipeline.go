// Package catalog implements the public listing catalog: the browse
// pipeline over the full listing set and the seller-facing listing
// lifecycle.
package catalog

import (
	"sort"
	"strings"

	domain "github.com/milestonemotors/motors/pkg/types"
)

// PageSize is the fixed number of listings per catalog page.
const PageSize = 6

// Sort keys accepted by the catalog index. Anything else leaves the
// incoming order untouched.
const (
	SortPriceDesc = "priceDesc"
	SortPriceAsc  = "priceAsc"
	SortYearDesc  = "yearDesc"
)

// Query captures one catalog browse request. Filter fields are nil when
// the caller did not ask for them; handlers parse raw values into the
// domain types before building a Query, so an unrecognized value never
// reaches the pipeline.
type Query struct {
	Search    string
	Sort      string
	Fuel      *domain.FuelType
	Condition *domain.Condition
	Brand     *domain.Brand
	Page      int
}

// Page is one page of catalog results plus enough shape for pagination
// controls. Total counts listings after search and filters, before
// slicing.
type Page struct {
	Listings   []domain.Listing `json:"listings"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// Run applies the browse pipeline to the full listing set: search, then
// sort, then filters, then pagination. The input slice is never
// mutated.
func Run(all []domain.Listing, q Query) Page {
	matched := searchStep(all, q.Search)
	matched = sortStep(matched, q.Sort)
	matched = filterStep(matched, q)
	return paginate(matched, q.Page)
}

// searchStep keeps listings whose brand or model starts with the term,
// case-insensitively. A blank term keeps everything; a non-blank term
// matches untrimmed, leading spaces and all.
func searchStep(in []domain.Listing, term string) []domain.Listing {
	if strings.TrimSpace(term) == "" {
		out := make([]domain.Listing, len(in))
		copy(out, in)
		return out
	}

	needle := strings.ToLower(term)
	out := make([]domain.Listing, 0, len(in))
	for _, l := range in {
		if strings.HasPrefix(strings.ToLower(string(l.Brand)), needle) ||
			strings.HasPrefix(strings.ToLower(l.Model), needle) {
			out = append(out, l)
		}
	}
	return out
}

// sortStep orders the working set by the requested key. Sorting is
// stable so listings tied on the key keep their newest-first order from
// the store. An unrecognized key is a no-op.
func sortStep(in []domain.Listing, key string) []domain.Listing {
	switch key {
	case SortPriceDesc:
		sort.SliceStable(in, func(i, j int) bool {
			return in[i].PriceAmount > in[j].PriceAmount
		})
	case SortPriceAsc:
		sort.SliceStable(in, func(i, j int) bool {
			return in[i].PriceAmount < in[j].PriceAmount
		})
	case SortYearDesc:
		sort.SliceStable(in, func(i, j int) bool {
			return in[i].Year > in[j].Year
		})
	}
	return in
}

// filterStep applies the fuel, condition, and brand filters in that
// order. Filters combine as AND.
func filterStep(in []domain.Listing, q Query) []domain.Listing {
	if q.Fuel == nil && q.Condition == nil && q.Brand == nil {
		return in
	}

	out := make([]domain.Listing, 0, len(in))
	for _, l := range in {
		if q.Fuel != nil && l.FuelType != *q.Fuel {
			continue
		}
		if q.Condition != nil && l.Condition != *q.Condition {
			continue
		}
		if q.Brand != nil && l.Brand != *q.Brand {
			continue
		}
		out = append(out, l)
	}
	return out
}

// paginate slices the working set into the requested page. Pages are
// 1-based; anything below 1 means the first page, and a page past the
// end yields an empty page rather than an error.
func paginate(in []domain.Listing, page int) Page {
	if page < 1 {
		page = 1
	}

	total := len(in)
	totalPages := (total + PageSize - 1) / PageSize

	start := (page - 1) * PageSize
	if start > total {
		start = total
	}
	end := min(start+PageSize, total)

	return Page{
		Listings:   in[start:end],
		Total:      total,
		Page:       page,
		PageSize:   PageSize,
		TotalPages: totalPages,
	}
}
