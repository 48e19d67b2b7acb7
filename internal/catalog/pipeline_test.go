package catalog

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/milestonemotors/motors/pkg/types"
)

func fixture() []domain.Listing {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	mk := func(id int64, brand domain.Brand, model string, price int64, year int, fuel domain.FuelType, cond domain.Condition) domain.Listing {
		return domain.Listing{
			ID:          id,
			Brand:       brand,
			Model:       model,
			PriceAmount: price,
			Year:        year,
			FuelType:    fuel,
			Condition:   cond,
			CreatedAt:   base.Add(time.Duration(id) * time.Hour),
		}
	}

	// Newest first, matching what the store hands the pipeline.
	return []domain.Listing{
		mk(6, domain.BrandBMW, "X5", 45000, 2021, domain.FuelDiesel, domain.ConditionUsed),
		mk(5, domain.BrandBMW, "330d", 15000, 2018, domain.FuelDiesel, domain.ConditionUsed),
		mk(4, domain.BrandAudi, "A4", 22000, 2020, domain.FuelGasoline, domain.ConditionUsed),
		mk(3, domain.BrandTesla, "Model 3", 38000, 2022, domain.FuelElectric, domain.ConditionNew),
		mk(2, domain.BrandVolkswagen, "Golf", 9000, 2015, domain.FuelGasoline, domain.ConditionUsed),
		mk(1, domain.BrandMercedes, "C200", 18000, 2019, domain.FuelDiesel, domain.ConditionUsed),
	}
}

func ids(p Page) []int64 {
	out := make([]int64, len(p.Listings))
	for i, l := range p.Listings {
		out[i] = l.ID
	}
	return out
}

func TestRun_Search(t *testing.T) {
	tests := []struct {
		name   string
		search string
		want   []int64
	}{
		{"empty term keeps everything", "", []int64{6, 5, 4, 3, 2, 1}},
		{"blank term keeps everything", "   ", []int64{6, 5, 4, 3, 2, 1}},
		{"brand prefix", "bm", []int64{6, 5}},
		{"padded term matches untrimmed", " bm", []int64{}},
		{"model prefix", "gol", []int64{2}},
		{"case insensitive", "TESLA", []int64{3}},
		{"brand or model", "m", []int64{3, 1}},
		{"no match", "zonda", []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Run(fixture(), Query{Search: tt.search})
			assert.Equal(t, tt.want, ids(got))
			assert.Equal(t, len(tt.want), got.Total)
		})
	}
}

func TestRun_Sort(t *testing.T) {
	tests := []struct {
		name string
		sort string
		want []int64
	}{
		{"price descending", SortPriceDesc, []int64{6, 3, 4, 1, 5, 2}},
		{"price ascending", SortPriceAsc, []int64{2, 5, 1, 4, 3, 6}},
		{"year descending", SortYearDesc, []int64{3, 6, 4, 1, 5, 2}},
		{"unknown key keeps order", "alphabetical", []int64{6, 5, 4, 3, 2, 1}},
		{"empty key keeps order", "", []int64{6, 5, 4, 3, 2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Run(fixture(), Query{Sort: tt.sort})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestRun_SortStable(t *testing.T) {
	// Two listings tied on price keep their incoming newest-first order.
	all := fixture()
	all[1].PriceAmount = 45000 // id 5 ties with id 6

	got := Run(all, Query{Sort: SortPriceDesc})
	assert.Equal(t, []int64{6, 5, 3, 4, 1, 2}, ids(got))
}

func TestRun_Filters(t *testing.T) {
	diesel := domain.FuelDiesel
	used := domain.ConditionUsed
	newCond := domain.ConditionNew
	bmw := domain.BrandBMW
	tesla := domain.BrandTesla

	tests := []struct {
		name string
		q    Query
		want []int64
	}{
		{"fuel only", Query{Fuel: &diesel}, []int64{6, 5, 1}},
		{"condition only", Query{Condition: &newCond}, []int64{3}},
		{"brand only", Query{Brand: &bmw}, []int64{6, 5}},
		{"filters combine as AND", Query{Fuel: &diesel, Condition: &used, Brand: &bmw}, []int64{6, 5}},
		{"AND can empty the set", Query{Condition: &used, Brand: &tesla}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Run(fixture(), tt.q)
			assert.Equal(t, tt.want, ids(got))
			assert.Equal(t, len(tt.want), got.Total)
		})
	}
}

func TestRun_Pagination(t *testing.T) {
	// Ten listings so page 2 is a partial page.
	var all []domain.Listing
	for i := 10; i >= 1; i-- {
		all = append(all, domain.Listing{ID: int64(i), Brand: domain.BrandFord, Model: fmt.Sprintf("m%d", i)})
	}

	t.Run("first page holds six", func(t *testing.T) {
		got := Run(all, Query{Page: 1})
		assert.Equal(t, []int64{10, 9, 8, 7, 6, 5}, ids(got))
		assert.Equal(t, 10, got.Total)
		assert.Equal(t, 2, got.TotalPages)
		assert.Equal(t, PageSize, got.PageSize)
	})

	t.Run("second page holds the rest", func(t *testing.T) {
		got := Run(all, Query{Page: 2})
		assert.Equal(t, []int64{4, 3, 2, 1}, ids(got))
	})

	t.Run("page zero means first page", func(t *testing.T) {
		got := Run(all, Query{Page: 0})
		assert.Equal(t, []int64{10, 9, 8, 7, 6, 5}, ids(got))
		assert.Equal(t, 1, got.Page)
	})

	t.Run("page past the end is empty, not an error", func(t *testing.T) {
		got := Run(all, Query{Page: 7})
		assert.Empty(t, got.Listings)
		assert.Equal(t, 10, got.Total)
	})

	t.Run("empty set has zero pages", func(t *testing.T) {
		got := Run(nil, Query{Page: 1})
		assert.Empty(t, got.Listings)
		assert.Zero(t, got.TotalPages)
	})
}

func TestRun_StepOrder(t *testing.T) {
	// Pagination slices the filtered set, not the raw one: seven diesel
	// BMWs among noise still fill page one with six of them.
	var all []domain.Listing
	for i := 20; i >= 1; i-- {
		l := domain.Listing{ID: int64(i), Brand: domain.BrandAudi, Model: "A4", FuelType: domain.FuelGasoline}
		if i <= 7 {
			l.Brand = domain.BrandBMW
			l.FuelType = domain.FuelDiesel
		}
		all = append(all, l)
	}

	diesel := domain.FuelDiesel
	got := Run(all, Query{Fuel: &diesel, Page: 1})
	require.Len(t, got.Listings, 6)
	assert.Equal(t, 7, got.Total)
	assert.Equal(t, 2, got.TotalPages)
	for _, l := range got.Listings {
		assert.Equal(t, domain.FuelDiesel, l.FuelType)
	}

	got = Run(all, Query{Fuel: &diesel, Page: 2})
	assert.Equal(t, []int64{1}, ids(got))
}

func TestRun_DoesNotMutateInput(t *testing.T) {
	all := fixture()
	Run(all, Query{Sort: SortPriceAsc})
	assert.Equal(t, int64(6), all[0].ID)
}
