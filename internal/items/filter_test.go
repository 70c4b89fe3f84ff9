package items

import (
	"strings"
	"testing"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/stretchr/testify/assert"
)

// renderWhere compiles the filter into SQL the way the repository does, so
// assertions run against the final predicate text.
func renderWhere(t *testing.T, filter ItemFilter) string {
	t.Helper()

	ds := goqu.Dialect("postgres").From(goqu.T("items").As("i"))
	for _, cond := range filter.BuildWhere() {
		ds = ds.Where(cond)
	}

	sql, _, err := ds.ToSQL()
	assert.NoError(t, err)
	return sql
}

func TestBuildWhere(t *testing.T) {
	intPtr := func(n int) *int { return &n }

	t.Run("Default Excludes Sold", func(t *testing.T) {
		sql := renderWhere(t, ItemFilter{})

		assert.Contains(t, sql, `"i"."is_sold" IS FALSE`)
	})

	t.Run("Include Sold Drops The Constraint", func(t *testing.T) {
		sql := renderWhere(t, ItemFilter{IncludeSold: true})

		assert.NotContains(t, sql, "is_sold")
	})

	t.Run("Search Spans Name And Specification", func(t *testing.T) {
		sql := renderWhere(t, ItemFilter{Search: "oak", IncludeSold: true})

		assert.Contains(t, sql, `"i"."name" ILIKE '%oak%'`)
		assert.Contains(t, sql, `"i"."specification" ILIKE '%oak%'`)
		assert.NotContains(t, sql, `"i"."sku"`)
	})

	t.Run("Legacy Product Search Includes SKU", func(t *testing.T) {
		sql := renderWhere(t, ItemFilter{Search: "oak", SearchSKU: true, IncludeSold: true})

		assert.Contains(t, sql, `"i"."sku" ILIKE '%oak%'`)
	})

	t.Run("Blank Search Is No Constraint", func(t *testing.T) {
		sql := renderWhere(t, ItemFilter{Search: "   ", IncludeSold: true})

		assert.NotContains(t, sql, "ILIKE")
	})

	t.Run("Exact Reference Matches", func(t *testing.T) {
		sql := renderWhere(t, ItemFilter{
			CategoryID:     intPtr(3),
			ManufacturerID: intPtr(7),
			LocationID:     intPtr(9),
			IncludeSold:    true,
		})

		assert.Contains(t, sql, `"i"."category_id" = 3`)
		assert.Contains(t, sql, `"i"."manufacturer_id" = 7`)
		assert.Contains(t, sql, `"i"."location_id" = 9`)
	})

	t.Run("Arrival Date Is Substring Match", func(t *testing.T) {
		sql := renderWhere(t, ItemFilter{ArrivalDate: "2024年", IncludeSold: true})

		assert.Contains(t, sql, `"i"."arrival_date" ILIKE '%2024年%'`)
	})

	t.Run("Tags Compile To Exists Any", func(t *testing.T) {
		sql := renderWhere(t, ItemFilter{TagIDs: []int{1, 2}, IncludeSold: true})

		assert.Contains(t, sql, "EXISTS (SELECT 1 FROM item_tags")
		assert.Contains(t, sql, "item_tags.tag_id = ANY(")
	})

	t.Run("Item Type Restricts Family", func(t *testing.T) {
		sql := renderWhere(t, ItemFilter{ItemType: "CONSIGNMENT", IncludeSold: true})

		assert.Contains(t, sql, `"i"."item_type" = 'CONSIGNMENT'`)
	})

	t.Run("Invalid Item Type Ignored", func(t *testing.T) {
		sql := renderWhere(t, ItemFilter{ItemType: "WIDGET", IncludeSold: true})

		assert.NotContains(t, sql, "item_type")
	})
}

func TestBuildOrder(t *testing.T) {
	render := func(sortBy, sortOrder string) string {
		ds := goqu.Dialect("postgres").
			From(goqu.T("items").As("i")).
			Order(BuildOrder(sortBy, sortOrder))
		sql, _, err := ds.ToSQL()
		assert.NoError(t, err)
		return sql
	}

	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		expected  string
	}{
		{name: "Manufacturer Sorts By Joined Name", sortBy: "manufacturer", sortOrder: "asc", expected: `"m"."name" ASC`},
		{name: "Category Sorts By Joined Name", sortBy: "category", sortOrder: "desc", expected: `"c"."name" DESC`},
		{name: "Location Sorts By Joined Name", sortBy: "location", sortOrder: "asc", expected: `"l"."name" ASC`},
		{name: "Plain Column", sortBy: "quantity", sortOrder: "desc", expected: `"i"."quantity" DESC`},
		{name: "Unknown Field Falls Back", sortBy: "bogus", sortOrder: "asc", expected: `"i"."created_at" DESC`},
		{name: "Absent Field Falls Back", sortBy: "", sortOrder: "", expected: `"i"."created_at" DESC`},
		{name: "Unknown Order Defaults Ascending", sortBy: "name", sortOrder: "sideways", expected: `"i"."name" ASC`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, strings.HasSuffix(render(tt.sortBy, tt.sortOrder), tt.expected),
				"expected ordering %q in %q", tt.expected, render(tt.sortBy, tt.sortOrder))
		})
	}
}
