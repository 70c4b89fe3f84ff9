package items

import (
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/lib/pq"

	"github.com/yamagishi2448dev-lab/inventory-main-sub001/pkg/models"
)

// ItemFilter is bound from list query parameters and compiled into goqu
// expressions against the joined item query (aliases: i items, c categories,
// m manufacturers, l locations, u units).
type ItemFilter struct {
	Search         string `form:"search"`
	CategoryID     *int   `form:"categoryId"`
	ManufacturerID *int   `form:"manufacturerId"`
	LocationID     *int   `form:"locationId"`
	ArrivalDate    string `form:"arrivalDate"`
	TagIDs         []int  `form:"tagIds"`
	IncludeSold    bool   `form:"includeSold"`
	ItemType       string `form:"itemType"`

	// SearchSKU widens the free-text search to the SKU column. The legacy
	// product endpoints set it; it is not client-controllable.
	SearchSKU bool `form:"-"`
}

// BuildWhere compiles the filter into predicates. Empty strings count as
// absent so a blank query parameter never filters everything out.
func (f *ItemFilter) BuildWhere() []goqu.Expression {
	var conditions []goqu.Expression

	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := "%" + search + "%"
		searchFields := []goqu.Expression{
			goqu.I("i.name").ILike(pattern),
			goqu.I("i.specification").ILike(pattern),
		}
		if f.SearchSKU {
			searchFields = append(searchFields, goqu.I("i.sku").ILike(pattern))
		}
		conditions = append(conditions, goqu.Or(searchFields...))
	}

	if f.CategoryID != nil {
		conditions = append(conditions, goqu.I("i.category_id").Eq(*f.CategoryID))
	}
	if f.ManufacturerID != nil {
		conditions = append(conditions, goqu.I("i.manufacturer_id").Eq(*f.ManufacturerID))
	}
	if f.LocationID != nil {
		conditions = append(conditions, goqu.I("i.location_id").Eq(*f.LocationID))
	}

	if arrival := strings.TrimSpace(f.ArrivalDate); arrival != "" {
		conditions = append(conditions, goqu.I("i.arrival_date").ILike("%"+arrival+"%"))
	}

	// Any-of semantics: an item matches when it carries at least one of the
	// requested tags.
	if len(f.TagIDs) > 0 {
		conditions = append(conditions, goqu.L(
			"EXISTS (SELECT 1 FROM item_tags WHERE item_tags.item_id = i.id AND item_tags.tag_id = ANY(?))",
			pq.Array(f.TagIDs),
		))
	}

	if !f.IncludeSold {
		conditions = append(conditions, goqu.I("i.is_sold").Eq(false))
	}

	if itemType := models.ItemType(strings.TrimSpace(f.ItemType)); itemType.IsValid() {
		conditions = append(conditions, goqu.I("i.item_type").Eq(string(itemType)))
	}

	return conditions
}

// sortColumns whitelists the sortable fields. Related entities sort by the
// joined name column, not the foreign key.
var sortColumns = map[string]string{
	"name":          "i.name",
	"specification": "i.specification",
	"quantity":      "i.quantity",
	"costPrice":     "i.cost_price",
	"listPrice":     "i.list_price",
	"arrivalDate":   "i.arrival_date",
	"manufacturer":  "m.name",
	"category":      "c.name",
	"location":      "l.name",
	"createdAt":     "i.created_at",
}

// BuildOrder resolves the requested ordering. An unrecognized or absent
// sortBy falls back to newest-first rather than erroring.
func BuildOrder(sortBy, sortOrder string) exp.OrderedExpression {
	column, ok := sortColumns[strings.TrimSpace(sortBy)]
	if !ok {
		return goqu.I("i.created_at").Desc()
	}

	if strings.EqualFold(strings.TrimSpace(sortOrder), "desc") {
		return goqu.I(column).Desc()
	}
	return goqu.I(column).Asc()
}
