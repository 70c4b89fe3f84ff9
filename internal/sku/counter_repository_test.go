package sku

import (
	"strings"
	"testing"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/stretchr/testify/assert"

	"github.com/yamagishi2448dev-lab/inventory-main-sub001/pkg/models"
)

// renderUpsert compiles the counter statement the way the repository does,
// so assertions run against the final SQL text.
func renderUpsert(t *testing.T, itemType models.ItemType) string {
	t.Helper()

	ds := counterUpsert(goqu.Dialect("postgres").Insert("sku_counters"), itemType)
	sql, _, err := ds.ToSQL()
	assert.NoError(t, err)
	return sql
}

func TestCounterUpsertIsSingleStatement(t *testing.T) {
	sql := renderUpsert(t, models.ItemTypeProduct)

	// Seed, increment and read back happen in one round trip.
	assert.Equal(t, 1, strings.Count(sql, "INSERT INTO"))
	assert.Contains(t, sql, `ON CONFLICT (item_type) DO UPDATE SET "value"=sku_counters.value + 1`)
	assert.Contains(t, sql, `RETURNING "value"`)
	assert.NotContains(t, sql, "SELECT")
	assert.NotContains(t, sql, "MAX(")
}

func TestCounterUpsertSeedsAtOne(t *testing.T) {
	sql := renderUpsert(t, models.ItemTypeConsignment)

	assert.Contains(t, sql, `('CONSIGNMENT', 1)`)
}
