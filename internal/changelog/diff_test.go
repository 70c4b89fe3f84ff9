package changelog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/yamagishi2448dev-lab/inventory-main-sub001/pkg/models"
)

func TestCompareChanges(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	labels := map[string]string{
		"name":      "名前",
		"quantity":  "数量",
		"costPrice": "原価",
		"notes":     "備考",
	}

	t.Run("Detects Changed Fields Only", func(t *testing.T) {
		before := map[string]interface{}{
			"name":      "デスク",
			"quantity":  5,
			"costPrice": decimal.NewFromInt(1000),
			"notes":     nil,
		}
		after := map[string]interface{}{
			"name":      "デスク",
			"quantity":  3,
			"costPrice": decimal.NewFromInt(1000),
			"notes":     "傷あり",
		}

		changes := CompareChanges(before, after, labels)

		// Entries come out ordered by source field name, so notes
		// precedes quantity.
		assert.Equal(t, []models.FieldChange{
			{Field: "備考", Before: "", After: "傷あり"},
			{Field: "数量", Before: "5", After: "3"},
		}, changes)
	})

	t.Run("No Changes Yields Nil", func(t *testing.T) {
		snapshot := map[string]interface{}{"name": "チェア", "quantity": 1}

		assert.Nil(t, CompareChanges(snapshot, snapshot, labels))
	})

	t.Run("Nil And Empty String Are Equal", func(t *testing.T) {
		before := map[string]interface{}{"notes": nil}
		after := map[string]interface{}{"notes": ""}

		assert.Nil(t, CompareChanges(before, after, labels))
	})

	t.Run("Decimal Compared By String Value", func(t *testing.T) {
		before := map[string]interface{}{"costPrice": decimal.NewFromFloat(10.50)}
		after := map[string]interface{}{"costPrice": decimal.RequireFromString("10.5")}

		assert.Nil(t, CompareChanges(before, after, labels))
	})

	t.Run("Null Decimal Treated As Empty", func(t *testing.T) {
		before := map[string]interface{}{"costPrice": decimal.NullDecimal{}}
		after := map[string]interface{}{"costPrice": decimal.NullDecimal{Decimal: decimal.NewFromInt(200), Valid: true}}

		changes := CompareChanges(before, after, labels)

		assert.Equal(t, []models.FieldChange{{Field: "原価", Before: "", After: "200"}}, changes)
	})

	t.Run("Object Values JSON Encoded", func(t *testing.T) {
		before := map[string]interface{}{"notes": map[string]string{"a": "1"}}
		after := map[string]interface{}{"notes": map[string]string{"a": "2"}}

		changes := CompareChanges(before, after, labels)

		assert.Equal(t, []models.FieldChange{{Field: "備考", Before: `{"a":"1"}`, After: `{"a":"2"}`}}, changes)
	})

	t.Run("String Pointer Values", func(t *testing.T) {
		before := map[string]interface{}{"notes": (*string)(nil)}
		after := map[string]interface{}{"notes": strPtr("")}

		assert.Nil(t, CompareChanges(before, after, labels))
	})
}
