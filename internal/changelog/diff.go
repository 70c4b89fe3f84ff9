package changelog

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/yamagishi2448dev-lab/inventory-main-sub001/pkg/models"
)

// CompareChanges diffs two snapshots field by field. fieldLabels maps the
// snapshot key to the human-readable label stored in the change log; only
// labeled fields participate. Values are compared through their string
// form, with nil treated as the empty string, so 100 and "100" do not show
// up as a spurious change. Entries are emitted in sorted snapshot-key order
// so the stored diff is deterministic.
func CompareChanges(before, after map[string]interface{}, fieldLabels map[string]string) []models.FieldChange {
	fields := make([]string, 0, len(fieldLabels))
	for field := range fieldLabels {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var changes []models.FieldChange

	for _, field := range fields {
		label := fieldLabels[field]
		beforeValue := stringify(before[field])
		afterValue := stringify(after[field])

		if beforeValue != afterValue {
			changes = append(changes, models.FieldChange{
				Field:  label,
				Before: beforeValue,
				After:  afterValue,
			})
		}
	}

	return changes
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case decimal.Decimal:
		return v.String()
	case *decimal.Decimal:
		if v == nil {
			return ""
		}
		return v.String()
	case decimal.NullDecimal:
		if !v.Valid {
			return ""
		}
		return v.Decimal.String()
	case bool:
		return fmt.Sprintf("%t", v)
	case int, int32, int64, uint, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float32, float64:
		return fmt.Sprintf("%v", v)
	case fmt.Stringer:
		return v.String()
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	}
}
