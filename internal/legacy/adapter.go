package legacy

import (
	"reflect"
	"strings"
)

// The adapter keeps the pre-migration product/consignment API shapes alive
// on top of the unified item model. Every function here is pure and total:
// malformed payloads pass through unchanged or produce empty results, they
// never panic.

// MapItemsToLegacyList renames a response's "items" array to the legacy
// collection key ("products" or "consignments"), preserving sibling fields
// such as pagination metadata. No-op when the payload has no items array.
func MapItemsToLegacyList(payload map[string]interface{}, key string) map[string]interface{} {
	return renameArrayField(payload, "items", key)
}

// MapItemToLegacyEntity renames a single "item" field to the legacy entity
// key ("product" or "consignment").
func MapItemToLegacyEntity(payload map[string]interface{}, key string) map[string]interface{} {
	if payload == nil {
		return nil
	}
	if _, ok := payload["item"]; !ok {
		return payload
	}

	mapped := make(map[string]interface{}, len(payload))
	for k, v := range payload {
		if k == "item" {
			mapped[key] = v
			continue
		}
		mapped[k] = v
	}

	return mapped
}

// ExtractIDs returns the first array-valued field among candidateKeys, with
// non-string entries filtered out. Nothing matching yields an empty slice.
func ExtractIDs(payload map[string]interface{}, candidateKeys []string) []string {
	if payload == nil {
		return []string{}
	}

	for _, key := range candidateKeys {
		value, ok := payload[key]
		if !ok || !isArray(value) {
			continue
		}

		ids := []string{}
		array := reflect.ValueOf(value)
		for i := 0; i < array.Len(); i++ {
			if id, ok := array.Index(i).Interface().(string); ok {
				ids = append(ids, id)
			}
		}
		return ids
	}

	return []string{}
}

// NormalizeBulkEditPayload rewrites a legacy bulk-edit body into the
// unified vocabulary: ids are pulled from the legacy key (falling back to
// "ids"), and a quantity mode of "increment" becomes "adjust". All other
// update fields pass through untouched.
func NormalizeBulkEditPayload(payload map[string]interface{}, legacyIDsKey string) map[string]interface{} {
	ids := ExtractIDs(payload, []string{legacyIDsKey, "ids"})

	normalized := map[string]interface{}{"ids": ids}
	if payload == nil {
		return normalized
	}

	updates, ok := payload["updates"].(map[string]interface{})
	if !ok {
		if raw, exists := payload["updates"]; exists {
			normalized["updates"] = raw
		}
		return normalized
	}

	mappedUpdates := make(map[string]interface{}, len(updates))
	for k, v := range updates {
		mappedUpdates[k] = v
	}

	if quantity, ok := updates["quantity"].(map[string]interface{}); ok {
		mappedQuantity := make(map[string]interface{}, len(quantity))
		for k, v := range quantity {
			mappedQuantity[k] = v
		}
		if mode, ok := mappedQuantity["mode"].(string); ok && mode == "increment" {
			mappedQuantity["mode"] = "adjust"
		}
		mappedUpdates["quantity"] = mappedQuantity
	}

	normalized["updates"] = mappedUpdates

	return normalized
}

// FilterPrintItemsByType keeps entries whose itemType matches the requested
// type, comparing case-insensitively. Entries without a recognizable
// itemType field pass through rather than being dropped.
func FilterPrintItemsByType(items []interface{}, itemType string) []interface{} {
	filtered := []interface{}{}

	for _, entry := range items {
		object, ok := entry.(map[string]interface{})
		if !ok {
			filtered = append(filtered, entry)
			continue
		}

		value, ok := object["itemType"].(string)
		if !ok {
			filtered = append(filtered, entry)
			continue
		}

		if strings.EqualFold(value, itemType) {
			filtered = append(filtered, entry)
		}
	}

	return filtered
}

func renameArrayField(payload map[string]interface{}, from, to string) map[string]interface{} {
	if payload == nil {
		return nil
	}

	value, ok := payload[from]
	if !ok || !isArray(value) {
		return payload
	}

	mapped := make(map[string]interface{}, len(payload))
	for k, v := range payload {
		if k == from {
			mapped[to] = v
			continue
		}
		mapped[k] = v
	}

	return mapped
}

func isArray(value interface{}) bool {
	if value == nil {
		return false
	}
	kind := reflect.ValueOf(value).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}
