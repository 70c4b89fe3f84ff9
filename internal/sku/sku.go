package sku

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yamagishi2448dev-lab/inventory-main-sub001/pkg/models"
)

const (
	ProductPrefix     = "SKU-"
	ConsignmentPrefix = "CSG-"

	// ItemTypeUnknown is returned for codes that match neither prefix.
	ItemTypeUnknown = "unknown"
)

var (
	productPattern     = regexp.MustCompile(`^SKU-\d{5}$`)
	consignmentPattern = regexp.MustCompile(`^CSG-\d{5}$`)
)

// Format renders a counter value as a category-prefixed code. Values past
// 99999 widen instead of wrapping.
func Format(itemType models.ItemType, value int64) string {
	return fmt.Sprintf("%s%05d", Prefix(itemType), value)
}

func Prefix(itemType models.ItemType) string {
	if itemType == models.ItemTypeConsignment {
		return ConsignmentPrefix
	}
	return ProductPrefix
}

// IsValidProductSKU reports whether code is exactly "SKU-" plus five digits.
func IsValidProductSKU(code string) bool {
	return productPattern.MatchString(code)
}

// IsValidConsignmentSKU reports whether code is exactly "CSG-" plus five digits.
func IsValidConsignmentSKU(code string) bool {
	return consignmentPattern.MatchString(code)
}

// IsValidItemSKU accepts either category's format.
func IsValidItemSKU(code string) bool {
	return IsValidProductSKU(code) || IsValidConsignmentSKU(code)
}

// ItemTypeFromSKU maps a code back to its category by prefix, so widened
// codes past 99999 still resolve. ItemTypeUnknown is returned when neither
// prefix matches.
func ItemTypeFromSKU(code string) string {
	switch {
	case strings.HasPrefix(code, ProductPrefix):
		return string(models.ItemTypeProduct)
	case strings.HasPrefix(code, ConsignmentPrefix):
		return string(models.ItemTypeConsignment)
	default:
		return ItemTypeUnknown
	}
}
