package sku

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yamagishi2448dev-lab/inventory-main-sub001/pkg/models"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		itemType models.ItemType
		value    int64
		expected string
	}{
		{
			name:     "Product Zero Padded",
			itemType: models.ItemTypeProduct,
			value:    42,
			expected: "SKU-00042",
		},
		{
			name:     "Consignment Zero Padded",
			itemType: models.ItemTypeConsignment,
			value:    1,
			expected: "CSG-00001",
		},
		{
			name:     "Widens Past Five Digits",
			itemType: models.ItemTypeProduct,
			value:    123456,
			expected: "SKU-123456",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.itemType, tt.value))
		})
	}
}

func TestIsValidSKUFormats(t *testing.T) {
	assert.True(t, IsValidProductSKU("SKU-00042"))
	assert.False(t, IsValidProductSKU("SKU-42"))
	assert.False(t, IsValidProductSKU("SKU-000042"))
	assert.False(t, IsValidProductSKU("CSG-00042"))
	assert.False(t, IsValidProductSKU("sku-00042"))

	assert.True(t, IsValidConsignmentSKU("CSG-00001"))
	assert.False(t, IsValidConsignmentSKU("CSG-1"))

	assert.True(t, IsValidItemSKU("SKU-00042"))
	assert.True(t, IsValidItemSKU("CSG-00001"))
	assert.False(t, IsValidItemSKU("ABC-00001"))
}

func TestItemTypeFromSKU(t *testing.T) {
	assert.Equal(t, "PRODUCT", ItemTypeFromSKU("SKU-00042"))
	assert.Equal(t, "CONSIGNMENT", ItemTypeFromSKU("CSG-00001"))
	assert.Equal(t, "PRODUCT", ItemTypeFromSKU("SKU-123456"))
	assert.Equal(t, "unknown", ItemTypeFromSKU("ABC-00001"))
	assert.Equal(t, "unknown", ItemTypeFromSKU(""))
}
