package items

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/yamagishi2448dev-lab/inventory-main-sub001/internal/csvcodec"
	"github.com/yamagishi2448dev-lab/inventory-main-sub001/pkg/models"
)

func strPtr(s string) *string { return &s }

func TestItemToRow(t *testing.T) {
	soldAt := time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)
	createdAt := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	item := models.Item{
		ID:            42,
		SKU:           "SKU-00042",
		Name:          "ダイニングチェア",
		ItemType:      models.ItemTypeProduct,
		Specification: strPtr("W600×D600×H700"),
		Quantity:      3,
		CostPrice:     decimal.NullDecimal{Decimal: decimal.RequireFromString("10000"), Valid: true},
		ListPrice:     decimal.NullDecimal{Decimal: decimal.RequireFromString("25000.50"), Valid: true},
		ArrivalDate:   strPtr("2024年5月"),
		IsSold:        true,
		SoldAt:        &soldAt,
		Manufacturer:  &models.Manufacturer{ID: 1, Name: "サンプルメーカー"},
		Category:      &models.Category{ID: 2, Name: "チェア"},
		Location:      &models.Location{ID: 3, Name: "倉庫A"},
		Unit:          &models.Unit{ID: 4, Name: "脚"},
		Tags:          []models.Tag{{ID: 1, Name: "新作"}, {ID: 2, Name: "限定"}},
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}

	row := itemToRow(&item)

	assert.Len(t, row, len(csvHeaders))
	assert.Equal(t, "PRODUCT", row[0])
	assert.Equal(t, "42", row[1])
	assert.Equal(t, "SKU-00042", row[2])
	assert.Equal(t, "ダイニングチェア", row[3])
	assert.Equal(t, "サンプルメーカー", row[4])
	assert.Equal(t, "チェア", row[5])
	assert.Equal(t, "3", row[9])
	assert.Equal(t, "脚", row[10])
	assert.Equal(t, "10000", row[11])
	assert.Equal(t, "25000.5", row[12])
	assert.Equal(t, "2024年5月", row[13])
	assert.Equal(t, "倉庫A", row[14])
	assert.Equal(t, "新作|限定", row[16])
	assert.Equal(t, "はい", row[18])
	assert.Equal(t, "2024-05-10 14:30:00", row[19])
	assert.Equal(t, "2024-01-02 03:04:05", row[20])
}

func TestItemToRowUnsold(t *testing.T) {
	item := models.Item{Name: "椅子", ItemType: models.ItemTypeConsignment}

	row := itemToRow(&item)

	assert.Equal(t, "CONSIGNMENT", row[0])
	assert.Equal(t, "いいえ", row[18])
	assert.Equal(t, "", row[19])
	// Unset prices and relations render empty, not "0".
	assert.Equal(t, "", row[4])
	assert.Equal(t, "", row[11])
	assert.Equal(t, "", row[12])
}

func TestExportCSVQuotesEveryField(t *testing.T) {
	s := &CsvService{}
	out := s.ExportCSV([]models.Item{{Name: "椅子", SKU: "SKU-00001"}})

	assert.True(t, strings.HasPrefix(out, csvcodec.BOM))
	assert.Contains(t, out, "\"種別\"")
	assert.Contains(t, out, "\"SKU-00001\"")
	assert.True(t, strings.HasSuffix(out, "\r\n"))
}

func TestExportLegacyConsignmentCSVUsesBareLF(t *testing.T) {
	s := &CsvService{}
	out := s.ExportLegacyConsignmentCSV([]models.Item{{Name: "椅子"}})

	assert.NotContains(t, out, "\r\n")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestTemplateCSV(t *testing.T) {
	s := &CsvService{}
	out := s.TemplateCSV()

	rows := csvcodec.Parse(out)
	assert.Len(t, rows, 2)
	assert.Equal(t, csvHeaders, rows[0])
	assert.Equal(t, "サンプル商品", rows[1][3])
}

func TestImportItemType(t *testing.T) {
	cases := []struct {
		name  string
		token string
		code  string
		want  models.ItemType
	}{
		{"explicit product", "PRODUCT", "", models.ItemTypeProduct},
		{"explicit consignment lowercase", "consignment", "", models.ItemTypeConsignment},
		{"falls back to sku prefix", "", "CSG-00001", models.ItemTypeConsignment},
		{"invalid token defers to sku", "INVALID", "CSG-00001", models.ItemTypeConsignment},
		{"defaults to product", "", "", models.ItemTypeProduct},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, importItemType(tc.token, tc.code))
		})
	}
}

func TestImportPrice(t *testing.T) {
	d, err := importPrice("1,234.50", "原価")
	assert.NoError(t, err)
	assert.True(t, d.Valid)
	assert.Equal(t, "1234.5", d.Decimal.String())

	d, err = importPrice("", "原価")
	assert.NoError(t, err)
	assert.False(t, d.Valid)

	_, err = importPrice("abc", "原価")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "原価")
}
