package items

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yamagishi2448dev-lab/inventory-main-sub001/internal/catalog"
	"github.com/yamagishi2448dev-lab/inventory-main-sub001/internal/csvcodec"
	"github.com/yamagishi2448dev-lab/inventory-main-sub001/internal/sku"
	"github.com/yamagishi2448dev-lab/inventory-main-sub001/pkg/models"
)

// Column labels of the item CSV, in export order. Import resolves columns
// by label so reordered files still load.
var csvHeaders = []string{
	"種別", "ID", "SKU", "名前", "メーカー", "カテゴリ", "仕様", "サイズ",
	"生地・色", "数量", "単位", "原価", "上代", "入荷時期", "置き場所",
	"デザイナー", "タグ", "備考", "売約", "売約日時", "作成日時", "更新日時",
}

const (
	soldYes       = "はい"
	soldNo        = "いいえ"
	timestampForm = "2006-01-02 15:04:05"
)

type CsvService struct {
	items   *ItemService
	catalog *catalog.CatalogRepository
	r       *ItemRepository
}

func NewCsvService(items *ItemService, catalogRepo *catalog.CatalogRepository, r *ItemRepository) *CsvService {
	return &CsvService{
		items:   items,
		catalog: catalogRepo,
		r:       r,
	}
}

// ExportCSV renders the full column set with every field quoted, CRLF rows.
func (s *CsvService) ExportCSV(items []models.Item) string {
	rows := make([][]string, 0, len(items))
	for i := range items {
		rows = append(rows, itemToRow(&items[i]))
	}

	return csvcodec.Serialize(csvHeaders, rows, csvcodec.SerializeOptions{QuoteAll: true})
}

// ExportLegacyConsignmentCSV keeps the bare-LF rows its existing consumers
// split on.
func (s *CsvService) ExportLegacyConsignmentCSV(items []models.Item) string {
	rows := make([][]string, 0, len(items))
	for i := range items {
		rows = append(rows, itemToRow(&items[i]))
	}

	return csvcodec.Serialize(csvHeaders, rows, csvcodec.SerializeOptions{
		RowSeparator: "\n",
		QuoteAll:     true,
	})
}

// TemplateCSV is the import template: headers plus one illustrative row,
// minimally quoted.
func (s *CsvService) TemplateCSV() string {
	sample := []string{
		"PRODUCT", "", "", "サンプル商品", "サンプルメーカー", "チェア", "W600×D600×H700", "M",
		"オーク・ナチュラル", "1", "脚", "10000", "25000", "2024年5月", "倉庫A",
		"山田太郎", "新作|限定", "備考欄", soldNo, "", "", "",
	}

	return csvcodec.Serialize(csvHeaders, [][]string{sample}, csvcodec.SerializeOptions{})
}

func itemToRow(item *models.Item) []string {
	tagNames := make([]string, 0, len(item.Tags))
	for _, tag := range item.Tags {
		tagNames = append(tagNames, tag.Name)
	}

	sold := soldNo
	soldAt := ""
	if item.IsSold {
		sold = soldYes
		if item.SoldAt != nil {
			soldAt = item.SoldAt.Format(timestampForm)
		}
	}

	var manufacturerName, categoryName, locationName, unitName string
	if item.Manufacturer != nil {
		manufacturerName = item.Manufacturer.Name
	}
	if item.Category != nil {
		categoryName = item.Category.Name
	}
	if item.Location != nil {
		locationName = item.Location.Name
	}
	if item.Unit != nil {
		unitName = item.Unit.Name
	}

	return []string{
		string(item.ItemType),
		strconv.Itoa(item.ID),
		item.SKU,
		item.Name,
		manufacturerName,
		categoryName,
		deref(item.Specification),
		deref(item.Size),
		deref(item.FabricColor),
		strconv.Itoa(item.Quantity),
		unitName,
		nullDecimalString(item.CostPrice),
		nullDecimalString(item.ListPrice),
		deref(item.ArrivalDate),
		locationName,
		deref(item.Designer),
		strings.Join(tagNames, "|"),
		deref(item.Notes),
		sold,
		soldAt,
		item.CreatedAt.Format(timestampForm),
		item.UpdatedAt.Format(timestampForm),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullDecimalString(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportResult struct {
	ImportID string           `json:"importId"`
	Created  int              `json:"created"`
	Updated  int              `json:"updated"`
	Errors   []ImportRowError `json:"errors"`
}

// ImportCSV upserts one item per data row. Rows carrying a known SKU update
// the existing item; everything else creates a new one and gets a sequenced
// SKU. Row failures are collected, not fatal.
func (s *CsvService) ImportCSV(content string, actor Actor) (*ImportResult, error) {
	parsed := csvcodec.Parse(content)
	if len(parsed) == 0 {
		return nil, fmt.Errorf("csv file contains no rows")
	}

	columns := map[string]int{}
	for idx, label := range parsed[0] {
		columns[strings.TrimSpace(label)] = idx
	}
	if _, ok := columns["名前"]; !ok {
		return nil, fmt.Errorf("csv header is missing the 名前 column")
	}

	result := &ImportResult{
		ImportID: uuid.NewString(),
		Errors:   []ImportRowError{},
	}

	for rowIdx, row := range parsed[1:] {
		// First data row is row 2 in the file, after the header.
		fileRow := rowIdx + 2

		cell := func(label string) string {
			idx, ok := columns[label]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		req, err := s.rowToRequest(cell)
		if err != nil {
			result.Errors = append(result.Errors, ImportRowError{Row: fileRow, Message: err.Error()})
			continue
		}

		code := cell("SKU")
		var existing *models.Item
		if sku.IsValidItemSKU(code) {
			existing, err = s.r.FindBySKU(code)
			if err != nil {
				result.Errors = append(result.Errors, ImportRowError{Row: fileRow, Message: err.Error()})
				continue
			}
		}

		if existing != nil {
			if _, err := s.items.UpdateItem(existing.ID, *req, actor); err != nil {
				result.Errors = append(result.Errors, ImportRowError{Row: fileRow, Message: err.Error()})
				continue
			}
			result.Updated++
		} else {
			if _, err := s.items.CreateItem(*req, actor); err != nil {
				result.Errors = append(result.Errors, ImportRowError{Row: fileRow, Message: err.Error()})
				continue
			}
			result.Created++
		}
	}

	return result, nil
}

func (s *CsvService) rowToRequest(cell func(string) string) (*ItemRequest, error) {
	name := cell("名前")
	if name == "" {
		return nil, fmt.Errorf("名前 is required")
	}

	req := &ItemRequest{
		Name:     name,
		ItemType: importItemType(cell("種別"), cell("SKU")),
	}

	if quantity := cell("数量"); quantity != "" {
		n, err := strconv.Atoi(quantity)
		if err != nil {
			return nil, fmt.Errorf("数量 must be an integer: %q", quantity)
		}
		if n < 0 {
			n = 0
		}
		req.Quantity = n
	}

	var err error
	if req.CostPrice, err = importPrice(cell("原価"), "原価"); err != nil {
		return nil, err
	}
	if req.ListPrice, err = importPrice(cell("上代"), "上代"); err != nil {
		return nil, err
	}

	req.Specification = optional(cell("仕様"))
	req.Size = optional(cell("サイズ"))
	req.FabricColor = optional(cell("生地・色"))
	req.Designer = optional(cell("デザイナー"))
	req.Notes = optional(cell("備考"))
	req.ArrivalDate = csvcodec.ConvertExcelSerialDate(cell("入荷時期"))

	if cell("売約") == soldYes {
		req.IsSold = true
		if soldAt := cell("売約日時"); soldAt != "" {
			if t, err := time.Parse(timestampForm, soldAt); err == nil {
				req.SoldAt = &t
			}
		}
	}

	if req.ManufacturerID, err = s.resolveName("manufacturers", cell("メーカー")); err != nil {
		return nil, err
	}
	if req.CategoryID, err = s.resolveName("categories", cell("カテゴリ")); err != nil {
		return nil, err
	}
	if req.LocationID, err = s.resolveName("locations", cell("置き場所")); err != nil {
		return nil, err
	}
	if req.UnitID, err = s.resolveName("units", cell("単位")); err != nil {
		return nil, err
	}

	for _, tagName := range strings.Split(cell("タグ"), "|") {
		tagName = strings.TrimSpace(tagName)
		if tagName == "" {
			continue
		}
		tagID, err := s.catalog.FindOrCreateByName("tags", tagName)
		if err != nil {
			return nil, err
		}
		req.TagIDs = append(req.TagIDs, tagID)
	}

	return req, nil
}

func (s *CsvService) resolveName(table, name string) (*int, error) {
	if name == "" {
		return nil, nil
	}
	id, err := s.catalog.FindOrCreateByName(table, name)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func importPrice(value, label string) (decimal.NullDecimal, error) {
	if value == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(value, ",", ""))
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("%s must be numeric: %q", label, value)
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}

func importItemType(token, code string) models.ItemType {
	if itemType := models.ItemType(strings.ToUpper(token)); itemType.IsValid() {
		return itemType
	}
	if kind := sku.ItemTypeFromSKU(code); kind != sku.ItemTypeUnknown {
		return models.ItemType(kind)
	}
	return models.ItemTypeProduct
}
