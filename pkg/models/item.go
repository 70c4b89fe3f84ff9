package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ItemType string

const (
	ItemTypeProduct     ItemType = "PRODUCT"
	ItemTypeConsignment ItemType = "CONSIGNMENT"
)

func (t ItemType) IsValid() bool {
	switch t {
	case ItemTypeProduct, ItemTypeConsignment:
		return true
	default:
		return false
	}
}

type Item struct {
	ID            int                 `json:"id"`
	SKU           string              `json:"sku"`
	Name          string              `json:"name"`
	ItemType      ItemType            `json:"itemType"`
	Specification *string             `json:"specification"`
	Size          *string             `json:"size"`
	FabricColor   *string             `json:"fabricColor"`
	Designer      *string             `json:"designer"`
	Notes         *string             `json:"notes"`
	Quantity      int                 `json:"quantity"`
	CostPrice     decimal.NullDecimal `json:"costPrice"`
	ListPrice     decimal.NullDecimal `json:"listPrice"`
	ArrivalDate   *string             `json:"arrivalDate"`
	IsSold        bool                `json:"isSold"`
	SoldAt        *time.Time          `json:"soldAt"`
	Category      *Category           `json:"category"`
	Manufacturer  *Manufacturer       `json:"manufacturer"`
	Location      *Location           `json:"location"`
	Unit          *Unit               `json:"unit"`
	Tags          []Tag               `json:"tags"`
	Materials     []ItemMaterial      `json:"materials"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// FlatItemRecord is the scan target for the joined item query. Related
// entity names come from LEFT JOINs, so they are nullable.
type FlatItemRecord struct {
	ID               int                 `db:"id"`
	SKU              string              `db:"sku"`
	Name             string              `db:"name"`
	ItemType         string              `db:"item_type"`
	Specification    *string             `db:"specification"`
	Size             *string             `db:"size"`
	FabricColor      *string             `db:"fabric_color"`
	Designer         *string             `db:"designer"`
	Notes            *string             `db:"notes"`
	Quantity         int                 `db:"quantity"`
	CostPrice        decimal.NullDecimal `db:"cost_price"`
	ListPrice        decimal.NullDecimal `db:"list_price"`
	ArrivalDate      *string             `db:"arrival_date"`
	IsSold           bool                `db:"is_sold"`
	SoldAt           *time.Time          `db:"sold_at"`
	CategoryID       *int                `db:"category_id"`
	CategoryName     *string             `db:"category_name"`
	ManufacturerID   *int                `db:"manufacturer_id"`
	ManufacturerName *string             `db:"manufacturer_name"`
	LocationID       *int                `db:"location_id"`
	LocationName     *string             `db:"location_name"`
	UnitID           *int                `db:"unit_id"`
	UnitName         *string             `db:"unit_name"`
	CreatedAt        time.Time           `db:"created_at"`
	UpdatedAt        time.Time           `db:"updated_at"`
}

func (f *FlatItemRecord) TransformToItem() Item {
	item := Item{
		ID:            f.ID,
		SKU:           f.SKU,
		Name:          f.Name,
		ItemType:      ItemType(f.ItemType),
		Specification: f.Specification,
		Size:          f.Size,
		FabricColor:   f.FabricColor,
		Designer:      f.Designer,
		Notes:         f.Notes,
		Quantity:      f.Quantity,
		CostPrice:     f.CostPrice,
		ListPrice:     f.ListPrice,
		ArrivalDate:   f.ArrivalDate,
		IsSold:        f.IsSold,
		SoldAt:        f.SoldAt,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}

	if f.CategoryID != nil {
		item.Category = &Category{ID: *f.CategoryID}
		if f.CategoryName != nil {
			item.Category.Name = *f.CategoryName
		}
	}
	if f.ManufacturerID != nil {
		item.Manufacturer = &Manufacturer{ID: *f.ManufacturerID}
		if f.ManufacturerName != nil {
			item.Manufacturer.Name = *f.ManufacturerName
		}
	}
	if f.LocationID != nil {
		item.Location = &Location{ID: *f.LocationID}
		if f.LocationName != nil {
			item.Location.Name = *f.LocationName
		}
	}
	if f.UnitID != nil {
		item.Unit = &Unit{ID: *f.UnitID}
		if f.UnitName != nil {
			item.Unit.Name = *f.UnitName
		}
	}

	return item
}
