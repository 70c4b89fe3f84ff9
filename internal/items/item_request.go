package items

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yamagishi2448dev-lab/inventory-main-sub001/pkg/models"
)

type ItemRequest struct {
	Name           string                `json:"name" binding:"required"`
	ItemType       models.ItemType       `json:"itemType"`
	Specification  *string               `json:"specification"`
	Size           *string               `json:"size"`
	FabricColor    *string               `json:"fabricColor"`
	Designer       *string               `json:"designer"`
	Notes          *string               `json:"notes"`
	Quantity       int                   `json:"quantity" binding:"gte=0"`
	CostPrice      decimal.NullDecimal   `json:"costPrice"`
	ListPrice      decimal.NullDecimal   `json:"listPrice"`
	ArrivalDate    *string               `json:"arrivalDate"`
	IsSold         bool                  `json:"isSold"`
	SoldAt         *time.Time            `json:"soldAt"`
	CategoryID     *int                  `json:"categoryId"`
	ManufacturerID *int                  `json:"manufacturerId"`
	LocationID     *int                  `json:"locationId"`
	UnitID         *int                  `json:"unitId"`
	TagIDs         []int                 `json:"tagIds"`
	Materials      []models.ItemMaterial `json:"materials"`
}

type ListItemsQuery struct {
	ItemFilter
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
	Limit     uint   `form:"limit,default=50"`
	Offset    uint   `form:"offset"`
}

const (
	QuantityModeSet    = "set"
	QuantityModeAdjust = "adjust"
)

type QuantityUpdate struct {
	Mode  string `json:"mode" binding:"required,oneof=set adjust"`
	Value int    `json:"value"`
}

type BulkUpdates struct {
	Quantity   *QuantityUpdate `json:"quantity"`
	LocationID *int            `json:"locationId"`
	CategoryID *int            `json:"categoryId"`
	IsSold     *bool           `json:"isSold"`
	TagIDs     *[]int          `json:"tagIds"`
}

type BulkEditRequest struct {
	IDs     []int       `json:"ids" binding:"required,min=1"`
	Updates BulkUpdates `json:"updates" binding:"required"`
}

type BulkDeleteRequest struct {
	IDs []int `json:"ids" binding:"required,min=1"`
}
