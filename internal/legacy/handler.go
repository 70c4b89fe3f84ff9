package legacy

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yamagishi2448dev-lab/inventory-main-sub001/internal/items"
	"github.com/yamagishi2448dev-lab/inventory-main-sub001/pkg/models"
	"github.com/yamagishi2448dev-lab/inventory-main-sub001/pkg/security"
)

// family pins one legacy resource surface to an item category.
type family struct {
	path      string
	listKey   string
	entityKey string
	idsKey    string
	itemType  models.ItemType
	searchSKU bool
}

var families = []family{
	{
		path:      "products",
		listKey:   "products",
		entityKey: "product",
		idsKey:    "productIds",
		itemType:  models.ItemTypeProduct,
		searchSKU: true,
	},
	{
		path:      "consignments",
		listKey:   "consignments",
		entityKey: "consignment",
		idsKey:    "consignmentIds",
		itemType:  models.ItemTypeConsignment,
	},
}

type LegacyHandler struct {
	service    *items.ItemService
	csvService *items.CsvService
}

func NewHandler(service *items.ItemService, csvService *items.CsvService) *LegacyHandler {
	return &LegacyHandler{
		service:    service,
		csvService: csvService,
	}
}

func (h *LegacyHandler) RegisterRoutes(router *gin.RouterGroup) {
	for _, f := range families {
		f := f
		router.GET("/"+f.path, h.list(f))
		router.GET("/"+f.path+"/export", h.exportCSV(f))
		router.GET("/"+f.path+"/:id", h.get(f))
		router.POST("/"+f.path, security.Authorize("editor"), h.create(f))
		router.PUT("/"+f.path+"/:id", security.Authorize("editor"), h.update(f))
		router.DELETE("/"+f.path+"/:id", security.Authorize("editor"), h.delete(f))
		router.POST("/"+f.path+"/bulk-edit", security.Authorize("editor"), h.bulkEdit(f))
		router.POST("/"+f.path+"/bulk-delete", security.Authorize("editor"), h.bulkDelete(f))
	}

	router.POST("/print/filter", h.filterPrintItems)
}

func (h *LegacyHandler) list(f family) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q items.ListItemsQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
			return
		}
		q.ItemType = string(f.itemType)
		q.SearchSKU = f.searchSKU

		list, total, err := h.service.ListItems(q)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve items", "details": err.Error()})
			return
		}

		payload := map[string]interface{}{
			"items":  list,
			"total":  total,
			"limit":  q.Limit,
			"offset": q.Offset,
		}

		c.JSON(http.StatusOK, MapItemsToLegacyList(payload, f.listKey))
	}
}

func (h *LegacyHandler) get(f family) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, ok := h.fetchFamilyItem(c, f)
		if !ok {
			return
		}

		c.JSON(http.StatusOK, MapItemToLegacyEntity(map[string]interface{}{"item": item}, f.entityKey))
	}
}

func (h *LegacyHandler) create(f family) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req items.ItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
			return
		}
		req.ItemType = f.itemType

		item, err := h.service.CreateItem(req, items.ActorFromContext(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to create item", "details": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, MapItemToLegacyEntity(map[string]interface{}{"item": item}, f.entityKey))
	}
}

func (h *LegacyHandler) update(f family) gin.HandlerFunc {
	return func(c *gin.Context) {
		existing, ok := h.fetchFamilyItem(c, f)
		if !ok {
			return
		}

		var req items.ItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
			return
		}
		req.ItemType = f.itemType

		item, err := h.service.UpdateItem(existing.ID, req, items.ActorFromContext(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to update item", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, MapItemToLegacyEntity(map[string]interface{}{"item": item}, f.entityKey))
	}
}

func (h *LegacyHandler) delete(f family) gin.HandlerFunc {
	return func(c *gin.Context) {
		existing, ok := h.fetchFamilyItem(c, f)
		if !ok {
			return
		}

		if err := h.service.DeleteItem(existing.ID, items.ActorFromContext(c)); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to delete item", "details": err.Error()})
			return
		}

		c.Status(http.StatusNoContent)
	}
}

func (h *LegacyHandler) bulkEdit(f family) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload map[string]interface{}
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
			return
		}

		normalized := NormalizeBulkEditPayload(payload, f.idsKey)

		ids, err := idsToInts(normalized["ids"].([]string))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid ids", "details": err.Error()})
			return
		}
		if len(ids) == 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "No ids provided"})
			return
		}

		var updates items.BulkUpdates
		if raw, ok := normalized["updates"]; ok {
			encoded, err := json.Marshal(raw)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid updates payload", "details": err.Error()})
				return
			}
			if err := json.Unmarshal(encoded, &updates); err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid updates payload", "details": err.Error()})
				return
			}
		}

		affected, err := h.service.BulkEdit(items.BulkEditRequest{IDs: ids, Updates: updates}, items.ActorFromContext(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to apply bulk edit", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"updated": affected})
	}
}

func (h *LegacyHandler) bulkDelete(f family) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload map[string]interface{}
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
			return
		}

		ids, err := idsToInts(ExtractIDs(payload, []string{f.idsKey, "ids"}))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid ids", "details": err.Error()})
			return
		}
		if len(ids) == 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "No ids provided"})
			return
		}

		deleted, err := h.service.BulkDelete(items.BulkDeleteRequest{IDs: ids}, items.ActorFromContext(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to delete items", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"deleted": deleted})
	}
}

// exportCSV keeps the row separator each legacy surface committed to: CRLF
// for products, bare LF for consignments.
func (h *LegacyHandler) exportCSV(f family) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q items.ListItemsQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
			return
		}
		q.ItemType = string(f.itemType)
		q.SearchSKU = f.searchSKU
		q.Limit = 10000
		q.Offset = 0

		list, _, err := h.service.ListItems(q)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve items", "details": err.Error()})
			return
		}

		var content string
		if f.itemType == models.ItemTypeConsignment {
			content = h.csvService.ExportLegacyConsignmentCSV(list)
		} else {
			content = h.csvService.ExportCSV(list)
		}

		filename := fmt.Sprintf("%s_%s.csv", f.path, time.Now().Format("20060102_150405"))
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(content))
	}
}

func (h *LegacyHandler) filterPrintItems(c *gin.Context) {
	var payload struct {
		Items    []interface{} `json:"items"`
		ItemType string        `json:"itemType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": FilterPrintItemsByType(payload.Items, payload.ItemType)})
}

// fetchFamilyItem loads the item and hides rows of the other category, so
// a consignment can never leak through the products surface.
func (h *LegacyHandler) fetchFamilyItem(c *gin.Context, f family) (*models.Item, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid id", "details": err.Error()})
		return nil, false
	}

	item, err := h.service.GetItem(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return nil, false
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve item", "details": err.Error()})
		return nil, false
	}

	if item.ItemType != f.itemType {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return nil, false
	}

	return item, true
}

func idsToInts(ids []string) ([]int, error) {
	result := make([]int, 0, len(ids))
	for _, id := range ids {
		n, err := strconv.Atoi(id)
		if err != nil {
			return nil, fmt.Errorf("id %q is not numeric", id)
		}
		result = append(result, n)
	}
	return result, nil
}
