package items

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	custom_error "github.com/yamagishi2448dev-lab/inventory-main-sub001/pkg/errors"
	"github.com/yamagishi2448dev-lab/inventory-main-sub001/pkg/models"
	"github.com/yamagishi2448dev-lab/inventory-main-sub001/pkg/security"
)

type ItemHandler struct {
	service    *ItemService
	csvService *CsvService
}

func NewHandler(service *ItemService, csvService *CsvService) *ItemHandler {
	return &ItemHandler{
		service:    service,
		csvService: csvService,
	}
}

func (h *ItemHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/items", h.GetItems)
	router.GET("/items/export", h.ExportCSV)
	router.GET("/items/export/excel", h.ExportExcel)
	router.GET("/items/template", h.DownloadTemplate)
	router.GET("/items/:id", h.GetItem)
	router.POST("/items", security.Authorize("editor"), h.CreateItem)
	router.PUT("/items/:id", security.Authorize("editor"), h.UpdateItem)
	router.DELETE("/items/:id", security.Authorize("editor"), h.DeleteItem)
	router.POST("/items/bulk-edit", security.Authorize("editor"), h.BulkEdit)
	router.POST("/items/bulk-delete", security.Authorize("editor"), h.BulkDelete)
	router.POST("/items/import", security.Authorize("editor"), h.ImportCSV)
}

// ActorFromContext reads the identity the JWT middleware stashed on the
// request. Both values stay nil for unauthenticated read endpoints.
func ActorFromContext(c *gin.Context) Actor {
	var actor Actor

	if raw, exists := c.Get("userID"); exists {
		if id, ok := raw.(float64); ok {
			intID := int(id)
			actor.ID = &intID
		}
	}
	if raw, exists := c.Get("username"); exists {
		if name, ok := raw.(string); ok && name != "" {
			actor.Name = &name
		}
	}

	return actor
}

func (h *ItemHandler) GetItems(c *gin.Context) {
	var q ListItemsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}

	items, total, err := h.service.ListItems(q)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve items", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":  items,
		"total":  total,
		"limit":  q.Limit,
		"offset": q.Offset,
	})
}

func (h *ItemHandler) GetItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid item id", "details": err.Error()})
		return
	}

	item, err := h.service.GetItem(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve item", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	item, err := h.service.CreateItem(req, ActorFromContext(c))
	if err != nil {
		var uniqueErr *custom_error.UniqueViolationError
		if errors.As(err, &uniqueErr) {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Duplicate SKU", "details": err.Error()})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to create item", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": item})
}

func (h *ItemHandler) UpdateItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid item id", "details": err.Error()})
		return
	}

	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	item, err := h.service.UpdateItem(id, req, ActorFromContext(c))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to update item", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

func (h *ItemHandler) DeleteItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid item id", "details": err.Error()})
		return
	}

	if err := h.service.DeleteItem(id, ActorFromContext(c)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to delete item", "details": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ItemHandler) BulkEdit(c *gin.Context) {
	var req BulkEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	affected, err := h.service.BulkEdit(req, ActorFromContext(c))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to apply bulk edit", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": affected})
}

func (h *ItemHandler) BulkDelete(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	deleted, err := h.service.BulkDelete(req, ActorFromContext(c))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to delete items", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func (h *ItemHandler) ExportCSV(c *gin.Context) {
	items, err := h.listAllForExport(c)
	if err != nil {
		return
	}

	content := h.csvService.ExportCSV(items)
	filename := fmt.Sprintf("items_%s.csv", time.Now().Format("20060102_150405"))

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(content))
}

func (h *ItemHandler) ExportExcel(c *gin.Context) {
	items, err := h.listAllForExport(c)
	if err != nil {
		return
	}

	f, err := BuildExcel(items)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to build workbook", "details": err.Error()})
		return
	}

	filename := fmt.Sprintf("items_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to write workbook", "details": err.Error()})
	}
}

func (h *ItemHandler) DownloadTemplate(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="items_template.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(h.csvService.TemplateCSV()))
}

func (h *ItemHandler) ImportCSV(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "No file provided", "details": err.Error()})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Unable to read file", "details": err.Error()})
		return
	}

	result, err := h.csvService.ImportCSV(string(content), ActorFromContext(c))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Unable to import csv", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// listAllForExport reuses the list filters but lifts the page size so an
// export covers the whole filtered set.
func (h *ItemHandler) listAllForExport(c *gin.Context) ([]models.Item, error) {
	var q ListItemsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return nil, err
	}
	q.Limit = exportPageSize
	q.Offset = 0

	items, _, err := h.service.ListItems(q)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve items", "details": err.Error()})
		return nil, err
	}

	return items, nil
}

const exportPageSize = 10000
