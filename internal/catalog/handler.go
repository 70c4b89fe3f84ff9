package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	custom_error "github.com/yamagishi2448dev-lab/inventory-main-sub001/pkg/errors"
	"github.com/yamagishi2448dev-lab/inventory-main-sub001/pkg/security"
)

// Tables exposes the lookup-table names keyed by their route segment.
var Tables = map[string]string{
	"categories":     "categories",
	"manufacturers":  "manufacturers",
	"locations":      "locations",
	"units":          "units",
	"tags":           "tags",
	"material-types": "material_types",
}

type CatalogHandler struct {
	repository *CatalogRepository
}

func NewHandler(r *CatalogRepository) *CatalogHandler {
	return &CatalogHandler{repository: r}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	for path, table := range Tables {
		table := table
		router.GET("/"+path, h.list(table))
		router.POST("/"+path, security.Authorize("editor"), h.create(table))
		router.DELETE("/"+path+"/:id", security.Authorize("editor"), h.delete(table))
	}
}

func (h *CatalogHandler) list(table string) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := h.repository.List(table)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve entries", "details": err.Error()})
			return
		}
		if entries == nil {
			entries = []Entry{}
		}

		c.JSON(http.StatusOK, entries)
	}
}

func (h *CatalogHandler) create(table string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name string `json:"name" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
			return
		}

		entry, err := h.repository.Create(table, req.Name)
		if err != nil {
			var uniqueErr *custom_error.UniqueViolationError
			if errors.As(err, &uniqueErr) {
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Name already exists", "details": err.Error()})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to create entry", "details": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, entry)
	}
}

func (h *CatalogHandler) delete(table string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid id", "details": err.Error()})
			return
		}

		if err := h.repository.Delete(table, id); err != nil {
			var fkErr *custom_error.ForeignKeyViolationError
			if errors.As(err, &fkErr) {
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Entry is still referenced by items", "details": err.Error()})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to delete entry", "details": err.Error()})
			return
		}

		c.Status(http.StatusNoContent)
	}
}
