package changelog

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ChangeLogHandler struct {
	repository *ChangeLogRepository
}

func NewHandler(r *ChangeLogRepository) *ChangeLogHandler {
	return &ChangeLogHandler{repository: r}
}

func (h *ChangeLogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/changelog", h.GetEntries)
}

func (h *ChangeLogHandler) GetEntries(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}

	entries, err := h.repository.GetEntries(q)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve change log", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
