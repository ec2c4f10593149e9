package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/procurelink/backend/internal/builder"
)

// CatalogHandler 标准分区目录 Handler
type CatalogHandler struct{}

// NewCatalogHandler 创建 Handler
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// List 返回内置标准分区目录（只读配置）
func (h *CatalogHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": builder.StandardCatalog()})
}
