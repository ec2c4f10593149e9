package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/procurelink/backend/internal/builder"
	"github.com/procurelink/backend/internal/service"
)

// EditorHandler 模板编辑器 Handler
type EditorHandler struct {
	editorService service.EditorService
}

// NewEditorHandler 创建 Handler
func NewEditorHandler(editorService service.EditorService) *EditorHandler {
	return &EditorHandler{editorService: editorService}
}

// CreateSession 创建编辑会话（从标准目录或既有模板）
func (h *EditorHandler) CreateSession(c *gin.Context) {
	var req struct {
		TemplateID *uint  `json:"template_id"`
		CreatedBy  string `json:"created_by"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.editorService.CreateSession(c.Request.Context(), req.TemplateID, req.CreatedBy)
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": session})
}

// GetSession 获取会话状态
func (h *EditorHandler) GetSession(c *gin.Context) {
	session, err := h.editorService.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": session})
}

// CloseSession 丢弃会话
func (h *EditorHandler) CloseSession(c *gin.Context) {
	if err := h.editorService.CloseSession(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "closed"})
}

// SetMetadata 更新模板元数据
func (h *EditorHandler) SetMetadata(c *gin.Context) {
	var req struct {
		Title    string `json:"title"`
		Category string `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.editorService.SetMetadata(c.Request.Context(), c.Param("id"), req.Title, req.Category); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

// AddSection 新增分区
func (h *EditorHandler) AddSection(c *gin.Context) {
	req := service.AddSectionRequest{Position: -1}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sectionID, err := h.editorService.AddSection(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"section_id": sectionID}})
}

// UpdateSection 更新分区标题/描述
func (h *EditorHandler) UpdateSection(c *gin.Context) {
	var req service.UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.editorService.UpdateSection(c.Request.Context(), c.Param("id"), c.Param("sectionId"), req); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

// RemoveSection 删除分区
func (h *EditorHandler) RemoveSection(c *gin.Context) {
	if err := h.editorService.RemoveSection(c.Request.Context(), c.Param("id"), c.Param("sectionId")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// ToggleSection 切换分区展开/折叠
func (h *EditorHandler) ToggleSection(c *gin.Context) {
	expanded, err := h.editorService.ToggleSection(c.Request.Context(), c.Param("id"), c.Param("sectionId"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"expanded": expanded}})
}

// AddField 新增字段
func (h *EditorHandler) AddField(c *gin.Context) {
	var req service.AddFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fieldID, err := h.editorService.AddField(c.Request.Context(), c.Param("id"), c.Param("sectionId"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"field_id": fieldID}})
}

// UpdateField 字段局部更新
func (h *EditorHandler) UpdateField(c *gin.Context) {
	var req service.UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.editorService.UpdateField(c.Request.Context(), c.Param("id"), c.Param("sectionId"), c.Param("fieldId"), req); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

// RemoveField 删除字段
func (h *EditorHandler) RemoveField(c *gin.Context) {
	if err := h.editorService.RemoveField(c.Request.Context(), c.Param("id"), c.Param("sectionId"), c.Param("fieldId")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// BeginDrag 开始拖拽
func (h *EditorHandler) BeginDrag(c *gin.Context) {
	var req service.DragBeginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.editorService.BeginDrag(c.Request.Context(), c.Param("id"), req); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "dragging"})
}

// Drop 放下，执行重排
func (h *EditorHandler) Drop(c *gin.Context) {
	var req service.DragDropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.editorService.Drop(c.Request.Context(), c.Param("id"), req); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "dropped"})
}

// EndDrag 放弃拖拽
func (h *EditorHandler) EndDrag(c *gin.Context) {
	if err := h.editorService.EndDrag(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ended"})
}

// Preview 构建可填写预览
func (h *EditorHandler) Preview(c *gin.Context) {
	preview, err := h.editorService.Preview(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": preview})
}

// SetPreviewValue 填写预览字段值
func (h *EditorHandler) SetPreviewValue(c *gin.Context) {
	var req struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := h.editorService.SetPreviewValue(c.Request.Context(), c.Param("id"), c.Param("fieldId"), req.Value)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": state})
}

// Submit 提交模板
func (h *EditorHandler) Submit(c *gin.Context) {
	var req struct {
		By string `json:"by"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	template, err := h.editorService.Submit(c.Request.Context(), c.Param("id"), req.By)
	if err != nil {
		if errors.Is(err, builder.ErrMissingTitle) || errors.Is(err, builder.ErrMissingCategory) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": template})
}

// respondError 将服务/构建器哨兵错误映射为 HTTP 状态码
func (h *EditorHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "editor session not found"})
	case errors.Is(err, builder.ErrSectionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "section not found"})
	case errors.Is(err, builder.ErrFieldNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "field not found"})
	case errors.Is(err, builder.ErrStandardSectionProtected):
		c.JSON(http.StatusForbidden, gin.H{"error": "standard section is protected"})
	case errors.Is(err, builder.ErrUnknownStandardSection):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown standard section"})
	case errors.Is(err, builder.ErrInvalidFieldType):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid field type"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
