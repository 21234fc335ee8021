package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"campus-events/backend/internal/dto"
	"campus-events/backend/internal/service"
	"campus-events/backend/pkg/response"
)

// PresentationHandler 报告模块 HTTP 处理器
type PresentationHandler struct {
	presentationSvc service.PresentationService
}

// NewPresentationHandler 创建 PresentationHandler
func NewPresentationHandler(presentationSvc service.PresentationService) *PresentationHandler {
	return &PresentationHandler{presentationSvc: presentationSvc}
}

// CreatePresentation 在场次下创建报告
// POST /api/v1/sessions/:id/presentations
func (h *PresentationHandler) CreatePresentation(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePresentationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	p, err := h.presentationSvc.Create(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.NotFound(c, 22001, "场次不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, p)
}

// GetPresentation 查询单个报告
// GET /api/v1/presentations/:id
func (h *PresentationHandler) GetPresentation(c *gin.Context) {
	p, err := h.presentationSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPresentationNotFound) {
			response.NotFound(c, 23001, "报告不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, p)
}

// ListPresentations 场次下的报告列表
// GET /api/v1/sessions/:id/presentations
func (h *PresentationHandler) ListPresentations(c *gin.Context) {
	list, err := h.presentationSvc.ListBySession(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, list)
}

// UpdatePresentation 更新报告
// PUT /api/v1/presentations/:id
func (h *PresentationHandler) UpdatePresentation(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdatePresentationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	p, err := h.presentationSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		if errors.Is(err, service.ErrPresentationNotFound) {
			response.NotFound(c, 23001, "报告不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, p)
}

// DeletePresentation 删除报告（软删除）
// DELETE /api/v1/presentations/:id
func (h *PresentationHandler) DeletePresentation(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.presentationSvc.Delete(c.Request.Context(), c.Param("id"), callerID); err != nil {
		if errors.Is(err, service.ErrPresentationNotFound) {
			response.NotFound(c, 23001, "报告不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
