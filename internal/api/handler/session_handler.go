package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"campus-events/backend/internal/dto"
	"campus-events/backend/internal/service"
	"campus-events/backend/pkg/response"
)

// SessionHandler 场次模块 HTTP 处理器
type SessionHandler struct {
	sessionSvc service.SessionService
}

// NewSessionHandler 创建 SessionHandler
func NewSessionHandler(sessionSvc service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// CreateSession 在活动下创建场次
// POST /api/v1/events/:id/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	session, err := h.sessionSvc.Create(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.NotFound(c, 21001, "活动不存在")
		case errors.Is(err, service.ErrInvalidSessionTime):
			response.BadRequest(c, 22002, "场次时间非法")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, session)
}

// GetSession 查询单个场次
// GET /api/v1/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, err := h.sessionSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.NotFound(c, 22001, "场次不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, session)
}

// ListSessions 活动下的场次列表
// GET /api/v1/events/:id/sessions
func (h *SessionHandler) ListSessions(c *gin.Context) {
	sessions, err := h.sessionSvc.ListByEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, sessions)
}

// UpdateSession 更新场次
// PUT /api/v1/sessions/:id
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	session, err := h.sessionSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			response.NotFound(c, 22001, "场次不存在")
		case errors.Is(err, service.ErrInvalidSessionTime):
			response.BadRequest(c, 22002, "场次时间非法")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, session)
}

// DeleteSession 删除场次（软删除）
// DELETE /api/v1/sessions/:id
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.sessionSvc.Delete(c.Request.Context(), c.Param("id"), callerID); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.NotFound(c, 22001, "场次不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
