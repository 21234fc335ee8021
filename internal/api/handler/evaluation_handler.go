package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"campus-events/backend/internal/dto"
	"campus-events/backend/internal/service"
	"campus-events/backend/pkg/response"
)

// EvaluationHandler 评分模块 HTTP 处理器
type EvaluationHandler struct {
	evaluationSvc service.EvaluationService
}

// NewEvaluationHandler 创建 EvaluationHandler
func NewEvaluationHandler(evaluationSvc service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evaluationSvc: evaluationSvc}
}

// SubmitEvaluation 评审提交评分
// POST /api/v1/presentations/:id/evaluations
func (h *EvaluationHandler) SubmitEvaluation(c *gin.Context) {
	evaluatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.evaluationSvc.Submit(c.Request.Context(), c.Param("id"), evaluatorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPresentationNotFound):
			response.NotFound(c, 23001, "报告不存在")
		case errors.Is(err, service.ErrDuplicateEvaluation):
			response.Conflict(c, 24001, "该报告已评过分")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// UpdateEvaluation 评审修改自己的评分
// PUT /api/v1/presentations/:id/evaluations
func (h *EvaluationHandler) UpdateEvaluation(c *gin.Context) {
	evaluatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.evaluationSvc.UpdateOwn(c.Request.Context(), c.Param("id"), evaluatorID, &req)
	if err != nil {
		if errors.Is(err, service.ErrEvaluationNotFound) {
			response.NotFound(c, 24002, "评分记录不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// GetScoreSummary 报告评分汇总（管理员）
// GET /api/v1/presentations/:id/evaluations
func (h *EvaluationHandler) GetScoreSummary(c *gin.Context) {
	summary, err := h.evaluationSvc.GetSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPresentationNotFound) {
			response.NotFound(c, 23001, "报告不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, summary)
}
