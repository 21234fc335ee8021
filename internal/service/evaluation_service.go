package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-events/backend/internal/dto"
	"campus-events/backend/internal/model"
	"campus-events/backend/internal/repository"
)

// ── 评分模块业务错误 ──

var (
	ErrDuplicateEvaluation = errors.New("该报告已评过分，不可重复提交")
	ErrEvaluationNotFound  = errors.New("评分记录不存在")
)

// EvaluationService 评分业务接口
type EvaluationService interface {
	// Submit 评审对报告提交评分，同一评审对同一报告仅一次
	Submit(ctx context.Context, presentationID, evaluatorID string, req *dto.SubmitEvaluationRequest) (*dto.EvaluationResponse, error)
	// UpdateOwn 评审修改自己已提交的评分
	UpdateOwn(ctx context.Context, presentationID, evaluatorID string, req *dto.SubmitEvaluationRequest) (*dto.EvaluationResponse, error)
	// GetSummary 报告评分汇总（均分 + 明细）
	GetSummary(ctx context.Context, presentationID string) (*dto.PresentationScoreResponse, error)
}

type evaluationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEvaluationService 创建 EvaluationService 实例
func NewEvaluationService(repo *repository.Repository, logger *zap.Logger) EvaluationService {
	return &evaluationService{repo: repo, logger: logger}
}

// ────────────────────── Submit ──────────────────────

func (s *evaluationService) Submit(ctx context.Context, presentationID, evaluatorID string, req *dto.SubmitEvaluationRequest) (*dto.EvaluationResponse, error) {
	// 报告必须存在
	if _, err := s.repo.Presentation.GetByID(ctx, presentationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPresentationNotFound
		}
		s.logger.Error("查询报告失败", zap.String("presentation_id", presentationID), zap.Error(err))
		return nil, err
	}

	e := &model.Evaluation{
		PresentationID: presentationID,
		EvaluatorID:    evaluatorID,
		Score:          *req.Score,
		Comment:        req.Comment,
	}

	// 先查后插仅为友好报错，并发竞争由唯一约束兜底
	if _, err := s.repo.Evaluation.GetByEvaluator(ctx, presentationID, evaluatorID); err == nil {
		return nil, ErrDuplicateEvaluation
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询评分失败", zap.Error(err))
		return nil, err
	}

	if err := s.repo.Evaluation.Create(ctx, e); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEvaluation
		}
		s.logger.Error("写入评分失败", zap.Error(err))
		return nil, err
	}

	return s.toEvaluationResponse(e), nil
}

// ────────────────────── UpdateOwn ──────────────────────

func (s *evaluationService) UpdateOwn(ctx context.Context, presentationID, evaluatorID string, req *dto.SubmitEvaluationRequest) (*dto.EvaluationResponse, error) {
	e, err := s.repo.Evaluation.GetByEvaluator(ctx, presentationID, evaluatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEvaluationNotFound
		}
		s.logger.Error("查询评分失败", zap.Error(err))
		return nil, err
	}

	e.Score = *req.Score
	e.Comment = req.Comment

	if err := s.repo.Evaluation.Update(ctx, e); err != nil {
		s.logger.Error("更新评分失败", zap.String("id", e.EvaluationID), zap.Error(err))
		return nil, err
	}

	return s.toEvaluationResponse(e), nil
}

// ────────────────────── GetSummary ──────────────────────

func (s *evaluationService) GetSummary(ctx context.Context, presentationID string) (*dto.PresentationScoreResponse, error) {
	if _, err := s.repo.Presentation.GetByID(ctx, presentationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPresentationNotFound
		}
		s.logger.Error("查询报告失败", zap.String("presentation_id", presentationID), zap.Error(err))
		return nil, err
	}

	list, err := s.repo.Evaluation.ListByPresentation(ctx, presentationID)
	if err != nil {
		s.logger.Error("列出评分失败", zap.String("presentation_id", presentationID), zap.Error(err))
		return nil, err
	}

	summary := &dto.PresentationScoreResponse{
		PresentationID: presentationID,
		Count:          len(list),
		Evaluations:    make([]dto.EvaluationResponse, 0, len(list)),
	}

	var sum float64
	for i := range list {
		sum += list[i].Score
		summary.Evaluations = append(summary.Evaluations, *s.toEvaluationResponse(&list[i]))
	}
	if len(list) > 0 {
		summary.AverageScore = sum / float64(len(list))
	}
	return summary, nil
}

// ── 内部辅助方法 ──

func (s *evaluationService) toEvaluationResponse(e *model.Evaluation) *dto.EvaluationResponse {
	resp := &dto.EvaluationResponse{
		ID:             e.EvaluationID,
		PresentationID: e.PresentationID,
		EvaluatorID:    e.EvaluatorID,
		Score:          e.Score,
		Comment:        e.Comment,
		CreatedAt:      e.CreatedAt.Format(time.RFC3339),
	}
	if e.Evaluator != nil {
		resp.EvaluatorName = e.Evaluator.Name
	}
	return resp
}
