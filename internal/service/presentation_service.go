package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-events/backend/internal/dto"
	"campus-events/backend/internal/model"
	"campus-events/backend/internal/repository"
)

// ── 报告模块业务错误 ──

var (
	ErrPresentationNotFound = errors.New("报告不存在")
)

// PresentationService 报告业务接口
type PresentationService interface {
	Create(ctx context.Context, sessionID string, req *dto.CreatePresentationRequest, callerID string) (*dto.PresentationResponse, error)
	GetByID(ctx context.Context, id string) (*dto.PresentationResponse, error)
	ListBySession(ctx context.Context, sessionID string) ([]dto.PresentationResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdatePresentationRequest, callerID string) (*dto.PresentationResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type presentationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPresentationService 创建 PresentationService 实例
func NewPresentationService(repo *repository.Repository, logger *zap.Logger) PresentationService {
	return &presentationService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *presentationService) Create(ctx context.Context, sessionID string, req *dto.CreatePresentationRequest, callerID string) (*dto.PresentationResponse, error) {
	// 所属场次必须存在
	if _, err := s.repo.Session.GetByID(ctx, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("查询场次失败", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}

	p := &model.Presentation{
		SessionID:  sessionID,
		Title:      req.Title,
		Presenters: req.Presenters,
		Abstract:   req.Abstract,
		Position:   req.Position,
	}
	p.CreatedBy = &callerID
	p.UpdatedBy = &callerID

	if err := s.repo.Presentation.Create(ctx, p); err != nil {
		s.logger.Error("创建报告失败", zap.Error(err))
		return nil, err
	}

	return s.toPresentationResponse(p), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *presentationService) GetByID(ctx context.Context, id string) (*dto.PresentationResponse, error) {
	p, err := s.repo.Presentation.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPresentationNotFound
		}
		s.logger.Error("查询报告失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toPresentationResponse(p), nil
}

// ────────────────────── ListBySession ──────────────────────

func (s *presentationService) ListBySession(ctx context.Context, sessionID string) ([]dto.PresentationResponse, error) {
	list, err := s.repo.Presentation.ListBySession(ctx, sessionID)
	if err != nil {
		s.logger.Error("列出报告失败", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.PresentationResponse, 0, len(list))
	for i := range list {
		result = append(result, *s.toPresentationResponse(&list[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *presentationService) Update(ctx context.Context, id string, req *dto.UpdatePresentationRequest, callerID string) (*dto.PresentationResponse, error) {
	p, err := s.repo.Presentation.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPresentationNotFound
		}
		s.logger.Error("查询报告失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Presenters != nil {
		p.Presenters = *req.Presenters
	}
	if req.Abstract != nil {
		p.Abstract = *req.Abstract
	}
	if req.Position != nil {
		p.Position = *req.Position
	}
	p.UpdatedBy = &callerID

	if err := s.repo.Presentation.Update(ctx, p); err != nil {
		s.logger.Error("更新报告失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toPresentationResponse(p), nil
}

// ────────────────────── Delete ──────────────────────

func (s *presentationService) Delete(ctx context.Context, id string, callerID string) error {
	_, err := s.repo.Presentation.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPresentationNotFound
		}
		s.logger.Error("查询报告失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Presentation.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除报告失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *presentationService) toPresentationResponse(p *model.Presentation) *dto.PresentationResponse {
	return &dto.PresentationResponse{
		ID:         p.PresentationID,
		SessionID:  p.SessionID,
		Title:      p.Title,
		Presenters: p.Presenters,
		Abstract:   p.Abstract,
		Position:   p.Position,
	}
}
