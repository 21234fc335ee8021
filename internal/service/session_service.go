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

// ── 场次模块业务错误 ──

var (
	ErrSessionNotFound    = errors.New("场次不存在")
	ErrInvalidSessionTime = errors.New("场次时间非法：结束时间须不早于开始时间")
)

// SessionService 场次业务接口
type SessionService interface {
	Create(ctx context.Context, eventID string, req *dto.CreateSessionRequest, callerID string) (*dto.SessionResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SessionResponse, error)
	ListByEvent(ctx context.Context, eventID string) ([]dto.SessionResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateSessionRequest, callerID string) (*dto.SessionResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type sessionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSessionService 创建 SessionService 实例
func NewSessionService(repo *repository.Repository, logger *zap.Logger) SessionService {
	return &sessionService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *sessionService) Create(ctx context.Context, eventID string, req *dto.CreateSessionRequest, callerID string) (*dto.SessionResponse, error) {
	// 所属活动必须存在
	if _, err := s.repo.Event.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("查询活动失败", zap.String("event_id", eventID), zap.Error(err))
		return nil, err
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return nil, ErrInvalidSessionTime
	}
	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		return nil, ErrInvalidSessionTime
	}
	if endsAt.Before(startsAt) {
		return nil, ErrInvalidSessionTime
	}

	session := &model.Session{
		EventID:  eventID,
		Title:    req.Title,
		Room:     req.Room,
		StartsAt: startsAt,
		EndsAt:   endsAt,
	}
	session.CreatedBy = &callerID
	session.UpdatedBy = &callerID

	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.logger.Error("创建场次失败", zap.Error(err))
		return nil, err
	}

	return s.toSessionResponse(session), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *sessionService) GetByID(ctx context.Context, id string) (*dto.SessionResponse, error) {
	session, err := s.repo.Session.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("查询场次失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toSessionResponse(session), nil
}

// ────────────────────── ListByEvent ──────────────────────

func (s *sessionService) ListByEvent(ctx context.Context, eventID string) ([]dto.SessionResponse, error) {
	sessions, err := s.repo.Session.ListByEvent(ctx, eventID)
	if err != nil {
		s.logger.Error("列出场次失败", zap.String("event_id", eventID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		result = append(result, *s.toSessionResponse(&sessions[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *sessionService) Update(ctx context.Context, id string, req *dto.UpdateSessionRequest, callerID string) (*dto.SessionResponse, error) {
	session, err := s.repo.Session.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("查询场次失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Title != nil {
		session.Title = *req.Title
	}
	if req.Room != nil {
		session.Room = *req.Room
	}
	if req.StartsAt != nil {
		t, err := time.Parse(time.RFC3339, *req.StartsAt)
		if err != nil {
			return nil, ErrInvalidSessionTime
		}
		session.StartsAt = t
	}
	if req.EndsAt != nil {
		t, err := time.Parse(time.RFC3339, *req.EndsAt)
		if err != nil {
			return nil, ErrInvalidSessionTime
		}
		session.EndsAt = t
	}
	if session.EndsAt.Before(session.StartsAt) {
		return nil, ErrInvalidSessionTime
	}
	session.UpdatedBy = &callerID

	if err := s.repo.Session.Update(ctx, session); err != nil {
		s.logger.Error("更新场次失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toSessionResponse(session), nil
}

// ────────────────────── Delete ──────────────────────

func (s *sessionService) Delete(ctx context.Context, id string, callerID string) error {
	_, err := s.repo.Session.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		s.logger.Error("查询场次失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Session.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除场次失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *sessionService) toSessionResponse(session *model.Session) *dto.SessionResponse {
	return &dto.SessionResponse{
		ID:       session.SessionID,
		EventID:  session.EventID,
		Title:    session.Title,
		Room:     session.Room,
		StartsAt: session.StartsAt.Format(time.RFC3339),
		EndsAt:   session.EndsAt.Format(time.RFC3339),
	}
}
