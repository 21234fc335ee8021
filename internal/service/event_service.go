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

// ── 活动模块业务错误 ──

var (
	ErrEventNotFound    = errors.New("活动不存在")
	ErrInvalidEventTime = errors.New("活动时间非法：结束时间须不早于开始时间")
)

// EventService 活动业务接口
type EventService interface {
	Create(ctx context.Context, req *dto.CreateEventRequest, callerID string) (*dto.EventResponse, error)
	GetByID(ctx context.Context, id string) (*dto.EventResponse, error)
	List(ctx context.Context, req *dto.EventListRequest) ([]dto.EventResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateEventRequest, callerID string) (*dto.EventResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type eventService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEventService 创建 EventService 实例
func NewEventService(repo *repository.Repository, logger *zap.Logger) EventService {
	return &eventService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *eventService) Create(ctx context.Context, req *dto.CreateEventRequest, callerID string) (*dto.EventResponse, error) {
	startsAt, endsAt, err := parseEventPeriod(req.StartsAt, req.EndsAt)
	if err != nil {
		return nil, err
	}

	event := &model.Event{
		Name:                req.Name,
		Description:         req.Description,
		Venue:               req.Venue,
		CampusName:          req.CampusName,
		StartsAt:            startsAt,
		EndsAt:              endsAt,
		CheckinRadiusMeters: req.CheckinRadiusMeters,
		IsActive:            true,
	}
	event.CreatedBy = &callerID
	event.UpdatedBy = &callerID

	if err := s.repo.Event.Create(ctx, event); err != nil {
		s.logger.Error("创建活动失败", zap.Error(err))
		return nil, err
	}

	return s.toEventResponse(event), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *eventService) GetByID(ctx context.Context, id string) (*dto.EventResponse, error) {
	event, err := s.repo.Event.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("查询活动失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toEventResponse(event), nil
}

// ────────────────────── List ──────────────────────

func (s *eventService) List(ctx context.Context, req *dto.EventListRequest) ([]dto.EventResponse, int64, error) {
	events, total, err := s.repo.Event.List(ctx, req.IncludeInactive, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出活动失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		result = append(result, *s.toEventResponse(&events[i]))
	}
	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *eventService) Update(ctx context.Context, id string, req *dto.UpdateEventRequest, callerID string) (*dto.EventResponse, error) {
	event, err := s.repo.Event.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("查询活动失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Venue != nil {
		event.Venue = *req.Venue
	}
	if req.CampusName != nil {
		event.CampusName = *req.CampusName
	}
	if req.StartsAt != nil {
		t, err := time.Parse(time.RFC3339, *req.StartsAt)
		if err != nil {
			return nil, ErrInvalidEventTime
		}
		event.StartsAt = t
	}
	if req.EndsAt != nil {
		t, err := time.Parse(time.RFC3339, *req.EndsAt)
		if err != nil {
			return nil, ErrInvalidEventTime
		}
		event.EndsAt = t
	}
	if event.EndsAt.Before(event.StartsAt) {
		return nil, ErrInvalidEventTime
	}
	if req.CheckinRadiusMeters != nil {
		event.CheckinRadiusMeters = req.CheckinRadiusMeters
	}
	if req.IsActive != nil {
		event.IsActive = *req.IsActive
	}
	event.UpdatedBy = &callerID

	if err := s.repo.Event.Update(ctx, event); err != nil {
		s.logger.Error("更新活动失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toEventResponse(event), nil
}

// ────────────────────── Delete ──────────────────────

func (s *eventService) Delete(ctx context.Context, id string, callerID string) error {
	_, err := s.repo.Event.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		s.logger.Error("查询活动失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Event.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除活动失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func parseEventPeriod(startsAt, endsAt string) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, startsAt)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidEventTime
	}
	end, err := time.Parse(time.RFC3339, endsAt)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidEventTime
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, ErrInvalidEventTime
	}
	return start, end, nil
}

func (s *eventService) toEventResponse(event *model.Event) *dto.EventResponse {
	return &dto.EventResponse{
		ID:                  event.EventID,
		Name:                event.Name,
		Description:         event.Description,
		Venue:               event.Venue,
		CampusName:          event.CampusName,
		StartsAt:            event.StartsAt.Format(time.RFC3339),
		EndsAt:              event.EndsAt.Format(time.RFC3339),
		CheckinRadiusMeters: event.CheckinRadiusMeters,
		IsActive:            event.IsActive,
		CreatedAt:           event.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           event.UpdatedAt.Format(time.RFC3339),
	}
}
