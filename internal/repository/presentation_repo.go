package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-events/backend/internal/model"
)

// PresentationRepository 报告数据访问接口
type PresentationRepository interface {
	Create(ctx context.Context, p *model.Presentation) error
	GetByID(ctx context.Context, id string) (*model.Presentation, error)
	ListBySession(ctx context.Context, sessionID string) ([]model.Presentation, error)
	Update(ctx context.Context, p *model.Presentation) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type presentationRepo struct {
	db *gorm.DB
}

// NewPresentationRepo 创建 PresentationRepository 实例
func NewPresentationRepo(db *gorm.DB) PresentationRepository {
	return &presentationRepo{db: db}
}

func (r *presentationRepo) Create(ctx context.Context, p *model.Presentation) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *presentationRepo) GetByID(ctx context.Context, id string) (*model.Presentation, error) {
	var p model.Presentation
	err := r.db.WithContext(ctx).
		Where("presentation_id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *presentationRepo) ListBySession(ctx context.Context, sessionID string) ([]model.Presentation, error) {
	var list []model.Presentation
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("position ASC, title ASC").
		Find(&list).Error
	return list, err
}

func (r *presentationRepo) Update(ctx context.Context, p *model.Presentation) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *presentationRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Presentation{}).
		Where("presentation_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
