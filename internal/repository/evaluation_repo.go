package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-events/backend/internal/model"
)

// EvaluationRepository 评分数据访问接口
type EvaluationRepository interface {
	Create(ctx context.Context, e *model.Evaluation) error
	GetByEvaluator(ctx context.Context, presentationID, evaluatorID string) (*model.Evaluation, error)
	ListByPresentation(ctx context.Context, presentationID string) ([]model.Evaluation, error)
	Update(ctx context.Context, e *model.Evaluation) error
}

type evaluationRepo struct {
	db *gorm.DB
}

// NewEvaluationRepo 创建 EvaluationRepository 实例
func NewEvaluationRepo(db *gorm.DB) EvaluationRepository {
	return &evaluationRepo{db: db}
}

func (r *evaluationRepo) Create(ctx context.Context, e *model.Evaluation) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *evaluationRepo) GetByEvaluator(ctx context.Context, presentationID, evaluatorID string) (*model.Evaluation, error) {
	var e model.Evaluation
	err := r.db.WithContext(ctx).
		Where("presentation_id = ? AND evaluator_id = ?", presentationID, evaluatorID).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *evaluationRepo) ListByPresentation(ctx context.Context, presentationID string) ([]model.Evaluation, error) {
	var list []model.Evaluation
	err := r.db.WithContext(ctx).
		Preload("Evaluator").
		Where("presentation_id = ?", presentationID).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *evaluationRepo) Update(ctx context.Context, e *model.Evaluation) error {
	return r.db.WithContext(ctx).Save(e).Error
}
