package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User          UserRepository
	Event         EventRepository
	Session       SessionRepository
	Presentation  PresentationRepository
	Evaluation    EvaluationRepository
	CheckinPin    CheckinPinRepository
	CheckinRecord CheckinRecordRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:          NewUserRepo(db),
		Event:         NewEventRepo(db),
		Session:       NewSessionRepo(db),
		Presentation:  NewPresentationRepo(db),
		Evaluation:    NewEvaluationRepo(db),
		CheckinPin:    NewCheckinPinRepo(db),
		CheckinRecord: NewCheckinRecordRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
