package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"campus-events/backend/internal/model"
	"campus-events/backend/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id 或 matricula
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	// 模拟 matricula/email 唯一约束
	for _, u := range m.users {
		if u.Matricula == user.Matricula || u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.UserID == "" {
		user.UserID = "user-" + user.Matricula
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByMatricula(_ context.Context, matricula string) (*model.User, error) {
	for _, u := range m.users {
		if u.Matricula == matricula {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context, role string, offset, limit int) ([]model.User, int64, error) {
	var all []model.User
	for _, u := range m.users {
		if role != "" && u.Role != role {
			continue
		}
		all = append(all, *u)
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.users, id)
	return nil
}

// ── Mock EventRepository ──

type mockEventRepo struct {
	events      map[string]*model.Event
	sessionRepo *mockSessionRepo // GetWithSessions 用
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{events: make(map[string]*model.Event)}
}

func (m *mockEventRepo) Create(_ context.Context, event *model.Event) error {
	if event.EventID == "" {
		event.EventID = "event-" + event.Name
	}
	m.events[event.EventID] = event
	return nil
}

func (m *mockEventRepo) GetByID(_ context.Context, id string) (*model.Event, error) {
	if e, ok := m.events[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEventRepo) GetWithSessions(_ context.Context, id string) (*model.Event, error) {
	e, ok := m.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *e
	if m.sessionRepo != nil {
		sessions, _ := m.sessionRepo.ListByEvent(nil, id)
		copied.Sessions = sessions
	}
	return &copied, nil
}

func (m *mockEventRepo) List(_ context.Context, includeInactive bool, offset, limit int) ([]model.Event, int64, error) {
	var all []model.Event
	for _, e := range m.events {
		if !includeInactive && !e.IsActive {
			continue
		}
		all = append(all, *e)
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockEventRepo) Update(_ context.Context, event *model.Event) error {
	m.events[event.EventID] = event
	return nil
}

func (m *mockEventRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.events, id)
	return nil
}

// ── Mock SessionRepository ──

type mockSessionRepo struct {
	sessions map[string]*model.Session
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*model.Session)}
}

func (m *mockSessionRepo) Create(_ context.Context, session *model.Session) error {
	if session.SessionID == "" {
		session.SessionID = "session-" + session.Title
	}
	m.sessions[session.SessionID] = session
	return nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id string) (*model.Session, error) {
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) ListByEvent(_ context.Context, eventID string) ([]model.Session, error) {
	var result []model.Session
	for _, s := range m.sessions {
		if s.EventID == eventID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartsAt.Before(result[j].StartsAt)
	})
	return result, nil
}

func (m *mockSessionRepo) Update(_ context.Context, session *model.Session) error {
	m.sessions[session.SessionID] = session
	return nil
}

func (m *mockSessionRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.sessions, id)
	return nil
}

// ── Mock PresentationRepository ──

type mockPresentationRepo struct {
	presentations map[string]*model.Presentation
}

func newMockPresentationRepo() *mockPresentationRepo {
	return &mockPresentationRepo{presentations: make(map[string]*model.Presentation)}
}

func (m *mockPresentationRepo) Create(_ context.Context, p *model.Presentation) error {
	if p.PresentationID == "" {
		p.PresentationID = "pres-" + p.Title
	}
	m.presentations[p.PresentationID] = p
	return nil
}

func (m *mockPresentationRepo) GetByID(_ context.Context, id string) (*model.Presentation, error) {
	if p, ok := m.presentations[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPresentationRepo) ListBySession(_ context.Context, sessionID string) ([]model.Presentation, error) {
	var result []model.Presentation
	for _, p := range m.presentations {
		if p.SessionID == sessionID {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Position != result[j].Position {
			return result[i].Position < result[j].Position
		}
		return result[i].Title < result[j].Title
	})
	return result, nil
}

func (m *mockPresentationRepo) Update(_ context.Context, p *model.Presentation) error {
	m.presentations[p.PresentationID] = p
	return nil
}

func (m *mockPresentationRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.presentations, id)
	return nil
}

// ── Mock EvaluationRepository ──

type mockEvaluationRepo struct {
	evaluations map[string]*model.Evaluation // key: "presentation_id:evaluator_id"
}

func newMockEvaluationRepo() *mockEvaluationRepo {
	return &mockEvaluationRepo{evaluations: make(map[string]*model.Evaluation)}
}

func evalKey(presentationID, evaluatorID string) string {
	return presentationID + ":" + evaluatorID
}

func (m *mockEvaluationRepo) Create(_ context.Context, e *model.Evaluation) error {
	key := evalKey(e.PresentationID, e.EvaluatorID)
	// 模拟 (presentation_id, evaluator_id) 唯一约束
	if _, ok := m.evaluations[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	if e.EvaluationID == "" {
		e.EvaluationID = "eval-" + key
	}
	m.evaluations[key] = e
	return nil
}

func (m *mockEvaluationRepo) GetByEvaluator(_ context.Context, presentationID, evaluatorID string) (*model.Evaluation, error) {
	if e, ok := m.evaluations[evalKey(presentationID, evaluatorID)]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEvaluationRepo) ListByPresentation(_ context.Context, presentationID string) ([]model.Evaluation, error) {
	var result []model.Evaluation
	for _, e := range m.evaluations {
		if e.PresentationID == presentationID {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockEvaluationRepo) Update(_ context.Context, e *model.Evaluation) error {
	m.evaluations[evalKey(e.PresentationID, e.EvaluatorID)] = e
	return nil
}

// ── Mock CheckinPinRepository ──

type mockCheckinPinRepo struct {
	pins    []*model.CheckinPin
	nextSeq int
}

func newMockCheckinPinRepo() *mockCheckinPinRepo {
	return &mockCheckinPinRepo{}
}

func (m *mockCheckinPinRepo) GetActive(_ context.Context) (*model.CheckinPin, error) {
	for _, p := range m.pins {
		if p.IsActive {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCheckinPinRepo) Rotate(_ context.Context, pin *model.CheckinPin) error {
	// 与真实实现同语义：旧 PIN 失效 + 新 PIN 激活在同一"事务"内
	now := time.Now()
	for _, p := range m.pins {
		if p.IsActive {
			p.IsActive = false
			p.DeactivatedAt = &now
		}
	}
	m.nextSeq++
	if pin.PinID == "" {
		pin.PinID = fmt.Sprintf("pin-%d", m.nextSeq)
	}
	pin.IsActive = true
	pin.CreatedAt = now
	m.pins = append(m.pins, pin)
	return nil
}

func (m *mockCheckinPinRepo) Deactivate(_ context.Context, pinID string) error {
	now := time.Now()
	for _, p := range m.pins {
		if p.PinID == pinID && p.IsActive {
			p.IsActive = false
			p.DeactivatedAt = &now
		}
	}
	return nil
}

// ── Mock CheckinRecordRepository ──

type mockCheckinRecordRepo struct {
	records []*model.CheckinRecord
	nextSeq int
}

func newMockCheckinRecordRepo() *mockCheckinRecordRepo {
	return &mockCheckinRecordRepo{}
}

func (m *mockCheckinRecordRepo) Create(_ context.Context, record *model.CheckinRecord) error {
	// 模拟部分唯一索引：同一用户至多一条未签退记录
	for _, r := range m.records {
		if r.UserID == record.UserID && r.CheckoutAt == nil {
			return gorm.ErrDuplicatedKey
		}
	}
	m.nextSeq++
	if record.CheckinRecordID == "" {
		record.CheckinRecordID = fmt.Sprintf("record-%d", m.nextSeq)
	}
	m.records = append(m.records, record)
	return nil
}

func (m *mockCheckinRecordRepo) GetOpenByUser(_ context.Context, userID string) (*model.CheckinRecord, error) {
	for _, r := range m.records {
		if r.UserID == userID && r.CheckoutAt == nil {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCheckinRecordRepo) Update(_ context.Context, record *model.CheckinRecord) error {
	for i, r := range m.records {
		if r.CheckinRecordID == record.CheckinRecordID {
			m.records[i] = record
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockCheckinRecordRepo) ListAll(_ context.Context) ([]model.CheckinRecord, error) {
	result := make([]model.CheckinRecord, 0, len(m.records))
	for _, r := range m.records {
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[j].CheckinAt.Before(result[i].CheckinAt)
	})
	return result, nil
}

// ── 测试辅助 ──

// testMocks 聚合所有 mock，供各测试文件按需取用
type testMocks struct {
	user          *mockUserRepo
	event         *mockEventRepo
	session       *mockSessionRepo
	presentation  *mockPresentationRepo
	evaluation    *mockEvaluationRepo
	checkinPin    *mockCheckinPinRepo
	checkinRecord *mockCheckinRecordRepo
}

func newTestRepository() (*repository.Repository, *testMocks) {
	mocks := &testMocks{
		user:          newMockUserRepo(),
		event:         newMockEventRepo(),
		session:       newMockSessionRepo(),
		presentation:  newMockPresentationRepo(),
		evaluation:    newMockEvaluationRepo(),
		checkinPin:    newMockCheckinPinRepo(),
		checkinRecord: newMockCheckinRecordRepo(),
	}
	mocks.event.sessionRepo = mocks.session

	repo := &repository.Repository{
		User:          mocks.user,
		Event:         mocks.event,
		Session:       mocks.session,
		Presentation:  mocks.presentation,
		Evaluation:    mocks.evaluation,
		CheckinPin:    mocks.checkinPin,
		CheckinRecord: mocks.checkinRecord,
	}
	return repo, mocks
}
