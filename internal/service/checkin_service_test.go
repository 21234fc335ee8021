package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"campus-events/backend/config"
	"campus-events/backend/internal/model"
	"campus-events/backend/pkg/geo"
)

// 校区围栏测试夹具：主校区中心 + 2000 米半径
const (
	testCampusLat    = -3.7436587
	testCampusLng    = -38.5410718
	testCampusRadius = 2000.0
)

func setupTestCheckinService() (CheckinService, *testMocks) {
	cfg := &config.CheckinConfig{
		DefaultRadiusMeters: testCampusRadius,
		RateLimitPerMinute:  10,
		Zones: []config.CampusZoneConfig{
			{Name: "Campus Principal", Latitude: testCampusLat, Longitude: testCampusLng, RadiusMeters: testCampusRadius},
		},
	}
	repo, mocks := newTestRepository()
	svc := NewCheckinService(cfg, repo, zap.NewNop())
	return svc, mocks
}

// setupNoZoneCheckinService 未配置任何校区围栏的服务
func setupNoZoneCheckinService() (CheckinService, *testMocks) {
	cfg := &config.CheckinConfig{DefaultRadiusMeters: testCampusRadius}
	repo, mocks := newTestRepository()
	svc := NewCheckinService(cfg, repo, zap.NewNop())
	return svc, mocks
}

// ── GeneratePin 测试 ──

func TestGeneratePin_SixDigitCode(t *testing.T) {
	svc, _ := setupTestCheckinService()

	pin, err := svc.GeneratePin(context.Background(), "admin-1")
	if err != nil {
		t.Fatalf("GeneratePin 应成功: %v", err)
	}

	if len(pin.Code) != 6 {
		t.Errorf("PIN 长度期望 6，实际=%d", len(pin.Code))
	}
	for _, c := range pin.Code {
		if c < '0' || c > '9' {
			t.Errorf("PIN 应全为数字，实际=%q", pin.Code)
			break
		}
	}
}

func TestGeneratePin_RotationDeactivatesPrevious(t *testing.T) {
	svc, mocks := setupTestCheckinService()

	first, err := svc.GeneratePin(context.Background(), "admin-1")
	if err != nil {
		t.Fatalf("第一次 GeneratePin 失败: %v", err)
	}
	second, err := svc.GeneratePin(context.Background(), "admin-1")
	if err != nil {
		t.Fatalf("第二次 GeneratePin 失败: %v", err)
	}

	// 全局至多一个激活 PIN
	activeCount := 0
	for _, p := range mocks.checkinPin.pins {
		if p.IsActive {
			activeCount++
		}
	}
	if activeCount != 1 {
		t.Errorf("期望恰好 1 个激活 PIN，实际=%d", activeCount)
	}

	active, err := svc.GetActivePin(context.Background())
	if err != nil {
		t.Fatalf("GetActivePin 应成功: %v", err)
	}
	if active.ID != second.ID {
		t.Errorf("激活 PIN 应为最新轮换结果，期望=%s，实际=%s", second.ID, active.ID)
	}

	// 旧 PIN 失效后不再通过校验（轮换生成相同码的概率忽略）
	if first.Code != second.Code {
		if err := svc.ValidatePin(context.Background(), first.Code); !errors.Is(err, ErrInvalidPin) {
			t.Errorf("旧 PIN 期望 ErrInvalidPin，实际: %v", err)
		}
	}
}

// ── GetActivePin 测试 ──

func TestGetActivePin_NoneGenerated(t *testing.T) {
	svc, _ := setupTestCheckinService()

	_, err := svc.GetActivePin(context.Background())
	if !errors.Is(err, ErrNoPinGenerated) {
		t.Errorf("期望 ErrNoPinGenerated，实际: %v", err)
	}
}

// ── ValidatePin 测试 ──

func TestValidatePin(t *testing.T) {
	svc, _ := setupTestCheckinService()

	pin, err := svc.GeneratePin(context.Background(), "admin-1")
	if err != nil {
		t.Fatalf("GeneratePin 失败: %v", err)
	}

	if err := svc.ValidatePin(context.Background(), pin.Code); err != nil {
		t.Errorf("正确 PIN 应通过校验: %v", err)
	}

	wrong := "000000"
	if wrong == pin.Code {
		wrong = "000001"
	}
	if err := svc.ValidatePin(context.Background(), wrong); !errors.Is(err, ErrInvalidPin) {
		t.Errorf("错误 PIN 期望 ErrInvalidPin，实际: %v", err)
	}
}

func TestValidatePin_NoActivePin(t *testing.T) {
	svc, _ := setupTestCheckinService()

	if err := svc.ValidatePin(context.Background(), "123456"); !errors.Is(err, ErrInvalidPin) {
		t.Errorf("无激活 PIN 时期望 ErrInvalidPin，实际: %v", err)
	}
}

// ── RegisterCheckin 测试 ──

func TestRegisterCheckin_Success(t *testing.T) {
	svc, _ := setupTestCheckinService()

	pin, _ := svc.GeneratePin(context.Background(), "admin-1")

	record, err := svc.RegisterCheckin(context.Background(), "user-1", pin.Code,
		"-3.7436587", "-38.5410718")
	if err != nil {
		t.Fatalf("校区内签到应成功: %v", err)
	}

	if record.UserID != "user-1" {
		t.Errorf("期望 UserID=user-1，实际=%s", record.UserID)
	}
	if !record.Open {
		t.Error("新签到记录应为未签退状态")
	}
	if record.CheckoutAt != nil {
		t.Error("新签到记录不应有签退时间")
	}
}

func TestRegisterCheckin_WrongPin(t *testing.T) {
	svc, _ := setupTestCheckinService()

	pin, _ := svc.GeneratePin(context.Background(), "admin-1")
	wrong := "999999"
	if wrong == pin.Code {
		wrong = "999998"
	}

	_, err := svc.RegisterCheckin(context.Background(), "user-1", wrong,
		"-3.7436587", "-38.5410718")
	if !errors.Is(err, ErrInvalidPin) {
		t.Errorf("期望 ErrInvalidPin，实际: %v", err)
	}
}

func TestRegisterCheckin_NoActivePin(t *testing.T) {
	svc, _ := setupTestCheckinService()

	_, err := svc.RegisterCheckin(context.Background(), "user-1", "123456",
		"-3.7436587", "-38.5410718")
	if !errors.Is(err, ErrInvalidPin) {
		t.Errorf("无激活 PIN 时期望 ErrInvalidPin，实际: %v", err)
	}
}

func TestRegisterCheckin_OutOfRange(t *testing.T) {
	svc, _ := setupTestCheckinService()

	pin, _ := svc.GeneratePin(context.Background(), "admin-1")

	// 校区中心正北约 5000 米（0.045°纬度差）
	_, err := svc.RegisterCheckin(context.Background(), "user-1", pin.Code,
		"-3.6986587", "-38.5410718")

	var oor *OutOfRangeError
	if !errors.As(err, &oor) {
		t.Fatalf("期望 OutOfRangeError，实际: %v", err)
	}
	if oor.LimitMeters != testCampusRadius {
		t.Errorf("期望 LimitMeters=%.0f，实际=%.0f", testCampusRadius, oor.LimitMeters)
	}
	if oor.DistanceMeters < 4500 || oor.DistanceMeters > 5500 {
		t.Errorf("期望距离约 5000 米，实际=%.0f", oor.DistanceMeters)
	}
}

func TestRegisterCheckin_MalformedCoordinatesBeforePinCheck(t *testing.T) {
	svc, _ := setupTestCheckinService()

	// 未生成任何 PIN：坐标解析失败应先于 PIN 校验返回
	_, err := svc.RegisterCheckin(context.Background(), "user-1", "123456",
		"not-a-number", "-38.5410718")
	if !errors.Is(err, geo.ErrInvalidCoordinate) {
		t.Errorf("期望 ErrInvalidCoordinate，实际: %v", err)
	}

	_, err = svc.RegisterCheckin(context.Background(), "user-1", "123456",
		"-3.7436587", "999")
	if !errors.Is(err, geo.ErrInvalidCoordinate) {
		t.Errorf("经度超界期望 ErrInvalidCoordinate，实际: %v", err)
	}
}

func TestRegisterCheckin_DuplicateOpenRecord(t *testing.T) {
	svc, _ := setupTestCheckinService()

	pin, _ := svc.GeneratePin(context.Background(), "admin-1")

	if _, err := svc.RegisterCheckin(context.Background(), "user-1", pin.Code,
		"-3.7436587", "-38.5410718"); err != nil {
		t.Fatalf("第一次签到应成功: %v", err)
	}

	_, err := svc.RegisterCheckin(context.Background(), "user-1", pin.Code,
		"-3.7436587", "-38.5410718")
	if !errors.Is(err, ErrDuplicateCheckin) {
		t.Errorf("期望 ErrDuplicateCheckin，实际: %v", err)
	}
}

func TestRegisterCheckin_UniqueIndexRace(t *testing.T) {
	svc, mocks := setupTestCheckinService()

	pin, _ := svc.GeneratePin(context.Background(), "admin-1")

	// 模拟并发竞争败者：先查为空，插入时撞唯一索引。
	// 直接向 mock 预置未签退记录即可触发 Create 的唯一冲突路径，
	// 此处通过两次签到验证冲突被翻译为业务错误而非内部错误
	if _, err := svc.RegisterCheckin(context.Background(), "user-1", pin.Code,
		"-3.7436587", "-38.5410718"); err != nil {
		t.Fatalf("第一次签到应成功: %v", err)
	}
	if len(mocks.checkinRecord.records) != 1 {
		t.Fatalf("期望 1 条记录，实际=%d", len(mocks.checkinRecord.records))
	}

	_, err := svc.RegisterCheckin(context.Background(), "user-1", pin.Code,
		"-3.7436587", "-38.5410718")
	if !errors.Is(err, ErrDuplicateCheckin) {
		t.Errorf("唯一冲突期望 ErrDuplicateCheckin，实际: %v", err)
	}
	if len(mocks.checkinRecord.records) != 1 {
		t.Errorf("冲突后不应新增记录，实际=%d", len(mocks.checkinRecord.records))
	}
}

func TestRegisterCheckin_NoZonesSkipsGeofence(t *testing.T) {
	svc, _ := setupNoZoneCheckinService()

	pin, _ := svc.GeneratePin(context.Background(), "admin-1")

	// 任意合法坐标均可签到
	_, err := svc.RegisterCheckin(context.Background(), "user-1", pin.Code,
		"55.7558", "37.6173")
	if err != nil {
		t.Errorf("未配置围栏时签到不应做定位校验: %v", err)
	}
}

// ── RegisterCheckout 测试 ──

func TestRegisterCheckout_Success(t *testing.T) {
	svc, _ := setupTestCheckinService()

	pin, _ := svc.GeneratePin(context.Background(), "admin-1")
	if _, err := svc.RegisterCheckin(context.Background(), "user-1", pin.Code,
		"-3.7436587", "-38.5410718"); err != nil {
		t.Fatalf("签到失败: %v", err)
	}

	record, err := svc.RegisterCheckout(context.Background(), "user-1",
		"-3.7440000", "-38.5415000")
	if err != nil {
		t.Fatalf("签退应成功: %v", err)
	}

	if record.Open {
		t.Error("签退后记录应为关闭状态")
	}
	if record.CheckoutAt == nil {
		t.Error("签退后应有签退时间")
	}
	if record.CheckoutLat == nil || record.CheckoutLng == nil {
		t.Error("签退后应有签退坐标")
	}
}

func TestRegisterCheckout_NoOpenRecord(t *testing.T) {
	svc, _ := setupTestCheckinService()

	_, err := svc.RegisterCheckout(context.Background(), "user-1",
		"-3.7436587", "-38.5410718")
	if !errors.Is(err, ErrNoOpenCheckin) {
		t.Errorf("期望 ErrNoOpenCheckin，实际: %v", err)
	}
}

func TestRegisterCheckout_SecondCheckoutRejected(t *testing.T) {
	svc, _ := setupTestCheckinService()

	pin, _ := svc.GeneratePin(context.Background(), "admin-1")
	svc.RegisterCheckin(context.Background(), "user-1", pin.Code,
		"-3.7436587", "-38.5410718")
	if _, err := svc.RegisterCheckout(context.Background(), "user-1",
		"-3.7436587", "-38.5410718"); err != nil {
		t.Fatalf("第一次签退应成功: %v", err)
	}

	// 记录已关闭，不存在未签退记录
	_, err := svc.RegisterCheckout(context.Background(), "user-1",
		"-3.7436587", "-38.5410718")
	if !errors.Is(err, ErrNoOpenCheckin) {
		t.Errorf("重复签退期望 ErrNoOpenCheckin，实际: %v", err)
	}
}

// closedRecordRepo 返回已签退记录的桩实现：
// 正常实现只返回未签退记录，此桩用于覆盖关闭逻辑的防御分支
type closedRecordRepo struct {
	*mockCheckinRecordRepo
}

func (r *closedRecordRepo) GetOpenByUser(_ context.Context, userID string) (*model.CheckinRecord, error) {
	now := time.Now()
	lat, lng := testCampusLat, testCampusLng
	return &model.CheckinRecord{
		UserID:      userID,
		CheckinLat:  lat,
		CheckinLng:  lng,
		CheckinAt:   now.Add(-time.Hour),
		CheckoutLat: &lat,
		CheckoutLng: &lng,
		CheckoutAt:  &now,
	}, nil
}

func TestRegisterCheckout_ClosedRecordRejected(t *testing.T) {
	cfg := &config.CheckinConfig{
		DefaultRadiusMeters: testCampusRadius,
		Zones: []config.CampusZoneConfig{
			{Name: "Campus Principal", Latitude: testCampusLat, Longitude: testCampusLng, RadiusMeters: testCampusRadius},
		},
	}
	repo, mocks := newTestRepository()
	repo.CheckinRecord = &closedRecordRepo{mocks.checkinRecord}
	svc := NewCheckinService(cfg, repo, zap.NewNop())

	_, err := svc.RegisterCheckout(context.Background(), "user-1",
		"-3.7436587", "-38.5410718")
	if !errors.Is(err, ErrAlreadyCheckedOut) {
		t.Errorf("期望 ErrAlreadyCheckedOut，实际: %v", err)
	}
}

func TestRegisterCheckout_MalformedCoordinates(t *testing.T) {
	svc, _ := setupTestCheckinService()

	pin, _ := svc.GeneratePin(context.Background(), "admin-1")
	svc.RegisterCheckin(context.Background(), "user-1", pin.Code,
		"-3.7436587", "-38.5410718")

	_, err := svc.RegisterCheckout(context.Background(), "user-1", "abc", "def")
	if !errors.Is(err, geo.ErrInvalidCoordinate) {
		t.Errorf("期望 ErrInvalidCoordinate，实际: %v", err)
	}
}

func TestCheckinAfterCheckout_NewRecordAllowed(t *testing.T) {
	svc, mocks := setupTestCheckinService()

	pin, _ := svc.GeneratePin(context.Background(), "admin-1")
	svc.RegisterCheckin(context.Background(), "user-1", pin.Code,
		"-3.7436587", "-38.5410718")
	svc.RegisterCheckout(context.Background(), "user-1",
		"-3.7436587", "-38.5410718")

	// 前一条已关闭，允许开启新一轮签到
	if _, err := svc.RegisterCheckin(context.Background(), "user-1", pin.Code,
		"-3.7436587", "-38.5410718"); err != nil {
		t.Fatalf("签退后的再次签到应成功: %v", err)
	}
	if len(mocks.checkinRecord.records) != 2 {
		t.Errorf("期望 2 条记录，实际=%d", len(mocks.checkinRecord.records))
	}
}

// ── ListCheckinReport 测试 ──

func TestListCheckinReport(t *testing.T) {
	svc, _ := setupTestCheckinService()

	pin, _ := svc.GeneratePin(context.Background(), "admin-1")
	svc.RegisterCheckin(context.Background(), "user-1", pin.Code,
		"-3.7436587", "-38.5410718")
	time.Sleep(time.Millisecond)
	svc.RegisterCheckin(context.Background(), "user-2", pin.Code,
		"-3.7436587", "-38.5410718")

	report, err := svc.ListCheckinReport(context.Background())
	if err != nil {
		t.Fatalf("ListCheckinReport 应成功: %v", err)
	}
	if len(report) != 2 {
		t.Fatalf("期望 2 条记录，实际=%d", len(report))
	}
	// 按签到时间倒序
	if report[0].UserID != "user-2" {
		t.Errorf("期望最新记录在前，实际首条 UserID=%s", report[0].UserID)
	}
}
