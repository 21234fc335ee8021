package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-events/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoRecords    = errors.New("暂无签到记录可导出")
	ErrExportNoSessions   = errors.New("该活动暂无场次可导出")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 签到报表导出为 Excel (.xlsx)，全量记录按签到时间排列
//   - 活动日程导出为 iCalendar (.ics)，每个场次一个 VEVENT
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportCheckinReport 导出签到报表为 Excel
	ExportCheckinReport(ctx context.Context) (*bytes.Buffer, string, error)
	// ExportEventSchedule 导出活动日程为 iCalendar
	ExportEventSchedule(ctx context.Context, eventID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportCheckinReport — 导出签到报表为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "签到报表"
//   - 列：姓名 | 学号 | PIN | 签到时间 | 签到坐标 | 签退时间 | 签退坐标 | 状态
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportCheckinReport(ctx context.Context) (*bytes.Buffer, string, error) {
	records, err := s.repo.CheckinRecord.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询签到记录失败", zap.Error(err))
		return nil, "", err
	}
	if len(records) == 0 {
		return nil, "", ErrExportNoRecords
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "签到报表"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 设置列宽
	widths := []struct {
		col   string
		width float64
	}{
		{"A", 18}, {"B", 14}, {"C", 10}, {"D", 22}, {"E", 24}, {"F", 22}, {"G", 24}, {"H", 10},
	}
	for _, w := range widths {
		f.SetColWidth(sheetName, w.col, w.col, w.width)
	}

	// 样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 表头
	headers := []string{"姓名", "学号", "PIN", "签到时间", "签到坐标", "签退时间", "签退坐标", "状态"}
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 1), h)
	}
	f.SetCellStyle(sheetName, "A1", cell(colName(len(headers)-1), 1), headerStyle)

	// 数据行
	row := 2
	for i := range records {
		r := &records[i]

		name, matricula := "-", "-"
		if r.User != nil {
			name = r.User.Name
			matricula = r.User.Matricula
		}
		pinCode := "-"
		if r.Pin != nil {
			pinCode = r.Pin.Code
		}

		f.SetCellValue(sheetName, cell("A", row), name)
		f.SetCellValue(sheetName, cell("B", row), matricula)
		f.SetCellValue(sheetName, cell("C", row), pinCode)
		f.SetCellValue(sheetName, cell("D", row), r.CheckinAt.Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheetName, cell("E", row), fmt.Sprintf("%.7f, %.7f", r.CheckinLat, r.CheckinLng))

		if r.CheckoutAt != nil {
			f.SetCellValue(sheetName, cell("F", row), r.CheckoutAt.Format("2006-01-02 15:04:05"))
			f.SetCellValue(sheetName, cell("G", row), fmt.Sprintf("%.7f, %.7f", *r.CheckoutLat, *r.CheckoutLng))
			f.SetCellValue(sheetName, cell("H", row), "已签退")
		} else {
			f.SetCellValue(sheetName, cell("F", row), "-")
			f.SetCellValue(sheetName, cell("G", row), "-")
			f.SetCellValue(sheetName, cell("H", row), "在场")
		}
		row++
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("签到报表_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportEventSchedule — 导出活动日程为 iCalendar
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - VCALENDAR，METHOD:PUBLISH
//   - 每个场次一个 VEVENT：UID=场次 ID，SUMMARY=场次标题，LOCATION=房间
//
// 返回值：buf（ICS 内容）, filename（建议文件名）, error

func (s *exportService) ExportEventSchedule(ctx context.Context, eventID string) (*bytes.Buffer, string, error) {
	event, err := s.repo.Event.GetWithSessions(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrEventNotFound
		}
		s.logger.Error("查询活动失败", zap.String("event_id", eventID), zap.Error(err))
		return nil, "", err
	}
	if len(event.Sessions) == 0 {
		return nil, "", ErrExportNoSessions
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//campus-events//schedule//EN")
	cal.SetXWRCalName(event.Name)

	now := time.Now()
	for i := range event.Sessions {
		session := &event.Sessions[i]

		evt := cal.AddEvent(session.SessionID)
		evt.SetDtStampTime(now)
		evt.SetStartAt(session.StartsAt)
		evt.SetEndAt(session.EndsAt)
		evt.SetSummary(session.Title)
		if session.Room != "" {
			evt.SetLocation(session.Room)
		}
		if event.Venue != "" {
			evt.SetDescription(fmt.Sprintf("%s — %s", event.Name, event.Venue))
		} else {
			evt.SetDescription(event.Name)
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())

	filename := fmt.Sprintf("日程_%s.ics", event.Name)
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
