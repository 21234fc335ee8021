package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"campus-events/backend/internal/service"
	"campus-events/backend/pkg/response"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	icsContentType  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportCheckinReport 导出签到报表（管理员）
// GET /api/v1/export/checkin-report
func (h *ExportHandler) ExportCheckinReport(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportCheckinReport(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrExportNoRecords) {
			response.NotFound(c, 26001, "暂无签到记录可导出")
			return
		}
		response.InternalError(c)
		return
	}

	writeDownload(c, buf.Bytes(), filename, xlsxContentType)
}

// ExportEventSchedule 导出活动日程 (.ics)
// GET /api/v1/export/events/:id/schedule
func (h *ExportHandler) ExportEventSchedule(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportEventSchedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.NotFound(c, 21001, "活动不存在")
		case errors.Is(err, service.ErrExportNoSessions):
			response.NotFound(c, 26002, "该活动暂无场次可导出")
		default:
			response.InternalError(c)
		}
		return
	}

	writeDownload(c, buf.Bytes(), filename, icsContentType)
}

// writeDownload 设置附件下载响应头并写入内容
func writeDownload(c *gin.Context, data []byte, filename, contentType string) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, data)
}
