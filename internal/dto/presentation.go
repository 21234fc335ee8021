package dto

// ── 报告模块 DTO ──

// CreatePresentationRequest 创建报告请求
type CreatePresentationRequest struct {
	Title      string `json:"title"      binding:"required,min=2,max=200"`
	Presenters string `json:"presenters" binding:"required,min=2,max=300"`
	Abstract   string `json:"abstract"   binding:"omitempty"`
	Position   int    `json:"position"   binding:"omitempty,min=0"`
}

// UpdatePresentationRequest 更新报告请求
type UpdatePresentationRequest struct {
	Title      *string `json:"title"      binding:"omitempty,min=2,max=200"`
	Presenters *string `json:"presenters" binding:"omitempty,min=2,max=300"`
	Abstract   *string `json:"abstract"`
	Position   *int    `json:"position"   binding:"omitempty,min=0"`
}

// PresentationResponse 报告信息响应
type PresentationResponse struct {
	ID         string `json:"id"`
	SessionID  string `json:"session_id"`
	Title      string `json:"title"`
	Presenters string `json:"presenters"`
	Abstract   string `json:"abstract,omitempty"`
	Position   int    `json:"position"`
}
