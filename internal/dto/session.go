package dto

// ── 场次模块 DTO ──

// CreateSessionRequest 创建场次请求
type CreateSessionRequest struct {
	Title    string `json:"title"     binding:"required,min=2,max=150"`
	Room     string `json:"room"      binding:"omitempty,max=100"`
	StartsAt string `json:"starts_at" binding:"required"` // RFC3339
	EndsAt   string `json:"ends_at"   binding:"required"` // RFC3339
}

// UpdateSessionRequest 更新场次请求
type UpdateSessionRequest struct {
	Title    *string `json:"title"     binding:"omitempty,min=2,max=150"`
	Room     *string `json:"room"      binding:"omitempty,max=100"`
	StartsAt *string `json:"starts_at"`
	EndsAt   *string `json:"ends_at"`
}

// SessionResponse 场次信息响应
type SessionResponse struct {
	ID       string `json:"id"`
	EventID  string `json:"event_id"`
	Title    string `json:"title"`
	Room     string `json:"room,omitempty"`
	StartsAt string `json:"starts_at"`
	EndsAt   string `json:"ends_at"`
}
