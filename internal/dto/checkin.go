package dto

// ── 签到模块 DTO ──
//
// 坐标以字符串传输：前端定位 API 给出的原始值原样上送，
// 解析与范围校验统一由服务端承担

// CheckinRequest 签到请求（PIN + 坐标）
type CheckinRequest struct {
	Code      string `json:"code"      binding:"required,len=6,numeric"`
	Latitude  string `json:"latitude"  binding:"required"`
	Longitude string `json:"longitude" binding:"required"`
}

// CheckoutRequest 签退请求
type CheckoutRequest struct {
	Latitude  string `json:"latitude"  binding:"required"`
	Longitude string `json:"longitude" binding:"required"`
}

// ValidatePinRequest 仅校验 PIN 请求
type ValidatePinRequest struct {
	Code string `json:"code" binding:"required,len=6,numeric"`
}

// PinResponse 激活 PIN 响应
type PinResponse struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	GeneratedAt string `json:"generated_at"`
}

// CheckinRecordResponse 签到记录响应
type CheckinRecordResponse struct {
	ID          string   `json:"id"`
	UserID      string   `json:"user_id"`
	UserName    string   `json:"user_name,omitempty"`
	Matricula   string   `json:"matricula,omitempty"`
	PinCode     string   `json:"pin_code,omitempty"`
	CheckinLat  float64  `json:"checkin_lat"`
	CheckinLng  float64  `json:"checkin_lng"`
	CheckinAt   string   `json:"checkin_at"`
	CheckoutLat *float64 `json:"checkout_lat,omitempty"`
	CheckoutLng *float64 `json:"checkout_lng,omitempty"`
	CheckoutAt  *string  `json:"checkout_at,omitempty"`
	Open        bool     `json:"open"`
}
