package dto

// ── 活动模块 DTO ──

// CreateEventRequest 创建活动请求
type CreateEventRequest struct {
	Name                string   `json:"name"                  binding:"required,min=2,max=150"`
	Description         string   `json:"description"           binding:"omitempty"`
	Venue               string   `json:"venue"                 binding:"omitempty,max=200"`
	CampusName          string   `json:"campus_name"           binding:"omitempty,max=100"`
	StartsAt            string   `json:"starts_at"             binding:"required"` // RFC3339
	EndsAt              string   `json:"ends_at"               binding:"required"` // RFC3339
	CheckinRadiusMeters *float64 `json:"checkin_radius_meters" binding:"omitempty,gt=0"`
}

// UpdateEventRequest 更新活动请求
type UpdateEventRequest struct {
	Name                *string  `json:"name"                  binding:"omitempty,min=2,max=150"`
	Description         *string  `json:"description"`
	Venue               *string  `json:"venue"                 binding:"omitempty,max=200"`
	CampusName          *string  `json:"campus_name"           binding:"omitempty,max=100"`
	StartsAt            *string  `json:"starts_at"`
	EndsAt              *string  `json:"ends_at"`
	CheckinRadiusMeters *float64 `json:"checkin_radius_meters" binding:"omitempty,gt=0"`
	IsActive            *bool    `json:"is_active"`
}

// EventListRequest 活动列表查询参数
type EventListRequest struct {
	IncludeInactive bool `form:"include_inactive"`
	PaginationRequest
}

// EventResponse 活动信息响应
type EventResponse struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Description         string   `json:"description,omitempty"`
	Venue               string   `json:"venue,omitempty"`
	CampusName          string   `json:"campus_name,omitempty"`
	StartsAt            string   `json:"starts_at"`
	EndsAt              string   `json:"ends_at"`
	CheckinRadiusMeters *float64 `json:"checkin_radius_meters,omitempty"`
	IsActive            bool     `json:"is_active"`
	CreatedAt           string   `json:"created_at"`
	UpdatedAt           string   `json:"updated_at"`
}
