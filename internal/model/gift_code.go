package model

import "time"

// GiftCode 一次性货币兑换码。Code 统一以大写形式保存，
// 兑换时 active/UsedByUserID/UsedAt 三个字段由一条条件更新同时落库。
// swagger:model GiftCode
type GiftCode struct {
	BaseModel
	Code         string     `gorm:"size:64;uniqueIndex;not null" json:"code"`
	Value        int        `gorm:"not null" json:"value"`
	Active       bool       `gorm:"default:true;not null" json:"active"`
	UsedByUserID *uint      `gorm:"index" json:"usedByUserId,omitempty"`
	UsedAt       *time.Time `json:"usedAt,omitempty"`
}

func (GiftCode) TableName() string {
	return "gift_codes"
}
