package model

import "time"

// ProgressRecord (user, page) 完成标记，纯信息记录，不影响余额。
type ProgressRecord struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint      `gorm:"uniqueIndex:idx_user_page;not null" json:"userId"`
	PageID      uint      `gorm:"uniqueIndex:idx_user_page;not null" json:"pageId"`
	CompletedAt time.Time `gorm:"autoCreateTime" json:"completedAt"`
}

func (ProgressRecord) TableName() string {
	return "progress_records"
}
