package model

import "time"

type ModuleType string

const (
	ModuleFree ModuleType = "free"
	ModulePaid ModuleType = "paid"
)

// swagger:model Module
type Module struct {
	BaseModel
	Title            string     `gorm:"size:255;not null" json:"title"`
	Description      string     `gorm:"type:text" json:"description"`
	Type             ModuleType `gorm:"size:10;not null;default:'free'" json:"type"`
	CubeCost         int        `gorm:"default:0;not null" json:"cubeCost"` // free 模块恒为 0
	IsSpecial        bool       `gorm:"default:false" json:"isSpecial"`
	ImageURL         string     `gorm:"size:512" json:"imageUrl"`
	CreatedByAdminID uint       `gorm:"index" json:"createdByAdminId"`
	Pages            []Page     `gorm:"foreignKey:ModuleID" json:"pages,omitempty"`
}

func (Module) TableName() string {
	return "modules"
}

// ModuleUnlock 持久化的 (user, module) 解锁关系。
// 唯一索引保证并发解锁只会扣费一次。
type ModuleUnlock struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint      `gorm:"uniqueIndex:idx_user_module;not null" json:"userId"`
	ModuleID   uint      `gorm:"uniqueIndex:idx_user_module;not null" json:"moduleId"`
	CubesSpent int       `gorm:"default:0;not null" json:"cubesSpent"`
	UnlockedAt time.Time `gorm:"autoCreateTime" json:"unlockedAt"`
}

func (ModuleUnlock) TableName() string {
	return "module_unlocks"
}
