package model

type PageType string

const (
	PageText  PageType = "text"
	PageCode  PageType = "code"
	PageVideo PageType = "video"
)

// swagger:model Page
type Page struct {
	BaseModel
	ModuleID uint     `gorm:"index;not null" json:"moduleId"`
	Title    string   `gorm:"size:255;not null" json:"title"`
	Content  string   `gorm:"type:longtext" json:"content"`
	Type     PageType `gorm:"size:10;not null;default:'text'" json:"type"`
	Image    string   `gorm:"size:512" json:"image"`
	Order    int      `gorm:"column:page_order;default:0;not null" json:"order"`
}

func (Page) TableName() string {
	return "pages"
}
