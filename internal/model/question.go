package model

import "time"

// Question 页面内嵌的挑战题。AnswerHash 只保存慢哈希摘要，
// 任何读取接口都不会返回答案原文。
// swagger:model Question
type Question struct {
	BaseModel
	PageID     uint   `gorm:"index;not null" json:"pageId"`
	Text       string `gorm:"type:text;not null" json:"text"`
	AnswerHash string `gorm:"size:100;not null" json:"-"`
	CubeReward int    `gorm:"default:0;not null" json:"cubeReward"`
	Order      int    `gorm:"column:question_order;default:0;not null" json:"order"`
}

func (Question) TableName() string {
	return "questions"
}

// SolveRecord (user, question) 一次性解题记录。
// 唯一索引是奖励引擎幂等性的最终防线。
type SolveRecord struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint      `gorm:"uniqueIndex:idx_user_question;not null" json:"userId"`
	QuestionID uint      `gorm:"uniqueIndex:idx_user_question;not null" json:"questionId"`
	SolvedAt   time.Time `gorm:"autoCreateTime" json:"solvedAt"`
}

func (SolveRecord) TableName() string {
	return "solve_records"
}
