package service

import (
	"errors"

	"hacklab_backend/internal/model"
	"hacklab_backend/internal/repository"
	"hacklab_backend/internal/util"

	"gorm.io/gorm"
)

// QuestionService 题目管理。创建/更新接收明文答案，
// 入库前就地替换为慢哈希摘要，读路径永远见不到明文。
type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
	PageRepo     *repository.PageRepository
}

func NewQuestionService(questionRepo *repository.QuestionRepository, pageRepo *repository.PageRepository) *QuestionService {
	return &QuestionService{
		QuestionRepo: questionRepo,
		PageRepo:     pageRepo,
	}
}

func (s *QuestionService) Create(pageID uint, text, answer string, cubeReward, order int) (*model.Question, error) {
	if _, err := s.PageRepo.FindByID(pageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPageNotFound
		}
		return nil, err
	}

	hash, err := util.HashSecret(answer)
	if err != nil {
		return nil, err
	}

	question := &model.Question{
		PageID:     pageID,
		Text:       text,
		AnswerHash: hash,
		CubeReward: cubeReward,
		Order:      order,
	}
	if err := s.QuestionRepo.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) ListByPage(pageID uint) ([]model.Question, error) {
	if _, err := s.PageRepo.FindByID(pageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPageNotFound
		}
		return nil, err
	}
	return s.QuestionRepo.FindByPageID(pageID)
}

// Update values 里若带 answer 键，先哈希再落库。
func (s *QuestionService) Update(id uint, values map[string]interface{}) error {
	if answer, ok := values["answer"].(string); ok {
		hash, err := util.HashSecret(answer)
		if err != nil {
			return err
		}
		delete(values, "answer")
		values["answer_hash"] = hash
	}

	err := s.QuestionRepo.Updates(id, values)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrQuestionNotFound
	}
	return err
}

func (s *QuestionService) Delete(id uint) error {
	return s.QuestionRepo.Delete(id)
}
