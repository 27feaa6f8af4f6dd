package service

import (
	"errors"

	"hacklab_backend/internal/model"
	"hacklab_backend/internal/repository"
	"hacklab_backend/internal/util"

	"gorm.io/gorm"
)

type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	PageRepo     *repository.PageRepository
	SolveRepo    *repository.SolveRepository
}

func NewProgressService(progressRepo *repository.ProgressRepository, pageRepo *repository.PageRepository, solveRepo *repository.SolveRepository) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		PageRepo:     pageRepo,
		SolveRepo:    solveRepo,
	}
}

// MarkPageComplete 页面完成打标，可重复调用，不影响余额。
func (s *ProgressService) MarkPageComplete(userID, pageID uint) error {
	if _, err := s.PageRepo.FindByID(pageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrPageNotFound
		}
		return err
	}
	return s.ProgressRepo.MarkCompleted(userID, pageID)
}

type ProgressOverview struct {
	CompletedPages  []model.ProgressRecord `json:"completedPages"`
	SolvedQuestions []model.SolveRecord    `json:"solvedQuestions"`
}

func (s *ProgressService) Overview(userID uint) (*ProgressOverview, error) {
	completed, err := s.ProgressRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	solved, err := s.SolveRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	return &ProgressOverview{
		CompletedPages:  completed,
		SolvedQuestions: solved,
	}, nil
}
