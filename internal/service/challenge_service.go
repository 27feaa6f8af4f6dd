package service

import (
	"errors"

	"hacklab_backend/internal/model"
	"hacklab_backend/internal/repository"
	"hacklab_backend/internal/util"

	"gorm.io/gorm"
)

// ChallengeService 答案校验与奖励结算引擎。
// 不变量：每个 (user, question) 至多产生一条 SolveRecord，
// 且该记录存在当且仅当对应奖励恰好入账一次。
type ChallengeService struct {
	QuestionRepo *repository.QuestionRepository
	SolveRepo    *repository.SolveRepository
	DB           *gorm.DB
}

func NewChallengeService(questionRepo *repository.QuestionRepository, solveRepo *repository.SolveRepository, db *gorm.DB) *ChallengeService {
	return &ChallengeService{
		QuestionRepo: questionRepo,
		SolveRepo:    solveRepo,
		DB:           db,
	}
}

type SubmitResult struct {
	Accepted bool `json:"accepted"`
	Reward   int  `json:"reward"`
}

// SubmitAnswer 校验提交的答案并结算奖励。
// 校验发生在任何写操作之前，错误答案不会留下任何痕迹；
// 解题记录和加余额在同一事务内完成，要么都落库要么都回滚。
// 并发重复提交靠 (user_id, question_id) 唯一索引裁决，
// 输掉竞争的一方拿到 ErrAlreadySolved 而不是泛化错误。
func (s *ChallengeService) SubmitAnswer(userID, questionID uint, answer string) (*SubmitResult, error) {
	question, err := s.QuestionRepo.FindByID(questionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}

	// 快路径：已解过直接拒绝，省掉一次 bcrypt。正确性仍由唯一索引兜底。
	solved, err := s.SolveRepo.Exists(userID, questionID)
	if err != nil {
		return nil, err
	}
	if solved {
		return nil, util.ErrAlreadySolved
	}

	// 区分大小写、逐字节比对，引擎本身不做任何归一化
	if !util.VerifySecret(answer, question.AnswerHash) {
		return nil, util.ErrIncorrectAnswer
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		record := &model.SolveRecord{
			UserID:     userID,
			QuestionID: questionID,
		}
		if err := tx.Create(record).Error; err != nil {
			return err
		}

		// 零奖励的题也会留下解题记录，只是余额不动
		if question.CubeReward > 0 {
			return tx.Model(&model.User{}).
				Where("id = ?", userID).
				Update("cubes", gorm.Expr("cubes + ?", question.CubeReward)).
				Error
		}
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, util.ErrAlreadySolved
	}
	if err != nil {
		return nil, err
	}

	return &SubmitResult{Accepted: true, Reward: question.CubeReward}, nil
}

func (s *ChallengeService) SolvedQuestions(userID uint) ([]model.SolveRecord, error) {
	return s.SolveRepo.FindByUser(userID)
}
