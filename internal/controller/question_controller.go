package controller

import (
	"errors"

	"hacklab_backend/internal/service"
	"hacklab_backend/internal/util"
	"hacklab_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService  *service.QuestionService
	ChallengeService *service.ChallengeService
}

func NewQuestionController(questionService *service.QuestionService, challengeService *service.ChallengeService) *QuestionController {
	return &QuestionController{
		QuestionService:  questionService,
		ChallengeService: challengeService,
	}
}

// ListByPage godoc
// @Summary 页面题目列表
// @Description 按序号升序返回页面下的题目，答案哈希不会出现在响应里
// @Tags 题目
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "页面ID"
// @Success 200 {object} util.Response{data=[]model.Question} "成功"
// @Failure 404 {object} util.Response "页面不存在"
// @Router /pages/{id}/questions [get]
func (c *QuestionController) ListByPage(ctx *gin.Context) {
	pageID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	questions, err := c.QuestionService.ListByPage(pageID)
	if err != nil {
		if errors.Is(err, util.ErrPageNotFound) {
			util.Error(ctx, 404, "Page not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, questions)
}

// swagger:model SubmitAnswerRequest
type SubmitAnswerRequest struct {
	Answer string `json:"answer" binding:"required"`
}

// Submit godoc
// @Summary 提交答案
// @Description 校验答案并结算方块奖励，同一题每人只能得奖一次
// @Tags 题目
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "题目ID"
// @Param body body SubmitAnswerRequest true "提交的答案"
// @Success 200 {object} util.Response{data=object} "答案正确"
// @Failure 400 {object} util.Response "答案错误或已解过"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /questions/{id}/submit [post]
func (c *QuestionController) Submit(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	result, err := c.ChallengeService.SubmitAnswer(claims.UserID, id, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuestionNotFound):
			util.Error(ctx, 404, "Question not found")
		case errors.Is(err, util.ErrAlreadySolved):
			monitoring.AnswerSubmissions.WithLabelValues("already_solved").Inc()
			util.BadRequest(ctx, "Question already solved")
		case errors.Is(err, util.ErrIncorrectAnswer):
			monitoring.AnswerSubmissions.WithLabelValues("incorrect").Inc()
			util.BadRequest(ctx, "Incorrect answer")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	monitoring.AnswerSubmissions.WithLabelValues("correct").Inc()
	util.Success(ctx, gin.H{
		"message":      "Correct answer!",
		"cubesAwarded": result.Reward,
	})
}

// swagger:model QuestionRequest
type QuestionRequest struct {
	PageID     uint   `json:"pageId" binding:"required"`
	Text       string `json:"text" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
	CubeReward int    `json:"cubeReward" binding:"min=0"`
	Order      int    `json:"order" binding:"min=0"`
}

// Create godoc
// @Summary 创建题目
// @Description 接收明文答案，服务端哈希后入库
// @Tags 管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body QuestionRequest true "题目信息"
// @Success 201 {object} util.Response{data=model.Question} "创建成功"
// @Failure 404 {object} util.Response "页面不存在"
// @Router /admin/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	var req QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionService.Create(req.PageID, req.Text, req.Answer, req.CubeReward, req.Order)
	if err != nil {
		if errors.Is(err, util.ErrPageNotFound) {
			util.Error(ctx, 404, "Page not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, question)
}

// Update godoc
// @Summary 更新题目
// @Description values 里带 answer 字段时重新哈希
// @Tags 管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response "更新成功"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /admin/questions/{id} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var values map[string]interface{}
	if err := ctx.ShouldBindJSON(&values); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if order, ok := values["order"]; ok {
		delete(values, "order")
		values["question_order"] = order
	}

	if err := c.QuestionService.Update(id, values); err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.Error(ctx, 404, "Question not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"message": "Question updated successfully"})
}

// Delete godoc
// @Summary 删除题目
// @Tags 管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response "删除成功"
// @Router /admin/questions/{id} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.QuestionService.Delete(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Question deleted successfully"})
}
