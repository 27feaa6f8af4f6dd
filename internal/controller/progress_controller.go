package controller

import (
	"errors"

	"hacklab_backend/internal/service"
	"hacklab_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// Overview godoc
// @Summary 学习进度
// @Description 返回当前用户完成的页面和解出的题目
// @Tags 进度
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.ProgressOverview} "成功"
// @Router /progress [get]
func (c *ProgressController) Overview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	overview, err := c.ProgressService.Overview(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}

// MarkPageComplete godoc
// @Summary 标记页面完成
// @Description 幂等打标，重复调用无副作用
// @Tags 进度
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "页面ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "页面不存在"
// @Router /pages/{id}/complete [post]
func (c *ProgressController) MarkPageComplete(ctx *gin.Context) {
	pageID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	claims := util.GetUserFromContext(ctx)
	if err := c.ProgressService.MarkPageComplete(claims.UserID, pageID); err != nil {
		if errors.Is(err, util.ErrPageNotFound) {
			util.Error(ctx, 404, "Page not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"message": "Page marked as complete"})
}
