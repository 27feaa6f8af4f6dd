package controller

import (
	"errors"
	"strconv"

	"hacklab_backend/internal/model"
	"hacklab_backend/internal/service"
	"hacklab_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ModuleController struct {
	ModuleService *service.ModuleService
}

func NewModuleController(moduleService *service.ModuleService) *ModuleController {
	return &ModuleController{ModuleService: moduleService}
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// List godoc
// @Summary 模块目录
// @Description 返回全部模块及当前用户的解锁状态，匿名访客只见免费模块解锁
// @Tags 模块
// @Produce json
// @Success 200 {object} util.Response{data=[]service.ModuleWithState} "成功"
// @Router /modules [get]
func (c *ModuleController) List(ctx *gin.Context) {
	// 目录对匿名开放，带合法令牌则按本人解锁状态展示
	var userID uint
	if claims := util.GetUserFromContext(ctx); claims != nil {
		userID = claims.UserID
	}

	modules, err := c.ModuleService.ListForUser(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, modules)
}

// Get godoc
// @Summary 模块详情
// @Tags 模块
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "模块ID"
// @Success 200 {object} util.Response{data=model.Module} "成功"
// @Failure 404 {object} util.Response "模块不存在"
// @Router /modules/{id} [get]
func (c *ModuleController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	module, err := c.ModuleService.Get(id)
	if err != nil {
		if errors.Is(err, util.ErrModuleNotFound) {
			util.Error(ctx, 404, "Module not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, module)
}

// Unlock godoc
// @Summary 解锁模块
// @Description 扣除方块并持久化解锁关系，余额不足则拒绝
// @Tags 模块
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "模块ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "方块不足"
// @Failure 404 {object} util.Response "模块不存在"
// @Router /modules/{id}/unlock [post]
func (c *ModuleController) Unlock(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	claims := util.GetUserFromContext(ctx)
	unlocked, err := c.ModuleService.Unlock(claims.UserID, id)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrModuleNotFound):
			util.Error(ctx, 404, "Module not found")
		case errors.Is(err, util.ErrInsufficientCubes):
			util.BadRequest(ctx, "Insufficient cubes")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	message := "Module unlocked!"
	if !unlocked {
		message = "Module already unlocked"
	}
	util.Success(ctx, gin.H{"unlocked": true, "message": message})
}

// swagger:model ModuleRequest
type ModuleRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Type        string `json:"type" binding:"required,oneof=free paid"`
	CubeCost    int    `json:"cubeCost" binding:"min=0"`
	IsSpecial   bool   `json:"isSpecial"`
	ImageURL    string `json:"imageUrl"`
}

// Create godoc
// @Summary 创建模块
// @Tags 管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body ModuleRequest true "模块信息"
// @Success 201 {object} util.Response{data=model.Module} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /admin/modules [post]
func (c *ModuleController) Create(ctx *gin.Context) {
	var req ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	module := &model.Module{
		Title:       req.Title,
		Description: req.Description,
		Type:        model.ModuleType(req.Type),
		CubeCost:    req.CubeCost,
		IsSpecial:   req.IsSpecial,
		ImageURL:    req.ImageURL,
	}

	if err := c.ModuleService.Create(claims.UserID, module); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, module)
}

// Update godoc
// @Summary 更新模块
// @Tags 管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "模块ID"
// @Success 200 {object} util.Response "更新成功"
// @Failure 404 {object} util.Response "模块不存在"
// @Router /admin/modules/{id} [put]
func (c *ModuleController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var values map[string]interface{}
	if err := ctx.ShouldBindJSON(&values); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ModuleService.Update(id, values); err != nil {
		if errors.Is(err, util.ErrModuleNotFound) {
			util.Error(ctx, 404, "Module not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"message": "Module updated successfully"})
}

// Delete godoc
// @Summary 删除模块
// @Tags 管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "模块ID"
// @Success 200 {object} util.Response "删除成功"
// @Router /admin/modules/{id} [delete]
func (c *ModuleController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.ModuleService.Delete(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Module deleted successfully"})
}
