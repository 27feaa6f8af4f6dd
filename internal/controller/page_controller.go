package controller

import (
	"errors"

	"hacklab_backend/internal/model"
	"hacklab_backend/internal/service"
	"hacklab_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PageController struct {
	PageService *service.PageService
}

func NewPageController(pageService *service.PageService) *PageController {
	return &PageController{PageService: pageService}
}

// ListByModule godoc
// @Summary 模块页面列表
// @Description 按序号升序返回模块下的全部页面
// @Tags 页面
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "模块ID"
// @Success 200 {object} util.Response{data=[]model.Page} "成功"
// @Failure 404 {object} util.Response "模块不存在"
// @Router /modules/{id}/pages [get]
func (c *PageController) ListByModule(ctx *gin.Context) {
	moduleID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	pages, err := c.PageService.ListByModule(moduleID)
	if err != nil {
		if errors.Is(err, util.ErrModuleNotFound) {
			util.Error(ctx, 404, "Module not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, pages)
}

// Get godoc
// @Summary 页面详情
// @Tags 页面
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "页面ID"
// @Success 200 {object} util.Response{data=model.Page} "成功"
// @Failure 404 {object} util.Response "页面不存在"
// @Router /pages/{id} [get]
func (c *PageController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	page, err := c.PageService.Get(id)
	if err != nil {
		if errors.Is(err, util.ErrPageNotFound) {
			util.Error(ctx, 404, "Page not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, page)
}

// swagger:model PageRequest
type PageRequest struct {
	ModuleID uint   `json:"moduleId" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content"`
	Type     string `json:"type" binding:"required,oneof=text code video"`
	Image    string `json:"image"`
	Order    int    `json:"order" binding:"min=0"`
}

// Create godoc
// @Summary 创建页面
// @Tags 管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body PageRequest true "页面信息"
// @Success 201 {object} util.Response{data=model.Page} "创建成功"
// @Failure 404 {object} util.Response "模块不存在"
// @Router /admin/pages [post]
func (c *PageController) Create(ctx *gin.Context) {
	var req PageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	page := &model.Page{
		ModuleID: req.ModuleID,
		Title:    req.Title,
		Content:  req.Content,
		Type:     model.PageType(req.Type),
		Image:    req.Image,
		Order:    req.Order,
	}

	if err := c.PageService.Create(page); err != nil {
		if errors.Is(err, util.ErrModuleNotFound) {
			util.Error(ctx, 404, "Module not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, page)
}

// Update godoc
// @Summary 更新页面
// @Tags 管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "页面ID"
// @Success 200 {object} util.Response "更新成功"
// @Failure 404 {object} util.Response "页面不存在"
// @Router /admin/pages/{id} [put]
func (c *PageController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var values map[string]interface{}
	if err := ctx.ShouldBindJSON(&values); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	// 序号列名与保留字冲突，入库用 page_order
	if order, ok := values["order"]; ok {
		delete(values, "order")
		values["page_order"] = order
	}

	if err := c.PageService.Update(id, values); err != nil {
		if errors.Is(err, util.ErrPageNotFound) {
			util.Error(ctx, 404, "Page not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"message": "Page updated successfully"})
}

// Delete godoc
// @Summary 删除页面
// @Tags 管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "页面ID"
// @Success 200 {object} util.Response "删除成功"
// @Router /admin/pages/{id} [delete]
func (c *PageController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.PageService.Delete(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Page deleted successfully"})
}
