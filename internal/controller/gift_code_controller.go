package controller

import (
	"errors"
	"fmt"

	"hacklab_backend/internal/service"
	"hacklab_backend/internal/util"
	"hacklab_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type GiftCodeController struct {
	GiftCodeService *service.GiftCodeService
}

func NewGiftCodeController(giftCodeService *service.GiftCodeService) *GiftCodeController {
	return &GiftCodeController{GiftCodeService: giftCodeService}
}

// swagger:model RedeemRequest
type RedeemRequest struct {
	Code string `json:"code" binding:"required"`
}

// Redeem godoc
// @Summary 兑换礼品码
// @Description 每个礼品码只能被兑换一次，码值大小写不敏感
// @Tags 礼品码
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body RedeemRequest true "礼品码"
// @Success 200 {object} util.Response{data=object} "兑换成功"
// @Failure 400 {object} util.Response "已被使用或停用"
// @Failure 404 {object} util.Response "礼品码不存在"
// @Router /gift-codes/redeem [post]
func (c *GiftCodeController) Redeem(ctx *gin.Context) {
	var req RedeemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	value, err := c.GiftCodeService.Redeem(claims.UserID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrGiftCodeNotFound):
			monitoring.GiftCodeRedemptions.WithLabelValues("not_found").Inc()
			util.Error(ctx, 404, "Gift code not found")
		case errors.Is(err, util.ErrGiftCodeUsed):
			monitoring.GiftCodeRedemptions.WithLabelValues("used").Inc()
			util.BadRequest(ctx, "Gift code already used or inactive")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	monitoring.GiftCodeRedemptions.WithLabelValues("redeemed").Inc()
	util.Success(ctx, gin.H{
		"message": fmt.Sprintf("Gift code redeemed! %d cubes added.", value),
		"value":   value,
	})
}

// List godoc
// @Summary 礼品码列表
// @Tags 管理
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.GiftCode} "成功"
// @Router /admin/gift-codes [get]
func (c *GiftCodeController) List(ctx *gin.Context) {
	codes, err := c.GiftCodeService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, codes)
}

// swagger:model GiftCodeRequest
type GiftCodeRequest struct {
	Code   string `json:"code" binding:"required,min=4,max=64"`
	Value  int    `json:"value" binding:"required,min=1"`
	Active *bool  `json:"active"`
}

// Create godoc
// @Summary 创建礼品码
// @Tags 管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body GiftCodeRequest true "礼品码信息"
// @Success 201 {object} util.Response{data=model.GiftCode} "创建成功"
// @Router /admin/gift-codes [post]
func (c *GiftCodeController) Create(ctx *gin.Context) {
	var req GiftCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	code, err := c.GiftCodeService.Create(req.Code, req.Value, active)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, code)
}

// Update godoc
// @Summary 更新礼品码
// @Tags 管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "礼品码ID"
// @Success 200 {object} util.Response "更新成功"
// @Failure 404 {object} util.Response "礼品码不存在"
// @Router /admin/gift-codes/{id} [put]
func (c *GiftCodeController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var values map[string]interface{}
	if err := ctx.ShouldBindJSON(&values); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.GiftCodeService.Update(id, values); err != nil {
		if errors.Is(err, util.ErrGiftCodeNotFound) {
			util.Error(ctx, 404, "Gift code not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"message": "Gift code updated successfully"})
}

// Delete godoc
// @Summary 删除礼品码
// @Tags 管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "礼品码ID"
// @Success 200 {object} util.Response "删除成功"
// @Router /admin/gift-codes/{id} [delete]
func (c *GiftCodeController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.GiftCodeService.Delete(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Gift code deleted successfully"})
}
