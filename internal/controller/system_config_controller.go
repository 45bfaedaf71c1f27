package controller

import (
	"tiku_backend/internal/service"
	"tiku_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SystemConfigController struct {
	Service *service.SystemConfigService
}

func NewSystemConfigController(svc *service.SystemConfigService) *SystemConfigController {
	return &SystemConfigController{Service: svc}
}

// @Summary 系统配置列表
// @Tags 系统配置
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/admin/configs [get]
func (c *SystemConfigController) List(ctx *gin.Context) {
	configs, err := c.Service.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, configs)
}

type setConfigRequest struct {
	Key         string `json:"key" binding:"required"`
	Value       string `json:"value" binding:"required"`
	Description string `json:"description"`
}

// @Summary 设置系统配置项
// @Tags 系统配置
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body setConfigRequest true "配置项"
// @Success 200 {object} util.Response
// @Router /api/admin/configs [put]
func (c *SystemConfigController) Set(ctx *gin.Context) {
	var req setConfigRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Service.Set(ctx.Request.Context(), req.Key, req.Value, req.Description); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
