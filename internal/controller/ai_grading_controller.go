package controller

import (
	"errors"
	"strconv"

	"tiku_backend/internal/service"
	"tiku_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AIGradingController struct {
	Service *service.AIReviewService
}

func NewAIGradingController(svc *service.AIReviewService) *AIGradingController {
	return &AIGradingController{Service: svc}
}

// @Summary 待人工复核的AI判题记录
// @Tags AI判题管理
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response
// @Router /api/admin/ai-grading/pending [get]
func (c *AIGradingController) ListPending(ctx *gin.Context) {
	page, limit := pagination(ctx)

	records, total, err := c.Service.ListPending(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  records,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary AI判题统计
// @Tags AI判题管理
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/admin/ai-grading/stats [get]
func (c *AIGradingController) Stats(ctx *gin.Context) {
	stats, err := c.Service.Stats()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

type reviewRequest struct {
	Score   *float64 `json:"score" binding:"required"`
	Comment string   `json:"comment"`
}

// @Summary 人工复核AI判题
// @Tags AI判题管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "AI判题记录ID"
// @Param body body reviewRequest true "人工评分"
// @Success 200 {object} util.Response
// @Router /api/admin/ai-grading/{id}/review [put]
func (c *AIGradingController) Review(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req reviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if *req.Score < 0 {
		util.BadRequest(ctx, "评分不能为负数")
		return
	}

	if err := c.Service.Review(uint(id), user.UserID, *req.Score, req.Comment); err != nil {
		switch {
		case errors.Is(err, util.ErrGradingRecordNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

type batchApproveRequest struct {
	IDs []uint `json:"ids" binding:"required"`
}

// @Summary 批量通过AI判题结果
// @Tags AI判题管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body batchApproveRequest true "记录ID列表"
// @Success 200 {object} util.Response
// @Router /api/admin/ai-grading/batch-approve [post]
func (c *AIGradingController) BatchApprove(ctx *gin.Context) {
	var req batchApproveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Service.BatchApprove(req.IDs); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 删除AI判题记录
// @Tags AI判题管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "AI判题记录ID"
// @Success 200 {object} util.Response
// @Router /api/admin/ai-grading/{id} [delete]
func (c *AIGradingController) Delete(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	if err := c.Service.Delete(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
