package controller

import (
	"errors"

	"tiku_backend/internal/service"
	"tiku_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GradingController struct {
	Service *service.GradingService
}

func NewGradingController(svc *service.GradingService) *GradingController {
	return &GradingController{Service: svc}
}

// @Summary 提交答案并判题
// @Tags 判题
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.SubmitAnswerRequest true "答案"
// @Success 200 {object} util.Response
// @Router /api/grading/submit [post]
func (c *GradingController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.SubmitAndGrade(ctx.Request.Context(), &req, user.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuestionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrQuestionTypeNotSupported),
			errors.Is(err, util.ErrQuestionDisabled):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// @Summary 批量提交答案（交卷）
// @Tags 判题
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body []service.SubmitAnswerRequest true "答案列表"
// @Success 200 {object} util.Response
// @Router /api/grading/batch-submit [post]
func (c *GradingController) BatchSubmit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var reqs []service.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&reqs); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if len(reqs) == 0 {
		util.BadRequest(ctx, "答案列表不能为空")
		return
	}

	results, err := c.Service.BatchSubmitAndGrade(ctx.Request.Context(), reqs, user.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuestionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrQuestionTypeNotSupported),
			errors.Is(err, util.ErrQuestionDisabled):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, results)
}
