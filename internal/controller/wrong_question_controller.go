package controller

import (
	"strconv"

	"tiku_backend/internal/model"
	"tiku_backend/internal/service"
	"tiku_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type WrongQuestionController struct {
	Service *service.WrongQuestionService
}

func NewWrongQuestionController(svc *service.WrongQuestionService) *WrongQuestionController {
	return &WrongQuestionController{Service: svc}
}

// @Summary 错题列表
// @Tags 错题本
// @Produce json
// @Security BearerAuth
// @Param subjectId query int false "学科ID"
// @Param chapterId query int false "章节ID"
// @Param type query string false "题型"
// @Param status query string false "状态 WRONG/REPEATED_WRONG/MASTERED"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response
// @Router /api/wrong-questions [get]
func (c *WrongQuestionController) List(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := pagination(ctx)
	query := service.WrongQuestionQuery{
		SubjectID: util.MustParseUint(ctx.Query("subjectId")),
		ChapterID: util.MustParseUint(ctx.Query("chapterId")),
		Type:      model.QuestionType(ctx.Query("type")),
		Status:    model.WrongStatus(ctx.Query("status")),
		Page:      page,
		Limit:     limit,
	}

	items, total, err := c.Service.List(user.UserID, query)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  items,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary 错题统计
// @Tags 错题本
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/wrong-questions/stats [get]
func (c *WrongQuestionController) Stats(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.Service.Stats(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// @Summary 标记为已掌握
// @Tags 错题本
// @Produce json
// @Security BearerAuth
// @Param questionId path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/wrong-questions/{questionId}/master [put]
func (c *WrongQuestionController) MarkMastered(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	questionID, err := strconv.Atoi(ctx.Param("questionId"))
	if err != nil {
		util.BadRequest(ctx, "invalid questionId")
		return
	}

	if err := c.Service.MarkMastered(user.UserID, uint(questionID)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 从错题本移除
// @Tags 错题本
// @Produce json
// @Security BearerAuth
// @Param questionId path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/wrong-questions/{questionId} [delete]
func (c *WrongQuestionController) Remove(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	questionID, err := strconv.Atoi(ctx.Param("questionId"))
	if err != nil {
		util.BadRequest(ctx, "invalid questionId")
		return
	}

	if err := c.Service.Remove(user.UserID, uint(questionID)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type batchRemoveRequest struct {
	QuestionIDs []uint `json:"questionIds" binding:"required"`
}

// @Summary 批量移除错题
// @Tags 错题本
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body batchRemoveRequest true "题目ID列表"
// @Success 200 {object} util.Response
// @Router /api/wrong-questions/batch-remove [post]
func (c *WrongQuestionController) BatchRemove(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req batchRemoveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Service.BatchRemove(user.UserID, req.QuestionIDs); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
