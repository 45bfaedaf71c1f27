package controller

import (
	"errors"
	"strconv"

	"tiku_backend/internal/service"
	"tiku_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type FavoriteController struct {
	Service *service.FavoriteService
}

func NewFavoriteController(svc *service.FavoriteService) *FavoriteController {
	return &FavoriteController{Service: svc}
}

type addFavoriteRequest struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	Note       string `json:"note"`
}

// @Summary 收藏题目
// @Tags 收藏
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body addFavoriteRequest true "收藏信息"
// @Success 201 {object} util.Response
// @Router /api/favorites [post]
func (c *FavoriteController) Add(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req addFavoriteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Service.Add(user.UserID, req.QuestionID, req.Note); err != nil {
		switch {
		case errors.Is(err, util.ErrQuestionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAlreadyFavorited):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, nil)
}

// @Summary 取消收藏
// @Tags 收藏
// @Produce json
// @Security BearerAuth
// @Param questionId path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/favorites/{questionId} [delete]
func (c *FavoriteController) Remove(ctx *gin.Context) {
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
		if errors.Is(err, util.ErrFavoriteNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 收藏列表
// @Tags 收藏
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response
// @Router /api/favorites [get]
func (c *FavoriteController) List(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := pagination(ctx)
	items, total, err := c.Service.List(user.UserID, page, limit)
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
