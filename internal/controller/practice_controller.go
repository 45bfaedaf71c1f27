package controller

import (
	"errors"

	"tiku_backend/internal/service"
	"tiku_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PracticeController struct {
	Service *service.PracticeService
}

func NewPracticeController(svc *service.PracticeService) *PracticeController {
	return &PracticeController{Service: svc}
}

type practiceModeInfo struct {
	Mode        string `json:"mode"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var practiceModes = []practiceModeInfo{
	{util.ModeSequential, "顺序刷题", "按题目顺序依次练习，支持断点续刷"},
	{util.ModeRandom, "随机刷题", "随机抽题练习"},
	{util.ModeChapter, "章节练习", "按章节专项练习"},
	{util.ModeExam, "模拟考试", "各章节均衡抽题，限时作答"},
	{util.ModeWrongQuestion, "错题强化", "专练错题本中的题目"},
	{util.ModeFavorite, "收藏专练", "专练收藏的题目"},
	{util.ModeChallenge, "闯关模式", "关卡递进，难度逐级提升"},
	{util.ModeTimed, "限时挑战", "每题限时，训练答题速度"},
	{util.ModeSmartRecommend, "智能推荐", "根据答题数据推荐薄弱章节题目"},
}

// @Summary 获取刷题模式列表
// @Tags 刷题
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/practice/modes [get]
func (c *PracticeController) Modes(ctx *gin.Context) {
	util.Success(ctx, practiceModes)
}

// @Summary 开始刷题
// @Tags 刷题
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.PracticeRequest true "刷题请求"
// @Success 200 {object} util.Response
// @Router /api/practice/start [post]
func (c *PracticeController) Start(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.PracticeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.Service.StartPractice(&req, user.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSubjectNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrChapterRequired),
			errors.Is(err, util.ErrNoQuestionsAvailable),
			errors.Is(err, util.ErrUnknownPracticeMode):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, session)
}
