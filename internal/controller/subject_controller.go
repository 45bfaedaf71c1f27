package controller

import (
	"errors"
	"strconv"

	"tiku_backend/internal/model"
	"tiku_backend/internal/service"
	"tiku_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubjectController struct {
	Service *service.SubjectService
}

func NewSubjectController(svc *service.SubjectService) *SubjectController {
	return &SubjectController{Service: svc}
}

// @Summary 学科列表
// @Tags 学科
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/subjects [get]
func (c *SubjectController) List(ctx *gin.Context) {
	subjects, err := c.Service.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subjects)
}

// @Summary 学科下的章节列表
// @Tags 学科
// @Produce json
// @Security BearerAuth
// @Param id path int true "学科ID"
// @Success 200 {object} util.Response
// @Router /api/subjects/{id}/chapters [get]
func (c *SubjectController) ListChapters(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	chapters, err := c.Service.ListChapters(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, chapters)
}

// @Summary 创建学科
// @Tags 学科管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.Subject true "学科"
// @Success 201 {object} util.Response
// @Router /api/admin/subjects [post]
func (c *SubjectController) Create(ctx *gin.Context) {
	var subject model.Subject
	if err := ctx.ShouldBindJSON(&subject); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if subject.Name == "" || subject.Code == "" {
		util.BadRequest(ctx, "name和code为必填项")
		return
	}

	if err := c.Service.Create(&subject); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, subject)
}

// @Summary 更新学科
// @Tags 学科管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "学科ID"
// @Param body body model.Subject true "学科"
// @Success 200 {object} util.Response
// @Router /api/admin/subjects/{id} [put]
func (c *SubjectController) Update(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var subject model.Subject
	if err := ctx.ShouldBindJSON(&subject); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	subject.ID = uint(id)

	if err := c.Service.Update(&subject); err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subject)
}

// @Summary 删除学科
// @Tags 学科管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "学科ID"
// @Success 200 {object} util.Response
// @Router /api/admin/subjects/{id} [delete]
func (c *SubjectController) Delete(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	if err := c.Service.Delete(uint(id)); err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 创建章节
// @Tags 学科管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.Chapter true "章节"
// @Success 201 {object} util.Response
// @Router /api/admin/chapters [post]
func (c *SubjectController) CreateChapter(ctx *gin.Context) {
	var chapter model.Chapter
	if err := ctx.ShouldBindJSON(&chapter); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if chapter.SubjectID == 0 || chapter.Name == "" {
		util.BadRequest(ctx, "subjectId和name为必填项")
		return
	}

	if err := c.Service.CreateChapter(&chapter); err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, chapter)
}

// @Summary 更新章节
// @Tags 学科管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "章节ID"
// @Param body body model.Chapter true "章节"
// @Success 200 {object} util.Response
// @Router /api/admin/chapters/{id} [put]
func (c *SubjectController) UpdateChapter(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var chapter model.Chapter
	if err := ctx.ShouldBindJSON(&chapter); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	chapter.ID = uint(id)

	if err := c.Service.UpdateChapter(&chapter); err != nil {
		if errors.Is(err, util.ErrChapterNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, chapter)
}

// @Summary 删除章节
// @Tags 学科管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "章节ID"
// @Success 200 {object} util.Response
// @Router /api/admin/chapters/{id} [delete]
func (c *SubjectController) DeleteChapter(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	if err := c.Service.DeleteChapter(uint(id)); err != nil {
		if errors.Is(err, util.ErrChapterNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
