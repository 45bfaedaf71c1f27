package util

import "errors"

var (
	ErrUserNotFound             = errors.New("用户不存在")
	ErrUsernameRegistered       = errors.New("该用户名已被注册")
	ErrInvalidCredentials       = errors.New("用户名或密码错误")
	ErrPermissionDenied         = errors.New("permission denied")
	ErrSubjectNotFound          = errors.New("学科不存在")
	ErrChapterNotFound          = errors.New("章节不存在")
	ErrQuestionNotFound         = errors.New("题目不存在")
	ErrQuestionDisabled         = errors.New("题目已禁用")
	ErrQuestionTypeNotSupported = errors.New("该题型暂不支持自动判题")
	ErrMalformedAnswer          = errors.New("答案格式不正确")
	ErrNoQuestionsAvailable     = errors.New("当前条件下没有可用题目")
	ErrChapterRequired          = errors.New("章节练习必须指定章节")
	ErrUnknownPracticeMode      = errors.New("未知的练习模式")
	ErrGradingRecordNotFound    = errors.New("判题记录不存在")
	ErrAlreadyFavorited         = errors.New("已收藏该题目")
	ErrFavoriteNotFound         = errors.New("收藏记录不存在")
	ErrAIServiceFailure         = errors.New("AI服务调用失败")
)
