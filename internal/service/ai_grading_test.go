package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"tiku_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatClient struct {
	content string
	model   string
	err     error
	calls   int
}

func (f *fakeChatClient) Chat(ctx context.Context, systemPrompt, userPrompt string) (string, string, error) {
	f.calls++
	return f.content, f.model, f.err
}

func subjectiveQuestion() *model.Question {
	q := &model.Question{
		Type:   model.TypeShortAnswer,
		Title:  "简述进程与线程的区别",
		Answer: `{"answer": "进程是资源分配的基本单位，线程是CPU调度的基本单位"}`,
		Score:  10,
	}
	q.ID = 1
	return q
}

func TestAIGrade_EmptyAnswerSkipsAICall(t *testing.T) {
	client := &fakeChatClient{}
	s := NewAIGradingStrategy(client, 0.75)

	result, err := s.Grade(context.Background(), subjectiveQuestion(), `{"answer": "   "}`)
	require.NoError(t, err)

	assert.Equal(t, 0, client.calls)
	assert.False(t, result.IsCorrect)
	assert.Equal(t, 0.0, result.Score)
	assert.False(t, result.NeedManualReview)
	require.NotNil(t, result.AIFeedback)
	assert.Equal(t, "未作答", result.AIFeedback.Comment)
	assert.Equal(t, 1.0, result.AIFeedback.Confidence)
}

func TestAIGrade_Success(t *testing.T) {
	client := &fakeChatClient{
		content: `{"score": 8, "totalScore": 10, "confidence": 0.9, "strengths": ["要点完整"], "weaknesses": ["表达欠规范"], "suggestions": "注意术语", "comment": "回答较好"}`,
		model:   "gpt-4o-mini",
	}
	s := NewAIGradingStrategy(client, 0.75)

	result, err := s.Grade(context.Background(), subjectiveQuestion(), `{"answer": "进程是资源分配单位，线程是调度单位"}`)
	require.NoError(t, err)

	assert.Equal(t, 1, client.calls)
	assert.Equal(t, 8.0, result.Score)
	assert.Equal(t, 10.0, result.TotalScore)
	assert.True(t, result.IsCorrect)
	assert.False(t, result.NeedManualReview)
	require.NotNil(t, result.AIFeedback)
	assert.Equal(t, 0.9, result.AIFeedback.Confidence)
	assert.Equal(t, "gpt-4o-mini", result.AIFeedback.Model)
	assert.Equal(t, "回答较好", result.AIFeedback.Comment)
}

func TestAIGrade_JSONWrappedInProse(t *testing.T) {
	client := &fakeChatClient{
		content: "好的，以下是评分结果：\n```json\n{\"score\": 6, \"confidence\": 0.8, \"comment\": \"基本正确\"}\n```\n希望对你有帮助。",
	}
	s := NewAIGradingStrategy(client, 0.75)

	result, err := s.Grade(context.Background(), subjectiveQuestion(), `{"answer": "进程和线程不同"}`)
	require.NoError(t, err)
	assert.Equal(t, 6.0, result.Score)
	assert.True(t, result.IsCorrect)
}

func TestAIGrade_LowConfidenceNeedsReview(t *testing.T) {
	client := &fakeChatClient{
		content: `{"score": 7, "confidence": 0.6, "comment": "把握不大"}`,
	}
	s := NewAIGradingStrategy(client, 0.75)

	result, err := s.Grade(context.Background(), subjectiveQuestion(), `{"answer": "进程线程云云"}`)
	require.NoError(t, err)
	assert.True(t, result.NeedManualReview)
}

func TestAIGrade_ConfidenceExactlyAtThreshold(t *testing.T) {
	client := &fakeChatClient{
		content: `{"score": 7, "confidence": 0.75, "comment": "ok"}`,
	}
	s := NewAIGradingStrategy(client, 0.75)

	// 阈值判定为严格小于，恰好等于阈值不转人工
	result, err := s.Grade(context.Background(), subjectiveQuestion(), `{"answer": "进程线程"}`)
	require.NoError(t, err)
	assert.False(t, result.NeedManualReview)
}

func TestAIGrade_ScoreAndConfidenceClamped(t *testing.T) {
	client := &fakeChatClient{
		content: `{"score": 99, "confidence": 1.8, "comment": "超纲"}`,
	}
	s := NewAIGradingStrategy(client, 0.75)

	result, err := s.Grade(context.Background(), subjectiveQuestion(), `{"answer": "作答内容"}`)
	require.NoError(t, err)
	assert.Equal(t, 10.0, result.Score)
	assert.Equal(t, 1.0, result.AIFeedback.Confidence)

	client.content = `{"score": -3, "confidence": -0.5, "comment": "负分"}`
	result, err = s.Grade(context.Background(), subjectiveQuestion(), `{"answer": "作答内容"}`)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, 0.0, result.AIFeedback.Confidence)
	assert.True(t, result.NeedManualReview)
}

func TestAIGrade_ScoreRateBoundary(t *testing.T) {
	s := NewAIGradingStrategy(&fakeChatClient{}, 0.75)

	tests := []struct {
		score float64
		want  bool
	}{
		{5, true},  // 得分率恰好50%
		{4.9, false},
		{10, true},
		{0, false},
	}

	for _, tt := range tests {
		client := &fakeChatClient{
			content: `{"score": ` + strconv.FormatFloat(tt.score, 'f', -1, 64) + `, "confidence": 0.9}`,
		}
		s.AI = client
		result, err := s.Grade(context.Background(), subjectiveQuestion(), `{"answer": "作答内容"}`)
		require.NoError(t, err)
		assert.Equal(t, tt.want, result.IsCorrect, "score=%v", tt.score)
	}
}

func TestAIGrade_CallFailureDegrades(t *testing.T) {
	client := &fakeChatClient{err: errors.New("connection refused")}
	s := NewAIGradingStrategy(client, 0.75)

	result, err := s.Grade(context.Background(), subjectiveQuestion(), `{"answer": "作答内容"}`)
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.Score)
	assert.False(t, result.IsCorrect)
	assert.True(t, result.NeedManualReview)
	assert.Nil(t, result.AIFeedback)
}

func TestAIGrade_UnparseableResponseDegrades(t *testing.T) {
	client := &fakeChatClient{content: "抱歉，我无法完成评分。"}
	s := NewAIGradingStrategy(client, 0.75)

	result, err := s.Grade(context.Background(), subjectiveQuestion(), `{"answer": "作答内容"}`)
	require.NoError(t, err)
	assert.True(t, result.NeedManualReview)
	assert.Equal(t, 0.0, result.Score)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"纯JSON", `{"score": 8}`, `{"score": 8}`},
		{"前后有说明文字", "评分如下：{\"score\": 8}供参考", `{"score": 8}`},
		{"嵌套对象", `前缀{"a": {"b": 1}}后缀`, `{"a": {"b": 1}}`},
		{"字符串内的花括号", `{"comment": "注意{重点}部分"}`, `{"comment": "注意{重点}部分"}`},
		{"字符串内的转义引号", `{"comment": "他说\"对\""}`, `{"comment": "他说\"对\""}`},
		{"无JSON", "没有结构化内容", "没有结构化内容"},
		{"未闭合", `{"score": 8`, `{"score": 8`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.text))
		})
	}
}

func TestBuildGradingPrompt_DefaultCriteria(t *testing.T) {
	q := subjectiveQuestion()
	prompt := buildGradingPrompt(q, "参考答案", "学生答案")

	// 默认评分标准：要点完整性40% 准确性30% 逻辑性20% 表达规范性10%
	assert.Contains(t, prompt, "要点完整性（4.0分）")
	assert.Contains(t, prompt, "准确性（3.0分）")
	assert.Contains(t, prompt, "逻辑性（2.0分）")
	assert.Contains(t, prompt, "表达规范性（1.0分）")
	assert.Contains(t, prompt, "【学生答案】")
	assert.Contains(t, prompt, "学生答案")
}

func TestBuildGradingPrompt_CustomCriteria(t *testing.T) {
	q := subjectiveQuestion()
	q.ScoringCriteria = `[{"dimension":"核心概念","score":6,"description":"概念准确"},{"dimension":"举例","score":4,"description":"有合理例子"}]`

	prompt := buildGradingPrompt(q, "参考答案", "学生答案")
	assert.Contains(t, prompt, "核心概念（6.0分）")
	assert.Contains(t, prompt, "举例（4.0分）")
	assert.NotContains(t, prompt, "要点完整性")
}

func TestGradingSystemPrompt(t *testing.T) {
	assert.Contains(t, gradingSystemPrompt(model.TypeShortAnswer), "简答题")
	assert.Contains(t, gradingSystemPrompt(model.TypeEssay), "论述题")
	assert.Contains(t, gradingSystemPrompt(model.TypeCaseAnalysis), "案例分析题")
	assert.Contains(t, gradingSystemPrompt(model.TypeMaterialAnalysis), "材料分析题")
}
