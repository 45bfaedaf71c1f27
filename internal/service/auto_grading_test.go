package service

import (
	"testing"

	"tiku_backend/internal/model"
	"tiku_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func objectiveQuestion(t model.QuestionType, answer string) *model.Question {
	return &model.Question{
		Type:   t,
		Answer: answer,
		Score:  5,
	}
}

func TestAutoGrade_Single(t *testing.T) {
	s := NewAutoGradingStrategy()
	q := objectiveQuestion(model.TypeSingle, `{"answer": "A"}`)

	tests := []struct {
		name   string
		answer string
		want   bool
	}{
		{"完全一致", `{"answer": "A"}`, true},
		{"大小写不敏感", `{"answer": "a"}`, true},
		{"忽略首尾空格", `{"answer": " A "}`, true},
		{"裸值提交", `"A"`, true},
		{"答错", `{"answer": "B"}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.Grade(q, tt.answer)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.IsCorrect)
			if tt.want {
				assert.Equal(t, 5.0, result.Score)
			} else {
				assert.Equal(t, 0.0, result.Score)
			}
		})
	}
}

func TestAutoGrade_Multiple(t *testing.T) {
	s := NewAutoGradingStrategy()
	q := objectiveQuestion(model.TypeMultiple, `{"answer": ["A", "B", "C"]}`)

	tests := []struct {
		name   string
		answer string
		want   bool
	}{
		{"顺序一致", `{"answer": ["A", "B", "C"]}`, true},
		{"顺序无关", `{"answer": ["C", "A", "B"]}`, true},
		{"少选", `{"answer": ["A", "B"]}`, false},
		{"多选", `{"answer": ["A", "B", "C", "D"]}`, false},
		{"错选", `{"answer": ["A", "B", "D"]}`, false},
		{"重复项只计一次", `{"answer": ["A", "A", "B", "C"]}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.Grade(q, tt.answer)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.IsCorrect)
		})
	}
}

func TestAutoGrade_Judge(t *testing.T) {
	s := NewAutoGradingStrategy()
	q := objectiveQuestion(model.TypeJudge, `{"answer": true}`)

	tests := []struct {
		answer string
		want   bool
	}{
		{`{"answer": true}`, true},
		{`{"answer": "true"}`, true},
		{`{"answer": "对"}`, true},
		{`{"answer": "正确"}`, true},
		{`{"answer": "1"}`, true},
		{`{"answer": false}`, false},
		{`{"answer": "错"}`, false},
	}

	for _, tt := range tests {
		result, err := s.Grade(q, tt.answer)
		require.NoError(t, err, "answer=%s", tt.answer)
		assert.Equal(t, tt.want, result.IsCorrect, "answer=%s", tt.answer)
	}
}

func TestAutoGrade_Fill(t *testing.T) {
	s := NewAutoGradingStrategy()
	q := objectiveQuestion(model.TypeFill, `{"answer": ["北京|北京市", "上海"]}`)

	tests := []struct {
		name   string
		answer string
		want   bool
	}{
		{"标准答案", `{"answer": ["北京", "上海"]}`, true},
		{"备选答案", `{"answer": ["北京市", "上海"]}`, true},
		{"大小写与空格", `{"answer": [" 北京 ", "上海"]}`, true},
		{"某空答错", `{"answer": ["南京", "上海"]}`, false},
		{"空数不一致", `{"answer": ["北京"]}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.Grade(q, tt.answer)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.IsCorrect)
		})
	}
}

func TestAutoGrade_FillCaseInsensitive(t *testing.T) {
	s := NewAutoGradingStrategy()
	q := objectiveQuestion(model.TypeFill, `{"answer": ["TCP|tcp协议"]}`)

	result, err := s.Grade(q, `{"answer": ["tcp"]}`)
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
}

func TestAutoGrade_Ordering(t *testing.T) {
	s := NewAutoGradingStrategy()
	q := objectiveQuestion(model.TypeOrdering, `{"answer": ["需求分析", "设计", "编码", "测试"]}`)

	result, err := s.Grade(q, `{"answer": ["需求分析", "设计", "编码", "测试"]}`)
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)

	// 顺序敏感
	result, err = s.Grade(q, `{"answer": ["设计", "需求分析", "编码", "测试"]}`)
	require.NoError(t, err)
	assert.False(t, result.IsCorrect)

	result, err = s.Grade(q, `{"answer": ["需求分析", "设计", "编码"]}`)
	require.NoError(t, err)
	assert.False(t, result.IsCorrect)
}

func TestAutoGrade_Matching(t *testing.T) {
	s := NewAutoGradingStrategy()
	q := objectiveQuestion(model.TypeMatching, `{"answer": {"HTTP": "80", "HTTPS": "443"}}`)

	result, err := s.Grade(q, `{"answer": {"HTTPS": "443", "HTTP": "80"}}`)
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)

	result, err = s.Grade(q, `{"answer": {"HTTP": "443", "HTTPS": "80"}}`)
	require.NoError(t, err)
	assert.False(t, result.IsCorrect)

	result, err = s.Grade(q, `{"answer": {"HTTP": "80"}}`)
	require.NoError(t, err)
	assert.False(t, result.IsCorrect)
}

func TestAutoGrade_MalformedAnswer(t *testing.T) {
	s := NewAutoGradingStrategy()
	q := objectiveQuestion(model.TypeSingle, `{"answer": "A"}`)

	_, err := s.Grade(q, "")
	assert.ErrorIs(t, err, util.ErrMalformedAnswer)
}

func TestAutoGrade_UnsupportedType(t *testing.T) {
	s := NewAutoGradingStrategy()
	q := objectiveQuestion(model.TypeProgramming, `{"answer": "x"}`)

	_, err := s.Grade(q, `{"answer": "x"}`)
	assert.ErrorIs(t, err, util.ErrQuestionTypeNotSupported)
}

func TestAutoGradeSupports(t *testing.T) {
	s := NewAutoGradingStrategy()
	assert.True(t, s.Supports(model.TypeSingle))
	assert.True(t, s.Supports(model.TypeMatching))
	assert.False(t, s.Supports(model.TypeEssay))
	assert.False(t, s.Supports(model.TypeProgramming))
}
