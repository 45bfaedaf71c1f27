package service

import (
	"testing"

	"tiku_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestValidateAnswerFormat(t *testing.T) {
	tests := []struct {
		name    string
		qType   model.QuestionType
		answer  string
		wantErr bool
	}{
		{"单选字符串", model.TypeSingle, `{"answer": "A"}`, false},
		{"单选给了数组", model.TypeSingle, `{"answer": ["A"]}`, true},
		{"多选数组", model.TypeMultiple, `{"answer": ["A", "B"]}`, false},
		{"多选单字符串兼容", model.TypeMultiple, `{"answer": "A"}`, false},
		{"多选给了映射", model.TypeMultiple, `{"answer": {"a": "b"}}`, true},
		{"判断布尔", model.TypeJudge, `{"answer": true}`, false},
		{"判断中文", model.TypeJudge, `{"answer": "对"}`, false},
		{"判断非法", model.TypeJudge, `{"answer": "也许"}`, true},
		{"填空数组", model.TypeFill, `{"answer": ["北京|北京市", "上海"]}`, false},
		{"排序数组", model.TypeOrdering, `{"answer": ["1", "2", "3"]}`, false},
		{"匹配映射", model.TypeMatching, `{"answer": {"HTTP": "80"}}`, false},
		{"匹配给了数组", model.TypeMatching, `{"answer": ["HTTP", "80"]}`, true},
		{"简答文本", model.TypeShortAnswer, `{"answer": "参考答案", "keywords": ["k"]}`, false},
		{"论述文本", model.TypeEssay, `{"answer": "论述参考答案"}`, false},
		{"空答案", model.TypeSingle, ``, true},
		{"非法JSON", model.TypeSingle, `{"answer": `, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAnswerFormat(tt.qType, tt.answer)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
