package service

import (
	"testing"

	"tiku_backend/internal/model"
	"tiku_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectGradingType(t *testing.T) {
	tests := []struct {
		name      string
		qType     model.QuestionType
		aiEnabled bool
		want      model.GradingType
		wantErr   bool
	}{
		{"单选走自动判题", model.TypeSingle, false, model.GradingAuto, false},
		{"多选走自动判题", model.TypeMultiple, false, model.GradingAuto, false},
		{"判断走自动判题", model.TypeJudge, false, model.GradingAuto, false},
		{"填空走自动判题", model.TypeFill, false, model.GradingAuto, false},
		{"排序走自动判题", model.TypeOrdering, false, model.GradingAuto, false},
		{"匹配走自动判题", model.TypeMatching, false, model.GradingAuto, false},
		{"客观题开启AI仍走自动判题", model.TypeSingle, true, model.GradingAuto, false},
		{"简答走AI", model.TypeShortAnswer, false, model.GradingAI, false},
		{"论述走AI", model.TypeEssay, false, model.GradingAI, false},
		{"案例分析走AI", model.TypeCaseAnalysis, true, model.GradingAI, false},
		{"材料分析走AI", model.TypeMaterialAnalysis, false, model.GradingAI, false},
		{"计算题暂不支持", model.TypeCalculation, false, "", true},
		{"组合题暂不支持", model.TypeComposite, true, "", true},
		{"编程题暂不支持", model.TypeProgramming, false, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := selectGradingType(tt.qType, tt.aiEnabled)
			if tt.wantErr {
				require.ErrorIs(t, err, util.ErrQuestionTypeNotSupported)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextWrongState(t *testing.T) {
	tests := []struct {
		name       string
		wrongCount int
		correct    bool
		wantCount  int
		wantStatus model.WrongStatus
	}{
		{"首次答错", 0, false, 1, model.WrongStatusWrong},
		{"第二次答错", 1, false, 2, model.WrongStatusWrong},
		{"第三次答错升级反复错", 2, false, 3, model.WrongStatusRepeatedWrong},
		{"反复错后继续错", 3, false, 4, model.WrongStatusRepeatedWrong},
		{"答对标记已掌握且计数保留", 2, true, 2, model.WrongStatusMastered},
		{"反复错后答对", 5, true, 5, model.WrongStatusMastered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, status := nextWrongState(tt.wrongCount, tt.correct)
			assert.Equal(t, tt.wantCount, count)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}
