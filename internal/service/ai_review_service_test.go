package service

import (
	"testing"

	"tiku_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyApproval(t *testing.T) {
	record := &model.AIGradingRecord{AIScore: 7.5, AIConfidence: 0.6, ManualReview: true}

	applyApproval(record)

	require.NotNil(t, record.FinalScore)
	assert.Equal(t, 7.5, *record.FinalScore)
	assert.True(t, record.ManualReview)
}

func TestBatchApproveSkipRule(t *testing.T) {
	record := &model.AIGradingRecord{AIScore: 7.5}
	assert.False(t, reviewFinalized(record))

	applyApproval(record)
	assert.True(t, reviewFinalized(record))
	// 已定分后再次批量通过被跳过，最终分不变
	assert.Equal(t, 7.5, *record.FinalScore)
}

func TestBatchApproveKeepsManualScore(t *testing.T) {
	record := &model.AIGradingRecord{AIScore: 6.0}

	// 人工复核先定了分
	manual := 9.0
	record.ManualScore = &manual
	record.FinalScore = &manual

	// 定分记录不参与批量通过，人工评分不会被AI分覆盖
	assert.True(t, reviewFinalized(record))
	assert.Equal(t, 9.0, *record.FinalScore)
}
