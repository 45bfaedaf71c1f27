package service

import (
	"testing"

	"tiku_backend/internal/model"
	"tiku_backend/internal/util"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults(t *testing.T) {
	req := &PracticeRequest{SubjectID: 1, Mode: util.ModeRandom}
	req.applyDefaults()

	assert.Equal(t, util.DefaultPracticeCount, req.Count)
	assert.Equal(t, util.DefaultTimePerQuestion, req.TimePerQuestion)
	assert.Equal(t, util.DefaultExamDuration, req.ExamDuration)
	assert.Equal(t, 1, req.ChallengeLevel)

	// 显式给定时不覆盖
	req = &PracticeRequest{SubjectID: 1, Mode: util.ModeExam, Count: 50, ExamDuration: 120}
	req.applyDefaults()
	assert.Equal(t, 50, req.Count)
	assert.Equal(t, 120, req.ExamDuration)
}

func TestExamAllocations(t *testing.T) {
	tests := []struct {
		total    int
		chapters int
		want     []int
	}{
		{20, 4, []int{5, 5, 5, 5}},
		{30, 3, []int{10, 10, 10}},
		{32, 3, []int{11, 11, 10}}, // 余数分给靠前章节
		{20, 3, []int{7, 7, 6}},
		{7, 3, []int{3, 2, 2}},
		{1, 5, []int{1, 1, 1, 1, 1}}, // 章节数多于题量时每章至少1道，汇总打乱后截断
	}

	for _, tt := range tests {
		got := examAllocations(tt.total, tt.chapters)
		assert.Equal(t, tt.want, got, "total=%d chapters=%d", tt.total, tt.chapters)
	}
}

func TestChapterModeRequiresChapter(t *testing.T) {
	svc := &PracticeService{}

	_, err := svc.chapterQuestions(&PracticeRequest{SubjectID: 1, Mode: util.ModeChapter})
	assert.ErrorIs(t, err, util.ErrChapterRequired)
}

func TestChallengeParams(t *testing.T) {
	tests := []struct {
		level     int
		wantDiff  model.Difficulty
		wantCount int
	}{
		{1, model.DifficultyEasy, 10},
		{3, model.DifficultyEasy, 10},
		{4, model.DifficultyMedium, 15},
		{6, model.DifficultyMedium, 15},
		{7, model.DifficultyHard, 20},
		{99, model.DifficultyHard, 20},
	}

	for _, tt := range tests {
		diff, count := challengeParams(tt.level)
		assert.Equal(t, tt.wantDiff, diff, "level=%d", tt.level)
		assert.Equal(t, tt.wantCount, count, "level=%d", tt.level)
	}
}

func TestOrderByIDs(t *testing.T) {
	q := func(id uint) model.Question {
		var question model.Question
		question.ID = id
		return question
	}

	questions := []model.Question{q(1), q(2), q(3)}

	ordered := orderByIDs(questions, []uint{3, 1, 2})
	ids := make([]uint, 0, len(ordered))
	for _, item := range ordered {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []uint{3, 1, 2}, ids)

	// 查不到的ID直接跳过
	ordered = orderByIDs(questions, []uint{2, 99, 1})
	assert.Len(t, ordered, 2)
	assert.Equal(t, uint(2), ordered[0].ID)
	assert.Equal(t, uint(1), ordered[1].ID)
}

func TestWeakestChapter(t *testing.T) {
	tests := []struct {
		name  string
		stats map[uint]chapterStat
		want  uint
	}{
		{
			"正确率最低者胜出",
			map[uint]chapterStat{
				1: {total: 10, correct: 9},
				2: {total: 10, correct: 3},
				3: {total: 10, correct: 7},
			},
			2,
		},
		{
			"同率取ID较小者",
			map[uint]chapterStat{
				5: {total: 4, correct: 2},
				3: {total: 4, correct: 2},
			},
			3,
		},
		{
			"无章节归属的记录不参与",
			map[uint]chapterStat{
				0: {total: 10, correct: 0},
				2: {total: 5, correct: 5},
			},
			2,
		},
		{"空样本返回0", map[uint]chapterStat{}, 0},
		{"nil样本返回0", nil, 0},
		{
			"零答题量章节跳过",
			map[uint]chapterStat{
				1: {total: 0, correct: 0},
				2: {total: 2, correct: 2},
			},
			2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, weakestChapter(tt.stats))
		})
	}
}
