package service

import (
	"strings"

	"tiku_backend/internal/model"
	"tiku_backend/internal/util"
)

// AutoGradingStrategy 客观题自动判题
// 支持：单选、多选、判断、填空、排序、匹配
// 判题结论是二值的：全对得满分，否则0分，客观题不给部分分
type AutoGradingStrategy struct{}

func NewAutoGradingStrategy() *AutoGradingStrategy {
	return &AutoGradingStrategy{}
}

func (s *AutoGradingStrategy) Supports(t model.QuestionType) bool {
	return t.IsObjective()
}

func (s *AutoGradingStrategy) Grade(question *model.Question, userAnswer string) (*GradingResult, error) {
	correct, err := s.compare(question.Type, question.Answer, userAnswer)
	if err != nil {
		return nil, err
	}

	score := 0.0
	if correct {
		score = question.Score
	}

	return &GradingResult{
		IsCorrect:      correct,
		Score:          score,
		TotalScore:     question.Score,
		GradingType:    model.GradingAuto,
		CorrectAnswer:  question.Answer,
		AnswerAnalysis: question.AnswerAnalysis,
	}, nil
}

func (s *AutoGradingStrategy) compare(t model.QuestionType, standardRaw, userRaw string) (bool, error) {
	standard, err := decodeAnswerPayload(standardRaw)
	if err != nil {
		return false, err
	}
	user, err := decodeAnswerPayload(userRaw)
	if err != nil {
		return false, err
	}

	switch t {
	case model.TypeSingle:
		sv, err := answerAsString(standard)
		if err != nil {
			return false, err
		}
		uv, err := answerAsString(user)
		if err != nil {
			return false, err
		}
		return strings.EqualFold(strings.TrimSpace(sv), strings.TrimSpace(uv)), nil

	case model.TypeMultiple:
		sv, err := answerAsStringSlice(standard)
		if err != nil {
			return false, err
		}
		uv, err := answerAsStringSlice(user)
		if err != nil {
			return false, err
		}
		// 集合相等，选项顺序无关
		return stringSetEqual(sv, uv), nil

	case model.TypeJudge:
		sv, err := answerAsBool(standard)
		if err != nil {
			return false, err
		}
		uv, err := answerAsBool(user)
		if err != nil {
			return false, err
		}
		return sv == uv, nil

	case model.TypeFill:
		return compareFill(standard, user)

	case model.TypeOrdering:
		sv, err := answerAsStringSlice(standard)
		if err != nil {
			return false, err
		}
		uv, err := answerAsStringSlice(user)
		if err != nil {
			return false, err
		}
		// 顺序敏感，逐项相等
		if len(sv) != len(uv) {
			return false, nil
		}
		for i := range sv {
			if strings.TrimSpace(sv[i]) != strings.TrimSpace(uv[i]) {
				return false, nil
			}
		}
		return true, nil

	case model.TypeMatching:
		sv, err := answerAsStringMap(standard)
		if err != nil {
			return false, err
		}
		uv, err := answerAsStringMap(user)
		if err != nil {
			return false, err
		}
		if len(sv) != len(uv) {
			return false, nil
		}
		for k, v := range sv {
			if strings.TrimSpace(uv[k]) != strings.TrimSpace(v) {
				return false, nil
			}
		}
		return true, nil
	}

	return false, util.ErrQuestionTypeNotSupported
}

// compareFill 填空题：空数必须一致，每空支持 | 分隔的多个可接受答案
func compareFill(standard, user []byte) (bool, error) {
	sv, err := answerAsStringSlice(standard)
	if err != nil {
		return false, err
	}
	uv, err := answerAsStringSlice(user)
	if err != nil {
		return false, err
	}
	if len(sv) != len(uv) {
		return false, nil
	}

	for i := range sv {
		alternates := strings.Split(sv[i], "|")
		matched := false
		for _, alt := range alternates {
			if normalizeText(alt) == normalizeText(uv[i]) {
				matched = true
				break
			}
		}
		if !matched {
			return false, nil
		}
	}
	return true, nil
}

// stringSetEqual 集合语义比较，重复项只计一次
func stringSetEqual(a, b []string) bool {
	return stringSetOf(a).equal(stringSetOf(b))
}

type stringSet map[string]struct{}

func stringSetOf(items []string) stringSet {
	s := make(stringSet, len(items))
	for _, v := range items {
		s[strings.TrimSpace(v)] = struct{}{}
	}
	return s
}

func (s stringSet) equal(other stringSet) bool {
	if len(s) != len(other) {
		return false
	}
	for k := range s {
		if _, ok := other[k]; !ok {
			return false
		}
	}
	return true
}
