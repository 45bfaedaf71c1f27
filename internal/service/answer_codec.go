package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"tiku_backend/internal/util"
)

// 答案统一存储为 {"answer": ...} 包装的JSON。前端偶尔会直接提交裸值
// （如 "A" 或 ["A","B"]），解码时做兼容处理。

// decodeAnswerPayload 解析答案JSON，返回answer字段的原始值
// 兼容三种形式：{"answer": ...}包装、裸JSON值、裸字符串
func decodeAnswerPayload(raw string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, util.ErrMalformedAnswer
	}

	if strings.HasPrefix(trimmed, "{") {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal([]byte(trimmed), &obj); err != nil {
			return nil, util.ErrMalformedAnswer
		}
		if v, ok := obj["answer"]; ok {
			return v, nil
		}
		// 没有answer字段的对象按整体处理（匹配题答案本身就是映射）
		return json.RawMessage(trimmed), nil
	}

	var v json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &v); err == nil {
		return v, nil
	}

	// 裸字符串，如 A
	b, err := json.Marshal(trimmed)
	if err != nil {
		return nil, util.ErrMalformedAnswer
	}
	return json.RawMessage(b), nil
}

func answerAsString(v json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s, nil
	}
	var b bool
	if err := json.Unmarshal(v, &b); err == nil {
		return strconv.FormatBool(b), nil
	}
	var n float64
	if err := json.Unmarshal(v, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64), nil
	}
	return "", util.ErrMalformedAnswer
}

func answerAsBool(v json.RawMessage) (bool, error) {
	var b bool
	if err := json.Unmarshal(v, &b); err == nil {
		return b, nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "1", "对", "正确":
			return true, nil
		case "false", "0", "错", "错误":
			return false, nil
		}
	}
	return false, util.ErrMalformedAnswer
}

func answerAsStringSlice(v json.RawMessage) ([]string, error) {
	var list []string
	if err := json.Unmarshal(v, &list); err == nil {
		return list, nil
	}
	// 单个字符串视为单元素列表
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return []string{s}, nil
	}
	return nil, util.ErrMalformedAnswer
}

func answerAsStringMap(v json.RawMessage) (map[string]string, error) {
	var m map[string]string
	if err := json.Unmarshal(v, &m); err != nil {
		return nil, util.ErrMalformedAnswer
	}
	return m, nil
}

// normalizeText 判题前标准化：去首尾空格、转小写
func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// extractAnswerText 从答案JSON中提取纯文本，主观题判题和记录留存用
// 不是JSON或没有answer字段时原样返回
func extractAnswerText(raw string) string {
	v, err := decodeAnswerPayload(raw)
	if err != nil {
		return raw
	}
	if s, err := answerAsString(v); err == nil {
		return s
	}
	return raw
}

// ScoringCriterion 主观题评分维度
type ScoringCriterion struct {
	Dimension   string  `json:"dimension"`
	Score       float64 `json:"score"`
	Description string  `json:"description"`
}

// parseScoringCriteria 解析题目自带的评分标准，格式非法时返回nil走默认标准
func parseScoringCriteria(raw string) []ScoringCriterion {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var criteria []ScoringCriterion
	if err := json.Unmarshal([]byte(raw), &criteria); err != nil {
		return nil
	}
	if len(criteria) == 0 {
		return nil
	}
	return criteria
}

// formatCriteria 评分标准拼入Prompt的文本形式
func formatCriteria(criteria []ScoringCriterion) string {
	var sb strings.Builder
	for i, c := range criteria {
		sb.WriteString(fmt.Sprintf("%d. %s（%.1f分）：%s\n", i+1, c.Dimension, c.Score, c.Description))
	}
	return sb.String()
}
