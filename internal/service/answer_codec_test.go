package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAnswerPayload(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"包装对象", `{"answer": "A"}`, `"A"`},
		{"包装数组", `{"answer": ["A", "B"]}`, `["A", "B"]`},
		{"包装布尔", `{"answer": true}`, `true`},
		{"裸JSON字符串", `"A"`, `"A"`},
		{"裸JSON数组", `["A","B"]`, `["A","B"]`},
		{"裸字符串", `A`, `"A"`},
		{"无answer字段的对象按整体处理", `{"左1":"右A"}`, `{"左1":"右A"}`},
		{"带关键词的主观题答案", `{"answer": "参考答案", "keywords": ["k1"]}`, `"参考答案"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeAnswerPayload(tt.raw)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestDecodeAnswerPayload_Malformed(t *testing.T) {
	for _, raw := range []string{"", "   ", `{"answer": `} {
		_, err := decodeAnswerPayload(raw)
		assert.Error(t, err, "raw=%q", raw)
	}
}

func TestAnswerAsString(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`"A"`, "A"},
		{`true`, "true"},
		{`3.5`, "3.5"},
		{`42`, "42"},
	}

	for _, tt := range tests {
		got, err := answerAsString(json.RawMessage(tt.raw))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestAnswerAsBool(t *testing.T) {
	tests := []struct {
		raw     string
		want    bool
		wantErr bool
	}{
		{`true`, true, false},
		{`false`, false, false},
		{`"true"`, true, false},
		{`"1"`, true, false},
		{`"对"`, true, false},
		{`"正确"`, true, false},
		{`"false"`, false, false},
		{`"0"`, false, false},
		{`"错"`, false, false},
		{`"错误"`, false, false},
		{`" 对 "`, true, false},
		{`"maybe"`, false, true},
		{`[1]`, false, true},
	}

	for _, tt := range tests {
		got, err := answerAsBool(json.RawMessage(tt.raw))
		if tt.wantErr {
			assert.Error(t, err, "raw=%s", tt.raw)
			continue
		}
		require.NoError(t, err, "raw=%s", tt.raw)
		assert.Equal(t, tt.want, got, "raw=%s", tt.raw)
	}
}

func TestAnswerAsStringSlice(t *testing.T) {
	got, err := answerAsStringSlice(json.RawMessage(`["A","B"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, got)

	// 单个字符串视为单元素列表
	got, err = answerAsStringSlice(json.RawMessage(`"A"`))
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, got)

	_, err = answerAsStringSlice(json.RawMessage(`{"a":1}`))
	assert.Error(t, err)
}

func TestExtractAnswerText(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`{"answer": "操作系统负责资源管理"}`, "操作系统负责资源管理"},
		{`"直接字符串"`, "直接字符串"},
		{`纯文本作答`, "纯文本作答"},
		{`{"answer": ["A","B"]}`, `{"answer": ["A","B"]}`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, extractAnswerText(tt.raw), "raw=%s", tt.raw)
	}
}

func TestParseScoringCriteria(t *testing.T) {
	criteria := parseScoringCriteria(`[{"dimension":"要点完整性","score":4,"description":"覆盖全部要点"}]`)
	require.Len(t, criteria, 1)
	assert.Equal(t, "要点完整性", criteria[0].Dimension)
	assert.Equal(t, 4.0, criteria[0].Score)

	assert.Nil(t, parseScoringCriteria(""))
	assert.Nil(t, parseScoringCriteria("not json"))
	assert.Nil(t, parseScoringCriteria("[]"))
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "abc", normalizeText("  ABC "))
	assert.Equal(t, "北京", normalizeText(" 北京 "))
}
