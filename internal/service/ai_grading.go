package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tiku_backend/internal/model"
	"tiku_backend/pkg/logger"
	"tiku_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// AIGradingStrategy 主观题AI判题
// 支持：简答、论述、案例分析、材料分析
// AI调用失败不向上抛错，按0分+待人工复核降级处理
type AIGradingStrategy struct {
	AI                  ChatClient
	ConfidenceThreshold float64
}

func NewAIGradingStrategy(ai ChatClient, confidenceThreshold float64) *AIGradingStrategy {
	return &AIGradingStrategy{
		AI:                  ai,
		ConfidenceThreshold: confidenceThreshold,
	}
}

func (s *AIGradingStrategy) Supports(t model.QuestionType) bool {
	return t.IsSubjective()
}

func (s *AIGradingStrategy) Grade(ctx context.Context, question *model.Question, userAnswer string) (*GradingResult, error) {
	studentAnswer := extractAnswerText(userAnswer)

	// 未作答直接0分，不消耗AI调用
	if strings.TrimSpace(studentAnswer) == "" {
		return &GradingResult{
			IsCorrect:      false,
			Score:          0,
			TotalScore:     question.Score,
			GradingType:    model.GradingAI,
			CorrectAnswer:  question.Answer,
			AnswerAnalysis: question.AnswerAnalysis,
			AIFeedback: &AIFeedback{
				Comment:    "未作答",
				Confidence: 1,
			},
		}, nil
	}

	referenceAnswer := extractAnswerText(question.Answer)
	prompt := buildGradingPrompt(question, referenceAnswer, studentAnswer)

	start := time.Now()
	content, aiModel, err := s.AI.Chat(ctx, gradingSystemPrompt(question.Type), prompt)
	elapsed := time.Since(start)
	monitoring.AIGradingDuration.Observe(elapsed.Seconds())

	if err != nil {
		logger.Log.Error("AI grading call failed",
			zap.Uint("questionID", question.ID), zap.Error(err))
		return s.degradedResult(question, elapsed), nil
	}

	result, err := s.parseResponse(content, question)
	if err != nil {
		logger.Log.Error("AI grading response unparseable",
			zap.Uint("questionID", question.ID),
			zap.String("response", content), zap.Error(err))
		return s.degradedResult(question, elapsed), nil
	}

	result.AIFeedback.Model = aiModel
	result.GradingTimeMs = int(elapsed.Milliseconds())

	// 低置信度转人工复核
	if result.AIFeedback.Confidence < s.ConfidenceThreshold {
		result.NeedManualReview = true
	}

	return result, nil
}

// degradedResult AI不可用时的降级结果：0分并标记人工复核
func (s *AIGradingStrategy) degradedResult(question *model.Question, elapsed time.Duration) *GradingResult {
	return &GradingResult{
		IsCorrect:        false,
		Score:            0,
		TotalScore:       question.Score,
		GradingType:      model.GradingAI,
		NeedManualReview: true,
		GradingTimeMs:    int(elapsed.Milliseconds()),
	}
}

// aiGradingResponse AI返回的评分JSON
type aiGradingResponse struct {
	Score        float64       `json:"score"`
	TotalScore   float64       `json:"totalScore"`
	Confidence   float64       `json:"confidence"`
	ScoreDetails []ScoreDetail `json:"scoreDetails"`
	Strengths    []string      `json:"strengths"`
	Weaknesses   []string      `json:"weaknesses"`
	Suggestions  string        `json:"suggestions"`
	Comment      string        `json:"comment"`
}

func (s *AIGradingStrategy) parseResponse(content string, question *model.Question) (*GradingResult, error) {
	jsonStr := extractJSON(content)

	var resp aiGradingResponse
	if err := json.Unmarshal([]byte(jsonStr), &resp); err != nil {
		return nil, err
	}

	// 分数钳制在[0, 满分]，置信度钳制在[0, 1]
	score := resp.Score
	if score < 0 {
		score = 0
	}
	if score > question.Score {
		score = question.Score
	}
	confidence := resp.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	// 主观题得分率达到50%即视为"正确"，用于正确率统计和错题本
	isCorrect := false
	if question.Score > 0 {
		isCorrect = score/question.Score >= 0.5
	}

	return &GradingResult{
		IsCorrect:      isCorrect,
		Score:          score,
		TotalScore:     question.Score,
		GradingType:    model.GradingAI,
		CorrectAnswer:  question.Answer,
		AnswerAnalysis: question.AnswerAnalysis,
		AIFeedback: &AIFeedback{
			Confidence:   confidence,
			ScoreDetails: resp.ScoreDetails,
			Strengths:    resp.Strengths,
			Weaknesses:   resp.Weaknesses,
			Suggestions:  resp.Suggestions,
			Comment:      resp.Comment,
		},
	}, nil
}

func gradingSystemPrompt(t model.QuestionType) string {
	return fmt.Sprintf("你是一位经验丰富的教师，专门负责批改学生的%s答案。\n"+
		"请你客观、公正地评分，并给出详细的评语。\n"+
		"你的评分应该准确、合理，评语应该具有建设性。\n"+
		"请严格按照JSON格式返回评分结果。", subjectTypeName(t))
}

func subjectTypeName(t model.QuestionType) string {
	switch t {
	case model.TypeShortAnswer:
		return "简答题"
	case model.TypeEssay:
		return "论述题"
	case model.TypeCaseAnalysis:
		return "案例分析题"
	case model.TypeMaterialAnalysis:
		return "材料分析题"
	}
	return "主观题"
}

func buildGradingPrompt(question *model.Question, referenceAnswer, studentAnswer string) string {
	var sb strings.Builder

	sb.WriteString("【题目】\n")
	sb.WriteString(question.Title)
	sb.WriteString("\n\n")

	if question.Content != "" {
		sb.WriteString("【题目内容/材料】\n")
		sb.WriteString(question.Content)
		sb.WriteString("\n\n")
	}

	sb.WriteString("【参考答案】\n")
	sb.WriteString(referenceAnswer)
	sb.WriteString("\n\n")

	sb.WriteString("【学生答案】\n")
	sb.WriteString(studentAnswer)
	sb.WriteString("\n\n")

	sb.WriteString("【评分标准】\n")
	sb.WriteString(fmt.Sprintf("总分：%.1f分\n", question.Score))

	if criteria := parseScoringCriteria(question.ScoringCriteria); criteria != nil {
		sb.WriteString(formatCriteria(criteria))
		sb.WriteString("\n")
	} else {
		// 默认评分标准：要点完整性40% 准确性30% 逻辑性20% 表达规范性10%
		sb.WriteString(fmt.Sprintf("1. 要点完整性（%.1f分）\n", question.Score*0.4))
		sb.WriteString(fmt.Sprintf("2. 准确性（%.1f分）\n", question.Score*0.3))
		sb.WriteString(fmt.Sprintf("3. 逻辑性（%.1f分）\n", question.Score*0.2))
		sb.WriteString(fmt.Sprintf("4. 表达规范性（%.1f分）\n\n", question.Score*0.1))
	}

	sb.WriteString("【任务要求】\n")
	sb.WriteString("请按照以下JSON格式返回评分结果：\n")
	sb.WriteString(`{
  "score": 实际得分（数字）,
  "totalScore": 总分,
  "confidence": 置信度（0-1之间的小数）,
  "scoreDetails": [
    {
      "dimension": "维度名称",
      "score": 得分,
      "maxScore": 满分,
      "reason": "评分理由"
    }
  ],
  "strengths": ["优点1", "优点2"],
  "weaknesses": ["不足1", "不足2"],
  "suggestions": "改进建议",
  "comment": "总体评语"
}

请直接返回JSON，不要包含其他文字。`)

	return sb.String()
}

// extractJSON 从AI回复中提取最外层JSON对象
// 模型偶尔会在JSON前后附加说明文字，按括号配对截取，跳过字符串内的花括号
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	if start < 0 {
		return text
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1]
				}
			}
		}
	}
	return text[start:]
}
