package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"tiku_backend/internal/config"
	"tiku_backend/internal/util"
)

// ChatClient AI对话接口，判题服务通过它调用大模型，测试时可替换为假实现
type ChatClient interface {
	Chat(ctx context.Context, systemPrompt, userPrompt string) (content string, model string, err error)
}

// AIService OpenAI兼容的chat/completions客户端
// base_url、api_key、model支持后台动态配置，优先级高于配置文件
type AIService struct {
	config    config.AIConfig
	sysConfig *SystemConfigService
	client    *http.Client
}

func NewAIService(cfg config.AIConfig, sysConfig *SystemConfigService) *AIService {
	return &AIService{
		config:    cfg,
		sysConfig: sysConfig,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model       string          `json:"model"`
	Messages    []AIChatMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// resolve 运行时生效的AI接入参数：后台配置 > 配置文件
func (s *AIService) resolve(ctx context.Context) (baseURL, apiKey, model string) {
	baseURL = s.config.BaseURL
	apiKey = s.config.APIKey
	model = s.config.Model
	if s.sysConfig != nil {
		baseURL = s.sysConfig.GetOrDefault(ctx, util.ConfigKeyAIBaseURL, baseURL)
		apiKey = s.sysConfig.GetOrDefault(ctx, util.ConfigKeyAIAPIKey, apiKey)
		model = s.sysConfig.GetOrDefault(ctx, util.ConfigKeyAIModel, model)
	}
	return
}

func (s *AIService) Chat(ctx context.Context, systemPrompt, userPrompt string) (string, string, error) {
	baseURL, apiKey, model := s.resolve(ctx)

	reqBody := ChatCompletionRequest{
		Model: model,
		Messages: []AIChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: s.config.Temperature,
		MaxTokens:   s.config.MaxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", model, err
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.config.TimeoutSeconds)*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", model, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", model, fmt.Errorf("%w: %v", util.ErrAIServiceFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", model, fmt.Errorf("%w: status %d: %s", util.ErrAIServiceFailure, resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", model, fmt.Errorf("%w: %v", util.ErrAIServiceFailure, err)
	}
	if result.Error != nil {
		return "", model, fmt.Errorf("%w: %s", util.ErrAIServiceFailure, result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return "", model, fmt.Errorf("%w: empty choices", util.ErrAIServiceFailure)
	}

	return result.Choices[0].Message.Content, model, nil
}
