package service

import (
	"context"

	"github.com/sashabaranov/go-openai"

	"github.com/minhtran-dev/studynotes-be/types"
)

type OpenAIService struct {
	client       *openai.Client
	defaultModel string
}

func NewOpenAIService(baseURL, apiKey, model string) *OpenAIService {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIService{
		client:       openai.NewClientWithConfig(config),
		defaultModel: model,
	}
}

func (s *OpenAIService) ChatCompletion(ctx context.Context, messages []types.Message, cfg types.ModelConfig) (string, error) {
	openaiMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		openaiMessages = append(openaiMessages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	model := cfg.Model
	if model == "" {
		model = s.defaultModel
	}

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       model,
			Messages:    openaiMessages,
			Temperature: cfg.Temperature,
		},
	)
	if err != nil {
		return "", ClassifyUpstreamError(err)
	}
	if len(resp.Choices) == 0 {
		return "", &types.GenerationError{Message: "no response generated"}
	}
	return resp.Choices[0].Message.Content, nil
}
