package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/minhtran-dev/studynotes-be/types"
)

type GeminiService struct {
	client       *genai.Client
	defaultModel string
}

func NewGeminiService(ctx context.Context, apiKey, modelName string) (*GeminiService, error) {
	if apiKey == "" {
		return nil, errors.New("no API key provided")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GeminiService{client: client, defaultModel: modelName}, nil
}

func (s *GeminiService) ChatCompletion(ctx context.Context, messages []types.Message, cfg types.ModelConfig) (string, error) {
	modelName := cfg.Model
	if modelName == "" {
		modelName = s.defaultModel
	}
	model := s.client.GenerativeModel(modelName)
	model.SetTemperature(cfg.Temperature)

	// Gemini has no system role in chat history; fold system messages into
	// the instruction slot and replay the rest as history.
	var systemParts []string
	history := make([]*genai.Content, 0, len(messages))
	prompt := ""
	for i, msg := range messages {
		if msg.Role == types.RoleSystem {
			systemParts = append(systemParts, msg.Content)
			continue
		}
		if i == len(messages)-1 {
			prompt = msg.Content
			continue
		}
		role := "user"
		if msg.Role == types.RoleAssistant {
			role = "model"
		}
		history = append(history, &genai.Content{
			Parts: []genai.Part{genai.Text(msg.Content)},
			Role:  role,
		})
	}
	if len(systemParts) > 0 {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(strings.Join(systemParts, "\n\n"))},
		}
	}

	chat := model.StartChat()
	chat.History = history

	resp, err := chat.SendMessage(ctx, genai.Text(prompt))
	if err != nil {
		return "", ClassifyUpstreamError(err)
	}
	if len(resp.Candidates) == 0 {
		return "", &types.GenerationError{Message: "no response generated"}
	}

	var content strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				content.WriteString(string(text))
			}
		}
	}
	return content.String(), nil
}

func (s *GeminiService) Close() error {
	return s.client.Close()
}
