package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"quote-service/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiClient struct {
	Client         *genai.Client
	FlashModelName string
}

func NewGenAIClient(apiKey, flashModelName string) (*GeminiClient, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("genai client init failed: %w", err)
	}
	return &GeminiClient{Client: client, FlashModelName: flashModelName}, nil
}

// NewGenAIClients builds one client per API key.
func NewGenAIClients(apiKeys []string, flashModelName string) ([]GeminiClient, error) {
	clients := make([]GeminiClient, 0, len(apiKeys))
	for i, key := range apiKeys {
		c, err := NewGenAIClient(key, flashModelName)
		if err != nil {
			return nil, fmt.Errorf("gemini key %d: %w", i, err)
		}
		clients = append(clients, *c)
	}
	return clients, nil
}

// Chat continues a conversation. The model is asked for a JSON response and
// the raw text is returned.
func (g *GeminiClient) Chat(ctx context.Context, systemPrompt string, history []models.ChatMessage, message string) (string, error) {
	model := g.Client.GenerativeModel(g.FlashModelName)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	model.ResponseMIMEType = "application/json"

	cs := model.StartChat()
	cs.History = toContents(history)

	resp, err := cs.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return responseText(resp)
}

func toContents(history []models.ChatMessage) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		role := "user"
		if m.Role == models.ChatRoleAssistant {
			role = "model"
		}
		contents = append(contents, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(m.Content)}})
	}
	return contents
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("no content returned from AI")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("no text part returned from AI")
	}
	return sb.String(), nil
}

func (g *GeminiClient) Close() error {
	return g.Client.Close()
}
