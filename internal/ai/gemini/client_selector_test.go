package gemini

import (
	"context"
	"errors"
	"testing"

	"quote-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiClientSelector_RoundRobin(t *testing.T) {
	s := NewGeminiClientSelector(make([]GeminiClient, 3))

	var order []int
	for range 4 {
		_, idx := s.GetNextClient()
		order = append(order, idx)
	}
	assert.Equal(t, []int{0, 1, 2, 0}, order)
}

func TestGeminiClientSelector_NoClients(t *testing.T) {
	s := NewGeminiClientSelector(nil)

	_, err := s.Chat(context.Background(), "sys", nil, "hi")
	assert.Error(t, err)
}

func TestGeminiClientSelector_ChatFailsOver(t *testing.T) {
	s := NewGeminiClientSelector([]GeminiClient{{FlashModelName: "a"}, {FlashModelName: "b"}})
	var tried []string
	s.chat = func(ctx context.Context, c *GeminiClient, systemPrompt string, history []models.ChatMessage, message string) (string, error) {
		tried = append(tried, c.FlashModelName)
		if c.FlashModelName == "a" {
			return "", errors.New("quota exceeded")
		}
		return `{"answer":"ok"}`, nil
	}

	answer, err := s.Chat(context.Background(), "sys", nil, "hi")

	require.NoError(t, err)
	assert.Equal(t, `{"answer":"ok"}`, answer)
	assert.Equal(t, []string{"a", "b"}, tried)
}

func TestGeminiClientSelector_AllFail(t *testing.T) {
	s := NewGeminiClientSelector([]GeminiClient{{}, {}})
	calls := 0
	s.chat = func(ctx context.Context, c *GeminiClient, systemPrompt string, history []models.ChatMessage, message string) (string, error) {
		calls++
		return "", errors.New("unavailable")
	}

	_, err := s.Chat(context.Background(), "sys", nil, "hi")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 2 Gemini clients failed")
	assert.Equal(t, 2, calls)
}

func TestToContents(t *testing.T) {
	contents := toContents([]models.ChatMessage{
		{Role: models.ChatRoleUser, Content: "hi"},
		{Role: models.ChatRoleAssistant, Content: "hello"},
	})

	require.Len(t, contents, 2)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "model", contents[1].Role)
}
