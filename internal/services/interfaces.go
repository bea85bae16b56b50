package services

import (
	"context"

	"quote-service/internal/models"
	"quote-service/internal/worker"
)

type ObjectStorage interface {
	UploadBytes(ctx context.Context, bucketName, objectName string, data []byte, contentType string) error
	ObjectURL(bucketName, objectName string) string
}

type QuoteEventPublisher interface {
	PublishQuoteCalculated(ctx context.Context, evt models.QuoteCalculatedEvent) error
}

type QuoteMailer interface {
	SendQuoteSummary(to string, quote models.QuoteResponse) error
}

type JobSubmitter interface {
	SubmitJob(name string, job worker.Job) error
}

// ChatModel answers one chat turn given the system prompt and prior history.
type ChatModel interface {
	Chat(ctx context.Context, systemPrompt string, history []models.ChatMessage, message string) (string, error)
}
