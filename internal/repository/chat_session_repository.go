package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quote-service/internal/models"
	utils "quote-service/shared/utils"

	"github.com/redis/go-redis/v9"
)

type IChatSessionRepository interface {
	Save(ctx context.Context, session *models.ChatSession) error
	Get(ctx context.Context, id string) (*models.ChatSession, error)
	Delete(ctx context.Context, id string) error
}

// ChatSessionRepository keeps chat sessions in Redis. Every save renews the TTL.
type ChatSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewChatSessionRepository(client *redis.Client, ttl time.Duration) IChatSessionRepository {
	return &ChatSessionRepository{client: client, ttl: ttl}
}

func (r *ChatSessionRepository) Save(ctx context.Context, session *models.ChatSession) error {
	data, err := utils.SerializeModel(session)
	if err != nil {
		return fmt.Errorf("failed to serialize chat session: %w", err)
	}
	if err := r.client.Set(ctx, chatSessionKey(session.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store chat session: %w", err)
	}
	return nil
}

func (r *ChatSessionRepository) Get(ctx context.Context, id string) (*models.ChatSession, error) {
	data, err := r.client.Get(ctx, chatSessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("chat session %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get chat session: %w", err)
	}

	var session models.ChatSession
	if err := utils.DeserializeModel(data, &session); err != nil {
		return nil, fmt.Errorf("failed to deserialize chat session: %w", err)
	}
	return &session, nil
}

func (r *ChatSessionRepository) Delete(ctx context.Context, id string) error {
	n, err := r.client.Del(ctx, chatSessionKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete chat session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("chat session %s: %w", id, ErrNotFound)
	}
	return nil
}

func chatSessionKey(id string) string {
	return fmt.Sprintf("chat_session:%s", id)
}
