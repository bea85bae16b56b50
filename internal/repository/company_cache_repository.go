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

// ICompanyCacheRepository caches company records, products included, in
// front of Postgres.
type ICompanyCacheRepository interface {
	Get(ctx context.Context, companyID string) (*models.Company, bool, error)
	Set(ctx context.Context, company *models.Company) error
	Invalidate(ctx context.Context, companyID string) error
}

type CompanyCacheRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCompanyCacheRepository(client *redis.Client, ttl time.Duration) ICompanyCacheRepository {
	return &CompanyCacheRepository{client: client, ttl: ttl}
}

func (r *CompanyCacheRepository) Get(ctx context.Context, companyID string) (*models.Company, bool, error) {
	data, err := r.client.Get(ctx, companyCacheKey(companyID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read company cache: %w", err)
	}

	var company models.Company
	if err := utils.DeserializeModel(data, &company); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached company: %w", err)
	}
	return &company, true, nil
}

func (r *CompanyCacheRepository) Set(ctx context.Context, company *models.Company) error {
	data, err := utils.SerializeModel(company)
	if err != nil {
		return fmt.Errorf("failed to encode company: %w", err)
	}
	if err := r.client.Set(ctx, companyCacheKey(company.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write company cache: %w", err)
	}
	return nil
}

func (r *CompanyCacheRepository) Invalidate(ctx context.Context, companyID string) error {
	if err := r.client.Del(ctx, companyCacheKey(companyID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate company cache: %w", err)
	}
	return nil
}

func companyCacheKey(companyID string) string {
	return fmt.Sprintf("company:%s", companyID)
}
