package services

import (
	"context"
	"log/slog"

	"quote-service/internal/models"
	"quote-service/internal/repository"
)

// companyLoader reads companies through the Redis cache. Cache failures are
// logged and fall through to Postgres.
type companyLoader struct {
	repo  repository.ICompanyRepository
	cache repository.ICompanyCacheRepository
}

func (l companyLoader) load(ctx context.Context, companyID string) (*models.Company, error) {
	if l.cache != nil {
		company, ok, err := l.cache.Get(ctx, companyID)
		if err != nil {
			slog.Warn("company cache read failed", "company_id", companyID, "error", err)
		} else if ok {
			return company, nil
		}
	}

	company, err := l.repo.GetByID(ctx, companyID)
	if err != nil {
		return nil, fromRepository(err)
	}

	if l.cache != nil {
		if err := l.cache.Set(ctx, company); err != nil {
			slog.Warn("company cache write failed", "company_id", companyID, "error", err)
		}
	}
	return company, nil
}

func (l companyLoader) invalidate(ctx context.Context, companyID string) {
	if l.cache == nil {
		return
	}
	if err := l.cache.Invalidate(ctx, companyID); err != nil {
		slog.Warn("company cache invalidation failed", "company_id", companyID, "error", err)
	}
}
