package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"quote-service/internal/database/minio"
	"quote-service/internal/models"
	"quote-service/internal/pricing"
	"quote-service/internal/repository"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

type IInsuranceTypeService interface {
	GetProducts(ctx context.Context, companyID string) (models.InsuranceProducts, error)
	UpdateProducts(ctx context.Context, companyID string, products []pricing.InsuranceProduct) (models.InsuranceProducts, error)
	InitDefaults(ctx context.Context, companyID string) (models.InsuranceProducts, error)
	GetProductDetails(ctx context.Context, companyID, insuranceType string) (*models.Company, pricing.InsuranceProduct, error)
}

type InsuranceTypeService struct {
	repo    repository.ICompanyRepository
	loader  companyLoader
	storage ObjectStorage
}

func NewInsuranceTypeService(repo repository.ICompanyRepository, cache repository.ICompanyCacheRepository, storage ObjectStorage) IInsuranceTypeService {
	return &InsuranceTypeService{
		repo:    repo,
		loader:  companyLoader{repo: repo, cache: cache},
		storage: storage,
	}
}

func (s *InsuranceTypeService) GetProducts(ctx context.Context, companyID string) (models.InsuranceProducts, error) {
	company, err := s.loader.load(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company.InsuranceTypes == nil {
		return models.InsuranceProducts{}, nil
	}
	return company.InsuranceTypes, nil
}

// UpdateProducts validates and replaces the whole product list of a company.
func (s *InsuranceTypeService) UpdateProducts(ctx context.Context, companyID string, products []pricing.InsuranceProduct) (models.InsuranceProducts, error) {
	cleaned := make(models.InsuranceProducts, 0, len(products))
	for _, p := range products {
		p.Type = strings.TrimSpace(p.Type)
		p.DisplayName = strings.TrimSpace(p.DisplayName)
		cleaned = append(cleaned, p)
	}
	if err := pricing.ValidateProducts(cleaned); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}

	if err := s.repo.UpdateInsuranceTypes(ctx, companyID, cleaned); err != nil {
		return nil, fromRepository(err)
	}
	s.loader.invalidate(ctx, companyID)
	s.snapshot(ctx, companyID, cleaned)

	slog.Info("Insurance types updated", "company_id", companyID, "count", len(cleaned))
	return cleaned, nil
}

func (s *InsuranceTypeService) InitDefaults(ctx context.Context, companyID string) (models.InsuranceProducts, error) {
	return s.UpdateProducts(ctx, companyID, pricing.DefaultProducts())
}

func (s *InsuranceTypeService) GetProductDetails(ctx context.Context, companyID, insuranceType string) (*models.Company, pricing.InsuranceProduct, error) {
	companyID = strings.TrimSpace(companyID)
	insuranceType = strings.TrimSpace(insuranceType)
	if companyID == "" || insuranceType == "" {
		return nil, pricing.InsuranceProduct{}, badRequest("companyId and type are required")
	}
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, pricing.InsuranceProduct{}, notFound("company %s", companyID)
	}

	company, err := s.loader.load(ctx, companyID)
	if err != nil {
		return nil, pricing.InsuranceProduct{}, err
	}
	product, ok := company.InsuranceTypes.Find(insuranceType)
	if !ok {
		return nil, pricing.InsuranceProduct{}, notFound("insurance type %q for company %s", insuranceType, companyID)
	}
	return company, product, nil
}

// snapshot archives the rate tables in object storage. Failures are logged.
func (s *InsuranceTypeService) snapshot(ctx context.Context, companyID string, products models.InsuranceProducts) {
	if s.storage == nil {
		return
	}
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		slog.Warn("failed to encode rate table snapshot", "company_id", companyID, "error", err)
		return
	}
	objectName := fmt.Sprintf("%s/%s.json", companyID, time.Now().UTC().Format("20060102T150405.000Z"))
	if err := s.storage.UploadBytes(ctx, minio.Storage.RateTableSnapshots, objectName, data, "application/json"); err != nil {
		slog.Warn("failed to upload rate table snapshot", "company_id", companyID, "error", err)
	}
}
