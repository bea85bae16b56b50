package services

import (
	"context"
	"fmt"
	"path"
	"strings"

	"quote-service/internal/database/minio"
	"quote-service/internal/models"
	"quote-service/internal/repository"

	"github.com/google/uuid"
)

const maxLogoSize = 2 << 20

var logoExtensions = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

type ICompanyService interface {
	ListCompanies(ctx context.Context, insuranceType string) ([]models.CompanySummary, error)
	GetCompany(ctx context.Context, companyID, insuranceType string) (*models.Company, error)
	UpdateProfile(ctx context.Context, companyID string, req models.UpdateCompanyRequest) (*models.Company, error)
	UploadLogo(ctx context.Context, companyID, contentType string, data []byte) (*models.Company, error)
}

type CompanyService struct {
	repo    repository.ICompanyRepository
	loader  companyLoader
	storage ObjectStorage
}

func NewCompanyService(repo repository.ICompanyRepository, cache repository.ICompanyCacheRepository, storage ObjectStorage) ICompanyService {
	return &CompanyService{
		repo:    repo,
		loader:  companyLoader{repo: repo, cache: cache},
		storage: storage,
	}
}

// ListCompanies lists every company, or only those offering insuranceType.
func (s *CompanyService) ListCompanies(ctx context.Context, insuranceType string) ([]models.CompanySummary, error) {
	insuranceType = strings.TrimSpace(insuranceType)

	var (
		companies []models.Company
		err       error
	)
	if insuranceType == "" {
		companies, err = s.repo.List(ctx)
	} else {
		companies, err = s.repo.ListOffering(ctx, insuranceType)
	}
	if err != nil {
		return nil, err
	}

	summaries := make([]models.CompanySummary, 0, len(companies))
	for _, c := range companies {
		summaries = append(summaries, c.Summary())
	}
	return summaries, nil
}

// GetCompany returns a company; a non-empty insuranceType narrows its product list.
func (s *CompanyService) GetCompany(ctx context.Context, companyID, insuranceType string) (*models.Company, error) {
	companyID = strings.TrimSpace(companyID)
	if companyID == "" {
		return nil, badRequest("companyId is required")
	}
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, notFound("company %s", companyID)
	}

	company, err := s.loader.load(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if insuranceType = strings.TrimSpace(insuranceType); insuranceType != "" {
		filtered := company.WithProductType(insuranceType)
		return &filtered, nil
	}
	return company, nil
}

func (s *CompanyService) UpdateProfile(ctx context.Context, companyID string, req models.UpdateCompanyRequest) (*models.Company, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, badRequest("companyName is required")
	}

	company, err := s.loader.load(ctx, companyID)
	if err != nil {
		return nil, err
	}
	company.Name = name
	company.Website = strings.TrimSpace(req.Website)
	company.Phone = strings.TrimSpace(req.Phone)
	company.Address = strings.TrimSpace(req.Address)

	if err := s.repo.UpdateProfile(ctx, company); err != nil {
		return nil, fromRepository(err)
	}
	s.loader.invalidate(ctx, companyID)
	return company, nil
}

func (s *CompanyService) UploadLogo(ctx context.Context, companyID, contentType string, data []byte) (*models.Company, error) {
	if s.storage == nil {
		return nil, fmt.Errorf("object storage is not configured")
	}
	ext, ok := logoExtensions[contentType]
	if !ok {
		return nil, badRequest("unsupported logo type %q", contentType)
	}
	if len(data) == 0 || len(data) > maxLogoSize {
		return nil, badRequest("logo must be between 1 byte and %d bytes", maxLogoSize)
	}

	company, err := s.loader.load(ctx, companyID)
	if err != nil {
		return nil, err
	}

	objectName := path.Join(companyID, uuid.NewString()+ext)
	if err := s.storage.UploadBytes(ctx, minio.Storage.CompanyLogos, objectName, data, contentType); err != nil {
		return nil, err
	}

	company.LogoURL = s.storage.ObjectURL(minio.Storage.CompanyLogos, objectName)
	if err := s.repo.UpdateLogo(ctx, companyID, company.LogoURL); err != nil {
		return nil, fromRepository(err)
	}
	s.loader.invalidate(ctx, companyID)
	return company, nil
}
