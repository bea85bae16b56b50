package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quote-service/internal/models"
	utils "quote-service/shared/utils"

	json "github.com/goccy/go-json"
	"github.com/jmoiron/sqlx"
)

type ICompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	GetByID(ctx context.Context, id string) (*models.Company, error)
	List(ctx context.Context) ([]models.Company, error)
	ListOffering(ctx context.Context, insuranceType string) ([]models.Company, error)
	UpdateProfile(ctx context.Context, company *models.Company) error
	UpdateInsuranceTypes(ctx context.Context, id string, products models.InsuranceProducts) error
	UpdateLogo(ctx context.Context, id, logoURL string) error
	Ping(ctx context.Context) error
}

type CompanyRepository struct {
	db *sqlx.DB
}

func NewCompanyRepository(db *sqlx.DB) ICompanyRepository {
	return &CompanyRepository{db: db}
}

const companyColumns = `id, name, email, website, phone, address, logo_url, insurance_types, created_at, updated_at`

func (r *CompanyRepository) Create(ctx context.Context, company *models.Company) error {
	now := time.Now()
	company.CreatedAt = now
	company.UpdatedAt = now
	if company.InsuranceTypes == nil {
		company.InsuranceTypes = models.InsuranceProducts{}
	}

	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES (:id, :name, :email, :website, :phone, :address, :logo_url, :insurance_types, :created_at, :updated_at)`

	if err := utils.ExecWithCheck(ctx, r.db, query, utils.ExecInsert, company); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("company %s: %w", company.ID, ErrDuplicate)
		}
		return fmt.Errorf("failed to create company: %w", err)
	}
	return nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*models.Company, error) {
	var company models.Company
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`

	if err := r.db.GetContext(ctx, &company, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("company %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return &company, nil
}

func (r *CompanyRepository) List(ctx context.Context) ([]models.Company, error) {
	companies := []models.Company{}
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY name`

	if err := r.db.SelectContext(ctx, &companies, query); err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

// ListOffering returns the companies with a product of exactly this type.
func (r *CompanyRepository) ListOffering(ctx context.Context, insuranceType string) ([]models.Company, error) {
	filter, err := json.Marshal([]map[string]string{{"type": insuranceType}})
	if err != nil {
		return nil, fmt.Errorf("failed to build product filter: %w", err)
	}

	companies := []models.Company{}
	query := `SELECT ` + companyColumns + ` FROM companies WHERE insurance_types @> $1::jsonb ORDER BY name`

	if err := r.db.SelectContext(ctx, &companies, query, string(filter)); err != nil {
		return nil, fmt.Errorf("failed to list companies offering %s: %w", insuranceType, err)
	}
	return companies, nil
}

func (r *CompanyRepository) UpdateProfile(ctx context.Context, company *models.Company) error {
	company.UpdatedAt = time.Now()
	query := `
		UPDATE companies
		SET name = :name,
			website = :website,
			phone = :phone,
			address = :address,
			updated_at = :updated_at
		WHERE id = :id`

	return r.checkUpdate(utils.ExecWithCheck(ctx, r.db, query, utils.ExecUpdate, company), company.ID)
}

func (r *CompanyRepository) UpdateInsuranceTypes(ctx context.Context, id string, products models.InsuranceProducts) error {
	if products == nil {
		products = models.InsuranceProducts{}
	}
	arg := map[string]any{"id": id, "insurance_types": products, "updated_at": time.Now()}
	query := `UPDATE companies SET insurance_types = :insurance_types, updated_at = :updated_at WHERE id = :id`

	return r.checkUpdate(utils.ExecWithCheck(ctx, r.db, query, utils.ExecUpdate, arg), id)
}

func (r *CompanyRepository) UpdateLogo(ctx context.Context, id, logoURL string) error {
	arg := map[string]any{"id": id, "logo_url": logoURL, "updated_at": time.Now()}
	query := `UPDATE companies SET logo_url = :logo_url, updated_at = :updated_at WHERE id = :id`

	return r.checkUpdate(utils.ExecWithCheck(ctx, r.db, query, utils.ExecUpdate, arg), id)
}

func (r *CompanyRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *CompanyRepository) checkUpdate(err error, id string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, utils.ErrNoRowsAffected):
		return fmt.Errorf("company %s: %w", id, ErrNotFound)
	default:
		return fmt.Errorf("failed to update company: %w", err)
	}
}
