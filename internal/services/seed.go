package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"quote-service/internal/models"
	"quote-service/internal/pricing"
	"quote-service/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SamplePassword is the password of every seeded account.
const SamplePassword = "admin123"

var seedNamespace = uuid.MustParse("8f14e45f-ceea-467a-9b1e-3a4c1d7b2e90")

type sampleCompany struct {
	name, email, website, phone, address string
	login                                string
	products                             []string
}

var sampleCompanies = []sampleCompany{
	{
		name:     "Secure Insurance Co.",
		email:    "contact@secureinsurance.example",
		website:  "https://secureinsurance.example",
		phone:    "+1-555-123-4567",
		address:  "123 Secure St, Insuranceville, IN 12345",
		login:    "secure@insurance-ai.example",
		products: []string{"auto", "home", "life", "health"},
	},
	{
		name:     "Guardian Insurance",
		email:    "info@guardianinsurance.example",
		website:  "https://guardianinsurance.example",
		phone:    "+1-555-987-6543",
		address:  "456 Guardian Ave, Safetyville, SF 67890",
		login:    "guardian@insurance-ai.example",
		products: []string{"auto", "home"},
	},
	{
		name:     "Protecto Insurance Ltd.",
		email:    "service@protectoinsurance.example",
		website:  "https://protecto.example",
		phone:    "+1-555-456-7890",
		address:  "789 Shield Blvd, Coverageton, CV 54321",
		login:    "protecto@insurance-ai.example",
		products: []string{"life", "health"},
	},
}

const sampleAdminEmail = "admin@insurance-ai.example"

// SeedResult counts what SeedSampleData inserted.
type SeedResult struct {
	Companies int
	Users     int
}

// SeedSampleData inserts the demo companies and accounts. IDs are derived
// from names, so running it again only fills in what is missing.
func SeedSampleData(ctx context.Context, companyRepo repository.ICompanyRepository, userRepo repository.IUserRepository) (SeedResult, error) {
	var result SeedResult

	hash, err := bcrypt.GenerateFromPassword([]byte(SamplePassword), bcrypt.DefaultCost)
	if err != nil {
		return result, fmt.Errorf("failed to hash sample password: %w", err)
	}

	defaults := models.InsuranceProducts(pricing.DefaultProducts())
	for _, sample := range sampleCompanies {
		company := &models.Company{
			ID:      seedID("company:" + sample.name),
			Name:    sample.name,
			Email:   sample.email,
			Website: sample.website,
			Phone:   sample.phone,
			Address: sample.address,
		}
		for _, t := range sample.products {
			if p, ok := defaults.Find(t); ok {
				company.InsuranceTypes = append(company.InsuranceTypes, p)
			}
		}

		created, err := createIfMissing(ctx, companyRepo, company)
		if err != nil {
			return result, err
		}
		if created {
			result.Companies++
		}

		companyID := company.ID
		created, err = createUserIfMissing(ctx, userRepo, &models.User{
			ID:           seedID("user:" + sample.login),
			Email:        sample.login,
			PasswordHash: string(hash),
			CompanyID:    &companyID,
			Role:         models.UserRoleCompany,
		})
		if err != nil {
			return result, err
		}
		if created {
			result.Users++
		}
	}

	created, err := createUserIfMissing(ctx, userRepo, &models.User{
		ID:           seedID("user:" + sampleAdminEmail),
		Email:        sampleAdminEmail,
		PasswordHash: string(hash),
		Role:         models.UserRoleAdmin,
	})
	if err != nil {
		return result, err
	}
	if created {
		result.Users++
	}

	slog.Info("Sample data seeded", "companies", result.Companies, "users", result.Users)
	return result, nil
}

func seedID(name string) string {
	return uuid.NewSHA1(seedNamespace, []byte(name)).String()
}

func createIfMissing(ctx context.Context, repo repository.ICompanyRepository, company *models.Company) (bool, error) {
	if _, err := repo.GetByID(ctx, company.ID); err == nil {
		return false, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}
	if err := repo.Create(ctx, company); err != nil {
		return false, err
	}
	return true, nil
}

func createUserIfMissing(ctx context.Context, repo repository.IUserRepository, user *models.User) (bool, error) {
	if _, err := repo.GetByEmail(ctx, user.Email); err == nil {
		return false, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}
	if err := repo.Create(ctx, user); err != nil {
		return false, err
	}
	return true, nil
}
