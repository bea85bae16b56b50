package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"quote-service/internal/database/minio"
	"quote-service/internal/pricing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInsuranceService() (IInsuranceTypeService, *fakeCompanyRepo, *fakeCompanyCache, *fakeStorage) {
	repo := newFakeCompanyRepo(testCompanies()...)
	cache := newFakeCompanyCache()
	storage := &fakeStorage{}
	return NewInsuranceTypeService(repo, cache, storage), repo, cache, storage
}

func TestUpdateProducts(t *testing.T) {
	svc, repo, cache, storage := newTestInsuranceService()
	ctx := context.Background()

	// warm the cache so the invalidation is observable
	_, err := svc.GetProducts(ctx, otherCompanyID)
	require.NoError(t, err)

	product := lifeProduct()
	product.Type = " life "
	saved, err := svc.UpdateProducts(ctx, otherCompanyID, []pricing.InsuranceProduct{product})
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "life", saved[0].Type)

	stored, _ := repo.GetByID(ctx, otherCompanyID)
	assert.True(t, stored.InsuranceTypes.Offers("life"))
	assert.False(t, stored.InsuranceTypes.Offers("auto"), "update replaces the whole list")
	assert.Contains(t, cache.invalidated, otherCompanyID)

	products, err := svc.GetProducts(ctx, otherCompanyID)
	require.NoError(t, err)
	assert.Len(t, products, 1)

	require.Len(t, storage.objects, 1)
	snapshot := storage.objects[0]
	assert.Equal(t, minio.Storage.RateTableSnapshots, snapshot.bucket)
	assert.True(t, strings.HasPrefix(snapshot.name, otherCompanyID+"/"))
	assert.Equal(t, "application/json", snapshot.contentType)
	var archived []pricing.InsuranceProduct
	require.NoError(t, json.Unmarshal(snapshot.data, &archived))
	assert.Equal(t, "life", archived[0].Type)
}

func TestUpdateProducts_InvalidIsBadRequest(t *testing.T) {
	svc, repo, _, storage := newTestInsuranceService()
	ctx := context.Background()

	bad := lifeProduct()
	bad.Fields = append(bad.Fields, pricing.NewRangeField("weight", "Weight", 1,
		pricing.FieldBracket{Min: 100, Max: 10, Multiplier: 1}))

	_, err := svc.UpdateProducts(ctx, testCompanyID, []pricing.InsuranceProduct{bad})

	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Contains(t, err.Error(), "greater than max")
	stored, _ := repo.GetByID(ctx, testCompanyID)
	assert.Len(t, stored.InsuranceTypes, 2, "nothing is written")
	assert.Empty(t, storage.objects)
}

func TestUpdateProducts_SnapshotFailureIsIgnored(t *testing.T) {
	svc, _, _, storage := newTestInsuranceService()
	storage.err = errors.New("minio down")

	_, err := svc.UpdateProducts(context.Background(), testCompanyID, []pricing.InsuranceProduct{lifeProduct()})

	assert.NoError(t, err)
}

func TestUpdateProducts_UnknownCompany(t *testing.T) {
	svc, _, _, _ := newTestInsuranceService()

	_, err := svc.UpdateProducts(context.Background(), "0b5c7f4e-3d0a-4c84-9a4e-6f2a52c1dfff", nil)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInitDefaults(t *testing.T) {
	svc, _, _, _ := newTestInsuranceService()

	products, err := svc.InitDefaults(context.Background(), otherCompanyID)

	require.NoError(t, err)
	types := make([]string, 0, len(products))
	for _, p := range products {
		types = append(types, p.Type)
	}
	assert.Equal(t, []string{"auto", "home", "life", "health"}, types)
}

func TestGetProductDetails(t *testing.T) {
	svc, _, _, _ := newTestInsuranceService()
	ctx := context.Background()

	company, product, err := svc.GetProductDetails(ctx, testCompanyID, "life")
	require.NoError(t, err)
	assert.Equal(t, "Secure Insurance Co.", company.Name)
	assert.Equal(t, "Life Insurance", product.DisplayName)

	_, _, err = svc.GetProductDetails(ctx, "", "life")
	assert.ErrorIs(t, err, ErrBadRequest)
	_, _, err = svc.GetProductDetails(ctx, testCompanyID, " ")
	assert.ErrorIs(t, err, ErrBadRequest)

	_, _, err = svc.GetProductDetails(ctx, testCompanyID, "Life")
	assert.ErrorIs(t, err, ErrNotFound, "type lookup is exact")
	_, _, err = svc.GetProductDetails(ctx, "garbage", "life")
	assert.ErrorIs(t, err, ErrNotFound)
}
