// internal/services/catalog_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailnet/ordering-backend/internal/models"
)

func TestCreateCategoryConflict(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	first, err := svc.CreateCategory(&CreateCategoryRequest{Name: "Tools"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(&CreateCategoryRequest{Name: "Tools"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Where("name = ?", "Tools").Count(&count).Error)
	assert.Equal(t, int64(1), count)
	assert.NotZero(t, first.ID)
}

func TestEnsureCategoriesResolvesExisting(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	existing, err := svc.CreateCategory(&CreateCategoryRequest{Name: "Tools"})
	require.NoError(t, err)

	resolved, err := svc.EnsureCategories(db, []CategoryDescriptor{
		{Name: "Tools"},
		{Name: "Hardware"},
	})
	require.NoError(t, err)
	require.Len(t, resolved, 2)

	// The duplicate name resolves to the first row's identity.
	assert.Equal(t, existing.ID, resolved[0].ID)
	assert.NotEqual(t, existing.ID, resolved[1].ID)

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Where("name = ?", "Tools").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEnsureCategoriesResolvesByID(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	existing, err := svc.CreateCategory(&CreateCategoryRequest{Name: "Tools"})
	require.NoError(t, err)

	// A descriptor carrying a known id resolves by id even when the name
	// in the payload drifted.
	resolved, err := svc.EnsureCategories(db, []CategoryDescriptor{
		{ID: existing.ID, Name: "Tools renamed"},
	})
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, existing.ID, resolved[0].ID)
	assert.Equal(t, "Tools", resolved[0].Name)
}

func TestCreateShopAttachesCategoriesOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)
	owner := createTestUser(t, db, "acme@example.com", "acme", models.UserTypeShop)

	shop, err := svc.CreateShop(owner, &CreateShopRequest{
		Name: "Acme",
		URL:  "https://acme.example.com",
		Categories: []CategoryDescriptor{
			{Name: "Tools"},
			{Name: "Tools"}, // duplicate descriptor inside one request
			{Name: "Hardware"},
		},
	})
	require.NoError(t, err)

	var links []models.ShopCategory
	require.NoError(t, db.Where("shop_id = ?", shop.ID).Find(&links).Error)
	assert.Len(t, links, 2)

	seen := make(map[uint]bool)
	for _, link := range links {
		assert.False(t, seen[link.CategoryID], "duplicate (shop_id, category_id) pair")
		seen[link.CategoryID] = true
	}
}

func TestCreateShopReusesExistingCategories(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	_, err := svc.CreateCategory(&CreateCategoryRequest{Name: "Tools"})
	require.NoError(t, err)

	owner := createTestUser(t, db, "acme@example.com", "acme", models.UserTypeShop)
	_, err = svc.CreateShop(owner, &CreateShopRequest{
		Name:       "Acme",
		Categories: []CategoryDescriptor{{Name: "Tools"}},
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Where("name = ?", "Tools").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateShopRequiresShopAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)
	buyer := createTestUser(t, db, "buyer@example.com", "buyer", models.UserTypeBuyer)

	_, err := svc.CreateShop(buyer, &CreateShopRequest{Name: "Acme"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateShopDuplicateName(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	first := createTestUser(t, db, "one@example.com", "one", models.UserTypeShop)
	second := createTestUser(t, db, "two@example.com", "two", models.UserTypeShop)

	_, err := svc.CreateShop(first, &CreateShopRequest{Name: "Acme"})
	require.NoError(t, err)

	_, err = svc.CreateShop(second, &CreateShopRequest{Name: "Acme"})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestCreateShopOnePerUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)
	owner := createTestUser(t, db, "one@example.com", "one", models.UserTypeShop)

	_, err := svc.CreateShop(owner, &CreateShopRequest{Name: "Acme"})
	require.NoError(t, err)

	_, err = svc.CreateShop(owner, &CreateShopRequest{Name: "Acme Two"})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestListShopsProjection(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)
	owner := createTestUser(t, db, "acme@example.com", "acme", models.UserTypeShop)

	_, err := svc.CreateShop(owner, &CreateShopRequest{
		Name:       "Acme",
		URL:        "https://acme.example.com",
		Categories: []CategoryDescriptor{{Name: "Tools"}},
	})
	require.NoError(t, err)

	shops, err := svc.ListShops()
	require.NoError(t, err)
	require.Len(t, shops, 1)
	assert.Equal(t, "Acme", shops[0].Name)
	assert.True(t, shops[0].State)
	require.Len(t, shops[0].Categories, 1)
	assert.Equal(t, "Tools", shops[0].Categories[0].Name)
}
