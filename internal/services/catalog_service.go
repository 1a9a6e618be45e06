// internal/services/catalog_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/retailnet/ordering-backend/internal/models"
	"github.com/retailnet/ordering-backend/internal/utils"
)

type CatalogService struct {
	db *gorm.DB
}

// CategoryDescriptor identifies a category to attach: by id when the caller
// knows it, otherwise by unique name.
type CategoryDescriptor struct {
	ID   uint   `json:"id,omitempty"`
	Name string `json:"name" validate:"required,max=40"`
}

type CreateShopRequest struct {
	Name       string               `json:"name" validate:"required,max=50"`
	URL        string               `json:"url,omitempty" validate:"omitempty,url"`
	State      *bool                `json:"state,omitempty"`
	Categories []CategoryDescriptor `json:"categories" validate:"dive"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=40"`
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) ListShops() ([]models.Shop, error) {
	var shops []models.Shop
	if err := s.db.Preload("Categories").
		Select("id", "name", "state", "url").
		Find(&shops).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch shops: %w", err)
	}
	return shops, nil
}

// CreateShop resolves the requested categories, inserts the shop, then
// attaches the join rows. The two commit phases are deliberate: a failure
// between them leaves a shop without links rather than links without a shop.
func (s *CatalogService) CreateShop(owner *models.User, req *CreateShopRequest) (*models.Shop, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if owner.UserType != models.UserTypeShop {
		return nil, fmt.Errorf("only shop accounts can create shops: %w", ErrForbidden)
	}

	state := true
	if req.State != nil {
		state = *req.State
	}

	shop := &models.Shop{
		Name:   req.Name,
		URL:    req.URL,
		State:  state,
		UserID: owner.ID,
	}

	// Phase one: categories (committed row by row, duplicates resolved by
	// lookup) and the shop itself.
	categories, err := s.EnsureCategories(s.db, req.Categories)
	if err != nil {
		return nil, err
	}

	if err := s.db.Create(shop).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var existing models.Shop
			if s.db.Where("name = ?", req.Name).First(&existing).Error == nil {
				return nil, fmt.Errorf("shop with this name %w", ErrAlreadyExists)
			}
			return nil, fmt.Errorf("user already owns a shop: %w", ErrAlreadyExists)
		}
		return nil, fmt.Errorf("failed to create shop: %w", err)
	}

	// Phase two: one join row per distinct resolved category, committed
	// after the shop exists.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		seen := make(map[uint]bool, len(categories))
		for _, category := range categories {
			if seen[category.ID] {
				continue
			}
			seen[category.ID] = true

			link := models.ShopCategory{ShopID: shop.ID, CategoryID: category.ID}
			if err := tx.Create(&link).Error; err != nil {
				return fmt.Errorf("failed to link category %d: %w", category.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	shop.Categories = categories
	return shop, nil
}

// EnsureCategories resolves each descriptor to an existing row, creating it
// when absent. A uniqueness violation means the category pre-exists and is
// resolved by lookup instead of failing the batch. The result holds exactly
// one stored row per input descriptor.
func (s *CatalogService) EnsureCategories(tx *gorm.DB, descriptors []CategoryDescriptor) ([]models.Category, error) {
	categories := make([]models.Category, 0, len(descriptors))

	for _, descriptor := range descriptors {
		category := models.Category{Name: descriptor.Name}
		category.ID = descriptor.ID

		err := tx.Create(&category).Error
		if err == nil {
			categories = append(categories, category)
			continue
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("failed to create category %q: %w", descriptor.Name, err)
		}

		// Pre-existing: resolve the stored identity. The conflict may have
		// been on the id or on the unique name, so try both.
		var existing models.Category
		err = gorm.ErrRecordNotFound
		if descriptor.ID != 0 {
			err = tx.Where("id = ?", descriptor.ID).First(&existing).Error
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = tx.Where("name = ?", descriptor.Name).First(&existing).Error
		}
		if err != nil {
			return nil, fmt.Errorf("failed to resolve category %q: %w", descriptor.Name, err)
		}
		categories = append(categories, existing)
	}

	return categories, nil
}

func (s *CatalogService) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

func (s *CatalogService) CreateCategory(req *CreateCategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	category := &models.Category{Name: req.Name}
	if err := s.db.Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("category with this name %w", ErrAlreadyExists)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}
