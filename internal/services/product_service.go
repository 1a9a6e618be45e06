// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/retailnet/ordering-backend/internal/models"
	"github.com/retailnet/ordering-backend/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Name       string `json:"name" validate:"required,max=80"`
	CategoryID uint   `json:"category_id" validate:"required"`
}

type ParameterValue struct {
	Name  string `json:"name" validate:"required,max=40"`
	Value string `json:"value" validate:"required,max=100"`
}

// UpsertProductInfoRequest publishes one shop-specific variant. The triple
// (product_id, shop_id, external_id) addresses the row: a second submission
// with the same triple updates it instead of inserting a duplicate.
type UpsertProductInfoRequest struct {
	ProductID  uint             `json:"product_id" validate:"required"`
	ExternalID uint             `json:"external_id" validate:"required"`
	Model      string           `json:"model,omitempty" validate:"omitempty,max=80"`
	Quantity   int              `json:"quantity" validate:"min=0"`
	Price      int              `json:"price" validate:"min=0"`
	PriceRRC   int              `json:"price_rrc" validate:"min=0"`
	Parameters []ParameterValue `json:"parameters,omitempty" validate:"dive"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	CategoryID uint
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

func (s *ProductService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// The category must pre-exist; products never auto-create one.
	var category models.Category
	if err := s.db.First(&category, req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	product := &models.Product{
		Name:       req.Name,
		CategoryID: req.CategoryID,
	}
	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	product.Category = &category
	return product, nil
}

func (s *ProductService) SearchProducts(params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).Preload("Category")

	if params.CategoryID != 0 {
		query = query.Where("category_id = ?", params.CategoryID)
	}
	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ?", searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "name"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

// UpsertProductInfo publishes or refreshes a variant for the caller's shop.
func (s *ProductService) UpsertProductInfo(owner *models.User, req *UpsertProductInfoRequest) (*models.ProductInfo, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	shop, err := s.shopOf(owner)
	if err != nil {
		return nil, err
	}

	var info *models.ProductInfo
	err = s.db.Transaction(func(tx *gorm.DB) error {
		info, err = s.upsertVariant(tx, shop, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	return info, nil
}

// ImportPriceList runs a batch of variant payloads through the upsert path
// in a single transaction; either the whole price list lands or none of it.
func (s *ProductService) ImportPriceList(owner *models.User, items []UpsertProductInfoRequest) (int, error) {
	shop, err := s.shopOf(owner)
	if err != nil {
		return 0, err
	}

	count := 0
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for i := range items {
			if err := utils.ValidateStruct(&items[i]); err != nil {
				return fmt.Errorf("item %d: validation failed: %w", i, err)
			}
			if _, err := s.upsertVariant(tx, shop, &items[i]); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (s *ProductService) ListShopProducts(shopID uint) ([]models.ProductInfo, error) {
	var shop models.Shop
	if err := s.db.First(&shop, shopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("shop %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var infos []models.ProductInfo
	if err := s.db.Where("shop_id = ?", shopID).
		Preload("Product").
		Preload("ProductParameters.Parameter").
		Find(&infos).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch shop products: %w", err)
	}
	return infos, nil
}

func (s *ProductService) shopOf(owner *models.User) (*models.Shop, error) {
	var shop models.Shop
	if err := s.db.Where("user_id = ?", owner.ID).First(&shop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("caller owns no shop: %w", ErrForbidden)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &shop, nil
}

func (s *ProductService) upsertVariant(tx *gorm.DB, shop *models.Shop, req *UpsertProductInfoRequest) (*models.ProductInfo, error) {
	var product models.Product
	if err := tx.First(&product, req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var info models.ProductInfo
	err := tx.Where("product_id = ? AND shop_id = ? AND external_id = ?",
		req.ProductID, shop.ID, req.ExternalID).First(&info).Error
	switch {
	case err == nil:
		info.Model = req.Model
		info.Quantity = req.Quantity
		info.Price = req.Price
		info.PriceRRC = req.PriceRRC
		if err := tx.Save(&info).Error; err != nil {
			return nil, fmt.Errorf("failed to update variant: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		info = models.ProductInfo{
			Model:      req.Model,
			ExternalID: req.ExternalID,
			ProductID:  req.ProductID,
			ShopID:     shop.ID,
			Quantity:   req.Quantity,
			Price:      req.Price,
			PriceRRC:   req.PriceRRC,
		}
		if err := tx.Create(&info).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, fmt.Errorf("product variant %w", ErrAlreadyExists)
			}
			return nil, fmt.Errorf("failed to create variant: %w", err)
		}
	default:
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.attachParameters(tx, &info, req.Parameters); err != nil {
		return nil, err
	}

	return &info, nil
}

// attachParameters resolves each named parameter (create-if-absent, the same
// contract categories follow) and binds its value to the variant, once.
func (s *ProductService) attachParameters(tx *gorm.DB, info *models.ProductInfo, values []ParameterValue) error {
	for _, pv := range values {
		parameter, err := s.ensureParameter(tx, pv.Name)
		if err != nil {
			return err
		}

		var link models.ProductParameter
		err = tx.Where("product_info_id = ? AND parameter_id = ?", info.ID, parameter.ID).
			First(&link).Error
		switch {
		case err == nil:
			link.Value = pv.Value
			if err := tx.Save(&link).Error; err != nil {
				return fmt.Errorf("failed to update parameter %q: %w", pv.Name, err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			link = models.ProductParameter{
				ProductInfoID: info.ID,
				ParameterID:   parameter.ID,
				Value:         pv.Value,
			}
			if err := tx.Create(&link).Error; err != nil {
				return fmt.Errorf("failed to attach parameter %q: %w", pv.Name, err)
			}
		default:
			return fmt.Errorf("database error: %w", err)
		}
	}
	return nil
}

func (s *ProductService) ensureParameter(tx *gorm.DB, name string) (*models.Parameter, error) {
	var parameter models.Parameter
	err := tx.Where("name = ?", name).First(&parameter).Error
	if err == nil {
		return &parameter, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	parameter = models.Parameter{Name: name}
	// Nested transaction gives the insert its own savepoint, so a duplicate
	// from a concurrent writer doesn't abort the surrounding transaction.
	err = tx.Transaction(func(inner *gorm.DB) error {
		return inner.Create(&parameter).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := tx.Where("name = ?", name).First(&parameter).Error; err != nil {
				return nil, fmt.Errorf("failed to resolve parameter %q: %w", name, err)
			}
			return &parameter, nil
		}
		return nil, fmt.Errorf("failed to create parameter %q: %w", name, err)
	}

	return &parameter, nil
}
