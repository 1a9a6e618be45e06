// internal/handlers/catalog.go
package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/retailnet/ordering-backend/internal/middleware"
	"github.com/retailnet/ordering-backend/internal/models"
	"github.com/retailnet/ordering-backend/internal/services"
	"github.com/retailnet/ordering-backend/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

// ShopRead is the restricted shop projection returned by list endpoints.
type ShopRead struct {
	ID         uint           `json:"id"`
	Name       string         `json:"name"`
	State      bool           `json:"state"`
	URL        string         `json:"url,omitempty"`
	Categories []CategoryRead `json:"categories"`
}

type CategoryRead struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GET /shops
func (h *CatalogHandler) GetShops(c *gin.Context) {
	shops, err := h.catalogService.ListShops()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := make([]ShopRead, 0, len(shops))
	for i := range shops {
		result = append(result, toShopRead(&shops[i]))
	}

	utils.SuccessResponse(c, gin.H{
		"shops": result,
	})
}

// POST /shops
func (h *CatalogHandler) CreateShop(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	shop, err := h.catalogService.CreateShop(user, &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"status": fmt.Sprintf("Shop %s created", shop.Name),
		"shop":   toShopRead(shop),
	})
}

// GET /categories
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"categories": categories,
	})
}

// POST /categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req services.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	category, err := h.catalogService.CreateCategory(&req)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"status":   fmt.Sprintf("Category %s created", category.Name),
		"category": category,
	})
}

func toShopRead(shop *models.Shop) ShopRead {
	read := ShopRead{
		ID:         shop.ID,
		Name:       shop.Name,
		State:      shop.State,
		URL:        shop.URL,
		Categories: make([]CategoryRead, 0, len(shop.Categories)),
	}
	for _, category := range shop.Categories {
		read.Categories = append(read.Categories, CategoryRead{
			ID:   category.ID,
			Name: category.Name,
		})
	}
	return read
}
