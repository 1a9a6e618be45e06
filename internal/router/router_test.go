// internal/router/router_test.go
package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/retailnet/ordering-backend/internal/config"
	"github.com/retailnet/ordering-backend/internal/models"
)

type RouterSuite struct {
	suite.Suite
	db     *gorm.DB
	cfg    *config.Config
	router *gin.Engine
}

func (s *RouterSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)

	// A pooled second connection would see its own empty in-memory database.
	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	s.Require().NoError(db.AutoMigrate(
		&models.User{},
		&models.AccessToken{},
		&models.Shop{},
		&models.Category{},
		&models.ShopCategory{},
		&models.Product{},
		&models.ProductInfo{},
		&models.Parameter{},
		&models.ProductParameter{},
		&models.Contact{},
		&models.Order{},
		&models.OrderItem{},
	))

	s.db = db
	s.cfg = &config.Config{
		Environment: "test",
		Auth: config.AuthConfig{
			Transport:          config.AuthTransportCookie,
			JWTSecret:          "test-secret",
			ResetSecret:        "test-reset-secret",
			VerificationSecret: "test-verify-secret",
			TokenTTL:           3600,
			CookieName:         "ordering_goods",
		},
	}
	s.router = Initialize(db, s.cfg)
}

func (s *RouterSuite) request(method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, req)
	return recorder
}

func (s *RouterSuite) decode(recorder *httptest.ResponseRecorder) map[string]interface{} {
	var envelope map[string]interface{}
	s.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope
}

// registerAndLogin creates an account and returns its session cookie.
func (s *RouterSuite) registerAndLogin(email, username string, userType models.UserType) *http.Cookie {
	recorder := s.request(http.MethodPost, "/v1/auth/register", gin.H{
		"email":    email,
		"password": "Passw0rd!",
		"username": username,
		"usertype": userType,
	}, nil)
	s.Require().Equal(http.StatusCreated, recorder.Code, recorder.Body.String())

	recorder = s.request(http.MethodPost, "/v1/auth/login", gin.H{
		"email":    email,
		"password": "Passw0rd!",
	}, nil)
	s.Require().Equal(http.StatusOK, recorder.Code, recorder.Body.String())

	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == s.cfg.Auth.CookieName {
			return cookie
		}
	}
	s.Require().FailNow("session cookie not set")
	return nil
}

func (s *RouterSuite) TestHealth() {
	recorder := s.request(http.MethodGet, "/health", nil, nil)
	s.Equal(http.StatusOK, recorder.Code)
}

func (s *RouterSuite) TestProtectedRouteRequiresAuth() {
	recorder := s.request(http.MethodGet, "/v1/protected-route", nil, nil)
	s.Equal(http.StatusUnauthorized, recorder.Code)

	cookie := s.registerAndLogin("buyer@example.com", "buyer", models.UserTypeBuyer)
	recorder = s.request(http.MethodGet, "/v1/protected-route", nil, cookie)
	s.Equal(http.StatusOK, recorder.Code)

	data := s.decode(recorder)["data"].(map[string]interface{})
	s.Equal("Hello, buyer", data["message"])
}

func (s *RouterSuite) TestLogoutInvalidatesSession() {
	cookie := s.registerAndLogin("buyer@example.com", "buyer", models.UserTypeBuyer)

	recorder := s.request(http.MethodPost, "/v1/auth/logout", nil, cookie)
	s.Equal(http.StatusOK, recorder.Code)

	recorder = s.request(http.MethodGet, "/v1/protected-route", nil, cookie)
	s.Equal(http.StatusUnauthorized, recorder.Code)
}

func (s *RouterSuite) TestShopCreationFlow() {
	cookie := s.registerAndLogin("owner@example.com", "acmeowner", models.UserTypeShop)

	recorder := s.request(http.MethodPost, "/v1/shops", gin.H{
		"name":       "Acme",
		"url":        "https://acme.example.com",
		"categories": []gin.H{{"name": "Tools"}, {"name": "Tools"}},
	}, cookie)
	s.Require().Equal(http.StatusCreated, recorder.Code, recorder.Body.String())

	data := s.decode(recorder)["data"].(map[string]interface{})
	s.Equal("Shop Acme created", data["status"])

	// Public listing shows the shop with the category attached once.
	recorder = s.request(http.MethodGet, "/v1/shops", nil, nil)
	s.Require().Equal(http.StatusOK, recorder.Code)

	data = s.decode(recorder)["data"].(map[string]interface{})
	shops := data["shops"].([]interface{})
	s.Require().Len(shops, 1)

	shop := shops[0].(map[string]interface{})
	s.Equal("Acme", shop["name"])
	categories := shop["categories"].([]interface{})
	s.Require().Len(categories, 1)
	s.Equal("Tools", categories[0].(map[string]interface{})["name"])
}

func (s *RouterSuite) TestShopCreationForbiddenForBuyer() {
	cookie := s.registerAndLogin("buyer@example.com", "buyer", models.UserTypeBuyer)

	recorder := s.request(http.MethodPost, "/v1/shops", gin.H{"name": "Acme"}, cookie)
	s.Equal(http.StatusForbidden, recorder.Code)
}

func (s *RouterSuite) TestDuplicateCategoryConflict() {
	cookie := s.registerAndLogin("buyer@example.com", "buyer", models.UserTypeBuyer)

	recorder := s.request(http.MethodPost, "/v1/categories", gin.H{"name": "Tools"}, cookie)
	s.Require().Equal(http.StatusCreated, recorder.Code, recorder.Body.String())

	recorder = s.request(http.MethodPost, "/v1/categories", gin.H{"name": "Tools"}, cookie)
	s.Equal(http.StatusConflict, recorder.Code)

	var count int64
	s.Require().NoError(s.db.Model(&models.Category{}).Where("name = ?", "Tools").Count(&count).Error)
	s.Equal(int64(1), count)
}

func (s *RouterSuite) TestOrderFlow() {
	ownerCookie := s.registerAndLogin("owner@example.com", "acmeowner", models.UserTypeShop)

	recorder := s.request(http.MethodPost, "/v1/shops", gin.H{
		"name":       "Acme",
		"categories": []gin.H{{"name": "Tools"}},
	}, ownerCookie)
	s.Require().Equal(http.StatusCreated, recorder.Code, recorder.Body.String())

	// Publish one product and variant through the catalog.
	var category models.Category
	s.Require().NoError(s.db.Where("name = ?", "Tools").First(&category).Error)

	recorder = s.request(http.MethodPost, "/v1/products", gin.H{
		"name":        "Hammer",
		"category_id": category.ID,
	}, ownerCookie)
	s.Require().Equal(http.StatusCreated, recorder.Code, recorder.Body.String())

	var product models.Product
	s.Require().NoError(s.db.Where("name = ?", "Hammer").First(&product).Error)

	recorder = s.request(http.MethodPost, "/v1/products/info", gin.H{
		"product_id":  product.ID,
		"external_id": 100,
		"quantity":    10,
		"price":       1000,
	}, ownerCookie)
	s.Require().Equal(http.StatusOK, recorder.Code, recorder.Body.String())

	var info models.ProductInfo
	s.Require().NoError(s.db.First(&info).Error)

	// The buyer fills a basket, registers a contact, and confirms.
	buyerCookie := s.registerAndLogin("buyer@example.com", "buyer", models.UserTypeBuyer)

	recorder = s.request(http.MethodPost, "/v1/basket/items", gin.H{
		"product_info_id": info.ID,
		"quantity":        2,
	}, buyerCookie)
	s.Require().Equal(http.StatusOK, recorder.Code, recorder.Body.String())

	recorder = s.request(http.MethodPost, "/v1/contacts", gin.H{
		"city":   "Springfield",
		"street": "Evergreen Terrace",
		"house":  "742",
		"phone":  "+1-555-0100",
	}, buyerCookie)
	s.Require().Equal(http.StatusCreated, recorder.Code, recorder.Body.String())

	var contact models.Contact
	s.Require().NoError(s.db.First(&contact).Error)

	recorder = s.request(http.MethodPost, "/v1/basket/confirm", gin.H{
		"contact_id": contact.ID,
	}, buyerCookie)
	s.Require().Equal(http.StatusOK, recorder.Code, recorder.Body.String())

	recorder = s.request(http.MethodGet, "/v1/orders", nil, buyerCookie)
	s.Require().Equal(http.StatusOK, recorder.Code)

	data := s.decode(recorder)["data"].(map[string]interface{})
	orders := data["orders"].([]interface{})
	s.Require().Len(orders, 1)
	s.Equal("new", orders[0].(map[string]interface{})["state"])
}

func (s *RouterSuite) TestOrderStateRequiresSuperuser() {
	cookie := s.registerAndLogin("buyer@example.com", "buyer", models.UserTypeBuyer)

	recorder := s.request(http.MethodPut, "/v1/orders/1/state", gin.H{"state": "confirmed"}, cookie)
	s.Equal(http.StatusForbidden, recorder.Code)
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}
