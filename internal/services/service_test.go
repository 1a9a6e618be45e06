// internal/services/service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/retailnet/ordering-backend/internal/config"
	"github.com/retailnet/ordering-backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled second connection would see its own empty in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
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

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Auth: config.AuthConfig{
			Transport:          config.AuthTransportJWT,
			JWTSecret:          "test-secret",
			ResetSecret:        "test-reset-secret",
			VerificationSecret: "test-verify-secret",
			TokenTTL:           3600,
			CookieName:         "ordering_goods",
		},
	}
}

func createTestUser(t *testing.T, db *gorm.DB, email, username string, userType models.UserType) *models.User {
	t.Helper()

	user := &models.User{
		Email:    email,
		Username: username,
		UserType: userType,
		IsActive: true,
	}
	require.NoError(t, user.SetPassword("Passw0rd!"))
	require.NoError(t, db.Create(user).Error)
	return user
}
