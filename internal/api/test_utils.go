package api

import (
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/platewise/backend/internal/database"
	"github.com/pageza/platewise/backend/internal/models"
	"github.com/pageza/platewise/backend/internal/service"
)

// TestDB bundles the sqlite database and services handler tests need.
type TestDB struct {
	DB                *gorm.DB
	AuthService       *service.AuthService
	IngredientService *service.IngredientService
	RecipeService     *service.RecipeService
}

// SetupTestDB creates a fresh sqlite-backed database with the full
// schema migrated.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.AutoMigrate(db))

	return &TestDB{
		DB:                db,
		AuthService:       service.NewAuthService(db, "test-secret"),
		IngredientService: service.NewIngredientService(db),
		RecipeService:     service.NewRecipeService(db),
	}
}

// SetupTestRouter returns a router with every handler registered,
// backed by a fresh test database. Rate limiting is disabled.
func SetupTestRouter(t *testing.T) (*gin.Engine, *TestDB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testDB := SetupTestDB(t)
	router := gin.New()

	v1 := router.Group("/api/v1")
	NewAuthHandler(testDB.AuthService).RegisterRoutes(v1)
	NewIngredientHandler(testDB.IngredientService, testDB.AuthService).RegisterRoutes(v1)
	NewRecipeHandler(testDB.RecipeService, testDB.AuthService, nil).RegisterRoutes(v1)
	NewNutritionHandler(testDB.IngredientService, testDB.AuthService).RegisterRoutes(v1)

	return router, testDB
}

// CreateTestUserAndToken registers a user directly through the auth
// service and returns the stored user plus a valid token.
func CreateTestUserAndToken(t *testing.T, testDB *TestDB) (*models.User, string) {
	return CreateTestUser(t, testDB, "test@example.com")
}

// CreateTestUser registers a user with the given email.
func CreateTestUser(t *testing.T, testDB *TestDB, email string) (*models.User, string) {
	t.Helper()

	token, err := testDB.AuthService.Register("Test User", email, "password123")
	require.NoError(t, err)

	var user models.User
	require.NoError(t, testDB.DB.Where("email = ?", email).First(&user).Error)

	return &user, token
}
