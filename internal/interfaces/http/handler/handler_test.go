package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// testEnv wires real services over an in-memory database so handler
// tests exercise the full request path.
type testEnv struct {
	router   *gin.Engine
	tenantID uuid.UUID
	products *catalogapp.ProductService
	sessions *catalogapp.VariantSessionService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE products (
			id TEXT PRIMARY KEY,
			tenant_id TEXT NOT NULL,
			code TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			price NUMERIC NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'active',
			variant_axes TEXT,
			version INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			UNIQUE(tenant_id, code)
		)
	`).Error
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE product_variants (
			id TEXT PRIMARY KEY,
			tenant_id TEXT NOT NULL,
			product_id TEXT NOT NULL,
			selection TEXT NOT NULL,
			sku TEXT NOT NULL,
			price NUMERIC NOT NULL DEFAULT 0,
			stock INTEGER NOT NULL DEFAULT 0,
			active INTEGER NOT NULL DEFAULT 0,
			image_url TEXT,
			version INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			UNIQUE(product_id, sku)
		)
	`).Error
	require.NoError(t, err)

	productRepo := persistence.NewGormProductRepository(db)
	variantRepo := persistence.NewGormVariantRepository(db)
	sessionStore := catalogapp.NewMemorySessionStore()

	eventPublisher := logger.NewEventLogger(zap.NewNop())
	productService := catalogapp.NewProductService(productRepo, variantRepo, eventPublisher)
	sessionService := catalogapp.NewVariantSessionService(productRepo, variantRepo, sessionStore, eventPublisher)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.TenantMiddleware())

	api := router.Group("/api/v1")
	handler.NewProductHandler(productService).RegisterRoutes(api)
	handler.NewVariantSessionHandler(sessionService).RegisterRoutes(api)
	handler.NewSystemHandler("test").RegisterRoutes(api)

	return &testEnv{
		router:   router,
		tenantID: uuid.New(),
		products: productService,
		sessions: sessionService,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.TenantHeaderKey, e.tenantID.String())

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

// decodeData unmarshals the data portion of an envelope into out.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) dto.Response {
	t.Helper()
	resp := decodeResponse(t, rec)
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
	return resp
}
