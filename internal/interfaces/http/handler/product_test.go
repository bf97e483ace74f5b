package handler_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

func TestProductHandler_Create(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("creates a product", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/products", map[string]any{
			"code": "TSHIRT",
			"name": "Basic T-Shirt",
		})

		require.Equal(t, http.StatusCreated, rec.Code)

		var product catalogapp.ProductResponse
		resp := decodeData(t, rec, &product)
		assert.True(t, resp.Success)
		assert.Equal(t, "TSHIRT", product.Code)
		assert.Equal(t, "Basic T-Shirt", product.Name)
		assert.Equal(t, env.tenantID, product.TenantID)
		assert.NotEqual(t, uuid.Nil, product.ID)
	})

	t.Run("rejects a duplicate code", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/products", map[string]any{
			"code": "TSHIRT",
			"name": "Another T-Shirt",
		})

		require.Equal(t, http.StatusConflict, rec.Code)

		resp := decodeResponse(t, rec)
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ERR_ALREADY_EXISTS", resp.Error.Code)
	})

	t.Run("rejects a missing code", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/products", map[string]any{
			"name": "Nameless",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("requires a tenant header", func(t *testing.T) {
		blank := setupTestEnv(t)
		blank.tenantID = uuid.Nil

		rec := blank.do(t, http.MethodPost, "/api/v1/products", map[string]any{
			"code": "X",
			"name": "X",
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestProductHandler_GetByID(t *testing.T) {
	env := setupTestEnv(t)

	var created catalogapp.ProductResponse
	rec := env.do(t, http.MethodPost, "/api/v1/products", map[string]any{
		"code": "MUG",
		"name": "Coffee Mug",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	decodeData(t, rec, &created)

	t.Run("returns the product", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/products/"+created.ID.String(), nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var product catalogapp.ProductResponse
		decodeData(t, rec, &product)
		assert.Equal(t, created.ID, product.ID)
		assert.Equal(t, "MUG", product.Code)
		assert.Zero(t, product.VariantCount)
	})

	t.Run("returns 404 for an unknown product", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/products/"+uuid.NewString(), nil)

		require.Equal(t, http.StatusNotFound, rec.Code)
		resp := decodeResponse(t, rec)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ERR_NOT_FOUND", resp.Error.Code)
	})

	t.Run("returns 400 for a malformed ID", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/products/not-a-uuid", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestProductHandler_List(t *testing.T) {
	env := setupTestEnv(t)

	for _, code := range []string{"A-1", "A-2", "A-3"} {
		rec := env.do(t, http.MethodPost, "/api/v1/products", map[string]any{
			"code": code,
			"name": "Product " + code,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	t.Run("returns a paginated list", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/products?page=1&page_size=2", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var items []catalogapp.ProductResponse
		resp := decodeData(t, rec, &items)
		assert.Len(t, items, 2)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(3), resp.Meta.Total)
		assert.Equal(t, 2, resp.Meta.TotalPages)
	})

	t.Run("filters by search", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/products?search=A-2", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var items []catalogapp.ProductResponse
		decodeData(t, rec, &items)
		require.Len(t, items, 1)
		assert.Equal(t, "A-2", items[0].Code)
	})
}

func TestProductHandler_Update(t *testing.T) {
	env := setupTestEnv(t)

	var created catalogapp.ProductResponse
	rec := env.do(t, http.MethodPost, "/api/v1/products", map[string]any{
		"code": "HAT",
		"name": "Plain Hat",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	decodeData(t, rec, &created)

	t.Run("updates name and description", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/v1/products/"+created.ID.String(), map[string]any{
			"name":        "Fancy Hat",
			"description": "Now with feathers",
		})

		require.Equal(t, http.StatusOK, rec.Code)

		var product catalogapp.ProductResponse
		decodeData(t, rec, &product)
		assert.Equal(t, "Fancy Hat", product.Name)
		assert.Equal(t, "Now with feathers", product.Description)
	})

	t.Run("returns 404 for an unknown product", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/v1/products/"+uuid.NewString(), map[string]any{
			"name": "Ghost",
		})

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestProductHandler_Delete(t *testing.T) {
	env := setupTestEnv(t)

	var created catalogapp.ProductResponse
	rec := env.do(t, http.MethodPost, "/api/v1/products", map[string]any{
		"code": "SOCK",
		"name": "Wool Sock",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	decodeData(t, rec, &created)

	t.Run("deletes the product", func(t *testing.T) {
		rec := env.do(t, http.MethodDelete, "/api/v1/products/"+created.ID.String(), nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = env.do(t, http.MethodGet, "/api/v1/products/"+created.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("returns 404 when deleting twice", func(t *testing.T) {
		rec := env.do(t, http.MethodDelete, "/api/v1/products/"+created.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
