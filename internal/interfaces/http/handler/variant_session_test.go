package handler_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

// createProduct creates a product through the API and returns its response.
func createProduct(t *testing.T, env *testEnv, code, name string) catalogapp.ProductResponse {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/api/v1/products", map[string]any{
		"code": code,
		"name": name,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var product catalogapp.ProductResponse
	decodeData(t, rec, &product)
	return product
}

// openSession opens a variant edit session for the product.
func openSession(t *testing.T, env *testEnv, productID uuid.UUID) catalogapp.SessionResponse {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/api/v1/products/"+productID.String()+"/variant-session", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var session catalogapp.SessionResponse
	decodeData(t, rec, &session)
	return session
}

func sessionPath(sessionID uuid.UUID, suffix string) string {
	return "/api/v1/variant-sessions/" + sessionID.String() + suffix
}

func TestVariantSessionHandler_Open(t *testing.T) {
	env := setupTestEnv(t)
	product := createProduct(t, env, "SHIRT", "Shirt")

	t.Run("opens an empty session", func(t *testing.T) {
		session := openSession(t, env, product.ID)

		assert.Equal(t, product.ID, session.ProductID)
		assert.Empty(t, session.Attributes)
		assert.Empty(t, session.Variants)
		assert.Empty(t, session.FieldErrors)
	})

	t.Run("returns 404 for an unknown product", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/products/"+uuid.NewString()+"/variant-session", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestVariantSessionHandler_MatrixGeneration(t *testing.T) {
	env := setupTestEnv(t)
	product := createProduct(t, env, "SHIRT", "Shirt")
	session := openSession(t, env, product.ID)

	addAttribute := func(t *testing.T, name string) catalogapp.SessionResponse {
		t.Helper()
		rec := env.do(t, http.MethodPost, sessionPath(session.ID, "/attributes"), map[string]any{"name": name})
		require.Equal(t, http.StatusOK, rec.Code)
		var s catalogapp.SessionResponse
		decodeData(t, rec, &s)
		return s
	}
	addValue := func(t *testing.T, attrID uuid.UUID, value string) catalogapp.SessionResponse {
		t.Helper()
		rec := env.do(t, http.MethodPost, sessionPath(session.ID, "/attributes/"+attrID.String()+"/values"), map[string]any{"value": value})
		require.Equal(t, http.StatusOK, rec.Code)
		var s catalogapp.SessionResponse
		decodeData(t, rec, &s)
		return s
	}

	s := addAttribute(t, "Color")
	require.Len(t, s.Attributes, 1)
	colorID := s.Attributes[0].ID
	assert.Empty(t, s.Variants)

	addValue(t, colorID, "Red")
	s = addValue(t, colorID, "Blue")
	require.Len(t, s.Variants, 2)

	s = addAttribute(t, "Size")
	sizeID := s.Attributes[1].ID
	addValue(t, sizeID, "S")
	s = addValue(t, sizeID, "M")

	// 2 colors x 2 sizes, first attribute varies slowest
	require.Len(t, s.Variants, 4)
	assert.Equal(t, "Red", s.Variants[0].Selection["Color"])
	assert.Equal(t, "S", s.Variants[0].Selection["Size"])
	assert.Equal(t, "Red", s.Variants[1].Selection["Color"])
	assert.Equal(t, "M", s.Variants[1].Selection["Size"])
	assert.Equal(t, "Blue", s.Variants[2].Selection["Color"])

	skus := make(map[string]bool)
	for _, v := range s.Variants {
		assert.NotEmpty(t, v.SKU)
		assert.False(t, skus[v.SKU], "SKU %s appears twice", v.SKU)
		skus[v.SKU] = true

		assert.Equal(t, "0.00", v.Price)
		assert.Zero(t, v.Stock)
		assert.False(t, v.Active)
	}

	t.Run("duplicate attribute returns the session with a field error", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, sessionPath(session.ID, "/attributes"), map[string]any{"name": "Color"})

		require.Equal(t, http.StatusConflict, rec.Code)

		var s catalogapp.SessionResponse
		resp := decodeData(t, rec, &s)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ERR_ALREADY_EXISTS", resp.Error.Code)
		assert.Contains(t, s.FieldErrors, "attributes.name")
		assert.Len(t, s.Attributes, 2)
	})

	t.Run("removing an attribute shrinks the matrix", func(t *testing.T) {
		rec := env.do(t, http.MethodDelete, sessionPath(session.ID, "/attributes/"+sizeID.String()), nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var s catalogapp.SessionResponse
		decodeData(t, rec, &s)
		require.Len(t, s.Attributes, 1)
		assert.Len(t, s.Variants, 2)
	})

	t.Run("unknown session returns 404", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/variant-sessions/"+uuid.NewString()+"/attributes", map[string]any{"name": "Material"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestVariantSessionHandler_VariantEdits(t *testing.T) {
	env := setupTestEnv(t)
	product := createProduct(t, env, "SHIRT", "Shirt")
	session := openSession(t, env, product.ID)

	rec := env.do(t, http.MethodPost, sessionPath(session.ID, "/attributes"), map[string]any{"name": "Color"})
	require.Equal(t, http.StatusOK, rec.Code)
	var s catalogapp.SessionResponse
	decodeData(t, rec, &s)
	colorID := s.Attributes[0].ID

	for _, value := range []string{"Red", "Blue"} {
		rec = env.do(t, http.MethodPost, sessionPath(session.ID, "/attributes/"+colorID.String()+"/values"), map[string]any{"value": value})
		require.Equal(t, http.StatusOK, rec.Code)
	}
	decodeData(t, rec, &s)
	require.Len(t, s.Variants, 2)
	red := s.Variants[0].ID
	blue := s.Variants[1].ID

	t.Run("sets price and stock", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, sessionPath(session.ID, "/variants/"+red.String()+"/price"), map[string]any{"price": "19.99"})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = env.do(t, http.MethodPut, sessionPath(session.ID, "/variants/"+red.String()+"/stock"), map[string]any{"stock": 5})
		require.Equal(t, http.StatusOK, rec.Code)

		var s catalogapp.SessionResponse
		decodeData(t, rec, &s)
		assert.Equal(t, "19.99", s.Variants[0].Price)
		assert.Equal(t, 5, s.Variants[0].Stock)
	})

	t.Run("activating a stocked variant succeeds", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, sessionPath(session.ID, "/variants/"+red.String()+"/active"), map[string]any{"active": true})

		require.Equal(t, http.StatusOK, rec.Code)
		var s catalogapp.SessionResponse
		decodeData(t, rec, &s)
		assert.True(t, s.Variants[0].Active)
	})

	t.Run("activating a zero stock variant returns the session with a field error", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, sessionPath(session.ID, "/variants/"+blue.String()+"/active"), map[string]any{"active": true})

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var s catalogapp.SessionResponse
		resp := decodeData(t, rec, &s)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ERR_BUSINESS_RULE", resp.Error.Code)
		assert.Equal(t, "Variant cannot be activated with zero stock",
			s.FieldErrors["variants."+blue.String()+".active"])
		assert.False(t, s.Variants[1].Active)
	})

	t.Run("dropping stock to zero deactivates the variant", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, sessionPath(session.ID, "/variants/"+red.String()+"/stock"), map[string]any{"stock": 0})

		require.Equal(t, http.StatusOK, rec.Code)
		var s catalogapp.SessionResponse
		decodeData(t, rec, &s)
		assert.Zero(t, s.Variants[0].Stock)
		assert.False(t, s.Variants[0].Active)
	})

	t.Run("sets an image URL", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, sessionPath(session.ID, "/variants/"+red.String()+"/image"), map[string]any{"image_url": "https://cdn.example.com/red.jpg"})

		require.Equal(t, http.StatusOK, rec.Code)
		var s catalogapp.SessionResponse
		decodeData(t, rec, &s)
		assert.Equal(t, "https://cdn.example.com/red.jpg", s.Variants[0].ImageURL)
	})

	t.Run("unknown variant returns 404", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, sessionPath(session.ID, "/variants/"+uuid.NewString()+"/stock"), map[string]any{"stock": 1})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestVariantSessionHandler_BulkOperations(t *testing.T) {
	env := setupTestEnv(t)
	product := createProduct(t, env, "SHIRT", "Shirt")
	session := openSession(t, env, product.ID)

	rec := env.do(t, http.MethodPost, sessionPath(session.ID, "/attributes"), map[string]any{"name": "Color"})
	require.Equal(t, http.StatusOK, rec.Code)
	var s catalogapp.SessionResponse
	decodeData(t, rec, &s)
	colorID := s.Attributes[0].ID

	for _, value := range []string{"Red", "Blue", "Green"} {
		rec = env.do(t, http.MethodPost, sessionPath(session.ID, "/attributes/"+colorID.String()+"/values"), map[string]any{"value": value})
		require.Equal(t, http.StatusOK, rec.Code)
	}
	decodeData(t, rec, &s)
	require.Len(t, s.Variants, 3)

	// stock the first two, leave the third at zero
	for _, v := range s.Variants[:2] {
		rec = env.do(t, http.MethodPut, sessionPath(session.ID, "/variants/"+v.ID.String()+"/stock"), map[string]any{"stock": 10})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	selectVariant := func(t *testing.T, id uuid.UUID, selected bool) {
		t.Helper()
		rec := env.do(t, http.MethodPut, sessionPath(session.ID, "/variants/"+id.String()+"/selected"), map[string]any{"selected": selected})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	t.Run("bulk activate is all or nothing", func(t *testing.T) {
		selectVariant(t, s.Variants[0].ID, true)
		selectVariant(t, s.Variants[2].ID, true)

		rec := env.do(t, http.MethodPost, sessionPath(session.ID, "/variants/bulk-activate"), nil)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var blocked catalogapp.SessionResponse
		resp := decodeData(t, rec, &blocked)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ERR_BUSINESS_RULE", resp.Error.Code)
		assert.Equal(t, "1 variant(s) have stock 0", blocked.FieldErrors["variants.bulk"])

		// selection survives the rejection and nothing was activated
		assert.True(t, blocked.Variants[0].Selected)
		assert.True(t, blocked.Variants[2].Selected)
		for _, v := range blocked.Variants {
			assert.False(t, v.Active)
		}
	})

	t.Run("bulk activate succeeds once every selected variant has stock", func(t *testing.T) {
		selectVariant(t, s.Variants[2].ID, false)

		rec := env.do(t, http.MethodPost, sessionPath(session.ID, "/variants/bulk-activate"), nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var ok catalogapp.SessionResponse
		decodeData(t, rec, &ok)
		assert.True(t, ok.Variants[0].Active)
		assert.False(t, ok.Variants[2].Active)
		assert.NotContains(t, ok.FieldErrors, "variants.bulk")
		for _, v := range ok.Variants {
			assert.False(t, v.Selected)
		}
	})

	t.Run("bulk delete removes selected variants unconditionally", func(t *testing.T) {
		selectVariant(t, s.Variants[2].ID, true)

		rec := env.do(t, http.MethodPost, sessionPath(session.ID, "/variants/bulk-delete"), nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var after catalogapp.SessionResponse
		decodeData(t, rec, &after)
		assert.Len(t, after.Variants, 2)
	})
}

func TestVariantSessionHandler_SaveAndDiscard(t *testing.T) {
	env := setupTestEnv(t)

	build := func(t *testing.T) (catalogapp.ProductResponse, catalogapp.SessionResponse) {
		t.Helper()
		product := createProduct(t, env, "P-"+uuid.NewString()[:8], "Product")
		session := openSession(t, env, product.ID)

		rec := env.do(t, http.MethodPost, sessionPath(session.ID, "/attributes"), map[string]any{"name": "Color"})
		require.Equal(t, http.StatusOK, rec.Code)
		var s catalogapp.SessionResponse
		decodeData(t, rec, &s)

		for _, value := range []string{"Red", "Blue"} {
			rec = env.do(t, http.MethodPost, sessionPath(session.ID, "/attributes/"+s.Attributes[0].ID.String()+"/values"), map[string]any{"value": value})
			require.Equal(t, http.StatusOK, rec.Code)
		}
		decodeData(t, rec, &s)
		return product, s
	}

	t.Run("save persists the matrix and closes the session", func(t *testing.T) {
		product, session := build(t)

		rec := env.do(t, http.MethodPost, sessionPath(session.ID, "/save"), nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var result catalogapp.SaveSessionResponse
		decodeData(t, rec, &result)
		assert.Equal(t, product.ID, result.ProductID)
		assert.Equal(t, 2, result.VariantCount)

		rec = env.do(t, http.MethodGet, sessionPath(session.ID, ""), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = env.do(t, http.MethodGet, "/api/v1/products/"+product.ID.String(), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var fetched catalogapp.ProductResponse
		decodeData(t, rec, &fetched)
		assert.Equal(t, 2, fetched.VariantCount)
	})

	t.Run("reopening after save restores the saved matrix", func(t *testing.T) {
		product, session := build(t)

		rec := env.do(t, http.MethodPost, sessionPath(session.ID, "/save"), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		reopened := openSession(t, env, product.ID)
		assert.Len(t, reopened.Variants, 2)
		require.Len(t, reopened.Attributes, 1)
		assert.Equal(t, "Color", reopened.Attributes[0].Name)
	})

	t.Run("discard drops the session without saving", func(t *testing.T) {
		product, session := build(t)

		rec := env.do(t, http.MethodDelete, sessionPath(session.ID, ""), nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = env.do(t, http.MethodGet, sessionPath(session.ID, ""), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = env.do(t, http.MethodGet, "/api/v1/products/"+product.ID.String(), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var fetched catalogapp.ProductResponse
		decodeData(t, rec, &fetched)
		assert.Zero(t, fetched.VariantCount)
	})
}

func TestSystemHandler(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("ping", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/ping", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		assert.True(t, resp.Success)
	})

	t.Run("system info", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/system/info", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var info map[string]any
		decodeData(t, rec, &info)
		assert.Equal(t, "Storefront Backend API", info["name"])
		assert.Equal(t, "test", info["version"])
	})
}
