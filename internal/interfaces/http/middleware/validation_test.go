package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createForm struct {
	Code string `json:"code" binding:"required,min=1,max=50,skucode"`
	Name string `json:"name" binding:"required"`
}

func TestFormatValidationErrors(t *testing.T) {
	SetupValidator()

	r := gin.New()
	r.POST("/products", func(c *gin.Context) {
		var form createForm
		if err := c.ShouldBindJSON(&form); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusCreated)
	})

	t.Run("missing fields produce per-field details", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "ERR_VALIDATION")
		// Field names come from json tags, not Go field names
		assert.Contains(t, body, `"code"`)
		assert.Contains(t, body, "This field is required")
	})

	t.Run("rejects codes with illegal characters", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"code":"T SHIRT!","name":"T-Shirt"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Only letters, digits, dashes and underscores are allowed")
	})

	t.Run("valid body passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"code":"TSHIRT","name":"T-Shirt"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})
}
