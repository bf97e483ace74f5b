package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

// VariantSessionHandler exposes the variant matrix edit sessions. A
// session is opened against a product, mutated through the endpoints
// below, and either saved (replacing the product's variants) or
// discarded. Mutations that violate a domain rule return 4xx with the
// session state in the data payload so clients can render the field
// errors without a second fetch.
type VariantSessionHandler struct {
	BaseHandler
	sessionService *catalogapp.VariantSessionService
}

// NewVariantSessionHandler creates a new VariantSessionHandler
func NewVariantSessionHandler(sessionService *catalogapp.VariantSessionService) *VariantSessionHandler {
	return &VariantSessionHandler{
		sessionService: sessionService,
	}
}

// RegisterRoutes registers variant session routes on the given group
func (h *VariantSessionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/products/:id/variant-session", h.Open)

	sessions := rg.Group("/variant-sessions/:sid")
	{
		sessions.GET("", h.Get)
		sessions.DELETE("", h.Discard)
		sessions.POST("/save", h.Save)

		sessions.POST("/attributes", h.AddAttribute)
		sessions.DELETE("/attributes/:aid", h.RemoveAttribute)
		sessions.POST("/attributes/:aid/toggle", h.ToggleAttribute)
		sessions.POST("/attributes/:aid/values", h.AddValue)
		sessions.POST("/attributes/:aid/values/remove", h.RemoveValue)

		sessions.PUT("/base-sku", h.SetBaseSKU)

		sessions.PUT("/variants/:vid/price", h.SetPrice)
		sessions.PUT("/variants/:vid/stock", h.SetStock)
		sessions.PUT("/variants/:vid/active", h.SetActive)
		sessions.PUT("/variants/:vid/image", h.SetImage)
		sessions.PUT("/variants/:vid/selected", h.Select)

		sessions.POST("/variants/bulk-activate", h.BulkToggleActive)
		sessions.POST("/variants/bulk-delete", h.BulkDelete)
	}
}

// Open creates an edit session for a product's variant matrix
func (h *VariantSessionHandler) Open(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	session, err := h.sessionService.Open(c.Request.Context(), tenantID, productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, session)
}

// Get returns the current state of an edit session
func (h *VariantSessionHandler) Get(c *gin.Context) {
	tenantID, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	session, err := h.sessionService.Get(c.Request.Context(), tenantID, sessionID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, session)
}

// AddAttribute adds a variation axis to the session and regenerates the matrix
func (h *VariantSessionHandler) AddAttribute(c *gin.Context) {
	tenantID, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	var req catalogapp.AddAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	session, err := h.sessionService.AddAttribute(c.Request.Context(), tenantID, sessionID, req)
	h.respond(c, session, err)
}

// RemoveAttribute removes a variation axis from the session
func (h *VariantSessionHandler) RemoveAttribute(c *gin.Context) {
	tenantID, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	attributeID, err := uuid.Parse(c.Param("aid"))
	if err != nil {
		h.BadRequest(c, "Invalid attribute ID format")
		return
	}

	session, err := h.sessionService.RemoveAttribute(c.Request.Context(), tenantID, sessionID, attributeID)
	h.respond(c, session, err)
}

// ToggleAttribute flips a variation axis between active and inactive
func (h *VariantSessionHandler) ToggleAttribute(c *gin.Context) {
	tenantID, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	attributeID, err := uuid.Parse(c.Param("aid"))
	if err != nil {
		h.BadRequest(c, "Invalid attribute ID format")
		return
	}

	session, err := h.sessionService.ToggleAttribute(c.Request.Context(), tenantID, sessionID, attributeID)
	h.respond(c, session, err)
}

// AddValue adds a value to a variation axis
func (h *VariantSessionHandler) AddValue(c *gin.Context) {
	tenantID, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	attributeID, err := uuid.Parse(c.Param("aid"))
	if err != nil {
		h.BadRequest(c, "Invalid attribute ID format")
		return
	}

	var req catalogapp.AddValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	session, err := h.sessionService.AddValue(c.Request.Context(), tenantID, sessionID, attributeID, req)
	h.respond(c, session, err)
}

// RemoveValue removes a value from a variation axis
func (h *VariantSessionHandler) RemoveValue(c *gin.Context) {
	tenantID, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	attributeID, err := uuid.Parse(c.Param("aid"))
	if err != nil {
		h.BadRequest(c, "Invalid attribute ID format")
		return
	}

	var req catalogapp.RemoveValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	session, err := h.sessionService.RemoveValue(c.Request.Context(), tenantID, sessionID, attributeID, req)
	h.respond(c, session, err)
}

// SetBaseSKU changes the SKU prefix and re-derives unedited variant SKUs
func (h *VariantSessionHandler) SetBaseSKU(c *gin.Context) {
	tenantID, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	var req catalogapp.SetBaseSKURequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	session, err := h.sessionService.SetBaseSKU(c.Request.Context(), tenantID, sessionID, req)
	h.respond(c, session, err)
}

// SetPrice sets one variant's price
func (h *VariantSessionHandler) SetPrice(c *gin.Context) {
	tenantID, sessionID, variantID, ok := h.variantScope(c)
	if !ok {
		return
	}

	var req catalogapp.SetPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	session, err := h.sessionService.SetPrice(c.Request.Context(), tenantID, sessionID, variantID, req)
	h.respond(c, session, err)
}

// SetStock sets one variant's stock level
func (h *VariantSessionHandler) SetStock(c *gin.Context) {
	tenantID, sessionID, variantID, ok := h.variantScope(c)
	if !ok {
		return
	}

	var req catalogapp.SetStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	session, err := h.sessionService.SetStock(c.Request.Context(), tenantID, sessionID, variantID, req)
	h.respond(c, session, err)
}

// SetActive toggles one variant's active flag
func (h *VariantSessionHandler) SetActive(c *gin.Context) {
	tenantID, sessionID, variantID, ok := h.variantScope(c)
	if !ok {
		return
	}

	var req catalogapp.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	session, err := h.sessionService.SetActive(c.Request.Context(), tenantID, sessionID, variantID, req)
	h.respond(c, session, err)
}

// SetImage sets one variant's image URL
func (h *VariantSessionHandler) SetImage(c *gin.Context) {
	tenantID, sessionID, variantID, ok := h.variantScope(c)
	if !ok {
		return
	}

	var req catalogapp.SetImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	session, err := h.sessionService.SetImage(c.Request.Context(), tenantID, sessionID, variantID, req)
	h.respond(c, session, err)
}

// Select adds or removes a variant from the bulk selection
func (h *VariantSessionHandler) Select(c *gin.Context) {
	tenantID, sessionID, variantID, ok := h.variantScope(c)
	if !ok {
		return
	}

	var req catalogapp.SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	session, err := h.sessionService.Select(c.Request.Context(), tenantID, sessionID, variantID, req)
	h.respond(c, session, err)
}

// BulkToggleActive activates or deactivates all selected variants
func (h *VariantSessionHandler) BulkToggleActive(c *gin.Context) {
	tenantID, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	session, err := h.sessionService.BulkToggleActive(c.Request.Context(), tenantID, sessionID)
	h.respond(c, session, err)
}

// BulkDelete removes all selected variants from the matrix
func (h *VariantSessionHandler) BulkDelete(c *gin.Context) {
	tenantID, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	session, err := h.sessionService.BulkDelete(c.Request.Context(), tenantID, sessionID)
	h.respond(c, session, err)
}

// Save persists the session's variants and closes the session
func (h *VariantSessionHandler) Save(c *gin.Context) {
	tenantID, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	result, err := h.sessionService.Save(c.Request.Context(), tenantID, sessionID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Discard drops the session without saving
func (h *VariantSessionHandler) Discard(c *gin.Context) {
	tenantID, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	if err := h.sessionService.Discard(c.Request.Context(), tenantID, sessionID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// sessionScope extracts the tenant and session IDs or writes the error response
func (h *VariantSessionHandler) sessionScope(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return uuid.Nil, uuid.Nil, false
	}

	sessionID, err := uuid.Parse(c.Param("sid"))
	if err != nil {
		h.BadRequest(c, "Invalid session ID format")
		return uuid.Nil, uuid.Nil, false
	}

	return tenantID, sessionID, true
}

// variantScope extracts tenant, session, and variant IDs or writes the error response
func (h *VariantSessionHandler) variantScope(c *gin.Context) (uuid.UUID, uuid.UUID, uuid.UUID, bool) {
	tenantID, sessionID, ok := h.sessionScope(c)
	if !ok {
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}

	variantID, err := uuid.Parse(c.Param("vid"))
	if err != nil {
		h.BadRequest(c, "Invalid variant ID format")
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}

	return tenantID, sessionID, variantID, true
}

// respond renders a mutation result. A domain error with a session
// payload keeps the payload so field errors reach the client.
func (h *VariantSessionHandler) respond(c *gin.Context, session *catalogapp.SessionResponse, err error) {
	if err != nil {
		if session != nil {
			h.HandleDomainErrorWithData(c, err, session)
			return
		}
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, session)
}
