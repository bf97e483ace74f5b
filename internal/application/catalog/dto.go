package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Code        string           `json:"code" binding:"required,min=1,max=50,skucode"`
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	Description string           `json:"description" binding:"max=2000"`
	Price       *decimal.Decimal `json:"price"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	Price       *decimal.Decimal `json:"price"`
}

// ProductListFilter represents filter options for product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID           uuid.UUID       `json:"id"`
	TenantID     uuid.UUID       `json:"tenant_id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Status       string          `json:"status"`
	VariantCount int             `json:"variant_count"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Version      int             `json:"version"`
}

// AttributeResponse represents one variation axis in API responses
type AttributeResponse struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Values []string  `json:"values"`
	Active bool      `json:"active"`
}

// VariantResponse represents one row of the variant matrix
type VariantResponse struct {
	ID        uuid.UUID         `json:"id"`
	Selection map[string]string `json:"selection"`
	SKU       string            `json:"sku"`
	Price     string            `json:"price"`
	Stock     int               `json:"stock"`
	Active    bool              `json:"active"`
	ImageURL  string            `json:"image_url,omitempty"`
	Selected  bool              `json:"selected"`
}

// SessionResponse represents the full state of a variant edit session
type SessionResponse struct {
	ID          uuid.UUID           `json:"id"`
	ProductID   uuid.UUID           `json:"product_id"`
	BaseSKU     string              `json:"base_sku"`
	Attributes  []AttributeResponse `json:"attributes"`
	Variants    []VariantResponse   `json:"variants"`
	FieldErrors map[string]string   `json:"field_errors"`
}

// SaveSessionResponse reports the outcome of persisting a session
type SaveSessionResponse struct {
	ProductID    uuid.UUID `json:"product_id"`
	VariantCount int       `json:"variant_count"`
}

// AddAttributeRequest adds a variation axis to a session
type AddAttributeRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// AddValueRequest adds a value to a variation axis
type AddValueRequest struct {
	Value string `json:"value" binding:"required,max=100"`
}

// RemoveValueRequest removes a value from a variation axis
type RemoveValueRequest struct {
	Value string `json:"value" binding:"required,max=100"`
}

// SetBaseSKURequest changes the SKU prefix of the session
type SetBaseSKURequest struct {
	BaseSKU string `json:"base_sku" binding:"omitempty,max=50,skucode"`
}

// SetPriceRequest sets one variant's price override
type SetPriceRequest struct {
	Price decimal.Decimal `json:"price"`
}

// SetStockRequest sets one variant's stock level
type SetStockRequest struct {
	Stock int `json:"stock"`
}

// SetActiveRequest toggles one variant's active flag
type SetActiveRequest struct {
	Active bool `json:"active"`
}

// SetImageRequest sets one variant's image URL
type SetImageRequest struct {
	ImageURL string `json:"image_url" binding:"max=500"`
}

// SelectRequest adds or removes a variant from the bulk selection
type SelectRequest struct {
	Selected bool `json:"selected"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product, variantCount int) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		TenantID:     p.TenantID,
		Code:         p.Code,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Status:       string(p.Status),
		VariantCount: variantCount,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		Version:      p.Version,
	}
}

// ToSessionResponse converts an edit session to its API representation
func ToSessionResponse(s *catalog.EditSession) SessionResponse {
	attributes := make([]AttributeResponse, 0, len(s.Attributes.Attributes))
	for _, attr := range s.Attributes.Attributes {
		values := make([]string, len(attr.Values))
		copy(values, attr.Values)
		attributes = append(attributes, AttributeResponse{
			ID:     attr.ID,
			Name:   attr.Name,
			Values: values,
			Active: attr.Active,
		})
	}

	variants := make([]VariantResponse, 0, len(s.Variants))
	for _, v := range s.Variants {
		selection := make(map[string]string, len(v.Selection))
		for name, value := range v.Selection {
			selection[name] = value
		}
		variants = append(variants, VariantResponse{
			ID:        v.ID,
			Selection: selection,
			SKU:       v.SKU,
			Price:     v.Price.StringFixed(2),
			Stock:     v.Stock,
			Active:    v.Active,
			ImageURL:  v.ImageRef,
			Selected:  s.Selection[v.ID],
		})
	}

	fieldErrors := make(map[string]string, len(s.FieldErrors))
	for field, message := range s.FieldErrors {
		fieldErrors[field] = message
	}

	return SessionResponse{
		ID:          s.ID,
		ProductID:   s.ProductID,
		BaseSKU:     s.BaseSKU,
		Attributes:  attributes,
		Variants:    variants,
		FieldErrors: fieldErrors,
	}
}
