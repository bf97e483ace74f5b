package catalog

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// ProductVariant is the persisted form of one variant row. The in-session
// Variant is ephemeral; on save the whole matrix is replaced with rows of
// this shape (the variant list lifecycle is full recomputation, not
// field-by-field patching).
type ProductVariant struct {
	shared.TenantAggregateRoot
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Selection string          `gorm:"type:jsonb;not null"`
	SKU       string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_variant_product_sku,priority:2"`
	Price     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Stock     int             `gorm:"not null;default:0"`
	Active    bool            `gorm:"not null;default:false"`
	ImageURL  string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ProductVariant) TableName() string {
	return "product_variants"
}

// NewProductVariant builds a persistable row from one normalized record
func NewProductVariant(tenantID, productID uuid.UUID, record VariantRecord) (*ProductVariant, error) {
	selection, err := json.Marshal(record.Attributes)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_SELECTION", "Variant selection cannot be serialized")
	}
	price, err := decimal.NewFromString(record.Price)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PRICE", "Variant price is not a valid decimal")
	}

	return &ProductVariant{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProductID:           productID,
		Selection:           string(selection),
		SKU:                 record.SKU,
		Price:               price,
		Stock:               record.Stock,
		Active:              record.Active,
		ImageURL:            record.ImageURL,
	}, nil
}

// ToSessionVariant converts the persisted row back into an in-session
// variant so a reopened session preserves earlier edits.
func (pv *ProductVariant) ToSessionVariant() (*Variant, error) {
	selection := make(Combination)
	if err := json.Unmarshal([]byte(pv.Selection), &selection); err != nil {
		return nil, shared.NewDomainError("INVALID_SELECTION", "Stored variant selection is not valid JSON")
	}

	return &Variant{
		ID:        pv.ID,
		Selection: selection,
		SKU:       pv.SKU,
		Price:     pv.Price,
		Stock:     pv.Stock,
		Active:    pv.Active,
		ImageRef:  pv.ImageURL,
	}, nil
}
