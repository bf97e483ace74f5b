package catalog

import (
	"context"

	"github.com/google/uuid"
)

// VariantRepository defines the interface for variant persistence.
// Saving is wholesale: the previous matrix of a product is replaced in
// one transaction, mirroring the full-recompute lifecycle of the engine.
type VariantRepository interface {
	// FindByProduct returns all persisted variants of a product
	FindByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]ProductVariant, error)

	// ReplaceForProduct atomically replaces a product's variants
	ReplaceForProduct(ctx context.Context, tenantID, productID uuid.UUID, variants []*ProductVariant) error

	// DeleteForProduct removes all variants of a product
	DeleteForProduct(ctx context.Context, tenantID, productID uuid.UUID) error
}
