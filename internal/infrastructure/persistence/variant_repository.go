package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// GormVariantRepository implements catalog.VariantRepository using GORM.
// Variant rows are replaced wholesale: the engine recomputes the full
// matrix on every save, so partial updates would only invite drift.
type GormVariantRepository struct {
	db *gorm.DB
}

// NewGormVariantRepository creates a new GormVariantRepository
func NewGormVariantRepository(db *gorm.DB) *GormVariantRepository {
	return &GormVariantRepository{db: db}
}

// FindByProduct returns all persisted variants of a product, ordered by SKU
func (r *GormVariantRepository) FindByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]catalog.ProductVariant, error) {
	var variants []catalog.ProductVariant
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		Order("sku ASC").
		Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// ReplaceForProduct atomically replaces a product's variants: the previous
// rows are deleted and the new ones inserted in one transaction.
func (r *GormVariantRepository) ReplaceForProduct(ctx context.Context, tenantID, productID uuid.UUID, variants []*catalog.ProductVariant) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("tenant_id = ? AND product_id = ?", tenantID, productID).
			Delete(&catalog.ProductVariant{}).Error; err != nil {
			return err
		}
		if len(variants) == 0 {
			return nil
		}
		return tx.Create(variants).Error
	})
}

// DeleteForProduct removes all variants of a product
func (r *GormVariantRepository) DeleteForProduct(ctx context.Context, tenantID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		Delete(&catalog.ProductVariant{}).Error
}
