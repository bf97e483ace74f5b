package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// Variant is one line item of the variant matrix: the product narrowed to
// a single combination of attribute values, carrying its own price
// override, stock, SKU and image reference.
//
// The activation invariant holds at all times: Active == true implies
// Stock > 0. SetStock and SetActive are the only mutation paths for those
// fields and both enforce it.
type Variant struct {
	ID        uuid.UUID       `json:"id"`
	Selection Combination     `json:"selection"`
	SKU       string          `json:"sku"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	Active    bool            `json:"active"`
	ImageRef  string          `json:"image_ref,omitempty"`
}

// NewVariant creates a variant for the given combination with safe
// defaults: zero price, zero stock, inactive. The inactive default keeps
// freshly generated variants consistent with the activation invariant.
func NewVariant(selection Combination, sku string) *Variant {
	return &Variant{
		ID:        uuid.New(),
		Selection: selection,
		SKU:       sku,
		Price:     decimal.Zero,
		Stock:     0,
		Active:    false,
	}
}

// Key returns the canonical identity of the variant's attribute selection
func (v *Variant) Key() string {
	return v.Selection.Key()
}

// SetPrice sets the price override. Negative prices are rejected.
func (v *Variant) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Variant price cannot be negative")
	}
	v.Price = price
	return nil
}

// SetStock sets the stock level. Dropping stock to zero on an active
// variant is accepted, but the variant is silently deactivated to keep
// the activation invariant.
func (v *Variant) SetStock(stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Variant stock cannot be negative")
	}
	v.Stock = stock
	if stock == 0 && v.Active {
		v.Active = false
	}
	return nil
}

// SetActive toggles the active flag. Activating a variant with zero stock
// is rejected and the flag is left unchanged.
func (v *Variant) SetActive(active bool) error {
	if active && v.Stock == 0 {
		return shared.NewDomainError("STOCK_REQUIRED", "Variant cannot be activated with zero stock")
	}
	v.Active = active
	return nil
}

// SetImage sets the image reference. An empty ref clears it.
func (v *Variant) SetImage(ref string) {
	v.ImageRef = ref
}

// MatchesAttributes reports whether the variant's selection is still
// derivable from the given attributes: same attribute names, and every
// selected value still listed by its attribute.
func (v *Variant) MatchesAttributes(attrs []*Attribute) bool {
	if len(v.Selection) != len(attrs) {
		return false
	}
	for _, attr := range attrs {
		value, ok := v.Selection[attr.Name]
		if !ok || !attr.HasValue(value) {
			return false
		}
	}
	return true
}
