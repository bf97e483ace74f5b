package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// EditSession owns the in-progress variant matrix of one product edit:
// the attribute set, the generated variant list, the bulk selection and
// the field-keyed validation errors. It is the single entry point for
// every mutation the form layer can make; each attribute mutation
// triggers a full reconciliation pass.
//
// A session is owned by exactly one logical thread of control and is
// discarded when the edit ends, saved or not.
type EditSession struct {
	ID          uuid.UUID          `json:"id"`
	TenantID    uuid.UUID          `json:"tenant_id"`
	ProductID   uuid.UUID          `json:"product_id"`
	BaseSKU     string             `json:"base_sku"`
	Attributes  *AttributeSet      `json:"attributes"`
	Variants    []*Variant         `json:"variants"`
	Selection   map[uuid.UUID]bool `json:"selection"`
	FieldErrors map[string]string  `json:"field_errors"`
}

// VariantRecord is the normalized save payload for one variant, handed to
// the persistence collaborator on save.
type VariantRecord struct {
	Attributes map[string]string `json:"attributes"`
	SKU        string            `json:"sku"`
	Price      string            `json:"price"`
	Stock      int               `json:"stock"`
	Active     bool              `json:"active"`
	ImageURL   string            `json:"image_url,omitempty"`
}

// NewEditSession opens a fresh edit session for a product
func NewEditSession(tenantID, productID uuid.UUID, baseSKU string) *EditSession {
	return &EditSession{
		ID:          uuid.New(),
		TenantID:    tenantID,
		ProductID:   productID,
		BaseSKU:     NormalizeBaseSKU(baseSKU),
		Attributes:  NewAttributeSet(),
		Variants:    make([]*Variant, 0),
		Selection:   make(map[uuid.UUID]bool),
		FieldErrors: make(map[string]string),
	}
}

// RestoreEditSession opens a session over previously persisted state and
// reconciles immediately so the variant list matches the attribute set.
func RestoreEditSession(tenantID, productID uuid.UUID, baseSKU string, attrs *AttributeSet, variants []*Variant) *EditSession {
	if attrs == nil {
		attrs = NewAttributeSet()
	}
	s := &EditSession{
		ID:          uuid.New(),
		TenantID:    tenantID,
		ProductID:   productID,
		BaseSKU:     NormalizeBaseSKU(baseSKU),
		Attributes:  attrs,
		Variants:    variants,
		Selection:   make(map[uuid.UUID]bool),
		FieldErrors: make(map[string]string),
	}
	s.regenerate()
	return s
}

// AddAttribute adds a variation axis and regenerates the variant list
func (s *EditSession) AddAttribute(name string) (*Attribute, error) {
	attr, err := s.Attributes.AddAttribute(name)
	if err != nil {
		s.setFieldError("attributes.name", err)
		return nil, err
	}
	delete(s.FieldErrors, "attributes.name")
	s.regenerate()
	return attr, nil
}

// RemoveAttribute removes a variation axis and regenerates the variant list
func (s *EditSession) RemoveAttribute(id uuid.UUID) error {
	if err := s.Attributes.RemoveAttribute(id); err != nil {
		return err
	}
	s.regenerate()
	return nil
}

// ToggleAttribute flips an axis' active flag and regenerates the variant list
func (s *EditSession) ToggleAttribute(id uuid.UUID) error {
	if err := s.Attributes.ToggleActive(id); err != nil {
		return err
	}
	s.regenerate()
	return nil
}

// AddValue adds a value to an axis and regenerates the variant list
func (s *EditSession) AddValue(id uuid.UUID, value string) error {
	if err := s.Attributes.AddValue(id, value); err != nil {
		s.setFieldError("attributes.value", err)
		return err
	}
	delete(s.FieldErrors, "attributes.value")
	s.regenerate()
	return nil
}

// RemoveValue removes a value from an axis and regenerates the variant list
func (s *EditSession) RemoveValue(id uuid.UUID, value string) error {
	if err := s.Attributes.RemoveValue(id, value); err != nil {
		return err
	}
	s.regenerate()
	return nil
}

// SetBaseSKU updates the base SKU and regenerates so derived SKUs pick up
// the new prefix. User-assigned fields are untouched by the pass.
func (s *EditSession) SetBaseSKU(baseSKU string) {
	s.BaseSKU = NormalizeBaseSKU(baseSKU)
	s.regenerate()
}

// SetPrice updates a single variant's price override
func (s *EditSession) SetPrice(variantID uuid.UUID, price decimal.Decimal) error {
	v, err := s.findVariant(variantID)
	if err != nil {
		return err
	}
	field := "variants." + variantID.String() + ".price"
	if err := v.SetPrice(price); err != nil {
		s.setFieldError(field, err)
		return err
	}
	delete(s.FieldErrors, field)
	return nil
}

// SetStock updates a single variant's stock level. Dropping stock to zero
// on an active variant deactivates it silently; that is not an error.
func (s *EditSession) SetStock(variantID uuid.UUID, stock int) error {
	v, err := s.findVariant(variantID)
	if err != nil {
		return err
	}
	field := "variants." + variantID.String() + ".stock"
	if err := v.SetStock(stock); err != nil {
		s.setFieldError(field, err)
		return err
	}
	delete(s.FieldErrors, field)
	return nil
}

// SetActive toggles a single variant's active flag under the activation
// invariant; rejection surfaces as a field-level validation error.
func (s *EditSession) SetActive(variantID uuid.UUID, active bool) error {
	v, err := s.findVariant(variantID)
	if err != nil {
		return err
	}
	field := "variants." + variantID.String() + ".active"
	if err := v.SetActive(active); err != nil {
		s.setFieldError(field, err)
		return err
	}
	delete(s.FieldErrors, field)
	return nil
}

// SetImage updates a single variant's image reference
func (s *EditSession) SetImage(variantID uuid.UUID, ref string) error {
	v, err := s.findVariant(variantID)
	if err != nil {
		return err
	}
	v.SetImage(ref)
	return nil
}

// Select adds or removes a variant from the bulk selection
func (s *EditSession) Select(variantID uuid.UUID, selected bool) error {
	if _, err := s.findVariant(variantID); err != nil {
		return err
	}
	if selected {
		s.Selection[variantID] = true
	} else {
		delete(s.Selection, variantID)
	}
	return nil
}

// ClearSelection empties the bulk selection
func (s *EditSession) ClearSelection() {
	s.Selection = make(map[uuid.UUID]bool)
}

// BulkToggleActive applies the bulk activate/deactivate toggle to the
// current selection. On success the selection is cleared; on rejection it
// is kept so the user can inspect the rows that blocked the operation.
func (s *EditSession) BulkToggleActive() error {
	selected := s.selectedVariants()
	if err := BulkToggleActive(selected); err != nil {
		s.setFieldError("variants.bulk", err)
		return err
	}
	delete(s.FieldErrors, "variants.bulk")
	s.ClearSelection()
	return nil
}

// BulkDelete removes every selected variant and clears the selection
func (s *EditSession) BulkDelete() {
	s.Variants = BulkDelete(s.Variants, s.Selection)
	delete(s.FieldErrors, "variants.bulk")
	s.ClearSelection()
}

// Normalized returns the save payload: one record per variant, in list
// order, with the price formatted to two decimal places.
func (s *EditSession) Normalized() []VariantRecord {
	records := make([]VariantRecord, 0, len(s.Variants))
	for _, v := range s.Variants {
		attrs := make(map[string]string, len(v.Selection))
		for name, value := range v.Selection {
			attrs[name] = value
		}
		records = append(records, VariantRecord{
			Attributes: attrs,
			SKU:        v.SKU,
			Price:      v.Price.StringFixed(2),
			Stock:      v.Stock,
			Active:     v.Active,
			ImageURL:   v.ImageRef,
		})
	}
	return records
}

// regenerate recomputes the variant list from the attribute set and prunes
// the selection and field errors of variants that no longer exist.
func (s *EditSession) regenerate() {
	s.Variants = Reconcile(s.Variants, s.Attributes, s.BaseSKU)

	alive := make(map[uuid.UUID]bool, len(s.Variants))
	for _, v := range s.Variants {
		alive[v.ID] = true
	}
	for id := range s.Selection {
		if !alive[id] {
			delete(s.Selection, id)
		}
	}
	for field := range s.FieldErrors {
		if id, ok := variantFieldID(field); ok && !alive[id] {
			delete(s.FieldErrors, field)
		}
	}
}

func (s *EditSession) findVariant(id uuid.UUID) (*Variant, error) {
	for _, v := range s.Variants {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, shared.NewDomainError("VARIANT_NOT_FOUND", "Variant not found")
}

func (s *EditSession) selectedVariants() []*Variant {
	selected := make([]*Variant, 0, len(s.Selection))
	for _, v := range s.Variants {
		if s.Selection[v.ID] {
			selected = append(selected, v)
		}
	}
	return selected
}

func (s *EditSession) setFieldError(field string, err error) {
	if derr, ok := err.(*shared.DomainError); ok {
		s.FieldErrors[field] = derr.Message
		return
	}
	s.FieldErrors[field] = err.Error()
}

// variantFieldID extracts the variant ID from a "variants.<id>.<field>" key
func variantFieldID(field string) (uuid.UUID, bool) {
	const prefix = "variants."
	if len(field) < len(prefix)+36 || field[:len(prefix)] != prefix {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(field[len(prefix) : len(prefix)+36])
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
