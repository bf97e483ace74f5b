package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// VariantSessionService drives the variant matrix workflow: it opens an
// edit session over a product's persisted state, applies form mutations
// to it, and on save replaces the product's variant rows wholesale.
//
// Every mutation persists the session back to the store before returning,
// failed validations included, so the field-error map survives the round
// trip to the client.
type VariantSessionService struct {
	productRepo catalog.ProductRepository
	variantRepo catalog.VariantRepository
	sessions    SessionStore
	events      shared.EventPublisher
}

// NewVariantSessionService creates a new VariantSessionService
func NewVariantSessionService(
	productRepo catalog.ProductRepository,
	variantRepo catalog.VariantRepository,
	sessions SessionStore,
	events shared.EventPublisher,
) *VariantSessionService {
	return &VariantSessionService{
		productRepo: productRepo,
		variantRepo: variantRepo,
		sessions:    sessions,
		events:      events,
	}
}

// Open starts an edit session for a product, restoring the attribute set
// and variants persisted by the last save.
func (s *VariantSessionService) Open(ctx context.Context, tenantID, productID uuid.UUID) (*SessionResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	attrs, err := product.VariantAxesSet()
	if err != nil {
		return nil, err
	}

	rows, err := s.variantRepo.FindByProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	variants := make([]*catalog.Variant, 0, len(rows))
	for i := range rows {
		v, err := rows[i].ToSessionVariant()
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}

	session := catalog.RestoreEditSession(tenantID, productID, product.Code, attrs, variants)
	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, err
	}

	response := ToSessionResponse(session)
	return &response, nil
}

// Get returns the current state of a session
func (s *VariantSessionService) Get(ctx context.Context, tenantID, sessionID uuid.UUID) (*SessionResponse, error) {
	session, err := s.sessions.Get(ctx, tenantID, sessionID)
	if err != nil {
		return nil, err
	}
	response := ToSessionResponse(session)
	return &response, nil
}

// AddAttribute adds a variation axis
func (s *VariantSessionService) AddAttribute(ctx context.Context, tenantID, sessionID uuid.UUID, req AddAttributeRequest) (*SessionResponse, error) {
	return s.mutate(ctx, tenantID, sessionID, func(session *catalog.EditSession) error {
		_, err := session.AddAttribute(req.Name)
		return err
	})
}

// RemoveAttribute removes a variation axis
func (s *VariantSessionService) RemoveAttribute(ctx context.Context, tenantID, sessionID, attributeID uuid.UUID) (*SessionResponse, error) {
	return s.mutate(ctx, tenantID, sessionID, func(session *catalog.EditSession) error {
		return session.RemoveAttribute(attributeID)
	})
}

// ToggleAttribute flips an axis' active flag
func (s *VariantSessionService) ToggleAttribute(ctx context.Context, tenantID, sessionID, attributeID uuid.UUID) (*SessionResponse, error) {
	return s.mutate(ctx, tenantID, sessionID, func(session *catalog.EditSession) error {
		return session.ToggleAttribute(attributeID)
	})
}

// AddValue adds a value to a variation axis
func (s *VariantSessionService) AddValue(ctx context.Context, tenantID, sessionID, attributeID uuid.UUID, req AddValueRequest) (*SessionResponse, error) {
	return s.mutate(ctx, tenantID, sessionID, func(session *catalog.EditSession) error {
		return session.AddValue(attributeID, req.Value)
	})
}

// RemoveValue removes a value from a variation axis
func (s *VariantSessionService) RemoveValue(ctx context.Context, tenantID, sessionID, attributeID uuid.UUID, req RemoveValueRequest) (*SessionResponse, error) {
	return s.mutate(ctx, tenantID, sessionID, func(session *catalog.EditSession) error {
		return session.RemoveValue(attributeID, req.Value)
	})
}

// SetBaseSKU changes the SKU prefix and re-derives variant SKUs
func (s *VariantSessionService) SetBaseSKU(ctx context.Context, tenantID, sessionID uuid.UUID, req SetBaseSKURequest) (*SessionResponse, error) {
	return s.mutate(ctx, tenantID, sessionID, func(session *catalog.EditSession) error {
		session.SetBaseSKU(req.BaseSKU)
		return nil
	})
}

// SetPrice sets one variant's price override
func (s *VariantSessionService) SetPrice(ctx context.Context, tenantID, sessionID, variantID uuid.UUID, req SetPriceRequest) (*SessionResponse, error) {
	return s.mutate(ctx, tenantID, sessionID, func(session *catalog.EditSession) error {
		return session.SetPrice(variantID, req.Price)
	})
}

// SetStock sets one variant's stock level
func (s *VariantSessionService) SetStock(ctx context.Context, tenantID, sessionID, variantID uuid.UUID, req SetStockRequest) (*SessionResponse, error) {
	return s.mutate(ctx, tenantID, sessionID, func(session *catalog.EditSession) error {
		return session.SetStock(variantID, req.Stock)
	})
}

// SetActive toggles one variant's active flag
func (s *VariantSessionService) SetActive(ctx context.Context, tenantID, sessionID, variantID uuid.UUID, req SetActiveRequest) (*SessionResponse, error) {
	return s.mutate(ctx, tenantID, sessionID, func(session *catalog.EditSession) error {
		return session.SetActive(variantID, req.Active)
	})
}

// SetImage sets one variant's image URL
func (s *VariantSessionService) SetImage(ctx context.Context, tenantID, sessionID, variantID uuid.UUID, req SetImageRequest) (*SessionResponse, error) {
	return s.mutate(ctx, tenantID, sessionID, func(session *catalog.EditSession) error {
		return session.SetImage(variantID, req.ImageURL)
	})
}

// Select adds or removes a variant from the bulk selection
func (s *VariantSessionService) Select(ctx context.Context, tenantID, sessionID, variantID uuid.UUID, req SelectRequest) (*SessionResponse, error) {
	return s.mutate(ctx, tenantID, sessionID, func(session *catalog.EditSession) error {
		return session.Select(variantID, req.Selected)
	})
}

// BulkToggleActive applies the bulk activate/deactivate toggle
func (s *VariantSessionService) BulkToggleActive(ctx context.Context, tenantID, sessionID uuid.UUID) (*SessionResponse, error) {
	return s.mutate(ctx, tenantID, sessionID, func(session *catalog.EditSession) error {
		return session.BulkToggleActive()
	})
}

// BulkDelete removes the selected variants
func (s *VariantSessionService) BulkDelete(ctx context.Context, tenantID, sessionID uuid.UUID) (*SessionResponse, error) {
	return s.mutate(ctx, tenantID, sessionID, func(session *catalog.EditSession) error {
		session.BulkDelete()
		return nil
	})
}

// Save persists the session: the product's variant rows are replaced in
// one transaction, the attribute set is stored on the product for later
// reopening, and the session is discarded.
func (s *VariantSessionService) Save(ctx context.Context, tenantID, sessionID uuid.UUID) (*SaveSessionResponse, error) {
	session, err := s.sessions.Get(ctx, tenantID, sessionID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, session.ProductID)
	if err != nil {
		return nil, err
	}

	records := session.Normalized()
	rows := make([]*catalog.ProductVariant, 0, len(records))
	for _, record := range records {
		row, err := catalog.NewProductVariant(tenantID, session.ProductID, record)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	if err := s.variantRepo.ReplaceForProduct(ctx, tenantID, session.ProductID, rows); err != nil {
		return nil, err
	}

	if err := product.SetVariantAxes(session.Attributes); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	publishEvents(ctx, s.events, product)

	if err := s.sessions.Delete(ctx, tenantID, sessionID); err != nil {
		return nil, err
	}

	return &SaveSessionResponse{
		ProductID:    session.ProductID,
		VariantCount: len(rows),
	}, nil
}

// Discard abandons the session without persisting anything
func (s *VariantSessionService) Discard(ctx context.Context, tenantID, sessionID uuid.UUID) error {
	if _, err := s.sessions.Get(ctx, tenantID, sessionID); err != nil {
		return err
	}
	return s.sessions.Delete(ctx, tenantID, sessionID)
}

// mutate loads the session, applies the mutation and persists the session
// back even when the mutation fails, so recorded field errors stick.
func (s *VariantSessionService) mutate(ctx context.Context, tenantID, sessionID uuid.UUID, fn func(*catalog.EditSession) error) (*SessionResponse, error) {
	session, err := s.sessions.Get(ctx, tenantID, sessionID)
	if err != nil {
		return nil, err
	}

	mutErr := fn(session)
	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, err
	}

	response := ToSessionResponse(session)
	if mutErr != nil {
		return &response, mutErr
	}
	return &response, nil
}
