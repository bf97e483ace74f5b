package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	variantRepo catalog.VariantRepository
	events      shared.EventPublisher
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, variantRepo catalog.VariantRepository, events shared.EventPublisher) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		variantRepo: variantRepo,
		events:      events,
	}
}

// publishEvents drains the events the product recorded during this unit of
// work. Called after the product has been persisted.
func publishEvents(ctx context.Context, events shared.EventPublisher, product *catalog.Product) {
	recorded := product.GetDomainEvents()
	if len(recorded) == 0 {
		return
	}
	events.Publish(ctx, recorded...)
	product.ClearDomainEvents()
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, tenantID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this code already exists")
	}

	product, err := catalog.NewProduct(tenantID, req.Code, req.Name)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := product.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}

	if req.Price != nil {
		if err := product.SetPrice(valueobject.NewMoneyUSD(*req.Price)); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	publishEvents(ctx, s.events, product)

	response := ToProductResponse(product, 0)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, tenantID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	variants, err := s.variantRepo.FindByProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product, len(variants))
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	repoFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		repoFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		repoFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		repoFilter.OrderDir = filter.OrderDir
	}
	repoFilter.Search = filter.Search

	products, err := s.productRepo.FindAllForTenant(ctx, tenantID, repoFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.CountForTenant(ctx, tenantID, repoFilter)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, 0, len(products))
	for i := range products {
		variants, err := s.variantRepo.FindByProduct(ctx, tenantID, products[i].ID)
		if err != nil {
			return nil, err
		}
		items = append(items, ToProductResponse(&products[i], len(variants)))
	}

	result := shared.NewPaginated(items, total, repoFilter.Page, repoFilter.PageSize)
	return &result, nil
}

// Update updates a product's basic information
func (s *ProductService) Update(ctx context.Context, tenantID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	name := product.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := product.Description
	if req.Description != nil {
		description = *req.Description
	}
	if err := product.Update(name, description); err != nil {
		return nil, err
	}

	if req.Price != nil {
		if err := product.SetPrice(valueobject.NewMoneyUSD(*req.Price)); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	publishEvents(ctx, s.events, product)

	variants, err := s.variantRepo.FindByProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product, len(variants))
	return &response, nil
}

// Delete removes a product and its variant matrix
func (s *ProductService) Delete(ctx context.Context, tenantID, productID uuid.UUID) error {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return err
	}
	if err := s.variantRepo.DeleteForProduct(ctx, tenantID, productID); err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, tenantID, productID); err != nil {
		return err
	}
	s.events.Publish(ctx, catalog.NewProductDeletedEvent(product))
	return nil
}
