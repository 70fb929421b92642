package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/orderflow/backend/internal/domain/catalog"
	"github.com/orderflow/backend/internal/domain/shared"
)

// ProductService handles product catalog operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	relationRepo catalog.ProductRelationRepository
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	relationRepo catalog.ProductRelationRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		relationRepo: relationRepo,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsByNumber(ctx, req.Number)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("PRODUCT_EXISTS", "A product with this number already exists")
	}

	product, err := catalog.NewProduct(req.Number, req.Name, req.Unit)
	if err != nil {
		return nil, err
	}
	if err := product.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := product.SetPrice(req.Price); err != nil {
		return nil, err
	}
	product.SetSortOrder(req.SortOrder)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByNumber retrieves a product by its product number
func (s *ProductService) GetByNumber(ctx context.Context, number string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products matching the filter with a total count
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.OrderBy = filter.OrderBy
	domainFilter.OrderDir = filter.OrderDir
	domainFilter.Search = filter.Search
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	count, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), count, nil
}

// Update updates a product's editable fields
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if req.Price != nil {
		if err := product.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.SortOrder != nil {
		product.SetSortOrder(*req.SortOrder)
	}
	switch catalog.ProductStatus(req.Status) {
	case catalog.ProductStatusActive:
		product.Activate()
	case catalog.ProductStatusInactive:
		product.Deactivate()
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product and its relations
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

// AddRelation links a product to an accessory or spare part
func (s *ProductService) AddRelation(ctx context.Context, productID uuid.UUID, req CreateRelationRequest) (*RelationResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
		}
		return nil, err
	}
	if _, err := s.productRepo.FindByID(ctx, req.RelatedProductID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Related product not found")
		}
		return nil, err
	}

	kind := catalog.RelationKind(req.Kind)
	exists, err := s.relationRepo.Exists(ctx, productID, req.RelatedProductID, kind)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("RELATION_EXISTS", "This relation already exists")
	}

	relation, err := catalog.NewProductRelation(productID, req.RelatedProductID, kind)
	if err != nil {
		return nil, err
	}
	if err := s.relationRepo.Save(ctx, relation); err != nil {
		return nil, err
	}

	response := ToRelationResponse(relation)
	return &response, nil
}

// GetRelations lists a product's relations with the related product data attached
func (s *ProductService) GetRelations(ctx context.Context, productID uuid.UUID) ([]RelationResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	relations, err := s.relationRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	responses := make([]RelationResponse, len(relations))
	for i := range relations {
		responses[i] = ToRelationResponse(&relations[i])
		related, err := s.productRepo.FindByID(ctx, relations[i].RelatedProductID)
		if err == nil {
			rp := ToProductResponse(related)
			responses[i].RelatedProduct = &rp
		}
	}
	return responses, nil
}

// RemoveRelation removes a relation from a product
func (s *ProductService) RemoveRelation(ctx context.Context, productID, relationID uuid.UUID) error {
	relation, err := s.relationRepo.FindByID(ctx, relationID)
	if err != nil {
		return err
	}
	if relation.ProductID != productID {
		return shared.NewDomainError("INVALID_RELATION", "Relation does not belong to this product")
	}
	return s.relationRepo.Delete(ctx, relationID)
}
