package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/orderflow/backend/internal/domain/catalog"
	"github.com/orderflow/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) FindByNumber(ctx context.Context, number string) (*catalog.Product, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByNumbers(ctx context.Context, numbers []string) ([]catalog.Product, error) {
	args := m.Called(ctx, numbers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) SaveBatch(ctx context.Context, products []*catalog.Product) error {
	args := m.Called(ctx, products)
	return args.Error(0)
}

// MockRelationRepository is a mock implementation of catalog.ProductRelationRepository
type MockRelationRepository struct {
	mock.Mock
}

func (m *MockRelationRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductRelation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductRelation), args.Error(1)
}

func (m *MockRelationRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.ProductRelation, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.ProductRelation), args.Error(1)
}

func (m *MockRelationRepository) Exists(ctx context.Context, productID, relatedProductID uuid.UUID, kind catalog.RelationKind) (bool, error) {
	args := m.Called(ctx, productID, relatedProductID, kind)
	return args.Bool(0), args.Error(1)
}

func (m *MockRelationRepository) Save(ctx context.Context, relation *catalog.ProductRelation) error {
	args := m.Called(ctx, relation)
	return args.Error(0)
}

func (m *MockRelationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAttachmentRepository is a mock implementation of catalog.ProductAttachmentRepository
type MockAttachmentRepository struct {
	mock.Mock
}

func (m *MockAttachmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductAttachment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductAttachment), args.Error(1)
}

func (m *MockAttachmentRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.ProductAttachment, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.ProductAttachment), args.Error(1)
}

func (m *MockAttachmentRepository) FindPrimaryImage(ctx context.Context, productID uuid.UUID) (*catalog.ProductAttachment, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductAttachment), args.Error(1)
}

func (m *MockAttachmentRepository) Save(ctx context.Context, attachment *catalog.ProductAttachment) error {
	args := m.Called(ctx, attachment)
	return args.Error(0)
}

func (m *MockAttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAttachmentRepository) ClearPrimaryForProduct(ctx context.Context, productID uuid.UUID) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

// MockObjectStorage is a mock implementation of ObjectStorageService
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

func (m *MockObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	args := m.Called(ctx, storageKey)
	return args.Bool(0), args.Error(1)
}

// MockSignedURLCache is a mock implementation of SignedURLCache
type MockSignedURLCache struct {
	mock.Mock
}

func (m *MockSignedURLCache) Get(ctx context.Context, storageKey string) (string, time.Time, bool, error) {
	args := m.Called(ctx, storageKey)
	return args.String(0), args.Get(1).(time.Time), args.Bool(2), args.Error(3)
}

func (m *MockSignedURLCache) Set(ctx context.Context, storageKey, url string, expiresAt time.Time) error {
	args := m.Called(ctx, storageKey, url, expiresAt)
	return args.Error(0)
}

func (m *MockSignedURLCache) Invalidate(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}
