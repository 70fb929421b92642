package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/orderflow/backend/internal/domain/catalog"
	"github.com/orderflow/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newImageAttachment(t *testing.T, productID uuid.UUID) *catalog.ProductAttachment {
	t.Helper()
	attachment, err := catalog.NewProductAttachment(
		productID, catalog.AttachmentKindImage, "front.jpg", "image/jpeg",
		"products/"+productID.String()+"/attachments/"+uuid.New().String()+".jpg", 2048,
	)
	require.NoError(t, err)
	return attachment
}

func TestAttachmentServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("registers and returns an upload URL", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		attachmentRepo := new(MockAttachmentRepository)
		storage := new(MockObjectStorage)
		product := newStoredProduct(t, "P-100", "Skruer")

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		attachmentRepo.On("FindByProduct", ctx, product.ID).Return([]catalog.ProductAttachment{}, nil)
		attachmentRepo.On("Save", ctx, mock.AnythingOfType("*catalog.ProductAttachment")).Return(nil)
		expiresAt := time.Now().Add(15 * time.Minute)
		storage.On("GenerateUploadURL", ctx, mock.AnythingOfType("string"), "image/jpeg", mock.AnythingOfType("time.Duration")).
			Return("https://storage.example.com/upload", expiresAt, nil)

		service := NewAttachmentService(attachmentRepo, productRepo, storage, nil)
		response, err := service.Register(ctx, product.ID, RegisterAttachmentRequest{
			Kind:        "image",
			FileName:    "front.jpg",
			ContentType: "image/jpeg",
			FileSize:    2048,
		})

		require.NoError(t, err)
		assert.Equal(t, "https://storage.example.com/upload", response.UploadURL)
		assert.Equal(t, "front.jpg", response.Attachment.FileName)
		assert.Contains(t, response.Attachment.ID.String(), "-")
	})

	t.Run("rejects disallowed content types", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		attachmentRepo := new(MockAttachmentRepository)
		product := newStoredProduct(t, "P-100", "Skruer")

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		attachmentRepo.On("FindByProduct", ctx, product.ID).Return([]catalog.ProductAttachment{}, nil)

		service := NewAttachmentService(attachmentRepo, productRepo, new(MockObjectStorage), nil)
		_, err := service.Register(ctx, product.ID, RegisterAttachmentRequest{
			Kind:        "image",
			FileName:    "logo.svg",
			ContentType: "image/svg+xml",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DISALLOWED_CONTENT_TYPE", domainErr.Code)
	})

	t.Run("enforces the per-product limit", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		attachmentRepo := new(MockAttachmentRepository)
		product := newStoredProduct(t, "P-100", "Skruer")

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		attachmentRepo.On("FindByProduct", ctx, product.ID).
			Return([]catalog.ProductAttachment{*newImageAttachment(t, product.ID)}, nil)

		service := NewAttachmentService(attachmentRepo, productRepo, new(MockObjectStorage), nil,
			WithAttachmentConfig(AttachmentServiceConfig{
				UploadURLExpiry:          time.Minute,
				DownloadURLExpiry:        time.Minute,
				MaxAttachmentsPerProduct: 1,
			}))
		_, err := service.Register(ctx, product.ID, RegisterAttachmentRequest{
			Kind:        "image",
			FileName:    "front.jpg",
			ContentType: "image/jpeg",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ATTACHMENT_LIMIT_EXCEEDED", domainErr.Code)
	})

	t.Run("rolls back the record if URL generation fails", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		attachmentRepo := new(MockAttachmentRepository)
		storage := new(MockObjectStorage)
		product := newStoredProduct(t, "P-100", "Skruer")

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		attachmentRepo.On("FindByProduct", ctx, product.ID).Return([]catalog.ProductAttachment{}, nil)
		attachmentRepo.On("Save", ctx, mock.AnythingOfType("*catalog.ProductAttachment")).Return(nil)
		attachmentRepo.On("Delete", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil)
		storage.On("GenerateUploadURL", ctx, mock.AnythingOfType("string"), "application/pdf", mock.AnythingOfType("time.Duration")).
			Return("", time.Time{}, errors.New("s3 unavailable"))

		service := NewAttachmentService(attachmentRepo, productRepo, storage, nil)
		_, err := service.Register(ctx, product.ID, RegisterAttachmentRequest{
			Kind:        "document",
			FileName:    "datasheet.pdf",
			ContentType: "application/pdf",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UPLOAD_URL_FAILED", domainErr.Code)
		attachmentRepo.AssertCalled(t, "Delete", ctx, mock.AnythingOfType("uuid.UUID"))
	})
}

func TestAttachmentServiceDownloadURLs(t *testing.T) {
	ctx := context.Background()

	t.Run("mints and caches a download URL", func(t *testing.T) {
		attachmentRepo := new(MockAttachmentRepository)
		storage := new(MockObjectStorage)
		urlCache := new(MockSignedURLCache)
		attachment := newImageAttachment(t, uuid.New())
		expiresAt := time.Now().Add(time.Hour)

		attachmentRepo.On("FindByID", ctx, attachment.ID).Return(attachment, nil)
		urlCache.On("Get", ctx, attachment.StorageKey).Return("", time.Time{}, false, nil)
		storage.On("GenerateDownloadURL", ctx, attachment.StorageKey, mock.AnythingOfType("time.Duration")).
			Return("https://storage.example.com/dl", expiresAt, nil)
		urlCache.On("Set", ctx, attachment.StorageKey, "https://storage.example.com/dl", expiresAt).Return(nil)

		service := NewAttachmentService(attachmentRepo, new(MockProductRepository), storage, urlCache)
		response, err := service.GetDownloadURL(ctx, attachment.ID)

		require.NoError(t, err)
		assert.Equal(t, "https://storage.example.com/dl", response.URL)
		urlCache.AssertExpectations(t)
	})

	t.Run("serves a cached URL without touching storage", func(t *testing.T) {
		attachmentRepo := new(MockAttachmentRepository)
		storage := new(MockObjectStorage)
		urlCache := new(MockSignedURLCache)
		attachment := newImageAttachment(t, uuid.New())
		expiresAt := time.Now().Add(30 * time.Minute)

		attachmentRepo.On("FindByID", ctx, attachment.ID).Return(attachment, nil)
		urlCache.On("Get", ctx, attachment.StorageKey).Return("https://cached.example.com", expiresAt, true, nil)

		service := NewAttachmentService(attachmentRepo, new(MockProductRepository), storage, urlCache)
		response, err := service.GetDownloadURL(ctx, attachment.ID)

		require.NoError(t, err)
		assert.Equal(t, "https://cached.example.com", response.URL)
		storage.AssertNotCalled(t, "GenerateDownloadURL", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("signed URL for arbitrary key checks existence", func(t *testing.T) {
		storage := new(MockObjectStorage)
		storage.On("ObjectExists", ctx, "orders/x/confirmation.pdf").Return(false, nil)

		service := NewAttachmentService(new(MockAttachmentRepository), new(MockProductRepository), storage, nil)
		_, err := service.GetSignedURL(ctx, "orders/x/confirmation.pdf")

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("rejects path traversal in storage keys", func(t *testing.T) {
		service := NewAttachmentService(new(MockAttachmentRepository), new(MockProductRepository), new(MockObjectStorage), nil)
		_, err := service.GetSignedURL(ctx, "../secrets/config.toml")

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STORAGE_KEY", domainErr.Code)
	})
}

func TestAttachmentServiceGetUploadURL(t *testing.T) {
	ctx := context.Background()

	t.Run("mints an upload URL under the scope prefix", func(t *testing.T) {
		storage := new(MockObjectStorage)
		expiresAt := time.Now().Add(15 * time.Minute)
		storage.On("GenerateUploadURL", ctx, mock.AnythingOfType("string"), "application/pdf", mock.AnythingOfType("time.Duration")).
			Return("https://storage.example.com/put", expiresAt, nil)

		service := NewAttachmentService(new(MockAttachmentRepository), new(MockProductRepository), storage, nil)
		response, err := service.GetUploadURL(ctx, UploadURLRequest{
			Scope:       "orders",
			FileName:    "bekreftelse.pdf",
			ContentType: "application/pdf",
		})

		require.NoError(t, err)
		assert.Equal(t, "https://storage.example.com/put", response.UploadURL)
		assert.True(t, strings.HasPrefix(response.StorageKey, "orders/documents/"))
		assert.True(t, strings.HasSuffix(response.StorageKey, ".pdf"))
		assert.Equal(t, expiresAt, response.ExpiresAt)
	})

	t.Run("rejects disallowed content types", func(t *testing.T) {
		service := NewAttachmentService(new(MockAttachmentRepository), new(MockProductRepository), new(MockObjectStorage), nil)
		_, err := service.GetUploadURL(ctx, UploadURLRequest{
			Scope:       "orders",
			FileName:    "macro.xlsm",
			ContentType: "application/vnd.ms-excel.sheet.macroEnabled.12",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DISALLOWED_CONTENT_TYPE", domainErr.Code)
	})

	t.Run("surfaces storage failures as a typed error", func(t *testing.T) {
		storage := new(MockObjectStorage)
		storage.On("GenerateUploadURL", ctx, mock.AnythingOfType("string"), "application/pdf", mock.AnythingOfType("time.Duration")).
			Return("", time.Time{}, errors.New("s3 unavailable"))

		service := NewAttachmentService(new(MockAttachmentRepository), new(MockProductRepository), storage, nil)
		_, err := service.GetUploadURL(ctx, UploadURLRequest{
			Scope:       "orders",
			FileName:    "bekreftelse.pdf",
			ContentType: "application/pdf",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UPLOAD_URL_FAILED", domainErr.Code)
	})
}

func TestAttachmentServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes record even if storage delete fails", func(t *testing.T) {
		attachmentRepo := new(MockAttachmentRepository)
		storage := new(MockObjectStorage)
		urlCache := new(MockSignedURLCache)
		productID := uuid.New()
		attachment := newImageAttachment(t, productID)

		attachmentRepo.On("FindByID", ctx, attachment.ID).Return(attachment, nil)
		storage.On("DeleteObject", ctx, attachment.StorageKey).Return(errors.New("s3 unavailable"))
		urlCache.On("Invalidate", ctx, attachment.StorageKey).Return(nil)
		attachmentRepo.On("Delete", ctx, attachment.ID).Return(nil)

		service := NewAttachmentService(attachmentRepo, new(MockProductRepository), storage, urlCache)
		require.NoError(t, service.Delete(ctx, productID, attachment.ID))
		attachmentRepo.AssertExpectations(t)
	})

	t.Run("rejects attachment from another product", func(t *testing.T) {
		attachmentRepo := new(MockAttachmentRepository)
		attachment := newImageAttachment(t, uuid.New())
		attachmentRepo.On("FindByID", ctx, attachment.ID).Return(attachment, nil)

		service := NewAttachmentService(attachmentRepo, new(MockProductRepository), new(MockObjectStorage), nil)
		err := service.Delete(ctx, uuid.New(), attachment.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_ATTACHMENT", domainErr.Code)
	})
}

func TestAttachmentServiceSetPrimary(t *testing.T) {
	ctx := context.Background()

	t.Run("marks an image as primary", func(t *testing.T) {
		attachmentRepo := new(MockAttachmentRepository)
		productID := uuid.New()
		attachment := newImageAttachment(t, productID)

		attachmentRepo.On("FindByID", ctx, attachment.ID).Return(attachment, nil)
		attachmentRepo.On("ClearPrimaryForProduct", ctx, productID).Return(nil)
		attachmentRepo.On("Save", ctx, attachment).Return(nil)

		service := NewAttachmentService(attachmentRepo, new(MockProductRepository), new(MockObjectStorage), nil)
		response, err := service.SetPrimary(ctx, productID, attachment.ID)

		require.NoError(t, err)
		assert.True(t, response.Primary)
	})

	t.Run("documents cannot be primary", func(t *testing.T) {
		attachmentRepo := new(MockAttachmentRepository)
		productID := uuid.New()
		document, err := catalog.NewProductAttachment(
			productID, catalog.AttachmentKindDocument, "datasheet.pdf", "application/pdf",
			"products/"+productID.String()+"/attachments/"+uuid.New().String()+".pdf", 1024,
		)
		require.NoError(t, err)

		attachmentRepo.On("FindByID", ctx, document.ID).Return(document, nil)
		attachmentRepo.On("ClearPrimaryForProduct", ctx, productID).Return(nil)

		service := NewAttachmentService(attachmentRepo, new(MockProductRepository), new(MockObjectStorage), nil)
		_, err = service.SetPrimary(ctx, productID, document.ID)

		require.Error(t, err)
		attachmentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
