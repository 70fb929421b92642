package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orderflow/backend/internal/domain/catalog"
	"github.com/orderflow/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AllowedContentTypes defines the whitelist of allowed content types for uploads.
// SVG is excluded since it can carry scripts.
var AllowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/bmp":  true,
	// Documents
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	// Text
	"text/plain": true,
	"text/csv":   true,
}

// ObjectStorageService defines the interface for object storage operations.
// Implemented by the infrastructure layer (S3 or compatible).
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading a file
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// SignedURLCache caches presigned download URLs so repeated views of the
// same file do not mint a fresh URL every time.
type SignedURLCache interface {
	Get(ctx context.Context, storageKey string) (url string, expiresAt time.Time, ok bool, err error)
	Set(ctx context.Context, storageKey, url string, expiresAt time.Time) error
	Invalidate(ctx context.Context, storageKey string) error
}

// AttachmentServiceConfig holds configuration for the attachment service
type AttachmentServiceConfig struct {
	UploadURLExpiry          time.Duration
	DownloadURLExpiry        time.Duration
	MaxAttachmentsPerProduct int
}

// DefaultAttachmentServiceConfig returns the default configuration
func DefaultAttachmentServiceConfig() AttachmentServiceConfig {
	return AttachmentServiceConfig{
		UploadURLExpiry:          15 * time.Minute,
		DownloadURLExpiry:        1 * time.Hour,
		MaxAttachmentsPerProduct: 50,
	}
}

// AttachmentService handles product attachment operations
type AttachmentService struct {
	attachmentRepo catalog.ProductAttachmentRepository
	productRepo    catalog.ProductRepository
	storageService ObjectStorageService
	urlCache       SignedURLCache
	config         AttachmentServiceConfig
	logger         *zap.Logger
}

// AttachmentServiceOption is a functional option for configuring AttachmentService
type AttachmentServiceOption func(*AttachmentService)

// WithAttachmentConfig sets a custom service configuration
func WithAttachmentConfig(cfg AttachmentServiceConfig) AttachmentServiceOption {
	return func(s *AttachmentService) {
		s.config = cfg
	}
}

// WithAttachmentLogger sets the logger
func WithAttachmentLogger(logger *zap.Logger) AttachmentServiceOption {
	return func(s *AttachmentService) {
		s.logger = logger
	}
}

// NewAttachmentService creates a new AttachmentService
func NewAttachmentService(
	attachmentRepo catalog.ProductAttachmentRepository,
	productRepo catalog.ProductRepository,
	storageService ObjectStorageService,
	urlCache SignedURLCache,
	opts ...AttachmentServiceOption,
) *AttachmentService {
	service := &AttachmentService{
		attachmentRepo: attachmentRepo,
		productRepo:    productRepo,
		storageService: storageService,
		urlCache:       urlCache,
		config:         DefaultAttachmentServiceConfig(),
		logger:         zap.NewNop(),
	}

	for _, opt := range opts {
		opt(service)
	}

	return service
}

// Register creates an attachment record and returns a presigned upload URL
func (s *AttachmentService) Register(ctx context.Context, productID uuid.UUID, req RegisterAttachmentRequest) (*RegisterAttachmentResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
		}
		return nil, err
	}

	existing, err := s.attachmentRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if len(existing) >= s.config.MaxAttachmentsPerProduct {
		return nil, shared.NewDomainError("ATTACHMENT_LIMIT_EXCEEDED",
			fmt.Sprintf("Maximum %d attachments per product allowed", s.config.MaxAttachmentsPerProduct))
	}

	if !isAllowedContentType(req.ContentType) {
		return nil, shared.NewDomainError("DISALLOWED_CONTENT_TYPE",
			fmt.Sprintf("Content type '%s' is not allowed", req.ContentType))
	}

	storageKey := s.generateStorageKey(productID, req.FileName)

	attachment, err := catalog.NewProductAttachment(
		productID,
		catalog.AttachmentKind(req.Kind),
		req.FileName,
		req.ContentType,
		storageKey,
		req.FileSize,
	)
	if err != nil {
		return nil, err
	}

	if req.Primary {
		if err := s.attachmentRepo.ClearPrimaryForProduct(ctx, productID); err != nil {
			return nil, err
		}
		if err := attachment.MarkPrimary(); err != nil {
			return nil, err
		}
	}

	if err := s.attachmentRepo.Save(ctx, attachment); err != nil {
		return nil, err
	}

	uploadURL, expiresAt, err := s.storageService.GenerateUploadURL(
		ctx,
		storageKey,
		req.ContentType,
		s.config.UploadURLExpiry,
	)
	if err != nil {
		// Roll back the record if URL generation fails
		_ = s.attachmentRepo.Delete(ctx, attachment.ID)
		return nil, shared.NewDomainError("UPLOAD_URL_FAILED", "Failed to generate upload URL")
	}

	return &RegisterAttachmentResponse{
		Attachment: ToAttachmentResponse(attachment),
		UploadURL:  uploadURL,
		ExpiresAt:  expiresAt,
	}, nil
}

// GetByProduct retrieves all attachments for a product with download URLs
func (s *AttachmentService) GetByProduct(ctx context.Context, productID uuid.UUID) ([]AttachmentResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	attachments, err := s.attachmentRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	responses := make([]AttachmentResponse, len(attachments))
	for i := range attachments {
		responses[i] = ToAttachmentResponse(&attachments[i])
		if url, _, err := s.signedDownloadURL(ctx, attachments[i].StorageKey); err == nil {
			responses[i].URL = url
		}
	}
	return responses, nil
}

// GetDownloadURL returns a presigned download URL for an attachment
func (s *AttachmentService) GetDownloadURL(ctx context.Context, attachmentID uuid.UUID) (*SignedURLResponse, error) {
	attachment, err := s.attachmentRepo.FindByID(ctx, attachmentID)
	if err != nil {
		return nil, err
	}

	url, expiresAt, err := s.signedDownloadURL(ctx, attachment.StorageKey)
	if err != nil {
		return nil, shared.NewDomainError("DOWNLOAD_URL_FAILED", "Failed to generate download URL")
	}

	return &SignedURLResponse{URL: url, ExpiresAt: expiresAt}, nil
}

// GetSignedURL returns a presigned download URL for an arbitrary storage key
func (s *AttachmentService) GetSignedURL(ctx context.Context, storageKey string) (*SignedURLResponse, error) {
	if storageKey == "" || strings.Contains(storageKey, "..") {
		return nil, shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key is invalid")
	}

	exists, err := s.storageService.ObjectExists(ctx, storageKey)
	if err != nil {
		return nil, shared.NewDomainError("STORAGE_CHECK_FAILED", "Failed to verify object")
	}
	if !exists {
		return nil, shared.ErrNotFound
	}

	url, expiresAt, err := s.signedDownloadURL(ctx, storageKey)
	if err != nil {
		return nil, shared.NewDomainError("DOWNLOAD_URL_FAILED", "Failed to generate download URL")
	}

	return &SignedURLResponse{URL: url, ExpiresAt: expiresAt}, nil
}

// GetUploadURL mints a presigned upload URL for a standalone document.
// The caller registers the returned storage key once the upload completes.
func (s *AttachmentService) GetUploadURL(ctx context.Context, req UploadURLRequest) (*UploadURLResponse, error) {
	if !isAllowedContentType(req.ContentType) {
		return nil, shared.NewDomainError("DISALLOWED_CONTENT_TYPE",
			fmt.Sprintf("Content type '%s' is not allowed", req.ContentType))
	}

	ext := filepath.Ext(req.FileName)
	storageKey := fmt.Sprintf("%s/documents/%s%s", req.Scope, uuid.New().String(), ext)

	uploadURL, expiresAt, err := s.storageService.GenerateUploadURL(ctx, storageKey, req.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, shared.NewDomainError("UPLOAD_URL_FAILED", "Failed to generate upload URL")
	}

	return &UploadURLResponse{
		StorageKey: storageKey,
		UploadURL:  uploadURL,
		ExpiresAt:  expiresAt,
	}, nil
}

// Delete removes an attachment and its storage object
func (s *AttachmentService) Delete(ctx context.Context, productID, attachmentID uuid.UUID) error {
	attachment, err := s.attachmentRepo.FindByID(ctx, attachmentID)
	if err != nil {
		return err
	}
	if attachment.ProductID != productID {
		return shared.NewDomainError("INVALID_ATTACHMENT", "Attachment does not belong to this product")
	}

	// Storage delete is best effort; the object may already be gone
	if err := s.storageService.DeleteObject(ctx, attachment.StorageKey); err != nil {
		s.logger.Warn("Failed to delete attachment from storage",
			zap.String("attachment_id", attachment.ID.String()),
			zap.String("storage_key", attachment.StorageKey),
			zap.Error(err))
	}

	if s.urlCache != nil {
		_ = s.urlCache.Invalidate(ctx, attachment.StorageKey)
	}

	return s.attachmentRepo.Delete(ctx, attachmentID)
}

// SetPrimary marks an image attachment as the product's primary image
func (s *AttachmentService) SetPrimary(ctx context.Context, productID, attachmentID uuid.UUID) (*AttachmentResponse, error) {
	attachment, err := s.attachmentRepo.FindByID(ctx, attachmentID)
	if err != nil {
		return nil, err
	}
	if attachment.ProductID != productID {
		return nil, shared.NewDomainError("INVALID_ATTACHMENT", "Attachment does not belong to this product")
	}

	if err := s.attachmentRepo.ClearPrimaryForProduct(ctx, productID); err != nil {
		return nil, err
	}
	if err := attachment.MarkPrimary(); err != nil {
		return nil, err
	}
	if err := s.attachmentRepo.Save(ctx, attachment); err != nil {
		return nil, err
	}

	response := ToAttachmentResponse(attachment)
	return &response, nil
}

// signedDownloadURL returns a cached download URL when available, otherwise
// mints a new one and caches it.
func (s *AttachmentService) signedDownloadURL(ctx context.Context, storageKey string) (string, time.Time, error) {
	if s.urlCache != nil {
		url, expiresAt, ok, err := s.urlCache.Get(ctx, storageKey)
		if err != nil {
			s.logger.Warn("Signed URL cache lookup failed", zap.Error(err))
		} else if ok {
			return url, expiresAt, nil
		}
	}

	url, expiresAt, err := s.storageService.GenerateDownloadURL(ctx, storageKey, s.config.DownloadURLExpiry)
	if err != nil {
		return "", time.Time{}, err
	}

	if s.urlCache != nil {
		if err := s.urlCache.Set(ctx, storageKey, url, expiresAt); err != nil {
			s.logger.Warn("Failed to cache signed URL", zap.Error(err))
		}
	}

	return url, expiresAt, nil
}

// generateStorageKey generates a unique storage key for a file
func (s *AttachmentService) generateStorageKey(productID uuid.UUID, fileName string) string {
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("products/%s/attachments/%s%s", productID.String(), uuid.New().String(), ext)
}

// isAllowedContentType checks if a content type is in the whitelist
func isAllowedContentType(contentType string) bool {
	return AllowedContentTypes[strings.ToLower(contentType)]
}
