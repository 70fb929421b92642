package catalog

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/orderflow/backend/internal/domain/catalog"
	"github.com/orderflow/backend/internal/domain/shared"
	"github.com/orderflow/backend/internal/infrastructure/csvimport"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Import file column names
const (
	ColumnNumber      = "number"
	ColumnName        = "name"
	ColumnDescription = "description"
	ColumnUnit        = "unit"
	ColumnPrice       = "price"
	ColumnStatus      = "status"
	ColumnSortOrder   = "sort_order"
)

// requiredImportColumns must be present in the header row
var requiredImportColumns = []string{ColumnNumber, ColumnName}

// MaxImportFileSize caps uploaded CSV files at 10 MiB. The HTTP handler
// enforces the same limit before reading the upload.
const MaxImportFileSize = 10 << 20

// ProductImportConfig holds limits for bulk imports
type ProductImportConfig struct {
	MaxFileSize int64
	MaxRows     int
	MaxErrors   int
}

// DefaultProductImportConfig returns the default import limits
func DefaultProductImportConfig() ProductImportConfig {
	return ProductImportConfig{
		MaxFileSize: MaxImportFileSize,
		MaxRows:     10000,
		MaxErrors:   100,
	}
}

// ProductImportService imports products in bulk from uploaded CSV files.
// Rows sharing a product number are collapsed so the last occurrence wins,
// then the surviving rows are upserted keyed by product number.
type ProductImportService struct {
	productRepo catalog.ProductRepository
	config      ProductImportConfig
	logger      *zap.Logger
}

// ProductImportOption is a functional option for configuring ProductImportService
type ProductImportOption func(*ProductImportService)

// WithImportConfig sets custom import limits
func WithImportConfig(cfg ProductImportConfig) ProductImportOption {
	return func(s *ProductImportService) {
		s.config = cfg
	}
}

// WithImportLogger sets the logger
func WithImportLogger(logger *zap.Logger) ProductImportOption {
	return func(s *ProductImportService) {
		s.logger = logger
	}
}

// NewProductImportService creates a new ProductImportService
func NewProductImportService(productRepo catalog.ProductRepository, opts ...ProductImportOption) *ProductImportService {
	service := &ProductImportService{
		productRepo: productRepo,
		config:      DefaultProductImportConfig(),
		logger:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(service)
	}

	return service
}

// Import parses and imports a product CSV file
func (s *ProductImportService) Import(ctx context.Context, data []byte) (*ImportResult, error) {
	started := time.Now()

	if int64(len(data)) > s.config.MaxFileSize {
		return nil, shared.NewDomainError("IMPORT_FILE_TOO_LARGE", "Import file exceeds the maximum allowed size")
	}

	parser, err := csvimport.ParseFromBytes(data)
	if err != nil {
		switch err {
		case csvimport.ErrEmptyFile:
			return nil, shared.NewDomainError("IMPORT_EMPTY_FILE", "Import file is empty")
		case csvimport.ErrInvalidEncoding:
			return nil, shared.NewDomainError("IMPORT_INVALID_ENCODING", "Import file must be UTF-8 encoded")
		default:
			return nil, shared.NewDomainError("IMPORT_INVALID_FILE", "Import file could not be read")
		}
	}

	if err := parser.ParseHeader(); err != nil {
		return nil, shared.NewDomainError("IMPORT_MISSING_HEADER", "Import file is missing a header row")
	}
	if missing := parser.ValidateHeaders(requiredImportColumns); len(missing) > 0 {
		return nil, shared.NewDomainError("IMPORT_MISSING_COLUMNS",
			"Import file is missing required columns: "+strings.Join(missing, ", "))
	}

	rows, err := parser.ReadAllRows()
	if err != nil {
		return nil, shared.NewDomainError("IMPORT_MALFORMED_ROW", err.Error())
	}
	if len(rows) == 0 {
		return nil, shared.NewDomainError("IMPORT_NO_DATA", "Import file contains no data rows")
	}
	if len(rows) > s.config.MaxRows {
		return nil, shared.NewDomainError("IMPORT_TOO_MANY_ROWS", "Import file contains too many rows")
	}

	result := &ImportResult{TotalRows: len(rows)}
	errorCollection := csvimport.NewErrorCollection(s.config.MaxErrors)

	// Build candidate products. Later rows with the same number replace
	// earlier ones; the replaced rows count as skipped.
	candidates := make(map[string]*catalog.Product)
	order := make([]string, 0, len(rows))
	for _, row := range rows {
		product, ok := s.buildProduct(row, errorCollection)
		if !ok {
			continue
		}
		if _, seen := candidates[product.Number]; seen {
			result.Skipped++
			result.DedupedInMem++
		} else {
			order = append(order, product.Number)
		}
		candidates[product.Number] = product
	}

	if len(candidates) > 0 {
		numbers := make([]string, 0, len(candidates))
		for number := range candidates {
			numbers = append(numbers, number)
		}

		existing, err := s.productRepo.FindByNumbers(ctx, numbers)
		if err != nil {
			return nil, err
		}
		existingSet := make(map[string]struct{}, len(existing))
		for i := range existing {
			existingSet[existing[i].Number] = struct{}{}
		}

		batch := make([]*catalog.Product, 0, len(candidates))
		for _, number := range order {
			batch = append(batch, candidates[number])
			if _, ok := existingSet[number]; ok {
				result.Updated++
			} else {
				result.Created++
			}
		}

		if err := s.productRepo.SaveBatch(ctx, batch); err != nil {
			return nil, err
		}
	}

	for _, rowErr := range errorCollection.Errors() {
		result.Errors = append(result.Errors, ImportRowError{
			Row:     rowErr.Row,
			Column:  rowErr.Column,
			Message: rowErr.Message,
			Value:   rowErr.Value,
		})
	}
	result.ErrorsTotal = errorCollection.TotalCount()
	result.DurationMS = time.Since(started).Milliseconds()

	s.logger.Info("Product import finished",
		zap.Int("total_rows", result.TotalRows),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", result.ErrorsTotal))

	return result, nil
}

// buildProduct validates a row and converts it to a product entity
func (s *ProductImportService) buildProduct(row *csvimport.Row, ec *csvimport.ErrorCollection) (*catalog.Product, bool) {
	number := row.Get(ColumnNumber)
	name := row.Get(ColumnName)

	if number == "" {
		ec.AddRequiredError(row.LineNumber, ColumnNumber)
		return nil, false
	}
	if name == "" {
		ec.AddRequiredError(row.LineNumber, ColumnName)
		return nil, false
	}

	product, err := catalog.NewProduct(number, name, row.GetOrDefault(ColumnUnit, "stk"))
	if err != nil {
		ec.AddFormatError(row.LineNumber, ColumnNumber, err.Error(), number)
		return nil, false
	}
	if err := product.Update(name, row.Get(ColumnDescription)); err != nil {
		ec.AddFormatError(row.LineNumber, ColumnName, err.Error(), name)
		return nil, false
	}

	if rawPrice := row.Get(ColumnPrice); rawPrice != "" {
		price, err := decimal.NewFromString(normalizeDecimal(rawPrice))
		if err != nil {
			ec.AddTypeError(row.LineNumber, ColumnPrice, "decimal number", rawPrice)
			return nil, false
		}
		if err := product.SetPrice(price); err != nil {
			ec.AddFormatError(row.LineNumber, ColumnPrice, err.Error(), rawPrice)
			return nil, false
		}
	}

	if rawStatus := row.Get(ColumnStatus); rawStatus != "" {
		switch catalog.ProductStatus(strings.ToLower(rawStatus)) {
		case catalog.ProductStatusActive:
			product.Activate()
		case catalog.ProductStatusInactive:
			product.Deactivate()
		default:
			ec.AddFormatError(row.LineNumber, ColumnStatus, "status must be 'active' or 'inactive'", rawStatus)
			return nil, false
		}
	}

	if rawSort := row.Get(ColumnSortOrder); rawSort != "" {
		sortOrder, err := strconv.Atoi(rawSort)
		if err != nil {
			ec.AddTypeError(row.LineNumber, ColumnSortOrder, "integer", rawSort)
			return nil, false
		}
		product.SetSortOrder(sortOrder)
	}

	return product, true
}

// normalizeDecimal accepts a comma decimal separator in price values
func normalizeDecimal(value string) string {
	if strings.Count(value, ",") == 1 && !strings.Contains(value, ".") {
		return strings.Replace(value, ",", ".", 1)
	}
	return value
}
