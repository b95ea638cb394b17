package catalog

import (
	"context"
	"errors"

	"parts-finder/feature/catalog/models"
	invmodels "parts-finder/feature/inventory/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrPartNotFound is returned when no part matches a detail lookup.
var ErrPartNotFound = errors.New("part not found")

// StockReader supplies the stock summary used to enrich search results.
// Implementations degrade to a soft result on store failure, so the
// method carries no error.
type StockReader interface {
	Summary(ctx context.Context, partNumber string) invmodels.Summary
}

// Service handles equivalence graph operations.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
	stock  StockReader
}

// NewService creates a new catalog service.
func NewService(db *gorm.DB, logger *zap.Logger, stock StockReader) *Service {
	return &Service{db: db, logger: logger, stock: stock}
}

// Search resolves a query against the equivalence graph. See
// resolveEquivalences for the traversal contract.
func (s *Service) Search(ctx context.Context, query string) ([]models.EquivalenceRow, error) {
	records, err := resolveEquivalences(ctx, s.db, query)
	if err != nil {
		return nil, err
	}

	rows := make([]models.EquivalenceRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, record.toRow())
	}
	return rows, nil
}

// EnrichStock attaches quantity and location to each row from the
// inventory reader, one lookup per distinct part number. Enrichment
// failure is already degraded inside the reader and never fails the
// search.
func (s *Service) EnrichStock(ctx context.Context, rows []models.EquivalenceRow) {
	if s.stock == nil {
		return
	}

	summaries := make(map[string]invmodels.Summary)
	for i := range rows {
		summary, ok := summaries[rows[i].PartNumber]
		if !ok {
			summary = s.stock.Summary(ctx, rows[i].PartNumber)
			summaries[rows[i].PartNumber] = summary
		}
		rows[i].Quantity = summary.Quantity
		rows[i].Location = summary.Location
	}
}

// Suggest returns ranked autocomplete candidates for the query.
func (s *Service) Suggest(ctx context.Context, query string) ([]models.Suggestion, error) {
	return buildSuggestions(ctx, s.db, query)
}

// ImportBatch applies a compatibility import batch.
func (s *Service) ImportBatch(ctx context.Context, items []models.ImportItem) (models.ImportStats, error) {
	return importBatch(ctx, s.db, items)
}

// GetPart looks up a single part: by exact number first, then as the owner
// of an edge whose compatible number matches, then by substring as a last
// resort. Returns ErrPartNotFound when nothing matches.
func (s *Service) GetPart(ctx context.Context, identifier string) (*models.PartDetail, error) {
	db := s.db.WithContext(ctx)

	var part models.Part
	err := db.Where("part_number = ?", identifier).First(&part).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = db.
			Joins("JOIN part_compatibilities pc ON pc.part_id = parts.id").
			Where("pc.compatible_part_number = ?", identifier).
			First(&part).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		pattern := "%" + identifier + "%"
		err = db.
			Joins("LEFT JOIN part_compatibilities pc ON pc.part_id = parts.id").
			Where("parts.part_number LIKE ? OR pc.compatible_part_number LIKE ?", pattern, pattern).
			First(&part).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPartNotFound
	}
	if err != nil {
		return nil, err
	}

	detail := &models.PartDetail{
		PartNumber:  part.PartNumber,
		Description: part.Description,
		Brand:       part.ResponseBrand,
		Category:    "General",
		ImageURL:    part.ImageURL,
	}
	if s.stock != nil {
		detail.Stock = int(s.stock.Summary(ctx, part.PartNumber).Quantity)
	}
	return detail, nil
}
