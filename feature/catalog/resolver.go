package catalog

import (
	"context"
	"strings"

	"parts-finder/feature/catalog/models"

	"gorm.io/gorm"
)

// maxGenerations caps the reverse-edge expansion. The seed set is
// generation 0; two synchronous expansion rounds produce generations 1
// and 2. The cap is fixed to keep searches interactive on densely
// cross-referenced catalogs.
const maxGenerations = 2

// equivalenceRecord is one scanned (owner part, edge) row. Parts without
// edges appear once with empty edge columns (left join).
type equivalenceRecord struct {
	PartNumber           string
	Description          string
	CompatiblePartNumber string
	EquipmentModel       string
	OriginalBrand        string
	ResponseBrand        string
}

type partNumberRow struct {
	PartNumber string
}

// equivalenceQuery is the flattened parts/edges projection every search
// variant reads from.
func equivalenceQuery(db *gorm.DB) *gorm.DB {
	return db.Table("parts AS p").
		Select("p.part_number AS part_number, p.description AS description, " +
			"pc.compatible_part_number AS compatible_part_number, pc.equipment_model AS equipment_model, " +
			"pc.original_brand AS original_brand, p.response_brand AS response_brand").
		Joins("LEFT JOIN part_compatibilities pc ON pc.part_id = p.id")
}

// resolveEquivalences answers a search query against the cross-reference
// graph. An empty query returns the full edge set; otherwise the seed set
// is expanded through bounded reverse-edge traversal and every row owned
// by a reachable part is returned, ordered by owner part number.
func resolveEquivalences(ctx context.Context, db *gorm.DB, query string) ([]equivalenceRecord, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		var records []equivalenceRecord
		err := equivalenceQuery(db.WithContext(ctx)).
			Order("p.part_number").
			Scan(&records).Error
		if err != nil {
			return nil, err
		}
		return dedupeRecords(records), nil
	}

	seeds, err := seedPartNumbers(ctx, db, query)
	if err != nil {
		return nil, err
	}
	if len(seeds) == 0 {
		// No direct match means no expansion and no further query cost.
		return []equivalenceRecord{}, nil
	}

	reachable, err := expandReachable(ctx, db, seeds)
	if err != nil {
		return nil, err
	}

	var records []equivalenceRecord
	err = equivalenceQuery(db.WithContext(ctx)).
		Where("p.part_number IN ?", reachable).
		Order("p.part_number").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}

	return dedupeRecords(records), nil
}

// seedPartNumbers returns the distinct owner part numbers whose own number,
// any edge's compatible number or any edge's equipment model contains the
// query. LIKE under the utf8mb4 ci collation gives the case-insensitive
// substring semantics.
func seedPartNumbers(ctx context.Context, db *gorm.DB, query string) ([]string, error) {
	pattern := "%" + query + "%"

	var rows []partNumberRow
	err := db.WithContext(ctx).
		Table("parts AS p").
		Select("DISTINCT p.part_number AS part_number").
		Joins("LEFT JOIN part_compatibilities pc ON pc.part_id = p.id").
		Where("p.part_number LIKE ? OR pc.compatible_part_number LIKE ? OR pc.equipment_model LIKE ?",
			pattern, pattern, pattern).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	seeds := make([]string, 0, len(rows))
	for _, row := range rows {
		seeds = append(seeds, row.PartNumber)
	}
	return seeds, nil
}

// expandReachable grows the seed set generation by generation over the
// reverse cross-reference relation: a part joins the set when one of its
// edges points at a part number already in the set. Membership is a set
// keyed on the folded part number, which both prevents revisits and makes
// the traversal terminate on cyclic reference graphs.
func expandReachable(ctx context.Context, db *gorm.DB, seeds []string) ([]string, error) {
	reachable := make(map[string]struct{}, len(seeds))
	order := make([]string, 0, len(seeds))

	add := func(partNumber string) bool {
		key := strings.ToUpper(strings.TrimSpace(partNumber))
		if _, ok := reachable[key]; ok {
			return false
		}
		reachable[key] = struct{}{}
		order = append(order, partNumber)
		return true
	}

	var frontier []string
	for _, seed := range seeds {
		if add(seed) {
			frontier = append(frontier, seed)
		}
	}

	for generation := 0; generation < maxGenerations && len(frontier) > 0; generation++ {
		var owners []partNumberRow
		err := db.WithContext(ctx).
			Table("parts AS p").
			Select("DISTINCT p.part_number AS part_number").
			Joins("JOIN part_compatibilities pc ON pc.part_id = p.id").
			Where("pc.compatible_part_number IN ?", frontier).
			Scan(&owners).Error
		if err != nil {
			return nil, err
		}

		var next []string
		for _, owner := range owners {
			if add(owner.PartNumber) {
				next = append(next, owner.PartNumber)
			}
		}
		frontier = next
	}

	return order, nil
}

// dedupeRecords drops rows whose full tuple repeats, preserving order.
func dedupeRecords(records []equivalenceRecord) []equivalenceRecord {
	seen := make(map[equivalenceRecord]struct{}, len(records))
	out := make([]equivalenceRecord, 0, len(records))
	for _, record := range records {
		if _, ok := seen[record]; ok {
			continue
		}
		seen[record] = struct{}{}
		out = append(out, record)
	}
	return out
}

func (r equivalenceRecord) toRow() models.EquivalenceRow {
	return models.EquivalenceRow{
		PartNumber:     r.PartNumber,
		Description:    r.Description,
		CompatiblePart: r.CompatiblePartNumber,
		Equipment:      r.EquipmentModel,
		Brand:          r.OriginalBrand,
		SpareBrand:     r.ResponseBrand,
	}
}
