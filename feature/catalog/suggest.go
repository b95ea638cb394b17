package catalog

import (
	"context"
	"fmt"
	"unicode/utf8"

	"parts-finder/feature/catalog/models"

	"gorm.io/gorm"
)

const (
	// minSuggestQueryLen is a UX throttle, not an error: shorter queries
	// return an empty list.
	minSuggestQueryLen = 3
	// maxSuggestionsPerSource caps each candidate source.
	maxSuggestionsPerSource = 5
	// maxSuggestions caps the merged list.
	maxSuggestions = 10
)

// buildSuggestions assembles ranked autocomplete candidates from three
// sources in fixed priority order: part numbers, compatible part numbers,
// equipment models. Values are deduplicated across all sources combined,
// first occurrence wins.
func buildSuggestions(ctx context.Context, db *gorm.DB, query string) ([]models.Suggestion, error) {
	suggestions := make([]models.Suggestion, 0, maxSuggestions)
	if utf8.RuneCountInString(query) < minSuggestQueryLen {
		return suggestions, nil
	}

	pattern := "%" + query + "%"
	seen := make(map[string]struct{})

	appendSuggestion := func(value, label, kind string) {
		if _, ok := seen[value]; ok {
			return
		}
		seen[value] = struct{}{}
		suggestions = append(suggestions, models.Suggestion{Value: value, Label: label, Type: kind})
	}

	var parts []struct {
		PartNumber  string
		Description string
	}
	err := db.WithContext(ctx).
		Table("parts").
		Select("DISTINCT part_number, description").
		Where("part_number LIKE ?", pattern).
		Limit(maxSuggestionsPerSource).
		Scan(&parts).Error
	if err != nil {
		return nil, err
	}
	for _, p := range parts {
		appendSuggestion(p.PartNumber, p.Description, models.SuggestionPart)
	}

	var compatibles []struct {
		CompatiblePartNumber string
		EquipmentModel       string
		PartNumber           string
	}
	err = db.WithContext(ctx).
		Table("part_compatibilities AS pc").
		Select("DISTINCT pc.compatible_part_number, pc.equipment_model, p.part_number").
		Joins("JOIN parts p ON pc.part_id = p.id").
		Where("pc.compatible_part_number LIKE ?", pattern).
		Limit(maxSuggestionsPerSource).
		Scan(&compatibles).Error
	if err != nil {
		return nil, err
	}
	for _, c := range compatibles {
		label := fmt.Sprintf("Compatible con %s - %s", c.PartNumber, c.EquipmentModel)
		appendSuggestion(c.CompatiblePartNumber, label, models.SuggestionCompatible)
	}

	var equipment []struct {
		EquipmentModel string
		PartNumber     string
		Description    string
	}
	err = db.WithContext(ctx).
		Table("part_compatibilities AS pc").
		Select("DISTINCT pc.equipment_model, p.part_number, p.description").
		Joins("JOIN parts p ON pc.part_id = p.id").
		Where("pc.equipment_model LIKE ?", pattern).
		Limit(maxSuggestionsPerSource).
		Scan(&equipment).Error
	if err != nil {
		return nil, err
	}
	for _, e := range equipment {
		label := fmt.Sprintf("%s - %s", e.PartNumber, e.Description)
		appendSuggestion(e.EquipmentModel, label, models.SuggestionEquipment)
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions, nil
}
