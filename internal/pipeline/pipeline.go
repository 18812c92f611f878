// Package pipeline threads product records through normalization, group
// mapping, and posterior aggregation. It is where upstream data errors
// (bad symptoms value, ingredient missing from the group table) surface;
// nothing here coerces or skips a bad row.
package pipeline

import (
	"fmt"

	"allergy-insights-go/internal/aggregator"
	"allergy-insights-go/internal/groups"
	"allergy-insights-go/internal/normalizer"
	"allergy-insights-go/internal/types"
)

// Enrich derives one brand's view: canonical ingredients, group set, and
// decoded outcome. A brand's group list is deduplicated in first-appearance
// order so the brand contributes at most one observation per group.
func Enrich(rec types.ProductRecord, idx *groups.Index) (types.EnrichedProduct, error) {
	outcome, err := aggregator.DecodeOutcome(rec.Symptoms)
	if err != nil {
		return types.EnrichedProduct{}, fmt.Errorf("brand %q: %w", rec.Brand, err)
	}

	enr := types.EnrichedProduct{ProductRecord: rec, Outcome: outcome}
	seen := make(map[string]bool)
	for _, raw := range rec.Ingredients {
		canonical := normalizer.Normalize(raw)
		if canonical == "" {
			continue
		}
		enr.Canonical = append(enr.Canonical, canonical)
		group, err := idx.Lookup(canonical)
		if err != nil {
			return types.EnrichedProduct{}, fmt.Errorf("brand %q: %w", rec.Brand, err)
		}
		if !seen[group] {
			seen[group] = true
			enr.Groups = append(enr.Groups, group)
		}
	}
	return enr, nil
}

// Run computes the ranked group table for a full dataset. The first bad
// row aborts the computation; a partial ranking would silently misstate
// every group the dropped brand touched.
func Run(records []types.ProductRecord, idx *groups.Index) ([]types.GroupStats, error) {
	brands := make([]aggregator.BrandGroups, 0, len(records))
	for _, rec := range records {
		enr, err := Enrich(rec, idx)
		if err != nil {
			return nil, err
		}
		brands = append(brands, aggregator.BrandGroups{
			Brand:   enr.Brand,
			Groups:  enr.Groups,
			Outcome: enr.Outcome,
		})
	}
	return aggregator.Aggregate(brands), nil
}
