// Package aggregator computes the per-group Beta-Binomial posterior from
// per-brand binary outcomes. A brand contributes its outcome to every
// group its ingredients touch; groups overlap by design.
package aggregator

import (
	"math"
	"sort"

	"allergy-insights-go/internal/types"
)

// BrandGroups is one brand's contribution: the groups its ingredients
// belong to (first-appearance order) and its decoded outcome.
type BrandGroups struct {
	Brand   string
	Groups  []string
	Outcome int
}

// Aggregate produces one GroupStats row per observed group, ranked by
// posterior mean descending. Under a uniform Beta(1,1) prior the posterior
// mean for hits successes out of n trials is (hits+1)/(n+2), rounded to two
// decimals. The sort is stable, so ties keep the order in which groups were
// first observed (brands in input order, groups in per-brand order).
func Aggregate(brands []BrandGroups) []types.GroupStats {
	hits := make(map[string]int)
	n := make(map[string]int)
	var order []string
	for _, b := range brands {
		for _, g := range b.Groups {
			if _, seen := n[g]; !seen {
				order = append(order, g)
			}
			n[g]++
			hits[g] += b.Outcome
		}
	}

	rows := make([]types.GroupStats, 0, len(order))
	for _, g := range order {
		rows = append(rows, types.GroupStats{
			Group:         g,
			PosteriorMean: posteriorMean(hits[g], n[g]),
			AllergyHits:   hits[g],
			NProducts:     n[g],
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].PosteriorMean > rows[j].PosteriorMean
	})
	return rows
}

func posteriorMean(hits, n int) float64 {
	mu := float64(hits+1) / float64(n+2)
	return math.Round(mu*100) / 100
}
