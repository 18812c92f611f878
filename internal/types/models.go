package types

// ProductRecord is one row of the source spreadsheet: a brand, its
// reported-symptom flag, and the raw ingredient labels in header order.
// Empty ingredient cells are dropped at load time.
type ProductRecord struct {
	Brand       string   `json:"brand"`
	Symptoms    string   `json:"symptoms"`
	Ingredients []string `json:"ingredients,omitempty"`
}

// EnrichedProduct is the derived per-brand view: canonical ingredient
// identities, the semantic groups they belong to, and the decoded outcome.
type EnrichedProduct struct {
	ProductRecord
	Canonical []string `json:"canonical_ingredients,omitempty"`
	Groups    []string `json:"groups,omitempty"`
	Outcome   int      `json:"outcome"`
}

// GroupStats is one row of the ranked output table.
type GroupStats struct {
	Group         string  `json:"group"`
	PosteriorMean float64 `json:"posterior_mean"`
	AllergyHits   int     `json:"allergy_hits"`
	NProducts     int     `json:"nproducts"`
}
