package pipeline

import (
	"errors"
	"testing"

	"allergy-insights-go/internal/aggregator"
	"allergy-insights-go/internal/groups"
	"allergy-insights-go/internal/types"
)

func mustIndex(t *testing.T) *groups.Index {
	t.Helper()
	table, err := groups.Load()
	if err != nil {
		t.Fatalf("load group table: %v", err)
	}
	return groups.NewIndex(table)
}

func TestRunAloeScenario(t *testing.T) {
	records := []types.ProductRecord{
		{Brand: "Brand1", Symptoms: "Yes", Ingredients: []string{"Aloe Barbadensis Leaf Juice"}},
		{Brand: "Brand2", Symptoms: "No", Ingredients: []string{"Water"}},
		{Brand: "Brand3", Symptoms: "No", Ingredients: []string{"ALOE VERA GEL"}},
	}
	rows, err := Run(records, mustIndex(t))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	if rows[0].Group != "Aloe" {
		t.Fatalf("expected Aloe ranked first, got %q", rows[0].Group)
	}
	if rows[0].NProducts != 2 || rows[0].AllergyHits != 1 || rows[0].PosteriorMean != 0.5 {
		t.Errorf("Aloe = %+v, want n=2 hits=1 posterior=0.5", rows[0])
	}
	if rows[1].Group != "Water" {
		t.Fatalf("expected Water ranked second, got %q", rows[1].Group)
	}
	if rows[1].NProducts != 1 || rows[1].AllergyHits != 0 || rows[1].PosteriorMean != 0.33 {
		t.Errorf("Water = %+v, want n=1 hits=0 posterior=0.33", rows[1])
	}
}

func TestEnrich(t *testing.T) {
	rec := types.ProductRecord{
		Brand:    "Plush",
		Symptoms: "yes",
		Ingredients: []string{
			"Cetearyl Alcohol",
			"Glycerin",
			"Glycerin", // repeat must not double-count the group
			"Propylene Glycol",
		},
	}
	enr, err := Enrich(rec, mustIndex(t))
	if err != nil {
		t.Fatalf("Enrich failed: %v", err)
	}
	if enr.Outcome != 1 {
		t.Errorf("outcome = %d, want 1", enr.Outcome)
	}
	wantCanonical := []string{"cetyl alcohol", "glycerin", "glycerin", "propylene gylcol"}
	if len(enr.Canonical) != len(wantCanonical) {
		t.Fatalf("canonical = %v, want %v", enr.Canonical, wantCanonical)
	}
	for i, w := range wantCanonical {
		if enr.Canonical[i] != w {
			t.Errorf("canonical[%d] = %q, want %q", i, enr.Canonical[i], w)
		}
	}
	// cetyl alcohol -> Alcohols; glycerin and propylene gylcol -> Emollients
	wantGroups := []string{"Alcohols", "Emollients"}
	if len(enr.Groups) != len(wantGroups) {
		t.Fatalf("groups = %v, want %v", enr.Groups, wantGroups)
	}
	for i, w := range wantGroups {
		if enr.Groups[i] != w {
			t.Errorf("groups[%d] = %q, want %q", i, enr.Groups[i], w)
		}
	}
}

func TestRunInvalidOutcome(t *testing.T) {
	records := []types.ProductRecord{
		{Brand: "Brand1", Symptoms: "maybe", Ingredients: []string{"Water"}},
	}
	_, err := Run(records, mustIndex(t))
	if err == nil {
		t.Fatal("expected error for symptoms value 'maybe'")
	}
	var invalid *aggregator.InvalidOutcomeError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidOutcomeError, got %T: %v", err, err)
	}
	if invalid.Value != "maybe" {
		t.Errorf("error carries %q, want 'maybe'", invalid.Value)
	}
}

func TestRunUnmappedIngredient(t *testing.T) {
	records := []types.ProductRecord{
		{Brand: "Brand1", Symptoms: "No", Ingredients: []string{"Unicorn Tears"}},
	}
	_, err := Run(records, mustIndex(t))
	if err == nil {
		t.Fatal("expected error for ingredient missing from the group table")
	}
	var unmapped *groups.UnmappedIngredientError
	if !errors.As(err, &unmapped) {
		t.Fatalf("expected UnmappedIngredientError, got %T: %v", err, err)
	}
	if unmapped.Ingredient != "unicorn tears" {
		t.Errorf("error carries %q, want the canonical ingredient", unmapped.Ingredient)
	}
}

func TestEnrichSkipsBlankCells(t *testing.T) {
	rec := types.ProductRecord{
		Brand:       "Minimal",
		Symptoms:    "No",
		Ingredients: []string{"  ", "...", "Water"},
	}
	enr, err := Enrich(rec, mustIndex(t))
	if err != nil {
		t.Fatalf("Enrich failed: %v", err)
	}
	if len(enr.Canonical) != 1 || enr.Canonical[0] != "water" {
		t.Errorf("canonical = %v, want [water]", enr.Canonical)
	}
}
