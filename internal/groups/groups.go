// Package groups maps canonical ingredient identities to semantic groups
// ("Preservatives", "Humectants", ...). The group table is versioned data,
// not code: it ships embedded as groups.yaml and can be replaced at runtime
// with an operator-edited copy.
package groups

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"allergy-insights-go/internal/logger"
)

//go:embed groups.yaml
var embeddedTable []byte

// Group is one entry of the table: a group name and the canonical
// ingredient strings it covers, in declaration order.
type Group struct {
	Name        string   `yaml:"group"`
	Ingredients []string `yaml:"ingredients"`
}

// Table is the ordered group table. Order matters: when an ingredient is
// declared under more than one group, the first declaration wins.
type Table []Group

// UnmappedIngredientError reports a canonical ingredient with no entry in
// any group. It means the group table is out of sync with the dataset and
// needs editing; it is not a recoverable runtime condition.
type UnmappedIngredientError struct {
	Ingredient string
}

func (e *UnmappedIngredientError) Error() string {
	return fmt.Sprintf("ingredient %q is not in any group", e.Ingredient)
}

// Load parses the embedded group table.
func Load() (Table, error) {
	return parse(embeddedTable)
}

// LoadFile parses an operator-supplied group table, for editing the asset
// without rebuilding.
func LoadFile(path string) (Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read group table: %w", err)
	}
	return parse(b)
}

func parse(b []byte) (Table, error) {
	var t Table
	if err := yaml.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("parse group table: %w", err)
	}
	if len(t) == 0 {
		return nil, fmt.Errorf("group table is empty")
	}
	for _, g := range t {
		if g.Name == "" {
			return nil, fmt.Errorf("group table entry with empty group name")
		}
		if len(g.Ingredients) == 0 {
			return nil, fmt.Errorf("group %q has no ingredients", g.Name)
		}
	}
	return t, nil
}

// Index is the inverted ingredient -> group lookup.
type Index struct {
	byIngredient map[string]string
}

// NewIndex inverts a table, walking groups in declaration order and
// ingredients in list order. The first group to declare an ingredient keeps
// it; later duplicates are shadowed (logged at debug, left in the asset).
func NewIndex(t Table) *Index {
	log := logger.Component("groups")
	idx := &Index{byIngredient: make(map[string]string)}
	for _, g := range t {
		for _, ing := range g.Ingredients {
			if first, ok := idx.byIngredient[ing]; ok {
				log.WithFields(map[string]interface{}{
					"ingredient": ing,
					"kept":       first,
					"shadowed":   g.Name,
				}).Debug("duplicate ingredient declaration")
				continue
			}
			idx.byIngredient[ing] = g.Name
		}
	}
	return idx
}

// Lookup resolves a canonical ingredient to its group.
func (i *Index) Lookup(ingredient string) (string, error) {
	group, ok := i.byIngredient[ingredient]
	if !ok {
		return "", &UnmappedIngredientError{Ingredient: ingredient}
	}
	return group, nil
}

// Len reports how many distinct ingredients the index resolves.
func (i *Index) Len() int {
	return len(i.byIngredient)
}
