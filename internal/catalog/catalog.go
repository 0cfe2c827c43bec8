// Package catalog serves canned pickup lines by scenario and tone without any network call.
package catalog

import (
	"math/rand"
	"strings"

	"github.com/huzzai/rizz-coach/internal/model"
)

// Collection is a named, ordered set of lines.
type Collection struct {
	Name  string             `json:"name"`
	Lines []model.PickupLine `json:"lines"`
}

type keywordGroup struct {
	keywords   []string
	collection string
}

type Catalog struct {
	general     Collection
	collections map[string]Collection
	groups      []keywordGroup
	intn        func(n int) int
}

// Default builds the catalog from the built-in tables.
func Default() *Catalog {
	return &Catalog{
		general: Collection{Name: General, Lines: generalLines},
		collections: map[string]Collection{
			CoffeeShop: {Name: CoffeeShop, Lines: coffeeShopLines},
			Gym:        {Name: Gym, Lines: gymLines},
			Bookstore:  {Name: Bookstore, Lines: bookstoreLines},
		},
		groups: defaultGroups,
		intn:   rand.Intn,
	}
}

// WithRand swaps the random source used by Pick. intn must return a value in [0, n).
func (c *Catalog) WithRand(intn func(n int) int) *Catalog {
	cp := *c
	cp.intn = intn
	return &cp
}

// Select returns the collection for the first keyword group found in the scenario, or the
// general collection. Matching is a case-insensitive substring test.
func (c *Catalog) Select(scenario string) Collection {
	s := strings.ToLower(scenario)
	for _, g := range c.groups {
		for _, kw := range g.keywords {
			if strings.Contains(s, kw) {
				if col, ok := c.collections[g.collection]; ok {
					return col
				}
			}
		}
	}
	return c.general
}

// Candidates returns the selected collection's lines with exactly the given tone. When none
// match, the general collection filtered by the same tone is used instead.
func (c *Catalog) Candidates(scenario string, tone model.ToneLevel) []model.PickupLine {
	if lines := filterTone(c.Select(scenario).Lines, tone); len(lines) > 0 {
		return lines
	}
	return filterTone(c.general.Lines, tone)
}

// Pick chooses uniformly among the candidates. ok is false when there is nothing to offer.
func (c *Catalog) Pick(scenario string, tone model.ToneLevel) (line model.PickupLine, ok bool) {
	lines := c.Candidates(scenario, tone)
	if len(lines) == 0 {
		return model.PickupLine{}, false
	}
	return lines[c.intn(len(lines))], true
}

// Collections lists the general collection first, then the scenario-specific ones in match order.
func (c *Catalog) Collections() []Collection {
	out := []Collection{c.general}
	for _, g := range c.groups {
		if col, ok := c.collections[g.collection]; ok {
			out = append(out, col)
		}
	}
	return out
}

func filterTone(lines []model.PickupLine, tone model.ToneLevel) []model.PickupLine {
	var out []model.PickupLine
	for _, l := range lines {
		if l.Tone == tone {
			out = append(out, l)
		}
	}
	return out
}
