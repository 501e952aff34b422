// Package catalog holds the immutable table of achievement definitions.
// A Catalog is built once at startup and shared read-only by every
// component; it needs no locking.
package catalog

import (
	"errors"
	"fmt"

	"github.com/schollz/closestmatch"

	"github.com/tahcohcat/capsule-achievements/internal/models"
)

// FirstAchievementID is granted and auto-equipped for new users.
const FirstAchievementID = "first_step"

var (
	ErrDuplicateID = errors.New("duplicate achievement id")
	ErrMissingID   = errors.New("achievement id must not be empty")
	ErrNoCriteria  = errors.New("achievement has no unlock criteria")
	ErrNoFirst     = errors.New("designated first achievement not in catalog")
)

type Catalog struct {
	defs    []models.AchievementDefinition
	byID    map[string]int
	firstID string
	matcher *closestmatch.ClosestMatch
}

// Load builds the catalog from the built-in definitions.
func Load() *Catalog {
	c, err := New(definitions(), FirstAchievementID)
	if err != nil {
		// The built-in table is static; a failure here is a programming error.
		panic(fmt.Sprintf("invalid built-in catalog: %v", err))
	}
	return c
}

// New validates defs and builds a catalog. Definitions without an explicit
// Order are ranked by their position.
func New(defs []models.AchievementDefinition, firstID string) (*Catalog, error) {
	c := &Catalog{
		defs:    make([]models.AchievementDefinition, len(defs)),
		byID:    make(map[string]int, len(defs)),
		firstID: firstID,
	}
	names := make([]string, 0, len(defs))

	for i, d := range defs {
		if d.ID == "" {
			return nil, ErrMissingID
		}
		if _, dup := c.byID[d.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, d.ID)
		}
		if d.UnlockCriteria == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoCriteria, d.ID)
		}
		if d.Order == 0 {
			d.Order = i + 1
		}
		if d.Visual.Color == "" {
			d.Visual = visualFor(d.Rarity)
		}
		c.defs[i] = d
		c.byID[d.ID] = i
		names = append(names, d.ID)
	}

	if _, ok := c.byID[firstID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoFirst, firstID)
	}

	c.matcher = closestmatch.New(names, []int{2, 3})
	return c, nil
}

// All returns every definition in catalog order.
func (c *Catalog) All() []models.AchievementDefinition {
	out := make([]models.AchievementDefinition, len(c.defs))
	copy(out, c.defs)
	return out
}

func (c *Catalog) Get(id string) (models.AchievementDefinition, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.AchievementDefinition{}, false
	}
	return c.defs[i], true
}

// Index returns the catalog position of id, or -1.
func (c *Catalog) Index(id string) int {
	if i, ok := c.byID[id]; ok {
		return i
	}
	return -1
}

// First returns the designated first achievement.
func (c *Catalog) First() models.AchievementDefinition {
	return c.defs[c.byID[c.firstID]]
}

func (c *Catalog) Len() int {
	return len(c.defs)
}

// Suggest returns the known id closest to an unknown one, or "" when nothing
// is close.
func (c *Catalog) Suggest(id string) string {
	if _, ok := c.byID[id]; ok {
		return id
	}
	return c.matcher.Closest(id)
}

// Titles returns every title reward keyed by achievement id.
func (c *Catalog) Titles() map[string]string {
	out := map[string]string{}
	for _, d := range c.defs {
		if d.HasTitle() {
			out[d.ID] = d.Rewards.Title
		}
	}
	return out
}

func visualFor(r models.Rarity) models.Visual {
	switch r {
	case models.RarityUncommon:
		return models.Visual{Color: "#22c55e", Gradient: "from-green-400 to-emerald-600"}
	case models.RarityRare:
		return models.Visual{Color: "#3b82f6", Gradient: "from-blue-400 to-indigo-600"}
	case models.RarityEpic:
		return models.Visual{Color: "#a855f7", Gradient: "from-purple-400 to-fuchsia-600", Glow: true}
	case models.RarityLegendary:
		return models.Visual{Color: "#f59e0b", Gradient: "from-amber-300 to-orange-600", Glow: true}
	}
	return models.Visual{Color: "#9ca3af", Gradient: "from-gray-300 to-gray-500"}
}
