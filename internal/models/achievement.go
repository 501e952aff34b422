package models

import (
	"encoding/json"
)

type Category string

const (
	CategoryStarter    Category = "starter"
	CategoryEraThemed  Category = "era_themed"
	CategoryTimeBased  Category = "time_based"
	CategoryVolume     Category = "volume"
	CategorySpecial    Category = "special"
	CategoryEnhance    Category = "enhance"
	CategoryLoyalty    Category = "loyalty"
	CategoryVariety    Category = "variety"
	CategorySocial     Category = "social"
	CategoryContent    Category = "content"
	CategoryEngagement Category = "engagement"
)

// Rarity is the catalog-assigned tier of an achievement, not the computed
// unlock percentage.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Rank orders rarities from 1 (common) to 5 (legendary). Unknown values rank 0.
func (r Rarity) Rank() int {
	switch r {
	case RarityCommon:
		return 1
	case RarityUncommon:
		return 2
	case RarityRare:
		return 3
	case RarityEpic:
		return 4
	case RarityLegendary:
		return 5
	}
	return 0
}

type Reward struct {
	Points int    `json:"points"`
	Title  string `json:"title,omitempty"`
}

// Visual holds display hints for the presentation layer.
type Visual struct {
	Color    string `json:"color"`
	Gradient string `json:"gradient,omitempty"`
	Glow     bool   `json:"glow,omitempty"`
}

type AchievementDefinition struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Category       Category `json:"category"`
	Rarity         Rarity   `json:"rarity"`
	Icon           string   `json:"icon"`
	UnlockCriteria Criteria `json:"-"`
	Rewards        Reward   `json:"rewards"`
	Visual         Visual   `json:"visual"`
	Order          int      `json:"order"`
	Hidden         bool     `json:"hidden"`
}

// HasTitle reports whether unlocking the achievement grants a title.
func (d AchievementDefinition) HasTitle() bool {
	return d.Rewards.Title != ""
}

// Masked returns the public face of a hidden achievement: placeholder text
// and no criteria or title reward. Visible entries are returned unchanged.
func (d AchievementDefinition) Masked() AchievementDefinition {
	if !d.Hidden {
		return d
	}
	d.Title = "???"
	d.Description = "Hidden achievement"
	d.UnlockCriteria = nil
	d.Rewards.Title = ""
	return d
}

func (d AchievementDefinition) MarshalJSON() ([]byte, error) {
	type alias AchievementDefinition
	var desc map[string]any
	if d.UnlockCriteria != nil {
		desc = CriteriaDescriptor(d.UnlockCriteria)
	}
	return json.Marshal(struct {
		alias
		UnlockCriteria map[string]any `json:"unlock_criteria,omitempty"`
	}{
		alias:          alias(d),
		UnlockCriteria: desc,
	})
}

// CriteriaDescriptor flattens a criteria variant into a tagged map with a
// "type" key, the shape used by the API and the CLI export.
func CriteriaDescriptor(c Criteria) map[string]any {
	out := map[string]any{}
	if c == nil {
		return out
	}
	raw, err := json.Marshal(c)
	if err == nil {
		_ = json.Unmarshal(raw, &out)
	}
	out["type"] = string(c.Kind())
	return out
}
