package models

import "encoding/json"

// NamedResource is the {name, url} locator the remote API uses for every
// reference between entities.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type ResourceList struct {
	Count   int             `json:"count"`
	Next    *string         `json:"next"`
	Results []NamedResource `json:"results"`
}

type EffectEntry struct {
	Effect      string        `json:"effect"`
	ShortEffect string        `json:"short_effect"`
	Language    NamedResource `json:"language"`
}

// EnglishEffect returns the first english effect text, or nil.
func EnglishEffect(entries []EffectEntry) *string {
	for _, e := range entries {
		if e.Language.Name == "en" {
			effect := e.Effect
			return &effect
		}
	}
	return nil
}

type GrowthRatePayload struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Formula string `json:"formula"`
}

type MovePayload struct {
	ID           int            `json:"id"`
	Name         string         `json:"name"`
	Type         *NamedResource `json:"type"`
	Power        *int           `json:"power"`
	PP           *int           `json:"pp"`
	Accuracy     *int           `json:"accuracy"`
	Priority     int            `json:"priority"`
	DamageClass  *NamedResource `json:"damage_class"`
	Generation   *NamedResource `json:"generation"`
	EffectChance *int           `json:"effect_chance"`
}

type AbilityPayload struct {
	ID            int            `json:"id"`
	Name          string         `json:"name"`
	EffectEntries []EffectEntry  `json:"effect_entries"`
	Generation    *NamedResource `json:"generation"`
}

type ItemPayload struct {
	ID            int            `json:"id"`
	Name          string         `json:"name"`
	Cost          int            `json:"cost"`
	Category      *NamedResource `json:"category"`
	EffectEntries []EffectEntry  `json:"effect_entries"`
	Sprites       struct {
		Default *string `json:"default"`
	} `json:"sprites"`
}

type BerryPayload struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	GrowthTime  int            `json:"growth_time"`
	MaxHarvest  int            `json:"max_harvest"`
	Size        int            `json:"size"`
	Smoothness  int            `json:"smoothness"`
	SoilDryness int            `json:"soil_dryness"`
	Firmness    *NamedResource `json:"firmness"`
	Item        *NamedResource `json:"item"`
}

type SpeciesPayload struct {
	ID                   int             `json:"id"`
	Name                 string          `json:"name"`
	Order                int             `json:"order"`
	GenderRate           int             `json:"gender_rate"`
	CaptureRate          int             `json:"capture_rate"`
	BaseHappiness        *int            `json:"base_happiness"`
	IsBaby               bool            `json:"is_baby"`
	HatchCounter         *int            `json:"hatch_counter"`
	HasGenderDifferences bool            `json:"has_gender_differences"`
	GrowthRate           *NamedResource  `json:"growth_rate"`
	Generation           *NamedResource  `json:"generation"`
	EvolvesFromSpecies   *NamedResource  `json:"evolves_from_species"`
	EggGroups            []NamedResource `json:"egg_groups"`
}

type PokemonPayload struct {
	ID             int                  `json:"id"`
	Name           string               `json:"name"`
	Species        NamedResource        `json:"species"`
	Height         int                  `json:"height"`
	Weight         int                  `json:"weight"`
	BaseExperience *int                 `json:"base_experience"`
	Order          int                  `json:"order"`
	IsDefault      bool                 `json:"is_default"`
	Sprites        json.RawMessage      `json:"sprites"`
	Stats          []PokemonStatSlot    `json:"stats"`
	Types          []PokemonTypeSlot    `json:"types"`
	Abilities      []PokemonAbilitySlot `json:"abilities"`
	Moves          []PokemonMoveEntry   `json:"moves"`
}

type PokemonStatSlot struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

type PokemonTypeSlot struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

type PokemonAbilitySlot struct {
	Slot     int           `json:"slot"`
	IsHidden bool          `json:"is_hidden"`
	Ability  NamedResource `json:"ability"`
}

type PokemonMoveEntry struct {
	Move                NamedResource            `json:"move"`
	VersionGroupDetails []MoveVersionGroupDetail `json:"version_group_details"`
}

type MoveVersionGroupDetail struct {
	LevelLearnedAt  int           `json:"level_learned_at"`
	MoveLearnMethod NamedResource `json:"move_learn_method"`
}

// StatMap flattens the stat slots into stat name -> base stat.
func (p PokemonPayload) StatMap() map[string]int {
	stats := make(map[string]int, len(p.Stats))
	for _, s := range p.Stats {
		stats[s.Stat.Name] = s.BaseStat
	}
	return stats
}
