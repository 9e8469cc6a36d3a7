package dex

import "encoding/json"

type pokemonListResponse struct {
	Page    int              `json:"page"`
	Pages   int              `json:"pages"`
	Total   int              `json:"total"`
	Pokemon []pokemonSummary `json:"pokemon"`
}

type pokemonSummary struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	SpeciesID int    `json:"species_id"`
}

type pokemonResponse struct {
	ID             int              `json:"id"`
	Name           string           `json:"name"`
	Species        string           `json:"species"`
	SpeciesID      int              `json:"species_id"`
	EvolvesFrom    *int             `json:"evolves_from_species_id"`
	Height         int              `json:"height"`
	Weight         int              `json:"weight"`
	BaseExperience *int             `json:"base_experience"`
	IsDefault      bool             `json:"is_default"`
	GrowthRate     string           `json:"growth_rate"`
	Types          []string         `json:"types"`
	Abilities      []pokemonAbility `json:"abilities"`
	Stats          json.RawMessage  `json:"stats"`
	Sprites        json.RawMessage  `json:"sprites"`
}

type pokemonAbility struct {
	Name     string `json:"name"`
	IsHidden bool   `json:"is_hidden"`
	Slot     int    `json:"slot"`
}

type pokemonMove struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	LearnMethod    string `json:"learn_method"`
	LevelLearnedAt int    `json:"level_learned_at"`
}
