package database

import "encoding/json"

// Named is a row of one of the name-only lookup kinds (generation, type, stat,
// egg group).
type Named struct {
	ID   int
	Name string
}

type GrowthRate struct {
	ID      int
	Name    string
	Formula *string
}

type Ability struct {
	ID           int
	Name         string
	Effect       *string
	GenerationID *int
}

type Move struct {
	ID           int
	Name         string
	TypeID       *int
	Power        *int
	PP           *int
	Accuracy     *int
	Priority     int
	DamageClass  *string
	EffectChance *int
	GenerationID *int
}

type Item struct {
	ID        int
	Name      string
	Cost      int
	Category  *string
	Effect    *string
	SpriteURL *string
}

type Berry struct {
	ID          int
	Name        string
	GrowthTime  int
	MaxHarvest  int
	Size        int
	Smoothness  int
	SoilDryness int
	Firmness    *string
	ItemID      *int
}

// Species never carries its evolution link on insert, see SetEvolvesFrom.
type Species struct {
	ID                   int
	Name                 string
	Order                int
	GenderRate           int
	CaptureRate          int
	BaseHappiness        *int
	IsBaby               bool
	HatchCounter         *int
	HasGenderDifferences bool
	GrowthRateID         *int
	GenerationID         *int
	// ParentID is the parent the source declares. It is not a foreign key, so
	// it can name a species that is not stored yet.
	ParentID *int
}

type SpeciesEggGroup struct {
	SpeciesID  int
	EggGroupID int
}

type Pokemon struct {
	ID             int
	Name           string
	SpeciesID      int
	Height         int
	Weight         int
	BaseExperience *int
	Order          int
	IsDefault      bool
	Sprites        json.RawMessage
	Stats          json.RawMessage
}

type PokemonType struct {
	PokemonID int
	TypeID    int
	Slot      int
}

type PokemonAbility struct {
	PokemonID int
	AbilityID int
	IsHidden  bool
	Slot      int
}

type PokemonMove struct {
	PokemonID      int
	MoveID         int
	LearnMethod    string
	LevelLearnedAt int
}

type Gym struct {
	ID            int
	Name          string
	Location      string
	LeaderName    string
	TypeSpecialty string
	BadgeName     string
	BadgeImageURL string
}

type EliteFourMember struct {
	ID            int
	Name          string
	Rank          int
	SpecialtyType string
	ImageURL      string
}

func nullable[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

func rawJSON(v json.RawMessage) any {
	if len(v) == 0 {
		return nil
	}
	return string(v)
}
