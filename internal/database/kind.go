package database

// Kind is one category of ingested row. Its value is the backing table name.
type Kind string

const (
	KindGeneration       Kind = "generations"
	KindType             Kind = "types"
	KindStat             Kind = "stats"
	KindEggGroup         Kind = "egg_groups"
	KindGrowthRate       Kind = "growth_rates"
	KindAbility          Kind = "abilities"
	KindMove             Kind = "moves"
	KindItem             Kind = "items"
	KindBerry            Kind = "berries"
	KindSpecies          Kind = "pokemon_species"
	KindSpeciesEvolution Kind = "pokemon_species_evolution"
	KindSpeciesEggGroup  Kind = "species_egg_groups"
	KindPokemon          Kind = "pokemon"
	KindPokemonType      Kind = "pokemon_types"
	KindPokemonAbility   Kind = "pokemon_abilities"
	KindPokemonMove      Kind = "pokemon_moves"
	KindGym              Kind = "gyms"
	KindEliteFour        Kind = "elite_four"
)

// Table returns the table holding rows of kind k. The evolution link is a
// column of the species table rather than a table of its own.
func (k Kind) Table() string {
	if k == KindSpeciesEvolution {
		return string(KindSpecies)
	}
	return string(k)
}

// Keyed reports whether rows of kind k carry their own source id. Association
// tables are keyed by their parents, and the evolution link is a column.
func (k Kind) Keyed() bool {
	switch k {
	case KindSpeciesEvolution, KindSpeciesEggGroup, KindPokemonType, KindPokemonAbility, KindPokemonMove:
		return false
	}
	return true
}

func (k Kind) String() string {
	return string(k)
}
