package database

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const textSize = 2147483647

var (
	GenerationsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "name", Type: field.TypeString},
	}
	GenerationsTable = &schema.Table{
		Name:       KindGeneration.Table(),
		Columns:    GenerationsColumns,
		PrimaryKey: []*schema.Column{GenerationsColumns[0]},
	}

	TypesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "name", Type: field.TypeString},
	}
	TypesTable = &schema.Table{
		Name:       KindType.Table(),
		Columns:    TypesColumns,
		PrimaryKey: []*schema.Column{TypesColumns[0]},
	}

	StatsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "name", Type: field.TypeString},
	}
	StatsTable = &schema.Table{
		Name:       KindStat.Table(),
		Columns:    StatsColumns,
		PrimaryKey: []*schema.Column{StatsColumns[0]},
	}

	EggGroupsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "name", Type: field.TypeString},
	}
	EggGroupsTable = &schema.Table{
		Name:       KindEggGroup.Table(),
		Columns:    EggGroupsColumns,
		PrimaryKey: []*schema.Column{EggGroupsColumns[0]},
	}

	GrowthRatesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "name", Type: field.TypeString},
		{Name: "formula", Type: field.TypeString, Nullable: true, Size: textSize},
	}
	GrowthRatesTable = &schema.Table{
		Name:       KindGrowthRate.Table(),
		Columns:    GrowthRatesColumns,
		PrimaryKey: []*schema.Column{GrowthRatesColumns[0]},
	}

	AbilitiesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "name", Type: field.TypeString},
		{Name: "effect", Type: field.TypeString, Nullable: true, Size: textSize},
		{Name: "generation_id", Type: field.TypeInt, Nullable: true},
	}
	AbilitiesTable = &schema.Table{
		Name:       KindAbility.Table(),
		Columns:    AbilitiesColumns,
		PrimaryKey: []*schema.Column{AbilitiesColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "abilities_generations_generation",
				Columns:    []*schema.Column{AbilitiesColumns[3]},
				RefColumns: []*schema.Column{GenerationsColumns[0]},
				OnDelete:   schema.SetNull,
			},
		},
	}

	MovesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "name", Type: field.TypeString},
		{Name: "type_id", Type: field.TypeInt, Nullable: true},
		{Name: "power", Type: field.TypeInt, Nullable: true},
		{Name: "pp", Type: field.TypeInt, Nullable: true},
		{Name: "accuracy", Type: field.TypeInt, Nullable: true},
		{Name: "priority", Type: field.TypeInt, Default: 0},
		{Name: "damage_class", Type: field.TypeString, Nullable: true},
		{Name: "effect_chance", Type: field.TypeInt, Nullable: true},
		{Name: "generation_id", Type: field.TypeInt, Nullable: true},
	}
	MovesTable = &schema.Table{
		Name:       KindMove.Table(),
		Columns:    MovesColumns,
		PrimaryKey: []*schema.Column{MovesColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "moves_types_type",
				Columns:    []*schema.Column{MovesColumns[2]},
				RefColumns: []*schema.Column{TypesColumns[0]},
				OnDelete:   schema.SetNull,
			},
			{
				Symbol:     "moves_generations_generation",
				Columns:    []*schema.Column{MovesColumns[9]},
				RefColumns: []*schema.Column{GenerationsColumns[0]},
				OnDelete:   schema.SetNull,
			},
		},
	}

	ItemsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "name", Type: field.TypeString},
		{Name: "cost", Type: field.TypeInt, Default: 0},
		{Name: "category", Type: field.TypeString, Nullable: true},
		{Name: "effect", Type: field.TypeString, Nullable: true, Size: textSize},
		{Name: "sprite_url", Type: field.TypeString, Nullable: true},
	}
	ItemsTable = &schema.Table{
		Name:       KindItem.Table(),
		Columns:    ItemsColumns,
		PrimaryKey: []*schema.Column{ItemsColumns[0]},
	}

	BerriesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "name", Type: field.TypeString},
		{Name: "growth_time", Type: field.TypeInt},
		{Name: "max_harvest", Type: field.TypeInt},
		{Name: "size", Type: field.TypeInt},
		{Name: "smoothness", Type: field.TypeInt},
		{Name: "soil_dryness", Type: field.TypeInt},
		{Name: "firmness", Type: field.TypeString, Nullable: true},
		{Name: "item_id", Type: field.TypeInt, Nullable: true},
	}
	BerriesTable = &schema.Table{
		Name:       KindBerry.Table(),
		Columns:    BerriesColumns,
		PrimaryKey: []*schema.Column{BerriesColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "berries_items_item",
				Columns:    []*schema.Column{BerriesColumns[8]},
				RefColumns: []*schema.Column{ItemsColumns[0]},
				OnDelete:   schema.SetNull,
			},
		},
	}

	PokemonSpeciesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "name", Type: field.TypeString},
		{Name: "order", Type: field.TypeInt},
		{Name: "gender_rate", Type: field.TypeInt},
		{Name: "capture_rate", Type: field.TypeInt},
		{Name: "base_happiness", Type: field.TypeInt, Nullable: true},
		{Name: "is_baby", Type: field.TypeBool, Default: false},
		{Name: "hatch_counter", Type: field.TypeInt, Nullable: true},
		{Name: "has_gender_differences", Type: field.TypeBool, Default: false},
		{Name: "growth_rate_id", Type: field.TypeInt, Nullable: true},
		{Name: "generation_id", Type: field.TypeInt, Nullable: true},
		{Name: "evolves_from_species_id", Type: field.TypeInt, Nullable: true},
		{Name: "parent_species_id", Type: field.TypeInt, Nullable: true},
	}
	PokemonSpeciesTable = &schema.Table{
		Name:       KindSpecies.Table(),
		Columns:    PokemonSpeciesColumns,
		PrimaryKey: []*schema.Column{PokemonSpeciesColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "pokemon_species_growth_rates_growth_rate",
				Columns:    []*schema.Column{PokemonSpeciesColumns[9]},
				RefColumns: []*schema.Column{GrowthRatesColumns[0]},
				OnDelete:   schema.SetNull,
			},
			{
				Symbol:     "pokemon_species_generations_generation",
				Columns:    []*schema.Column{PokemonSpeciesColumns[10]},
				RefColumns: []*schema.Column{GenerationsColumns[0]},
				OnDelete:   schema.SetNull,
			},
			{
				Symbol:     "pokemon_species_pokemon_species_evolves_from",
				Columns:    []*schema.Column{PokemonSpeciesColumns[11]},
				RefColumns: []*schema.Column{PokemonSpeciesColumns[0]},
				OnDelete:   schema.SetNull,
			},
		},
	}

	SpeciesEggGroupsColumns = []*schema.Column{
		{Name: "species_id", Type: field.TypeInt},
		{Name: "egg_group_id", Type: field.TypeInt},
	}
	SpeciesEggGroupsTable = &schema.Table{
		Name:       KindSpeciesEggGroup.Table(),
		Columns:    SpeciesEggGroupsColumns,
		PrimaryKey: []*schema.Column{SpeciesEggGroupsColumns[0], SpeciesEggGroupsColumns[1]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "species_egg_groups_species_id",
				Columns:    []*schema.Column{SpeciesEggGroupsColumns[0]},
				RefColumns: []*schema.Column{PokemonSpeciesColumns[0]},
				OnDelete:   schema.Cascade,
			},
			{
				Symbol:     "species_egg_groups_egg_group_id",
				Columns:    []*schema.Column{SpeciesEggGroupsColumns[1]},
				RefColumns: []*schema.Column{EggGroupsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
	}

	PokemonColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "name", Type: field.TypeString},
		{Name: "species_id", Type: field.TypeInt},
		{Name: "height", Type: field.TypeInt},
		{Name: "weight", Type: field.TypeInt},
		{Name: "base_experience", Type: field.TypeInt, Nullable: true},
		{Name: "order", Type: field.TypeInt},
		{Name: "is_default", Type: field.TypeBool, Default: true},
		{Name: "sprites", Type: field.TypeJSON, Nullable: true},
		{Name: "stats", Type: field.TypeJSON, Nullable: true},
	}
	PokemonTable = &schema.Table{
		Name:       KindPokemon.Table(),
		Columns:    PokemonColumns,
		PrimaryKey: []*schema.Column{PokemonColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "pokemon_pokemon_species_species",
				Columns:    []*schema.Column{PokemonColumns[2]},
				RefColumns: []*schema.Column{PokemonSpeciesColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
	}

	PokemonTypesColumns = []*schema.Column{
		{Name: "pokemon_id", Type: field.TypeInt},
		{Name: "type_id", Type: field.TypeInt},
		{Name: "slot", Type: field.TypeInt},
	}
	PokemonTypesTable = &schema.Table{
		Name:       KindPokemonType.Table(),
		Columns:    PokemonTypesColumns,
		PrimaryKey: []*schema.Column{PokemonTypesColumns[0], PokemonTypesColumns[1]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "pokemon_types_pokemon_id",
				Columns:    []*schema.Column{PokemonTypesColumns[0]},
				RefColumns: []*schema.Column{PokemonColumns[0]},
				OnDelete:   schema.Cascade,
			},
			{
				Symbol:     "pokemon_types_type_id",
				Columns:    []*schema.Column{PokemonTypesColumns[1]},
				RefColumns: []*schema.Column{TypesColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
	}

	PokemonAbilitiesColumns = []*schema.Column{
		{Name: "pokemon_id", Type: field.TypeInt},
		{Name: "ability_id", Type: field.TypeInt},
		{Name: "is_hidden", Type: field.TypeBool, Default: false},
		{Name: "slot", Type: field.TypeInt},
	}
	PokemonAbilitiesTable = &schema.Table{
		Name:       KindPokemonAbility.Table(),
		Columns:    PokemonAbilitiesColumns,
		PrimaryKey: []*schema.Column{PokemonAbilitiesColumns[0], PokemonAbilitiesColumns[1]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "pokemon_abilities_pokemon_id",
				Columns:    []*schema.Column{PokemonAbilitiesColumns[0]},
				RefColumns: []*schema.Column{PokemonColumns[0]},
				OnDelete:   schema.Cascade,
			},
			{
				Symbol:     "pokemon_abilities_ability_id",
				Columns:    []*schema.Column{PokemonAbilitiesColumns[1]},
				RefColumns: []*schema.Column{AbilitiesColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
	}

	PokemonMovesColumns = []*schema.Column{
		{Name: "pokemon_id", Type: field.TypeInt},
		{Name: "move_id", Type: field.TypeInt},
		{Name: "learn_method", Type: field.TypeString},
		{Name: "level_learned_at", Type: field.TypeInt, Nullable: true},
	}
	PokemonMovesTable = &schema.Table{
		Name:       KindPokemonMove.Table(),
		Columns:    PokemonMovesColumns,
		PrimaryKey: []*schema.Column{PokemonMovesColumns[0], PokemonMovesColumns[1]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "pokemon_moves_pokemon_id",
				Columns:    []*schema.Column{PokemonMovesColumns[0]},
				RefColumns: []*schema.Column{PokemonColumns[0]},
				OnDelete:   schema.Cascade,
			},
			{
				Symbol:     "pokemon_moves_move_id",
				Columns:    []*schema.Column{PokemonMovesColumns[1]},
				RefColumns: []*schema.Column{MovesColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
	}

	GymsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "name", Type: field.TypeString, Unique: true},
		{Name: "location", Type: field.TypeString},
		{Name: "leader_name", Type: field.TypeString},
		{Name: "type_specialty", Type: field.TypeString},
		{Name: "badge_name", Type: field.TypeString},
		{Name: "badge_image_url", Type: field.TypeString},
	}
	GymsTable = &schema.Table{
		Name:       KindGym.Table(),
		Columns:    GymsColumns,
		PrimaryKey: []*schema.Column{GymsColumns[0]},
	}

	EliteFourColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "name", Type: field.TypeString, Unique: true},
		{Name: "rank", Type: field.TypeInt},
		{Name: "specialty_type", Type: field.TypeString},
		{Name: "image_url", Type: field.TypeString},
	}
	EliteFourTable = &schema.Table{
		Name:       KindEliteFour.Table(),
		Columns:    EliteFourColumns,
		PrimaryKey: []*schema.Column{EliteFourColumns[0]},
	}

	// Tables holds every table the store manages, parents before children.
	Tables = []*schema.Table{
		GenerationsTable,
		TypesTable,
		StatsTable,
		EggGroupsTable,
		GrowthRatesTable,
		AbilitiesTable,
		MovesTable,
		ItemsTable,
		BerriesTable,
		PokemonSpeciesTable,
		SpeciesEggGroupsTable,
		PokemonTable,
		PokemonTypesTable,
		PokemonAbilitiesTable,
		PokemonMovesTable,
		GymsTable,
		EliteFourTable,
	}
)

func init() {
	AbilitiesTable.ForeignKeys[0].RefTable = GenerationsTable
	MovesTable.ForeignKeys[0].RefTable = TypesTable
	MovesTable.ForeignKeys[1].RefTable = GenerationsTable
	BerriesTable.ForeignKeys[0].RefTable = ItemsTable
	PokemonSpeciesTable.ForeignKeys[0].RefTable = GrowthRatesTable
	PokemonSpeciesTable.ForeignKeys[1].RefTable = GenerationsTable
	PokemonSpeciesTable.ForeignKeys[2].RefTable = PokemonSpeciesTable
	SpeciesEggGroupsTable.ForeignKeys[0].RefTable = PokemonSpeciesTable
	SpeciesEggGroupsTable.ForeignKeys[1].RefTable = EggGroupsTable
	PokemonTable.ForeignKeys[0].RefTable = PokemonSpeciesTable
	PokemonTypesTable.ForeignKeys[0].RefTable = PokemonTable
	PokemonTypesTable.ForeignKeys[1].RefTable = TypesTable
	PokemonAbilitiesTable.ForeignKeys[0].RefTable = PokemonTable
	PokemonAbilitiesTable.ForeignKeys[1].RefTable = AbilitiesTable
	PokemonMovesTable.ForeignKeys[0].RefTable = PokemonTable
	PokemonMovesTable.ForeignKeys[1].RefTable = MovesTable
}
