package database

import (
	"context"
	stdsql "database/sql"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// Tx is one write transaction. Every insert is a plain INSERT: callers are
// expected to consult the existing key set first, so a duplicate surfaces as
// an error rather than being silently merged.
type Tx struct {
	tx dialect.Tx
	b  *entsql.DialectBuilder
}

func (c *Client) Tx(ctx context.Context) (*Tx, error) {
	tx, err := c.drv.Tx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &Tx{tx: tx, b: c.builder()}, nil
}

func (t *Tx) Commit() error {
	return t.tx.Commit()
}

func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

func (t *Tx) raw(ctx context.Context, query string) error {
	return t.tx.Exec(ctx, query, []any{}, nil)
}

func (t *Tx) exec(ctx context.Context, q entsql.Querier) error {
	query, args := q.Query()
	return t.tx.Exec(ctx, query, args, nil)
}

// Savepoint marks a point inside the transaction that RollbackTo can return
// to without discarding earlier work.
func (t *Tx) Savepoint(ctx context.Context, name string) error {
	return t.raw(ctx, "SAVEPOINT "+name)
}

func (t *Tx) RollbackTo(ctx context.Context, name string) error {
	return t.raw(ctx, "ROLLBACK TO SAVEPOINT "+name)
}

func (t *Tx) Release(ctx context.Context, name string) error {
	return t.raw(ctx, "RELEASE SAVEPOINT "+name)
}

// InsertNamed writes a row of one of the name-only kinds.
func (t *Tx) InsertNamed(ctx context.Context, kind Kind, row Named) error {
	switch kind {
	case KindGeneration, KindType, KindStat, KindEggGroup:
	default:
		return fmt.Errorf("kind %s is not a named lookup", kind)
	}
	return t.exec(ctx, t.b.Insert(kind.Table()).
		Columns("id", "name").
		Values(row.ID, row.Name))
}

func (t *Tx) InsertGrowthRate(ctx context.Context, row GrowthRate) error {
	return t.exec(ctx, t.b.Insert(KindGrowthRate.Table()).
		Columns("id", "name", "formula").
		Values(row.ID, row.Name, nullable(row.Formula)))
}

func (t *Tx) InsertAbility(ctx context.Context, row Ability) error {
	return t.exec(ctx, t.b.Insert(KindAbility.Table()).
		Columns("id", "name", "effect", "generation_id").
		Values(row.ID, row.Name, nullable(row.Effect), nullable(row.GenerationID)))
}

func (t *Tx) InsertMove(ctx context.Context, row Move) error {
	return t.exec(ctx, t.b.Insert(KindMove.Table()).
		Columns("id", "name", "type_id", "power", "pp", "accuracy", "priority", "damage_class", "effect_chance", "generation_id").
		Values(
			row.ID, row.Name, nullable(row.TypeID), nullable(row.Power), nullable(row.PP),
			nullable(row.Accuracy), row.Priority, nullable(row.DamageClass), nullable(row.EffectChance),
			nullable(row.GenerationID),
		))
}

func (t *Tx) InsertItem(ctx context.Context, row Item) error {
	return t.exec(ctx, t.b.Insert(KindItem.Table()).
		Columns("id", "name", "cost", "category", "effect", "sprite_url").
		Values(row.ID, row.Name, row.Cost, nullable(row.Category), nullable(row.Effect), nullable(row.SpriteURL)))
}

func (t *Tx) InsertBerry(ctx context.Context, row Berry) error {
	return t.exec(ctx, t.b.Insert(KindBerry.Table()).
		Columns("id", "name", "growth_time", "max_harvest", "size", "smoothness", "soil_dryness", "firmness", "item_id").
		Values(
			row.ID, row.Name, row.GrowthTime, row.MaxHarvest, row.Size, row.Smoothness,
			row.SoilDryness, nullable(row.Firmness), nullable(row.ItemID),
		))
}

func (t *Tx) InsertSpecies(ctx context.Context, row Species) error {
	return t.exec(ctx, t.b.Insert(KindSpecies.Table()).
		Columns(
			"id", "name", "order", "gender_rate", "capture_rate", "base_happiness", "is_baby",
			"hatch_counter", "has_gender_differences", "growth_rate_id", "generation_id",
			"parent_species_id",
		).
		Values(
			row.ID, row.Name, row.Order, row.GenderRate, row.CaptureRate, nullable(row.BaseHappiness),
			row.IsBaby, nullable(row.HatchCounter), row.HasGenderDifferences, nullable(row.GrowthRateID),
			nullable(row.GenerationID), nullable(row.ParentID),
		))
}

func (t *Tx) InsertSpeciesEggGroup(ctx context.Context, row SpeciesEggGroup) error {
	return t.exec(ctx, t.b.Insert(KindSpeciesEggGroup.Table()).
		Columns("species_id", "egg_group_id").
		Values(row.SpeciesID, row.EggGroupID))
}

func (t *Tx) InsertPokemon(ctx context.Context, row Pokemon) error {
	return t.exec(ctx, t.b.Insert(KindPokemon.Table()).
		Columns("id", "name", "species_id", "height", "weight", "base_experience", "order", "is_default", "sprites", "stats").
		Values(
			row.ID, row.Name, row.SpeciesID, row.Height, row.Weight, nullable(row.BaseExperience),
			row.Order, row.IsDefault, rawJSON(row.Sprites), rawJSON(row.Stats),
		))
}

func (t *Tx) InsertPokemonType(ctx context.Context, row PokemonType) error {
	return t.exec(ctx, t.b.Insert(KindPokemonType.Table()).
		Columns("pokemon_id", "type_id", "slot").
		Values(row.PokemonID, row.TypeID, row.Slot))
}

func (t *Tx) InsertPokemonAbility(ctx context.Context, row PokemonAbility) error {
	return t.exec(ctx, t.b.Insert(KindPokemonAbility.Table()).
		Columns("pokemon_id", "ability_id", "is_hidden", "slot").
		Values(row.PokemonID, row.AbilityID, row.IsHidden, row.Slot))
}

func (t *Tx) InsertPokemonMove(ctx context.Context, row PokemonMove) error {
	return t.exec(ctx, t.b.Insert(KindPokemonMove.Table()).
		Columns("pokemon_id", "move_id", "learn_method", "level_learned_at").
		Values(row.PokemonID, row.MoveID, row.LearnMethod, row.LevelLearnedAt))
}

func (t *Tx) InsertGym(ctx context.Context, row Gym) error {
	return t.exec(ctx, t.b.Insert(KindGym.Table()).
		Columns("name", "location", "leader_name", "type_specialty", "badge_name", "badge_image_url").
		Values(row.Name, row.Location, row.LeaderName, row.TypeSpecialty, row.BadgeName, row.BadgeImageURL))
}

func (t *Tx) InsertEliteFourMember(ctx context.Context, row EliteFourMember) error {
	return t.exec(ctx, t.b.Insert(KindEliteFour.Table()).
		Columns("name", "rank", "specialty_type", "image_url").
		Values(row.Name, row.Rank, row.SpecialtyType, row.ImageURL))
}

// SetEvolvesFrom links a species to its parent. Only an unset link is
// written; the returned bool reports whether a row changed.
func (t *Tx) SetEvolvesFrom(ctx context.Context, speciesID, parentID int) (bool, error) {
	query, args := t.b.Update(KindSpecies.Table()).
		Set("evolves_from_species_id", parentID).
		Where(entsql.And(
			entsql.EQ("id", speciesID),
			entsql.IsNull("evolves_from_species_id"),
		)).
		Query()

	var res stdsql.Result
	if err := t.tx.Exec(ctx, query, args, &res); err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
