package ingest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/FlagBrew/local-dex/internal/database"
	"github.com/FlagBrew/local-dex/internal/models"
)

const unknownLearnMethod = "unknown"

func pokemonStep() Step {
	return detailStepProducing(
		"pokemon",
		EndpointPokemon,
		[]database.Kind{
			database.KindPokemon,
			database.KindPokemonType,
			database.KindPokemonAbility,
			database.KindPokemonMove,
		},
		[]database.Kind{database.KindSpecies, database.KindType, database.KindAbility, database.KindMove},
		(*Pipeline).writePokemon,
	)
}

// writePokemon inserts a variety and its type, ability and move rows. The
// associations share the variety's savepoint, so they land together or not
// at all.
func (p *Pipeline) writePokemon(ctx context.Context, w *ChunkWriter, v models.PokemonPayload) error {
	speciesID, ok := p.resolver.Resolve(database.KindSpecies, v.Species)
	if !ok {
		w.Drop()
		return skipf("species %q of pokemon %q is not stored", v.Species.Name, v.Name)
	}

	stats, err := json.Marshal(v.StatMap())
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}

	tx := w.Tx()
	err = tx.InsertPokemon(ctx, database.Pokemon{
		ID:             v.ID,
		Name:           v.Name,
		SpeciesID:      speciesID,
		Height:         v.Height,
		Weight:         v.Weight,
		BaseExperience: v.BaseExperience,
		Order:          v.Order,
		IsDefault:      v.IsDefault,
		Sprites:        v.Sprites,
		Stats:          stats,
	})
	if err != nil {
		return err
	}
	w.Track(database.KindPokemon, v.ID)

	seenTypes := map[int]bool{}
	for _, t := range v.Types {
		id, ok := p.resolver.Resolve(database.KindType, t.Type)
		if !ok {
			w.Drop()
			continue
		}
		if seenTypes[id] {
			continue
		}
		seenTypes[id] = true

		if err := tx.InsertPokemonType(ctx, database.PokemonType{PokemonID: v.ID, TypeID: id, Slot: t.Slot}); err != nil {
			return err
		}
	}

	seenAbilities := map[int]bool{}
	for _, a := range v.Abilities {
		id, ok := p.resolver.Resolve(database.KindAbility, a.Ability)
		if !ok {
			w.Drop()
			continue
		}
		if seenAbilities[id] {
			continue
		}
		seenAbilities[id] = true

		row := database.PokemonAbility{PokemonID: v.ID, AbilityID: id, IsHidden: a.IsHidden, Slot: a.Slot}
		if err := tx.InsertPokemonAbility(ctx, row); err != nil {
			return err
		}
	}

	seenMoves := map[int]bool{}
	for _, m := range v.Moves {
		id, ok := p.resolver.Resolve(database.KindMove, m.Move)
		if !ok {
			w.Drop()
			continue
		}
		if seenMoves[id] {
			continue
		}
		seenMoves[id] = true

		row := database.PokemonMove{PokemonID: v.ID, MoveID: id, LearnMethod: unknownLearnMethod}
		if len(m.VersionGroupDetails) > 0 {
			d := m.VersionGroupDetails[0]
			row.LearnMethod = d.MoveLearnMethod.Name
			row.LevelLearnedAt = d.LevelLearnedAt
		}
		if err := tx.InsertPokemonMove(ctx, row); err != nil {
			return err
		}
	}

	return nil
}
