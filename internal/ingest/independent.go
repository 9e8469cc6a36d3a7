package ingest

import (
	"context"

	"github.com/FlagBrew/local-dex/internal/database"
	"github.com/FlagBrew/local-dex/internal/models"
)

func (p *Pipeline) writeMove(ctx context.Context, w *ChunkWriter, v models.MovePayload) error {
	row := database.Move{
		ID:           v.ID,
		Name:         v.Name,
		TypeID:       p.ref(w, database.KindType, v.Type),
		Power:        v.Power,
		PP:           v.PP,
		Accuracy:     v.Accuracy,
		Priority:     v.Priority,
		DamageClass:  refName(v.DamageClass),
		EffectChance: v.EffectChance,
		GenerationID: p.ref(w, database.KindGeneration, v.Generation),
	}
	if err := w.Tx().InsertMove(ctx, row); err != nil {
		return err
	}
	w.Track(database.KindMove, v.ID)
	return nil
}

func (p *Pipeline) writeAbility(ctx context.Context, w *ChunkWriter, v models.AbilityPayload) error {
	row := database.Ability{
		ID:           v.ID,
		Name:         v.Name,
		Effect:       models.EnglishEffect(v.EffectEntries),
		GenerationID: p.ref(w, database.KindGeneration, v.Generation),
	}
	if err := w.Tx().InsertAbility(ctx, row); err != nil {
		return err
	}
	w.Track(database.KindAbility, v.ID)
	return nil
}

func (p *Pipeline) writeItem(ctx context.Context, w *ChunkWriter, v models.ItemPayload) error {
	row := database.Item{
		ID:        v.ID,
		Name:      v.Name,
		Cost:      v.Cost,
		Category:  refName(v.Category),
		Effect:    models.EnglishEffect(v.EffectEntries),
		SpriteURL: v.Sprites.Default,
	}
	if err := w.Tx().InsertItem(ctx, row); err != nil {
		return err
	}
	w.Track(database.KindItem, v.ID)
	return nil
}

func (p *Pipeline) writeBerry(ctx context.Context, w *ChunkWriter, v models.BerryPayload) error {
	row := database.Berry{
		ID:          v.ID,
		Name:        v.Name,
		GrowthTime:  v.GrowthTime,
		MaxHarvest:  v.MaxHarvest,
		Size:        v.Size,
		Smoothness:  v.Smoothness,
		SoilDryness: v.SoilDryness,
		Firmness:    refName(v.Firmness),
		ItemID:      p.ref(w, database.KindItem, v.Item),
	}
	if err := w.Tx().InsertBerry(ctx, row); err != nil {
		return err
	}
	w.Track(database.KindBerry, v.ID)
	return nil
}
