package ingest

import (
	"context"

	"github.com/FlagBrew/local-dex/internal/database"
	"github.com/FlagBrew/local-dex/internal/models"
)

func speciesStep() Step {
	return detailStepProducing(
		"species",
		EndpointSpecies,
		[]database.Kind{database.KindSpecies, database.KindSpeciesEggGroup},
		[]database.Kind{database.KindGrowthRate, database.KindGeneration, database.KindEggGroup},
		(*Pipeline).writeSpecies,
	)
}

// writeSpecies inserts the species with its declared parent but without the
// evolution link, which the evolution step sets once the parent is stored.
func (p *Pipeline) writeSpecies(ctx context.Context, w *ChunkWriter, v models.SpeciesPayload) error {
	row := database.Species{
		ID:                   v.ID,
		Name:                 v.Name,
		Order:                v.Order,
		GenderRate:           v.GenderRate,
		CaptureRate:          v.CaptureRate,
		BaseHappiness:        v.BaseHappiness,
		IsBaby:               v.IsBaby,
		HatchCounter:         v.HatchCounter,
		HasGenderDifferences: v.HasGenderDifferences,
		GrowthRateID:         p.ref(w, database.KindGrowthRate, v.GrowthRate),
		GenerationID:         p.ref(w, database.KindGeneration, v.Generation),
		ParentID:             parentOf(v),
	}
	if err := w.Tx().InsertSpecies(ctx, row); err != nil {
		return err
	}
	w.Track(database.KindSpecies, v.ID)

	seen := map[int]bool{}
	for _, eg := range v.EggGroups {
		id, ok := p.resolver.Resolve(database.KindEggGroup, eg)
		if !ok {
			w.Drop()
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true

		if err := w.Tx().InsertSpeciesEggGroup(ctx, database.SpeciesEggGroup{SpeciesID: v.ID, EggGroupID: id}); err != nil {
			return err
		}
	}

	return nil
}

// parentOf is the id of the species v evolves from, or nil for a root.
func parentOf(v models.SpeciesPayload) *int {
	if v.EvolvesFromSpecies == nil {
		return nil
	}
	id, ok := ParseID(v.EvolvesFromSpecies.URL)
	if !ok {
		return nil
	}
	return &id
}

// evolutionStep sets evolves-from links that are declared but still unset,
// reading the declared parents back from the store so no species is fetched
// twice. A link whose parent is not stored stays pending for a later run.
func evolutionStep() Step {
	return Step{
		Name:      "evolution",
		Produces:  []database.Kind{database.KindSpeciesEvolution},
		DependsOn: []database.Kind{database.KindSpecies},
		Run: func(ctx context.Context, p *Pipeline) (Stats, error) {
			pending, err := p.db.PendingEvolutions(ctx)
			if err != nil {
				return Stats{}, err
			}
			return RunItems(ctx, p.runner, database.KindSpeciesEvolution, pending, p.writeEvolution), nil
		},
	}
}

func (p *Pipeline) writeEvolution(ctx context.Context, w *ChunkWriter, l database.EvolutionLink) error {
	if !p.resolver.Has(database.KindSpecies, l.ParentID) {
		w.Drop()
		return skipf("parent %d of species %d is not stored", l.ParentID, l.SpeciesID)
	}

	changed, err := w.Tx().SetEvolvesFrom(ctx, l.SpeciesID, l.ParentID)
	if err != nil {
		return err
	}
	if !changed {
		return skipf("species %d is already linked", l.SpeciesID)
	}
	return nil
}
