package ingest

import (
	"context"

	"github.com/FlagBrew/local-dex/internal/database"
	"github.com/FlagBrew/local-dex/internal/models"
)

// Remote endpoints, relative to the configured base URL.
const (
	EndpointGeneration = "generation"
	EndpointType       = "type"
	EndpointStat       = "stat"
	EndpointEggGroup   = "egg-group"
	EndpointGrowthRate = "growth-rate"
	EndpointMove       = "move"
	EndpointAbility    = "ability"
	EndpointItem       = "item"
	EndpointBerry      = "berry"
	EndpointSpecies    = "pokemon-species"
	EndpointPokemon    = "pokemon"
)

// DefaultPlan is the full ingestion, parents before children.
func DefaultPlan() []Phase {
	return []Phase{
		{
			Name: "static",
			Steps: []Step{
				gymStep(),
				eliteFourStep(),
			},
		},
		{
			Name: "metadata",
			Steps: []Step{
				namedStep("generations", EndpointGeneration, database.KindGeneration),
				namedStep("types", EndpointType, database.KindType),
				namedStep("stats", EndpointStat, database.KindStat),
				namedStep("egg-groups", EndpointEggGroup, database.KindEggGroup),
				detailStep("growth-rates", EndpointGrowthRate, database.KindGrowthRate, nil, (*Pipeline).writeGrowthRate),
			},
		},
		{
			Name: "independent",
			Steps: []Step{
				detailStep("moves", EndpointMove, database.KindMove,
					[]database.Kind{database.KindType, database.KindGeneration}, (*Pipeline).writeMove),
				detailStep("abilities", EndpointAbility, database.KindAbility,
					[]database.Kind{database.KindGeneration}, (*Pipeline).writeAbility),
				detailStep("items", EndpointItem, database.KindItem, nil, (*Pipeline).writeItem),
				detailStep("berries", EndpointBerry, database.KindBerry,
					[]database.Kind{database.KindItem}, (*Pipeline).writeBerry),
			},
		},
		{
			Name: "species",
			Steps: []Step{
				speciesStep(),
				evolutionStep(),
			},
		},
		{
			Name: "pokemon",
			Steps: []Step{
				pokemonStep(),
			},
		},
	}
}

// Listed is one listing entry whose locator carried a usable id.
type Listed struct {
	ID   int
	Name string
	URL  string
}

func (p *Pipeline) list(ctx context.Context, endpoint string) ([]Listed, int, error) {
	resources, err := p.fetcher.List(ctx, endpoint)
	if err != nil {
		return nil, 0, err
	}

	out := make([]Listed, 0, len(resources))
	bad := 0
	for _, r := range resources {
		id, ok := ParseID(r.URL)
		if !ok {
			bad++
			continue
		}
		out = append(out, Listed{ID: id, Name: r.Name, URL: r.URL})
	}
	return out, bad, nil
}

// ref resolves an optional reference, counting it as dropped when it is set
// but not stored.
func (p *Pipeline) ref(w *ChunkWriter, kind database.Kind, ref *models.NamedResource) *int {
	id := p.resolver.Optional(kind, ref)
	if id == nil && ref != nil {
		w.Drop()
	}
	return id
}

func refName(ref *models.NamedResource) *string {
	if ref == nil {
		return nil
	}
	n := ref.Name
	return &n
}

// namedStep ingests a kind whose rows are fully described by its listing.
func namedStep(stepName, endpoint string, kind database.Kind) Step {
	return Step{
		Name:     stepName,
		Produces: []database.Kind{kind},
		Run: func(ctx context.Context, p *Pipeline) (Stats, error) {
			listing, bad, err := p.list(ctx, endpoint)
			if err != nil {
				return Stats{}, err
			}

			set := p.resolver.Set(kind)
			var missing []Listed
			for _, l := range listing {
				if !set.Has(l.ID) {
					missing = append(missing, l)
				}
			}

			stats := RunItems(ctx, p.runner, kind, missing, func(ctx context.Context, w *ChunkWriter, l Listed) error {
				if err := w.Tx().InsertNamed(ctx, kind, database.Named{ID: l.ID, Name: l.Name}); err != nil {
					return err
				}
				w.Track(kind, l.ID)
				return nil
			})
			stats.Targets = len(listing) + bad
			stats.Present = len(listing) - len(missing)
			stats.Skipped += bad
			return stats, nil
		},
	}
}

// detailStep ingests a kind that needs one detail fetch per listed resource.
func detailStep[T any](
	stepName, endpoint string,
	kind database.Kind,
	deps []database.Kind,
	write func(p *Pipeline, ctx context.Context, w *ChunkWriter, v T) error,
) Step {
	return detailStepProducing(stepName, endpoint, []database.Kind{kind}, deps, write)
}

func detailStepProducing[T any](
	stepName, endpoint string,
	produces []database.Kind,
	deps []database.Kind,
	write func(p *Pipeline, ctx context.Context, w *ChunkWriter, v T) error,
) Step {
	kind := produces[0]
	return Step{
		Name:      stepName,
		Produces:  produces,
		DependsOn: deps,
		Run: func(ctx context.Context, p *Pipeline) (Stats, error) {
			listing, bad, err := p.list(ctx, endpoint)
			if err != nil {
				return Stats{}, err
			}
			urls, present := p.pending(kind, listing)

			stats := RunChunks(ctx, p.runner, kind, urls, func(ctx context.Context, w *ChunkWriter, v T) error {
				return write(p, ctx, w, v)
			})
			stats.Targets = len(listing) + bad
			stats.Present = present
			stats.Skipped += bad
			return stats, nil
		},
	}
}

func (p *Pipeline) writeGrowthRate(ctx context.Context, w *ChunkWriter, v models.GrowthRatePayload) error {
	row := database.GrowthRate{ID: v.ID, Name: v.Name}
	if v.Formula != "" {
		row.Formula = &v.Formula
	}
	if err := w.Tx().InsertGrowthRate(ctx, row); err != nil {
		return err
	}
	w.Track(database.KindGrowthRate, v.ID)
	return nil
}
