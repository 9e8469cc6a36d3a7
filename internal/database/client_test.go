package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/FlagBrew/local-dex/internal/database"
	"github.com/FlagBrew/local-dex/internal/database/dbtest"
	"github.com/FlagBrew/local-dex/internal/models"
)

func ptr[T any](v T) *T { return &v }

func TestCreateSchemaIsRepeatable(t *testing.T) {
	db := dbtest.New(t)
	if err := db.CreateSchema(context.Background()); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

func TestContextRoundTrip(t *testing.T) {
	db := dbtest.New(t)
	ctx := database.NewContext(context.Background(), db)
	if database.FromContext(ctx) != db {
		t.Fatal("client not carried by context")
	}
	if database.FromContext(context.Background()) != nil {
		t.Fatal("expected nil client from empty context")
	}
}

func TestOpenUnsupported(t *testing.T) {
	_, err := database.Open(context.Background(), &models.DatabaseConfig{DBType: "oracle"})
	if err == nil {
		t.Fatal("expected error for unsupported database type")
	}
}

func seedSpecies(t *testing.T, db *database.Client) {
	t.Helper()
	ctx := context.Background()

	tx, err := db.Tx(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := tx.InsertNamed(ctx, database.KindGeneration, database.Named{ID: 1, Name: "generation-i"}); err != nil {
		t.Fatal(err)
	}
	if err := tx.InsertGrowthRate(ctx, database.GrowthRate{ID: 4, Name: "medium-slow", Formula: ptr("x")}); err != nil {
		t.Fatal(err)
	}
	for _, s := range []database.Species{
		{ID: 1, Name: "bulbasaur", GrowthRateID: ptr(4), GenerationID: ptr(1)},
		{ID: 2, Name: "ivysaur", GrowthRateID: ptr(4), GenerationID: ptr(1), ParentID: ptr(1)},
		{ID: 3, Name: "venusaur", ParentID: ptr(2)},
		{ID: 4, Name: "glitch", ParentID: ptr(999)},
	} {
		if err := tx.InsertSpecies(ctx, s); err != nil {
			t.Fatal(err)
		}
	}
	if err := tx.Commit(); err != nil {
		t.Fatal(err)
	}
}

func TestInsertAndReadBack(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	seedSpecies(t, db)

	tx, err := db.Tx(ctx)
	if err != nil {
		t.Fatal(err)
	}
	steps := []error{
		tx.InsertNamed(ctx, database.KindType, database.Named{ID: 12, Name: "grass"}),
		tx.InsertNamed(ctx, database.KindType, database.Named{ID: 4, Name: "poison"}),
		tx.InsertAbility(ctx, database.Ability{ID: 65, Name: "overgrow", GenerationID: ptr(1)}),
		tx.InsertMove(ctx, database.Move{ID: 22, Name: "vine-whip", TypeID: ptr(12), Power: ptr(45)}),
		tx.InsertPokemon(ctx, database.Pokemon{
			ID: 1, Name: "bulbasaur", SpeciesID: 1, Height: 7, Weight: 69, BaseExperience: ptr(64),
			Order: 1, IsDefault: true, Sprites: []byte(`{"front_default":"x"}`), Stats: []byte(`{"hp":45}`),
		}),
		tx.InsertPokemonType(ctx, database.PokemonType{PokemonID: 1, TypeID: 4, Slot: 2}),
		tx.InsertPokemonType(ctx, database.PokemonType{PokemonID: 1, TypeID: 12, Slot: 1}),
		tx.InsertPokemonAbility(ctx, database.PokemonAbility{PokemonID: 1, AbilityID: 65, Slot: 1}),
		tx.InsertPokemonMove(ctx, database.PokemonMove{PokemonID: 1, MoveID: 22, LearnMethod: "level-up", LevelLearnedAt: 3}),
	}
	for i, err := range steps {
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		t.Fatal(err)
	}

	p, err := db.GetPokemon(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if p.SpeciesName != "bulbasaur" || p.GrowthRate == nil || *p.GrowthRate != "medium-slow" {
		t.Fatalf("unexpected detail: %+v", p)
	}
	if p.BaseExperience == nil || *p.BaseExperience != 64 || !p.IsDefault {
		t.Fatalf("unexpected pokemon columns: %+v", p.Pokemon)
	}

	types, err := db.PokemonTypes(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(types) != 2 || types[0].Name != "grass" || types[1].Name != "poison" {
		t.Fatalf("types not ordered by slot: %+v", types)
	}

	moves, err := db.PokemonMoves(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(moves) != 1 || moves[0].Name != "vine-whip" || moves[0].LevelLearnedAt != 3 {
		t.Fatalf("unexpected moves: %+v", moves)
	}

	if _, err := db.GetPokemon(ctx, 999); !errors.Is(err, database.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSavepointIsolatesFailure(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	tx, err := db.Tx(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := tx.InsertNamed(ctx, database.KindType, database.Named{ID: 1, Name: "normal"}); err != nil {
		t.Fatal(err)
	}

	if err := tx.Savepoint(ctx, "item_1"); err != nil {
		t.Fatal(err)
	}
	if err := tx.InsertNamed(ctx, database.KindType, database.Named{ID: 2, Name: "fighting"}); err != nil {
		t.Fatal(err)
	}
	// duplicate key
	if err := tx.InsertNamed(ctx, database.KindType, database.Named{ID: 1, Name: "normal"}); err == nil {
		t.Fatal("expected duplicate insert to fail")
	}
	if err := tx.RollbackTo(ctx, "item_1"); err != nil {
		t.Fatal(err)
	}
	if err := tx.Release(ctx, "item_1"); err != nil {
		t.Fatal(err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatal(err)
	}

	ids, err := db.IDs(ctx, database.KindType)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("expected only id 1 to survive, got %v", ids)
	}
}

func TestSetEvolvesFromOnlyFillsNull(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	seedSpecies(t, db)

	tx, err := db.Tx(ctx)
	if err != nil {
		t.Fatal(err)
	}
	changed, err := tx.SetEvolvesFrom(ctx, 2, 1)
	if err != nil || !changed {
		t.Fatalf("first link: changed=%v err=%v", changed, err)
	}
	changed, err = tx.SetEvolvesFrom(ctx, 2, 2)
	if err != nil || changed {
		t.Fatalf("second link should be a no-op: changed=%v err=%v", changed, err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatal(err)
	}

	links := dbtest.EvolutionLinks(t, db)
	if len(links) != 1 || links[2] != 1 {
		t.Fatalf("unexpected links: %v", links)
	}

	pending, err := db.PendingEvolutions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []database.EvolutionLink{{SpeciesID: 3, ParentID: 2}, {SpeciesID: 4, ParentID: 999}}
	if len(pending) != len(want) {
		t.Fatalf("unexpected pending evolutions: %+v", pending)
	}
	for i := range want {
		if pending[i] != want[i] {
			t.Fatalf("pending[%d] = %+v, want %+v", i, pending[i], want[i])
		}
	}
}

func TestIDsRejectsUnkeyedKinds(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	for _, kind := range []database.Kind{
		database.KindSpeciesEvolution, database.KindSpeciesEggGroup, database.KindPokemonType,
		database.KindPokemonAbility, database.KindPokemonMove,
	} {
		if kind.Keyed() {
			t.Errorf("%s should not be keyed", kind)
		}
		if _, err := db.IDs(ctx, kind); err == nil {
			t.Errorf("%s: expected an error loading ids", kind)
		}
	}

	for _, kind := range []database.Kind{database.KindSpecies, database.KindPokemon, database.KindGym} {
		if !kind.Keyed() {
			t.Errorf("%s should be keyed", kind)
		}
		if _, err := db.IDs(ctx, kind); err != nil {
			t.Errorf("%s: %v", kind, err)
		}
	}
}

func TestListItems(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	tx, err := db.Tx(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, it := range []database.Item{
		{ID: 4, Name: "poke-ball", Cost: 200, Category: ptr("standard-balls"), SpriteURL: ptr("poke-ball.png")},
		{ID: 126, Name: "cheri-berry", Cost: 80},
	} {
		if err := tx.InsertItem(ctx, it); err != nil {
			t.Fatal(err)
		}
	}
	if err := tx.Commit(); err != nil {
		t.Fatal(err)
	}

	items, err := db.ListItems(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[0].Name != "poke-ball" || items[1].Category != nil {
		t.Fatalf("unexpected items: %+v", items)
	}
	if items[0].SpriteURL == nil || *items[0].SpriteURL != "poke-ball.png" {
		t.Fatalf("sprite not read back: %+v", items[0])
	}

	balls, err := db.ListItems(ctx, "standard-balls")
	if err != nil {
		t.Fatal(err)
	}
	if len(balls) != 1 || balls[0].ID != 4 {
		t.Fatalf("unexpected filtered items: %+v", balls)
	}
}

func TestInsertNamedRejectsOtherKinds(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	tx, err := db.Tx(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer tx.Rollback()

	if err := tx.InsertNamed(ctx, database.KindMove, database.Named{ID: 1, Name: "pound"}); err == nil {
		t.Fatal("expected error for non-lookup kind")
	}
}

func TestWorldFixturesOrdering(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	tx, err := db.Tx(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range []database.EliteFourMember{
		{Name: "Lance", Rank: 4, SpecialtyType: "dragon"},
		{Name: "Lorelei", Rank: 1, SpecialtyType: "ice"},
	} {
		if err := tx.InsertEliteFourMember(ctx, m); err != nil {
			t.Fatal(err)
		}
	}
	if err := tx.Commit(); err != nil {
		t.Fatal(err)
	}

	members, err := db.ListEliteFour(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 2 || members[0].Name != "Lorelei" || members[0].ID == 0 {
		t.Fatalf("unexpected order: %+v", members)
	}

	n, err := db.Count(ctx, database.KindEliteFour)
	if err != nil || n != 2 {
		t.Fatalf("count=%d err=%v", n, err)
	}
}
