package dex

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/FlagBrew/local-dex/internal/database"
	"github.com/FlagBrew/local-dex/internal/database/dbtest"
	"github.com/go-chi/chi/v5"
)

func ptr[T any](v T) *T { return &v }

func seed(t *testing.T) *database.Client {
	t.Helper()
	ctx := context.Background()
	db := dbtest.New(t)

	tx, err := db.Tx(ctx)
	if err != nil {
		t.Fatal(err)
	}
	steps := []error{
		tx.InsertGrowthRate(ctx, database.GrowthRate{ID: 4, Name: "medium-slow"}),
		tx.InsertNamed(ctx, database.KindType, database.Named{ID: 12, Name: "grass"}),
		tx.InsertAbility(ctx, database.Ability{ID: 65, Name: "overgrow"}),
		tx.InsertMove(ctx, database.Move{ID: 22, Name: "vine-whip"}),
		tx.InsertSpecies(ctx, database.Species{ID: 1, Name: "bulbasaur", GrowthRateID: ptr(4)}),
		tx.InsertSpecies(ctx, database.Species{ID: 2, Name: "ivysaur"}),
	}
	for i := 1; i <= 3; i++ {
		speciesID := 1
		if i > 1 {
			speciesID = 2
		}
		steps = append(steps, tx.InsertPokemon(ctx, database.Pokemon{
			ID: i, Name: []string{"", "bulbasaur", "ivysaur", "ivysaur-mega"}[i], SpeciesID: speciesID,
			Stats: []byte(`{"hp":45}`),
		}))
	}
	steps = append(steps,
		tx.InsertPokemonType(ctx, database.PokemonType{PokemonID: 1, TypeID: 12, Slot: 1}),
		tx.InsertPokemonAbility(ctx, database.PokemonAbility{PokemonID: 1, AbilityID: 65, Slot: 1}),
		tx.InsertPokemonMove(ctx, database.PokemonMove{PokemonID: 1, MoveID: 22, LearnMethod: "level-up", LevelLearnedAt: 3}),
	)
	for i, err := range steps {
		if err != nil {
			t.Fatalf("seed step %d: %v", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		t.Fatal(err)
	}
	return db
}

func get(t *testing.T, db *database.Client, path string, out any) int {
	t.Helper()
	return getWith(t, NewHandler(), db, path, out)
}

func getWith(t *testing.T, h *Handler, db *database.Client, path string, out any) int {
	t.Helper()

	r := chi.NewRouter()
	r.Route("/dex", h.Route)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req = req.WithContext(database.NewContext(req.Context(), db))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if out != nil && rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decode %s: %v", rec.Body.String(), err)
		}
	}
	return rec.Code
}

func TestListPaginates(t *testing.T) {
	db := seed(t)

	var resp pokemonListResponse
	if code := get(t, db, "/dex/pokemon?page=2&amount=2", &resp); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if resp.Total != 3 || resp.Pages != 2 || resp.Page != 2 {
		t.Fatalf("unexpected paging %+v", resp)
	}
	if len(resp.Pokemon) != 1 || resp.Pokemon[0].ID != 3 {
		t.Fatalf("unexpected page contents %+v", resp.Pokemon)
	}
}

func TestGetPokemon(t *testing.T) {
	db := seed(t)

	var resp pokemonResponse
	if code := get(t, db, "/dex/pokemon/1", &resp); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if resp.Species != "bulbasaur" || resp.GrowthRate != "medium-slow" {
		t.Fatalf("unexpected pokemon %+v", resp)
	}
	if len(resp.Types) != 1 || resp.Types[0] != "grass" || len(resp.Abilities) != 1 {
		t.Fatalf("unexpected associations %+v", resp)
	}

	// ivysaur has no growth rate and falls back to the default curve.
	if code := get(t, db, "/dex/pokemon/2", &resp); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if resp.GrowthRate != "medium-fast" {
		t.Fatalf("expected default curve, got %q", resp.GrowthRate)
	}
}

func TestGetPokemonErrors(t *testing.T) {
	db := seed(t)

	if code := get(t, db, "/dex/pokemon/404", nil); code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
	if code := get(t, db, "/dex/pokemon/abc", nil); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestMoves(t *testing.T) {
	db := seed(t)

	var moves []pokemonMove
	if code := get(t, db, "/dex/pokemon/1/moves", &moves); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if len(moves) != 1 || moves[0].Name != "vine-whip" || moves[0].LevelLearnedAt != 3 {
		t.Fatalf("unexpected moves %+v", moves)
	}
}

func TestEncounter(t *testing.T) {
	db := seed(t)

	tests := []struct {
		name   string
		drawn  int
		wantID int
	}{
		{name: "stored pokemon", drawn: 1, wantID: 2},
		{name: "falls back to the first entry", drawn: 150, wantID: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var bound int
			h := &Handler{pick: func(n int) int {
				bound = n
				return tt.drawn
			}}

			var resp pokemonResponse
			if code := getWith(t, h, db, "/dex/encounter", &resp); code != http.StatusOK {
				t.Fatalf("status %d", code)
			}
			if bound != encounterPool {
				t.Fatalf("drew from %d entries, want %d", bound, encounterPool)
			}
			if resp.ID != tt.wantID {
				t.Fatalf("got pokemon %d, want %d", resp.ID, tt.wantID)
			}
		})
	}
}

func TestEncounterEmptyStore(t *testing.T) {
	h := &Handler{pick: func(int) int { return 24 }}
	if code := getWith(t, h, dbtest.New(t), "/dex/encounter", nil); code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
}
