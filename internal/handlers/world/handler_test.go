package world

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

func TestEliteFourOrderedByRank(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	tx, err := db.Tx(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range []database.EliteFourMember{
		{Name: "Blue (Champion)", Rank: 5},
		{Name: "Bruno", Rank: 2},
		{Name: "Lorelei", Rank: 1},
	} {
		if err := tx.InsertEliteFourMember(ctx, m); err != nil {
			t.Fatal(err)
		}
	}
	if err := tx.InsertGym(ctx, database.Gym{Name: "Pewter Gym", LeaderName: "Brock"}); err != nil {
		t.Fatal(err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatal(err)
	}

	r := chi.NewRouter()
	r.Route("/world", NewHandler().Route)

	req := httptest.NewRequest(http.MethodGet, "/world/elite-four", nil)
	req = req.WithContext(database.NewContext(req.Context(), db))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var members []eliteFourMember
	if err := json.Unmarshal(rec.Body.Bytes(), &members); err != nil {
		t.Fatal(err)
	}
	if len(members) != 3 || members[0].Name != "Lorelei" || members[2].Rank != 5 {
		t.Fatalf("unexpected order %+v", members)
	}

	req = httptest.NewRequest(http.MethodGet, "/world/gyms", nil)
	req = req.WithContext(database.NewContext(req.Context(), db))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var gyms []gym
	if err := json.Unmarshal(rec.Body.Bytes(), &gyms); err != nil {
		t.Fatal(err)
	}
	if len(gyms) != 1 || gyms[0].LeaderName != "Brock" {
		t.Fatalf("unexpected gyms %+v", gyms)
	}
}

func TestMissingStore(t *testing.T) {
	r := chi.NewRouter()
	r.Route("/world", NewHandler().Route)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/world/gyms", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 without a store, got %d", rec.Code)
	}
}
