// Package dbtest opens throwaway sqlite stores for tests.
package dbtest

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/FlagBrew/local-dex/internal/database"
	"github.com/FlagBrew/local-dex/internal/models"
)

// New returns a migrated store backed by a file in t's temp dir.
func New(tb testing.TB) *database.Client {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "dex.db")
	cfg := &models.DatabaseConfig{
		DBType:           "sqlite",
		ConnectionString: fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path),
	}

	db, err := database.Open(context.Background(), cfg)
	if err != nil {
		tb.Fatalf("open store: %v", err)
	}
	tb.Cleanup(func() { _ = db.Close() })

	if err := db.CreateSchema(context.Background()); err != nil {
		tb.Fatalf("create schema: %v", err)
	}
	return db
}

// EvolutionLinks maps every linked species id to its parent species id.
func EvolutionLinks(tb testing.TB, db *database.Client) map[int]int {
	tb.Helper()

	rows, err := db.DB().Query("SELECT id, evolves_from_species_id FROM pokemon_species WHERE evolves_from_species_id IS NOT NULL")
	if err != nil {
		tb.Fatalf("load evolution links: %v", err)
	}
	defer rows.Close()

	links := map[int]int{}
	for rows.Next() {
		var id, parent int
		if err := rows.Scan(&id, &parent); err != nil {
			tb.Fatalf("scan evolution link: %v", err)
		}
		links[id] = parent
	}
	if err := rows.Err(); err != nil {
		tb.Fatalf("load evolution links: %v", err)
	}
	return links
}
