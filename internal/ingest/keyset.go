package ingest

import (
	"context"

	"github.com/FlagBrew/local-dex/internal/database"
)

// KeySet is the set of source identities already present for one kind.
type KeySet map[int]struct{}

func (k KeySet) Has(id int) bool {
	_, ok := k[id]
	return ok
}

func (k KeySet) Add(ids ...int) {
	for _, id := range ids {
		k[id] = struct{}{}
	}
}

// IDLoader is the store read a KeySet is built from.
type IDLoader interface {
	IDs(ctx context.Context, kind database.Kind) ([]int, error)
}

// LoadKeySet snapshots the identities stored for kind.
func LoadKeySet(ctx context.Context, db IDLoader, kind database.Kind) (KeySet, error) {
	ids, err := db.IDs(ctx, kind)
	if err != nil {
		return nil, err
	}

	set := make(KeySet, len(ids))
	set.Add(ids...)
	return set, nil
}
