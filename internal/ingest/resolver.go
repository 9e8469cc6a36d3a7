package ingest

import (
	"context"
	"strconv"
	"strings"

	"github.com/FlagBrew/local-dex/internal/database"
	"github.com/FlagBrew/local-dex/internal/models"
)

// ParseID extracts the trailing numeric segment of a locator such as
// "https://pokeapi.co/api/v2/type/12/".
func ParseID(locator string) (int, bool) {
	locator = strings.TrimRight(locator, "/")
	i := strings.LastIndexByte(locator, '/')
	if i < 0 {
		return 0, false
	}

	id, err := strconv.Atoi(locator[i+1:])
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Resolver answers whether a reference points at a row that is already
// committed locally.
type Resolver struct {
	sets map[database.Kind]KeySet
}

func NewResolver() *Resolver {
	return &Resolver{sets: map[database.Kind]KeySet{}}
}

// Load replaces the key sets of kinds with a fresh snapshot from db.
func (r *Resolver) Load(ctx context.Context, db IDLoader, kinds ...database.Kind) error {
	for _, kind := range kinds {
		set, err := LoadKeySet(ctx, db, kind)
		if err != nil {
			return err
		}
		r.sets[kind] = set
	}
	return nil
}

// Set returns the key set of kind, creating an empty one if none was loaded.
func (r *Resolver) Set(kind database.Kind) KeySet {
	set, ok := r.sets[kind]
	if !ok {
		set = KeySet{}
		r.sets[kind] = set
	}
	return set
}

func (r *Resolver) Has(kind database.Kind, id int) bool {
	return r.Set(kind).Has(id)
}

// Resolve maps ref to a committed id of kind.
func (r *Resolver) Resolve(kind database.Kind, ref models.NamedResource) (int, bool) {
	id, ok := ParseID(ref.URL)
	if !ok || !r.Has(kind, id) {
		return 0, false
	}
	return id, true
}

// Optional is Resolve for nullable columns: nil when ref is absent or
// unresolvable.
func (r *Resolver) Optional(kind database.Kind, ref *models.NamedResource) *int {
	if ref == nil {
		return nil
	}
	id, ok := r.Resolve(kind, *ref)
	if !ok {
		return nil
	}
	return &id
}
