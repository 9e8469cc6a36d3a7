package database

import (
	"context"
	stdsql "database/sql"
	"encoding/json"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var ErrNotFound = errors.New("not found")

func (c *Client) query(ctx context.Context, q entsql.Querier, scan func(rows *entsql.Rows) error) error {
	query, args := q.Query()
	rows := &entsql.Rows{}
	if err := c.drv.Query(ctx, query, args, rows); err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// IDs returns every primary key currently stored for kind.
func (c *Client) IDs(ctx context.Context, kind Kind) ([]int, error) {
	if !kind.Keyed() {
		return nil, fmt.Errorf("load %s ids: kind has no id column", kind)
	}
	b := c.builder()
	var ids []int
	err := c.query(ctx, b.Select("id").From(b.Table(kind.Table())), func(rows *entsql.Rows) error {
		var id int
		if err := rows.Scan(&id); err != nil {
			return err
		}
		ids = append(ids, id)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load %s ids: %w", kind, err)
	}
	return ids, nil
}

// Names returns every name stored for kind.
func (c *Client) Names(ctx context.Context, kind Kind) ([]string, error) {
	b := c.builder()
	var names []string
	err := c.query(ctx, b.Select("name").From(b.Table(kind.Table())), func(rows *entsql.Rows) error {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		names = append(names, name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load %s names: %w", kind, err)
	}
	return names, nil
}

func (c *Client) Count(ctx context.Context, kind Kind) (int, error) {
	b := c.builder()
	var n int
	err := c.query(ctx, b.Select(entsql.Count("*")).From(b.Table(kind.Table())), func(rows *entsql.Rows) error {
		return rows.Scan(&n)
	})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", kind, err)
	}
	return n, nil
}

// EvolutionLink is a declared parent that is not yet set as the evolves-from
// link of its species.
type EvolutionLink struct {
	SpeciesID int
	ParentID  int
}

// PendingEvolutions returns the species whose declared parent is not linked
// yet, whether or not the parent is stored.
func (c *Client) PendingEvolutions(ctx context.Context) ([]EvolutionLink, error) {
	b := c.builder()
	q := b.Select("id", "parent_species_id").
		From(b.Table(KindSpecies.Table())).
		Where(entsql.And(
			entsql.IsNull("evolves_from_species_id"),
			entsql.NotNull("parent_species_id"),
		)).
		OrderBy("id")

	var out []EvolutionLink
	err := c.query(ctx, q, func(rows *entsql.Rows) error {
		var l EvolutionLink
		if err := rows.Scan(&l.SpeciesID, &l.ParentID); err != nil {
			return err
		}
		out = append(out, l)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load pending evolutions: %w", err)
	}
	return out, nil
}

// PokemonSummary is the listing view of a Pokemon.
type PokemonSummary struct {
	ID        int
	Name      string
	SpeciesID int
}

func (c *Client) ListPokemon(ctx context.Context, limit, offset int) ([]PokemonSummary, error) {
	b := c.builder()
	q := b.Select("id", "name", "species_id").
		From(b.Table(KindPokemon.Table())).
		OrderBy("id").
		Limit(limit).
		Offset(offset)

	var out []PokemonSummary
	err := c.query(ctx, q, func(rows *entsql.Rows) error {
		var p PokemonSummary
		if err := rows.Scan(&p.ID, &p.Name, &p.SpeciesID); err != nil {
			return err
		}
		out = append(out, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list pokemon: %w", err)
	}
	return out, nil
}

// PokemonDetail joins a Pokemon with the species level data a client needs
// to level it.
type PokemonDetail struct {
	Pokemon
	SpeciesName string
	GrowthRate  *string
	EvolvesFrom *int
}

func (c *Client) GetPokemon(ctx context.Context, id int) (*PokemonDetail, error) {
	b := c.builder()
	p := b.Table(KindPokemon.Table()).As("p")
	s := b.Table(KindSpecies.Table()).As("s")
	g := b.Table(KindGrowthRate.Table()).As("g")
	q := b.Select(
		p.C("id"), p.C("name"), p.C("species_id"), p.C("height"), p.C("weight"),
		p.C("base_experience"), p.C("order"), p.C("is_default"), p.C("sprites"), p.C("stats"),
		s.C("name"), g.C("name"), s.C("evolves_from_species_id"),
	).
		From(p).
		Join(s).On(p.C("species_id"), s.C("id")).
		LeftJoin(g).On(s.C("growth_rate_id"), g.C("id")).
		Where(entsql.EQ(p.C("id"), id))

	var (
		out     *PokemonDetail
		baseExp stdsql.NullInt64
		sprites stdsql.NullString
		stats   stdsql.NullString
		growth  stdsql.NullString
		parent  stdsql.NullInt64
	)
	err := c.query(ctx, q, func(rows *entsql.Rows) error {
		d := &PokemonDetail{}
		if err := rows.Scan(
			&d.ID, &d.Name, &d.SpeciesID, &d.Height, &d.Weight,
			&baseExp, &d.Order, &d.IsDefault, &sprites, &stats,
			&d.SpeciesName, &growth, &parent,
		); err != nil {
			return err
		}
		if baseExp.Valid {
			v := int(baseExp.Int64)
			d.BaseExperience = &v
		}
		if sprites.Valid {
			d.Sprites = json.RawMessage(sprites.String)
		}
		if stats.Valid {
			d.Stats = json.RawMessage(stats.String)
		}
		if growth.Valid {
			d.GrowthRate = &growth.String
		}
		if parent.Valid {
			v := int(parent.Int64)
			d.EvolvesFrom = &v
		}
		out = d
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get pokemon %d: %w", id, err)
	}
	if out == nil {
		return nil, ErrNotFound
	}
	return out, nil
}

type TypeRef struct {
	Name string
	Slot int
}

func (c *Client) PokemonTypes(ctx context.Context, pokemonID int) ([]TypeRef, error) {
	b := c.builder()
	pt := b.Table(KindPokemonType.Table()).As("pt")
	t := b.Table(KindType.Table()).As("t")
	q := b.Select(t.C("name"), pt.C("slot")).
		From(pt).
		Join(t).On(pt.C("type_id"), t.C("id")).
		Where(entsql.EQ(pt.C("pokemon_id"), pokemonID)).
		OrderBy(pt.C("slot"))

	var out []TypeRef
	err := c.query(ctx, q, func(rows *entsql.Rows) error {
		var r TypeRef
		if err := rows.Scan(&r.Name, &r.Slot); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load types of pokemon %d: %w", pokemonID, err)
	}
	return out, nil
}

type AbilityRef struct {
	Name     string
	IsHidden bool
	Slot     int
}

func (c *Client) PokemonAbilities(ctx context.Context, pokemonID int) ([]AbilityRef, error) {
	b := c.builder()
	pa := b.Table(KindPokemonAbility.Table()).As("pa")
	a := b.Table(KindAbility.Table()).As("a")
	q := b.Select(a.C("name"), pa.C("is_hidden"), pa.C("slot")).
		From(pa).
		Join(a).On(pa.C("ability_id"), a.C("id")).
		Where(entsql.EQ(pa.C("pokemon_id"), pokemonID)).
		OrderBy(pa.C("slot"))

	var out []AbilityRef
	err := c.query(ctx, q, func(rows *entsql.Rows) error {
		var r AbilityRef
		if err := rows.Scan(&r.Name, &r.IsHidden, &r.Slot); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load abilities of pokemon %d: %w", pokemonID, err)
	}
	return out, nil
}

type MoveRef struct {
	ID             int
	Name           string
	LearnMethod    string
	LevelLearnedAt int
}

// PokemonMoves lists the moves a Pokemon learns, level-up moves first in
// learn order.
func (c *Client) PokemonMoves(ctx context.Context, pokemonID int) ([]MoveRef, error) {
	b := c.builder()
	pm := b.Table(KindPokemonMove.Table()).As("pm")
	m := b.Table(KindMove.Table()).As("m")
	q := b.Select(m.C("id"), m.C("name"), pm.C("learn_method"), pm.C("level_learned_at")).
		From(pm).
		Join(m).On(pm.C("move_id"), m.C("id")).
		Where(entsql.EQ(pm.C("pokemon_id"), pokemonID)).
		OrderBy(pm.C("learn_method"), pm.C("level_learned_at"), m.C("id"))

	var out []MoveRef
	err := c.query(ctx, q, func(rows *entsql.Rows) error {
		var (
			r     MoveRef
			level stdsql.NullInt64
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.LearnMethod, &level); err != nil {
			return err
		}
		r.LevelLearnedAt = int(level.Int64)
		out = append(out, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load moves of pokemon %d: %w", pokemonID, err)
	}
	return out, nil
}

func (c *Client) ListGyms(ctx context.Context) ([]Gym, error) {
	b := c.builder()
	q := b.Select("id", "name", "location", "leader_name", "type_specialty", "badge_name", "badge_image_url").
		From(b.Table(KindGym.Table())).
		OrderBy("id")

	var out []Gym
	err := c.query(ctx, q, func(rows *entsql.Rows) error {
		var g Gym
		if err := rows.Scan(&g.ID, &g.Name, &g.Location, &g.LeaderName, &g.TypeSpecialty, &g.BadgeName, &g.BadgeImageURL); err != nil {
			return err
		}
		out = append(out, g)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list gyms: %w", err)
	}
	return out, nil
}

func (c *Client) ListEliteFour(ctx context.Context) ([]EliteFourMember, error) {
	b := c.builder()
	q := b.Select("id", "name", "rank", "specialty_type", "image_url").
		From(b.Table(KindEliteFour.Table())).
		OrderBy("rank")

	var out []EliteFourMember
	err := c.query(ctx, q, func(rows *entsql.Rows) error {
		var m EliteFourMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Rank, &m.SpecialtyType, &m.ImageURL); err != nil {
			return err
		}
		out = append(out, m)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list elite four: %w", err)
	}
	return out, nil
}

// ListItems returns the stored items ordered by id, optionally only those of
// one category.
func (c *Client) ListItems(ctx context.Context, category string) ([]Item, error) {
	b := c.builder()
	q := b.Select("id", "name", "cost", "category", "effect", "sprite_url").
		From(b.Table(KindItem.Table())).
		OrderBy("id")
	if category != "" {
		q.Where(entsql.EQ("category", category))
	}

	var out []Item
	err := c.query(ctx, q, func(rows *entsql.Rows) error {
		var (
			it               Item
			cat, eff, sprite stdsql.NullString
		)
		if err := rows.Scan(&it.ID, &it.Name, &it.Cost, &cat, &eff, &sprite); err != nil {
			return err
		}
		it.Category = nullString(cat)
		it.Effect = nullString(eff)
		it.SpriteURL = nullString(sprite)
		out = append(out, it)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return out, nil
}

func nullString(v stdsql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}
