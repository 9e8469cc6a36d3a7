package dex

import (
	"encoding/json"
	"errors"
	"math"
	"math/rand/v2"
	"net/http"
	"strconv"

	"github.com/FlagBrew/local-dex/internal/database"
	"github.com/FlagBrew/local-dex/internal/leveling"
	"github.com/apex/log"
	"github.com/go-chi/chi/v5"
	"github.com/lrstanley/chix"
)

// Wild encounters are drawn from the first generation's national dex, with
// the first entry as the fallback when the drawn one isn't stored.
const (
	encounterPool     = 151
	encounterFallback = 1
)

type Handler struct {
	// pick returns an int in [0, n).
	pick func(n int) int
}

func NewHandler() *Handler {
	return &Handler{pick: rand.IntN}
}

func (h *Handler) Route(r chi.Router) {
	r.Get("/pokemon", h.list)
	r.Get("/pokemon/{id}", h.get)
	r.Get("/pokemon/{id}/moves", h.moves)
	r.Get("/encounter", h.encounter)
}

func pokemonID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		chix.JSON(w, r, http.StatusBadRequest, chix.M{"error": "invalid pokemon id"})
		return 0, false
	}
	return id, true
}

func store(w http.ResponseWriter, r *http.Request) *database.Client {
	db := database.FromContext(r.Context())
	if db == nil {
		log.FromContext(r.Context()).Error("db is nil")
		chix.JSON(w, r, http.StatusInternalServerError, chix.M{"error": "db is nil"})
	}
	return db
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page := 1
	limit := 30

	if r.URL.Query().Get("page") != "" {
		parsedPage, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err == nil && parsedPage > 0 {
			page = parsedPage
		}
	}

	if r.URL.Query().Get("amount") != "" {
		parsedAmount, err := strconv.Atoi(r.URL.Query().Get("amount"))
		if err == nil && parsedAmount < 101 && parsedAmount > 0 {
			limit = parsedAmount
		}
	}

	db := store(w, r)
	if db == nil {
		return
	}
	logger := log.FromContext(r.Context())

	total, err := db.Count(r.Context(), database.KindPokemon)
	if err != nil {
		logger.WithError(err).Error("failed to count pokemon")
		chix.JSON(w, r, http.StatusInternalServerError, chix.M{"error": "failed to list pokemon"})
		return
	}

	mons, err := db.ListPokemon(r.Context(), limit, (page-1)*limit)
	if err != nil {
		logger.WithError(err).Error("failed to list pokemon")
		chix.JSON(w, r, http.StatusInternalServerError, chix.M{"error": "failed to list pokemon"})
		return
	}

	resp := pokemonListResponse{
		Page:    page,
		Pages:   int(math.Ceil(float64(total) / float64(limit))),
		Total:   total,
		Pokemon: make([]pokemonSummary, 0, len(mons)),
	}
	for _, m := range mons {
		resp.Pokemon = append(resp.Pokemon, pokemonSummary{ID: m.ID, Name: m.Name, SpeciesID: m.SpeciesID})
	}

	chix.JSON(w, r, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pokemonID(w, r)
	if !ok {
		return
	}
	db := store(w, r)
	if db == nil {
		return
	}

	p, err := db.GetPokemon(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		chix.JSON(w, r, http.StatusNotFound, chix.M{"error": "pokemon not found"})
		return
	}
	h.respond(w, r, db, p, err)
}

func (h *Handler) encounter(w http.ResponseWriter, r *http.Request) {
	db := store(w, r)
	if db == nil {
		return
	}

	id := h.pick(encounterPool) + 1
	p, err := db.GetPokemon(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) && id != encounterFallback {
		p, err = db.GetPokemon(r.Context(), encounterFallback)
	}
	if errors.Is(err, database.ErrNotFound) {
		chix.JSON(w, r, http.StatusNotFound, chix.M{"error": "no pokemon available for an encounter"})
		return
	}
	h.respond(w, r, db, p, err)
}

// respond writes p with its types and abilities, or a 500 when err (from
// loading p) is set.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, db *database.Client, p *database.PokemonDetail, err error) {
	if err != nil {
		log.FromContext(r.Context()).WithError(err).Error("failed to get pokemon")
		chix.JSON(w, r, http.StatusInternalServerError, chix.M{"error": "failed to get pokemon"})
		return
	}
	logger := log.FromContext(r.Context()).WithField("pokemon_id", p.ID)

	types, err := db.PokemonTypes(r.Context(), p.ID)
	if err != nil {
		logger.WithError(err).Error("failed to get pokemon types")
		chix.JSON(w, r, http.StatusInternalServerError, chix.M{"error": "failed to get pokemon"})
		return
	}

	abilities, err := db.PokemonAbilities(r.Context(), p.ID)
	if err != nil {
		logger.WithError(err).Error("failed to get pokemon abilities")
		chix.JSON(w, r, http.StatusInternalServerError, chix.M{"error": "failed to get pokemon"})
		return
	}

	// Clients level a pokemon on its species curve; unknown or missing curves
	// fall back to the default one.
	growth := ""
	if p.GrowthRate != nil {
		growth = *p.GrowthRate
	}
	curve, _ := leveling.ParseCurve(growth)

	resp := pokemonResponse{
		ID:             p.ID,
		Name:           p.Name,
		Species:        p.SpeciesName,
		SpeciesID:      p.SpeciesID,
		EvolvesFrom:    p.EvolvesFrom,
		Height:         p.Height,
		Weight:         p.Weight,
		BaseExperience: p.BaseExperience,
		IsDefault:      p.IsDefault,
		GrowthRate:     string(curve),
		Types:          make([]string, 0, len(types)),
		Abilities:      make([]pokemonAbility, 0, len(abilities)),
		Stats:          orNull(p.Stats),
		Sprites:        orNull(p.Sprites),
	}
	for _, t := range types {
		resp.Types = append(resp.Types, t.Name)
	}
	for _, a := range abilities {
		resp.Abilities = append(resp.Abilities, pokemonAbility{Name: a.Name, IsHidden: a.IsHidden, Slot: a.Slot})
	}

	chix.JSON(w, r, http.StatusOK, resp)
}

func orNull(v json.RawMessage) json.RawMessage {
	if len(v) == 0 {
		return json.RawMessage("null")
	}
	return v
}

func (h *Handler) moves(w http.ResponseWriter, r *http.Request) {
	id, ok := pokemonID(w, r)
	if !ok {
		return
	}
	db := store(w, r)
	if db == nil {
		return
	}

	moves, err := db.PokemonMoves(r.Context(), id)
	if err != nil {
		log.FromContext(r.Context()).WithError(err).WithField("pokemon_id", id).Error("failed to get pokemon moves")
		chix.JSON(w, r, http.StatusInternalServerError, chix.M{"error": "failed to get moves"})
		return
	}

	resp := make([]pokemonMove, 0, len(moves))
	for _, m := range moves {
		resp = append(resp, pokemonMove{ID: m.ID, Name: m.Name, LearnMethod: m.LearnMethod, LevelLearnedAt: m.LevelLearnedAt})
	}

	chix.JSON(w, r, http.StatusOK, resp)
}
