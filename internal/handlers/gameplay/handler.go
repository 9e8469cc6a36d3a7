package gameplay

import (
	"net/http"
	"strconv"

	"github.com/FlagBrew/local-dex/internal/leveling"
	"github.com/go-chi/chi/v5"
	"github.com/lrstanley/chix"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Route(r chi.Router) {
	r.Get("/{curve}/xp/{level}", h.xpForLevel)
	r.Get("/{curve}/level/{xp}", h.levelForXP)
	r.Post("/gain", h.gain)
}

func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		chix.JSON(w, r, http.StatusBadRequest, chix.M{"error": "invalid " + name})
		return 0, false
	}
	return v, true
}

// Unknown curve names are not an error, they resolve to the default curve.
func (h *Handler) xpForLevel(w http.ResponseWriter, r *http.Request) {
	level, ok := intParam(w, r, "level")
	if !ok {
		return
	}
	curve, _ := leveling.ParseCurve(chi.URLParam(r, "curve"))

	chix.JSON(w, r, http.StatusOK, chix.M{
		"curve":         curve,
		"level":         level,
		"xp":            leveling.XPForLevel(curve, level),
		"next_level_xp": leveling.NextLevelXP(curve, level),
	})
}

func (h *Handler) levelForXP(w http.ResponseWriter, r *http.Request) {
	xp, ok := intParam(w, r, "xp")
	if !ok {
		return
	}
	curve, _ := leveling.ParseCurve(chi.URLParam(r, "curve"))
	level := leveling.LevelForXP(curve, xp)

	chix.JSON(w, r, http.StatusOK, chix.M{
		"curve":         curve,
		"xp":            xp,
		"level":         level,
		"next_level_xp": leveling.NextLevelXP(curve, level),
	})
}

func (h *Handler) gain(w http.ResponseWriter, r *http.Request) {
	var payload gainRequest
	if chix.Error(w, r, chix.Bind(r, &payload)) {
		return
	}

	curve, _ := leveling.ParseCurve(payload.Curve)
	level, experience := leveling.Gain(payload.Level, payload.Experience, payload.Amount)

	chix.JSON(w, r, http.StatusOK, gainResponse{
		Level:        level,
		Experience:   experience,
		LevelsGained: level - payload.Level,
		Curve:        string(curve),
		NextLevelXP:  leveling.NextLevelXP(curve, level),
	})
}
