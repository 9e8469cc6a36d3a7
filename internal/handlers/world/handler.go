package world

import (
	"net/http"

	"github.com/FlagBrew/local-dex/internal/database"
	"github.com/apex/log"
	"github.com/go-chi/chi/v5"
	"github.com/lrstanley/chix"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Route(r chi.Router) {
	r.Get("/gyms", h.gyms)
	r.Get("/elite-four", h.eliteFour)
}

type gym struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Location      string `json:"location"`
	LeaderName    string `json:"leader_name"`
	TypeSpecialty string `json:"type_specialty"`
	BadgeName     string `json:"badge_name"`
	BadgeImageURL string `json:"badge_image_url"`
}

type eliteFourMember struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Rank          int    `json:"rank"`
	SpecialtyType string `json:"specialty_type"`
	ImageURL      string `json:"image_url"`
}

func (h *Handler) gyms(w http.ResponseWriter, r *http.Request) {
	db := database.FromContext(r.Context())
	if db == nil {
		chix.JSON(w, r, http.StatusInternalServerError, chix.M{"error": "db is nil"})
		return
	}

	rows, err := db.ListGyms(r.Context())
	if err != nil {
		log.FromContext(r.Context()).WithError(err).Error("failed to list gyms")
		chix.JSON(w, r, http.StatusInternalServerError, chix.M{"error": "failed to list gyms"})
		return
	}

	resp := make([]gym, 0, len(rows))
	for _, g := range rows {
		resp = append(resp, gym(g))
	}
	chix.JSON(w, r, http.StatusOK, resp)
}

func (h *Handler) eliteFour(w http.ResponseWriter, r *http.Request) {
	db := database.FromContext(r.Context())
	if db == nil {
		chix.JSON(w, r, http.StatusInternalServerError, chix.M{"error": "db is nil"})
		return
	}

	rows, err := db.ListEliteFour(r.Context())
	if err != nil {
		log.FromContext(r.Context()).WithError(err).Error("failed to list elite four")
		chix.JSON(w, r, http.StatusInternalServerError, chix.M{"error": "failed to list elite four"})
		return
	}

	resp := make([]eliteFourMember, 0, len(rows))
	for _, m := range rows {
		resp = append(resp, eliteFourMember(m))
	}
	chix.JSON(w, r, http.StatusOK, resp)
}
