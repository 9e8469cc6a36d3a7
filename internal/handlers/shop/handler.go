package shop

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
	r.Get("/items", h.items)
}

type item struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Cost      int     `json:"cost"`
	Category  *string `json:"category"`
	Effect    *string `json:"effect"`
	SpriteURL *string `json:"sprite_url"`
}

// items lists the stored items, narrowed with ?category= when given.
func (h *Handler) items(w http.ResponseWriter, r *http.Request) {
	db := database.FromContext(r.Context())
	if db == nil {
		chix.JSON(w, r, http.StatusInternalServerError, chix.M{"error": "db is nil"})
		return
	}

	category := r.URL.Query().Get("category")
	rows, err := db.ListItems(r.Context(), category)
	if err != nil {
		log.FromContext(r.Context()).WithError(err).WithField("category", category).Error("failed to list items")
		chix.JSON(w, r, http.StatusInternalServerError, chix.M{"error": "failed to list items"})
		return
	}

	resp := make([]item, 0, len(rows))
	for _, it := range rows {
		resp = append(resp, item(it))
	}
	chix.JSON(w, r, http.StatusOK, resp)
}
