package attractions

import (
	"errors"
	"net/http"
	"slices"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"

	"tripcraft/catalog"
	"tripcraft/models"
	"tripcraft/utils"
)

type Handler struct {
	catalog catalog.Catalog
}

func NewHandler(c catalog.Catalog) *Handler {
	return &Handler{catalog: c}
}

// List handles GET /api/attractions?lng=&region=
func (h *Handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	all, err := h.catalog.Attractions(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list attractions")
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch attractions")
		return
	}

	var ids []string
	region := r.URL.Query().Get("region")
	if region != "" {
		ids = h.catalog.Regions().AttractionIDs(region)
	}

	lng := utils.Lang(r)
	items := make([]models.PublicAttraction, 0, len(all))
	for _, a := range all {
		if region != "" && !slices.Contains(ids, a.ID) {
			continue
		}
		items = append(items, a.Public(lng))
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": items})
}

// Get handles GET /api/attractions/:id?lng=
func (h *Handler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	a, err := h.catalog.Attraction(r.Context(), ps.ByName("id"))
	if errors.Is(err, catalog.ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("attraction", ps.ByName("id")).Msg("get attraction")
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch attraction")
		return
	}
	lng := utils.Lang(r)
	utils.RespondWithJSON(w, http.StatusOK, models.AttractionDetail{
		PublicAttraction: a.Public(lng),
		History:          a.History(lng),
	})
}
