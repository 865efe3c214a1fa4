package autocom

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"

	"tripcraft/utils"
)

// Handler serves GET /api/autocomplete?q=&lng=&limit=
func (s *Suggester) Handler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	items, err := s.Suggest(r.Context(), r.URL.Query().Get("q"), utils.Lang(r), limit)
	if err != nil {
		log.Error().Err(err).Msg("autocomplete failed")
		utils.RespondWithError(w, http.StatusInternalServerError, "Autocomplete unavailable")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": items})
}
