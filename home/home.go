// Package home serves the small static endpoints: regions, cultural info,
// partner discounts and the companion search.
package home

import (
	"net/http"
	"slices"
	"strings"

	"github.com/julienschmidt/httprouter"

	"tripcraft/catalog"
	"tripcraft/models"
	"tripcraft/utils"
)

const staticCacheControl = "public, max-age=60"

type Region struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DistanceKm *int   `json:"distanceKm,omitempty"`
}

type Info struct {
	Culture    string   `json:"culture"`
	Traditions []string `json:"traditions"`
}

var info = map[string]Info{
	models.LangHy: {
		Culture:    "Հայկական մշակույթը հարուստ է ավանդույթներով, երաժշտությամբ և խոհանոցով",
		Traditions: []string{"Վարդավառ", "Տրիքնապատք"},
	},
	models.LangEn: {
		Culture:    "Armenian culture is rich in traditions, music and cuisine",
		Traditions: []string{"Vardavar", "Triknapatk"},
	},
}

var partners = []models.Partner{
	{ID: "p1", Name: "Yerevan Wine Bar", Category: "Restaurant", Discount: "10%"},
	{ID: "p2", Name: "Dilijan Hotel", Category: "Hotel", Discount: "15%"},
}

var companions = []models.Companion{
	{ID: "c_1", Name: "Ani", Interests: []string{"culture", "food"}, Regions: []string{catalog.Yerevan}},
	{ID: "c_2", Name: "Aram", Interests: []string{"hiking"}, Regions: []string{catalog.Tavush}},
}

type Handler struct {
	regions *catalog.RegionTable
}

func NewHandler(regions *catalog.RegionTable) *Handler {
	return &Handler{regions: regions}
}

// Regions handles GET /api/regions?lng=
func (h *Handler) Regions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	lng := utils.Lang(r)
	ids := h.regions.Regions()
	items := make([]Region, 0, len(ids))
	for _, id := range ids {
		reg := Region{ID: id, Name: h.regions.Name(id, lng)}
		if km, ok := h.regions.Distance(id); ok {
			reg.DistanceKm = &km
		}
		items = append(items, reg)
	}
	w.Header().Set("Cache-Control", staticCacheControl)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": items})
}

// GetInfo handles GET /api/info?lng=
func GetInfo(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Cache-Control", staticCacheControl)
	utils.RespondWithJSON(w, http.StatusOK, info[utils.Lang(r)])
}

// GetPartners handles GET /api/partners
func GetPartners(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Cache-Control", staticCacheControl)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": partners})
}

// SearchCompanions handles POST /api/companions/search
func SearchCompanions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var q models.CompanionSearch
	if err := utils.DecodeJSON(w, r, &q); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid search params")
		return
	}
	for _, d := range []string{q.StartDate, q.EndDate} {
		if d == "" {
			continue
		}
		if _, err := models.ParseTripDate(d); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid search params")
			return
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": matchCompanions(q)})
}

// matchCompanions keeps companions sharing at least one interest and one
// region with the query. An empty list in the query matches anything.
func matchCompanions(q models.CompanionSearch) []models.Companion {
	out := []models.Companion{}
	for _, c := range companions {
		if overlaps(q.Interests, c.Interests) && overlaps(q.Regions, c.Regions) {
			out = append(out, c)
		}
	}
	return out
}

func overlaps(want, have []string) bool {
	if len(want) == 0 {
		return true
	}
	return slices.ContainsFunc(want, func(w string) bool {
		return slices.ContainsFunc(have, func(h string) bool {
			return strings.EqualFold(strings.TrimSpace(w), h)
		})
	})
}
