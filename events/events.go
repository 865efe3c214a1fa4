// Package events serves the event catalog and the provider/admin edits.
package events

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"

	"tripcraft/catalog"
	"tripcraft/models"
	"tripcraft/utils"
	"tripcraft/validation"
)

// Indexer keeps search suggestions in step with the catalog.
type Indexer interface {
	AddEvent(ctx context.Context, e models.CatalogEvent) error
	RemoveEvent(ctx context.Context, e models.CatalogEvent) error
}

type Handler struct {
	store catalog.Store
	index Indexer
}

// NewHandler accepts a nil index.
func NewHandler(store catalog.Store, index Indexer) *Handler {
	return &Handler{store: store, index: index}
}

type createEventRequest struct {
	Region        string              `json:"region" validate:"required"`
	TitleHy       string              `json:"titleHy" validate:"required_without=TitleEn"`
	TitleEn       string              `json:"titleEn" validate:"required_without=TitleHy"`
	DescriptionHy string              `json:"descriptionHy"`
	DescriptionEn string              `json:"descriptionEn"`
	AreaHy        string              `json:"areaHy"`
	AreaEn        string              `json:"areaEn"`
	Type          string              `json:"type" validate:"required,oneof=Festival Culture Music Food Sport Tradition Market"`
	Date          time.Time           `json:"date" validate:"required"`
	StartDate     *time.Time          `json:"startDate"`
	EndDate       *time.Time          `json:"endDate"`
	BudgetMin     *int                `json:"budgetMin" validate:"omitempty,min=0"`
	BudgetMax     *int                `json:"budgetMax" validate:"omitempty,min=0"`
	ImageURL      string              `json:"imageUrl" validate:"omitempty,url"`
	Pricing       models.EventPricing `json:"pricing"`
}

// List handles GET /api/events?region=&type=&pricing=&lng=
func (h *Handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	all, err := h.store.Events(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list events")
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}

	q := r.URL.Query()
	lng := utils.Lang(r)
	items := make([]models.PublicEvent, 0, len(all))
	for _, e := range filterEvents(all, q.Get("region"), q.Get("type"), q.Get("pricing")) {
		items = append(items, e.Public(lng))
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": items, "total": len(items)})
}

// Get handles GET /api/events/:id?lng=
func (h *Handler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	e, err := h.store.Event(ctx, ps.ByName("id"))
	if errors.Is(err, catalog.ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("event", ps.ByName("id")).Msg("get event")
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch event")
		return
	}

	lng := utils.Lang(r)
	utils.RespondWithJSON(w, http.StatusOK, models.EventDetail{
		PublicEvent: e.Public(lng),
		Location:    defaultLocation,
		Transport:   transportOptions,
		Nearby:      h.nearby(ctx, e.Region, lng),
	})
}

// Create handles POST /api/events (provider or admin)
func (h *Handler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req createEventRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid event payload")
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !h.store.Regions().Known(req.Region) {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown region")
		return
	}
	if err := checkWindow(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	e := req.toEvent()
	e.ID = utils.NewID("ev")
	e.CreatedAt = time.Now().UTC()
	if err := h.store.AddEvent(r.Context(), e); err != nil {
		log.Error().Err(err).Msg("create event")
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create event")
		return
	}
	if h.index != nil {
		if err := h.index.AddEvent(r.Context(), e); err != nil {
			log.Warn().Err(err).Str("event", e.ID).Msg("index event")
		}
	}

	log.Info().Str("event", e.ID).Str("by", utils.GetUserIDFromRequest(r)).Str("region", e.Region).Msg("event created")
	utils.RespondWithJSON(w, http.StatusCreated, e)
}

// Delete handles DELETE /api/events/:id (admin)
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	id := ps.ByName("id")

	e, err := h.store.Event(ctx, id)
	if err == nil {
		err = h.store.DeleteEvent(ctx, id)
	}
	if errors.Is(err, catalog.ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("event", id).Msg("delete event")
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete event")
		return
	}
	if h.index != nil {
		if err := h.index.RemoveEvent(ctx, e); err != nil {
			log.Warn().Err(err).Str("event", id).Msg("unindex event")
		}
	}

	log.Info().Str("event", id).Str("by", utils.GetUserIDFromRequest(r)).Msg("event deleted")
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

func (h *Handler) nearby(ctx context.Context, region, lng string) []string {
	var out []string
	for _, id := range h.store.Regions().AttractionIDs(region) {
		a, err := h.store.Attraction(ctx, id)
		if err != nil {
			continue
		}
		out = append(out, a.Title(lng))
	}
	if len(out) == 0 {
		return []string{catalog.RegionName(h.store, region, lng)}
	}
	return out
}
