// Package itinerary exposes the planner over HTTP and stores users' saved
// routes.
package itinerary

import (
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"

	"tripcraft/models"
	"tripcraft/planner"
	"tripcraft/utils"
	"tripcraft/validation"
)

type Handler struct {
	planner     *planner.Planner
	routes      RouteStore
	shareSecret []byte
}

func NewHandler(p *planner.Planner, routes RouteStore, shareSecret string) *Handler {
	return &Handler{planner: p, routes: routes, shareSecret: []byte(shareSecret)}
}

func (h *Handler) decodeRequest(w http.ResponseWriter, r *http.Request) (models.ItineraryRequest, bool) {
	var req models.ItineraryRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid itinerary params")
		return req, false
	}
	if err := validation.ValidateStruct(req); err != nil {
		log.Debug().Err(err).Msg("rejected itinerary request")
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid itinerary params")
		return req, false
	}
	return req, true
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request, req models.ItineraryRequest) (*models.Itinerary, bool) {
	it, err := h.planner.Generate(r.Context(), req)
	if errors.Is(err, planner.ErrInvalidRequest) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid itinerary params")
		return nil, false
	}
	if err != nil {
		log.Error().Err(err).Msg("generate itinerary")
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate itinerary")
		return nil, false
	}
	return it, true
}

// Generate handles POST /api/itinerary
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}
	if it, ok := h.generate(w, r, req); ok {
		utils.RespondWithJSON(w, http.StatusOK, it)
	}
}

// PDF handles POST /api/itinerary/pdf
func (h *Handler) PDF(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}
	req.Lng = models.LangEn
	it, ok := h.generate(w, r, req)
	if !ok {
		return
	}

	doc, err := renderPDF(it, SharePayload(h.shareSecret, req, time.Now()))
	if err != nil {
		log.Error().Err(err).Msg("render itinerary pdf")
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=itinerary-"+req.StartDate+".pdf")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		log.Warn().Err(err).Msg("write itinerary pdf")
	}
}

// Estimate handles POST /api/estimate
func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req models.EstimateRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid estimate params")
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid estimate params")
		return
	}

	res, err := h.planner.EstimateCost(r.Context(), req)
	if err != nil {
		log.Error().Err(err).Msg("estimate cost")
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to estimate cost")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, res)
}

// ListRoutes handles GET /api/routes
func (h *Handler) ListRoutes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	routes, err := h.routes.List(r.Context(), utils.GetUserIDFromRequest(r))
	if err != nil {
		log.Error().Err(err).Msg("list routes")
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch routes")
		return
	}
	if routes == nil {
		routes = []models.SavedRoute{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": routes})
}

// CreateRoute handles POST /api/routes
func (h *Handler) CreateRoute(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req models.SavedRouteRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid route payload")
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid route payload")
		return
	}

	route := models.SavedRoute{
		ID:          utils.NewID("r"),
		UserID:      utils.GetUserIDFromRequest(r),
		Name:        req.Name,
		Days:        req.Days,
		Budget:      req.Budget,
		Interests:   req.Interests,
		Stops:       req.Stops,
		Description: describeRoute(req.Days, req.Interests),
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.routes.Create(r.Context(), route); err != nil {
		log.Error().Err(err).Msg("save route")
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save route")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, route)
}

// GetRoute handles GET /api/routes/:id
func (h *Handler) GetRoute(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	route, err := h.routes.Get(r.Context(), utils.GetUserIDFromRequest(r), ps.ByName("id"))
	if errors.Is(err, ErrRouteNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("get route")
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch route")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, route)
}

// DeleteRoute handles DELETE /api/routes/:id
func (h *Handler) DeleteRoute(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	err := h.routes.Delete(r.Context(), utils.GetUserIDFromRequest(r), ps.ByName("id"))
	if errors.Is(err, ErrRouteNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("delete route")
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete route")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}
