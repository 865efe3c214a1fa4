// Package rides serves travel plans: shared rides towards events that
// travellers can join.
package rides

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"

	"tripcraft/catalog"
	"tripcraft/metrics"
	"tripcraft/models"
	"tripcraft/utils"
	"tripcraft/validation"
)

// Publisher announces seat changes, to other instances as well.
type Publisher interface {
	Publish(ctx context.Context, u models.SeatUpdate)
}

type Handler struct {
	store catalog.Store
	hub   *Hub
	bus   Publisher
}

func NewHandler(store catalog.Store, hub *Hub, bus Publisher) *Handler {
	return &Handler{store: store, hub: hub, bus: bus}
}

type createRideRequest struct {
	From          string              `json:"from"`
	To            string              `json:"to" validate:"required"`
	Date          time.Time           `json:"date" validate:"required"`
	Seats         int                 `json:"seats" validate:"required,min=1,max=60"`
	Route         []string            `json:"route"`
	EventID       string              `json:"eventId"`
	OrganizerName string              `json:"organizerName"`
	RidePricing   *models.RidePricing `json:"ridePricing"`
}

// List handles GET /api/travel-plans?to=&eventId=&lng=
func (h *Handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	q := r.URL.Query()
	lng := utils.Lang(r)

	rides, err := h.store.Rides(ctx, models.RideFilter{To: q.Get("to"), EventID: q.Get("eventId")})
	if err != nil {
		log.Error().Err(err).Msg("list travel plans")
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load travel plans")
		return
	}
	events, err := h.store.Events(ctx)
	if err != nil {
		log.Error().Err(err).Msg("load events for travel plans")
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load travel plans")
		return
	}
	titles := make(map[string]string, len(events))
	for _, e := range events {
		titles[e.ID] = e.Title(lng)
	}

	items := make([]models.RideListItem, 0, len(rides))
	for _, ride := range rides {
		title, ok := titles[ride.EventID]
		if !ok {
			title = "Unknown Event"
		}
		items = append(items, models.RideListItem{RideOffer: ride, EventTitle: title})
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": items})
}

// Create handles POST /api/travel-plans
func (h *Handler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createRideRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid travel plan payload")
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	regions := h.store.Regions()
	if req.From == "" {
		req.From = catalog.Yerevan
	}
	if !regions.Known(req.To) || !regions.Known(req.From) {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown region")
		return
	}
	if req.OrganizerName == "" {
		req.OrganizerName = "Current User"
	}
	if req.RidePricing != nil && req.RidePricing.PricePerSeat < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "pricePerSeat must not be negative")
		return
	}

	ride := models.RideOffer{
		ID:          utils.NewID("tp"),
		Organizer:   models.Organizer{ID: userID, Name: req.OrganizerName},
		From:        req.From,
		To:          req.To,
		Date:        req.Date,
		Seats:       req.Seats,
		Route:       req.Route,
		EventID:     req.EventID,
		RidePricing: req.RidePricing,
		CreatedAt:   time.Now().UTC(),
	}
	if ride.Route == nil {
		ride.Route = []string{ride.From, ride.To}
	}
	if err := h.store.AddRide(r.Context(), ride); err != nil {
		log.Error().Err(err).Msg("create travel plan")
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create travel plan")
		return
	}

	log.Info().Str("plan", ride.ID).Str("organizer", userID).Str("to", ride.To).Msg("travel plan created")
	utils.RespondWithJSON(w, http.StatusCreated, ride)
}

// Join handles POST /api/travel-plans/:id/join
func (h *Handler) Join(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id := ps.ByName("id")

	left, err := h.store.JoinRide(r.Context(), id, userID)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		metrics.RideJoins.WithLabelValues("not_found").Inc()
		utils.RespondWithError(w, http.StatusNotFound, "Not found")
		return
	case errors.Is(err, catalog.ErrNoSeats):
		metrics.RideJoins.WithLabelValues("no_seats").Inc()
		utils.RespondWithError(w, http.StatusBadRequest, "No seats left")
		return
	case err != nil:
		metrics.RideJoins.WithLabelValues("error").Inc()
		log.Error().Err(err).Str("plan", id).Msg("join travel plan")
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to join travel plan")
		return
	}

	metrics.RideJoins.WithLabelValues("ok").Inc()
	h.bus.Publish(r.Context(), models.SeatUpdate{PlanID: id, SeatsLeft: left})
	log.Info().Str("plan", id).Str("user", userID).Int("seatsLeft", left).Msg("joined travel plan")
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "seatsLeft": left})
}
