package profile

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"

	"tripcraft/catalog"
	"tripcraft/itinerary"
	"tripcraft/models"
	"tripcraft/utils"
)

type Handler struct {
	store  catalog.Store
	routes itinerary.RouteStore
}

func NewHandler(store catalog.Store, routes itinerary.RouteStore) *Handler {
	return &Handler{store: store, routes: routes}
}

// GetProfile handles GET /api/profile?lng=
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	user := models.SessionUser{ID: utils.GetUserIDFromRequest(r), Role: utils.GetRoleFromRequest(r)}

	routes, err := h.routes.List(ctx, user.ID)
	if err != nil {
		log.Error().Err(err).Str("user", user.ID).Msg("load routes for profile")
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	if routes == nil {
		routes = []models.SavedRoute{}
	}

	plans, err := h.joinedPlans(ctx, user.ID, utils.Lang(r))
	if err != nil {
		log.Error().Err(err).Str("user", user.ID).Msg("load joined plans for profile")
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, models.Profile{User: user, Routes: routes, JoinedPlans: plans})
}

// joinedPlans lists each joined ride once, latest join first.
func (h *Handler) joinedPlans(ctx context.Context, userID, lng string) ([]models.JoinedPlan, error) {
	joins, err := h.store.JoinedRides(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("joined rides: %w", err)
	}
	slices.SortStableFunc(joins, func(a, b catalog.Join) int { return b.JoinedAt.Compare(a.JoinedAt) })

	plans := []models.JoinedPlan{}
	seen := make(map[string]bool, len(joins))
	for _, j := range joins {
		if seen[j.PlanID] {
			continue
		}
		seen[j.PlanID] = true

		ride, err := h.store.Ride(ctx, j.PlanID)
		if errors.Is(err, catalog.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("ride %s: %w", j.PlanID, err)
		}

		title := "Unknown Event"
		if e, err := h.store.Event(ctx, ride.EventID); err == nil {
			title = e.Title(lng)
		} else if !errors.Is(err, catalog.ErrNotFound) {
			return nil, fmt.Errorf("event %s: %w", ride.EventID, err)
		}

		plans = append(plans, models.JoinedPlan{
			ID:           ride.ID,
			EventTitle:   title,
			EventDate:    ride.Date,
			FromLocation: ride.From,
			ToLocation:   ride.To,
			JoinedAt:     j.JoinedAt,
		})
	}
	return plans, nil
}
