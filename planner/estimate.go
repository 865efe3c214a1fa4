package planner

import (
	"context"
	"errors"
	"fmt"

	"tripcraft/catalog"
	"tripcraft/models"
)

// EstimateCost prices a single trip from the reference region to a region
// or event. Unlike the day loop the taxi fallback is a round trip and ride
// offers are taken in catalog order.
func (p *Planner) EstimateCost(ctx context.Context, req models.EstimateRequest) (*models.EstimateResult, error) {
	passengers := req.PassengerCount()
	km := p.distanceFromReference(p.catalog.Regions(), req.Region)

	rides, err := p.catalog.Rides(ctx, models.RideFilter{To: req.Region, EventID: req.EventID})
	if err != nil {
		return nil, fmt.Errorf("list rides: %w", err)
	}

	var transport models.Transport
	if r, mode, ok := pickRide(rides); ok {
		transport = rideTransport(r, mode, passengers, km)
	} else {
		total := km * 2 * p.cfg.TaxiRatePerKm
		transport = models.Transport{
			Mode:        models.ModeTaxi,
			PerPerson:   ceilDiv(total, passengers),
			Total:       total,
			Description: "Taxi",
			DistanceKm:  km,
		}
	}

	ev := models.EstimateEvent{IsFree: true}
	if req.EventID != "" {
		e, err := p.catalog.Event(ctx, req.EventID)
		switch {
		case err == nil:
			ev = models.EstimateEvent{IsFree: e.Pricing.IsFree, Price: e.AdmissionCost()}
		case !errors.Is(err, catalog.ErrNotFound):
			return nil, fmt.Errorf("load event: %w", err)
		}
	}

	return &models.EstimateResult{
		Region:         req.Region,
		EventID:        req.EventID,
		Passengers:     passengers,
		DistanceKm:     km,
		Transport:      transport,
		Event:          ev,
		TotalPerPerson: transport.PerPerson + ev.Price,
		TotalGroup:     transport.Total + ev.Price*passengers,
	}, nil
}
