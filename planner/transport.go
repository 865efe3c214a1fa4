package planner

import (
	"context"
	"fmt"
	"slices"

	"tripcraft/catalog"
	"tripcraft/models"
)

// distanceFromReference falls back to the configured default for regions
// missing from the table.
func (p *Planner) distanceFromReference(regions *catalog.RegionTable, region string) int {
	if km, ok := regions.Distance(region); ok {
		return km
	}
	return p.cfg.DefaultDistanceKm
}

// legDistance approximates the road distance between two regions from their
// distances to the reference region.
func (p *Planner) legDistance(regions *catalog.RegionTable, from, to string) int {
	if from == to {
		return 0
	}
	diff := p.distanceFromReference(regions, from) - p.distanceFromReference(regions, to)
	if diff < 0 {
		diff = -diff
	}
	return max(p.cfg.MinLegKm, diff+p.cfg.LegOverheadKm)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func rideTransport(r models.RideOffer, mode string, passengers, km int) models.Transport {
	t := models.Transport{
		Mode:       mode,
		PlanID:     r.ID,
		Route:      slices.Clone(r.Route),
		DistanceKm: km,
	}
	if mode == models.ModeRideFree {
		t.Description = fmt.Sprintf("Free Travel Plan (%s)", r.Organizer.Name)
		return t
	}
	t.PerPerson = r.PricePerSeat()
	t.Total = t.PerPerson * passengers
	t.Description = fmt.Sprintf("Travel Plan (%s)", r.Organizer.Name)
	return t
}

// pickRide returns the first free ride, else the cheapest ride with a real
// seat price. Ties keep slice order.
func pickRide(rides []models.RideOffer) (models.RideOffer, string, bool) {
	for _, r := range rides {
		if r.IsFree() {
			return r, models.ModeRideFree, true
		}
	}
	best := -1
	for i, r := range rides {
		if r.IsFree() || r.PricePerSeat() <= 0 {
			continue
		}
		if best < 0 || r.PricePerSeat() < rides[best].PricePerSeat() {
			best = i
		}
	}
	if best < 0 {
		return models.RideOffer{}, "", false
	}
	return rides[best], models.ModeRidePaid, true
}

// estimateTransport prices one leg. Ride offers heading to the destination
// are shuffled first so equal offers rotate between requests; with none
// usable the leg is a one-way taxi.
func (s *session) estimateTransport(ctx context.Context, from, to, eventID string) (models.Transport, error) {
	km := s.p.legDistance(s.regions, from, to)

	rides, err := catalog.RidesTo(ctx, s.p.catalog, to, eventID)
	if err != nil {
		return models.Transport{}, fmt.Errorf("rides to %s: %w", to, err)
	}
	s.rng.Shuffle(len(rides), func(i, j int) { rides[i], rides[j] = rides[j], rides[i] })

	if r, mode, ok := pickRide(rides); ok {
		return rideTransport(r, mode, s.passengers, km), nil
	}

	total := km * s.p.cfg.TaxiRatePerKm
	return models.Transport{
		Mode:        models.ModeTaxi,
		PerPerson:   ceilDiv(total, s.passengers),
		Total:       total,
		Description: "Taxi",
		DistanceKm:  km,
	}, nil
}
