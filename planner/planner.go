// Package planner builds multi-day trips out of the catalog: one event or
// attraction per day, a priced transport leg to get there, lodging, and a
// return leg home.
package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"tripcraft/catalog"
	"tripcraft/metrics"
	"tripcraft/models"
)

const Algorithm = "enhanced_v2"

var ErrInvalidRequest = errors.New("invalid itinerary request")

// Config holds the pricing constants. All amounts are in AMD.
type Config struct {
	TaxiRatePerKm     int `koanf:"taxi_rate_per_km"`
	LodgingPerNight   int `koanf:"lodging_per_night"`
	LegOverheadKm     int `koanf:"leg_overhead_km"`
	MinLegKm          int `koanf:"min_leg_km"`
	DefaultDistanceKm int `koanf:"default_distance_km"`
}

func DefaultConfig() Config {
	return Config{
		TaxiRatePerKm:     180,
		LodgingPerNight:   10000,
		LegOverheadKm:     40,
		MinLegKm:          30,
		DefaultDistanceKm: 100,
	}
}

// Planner is stateless between requests and safe for concurrent use.
type Planner struct {
	catalog catalog.Catalog
	cfg     Config
	newRand RandFactory
}

func New(cat catalog.Catalog, cfg Config, newRand RandFactory) *Planner {
	if newRand == nil {
		newRand = NewRandSource
	}
	return &Planner{catalog: cat, cfg: cfg, newRand: newRand}
}

// tripState is what one day hands to the next.
type tripState struct {
	currentRegion   string
	remainingBudget int
	usedEvents      map[string]bool
	usedAttractions map[string]bool
	visitedRegions  map[string]bool
}

func newTripState(startRegion string, budget int) tripState {
	return tripState{
		currentRegion:   startRegion,
		remainingBudget: budget,
		usedEvents:      map[string]bool{},
		usedAttractions: map[string]bool{},
		visitedRegions:  map[string]bool{startRegion: true},
	}
}

// session is the per-request view: a catalog snapshot, the normalized
// preferences and the random source.
type session struct {
	p           *Planner
	regions     *catalog.RegionTable
	events      []models.CatalogEvent
	attractions map[string]models.Attraction
	interests   []string
	lng         string
	passengers  int
	rng         Rand
	state       tripState
}

func (p *Planner) newSession(ctx context.Context, interests []string, lng string, passengers int) (*session, error) {
	events, err := p.catalog.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	attractions, err := p.catalog.Attractions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load attractions: %w", err)
	}
	byID := make(map[string]models.Attraction, len(attractions))
	for _, a := range attractions {
		byID[a.ID] = a
	}
	if passengers < 1 {
		passengers = 1
	}
	return &session{
		p:           p,
		regions:     p.catalog.Regions(),
		events:      events,
		attractions: byID,
		interests:   NormalizeInterests(interests),
		lng:         models.NormalizeLang(lng),
		passengers:  passengers,
		rng:         p.newRand(),
	}, nil
}

// Generate builds the itinerary for req. Budget overruns are reported in the
// totals, never as errors.
func (p *Planner) Generate(ctx context.Context, req models.ItineraryRequest) (*models.Itinerary, error) {
	started := time.Now()

	startDate, err := models.ParseTripDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if req.StartRegion == "" {
		return nil, fmt.Errorf("%w: start region is required", ErrInvalidRequest)
	}

	s, err := p.newSession(ctx, req.Interests, req.Lng, req.PassengerCount())
	if err != nil {
		return nil, err
	}
	s.state = newTripState(req.StartRegion, req.BudgetPerPerson)

	out := &models.Itinerary{
		Items:       make([]models.ItineraryDay, 0, max(req.Days, 0)),
		StartRegion: req.StartRegion,
		EndRegion:   req.FinalRegion(),
		Algorithm:   Algorithm,
	}

	for i := 0; i < req.Days; i++ {
		day, err := s.planDay(ctx, startDate.AddDate(0, 0, i), i, i == req.Days-1)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, day)
		out.Totals.PerPerson += day.CostPerPerson
		out.Totals.Group += day.CostGroup
	}

	if err := s.addReturnLeg(ctx, out); err != nil {
		return nil, err
	}

	out.Totals.WithinBudget = out.Totals.PerPerson <= req.BudgetPerPerson

	for _, d := range out.Items {
		selection := "none"
		switch {
		case d.Event != nil:
			selection = "event"
		case d.Attraction != nil:
			selection = "attraction"
		}
		metrics.RecordDay(selection, d.Transport.Mode, d.Rescued)
	}
	metrics.RecordItinerary(out.Totals.WithinBudget, time.Since(started))

	log.Debug().
		Int("days", req.Days).
		Str("start", req.StartRegion).
		Str("end", out.EndRegion).
		Int("per_person", out.Totals.PerPerson).
		Bool("within_budget", out.Totals.WithinBudget).
		Msg("itinerary generated")

	return out, nil
}

// planDay runs one iteration of the day loop and advances the trip state.
func (s *session) planDay(ctx context.Context, date time.Time, idx int, last bool) (models.ItineraryDay, error) {
	st := &s.state

	ev := s.selectEventForDate(date)
	var attraction *models.Attraction
	if ev != nil {
		// a selection counts as used even if the rescue swaps it out
		st.usedEvents[ev.ID] = true
		st.visitedRegions[ev.Region] = true
	} else {
		attraction = s.selectAttractionForRegion(st.currentRegion)
	}

	target := st.currentRegion
	eventID := ""
	if ev != nil {
		target = ev.Region
		eventID = ev.ID
	}

	transport, err := s.estimateTransport(ctx, st.currentRegion, target, eventID)
	if err != nil {
		return models.ItineraryDay{}, err
	}

	lodging := 0
	if !last {
		lodging = s.p.cfg.LodgingPerNight
	}
	admission := 0
	if ev != nil {
		admission = ev.AdmissionCost()
	}
	perPerson := transport.PerPerson + admission + lodging

	// Budget rescue. Transport is kept as estimated; only admission changes.
	rescued := false
	if perPerson > st.remainingBudget && (ev == nil || !ev.Pricing.IsFree) {
		if free := s.bestFreeEvent(date); free != nil {
			ev, attraction, admission, rescued = free, nil, 0, true
		} else if attraction == nil {
			if a := s.selectAttractionForRegion(target); a != nil {
				ev, attraction, admission, rescued = nil, a, 0, true
			}
		}
		perPerson = transport.PerPerson + admission + lodging
	}
	group := transport.Total + (admission+lodging)*s.passengers

	day := models.ItineraryDay{
		Day:           idx + 1,
		Date:          date,
		Region:        target,
		Transport:     &transport,
		CostPerPerson: perPerson,
		CostGroup:     group,
		Rescued:       rescued,
	}
	if ev != nil {
		st.usedEvents[ev.ID] = true
		st.visitedRegions[ev.Region] = true
		pub := ev.Public(s.lng)
		day.Event = &pub
	}
	if attraction != nil {
		st.usedAttractions[attraction.ID] = true
		st.visitedRegions[target] = true
		pub := attraction.Public(s.lng)
		day.Attraction = &pub
	}

	st.remainingBudget -= perPerson
	st.currentRegion = target
	return day, nil
}

// addReturnLeg brings the traveller back to the end region by merging one
// more leg into the last day. The day keeps its region and payload.
func (s *session) addReturnLeg(ctx context.Context, it *models.Itinerary) error {
	if len(it.Items) == 0 || s.state.currentRegion == it.EndRegion {
		return nil
	}
	back, err := s.estimateTransport(ctx, s.state.currentRegion, it.EndRegion, "")
	if err != nil {
		return err
	}

	last := &it.Items[len(it.Items)-1]
	last.CostPerPerson += back.PerPerson
	last.CostGroup += back.Total
	last.Transport = &models.Transport{
		Mode:        models.ModeReturn,
		PerPerson:   back.PerPerson,
		Total:       back.Total,
		Description: "Return to " + s.regions.Name(it.EndRegion, s.lng),
		DistanceKm:  back.DistanceKm,
	}
	it.Totals.PerPerson += back.PerPerson
	it.Totals.Group += back.Total
	return nil
}
