package planner

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcraft/catalog"
	"tripcraft/models"
)

// stubRand never jitters, never shuffles and always picks index 0.
type stubRand struct{}

func (stubRand) Float64() float64 { return 0 }
func (stubRand) Intn(n int) int { return 0 }
func (stubRand) Shuffle(int, func(i, j int)) {}

func stubFactory() Rand { return stubRand{} }

func seeded(seed int64) RandFactory {
	return func() Rand { return rand.New(rand.NewSource(seed)) }
}

var june1 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixtureRegions() *catalog.RegionTable {
	return catalog.NewRegionTable(
		map[string]int{"Yerevan": 0, "Tavush": 140, "Syunik": 250},
		map[string][]string{
			"Yerevan": {"attr_fortress", "attr_memorial"},
			"Tavush":  {"attr_lake"},
		},
	)
}

func fixtureAttractions() []models.Attraction {
	return []models.Attraction{
		{ID: "attr_fortress", TitleEn: "Old Fortress", SummaryEn: "Ruins on a hill"},
		{ID: "attr_memorial", TitleEn: "Memorial", SummaryEn: "A memorial park"},
		{ID: "attr_lake", TitleEn: "Lake", SummaryEn: "A mountain lake"},
	}
}

func ev(id, region string, date time.Time, price int) models.CatalogEvent {
	return models.CatalogEvent{
		ID:      id,
		Region:  region,
		TitleEn: id,
		Type:    models.TypeFestival,
		Date:    date,
		Pricing: models.EventPricing{IsFree: price == 0, Price: price},
	}
}

func newFixturePlanner(data catalog.Data, f RandFactory) *Planner {
	return New(catalog.NewMemory(fixtureRegions(), data), DefaultConfig(), f)
}

func request(days, budget int) models.ItineraryRequest {
	return models.ItineraryRequest{
		StartDate:       "2025-06-01",
		Days:            days,
		BudgetPerPerson: budget,
		StartRegion:     "Yerevan",
		Lng:             models.LangEn,
	}
}

func TestMatchInterests(t *testing.T) {
	item := Matchable{Type: "Music", Title: "Dilijan Music Nights", Description: "Jazz and music"}

	assert.Equal(t, 1.0, MatchInterests(item, nil))
	assert.Equal(t, 1.0, MatchInterests(Matchable{}, nil))

	// type, title and description all match: 6 / 3
	assert.InDelta(t, 2.0, MatchInterests(item, []string{"music"}), 1e-9)
	// only the description matches "jazz", "food" matches nothing: 1 / 6
	assert.InDelta(t, 1.0/6, MatchInterests(item, []string{"jazz", "food"}), 1e-9)
	assert.Equal(t, 0.0, MatchInterests(item, []string{"sport"}))
}

func TestNormalizeInterests(t *testing.T) {
	assert.Equal(t, []string{"music", "food"}, NormalizeInterests([]string{" Music", "FOOD", "music", ""}))
	assert.Empty(t, NormalizeInterests([]string{"  "}))
}

func TestCompareCandidates(t *testing.T) {
	free := func(score float64) candidate {
		return candidate{event: models.CatalogEvent{Pricing: models.EventPricing{IsFree: true}}, score: score}
	}
	paid := func(price int, score float64) candidate {
		return candidate{event: models.CatalogEvent{Pricing: models.EventPricing{Price: price}}, score: score}
	}
	cmp := compareCandidates(5000)

	assert.Equal(t, -1, cmp(free(0), paid(100, 9)))
	assert.Equal(t, 1, cmp(paid(100, 9), free(0)))
	assert.Equal(t, -1, cmp(free(2), free(1)))
	assert.Equal(t, 1, cmp(free(1), free(2)))
	assert.Equal(t, -1, cmp(paid(5000, 0), paid(6000, 3)))
	assert.Equal(t, 1, cmp(paid(6000, 3), paid(1000, 0)))
	assert.Equal(t, -1, cmp(paid(7000, 2), paid(6000, 1)))
	assert.Equal(t, 0, cmp(paid(100, 1), paid(200, 1)))
}

func TestOccursOn(t *testing.T) {
	start := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)
	e := models.CatalogEvent{Date: start, StartDate: &start, EndDate: &end}

	assert.True(t, occursOn(e, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, occursOn(e, time.Date(2025, 6, 3, 23, 0, 0, 0, time.UTC)))
	assert.False(t, occursOn(e, time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)))

	single := models.CatalogEvent{Date: start}
	assert.True(t, occursOn(single, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, occursOn(single, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)))
}

func TestSingleFreeEventDay(t *testing.T) {
	p := newFixturePlanner(catalog.Data{
		Events: []models.CatalogEvent{ev("ev_free", "Yerevan", june1, 0)},
	}, stubFactory)

	it, err := p.Generate(context.Background(), request(1, 0))
	require.NoError(t, err)
	require.Len(t, it.Items, 1)

	day := it.Items[0]
	require.NotNil(t, day.Event)
	assert.Equal(t, "ev_free", day.Event.ID)
	assert.Nil(t, day.Attraction)
	assert.Equal(t, models.ModeTaxi, day.Transport.Mode)
	assert.Equal(t, 0, day.Transport.DistanceKm)
	assert.Equal(t, 0, day.Transport.Total)
	assert.Equal(t, 0, day.CostPerPerson)
	assert.True(t, it.Totals.WithinBudget)
	assert.Equal(t, "Yerevan", it.StartRegion)
	assert.Equal(t, Algorithm, it.Algorithm)
}

func TestBudgetRescueSubstitutesAttraction(t *testing.T) {
	var events []models.CatalogEvent
	for i := 0; i < 3; i++ {
		events = append(events, ev("ev_paid_"+string(rune('a'+i)), "Yerevan", june1.AddDate(0, 0, i), 4000))
	}
	p := newFixturePlanner(catalog.Data{Events: events, Attractions: fixtureAttractions()}, stubFactory)

	it, err := p.Generate(context.Background(), request(3, 0))
	require.NoError(t, err)
	require.Len(t, it.Items, 3)

	for _, d := range it.Items {
		assert.Nil(t, d.Event, "day %d", d.Day)
		require.NotNil(t, d.Attraction, "day %d", d.Day)
		assert.True(t, d.Rescued)
	}
	// lodging on the first two nights only, no admission paid
	assert.Equal(t, 10000, it.Items[0].CostPerPerson)
	assert.Equal(t, 10000, it.Items[1].CostPerPerson)
	assert.Equal(t, 0, it.Items[2].CostPerPerson)
	assert.Equal(t, 20000, it.Totals.PerPerson)
	assert.False(t, it.Totals.WithinBudget)

	// unused attractions first
	assert.NotEqual(t, it.Items[0].Attraction.ID, it.Items[1].Attraction.ID)
}

func TestBudgetRescueKeepsPaidEventWithoutAlternative(t *testing.T) {
	p := newFixturePlanner(catalog.Data{
		Events: []models.CatalogEvent{ev("ev_syunik", "Syunik", june1, 4000)},
	}, stubFactory)

	req := request(1, 0)
	req.EndRegion = "Syunik"
	it, err := p.Generate(context.Background(), req)
	require.NoError(t, err)

	day := it.Items[0]
	require.NotNil(t, day.Event)
	assert.Nil(t, day.Attraction)
	assert.False(t, day.Rescued)
	assert.Equal(t, 4000+290*180, day.CostPerPerson)
}

func TestRescuedEventNotPickedAgain(t *testing.T) {
	start := june1
	end := june1.AddDate(0, 0, 1)
	long := ev("ev_long", "Tavush", june1, 4000)
	long.StartDate, long.EndDate = &start, &end
	p := newFixturePlanner(catalog.Data{
		Events:      []models.CatalogEvent{long, ev("ev_next", "Tavush", end, 4000)},
		Attractions: fixtureAttractions(),
		Rides: []models.RideOffer{
			{ID: "tp_next", To: "Tavush", EventID: "ev_next", Organizer: models.Organizer{Name: "Ani"}, RidePricing: &models.RidePricing{IsFree: true}},
		},
	}, stubFactory)

	it, err := p.Generate(context.Background(), request(2, 0))
	require.NoError(t, err)
	require.Len(t, it.Items, 2)

	first := it.Items[0]
	assert.True(t, first.Rescued)
	assert.Nil(t, first.Event)
	require.NotNil(t, first.Attraction)
	// the substitute comes from the region the leg was priced to
	assert.Equal(t, "attr_lake", first.Attraction.ID)
	assert.Equal(t, "Tavush", first.Region)

	// ev_long was displaced on day 1 but still counts as used, so day 2
	// travels on ev_next's ride
	second := it.Items[1]
	assert.True(t, second.Rescued)
	assert.Equal(t, models.ModeRideFree, second.Transport.Mode)
	assert.Equal(t, "tp_next", second.Transport.PlanID)
}

func TestBestFreeEvent(t *testing.T) {
	music := func(e models.CatalogEvent) models.CatalogEvent {
		e.Type = models.TypeMusic
		return e
	}
	events := []models.CatalogEvent{
		music(ev("ev_used", "Tavush", june1, 0)),
		music(ev("ev_paid", "Tavush", june1, 2000)),
		music(ev("ev_tomorrow", "Tavush", june1.AddDate(0, 0, 1), 0)),
		ev("ev_square", "Yerevan", june1, 0),
		ev("ev_lake_a", "Tavush", june1, 0),
		music(ev("ev_concert", "Yerevan", june1, 0)),
		ev("ev_lake_b", "Tavush", june1, 0),
	}
	p := newFixturePlanner(catalog.Data{Events: events}, stubFactory)
	ctx := context.Background()

	tests := []struct {
		name      string
		interests []string
		day       time.Time
		want      string
	}{
		// 1.0 for the type match beats the 0.5 unvisited bonus
		{name: "interest wins", interests: []string{"music"}, day: june1, want: "ev_concert"},
		// equal scores keep catalog order
		{name: "unvisited region wins tie", day: june1, want: "ev_lake_a"},
		{name: "nothing free that day", day: june1.AddDate(0, 0, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := p.newSession(ctx, tt.interests, models.LangEn, 1)
			require.NoError(t, err)
			s.state = newTripState("Yerevan", 0)
			s.state.usedEvents["ev_used"] = true

			got := s.bestFreeEvent(tt.day)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.ID)
		})
	}
}

func TestReturnLeg(t *testing.T) {
	p := newFixturePlanner(catalog.Data{
		Events: []models.CatalogEvent{ev("ev_syunik", "Syunik", june1, 0)},
	}, stubFactory)

	req := request(1, 100000)
	req.Passengers = 2
	it, err := p.Generate(context.Background(), req)
	require.NoError(t, err)

	day := it.Items[0]
	assert.Equal(t, "Syunik", day.Region)
	require.NotNil(t, day.Event)
	assert.Equal(t, models.ModeReturn, day.Transport.Mode)
	assert.Equal(t, "Return to Yerevan", day.Transport.Description)

	leg := 290 * 180
	assert.Equal(t, leg, day.Transport.Total)
	assert.Equal(t, leg/2, day.Transport.PerPerson)
	assert.Equal(t, leg, day.CostPerPerson)
	assert.Equal(t, 2*leg, day.CostGroup)
	assert.Equal(t, leg, it.Totals.PerPerson)
	assert.Equal(t, 2*leg, it.Totals.Group)
	assert.True(t, it.Totals.WithinBudget)
	assert.Equal(t, "Yerevan", it.EndRegion)
}

func TestNoReturnLegWhenAlreadyHome(t *testing.T) {
	p := newFixturePlanner(catalog.Data{
		Events: []models.CatalogEvent{ev("ev_home", "Yerevan", june1, 0)},
	}, stubFactory)

	it, err := p.Generate(context.Background(), request(1, 0))
	require.NoError(t, err)
	assert.Equal(t, models.ModeTaxi, it.Items[0].Transport.Mode)
}

func TestFreeEventBeatsBetterPaidEvent(t *testing.T) {
	paid := ev("ev_paid", "Yerevan", june1, 1000)
	paid.Type = models.TypeMusic
	p := newFixturePlanner(catalog.Data{
		Events: []models.CatalogEvent{paid, ev("ev_free", "Tavush", june1, 0)},
	}, stubFactory)

	req := request(1, 100000)
	req.Interests = []string{"music"}
	it, err := p.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "ev_free", it.Items[0].Event.ID)
}

func TestAffordablePaidEventFirst(t *testing.T) {
	cheap := ev("ev_cheap", "Yerevan", june1, 1000)
	pricey := ev("ev_pricey", "Yerevan", june1, 9000)
	pricey.Type = models.TypeMusic
	p := newFixturePlanner(catalog.Data{Events: []models.CatalogEvent{pricey, cheap}}, stubFactory)

	req := request(1, 5000)
	req.Interests = []string{"music"}
	it, err := p.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "ev_cheap", it.Items[0].Event.ID)
	assert.True(t, it.Totals.WithinBudget)
}

func TestEventReusedWhenNothingElse(t *testing.T) {
	start := june1
	end := june1.AddDate(0, 0, 2)
	long := ev("ev_long", "Yerevan", june1, 0)
	long.StartDate, long.EndDate = &start, &end
	p := newFixturePlanner(catalog.Data{Events: []models.CatalogEvent{long}}, stubFactory)

	it, err := p.Generate(context.Background(), request(3, 100000))
	require.NoError(t, err)
	for _, d := range it.Items {
		require.NotNil(t, d.Event)
		assert.Equal(t, "ev_long", d.Event.ID)
	}
}

func TestEmptyCatalogSchedulesNothing(t *testing.T) {
	p := newFixturePlanner(catalog.Data{}, stubFactory)

	req := request(2, 0)
	req.StartRegion = "Syunik"
	it, err := p.Generate(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, it.Items, 2)
	for _, d := range it.Items {
		assert.Nil(t, d.Event)
		assert.Nil(t, d.Attraction)
	}
}

func TestAttractionFollowsInterests(t *testing.T) {
	p := newFixturePlanner(catalog.Data{Attractions: fixtureAttractions()}, stubFactory)

	req := request(1, 0)
	req.Interests = []string{"memorial"}
	it, err := p.Generate(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, it.Items[0].Attraction)
	assert.Equal(t, "attr_memorial", it.Items[0].Attraction.ID)
}

func TestTransportPrefersRides(t *testing.T) {
	rides := []models.RideOffer{
		{ID: "tp_paid_hi", To: "Tavush", EventID: "ev_t", Organizer: models.Organizer{Name: "Hi"}, RidePricing: &models.RidePricing{PricePerSeat: 3000}},
		{ID: "tp_paid_lo", To: "Tavush", EventID: "ev_t", Organizer: models.Organizer{Name: "Lo"}, Route: []string{"Yerevan", "Dilijan"}, RidePricing: &models.RidePricing{PricePerSeat: 1500}},
		{ID: "tp_zero", To: "Tavush", EventID: "ev_t", RidePricing: &models.RidePricing{PricePerSeat: 0}},
		{ID: "tp_free_other", To: "Tavush", EventID: "ev_other", Organizer: models.Organizer{Name: "Other"}, RidePricing: &models.RidePricing{IsFree: true}},
	}
	p := newFixturePlanner(catalog.Data{Rides: rides}, stubFactory)
	s, err := p.newSession(context.Background(), nil, models.LangEn, 3)
	require.NoError(t, err)
	ctx := context.Background()

	paid, err := s.estimateTransport(ctx, "Yerevan", "Tavush", "ev_t")
	require.NoError(t, err)
	assert.Equal(t, models.ModeRidePaid, paid.Mode)
	assert.Equal(t, "tp_paid_lo", paid.PlanID)
	assert.Equal(t, 1500, paid.PerPerson)
	assert.Equal(t, 4500, paid.Total)
	assert.Equal(t, "Travel Plan (Lo)", paid.Description)
	assert.Equal(t, []string{"Yerevan", "Dilijan"}, paid.Route)

	free, err := s.estimateTransport(ctx, "Yerevan", "Tavush", "")
	require.NoError(t, err)
	assert.Equal(t, models.ModeRideFree, free.Mode)
	assert.Equal(t, "Free Travel Plan (Other)", free.Description)
	assert.Zero(t, free.Total)

	taxi, err := s.estimateTransport(ctx, "Tavush", "Syunik", "")
	require.NoError(t, err)
	assert.Equal(t, models.ModeTaxi, taxi.Mode)
	assert.Equal(t, 150, taxi.DistanceKm)
	assert.Equal(t, 150*180, taxi.Total)
	assert.Equal(t, 9000, taxi.PerPerson)
}

func TestLegDistance(t *testing.T) {
	p := New(catalog.NewMemory(fixtureRegions(), catalog.Data{}), DefaultConfig(), stubFactory)
	r := fixtureRegions()

	assert.Equal(t, 0, p.legDistance(r, "Tavush", "Tavush"))
	assert.Equal(t, 150, p.legDistance(r, "Tavush", "Syunik"))
	// unknown regions sit at the default distance, so the floor applies
	// to the overhead alone
	assert.Equal(t, 40, p.legDistance(r, "Nowhere", "Elsewhere"))
	assert.Equal(t, 140, p.legDistance(r, "Yerevan", "Nowhere"))

	cfg := DefaultConfig()
	cfg.LegOverheadKm = 0
	p = New(catalog.NewMemory(r, catalog.Data{}), cfg, stubFactory)
	assert.Equal(t, 30, p.legDistance(r, "Nowhere", "Elsewhere"))
}

func TestTaxiPerPersonRoundsUp(t *testing.T) {
	p := newFixturePlanner(catalog.Data{}, stubFactory)
	s, err := p.newSession(context.Background(), nil, models.LangEn, 7)
	require.NoError(t, err)

	taxi, err := s.estimateTransport(context.Background(), "Yerevan", "Tavush", "")
	require.NoError(t, err)
	assert.Equal(t, 180*180, taxi.Total)
	assert.Equal(t, 4629, taxi.PerPerson) // 32400 / 7 = 4628.57
}

func TestGenerateInvariantsOnSampleCatalog(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	cat := catalog.NewSampleMemory(now)
	regions := cat.Regions().Regions()

	for seed := int64(1); seed <= 25; seed++ {
		r := rand.New(rand.NewSource(seed))
		req := models.ItineraryRequest{
			StartDate:       now.AddDate(0, 0, r.Intn(20)-10).Format("2006-01-02"),
			Days:            1 + r.Intn(10),
			BudgetPerPerson: r.Intn(80000),
			Passengers:      1 + r.Intn(4),
			StartRegion:     regions[r.Intn(len(regions))],
			Interests:       [][]string{nil, {"food"}, {"music", "culture"}}[r.Intn(3)],
		}
		if r.Intn(2) == 0 {
			req.EndRegion = regions[r.Intn(len(regions))]
		}

		p := New(cat, DefaultConfig(), seeded(seed))
		it, err := p.Generate(context.Background(), req)
		require.NoError(t, err)
		require.Len(t, it.Items, req.Days, "seed %d", seed)

		prev := req.StartRegion
		perPerson := 0
		for i, d := range it.Items {
			assert.Equal(t, i+1, d.Day)
			assert.False(t, d.Event != nil && d.Attraction != nil, "seed %d day %d has both", seed, d.Day)
			switch {
			case d.Rescued:
				// the leg was priced before the swap and still goes to
				// the original destination
			case d.Event != nil:
				assert.Equal(t, d.Event.Region, d.Region)
			default:
				assert.Equal(t, prev, d.Region, "seed %d day %d continuity", seed, d.Day)
			}
			prev = d.Region
			perPerson += d.CostPerPerson
		}

		last := it.Items[len(it.Items)-1]
		if prev != req.FinalRegion() {
			assert.Equal(t, models.ModeReturn, last.Transport.Mode, "seed %d", seed)
		} else {
			assert.NotEqual(t, models.ModeReturn, last.Transport.Mode, "seed %d", seed)
		}
		assert.Equal(t, perPerson, it.Totals.PerPerson)
		assert.Equal(t, it.Totals.PerPerson <= req.BudgetPerPerson, it.Totals.WithinBudget)
	}
}

func TestGenerateDeterministicWithFixedSource(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	cat := catalog.NewSampleMemory(now)
	req := models.ItineraryRequest{
		StartDate:       "2025-06-01",
		Days:            5,
		BudgetPerPerson: 60000,
		Interests:       []string{"food", "festival"},
		Passengers:      2,
		StartRegion:     catalog.Yerevan,
		EndRegion:       catalog.Lori,
	}

	a, err := New(cat, DefaultConfig(), seeded(7)).Generate(context.Background(), req)
	require.NoError(t, err)
	b, err := New(cat, DefaultConfig(), seeded(7)).Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateRejectsBadDate(t *testing.T) {
	p := newFixturePlanner(catalog.Data{}, stubFactory)
	req := request(1, 0)
	req.StartDate = "June first"
	_, err := p.Generate(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestEstimateCost(t *testing.T) {
	cat := catalog.NewSampleMemory(time.Now())
	p := New(cat, DefaultConfig(), stubFactory)
	ctx := context.Background()

	res, err := p.EstimateCost(ctx, models.EstimateRequest{Region: catalog.VayotsDzor, EventID: "ev_areni_wine", Passengers: 2})
	require.NoError(t, err)
	assert.Equal(t, models.ModeRideFree, res.Transport.Mode)
	assert.Equal(t, "tp_2", res.Transport.PlanID)
	assert.Equal(t, 130, res.DistanceKm)
	assert.Equal(t, 5000, res.Event.Price)
	assert.Equal(t, 5000, res.TotalPerPerson)
	assert.Equal(t, 10000, res.TotalGroup)

	res, err = p.EstimateCost(ctx, models.EstimateRequest{Region: catalog.Ararat})
	require.NoError(t, err)
	assert.Equal(t, models.ModeRidePaid, res.Transport.Mode)
	assert.Equal(t, 800, res.TotalPerPerson)

	res, err = p.EstimateCost(ctx, models.EstimateRequest{Region: catalog.Aragatsotn, Passengers: 3, EventID: "ev_unknown"})
	require.NoError(t, err)
	assert.Equal(t, models.ModeTaxi, res.Transport.Mode)
	assert.Equal(t, 100, res.DistanceKm)
	assert.Equal(t, 36000, res.Transport.Total)
	assert.Equal(t, 12000, res.Transport.PerPerson)
	assert.True(t, res.Event.IsFree)
	assert.Equal(t, 36000, res.TotalGroup)
}
