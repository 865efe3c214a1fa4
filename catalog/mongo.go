package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tripcraft/db"
	"tripcraft/models"
)

const (
	keyEvents      = "events"
	keyAttractions = "attractions"
	keyRides       = "rides"
)

type MongoOptions struct {
	CacheTTL        time.Duration
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

// Mongo is a Store over the events, attractions, rides and joins
// collections. Whole collections are cached for CacheTTL; every write drops
// the affected snapshot.
type Mongo struct {
	db      *db.DB
	regions *RegionTable
	cache   *cache.Cache
	breaker *gobreaker.CircuitBreaker[any]
}

func NewMongo(d *db.DB, regions *RegionTable, opts MongoOptions) *Mongo {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Minute
	}
	if opts.BreakerFailures == 0 {
		opts.BreakerFailures = 5
	}
	if opts.BreakerTimeout <= 0 {
		opts.BreakerTimeout = 30 * time.Second
	}
	failures := opts.BreakerFailures
	settings := gobreaker.Settings{
		Name:        "catalog-mongo",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     opts.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	}
	return &Mongo{
		db:      d,
		regions: regions,
		cache:   cache.New(opts.CacheTTL, 2*opts.CacheTTL),
		breaker: gobreaker.NewCircuitBreaker[any](settings),
	}
}

func (m *Mongo) Regions() *RegionTable { return m.regions }

// Seed fills empty collections with data. Non-empty collections are left
// alone.
func (m *Mongo) Seed(ctx context.Context, data Data) error {
	if err := seedCollection(ctx, m.db.EventsCollection, data.Events); err != nil {
		return fmt.Errorf("seed events: %w", err)
	}
	if err := seedCollection(ctx, m.db.AttractionsCollection, data.Attractions); err != nil {
		return fmt.Errorf("seed attractions: %w", err)
	}
	if err := seedCollection(ctx, m.db.RidesCollection, data.Rides); err != nil {
		return fmt.Errorf("seed rides: %w", err)
	}
	m.cache.Flush()
	return nil
}

func seedCollection[T any](ctx context.Context, coll *mongo.Collection, items []T) error {
	n, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if n > 0 || len(items) == 0 {
		return nil
	}
	docs := make([]interface{}, len(items))
	for i := range items {
		docs[i] = items[i]
	}
	_, err = coll.InsertMany(ctx, docs)
	if err == nil {
		log.Info().Str("collection", coll.Name()).Int("count", len(docs)).Msg("seeded collection")
	}
	return err
}

func load[T any](ctx context.Context, m *Mongo, key string, coll *mongo.Collection) ([]T, error) {
	if v, ok := m.cache.Get(key); ok {
		return slices.Clone(v.([]T)), nil
	}
	res, err := m.breaker.Execute(func() (any, error) {
		cursor, err := coll.Find(ctx, bson.M{})
		if err != nil {
			return nil, err
		}
		var out []T
		if err := cursor.All(ctx, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	items := res.([]T)
	m.cache.Set(key, items, cache.DefaultExpiration)
	return slices.Clone(items), nil
}

func (m *Mongo) Events(ctx context.Context) ([]models.CatalogEvent, error) {
	return load[models.CatalogEvent](ctx, m, keyEvents, m.db.EventsCollection)
}

func (m *Mongo) Event(ctx context.Context, id string) (models.CatalogEvent, error) {
	events, err := m.Events(ctx)
	if err != nil {
		return models.CatalogEvent{}, err
	}
	for _, e := range events {
		if e.ID == id {
			return e, nil
		}
	}
	return models.CatalogEvent{}, fmt.Errorf("event %q: %w", id, ErrNotFound)
}

func (m *Mongo) Attractions(ctx context.Context) ([]models.Attraction, error) {
	return load[models.Attraction](ctx, m, keyAttractions, m.db.AttractionsCollection)
}

func (m *Mongo) Attraction(ctx context.Context, id string) (models.Attraction, error) {
	attractions, err := m.Attractions(ctx)
	if err != nil {
		return models.Attraction{}, err
	}
	for _, a := range attractions {
		if a.ID == id {
			return a, nil
		}
	}
	return models.Attraction{}, fmt.Errorf("attraction %q: %w", id, ErrNotFound)
}

func (m *Mongo) Rides(ctx context.Context, f models.RideFilter) ([]models.RideOffer, error) {
	rides, err := load[models.RideOffer](ctx, m, keyRides, m.db.RidesCollection)
	if err != nil {
		return nil, err
	}
	out := rides[:0]
	for _, r := range rides {
		if matchRide(r, f) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *Mongo) Ride(ctx context.Context, id string) (models.RideOffer, error) {
	rides, err := m.Rides(ctx, models.RideFilter{})
	if err != nil {
		return models.RideOffer{}, err
	}
	for _, r := range rides {
		if r.ID == id {
			return r, nil
		}
	}
	return models.RideOffer{}, fmt.Errorf("ride %q: %w", id, ErrNotFound)
}

func (m *Mongo) AddEvent(ctx context.Context, e models.CatalogEvent) error {
	if _, err := m.db.EventsCollection.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	m.cache.Delete(keyEvents)
	return nil
}

func (m *Mongo) DeleteEvent(ctx context.Context, id string) error {
	res, err := m.db.EventsCollection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	m.cache.Delete(keyEvents)
	if res.DeletedCount == 0 {
		return fmt.Errorf("event %q: %w", id, ErrNotFound)
	}
	return nil
}

func (m *Mongo) AddRide(ctx context.Context, r models.RideOffer) error {
	if _, err := m.db.RidesCollection.InsertOne(ctx, r); err != nil {
		return fmt.Errorf("insert ride: %w", err)
	}
	m.cache.Delete(keyRides)
	return nil
}

// JoinRide decrements seats only while some are left, so concurrent joins
// can never oversell.
func (m *Mongo) JoinRide(ctx context.Context, id, userID string) (int, error) {
	filter := bson.M{"id": id, "seats": bson.M{"$gt": 0}}
	update := bson.M{"$inc": bson.M{"seats": -1}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ride models.RideOffer
	err := m.db.RidesCollection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&ride)
	if errors.Is(err, mongo.ErrNoDocuments) {
		n, cerr := m.db.RidesCollection.CountDocuments(ctx, bson.M{"id": id})
		if cerr == nil && n > 0 {
			return 0, ErrNoSeats
		}
		return 0, fmt.Errorf("ride %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("join ride: %w", err)
	}
	m.cache.Delete(keyRides)

	join := Join{PlanID: id, UserID: userID, JoinedAt: time.Now()}
	if _, err := m.db.JoinsCollection.InsertOne(ctx, join); err != nil {
		log.Error().Err(err).Str("plan", id).Msg("failed to record join")
	}
	return ride.Seats, nil
}

func (m *Mongo) JoinedRides(ctx context.Context, userID string) ([]Join, error) {
	cursor, err := m.db.JoinsCollection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("find joins: %w", err)
	}
	var out []Join
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode joins: %w", err)
	}
	return out, nil
}
