package itinerary

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tripcraft/models"
)

var ErrRouteNotFound = errors.New("route not found")

// RouteStore keeps each user's saved routes, newest first.
type RouteStore interface {
	List(ctx context.Context, userID string) ([]models.SavedRoute, error)
	Get(ctx context.Context, userID, id string) (models.SavedRoute, error)
	Create(ctx context.Context, route models.SavedRoute) error
	Delete(ctx context.Context, userID, id string) error
}

func describeRoute(days int, interests []string) string {
	return fmt.Sprintf("Route with %d days, %s interests", days, strings.Join(interests, ", "))
}

type MemoryStore struct {
	mu     sync.RWMutex
	routes map[string][]models.SavedRoute
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{routes: make(map[string][]models.SavedRoute)}
}

func (m *MemoryStore) List(ctx context.Context, userID string) ([]models.SavedRoute, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.routes[userID]), nil
}

func (m *MemoryStore) Get(ctx context.Context, userID, id string) (models.SavedRoute, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.routes[userID] {
		if r.ID == id {
			return r, nil
		}
	}
	return models.SavedRoute{}, ErrRouteNotFound
}

func (m *MemoryStore) Create(ctx context.Context, route models.SavedRoute) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[route.UserID] = slices.Insert(m.routes[route.UserID], 0, route)
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.routes[userID]
	idx := slices.IndexFunc(list, func(r models.SavedRoute) bool { return r.ID == id })
	if idx < 0 {
		return ErrRouteNotFound
	}
	m.routes[userID] = slices.Delete(list, idx, idx+1)
	return nil
}

// MongoStore keeps routes in the routes collection.
type MongoStore struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll, timeout: 5 * time.Second}
}

func (s *MongoStore) List(ctx context.Context, userID string) ([]models.SavedRoute, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find routes: %w", err)
	}
	defer cursor.Close(ctx)

	routes := []models.SavedRoute{}
	if err := cursor.All(ctx, &routes); err != nil {
		return nil, fmt.Errorf("decode routes: %w", err)
	}
	return routes, nil
}

func (s *MongoStore) Get(ctx context.Context, userID, id string) (models.SavedRoute, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var route models.SavedRoute
	err := s.coll.FindOne(ctx, bson.M{"userId": userID, "id": id}).Decode(&route)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return route, ErrRouteNotFound
	}
	if err != nil {
		return route, fmt.Errorf("find route %s: %w", id, err)
	}
	return route, nil
}

func (s *MongoStore) Create(ctx context.Context, route models.SavedRoute) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.coll.InsertOne(ctx, route); err != nil {
		return fmt.Errorf("insert route: %w", err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, userID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.coll.DeleteOne(ctx, bson.M{"userId": userID, "id": id})
	if err != nil {
		return fmt.Errorf("delete route %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrRouteNotFound
	}
	return nil
}
