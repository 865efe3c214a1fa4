// Package catalog holds the events, attractions and ride offers the planner
// and the HTTP handlers read from.
package catalog

import (
	"context"
	"errors"
	"time"

	"tripcraft/models"
)

var (
	ErrNotFound = errors.New("not found")
	ErrNoSeats  = errors.New("no seats left")
)

// Catalog is the read side. Implementations must be safe for concurrent use
// and must hand out copies, never their internal slices.
type Catalog interface {
	Events(ctx context.Context) ([]models.CatalogEvent, error)
	Event(ctx context.Context, id string) (models.CatalogEvent, error)
	Attractions(ctx context.Context) ([]models.Attraction, error)
	Attraction(ctx context.Context, id string) (models.Attraction, error)
	Rides(ctx context.Context, f models.RideFilter) ([]models.RideOffer, error)
	Ride(ctx context.Context, id string) (models.RideOffer, error)
	Regions() *RegionTable
}

// Store adds the mutations used by the provider and join flows.
type Store interface {
	Catalog
	AddEvent(ctx context.Context, e models.CatalogEvent) error
	DeleteEvent(ctx context.Context, id string) error
	AddRide(ctx context.Context, r models.RideOffer) error
	JoinRide(ctx context.Context, id, userID string) (int, error)
	JoinedRides(ctx context.Context, userID string) ([]Join, error)
}

// Join records a user taking a seat on a ride.
type Join struct {
	PlanID   string    `bson:"planId"`
	UserID   string    `bson:"userId"`
	JoinedAt time.Time `bson:"joinedAt"`
}

// RidesTo lists rides heading to region, scoped to one event when eventID is
// set.
func RidesTo(ctx context.Context, c Catalog, region, eventID string) ([]models.RideOffer, error) {
	return c.Rides(ctx, models.RideFilter{To: region, EventID: eventID})
}

// RegionName localizes a region with the catalog's table.
func RegionName(c Catalog, region, lng string) string {
	return c.Regions().Name(region, lng)
}

func matchRide(r models.RideOffer, f models.RideFilter) bool {
	if f.To != "" && r.To != f.To {
		return false
	}
	if f.EventID != "" && r.EventID != f.EventID {
		return false
	}
	return true
}
