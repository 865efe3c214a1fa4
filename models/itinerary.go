package models

import (
	"fmt"
	"time"
)

// Transport modes.
const (
	ModeRideFree = "ride_free"
	ModeRidePaid = "ride_paid"
	ModeTaxi     = "taxi"
	ModeReturn   = "return"
)

// ItineraryRequest is the body of POST /api/itinerary.
type ItineraryRequest struct {
	StartDate       string   `json:"startDate" validate:"required,tripdate"`
	Days            int      `json:"days" validate:"required,min=1,max=90"`
	BudgetPerPerson int      `json:"budgetPerPerson" validate:"min=0"`
	Interests       []string `json:"interests,omitempty"`
	PreferredPlaces []string `json:"preferredPlaces,omitempty"`
	Passengers      int      `json:"passengers,omitempty" validate:"omitempty,min=1"`
	StartRegion     string   `json:"startRegion" validate:"required"`
	EndRegion       string   `json:"endRegion,omitempty"`
	Lng             string   `json:"lng,omitempty" validate:"omitempty,oneof=hy en"`
}

// Date layouts accepted for startDate.
var startDateLayouts = []string{"2006-01-02", time.RFC3339, time.RFC3339Nano}

// ParseTripDate parses a start date in one of the accepted layouts.
func ParseTripDate(s string) (time.Time, error) {
	for _, layout := range startDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid start date %q", s)
}

// PassengerCount applies the default of one traveller.
func (r ItineraryRequest) PassengerCount() int {
	if r.Passengers <= 0 {
		return 1
	}
	return r.Passengers
}

// FinalRegion is where the trip has to end.
func (r ItineraryRequest) FinalRegion() string {
	if r.EndRegion != "" {
		return r.EndRegion
	}
	return r.StartRegion
}

type Transport struct {
	Mode        string   `json:"mode"`
	PerPerson   int      `json:"perPerson"`
	Total       int      `json:"total"`
	Description string   `json:"description,omitempty"`
	PlanID      string   `json:"planId,omitempty"`
	Route       []string `json:"route,omitempty"`
	DistanceKm  int      `json:"distanceKm"`
}

// ItineraryDay is one generated day. Event and Attraction are never both set.
type ItineraryDay struct {
	Day           int               `json:"day"`
	Date          time.Time         `json:"date"`
	Region        string            `json:"region"`
	Event         *PublicEvent      `json:"event"`
	Attraction    *PublicAttraction `json:"attraction"`
	Transport     *Transport        `json:"transport"`
	CostPerPerson int               `json:"costPerPerson"`
	CostGroup     int               `json:"costGroup"`
	Rescued       bool              `json:"rescued,omitempty"`
}

type Totals struct {
	PerPerson    int  `json:"perPerson"`
	Group        int  `json:"group"`
	WithinBudget bool `json:"withinBudget"`
}

// Itinerary is the planner result.
type Itinerary struct {
	Items       []ItineraryDay `json:"items"`
	Totals      Totals         `json:"totals"`
	StartRegion string         `json:"startRegion"`
	EndRegion   string         `json:"endRegion"`
	Algorithm   string         `json:"algorithm"`
}

// SavedRoute is a user's stored trip. Stops holds whatever the client sent,
// usually a generated itinerary.
type SavedRoute struct {
	ID          string    `json:"id" bson:"id"`
	UserID      string    `json:"-" bson:"userId"`
	Name        string    `json:"name" bson:"name"`
	Days        int       `json:"days" bson:"days"`
	Budget      int       `json:"budget" bson:"budget"`
	Interests   []string  `json:"interests" bson:"interests"`
	Stops       any       `json:"stops" bson:"stops"`
	Description string    `json:"description" bson:"description"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// SavedRouteRequest is the body of POST /api/routes.
type SavedRouteRequest struct {
	Name      string   `json:"name" validate:"required,min=1"`
	Days      int      `json:"days" validate:"required,min=1"`
	Budget    int      `json:"budget" validate:"min=0"`
	Interests []string `json:"interests" validate:"required"`
	Stops     any      `json:"stops"`
}

// EstimateRequest is the body of POST /api/estimate. Region and EventID are
// both optional filters.
type EstimateRequest struct {
	Region     string `json:"region"`
	EventID    string `json:"eventId"`
	Passengers int    `json:"passengers,omitempty" validate:"omitempty,min=1"`
}

func (r EstimateRequest) PassengerCount() int {
	if r.Passengers <= 0 {
		return 1
	}
	return r.Passengers
}

type EstimateEvent struct {
	IsFree bool `json:"isFree"`
	Price  int  `json:"price"`
}

// EstimateResult is a one-off cost estimate for reaching a region or event.
type EstimateResult struct {
	Region         string        `json:"region"`
	EventID        string        `json:"eventId,omitempty"`
	Passengers     int           `json:"passengers"`
	DistanceKm     int           `json:"distanceKm"`
	Transport      Transport     `json:"transport"`
	Event          EstimateEvent `json:"event"`
	TotalPerPerson int           `json:"totalPerPerson"`
	TotalGroup     int           `json:"totalGroup"`
}
