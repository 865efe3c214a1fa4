package models

import "time"

type Organizer struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

type RidePricing struct {
	IsFree       bool `json:"isFree" bson:"isFree"`
	PricePerSeat int  `json:"pricePerSeat" bson:"pricePerSeat"`
}

// RideOffer is a shared ride ("travel plan") towards a region, usually tied
// to an event. Seats are decremented by the join flow only.
type RideOffer struct {
	ID          string       `json:"id" bson:"id"`
	Organizer   Organizer    `json:"organizer" bson:"organizer"`
	From        string       `json:"from" bson:"from"`
	To          string       `json:"to" bson:"to"`
	Date        time.Time    `json:"date" bson:"date"`
	Seats       int          `json:"seats" bson:"seats"`
	Route       []string     `json:"route" bson:"route"`
	EventID     string       `json:"eventId" bson:"eventId"`
	RidePricing *RidePricing `json:"ridePricing,omitempty" bson:"ridePricing,omitempty"`
	CreatedAt   time.Time    `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
}

// IsFree reports whether the ride costs nothing. A missing pricing block
// counts as paid at zero, which never qualifies as a priced seat either.
func (r RideOffer) IsFree() bool {
	return r.RidePricing != nil && r.RidePricing.IsFree
}

func (r RideOffer) PricePerSeat() int {
	if r.RidePricing == nil {
		return 0
	}
	return r.RidePricing.PricePerSeat
}

// RideFilter narrows ride listings. Empty fields match everything.
type RideFilter struct {
	To      string
	EventID string
}

// RideListItem is a ride offer decorated with its event's localized title.
type RideListItem struct {
	RideOffer
	EventTitle string `json:"eventTitle"`
}

// JoinedPlan is the profile view of a ride the user joined.
type JoinedPlan struct {
	ID           string    `json:"id"`
	EventTitle   string    `json:"eventTitle"`
	EventDate    time.Time `json:"eventDate"`
	FromLocation string    `json:"fromLocation"`
	ToLocation   string    `json:"toLocation"`
	JoinedAt     time.Time `json:"joinedAt"`
}

// SeatUpdate is pushed to subscribers after a successful join.
type SeatUpdate struct {
	PlanID    string `json:"planId"`
	SeatsLeft int    `json:"seatsLeft"`
}
