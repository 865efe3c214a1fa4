package events

import (
	"errors"

	"tripcraft/models"
)

const (
	PricingFree = "free"
	PricingPaid = "paid"
)

var defaultLocation = models.Coordinates{Latitude: 40.1792, Longitude: 44.4991}

var transportOptions = []string{"Bus lines", "Taxi", "Tour agency"}

// filterEvents applies the list query. Empty arguments match everything and
// unknown pricing values are ignored.
func filterEvents(all []models.CatalogEvent, region, typ, pricing string) []models.CatalogEvent {
	out := make([]models.CatalogEvent, 0, len(all))
	for _, e := range all {
		if region != "" && e.Region != region {
			continue
		}
		if typ != "" && e.Type != typ {
			continue
		}
		if pricing == PricingFree && !e.Pricing.IsFree {
			continue
		}
		if pricing == PricingPaid && e.Pricing.IsFree {
			continue
		}
		out = append(out, e)
	}
	return out
}

func checkWindow(req createEventRequest) error {
	if req.EndDate != nil && req.StartDate == nil {
		return errors.New("endDate requires startDate")
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return errors.New("endDate must not be before startDate")
	}
	if req.BudgetMin != nil && req.BudgetMax != nil && *req.BudgetMax < *req.BudgetMin {
		return errors.New("budgetMax must not be below budgetMin")
	}
	if !req.Pricing.IsFree && req.Pricing.Price < 0 {
		return errors.New("price must not be negative")
	}
	return nil
}

// toEvent fills a missing translation from the other language.
func (req createEventRequest) toEvent() models.CatalogEvent {
	pick := func(v, fallback string) string {
		if v == "" {
			return fallback
		}
		return v
	}
	pricing := req.Pricing
	if pricing.IsFree {
		pricing.Price = 0
	}
	return models.CatalogEvent{
		Region:        req.Region,
		TitleHy:       pick(req.TitleHy, req.TitleEn),
		TitleEn:       pick(req.TitleEn, req.TitleHy),
		DescriptionHy: pick(req.DescriptionHy, req.DescriptionEn),
		DescriptionEn: pick(req.DescriptionEn, req.DescriptionHy),
		AreaHy:        pick(req.AreaHy, req.AreaEn),
		AreaEn:        pick(req.AreaEn, req.AreaHy),
		Type:          req.Type,
		Date:          req.Date,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		BudgetMin:     req.BudgetMin,
		BudgetMax:     req.BudgetMax,
		ImageURL:      req.ImageURL,
		Pricing:       pricing,
	}
}
