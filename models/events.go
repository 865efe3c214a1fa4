package models

import "time"

// Event categories used by the catalog.
const (
	TypeFestival  = "Festival"
	TypeCulture   = "Culture"
	TypeMusic     = "Music"
	TypeFood      = "Food"
	TypeSport     = "Sport"
	TypeTradition = "Tradition"
	TypeMarket    = "Market"
)

// Supported language tags. Hy is the primary one.
const (
	LangHy = "hy"
	LangEn = "en"
)

// NormalizeLang maps anything other than "en" to the primary language.
func NormalizeLang(lng string) string {
	if lng == LangEn {
		return LangEn
	}
	return LangHy
}

type EventPricing struct {
	IsFree bool `json:"isFree" bson:"isFree"`
	Price  int  `json:"price" bson:"price"`
}

// CatalogEvent is the raw bilingual event record. It is never mutated once
// loaded; localized views are produced with Public.
type CatalogEvent struct {
	ID            string       `json:"id" bson:"id"`
	Region        string       `json:"region" bson:"region"`
	TitleHy       string       `json:"titleHy" bson:"titleHy"`
	TitleEn       string       `json:"titleEn" bson:"titleEn"`
	DescriptionHy string       `json:"descriptionHy" bson:"descriptionHy"`
	DescriptionEn string       `json:"descriptionEn" bson:"descriptionEn"`
	AreaHy        string       `json:"areaHy" bson:"areaHy"`
	AreaEn        string       `json:"areaEn" bson:"areaEn"`
	Type          string       `json:"type" bson:"type"`
	Date          time.Time    `json:"date" bson:"date"`
	StartDate     *time.Time   `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate       *time.Time   `json:"endDate,omitempty" bson:"endDate,omitempty"`
	BudgetMin     *int         `json:"budgetMin,omitempty" bson:"budgetMin,omitempty"`
	BudgetMax     *int         `json:"budgetMax,omitempty" bson:"budgetMax,omitempty"`
	ImageURL      string       `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Pricing       EventPricing `json:"pricing" bson:"pricing"`
	CreatedAt     time.Time    `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
}

func (e CatalogEvent) Title(lng string) string {
	if lng == LangEn {
		return e.TitleEn
	}
	return e.TitleHy
}

func (e CatalogEvent) Description(lng string) string {
	if lng == LangEn {
		return e.DescriptionEn
	}
	return e.DescriptionHy
}

func (e CatalogEvent) Area(lng string) string {
	if lng == LangEn {
		return e.AreaEn
	}
	return e.AreaHy
}

// AdmissionCost is what one person pays to attend.
func (e CatalogEvent) AdmissionCost() int {
	if e.Pricing.IsFree {
		return 0
	}
	return e.Pricing.Price
}

// PublicEvent is the localized view returned to clients.
type PublicEvent struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Region      string       `json:"region"`
	Area        string       `json:"area"`
	Type        string       `json:"type"`
	Date        time.Time    `json:"date"`
	StartDate   *time.Time   `json:"startDate,omitempty"`
	EndDate     *time.Time   `json:"endDate,omitempty"`
	BudgetMin   *int         `json:"budgetMin,omitempty"`
	BudgetMax   *int         `json:"budgetMax,omitempty"`
	ImageURL    string       `json:"imageUrl,omitempty"`
	Pricing     EventPricing `json:"pricing"`
}

func (e CatalogEvent) Public(lng string) PublicEvent {
	return PublicEvent{
		ID:          e.ID,
		Title:       e.Title(lng),
		Description: e.Description(lng),
		Region:      e.Region,
		Area:        e.Area(lng),
		Type:        e.Type,
		Date:        e.Date,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		BudgetMin:   e.BudgetMin,
		BudgetMax:   e.BudgetMax,
		ImageURL:    e.ImageURL,
		Pricing:     e.Pricing,
	}
}

// EventDetail extends the public view with the static detail fields.
type EventDetail struct {
	PublicEvent
	Location  Coordinates `json:"location"`
	Transport []string    `json:"transport"`
	Nearby    []string    `json:"nearby"`
}

type Coordinates struct {
	Latitude  float64 `json:"lat" bson:"lat"`
	Longitude float64 `json:"lng" bson:"lng"`
}
