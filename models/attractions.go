package models

// Attraction is a static sight. Which region it belongs to is decided by the
// catalog's region table, not by the record itself.
type Attraction struct {
	ID        string `json:"id" bson:"id"`
	TitleHy   string `json:"titleHy" bson:"titleHy"`
	TitleEn   string `json:"titleEn" bson:"titleEn"`
	SummaryHy string `json:"summaryHy" bson:"summaryHy"`
	SummaryEn string `json:"summaryEn" bson:"summaryEn"`
	HistoryHy string `json:"historyHy" bson:"historyHy"`
	HistoryEn string `json:"historyEn" bson:"historyEn"`
	ImageURL  string `json:"imageUrl" bson:"imageUrl"`
}

func (a Attraction) Title(lng string) string {
	if lng == LangEn {
		return a.TitleEn
	}
	return a.TitleHy
}

func (a Attraction) Summary(lng string) string {
	if lng == LangEn {
		return a.SummaryEn
	}
	return a.SummaryHy
}

func (a Attraction) History(lng string) string {
	if lng == LangEn {
		return a.HistoryEn
	}
	return a.HistoryHy
}

// PublicAttraction is the localized list/itinerary view.
type PublicAttraction struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	ImageURL string `json:"imageUrl"`
}

func (a Attraction) Public(lng string) PublicAttraction {
	return PublicAttraction{
		ID:       a.ID,
		Title:    a.Title(lng),
		Summary:  a.Summary(lng),
		ImageURL: a.ImageURL,
	}
}

type AttractionDetail struct {
	PublicAttraction
	History string `json:"history"`
}
