// Package autocom serves title prefix suggestions for events and
// attractions. Titles live in a Redis sorted set per language when Redis is
// configured and in a sorted slice otherwise.
package autocom

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"

	"tripcraft/models"
)

const (
	KindEvent      = "event"
	KindAttraction = "attraction"

	keyPrefix    = "autocomplete:"
	DefaultLimit = 10
)

type Suggestion struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Title string `json:"title"`
}

// Members are "<lower title>|<kind>|<id>|<title>" so that lexicographic
// ranges match case-insensitive prefixes.
func member(s Suggestion) string {
	return strings.ToLower(s.Title) + "|" + s.Kind + "|" + s.ID + "|" + s.Title
}

func parseMember(m string) (Suggestion, bool) {
	parts := strings.SplitN(m, "|", 4)
	if len(parts) != 4 {
		return Suggestion{}, false
	}
	return Suggestion{Kind: parts[1], ID: parts[2], Title: parts[3]}, true
}

type Suggester struct {
	client *redis.Client

	mu      sync.RWMutex
	members map[string][]string // lng -> sorted members
}

// New uses client when non-nil.
func New(client *redis.Client) *Suggester {
	return &Suggester{client: client, members: make(map[string][]string)}
}

func eventSuggestions(e models.CatalogEvent) map[string]Suggestion {
	return map[string]Suggestion{
		models.LangHy: {ID: e.ID, Kind: KindEvent, Title: e.TitleHy},
		models.LangEn: {ID: e.ID, Kind: KindEvent, Title: e.TitleEn},
	}
}

func attractionSuggestions(a models.Attraction) map[string]Suggestion {
	return map[string]Suggestion{
		models.LangHy: {ID: a.ID, Kind: KindAttraction, Title: a.TitleHy},
		models.LangEn: {ID: a.ID, Kind: KindAttraction, Title: a.TitleEn},
	}
}

// Index adds every title of events and attractions.
func (s *Suggester) Index(ctx context.Context, events []models.CatalogEvent, attractions []models.Attraction) error {
	for _, e := range events {
		if err := s.add(ctx, eventSuggestions(e)); err != nil {
			return err
		}
	}
	for _, a := range attractions {
		if err := s.add(ctx, attractionSuggestions(a)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Suggester) AddEvent(ctx context.Context, e models.CatalogEvent) error {
	return s.add(ctx, eventSuggestions(e))
}

func (s *Suggester) RemoveEvent(ctx context.Context, e models.CatalogEvent) error {
	for lng, sug := range eventSuggestions(e) {
		m := member(sug)
		if s.client != nil {
			if err := s.client.ZRem(ctx, keyPrefix+lng, m).Err(); err != nil {
				return fmt.Errorf("remove %s from autocomplete: %w", e.ID, err)
			}
			continue
		}
		s.mu.Lock()
		s.members[lng] = slices.DeleteFunc(s.members[lng], func(x string) bool { return x == m })
		s.mu.Unlock()
	}
	return nil
}

func (s *Suggester) add(ctx context.Context, byLang map[string]Suggestion) error {
	for lng, sug := range byLang {
		if sug.Title == "" {
			continue
		}
		m := member(sug)
		if s.client != nil {
			if err := s.client.ZAdd(ctx, keyPrefix+lng, redis.Z{Score: 0, Member: m}).Err(); err != nil {
				return fmt.Errorf("add %s to autocomplete: %w", sug.ID, err)
			}
			continue
		}
		s.mu.Lock()
		list := s.members[lng]
		if i, found := slices.BinarySearch(list, m); !found {
			s.members[lng] = slices.Insert(list, i, m)
		}
		s.mu.Unlock()
	}
	return nil
}

// Suggest returns up to limit titles in lng starting with query.
func (s *Suggester) Suggest(ctx context.Context, query, lng string, limit int) ([]Suggestion, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []Suggestion{}, nil
	}
	lng = models.NormalizeLang(lng)
	if limit <= 0 {
		limit = DefaultLimit
	}

	var raw []string
	if s.client != nil {
		res, err := s.client.ZRangeByLex(ctx, keyPrefix+lng, &redis.ZRangeBy{
			Min:    "[" + query,
			Max:    "[" + query + "\xff",
			Offset: 0,
			Count:  int64(limit),
		}).Result()
		if err != nil {
			return nil, fmt.Errorf("search autocomplete: %w", err)
		}
		raw = res
	} else {
		raw = s.scan(query, lng, limit)
	}

	out := make([]Suggestion, 0, len(raw))
	for _, m := range raw {
		if sug, ok := parseMember(m); ok {
			out = append(out, sug)
		}
	}
	return out, nil
}

func (s *Suggester) scan(prefix, lng string, limit int) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.members[lng]
	i, _ := slices.BinarySearch(list, prefix)
	var out []string
	for ; i < len(list) && len(out) < limit; i++ {
		if !strings.HasPrefix(list[i], prefix) {
			break
		}
		out = append(out, list[i])
	}
	return out
}
