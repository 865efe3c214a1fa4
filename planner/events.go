package planner

import (
	"cmp"
	"slices"
	"time"

	"tripcraft/models"
)

const (
	unvisitedBonus = 0.5
	reusePenalty   = 0.3
	jitterRange    = 0.4
)

type candidate struct {
	event models.CatalogEvent
	score float64
}

// compareCandidates orders free events first. Free events rank by score.
// Paid events at or under budget come before those over it, then rank by
// score.
func compareCandidates(budget int) func(a, b candidate) int {
	return func(a, b candidate) int {
		aFree, bFree := a.event.Pricing.IsFree, b.event.Pricing.IsFree
		if aFree != bFree {
			if aFree {
				return -1
			}
			return 1
		}
		if !aFree {
			aIn := a.event.Pricing.Price <= budget
			bIn := b.event.Pricing.Price <= budget
			if aIn != bIn {
				if aIn {
					return -1
				}
				return 1
			}
		}
		return cmp.Compare(b.score, a.score)
	}
}

func civilDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// occursOn reports whether the event's window covers day, or its
// representative date falls on the same calendar day. Days are compared in
// UTC.
func occursOn(e models.CatalogEvent, day time.Time) bool {
	d := civilDay(day)
	if e.StartDate != nil {
		start := civilDay(*e.StartDate)
		end := start
		if e.EndDate != nil {
			end = civilDay(*e.EndDate)
		}
		if !d.Before(start) && !d.After(end) {
			return true
		}
	}
	return civilDay(e.Date).Equal(d)
}

// selectEventForDate picks the best event happening on day. It does not
// mark anything as used.
func (s *session) selectEventForDate(day time.Time) *models.CatalogEvent {
	var all, unused []models.CatalogEvent
	for _, e := range s.events {
		if !occursOn(e, day) {
			continue
		}
		all = append(all, e)
		if !s.state.usedEvents[e.ID] {
			unused = append(unused, e)
		}
	}
	pool := unused
	if len(pool) == 0 {
		pool = all
	}
	if len(pool) == 0 {
		return nil
	}

	cands := make([]candidate, len(pool))
	for i, e := range pool {
		score := MatchInterests(eventMatchable(e, s.lng), s.interests)
		if !s.state.visitedRegions[e.Region] {
			score += unvisitedBonus
		}
		if s.state.usedEvents[e.ID] {
			score -= reusePenalty
		}
		score += s.rng.Float64() * jitterRange
		cands[i] = candidate{event: e, score: score}
	}
	slices.SortStableFunc(cands, compareCandidates(s.state.remainingBudget))
	return &cands[0].event
}

// bestFreeEvent is the budget rescue search: free, unused, on day, ranked by
// interest plus the unvisited bonus. Ties keep catalog order.
func (s *session) bestFreeEvent(day time.Time) *models.CatalogEvent {
	var best *models.CatalogEvent
	bestScore := 0.0
	for i := range s.events {
		e := &s.events[i]
		if !e.Pricing.IsFree || s.state.usedEvents[e.ID] || !occursOn(*e, day) {
			continue
		}
		score := MatchInterests(eventMatchable(*e, s.lng), s.interests)
		if !s.state.visitedRegions[e.Region] {
			score += unvisitedBonus
		}
		if best == nil || score > bestScore {
			best, bestScore = e, score
		}
	}
	if best == nil {
		return nil
	}
	found := *best
	return &found
}
