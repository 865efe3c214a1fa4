package planner

import "tripcraft/models"

// selectAttractionForRegion falls back to a sight in region, preferring ones
// not yet used this trip.
func (s *session) selectAttractionForRegion(region string) *models.Attraction {
	var all, unused []models.Attraction
	for _, id := range s.regions.AttractionIDs(region) {
		a, ok := s.attractions[id]
		if !ok {
			continue
		}
		all = append(all, a)
		if !s.state.usedAttractions[id] {
			unused = append(unused, a)
		}
	}
	pool := unused
	if len(pool) == 0 {
		pool = all
	}
	if len(pool) == 0 {
		return nil
	}

	if len(s.interests) == 0 {
		pick := pool[s.rng.Intn(len(pool))]
		return &pick
	}

	bestIdx, bestScore := -1, 0.0
	for i, a := range pool {
		score := MatchInterests(attractionMatchable(a, s.lng), s.interests)
		if s.state.usedAttractions[a.ID] {
			score -= reusePenalty
		}
		score += s.rng.Float64() * jitterRange
		if bestIdx < 0 || score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	pick := pool[bestIdx]
	return &pick
}
