package optimizer

import (
	"maps"

	"myStarCompanion/domain"
)

// Result maps each slot to the best relic found for it. Slots with no
// eligible relic are absent.
type Result map[domain.SlotName]domain.RelicRecord

// Score sums statA and statB over both the main and sub stats of r. Missing
// stats count as 0; statA == statB counts that stat twice.
func Score(r domain.RelicRecord, statA, statB string) float64 {
	return r.MainStats.Get(statA) + r.SubStats.Get(statA) +
		r.MainStats.Get(statB) + r.SubStats.Get(statB)
}

// Optimize picks, for every slot, the highest scoring relic among candidates.
// Candidates whose name matches no slot are ignored. On equal scores the relic
// that comes first in candidates wins. candidates is not modified.
func Optimize(candidates []domain.RelicRecord, statA, statB string) Result {
	groups := make(map[domain.SlotName][]domain.RelicRecord, len(slotOrder))
	for _, c := range candidates {
		slot, ok := ClassifySlot(c.Name)
		if !ok {
			continue
		}
		groups[slot] = append(groups[slot], c)
	}

	result := make(Result, len(groups))
	for slot, group := range groups {
		best := group[0]
		bestScore := Score(best, statA, statB)
		for _, c := range group[1:] {
			if s := Score(c, statA, statB); s > bestScore {
				best, bestScore = c, s
			}
		}
		result[slot] = clone(best)
	}

	return result
}

// clone copies the stat maps so the result never aliases caller data.
func clone(r domain.RelicRecord) domain.RelicRecord {
	r.MainStats = maps.Clone(r.MainStats)
	r.SubStats = maps.Clone(r.SubStats)
	return r
}

// Entries lists the result in canonical slot order together with each score.
func (r Result) Entries(statA, statB string) []domain.OptimizedSlot {
	out := make([]domain.OptimizedSlot, 0, len(r))
	for _, slot := range slotOrder {
		relic, ok := r[slot]
		if !ok {
			continue
		}
		out = append(out, domain.OptimizedSlot{
			Slot:  slot,
			Relic: relic,
			Score: Score(relic, statA, statB),
		})
	}
	return out
}

// Missing lists the slots absent from the result, in canonical order.
func (r Result) Missing() []domain.SlotName {
	var out []domain.SlotName
	for _, slot := range slotOrder {
		if _, ok := r[slot]; !ok {
			out = append(out, slot)
		}
	}
	return out
}
