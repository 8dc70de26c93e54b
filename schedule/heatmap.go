// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package schedule

import "sort"

// AvailabilityPair is one row of the availability relation: the named
// response is available at the named slot.
type AvailabilityPair struct {
	ResponseID string
	SlotID     string
}

// Heatmap aggregates the full availability relation for an event into
// per-slot participant sets. It is a commutative reduction: input order
// never affects the result, and rebuilding from a fresh read of the
// relation always yields a consistent snapshot.
type Heatmap struct {
	total int
	sets  map[string]map[string]struct{} // slot id -> set of response ids
}

// BuildHeatmap computes the heatmap from the availability relation and
// the event's total participant count. Slots nobody selected are simply
// absent (count 0).
func BuildHeatmap(pairs []AvailabilityPair, totalParticipants int) *Heatmap {
	h := &Heatmap{
		total: totalParticipants,
		sets:  make(map[string]map[string]struct{}),
	}
	for _, p := range pairs {
		set := h.sets[p.SlotID]
		if set == nil {
			set = make(map[string]struct{})
			h.sets[p.SlotID] = set
		}
		set[p.ResponseID] = struct{}{}
	}
	return h
}

// Count returns how many participants are available at the slot.
func (h *Heatmap) Count(slotID string) int {
	return len(h.sets[slotID])
}

// FillRatio returns count/totalParticipants for the slot, the basis for
// heatmap cell intensity. Zero participants means zero intensity, not an
// error.
func (h *Heatmap) FillRatio(slotID string) float64 {
	if h.total == 0 {
		return 0
	}
	return float64(h.Count(slotID)) / float64(h.total)
}

// Participants returns the sorted response ids available at the slot.
func (h *Heatmap) Participants(slotID string) []string {
	set := h.sets[slotID]
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// TotalParticipants returns the event's responder count.
func (h *Heatmap) TotalParticipants() int {
	return h.total
}

// SlotIDs returns the sorted ids of every slot with at least one
// available participant.
func (h *Heatmap) SlotIDs() []string {
	ids := make([]string, 0, len(h.sets))
	for id := range h.sets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// intersection returns the response ids present in every slot's set. An
// empty slot list yields an empty result.
func (h *Heatmap) intersection(slotIDs []string) map[string]struct{} {
	if len(slotIDs) == 0 {
		return map[string]struct{}{}
	}

	acc := make(map[string]struct{}, h.Count(slotIDs[0]))
	for id := range h.sets[slotIDs[0]] {
		acc[id] = struct{}{}
	}

	for _, slotID := range slotIDs[1:] {
		set := h.sets[slotID]
		for id := range acc {
			if _, ok := set[id]; !ok {
				delete(acc, id)
			}
		}
		if len(acc) == 0 {
			break
		}
	}

	return acc
}
