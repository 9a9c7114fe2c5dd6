package optimizer

import (
	"strings"

	"myStarCompanion/domain"
)

// slotOrder is the canonical slot order. Classification checks labels in this
// order, so a name containing several labels resolves to the earliest one.
var slotOrder = [...]domain.SlotName{
	domain.SlotHead,
	domain.SlotHands,
	domain.SlotBody,
	domain.SlotFeet,
	domain.SlotSphere,
	domain.SlotLink,
}

// Slots returns the slots in canonical order.
func Slots() []domain.SlotName {
	out := make([]domain.SlotName, len(slotOrder))
	copy(out, slotOrder[:])
	return out
}

// ClassifySlot infers the slot of a relic from its display name using a
// case-sensitive substring match. ok is false when no slot label occurs.
func ClassifySlot(name string) (slot domain.SlotName, ok bool) {
	for _, s := range slotOrder {
		if strings.Contains(name, string(s)) {
			return s, true
		}
	}
	return "", false
}
