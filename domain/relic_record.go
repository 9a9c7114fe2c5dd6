package domain

import "math"

// SlotName is the equipment position a relic occupies.
type SlotName string

const (
	SlotHead   SlotName = "Head"
	SlotHands  SlotName = "Hands"
	SlotBody   SlotName = "Body"
	SlotFeet   SlotName = "Feet"
	SlotSphere SlotName = "Sphere"
	SlotLink   SlotName = "Link"
)

// StatMap maps a statistic name (e.g. "Crit Rate") to its value.
type StatMap map[string]float64

// Get returns the value for name, or 0 when the stat is absent.
func (m StatMap) Get(name string) float64 {
	return m[name]
}

// Finite reports whether every value is a finite number.
func (m StatMap) Finite() bool {
	for _, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// RelicRecord is an owned relic as seen by the optimizer.
type RelicRecord struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	MainStats StatMap `json:"main_stats"`
	SubStats  StatMap `json:"sub_stats"`
}

// OptimizedSlot is one entry of an optimization result, in slot order.
type OptimizedSlot struct {
	Slot  SlotName    `json:"slot"`
	Relic RelicRecord `json:"relic"`
	Score float64     `json:"score"`
}
