package value

import (
	"math"

	"slider-button/internal/domain/model"
)

// Model is the capability descriptor for one entity under one slider configuration.
// It is rebuilt per render from the entity's kind and the card's overrides.
type Model struct {
	Kind   model.Kind
	Min    float64
	Max    float64
	Step   float64
	Invert bool

	// SubMin/SubMax bound the live value while dragging.
	SubMin float64
	SubMax float64
}

type kindDefaults struct {
	min, max, step float64
}

var defaults = map[model.Kind]kindDefaults{
	model.KindBinary:     {0, 1, 1},
	model.KindPercentage: {0, 100, 5},
	model.KindRanged:     {0, 100, 1},
}

// New selects the descriptor for e. Precedence for min/max/step is card override,
// then the entity's self-described range, then the kind default.
func New(e model.Entity, s model.SliderConfig) Model {
	d, ok := defaults[e.Kind]
	if !ok {
		d = defaults[model.KindPercentage]
	}
	m := Model{Kind: e.Kind, Min: d.min, Max: d.max, Step: d.step, Invert: e.Invert}
	if e.HasRange && e.Kind != model.KindBinary {
		m.Min, m.Max = e.Min, e.Max
		if e.Step > 0 {
			m.Step = e.Step
		}
	}
	if s.Min != nil {
		m.Min = *s.Min
	}
	if s.Max != nil {
		m.Max = *s.Max
	}
	if s.Step != nil {
		m.Step = *s.Step
	}
	if s.Invert != nil {
		m.Invert = *s.Invert
	}
	if m.Max < m.Min {
		m.Min, m.Max = m.Max, m.Min
	}
	m.Step = NormalizeStep(m.Step)

	m.SubMin, m.SubMax = m.Min, m.Max
	if s.MinValue != nil {
		m.SubMin = Clamp(*s.MinValue, m.Min, m.Max)
	}
	if s.MaxValue != nil {
		m.SubMax = Clamp(*s.MaxValue, m.Min, m.Max)
	}
	if m.SubMin > m.SubMax {
		m.SubMin, m.SubMax = m.SubMax, m.SubMin
	}
	return m
}

// Percentage is the display percentage of v, honouring Invert.
func (m Model) Percentage(v float64) int {
	return ToPercentage(v, m.Min, m.Max, m.Invert)
}

// Fraction is the unrounded, non-inverted percentage-equivalent of v.
func (m Model) Fraction(v float64) float64 {
	return Fraction(v, m.Min, m.Max)
}

// FromPercentage converts a non-inverted percentage back to a raw value.
func (m Model) FromPercentage(p float64) float64 {
	return FromPercentage(p, m.Min, m.Max)
}

// Snap puts v on the step grid anchored at Min and inside [Min, Max].
func (m Model) Snap(v float64) float64 {
	return m.SnapWithin(v, m.Min, m.Max)
}

// SnapWithin clamps v to [lo, hi], then moves it onto the step grid, stepping
// back inside the bounds when rounding overshoots. A sub-range too narrow to
// hold a grid point collapses to the grid point nearest to it.
func (m Model) SnapWithin(v, lo, hi float64) float64 {
	lo, hi = Clamp(lo, m.Min, m.Max), Clamp(hi, m.Min, m.Max)
	v = ClampToSubrange(v, lo, hi)
	r := model.Clean(m.Min + ApplyStep(v-m.Min, m.Step))
	if r > hi {
		r = model.Clean(r - m.Step)
	}
	if r < lo {
		r = model.Clean(r + m.Step)
	}
	if r < lo || r > hi {
		return m.nearestGridPoint(lo, hi)
	}
	return r
}

// nearestGridPoint picks the grid point inside [Min, Max] closest to [lo, hi],
// preferring the lower one on a tie.
func (m Model) nearestGridPoint(lo, hi float64) float64 {
	below := model.Clean(m.Min + math.Floor((lo-m.Min)/m.Step)*m.Step)
	above := model.Clean(below + m.Step)
	if above > m.Max || lo-below <= above-hi {
		return below
	}
	return above
}

// Committed reads the authoritative value from e, falling back to Min when the
// entity is unavailable.
func (m Model) Committed(e model.Entity) float64 {
	if !e.Available {
		return m.Min
	}
	return m.Snap(e.Raw)
}
