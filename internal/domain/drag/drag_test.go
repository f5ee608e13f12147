package drag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"slider-button/internal/domain/model"
	"slider-button/internal/domain/value"
)

var (
	wide = model.Rect{Left: 100, Top: 0, Width: 200, Height: 50}
	tall = model.Rect{Left: 0, Top: 100, Width: 50, Height: 200}
)

func percentModel(step float64) value.Model {
	return value.Model{Kind: model.KindPercentage, Min: 0, Max: 100, Step: step, SubMin: 0, SubMax: 100}
}

func TestPointerPercentage(t *testing.T) {
	tests := []struct {
		name   string
		pos    model.Point
		rect   model.Rect
		dir    model.Direction
		invert bool
		want   float64
	}{
		{"left-right", model.Point{X: 150}, wide, model.DirectionLeftRight, false, 25},
		{"right-left", model.Point{X: 150}, wide, model.DirectionRightLeft, false, 75},
		{"left-right inverted", model.Point{X: 150}, wide, model.DirectionLeftRight, true, 75},
		{"right-left inverted", model.Point{X: 150}, wide, model.DirectionRightLeft, true, 25},
		{"top-bottom", model.Point{Y: 150}, tall, model.DirectionTopBottom, false, 25},
		{"bottom-top", model.Point{Y: 150}, tall, model.DirectionBottomTop, false, 75},
		{"unknown direction", model.Point{X: 150}, wide, model.Direction("diagonal"), false, 25},
		{"empty rect", model.Point{X: 150}, model.Rect{}, model.DirectionLeftRight, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PointerPercentage(tt.pos, tt.rect, tt.dir, tt.invert), 1e-9)
		})
	}
}

func TestSession_RelativeDrag(t *testing.T) {
	m := percentModel(5)

	// touch far from the thumb: nothing jumps until the pointer moves
	s := Start(m, model.DirectionLeftRight, 40, model.Point{X: 280, Y: 25}, wide)
	assert.Equal(t, 40.0, s.Update(model.Point{X: 280, Y: 25}, wide))
	assert.Equal(t, 40.0, s.Live())

	// +40px on a 200px slider is +20%
	assert.Equal(t, 60.0, s.Update(model.Point{X: 320, Y: 25}, wide))
	assert.Equal(t, 60.0, s.Live())

	// back past the start and below zero clamps
	assert.Equal(t, 0.0, s.Update(model.Point{X: -500, Y: 25}, wide))
	assert.Equal(t, 100.0, s.Update(model.Point{X: 900, Y: 25}, wide))
}

func TestSession_Steps(t *testing.T) {
	s := Start(percentModel(5), model.DirectionLeftRight, 40, model.Point{X: 200}, wide)

	// +1% rounds back to 40, +2.5% up to 45
	assert.Equal(t, 40.0, s.Update(model.Point{X: 202}, wide))
	assert.Equal(t, 45.0, s.Update(model.Point{X: 205}, wide))
}

func TestSession_RangedValue(t *testing.T) {
	m := value.Model{Kind: model.KindRanged, Min: 16, Max: 30, Step: 0.5, SubMin: 16, SubMax: 30}
	s := Start(m, model.DirectionLeftRight, 21, model.Point{X: 200}, wide)

	// +50% of a 14 degree range is +7
	assert.Equal(t, 28.0, s.Update(model.Point{X: 300}, wide))
}

func TestSession_Subrange(t *testing.T) {
	m := percentModel(1)
	m.SubMin, m.SubMax = 20, 80
	s := Start(m, model.DirectionLeftRight, 50, model.Point{X: 200}, wide)

	assert.Equal(t, 80.0, s.Update(model.Point{X: 300}, wide))
	assert.Equal(t, 20.0, s.Update(model.Point{X: 100}, wide))
}

func TestSession_SubrangeNarrowerThanStep(t *testing.T) {
	m := percentModel(5)
	m.SubMin, m.SubMax = 12, 13
	s := Start(m, model.DirectionLeftRight, 10, model.Point{X: 200}, wide)

	// no multiple of 5 fits in 12..13, so every position lands on 10
	for _, x := range []float64{201, 205, 300, 0} {
		assert.Equal(t, 10.0, s.Update(model.Point{X: x}, wide), "x=%v", x)
	}
}

func TestSession_OrientationCrossedWithInvert(t *testing.T) {
	start, end := model.Point{X: 200, Y: 25}, model.Point{X: 240, Y: 25}

	delta := func(dir model.Direction, invert bool) float64 {
		m := percentModel(1)
		m.Invert = invert
		return Start(m, dir, 50, start, wide).Delta(end, wide)
	}

	// same physical movement to the right
	assert.InDelta(t, 20, delta(model.DirectionLeftRight, false), 1e-9)
	assert.InDelta(t, -20, delta(model.DirectionRightLeft, false), 1e-9)
	assert.InDelta(t, -20, delta(model.DirectionLeftRight, true), 1e-9)
	assert.InDelta(t, 20, delta(model.DirectionRightLeft, true), 1e-9)

	// displayed percentage follows the value sign and the display flip
	shown := func(dir model.Direction, invert bool) int {
		m := percentModel(1)
		m.Invert = invert
		s := Start(m, dir, 50, start, wide)
		return m.Percentage(s.Update(end, wide))
	}
	assert.Equal(t, 70, shown(model.DirectionLeftRight, false))
	assert.Equal(t, 30, shown(model.DirectionRightLeft, false))
	assert.Equal(t, 70, shown(model.DirectionLeftRight, true))
	assert.Equal(t, 30, shown(model.DirectionRightLeft, true))
}

func TestSession_Vertical(t *testing.T) {
	m := percentModel(1)

	down := Start(m, model.DirectionTopBottom, 50, model.Point{X: 25, Y: 200}, tall)
	assert.Equal(t, 60.0, down.Update(model.Point{X: 90, Y: 220}, tall))

	up := Start(m, model.DirectionBottomTop, 50, model.Point{X: 25, Y: 200}, tall)
	assert.Equal(t, 40.0, up.Update(model.Point{X: 25, Y: 220}, tall))
}

func TestSession_AnchorIgnoresLaterCommits(t *testing.T) {
	m := percentModel(5)
	s := Start(m, model.DirectionLeftRight, 40, model.Point{X: 200}, wide)

	s.Update(model.Point{X: 220}, wide)
	// the committed value changing under the drag does not move the anchor
	assert.Equal(t, 50.0, s.Update(model.Point{X: 220}, wide))
	assert.Equal(t, 40.0, s.Update(model.Point{X: 200}, wide))
}
