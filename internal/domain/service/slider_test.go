package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"slider-button/internal/domain/gesture"
	"slider-button/internal/domain/model"
)

var (
	t0   = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rect = model.Rect{Left: 0, Top: 0, Width: 200, Height: 50}
)

type widgetHarness struct {
	t       *testing.T
	sched   *gesture.ManualScheduler
	sink    *MockSink
	actions *MockDispatcher
	view    *recordingView
	metrics *countingMetrics
	done    chan struct{}
	s       *Slider
}

func newWidget(t *testing.T, card model.CardConfig) *widgetHarness {
	t.Helper()
	h := &widgetHarness{
		t:       t,
		sched:   gesture.NewManualScheduler(t0),
		sink:    new(MockSink),
		actions: new(MockDispatcher),
		view:    &recordingView{},
		metrics: newCountingMetrics(),
		done:    make(chan struct{}, 8),
	}
	s, err := NewSlider(Options{
		ID:        "w1",
		Card:      card,
		Gesture:   gesture.DefaultConfig(),
		Scheduler: h.sched,
		Sink:      h.sink,
		Actions:   h.actions,
		View:      h.view,
		Metrics:   h.metrics,
		OnCommand: func() { h.done <- struct{}{} },
	})
	require.NoError(t, err)
	h.s = s
	return h
}

func (h *widgetHarness) pointer(target model.Target, kind model.PointerKind, id int, x float64, ms int) {
	at := t0.Add(time.Duration(ms) * time.Millisecond)
	h.sched.AdvanceTo(at)
	h.s.HandlePointer(target, model.PointerEvent{
		Kind:      kind,
		PointerID: id,
		Pos:       model.Point{X: x, Y: 25},
		Rect:      rect,
		At:        at,
	})
}

func (h *widgetHarness) slide(kind model.PointerKind, x float64, ms int) {
	h.pointer(model.TargetSlider, kind, 1, x, ms)
}

func (h *widgetHarness) waitCommand() {
	h.t.Helper()
	select {
	case <-h.done:
	case <-time.After(time.Second):
		h.t.Fatal("command did not run")
	}
}

func lightAt(raw float64) model.Entity {
	return model.Entity{
		Ref:       model.EntityRef{ID: "light.kitchen"},
		Kind:      model.KindPercentage,
		State:     "on",
		Raw:       raw,
		Available: true,
	}
}

func TestSlider_DragCommitsRelativeValue(t *testing.T) {
	h := newWidget(t, model.CardConfig{Entity: "light.kitchen"})
	h.s.UpdateState(lightAt(40))
	h.sink.On("SetValue", mock.Anything, mock.Anything, 60.0).Return(nil)

	h.slide(model.PointerDown, 50, 0)
	h.slide(model.PointerMove, 70, 20)
	live, ok := h.s.Live()
	require.True(t, ok)
	assert.Equal(t, 40.0, live)

	// +40px on 200px is +20%
	h.slide(model.PointerMove, 110, 40)
	assert.True(t, h.view.last().Changing)
	assert.Equal(t, 60, h.view.last().Percentage)

	h.slide(model.PointerUp, 110, 60)
	h.waitCommand()

	assert.Equal(t, 60.0, h.s.Committed())
	_, ok = h.s.Live()
	assert.False(t, ok)
	assert.False(t, h.view.last().Changing)
	assert.Equal(t, []int{1}, h.view.captured)
	assert.Equal(t, []int{1}, h.view.released)
	assert.Equal(t, 1, h.metrics.gestures["slider/drag_end"])
	h.sink.AssertExpectations(t)
	h.actions.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSlider_DragCancelRevertsToCommitted(t *testing.T) {
	for _, kind := range []model.PointerKind{model.PointerCancel, model.PointerLostCapture} {
		t.Run(string(kind), func(t *testing.T) {
			h := newWidget(t, model.CardConfig{Entity: "light.kitchen"})
			h.s.UpdateState(lightAt(40))

			h.slide(model.PointerDown, 50, 0)
			h.slide(model.PointerMove, 70, 20)
			h.slide(model.PointerMove, 110, 40)
			h.slide(kind, 110, 60)

			assert.Equal(t, 40.0, h.s.Committed())
			assert.Equal(t, 40, h.view.last().Percentage)
			assert.False(t, h.view.last().Changing)
			assert.Equal(t, 1, h.metrics.cancels)
			assert.Equal(t, []int{1}, h.view.released)
			h.sink.AssertNotCalled(t, "SetValue", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestSlider_StateUpdatesDoNotMoveAnchor(t *testing.T) {
	h := newWidget(t, model.CardConfig{Entity: "light.kitchen"})
	h.s.UpdateState(lightAt(40))

	h.slide(model.PointerDown, 50, 0)
	h.slide(model.PointerMove, 70, 20)
	h.s.UpdateState(lightAt(80))
	h.slide(model.PointerMove, 90, 40)

	live, ok := h.s.Live()
	require.True(t, ok)
	assert.Equal(t, 50.0, live)
}

func TestSlider_UnavailableMidDragCancels(t *testing.T) {
	h := newWidget(t, model.CardConfig{Entity: "light.kitchen"})
	h.s.UpdateState(lightAt(40))

	h.slide(model.PointerDown, 50, 0)
	h.slide(model.PointerMove, 90, 20)
	h.s.UpdateState(model.Entity{Ref: model.EntityRef{ID: "light.kitchen"}, Kind: model.KindPercentage, State: "unavailable"})

	_, ok := h.s.Live()
	assert.False(t, ok)
	assert.True(t, h.view.last().Unavailable)
	assert.Equal(t, 0.0, h.s.Committed())

	h.slide(model.PointerUp, 90, 40)
	h.sink.AssertNotCalled(t, "SetValue", mock.Anything, mock.Anything, mock.Anything)
}

func TestSlider_TapDispatchesTapAction(t *testing.T) {
	h := newWidget(t, model.CardConfig{Entity: "light.kitchen"})
	h.s.UpdateState(lightAt(40))
	h.actions.On("Dispatch", mock.Anything, model.ActionKindTap, &model.ActionConfig{Action: model.ActionToggle}, mock.Anything).Return(nil)

	h.slide(model.PointerDown, 50, 0)
	h.slide(model.PointerUp, 50, 80)
	h.waitCommand()

	h.actions.AssertExpectations(t)
	assert.Equal(t, 40.0, h.s.Committed())
	assert.Equal(t, 1, h.metrics.gestures["slider/tap"])
}

func TestSlider_HoldAndDoubleTapActions(t *testing.T) {
	hold := &model.ActionConfig{Action: model.ActionMoreInfo}
	double := &model.ActionConfig{Action: model.ActionCallService, Service: "script.movie"}
	h := newWidget(t, model.CardConfig{
		Entity: "light.kitchen",
		Slider: &model.SliderConfig{HoldAction: hold, DoubleTapAction: double},
	})
	h.s.UpdateState(lightAt(40))
	h.actions.On("Dispatch", mock.Anything, model.ActionKindHold, hold, mock.Anything).Return(nil).Once()
	h.actions.On("Dispatch", mock.Anything, model.ActionKindDoubleTap, double, mock.Anything).Return(nil).Once()

	h.slide(model.PointerDown, 50, 0)
	h.sched.AdvanceTo(t0.Add(600 * time.Millisecond))
	h.slide(model.PointerUp, 50, 700)
	h.waitCommand()

	h.slide(model.PointerDown, 50, 1000)
	h.slide(model.PointerUp, 50, 1050)
	h.slide(model.PointerDown, 50, 1150)
	h.slide(model.PointerUp, 50, 1200)
	h.sched.AdvanceTo(t0.Add(2 * time.Second))
	h.waitCommand()

	h.actions.AssertExpectations(t)
	h.actions.AssertNotCalled(t, "Dispatch", mock.Anything, model.ActionKindTap, mock.Anything, mock.Anything)
}

func TestSlider_SlidingDisabledStillTaps(t *testing.T) {
	h := newWidget(t, model.CardConfig{Entity: "switch.pump"})
	h.s.UpdateState(model.Entity{Ref: model.EntityRef{ID: "switch.pump"}, Kind: model.KindBinary, State: "off", Available: true})
	h.actions.On("Dispatch", mock.Anything, model.ActionKindTap, mock.Anything, mock.Anything).Return(nil)

	h.slide(model.PointerDown, 10, 0)
	h.slide(model.PointerMove, 190, 20)
	_, ok := h.s.Live()
	assert.False(t, ok)
	h.slide(model.PointerUp, 190, 40)
	assert.Equal(t, 0.0, h.s.Committed())
	assert.Empty(t, h.view.captured)

	h.slide(model.PointerDown, 10, 500)
	h.slide(model.PointerUp, 10, 550)
	h.waitCommand()

	h.actions.AssertNumberOfCalls(t, "Dispatch", 1)
	h.sink.AssertNotCalled(t, "SetValue", mock.Anything, mock.Anything, mock.Anything)
}

func TestSlider_UnavailableStillRunsActions(t *testing.T) {
	h := newWidget(t, model.CardConfig{Entity: "light.kitchen"})
	h.actions.On("Dispatch", mock.Anything, model.ActionKindTap, mock.Anything, mock.Anything).Return(nil)

	f := h.s.Frame()
	assert.True(t, f.Unavailable)
	assert.Equal(t, "unavailable", f.Label)

	h.slide(model.PointerDown, 50, 0)
	h.slide(model.PointerMove, 150, 20)
	_, ok := h.s.Live()
	assert.False(t, ok)
	h.slide(model.PointerUp, 150, 40)

	h.slide(model.PointerDown, 50, 500)
	h.slide(model.PointerUp, 50, 550)
	h.waitCommand()
	h.actions.AssertExpectations(t)
}

func TestSlider_IconAndActionButton(t *testing.T) {
	h := newWidget(t, model.CardConfig{Entity: "light.kitchen"})
	h.s.UpdateState(lightAt(40))
	h.actions.On("Dispatch", mock.Anything, model.ActionKindTap, &model.ActionConfig{Action: model.ActionMoreInfo}, mock.Anything).Return(nil).Once()
	h.actions.On("Dispatch", mock.Anything, model.ActionKindTap, &model.ActionConfig{Action: model.ActionToggle}, mock.Anything).Return(nil).Once()

	h.pointer(model.TargetIcon, model.PointerDown, 3, 5, 0)
	// a long press on the icon is neither a hold nor a tap
	h.pointer(model.TargetIcon, model.PointerUp, 3, 5, 700)
	h.pointer(model.TargetIcon, model.PointerDown, 3, 5, 1000)
	h.pointer(model.TargetIcon, model.PointerUp, 3, 5, 1050)
	h.waitCommand()

	h.pointer(model.TargetAction, model.PointerDown, 4, 5, 2000)
	h.pointer(model.TargetAction, model.PointerUp, 4, 5, 2050)
	h.waitCommand()

	h.actions.AssertExpectations(t)
	assert.Empty(t, h.view.captured)
	assert.Equal(t, 1, h.metrics.gestures["icon/tap"])
	assert.Equal(t, 1, h.metrics.gestures["action/tap"])
}

func TestSlider_SecondPointerCannotDrag(t *testing.T) {
	h := newWidget(t, model.CardConfig{Entity: "light.kitchen"})
	h.s.UpdateState(lightAt(40))
	h.sink.On("SetValue", mock.Anything, mock.Anything, 60.0).Return(nil)

	h.slide(model.PointerDown, 50, 0)
	h.slide(model.PointerMove, 70, 20)
	h.pointer(model.TargetSlider, model.PointerDown, 2, 10, 30)
	h.pointer(model.TargetSlider, model.PointerMove, 2, 190, 35)
	h.slide(model.PointerMove, 110, 40)

	live, _ := h.s.Live()
	assert.Equal(t, 60.0, live)

	h.slide(model.PointerUp, 110, 50)
	h.waitCommand()
	h.sink.AssertExpectations(t)
}

func TestSlider_Close(t *testing.T) {
	h := newWidget(t, model.CardConfig{Entity: "light.kitchen"})
	h.s.UpdateState(lightAt(40))

	h.slide(model.PointerDown, 50, 0)
	h.slide(model.PointerMove, 90, 20)
	h.s.Close()

	_, ok := h.s.Live()
	assert.False(t, ok)
	assert.Equal(t, 0, h.sched.Pending())
	assert.Equal(t, 40.0, h.s.Committed())
}

func TestNewSlider_Validation(t *testing.T) {
	sched := gesture.NewManualScheduler(t0)

	_, err := NewSlider(Options{Card: model.CardConfig{Entity: "nodot"}, Scheduler: sched, Sink: new(MockSink), Actions: new(MockDispatcher)})
	assert.ErrorIs(t, err, model.ErrInvalidConfig)

	_, err = NewSlider(Options{Card: model.CardConfig{Entity: "light.a"}, Scheduler: sched})
	assert.Error(t, err)
}

func TestSlider_SynchronousExec(t *testing.T) {
	sink := new(MockSink)
	actions := new(MockDispatcher)
	sched := gesture.NewManualScheduler(t0)
	s, err := NewSlider(Options{
		Card:      model.CardConfig{Entity: "light.kitchen"},
		Gesture:   gesture.DefaultConfig(),
		Scheduler: sched,
		Sink:      sink,
		Actions:   actions,
		Exec:      func(f func()) { f() },
	})
	require.NoError(t, err)
	s.UpdateState(lightAt(40))
	actions.On("Dispatch", mock.Anything, model.ActionKindTap, mock.Anything, mock.Anything).Return(nil)

	s.HandlePointer(model.TargetSlider, model.PointerEvent{Kind: model.PointerDown, PointerID: 1, Pos: model.Point{X: 20, Y: 25}, Rect: rect, At: t0})
	s.HandlePointer(model.TargetSlider, model.PointerEvent{Kind: model.PointerUp, PointerID: 1, Pos: model.Point{X: 20, Y: 25}, Rect: rect, At: t0.Add(50 * time.Millisecond)})

	actions.AssertNumberOfCalls(t, "Dispatch", 1)
}
