package service

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
	"slider-button/internal/domain/model"
	"slider-button/internal/domain/projection"
)

type MockHAPort struct {
	mock.Mock
}

func (m *MockHAPort) GetRawState(ctx context.Context, entityID string) (map[string]interface{}, error) {
	args := m.Called(ctx, entityID)
	state, _ := args.Get(0).(map[string]interface{})
	return state, args.Error(1)
}

func (m *MockHAPort) GetRawStates(ctx context.Context) ([]map[string]interface{}, error) {
	args := m.Called(ctx)
	states, _ := args.Get(0).([]map[string]interface{})
	return states, args.Error(1)
}

func (m *MockHAPort) CallService(ctx context.Context, domain, service string, data map[string]interface{}) error {
	args := m.Called(ctx, domain, service, data)
	return args.Error(0)
}

func (m *MockHAPort) Configure(url, token string) {
	m.Called(url, token)
}

func (m *MockHAPort) IsConfigured() bool {
	return m.Called().Bool(0)
}

type MockSink struct {
	mock.Mock
}

func (m *MockSink) SetValue(ctx context.Context, e model.Entity, value float64) error {
	return m.Called(ctx, e, value).Error(0)
}

func (m *MockSink) Toggle(ctx context.Context, e model.Entity) error {
	return m.Called(ctx, e).Error(0)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, kind model.ActionKind, action *model.ActionConfig, e model.Entity) error {
	return m.Called(ctx, kind, action, e).Error(0)
}

type MockHost struct {
	mock.Mock
}

func (m *MockHost) HostAction(ctx context.Context, action model.HostAction) error {
	return m.Called(ctx, action).Error(0)
}

// recordingView keeps everything the widget rendered.
type recordingView struct {
	mu       sync.Mutex
	frames   []projection.Frame
	captured []int
	released []int
}

func (v *recordingView) Render(f projection.Frame) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.frames = append(v.frames, f)
}

func (v *recordingView) Capture(_ model.Target, id int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.captured = append(v.captured, id)
}

func (v *recordingView) Release(_ model.Target, id int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.released = append(v.released, id)
}

func (v *recordingView) last() projection.Frame {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.frames[len(v.frames)-1]
}

type countingMetrics struct {
	mu       sync.Mutex
	gestures map[string]int
	commands map[string]int
	cancels  int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{gestures: map[string]int{}, commands: map[string]int{}}
}

func (m *countingMetrics) Gesture(target model.Target, kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gestures[string(target)+"/"+kind]++
}

func (m *countingMetrics) Command(service string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands[service]++
}

func (m *countingMetrics) DragCancelled() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancels++
}
