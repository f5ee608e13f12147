package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"slider-button/internal/domain/model"
)

var (
	GesturesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sliderbutton",
		Subsystem: "gesture",
		Name:      "total",
		Help:      "Classified gestures that reached the widget",
	}, []string{"target", "kind"})

	DragCancelsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sliderbutton",
		Subsystem: "gesture",
		Name:      "drag_cancels_total",
		Help:      "Drags abandoned without a commit",
	})

	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sliderbutton",
		Subsystem: "hass",
		Name:      "commands_total",
		Help:      "Service calls sent to Home Assistant",
	}, []string{"service", "result"})

	ActiveWidgets = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "sliderbutton",
		Subsystem: "ws",
		Name:      "active_widgets",
		Help:      "Widget instances with an open connection",
	})
)

// Recorder feeds the package collectors.
type Recorder struct{}

func NewRecorder() *Recorder { return &Recorder{} }

func (Recorder) Gesture(target model.Target, kind string) {
	GesturesTotal.WithLabelValues(string(target), kind).Inc()
}

func (Recorder) Command(service string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	CommandsTotal.WithLabelValues(service, result).Inc()
}

func (Recorder) DragCancelled() {
	DragCancelsTotal.Inc()
}
