package libobs

import (
	"fmt"
	"net/http"
	"time"

	"globe-viewer/globe/libnav"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Sources of navigation requests, used as metric label.
const (
	SourceUI        = "ui"
	SourceRemote    = "remote"
	SourceSatellite = "satellite"
)

// FrameCollector bundles the Prometheus metrics of the frame loop.
// All methods are no-ops on a nil collector.
type FrameCollector struct {
	gatherer prometheus.Gatherer

	FrameDuration      prometheus.Histogram
	NavigationRequests *prometheus.CounterVec
	FlyToCompleted     prometheus.Counter
	FlyToActive        prometheus.Gauge
	CameraDistance     prometheus.Gauge
	Month              prometheus.Gauge
}

// NewFrameCollector registers the frame metrics against reg, defaulting to the
// global Prometheus registry when nil.
func NewFrameCollector(reg prometheus.Registerer) (*FrameCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	frames, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "globe_frame_duration_seconds",
		Help:    "Time between two rendered frames in seconds.",
		Buckets: []float64{0.002, 0.004, 0.008, 0.0167, 0.033, 0.05, 0.1, 0.25, 1},
	}), "globe_frame_duration_seconds")
	if err != nil {
		return nil, err
	}

	requests, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "globe_navigation_requests_total",
		Help: "Fly-to requests applied to the camera, labeled by source.",
	}, []string{"source"}), "globe_navigation_requests_total")
	if err != nil {
		return nil, err
	}

	completed, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "globe_flyto_completed_total",
		Help: "Fly-to animations that reached their target.",
	}), "globe_flyto_completed_total")
	if err != nil {
		return nil, err
	}

	active, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "globe_flyto_active",
		Help: "1 while a fly-to animation is running.",
	}), "globe_flyto_active")
	if err != nil {
		return nil, err
	}
	distance, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "globe_camera_distance",
		Help: "Distance of the camera from the globe center.",
	}), "globe_camera_distance")
	if err != nil {
		return nil, err
	}
	month, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "globe_month",
		Help: "Month of the displayed globe texture.",
	}), "globe_month")
	if err != nil {
		return nil, err
	}

	return &FrameCollector{
		gatherer:           gatherer,
		FrameDuration:      frames,
		NavigationRequests: requests,
		FlyToCompleted:     completed,
		FlyToActive:        active,
		CameraDistance:     distance,
		Month:              month,
	}, nil
}

// ObserveFrame records one frame of the loop.
func (c *FrameCollector) ObserveFrame(dt time.Duration, res libnav.FrameResult, ctrl *libnav.Controller, month int32) {
	if c == nil {
		return
	}
	c.FrameDuration.Observe(dt.Seconds())
	if res.FlyToCompleted {
		c.FlyToCompleted.Inc()
	}
	if ctrl.FlyTo.Moving() {
		c.FlyToActive.Set(1)
	} else {
		c.FlyToActive.Set(0)
	}
	c.CameraDistance.Set(float64(ctrl.Pose.Distance()))
	c.Month.Set(float64(month))
}

func (c *FrameCollector) NavigationRequested(source string) {
	if c == nil {
		return
	}
	c.NavigationRequests.WithLabelValues(source).Inc()
}

// Handler exposes a ready-to-use /metrics handler.
func (c *FrameCollector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerHistogram(reg prometheus.Registerer, histogram prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(histogram); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return histogram, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
