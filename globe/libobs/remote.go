package libobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"globe-viewer/globe/libnav"
	"globe-viewer/globe/libworld"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// NavigationRequest is a fly-to target received from outside the frame loop.
type NavigationRequest struct {
	Target libnav.GeoCoordinate
	Place  string
	Source string
}

// CameraSnapshot is what the frame loop publishes for GET /camera.
type CameraSnapshot struct {
	Lat      float32               `json:"lat"`
	Lon      float32               `json:"lon"`
	Distance float32               `json:"distance"`
	Moving   bool                  `json:"moving"`
	Target   *libnav.GeoCoordinate `json:"target,omitempty"`
	Month    int32                 `json:"month"`
	Time     time.Time             `json:"time"`
}

// Snapshot captures the controller state of the current frame.
func Snapshot(ctrl *libnav.Controller, month int32, now time.Time) CameraSnapshot {
	geo := ctrl.Pose.Geo()
	s := CameraSnapshot{
		Lat:      geo.Lat,
		Lon:      geo.Lon,
		Distance: ctrl.Pose.Distance(),
		Moving:   ctrl.FlyTo.Moving(),
		Month:    month,
		Time:     now,
	}
	if s.Moving {
		target := ctrl.FlyTo.Target()
		s.Target = &target
	}
	return s
}

type PlaceLookup interface {
	Lookup(name string) (libworld.Place, bool)
	All() []libworld.Place
}

type placeJSON struct {
	Name string  `json:"name"`
	Lat  float32 `json:"lat"`
	Lon  float32 `json:"lon"`
}

// Remote is the HTTP control surface. Handlers never touch the camera; they queue
// requests which the frame loop drains once per frame.
type Remote struct {
	places   PlaceLookup
	requests chan NavigationRequest
	metrics  *FrameCollector
	router   *mux.Router

	mu       sync.RWMutex
	snapshot CameraSnapshot
}

// NewRemote builds the router. places must not be modified while the server runs.
func NewRemote(places PlaceLookup, queueSize int, metrics *FrameCollector) *Remote {
	if queueSize <= 0 {
		queueSize = 1
	}
	r := &Remote{
		places:   places,
		requests: make(chan NavigationRequest, queueSize),
		metrics:  metrics,
	}

	router := mux.NewRouter()
	router.HandleFunc("/places", r.handlePlaces).Methods(http.MethodGet)
	router.HandleFunc("/navigate", r.handleNavigate).Methods(http.MethodPost)
	router.HandleFunc("/navigate/{place}", r.handleNavigatePlace).Methods(http.MethodPost)
	router.HandleFunc("/camera", r.handleCamera).Methods(http.MethodGet)
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	r.router = router

	return r
}

func (r *Remote) Handler() http.Handler {
	h := handlers.RecoveryHandler(handlers.RecoveryLogger(log.Default()))(r.router)
	return handlers.LoggingHandler(log.Writer(), h)
}

// Drain returns the queued requests without blocking.
func (r *Remote) Drain() []NavigationRequest {
	var out []NavigationRequest
	for {
		select {
		case req := <-r.requests:
			out = append(out, req)
		default:
			return out
		}
	}
}

func (r *Remote) Publish(s CameraSnapshot) {
	r.mu.Lock()
	r.snapshot = s
	r.mu.Unlock()
}

func (r *Remote) Snapshot() CameraSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}

// ListenAndServe serves until ctx is cancelled.
func (r *Remote) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Printf("remote control listening on %s", addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return fmt.Errorf("remote control server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not shut down remote control server: %w", err)
		}
		if err := <-errs; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (r *Remote) handlePlaces(w http.ResponseWriter, _ *http.Request) {
	all := r.places.All()
	out := make([]placeJSON, len(all))
	for i, p := range all {
		out[i] = placeJSON{Name: p.Name, Lat: p.Coordinate.Lat, Lon: p.Coordinate.Lon}
	}
	writeJSON(w, http.StatusOK, out)
}

func (r *Remote) handleNavigate(w http.ResponseWriter, req *http.Request) {
	var target libnav.GeoCoordinate
	dec := json.NewDecoder(http.MaxBytesReader(w, req.Body, 1<<12))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&target); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("could not decode target: %w", err))
		return
	}
	if !target.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Errorf("target %v is out of range", target))
		return
	}
	r.enqueue(w, NavigationRequest{Target: target, Source: SourceRemote})
}

func (r *Remote) handleNavigatePlace(w http.ResponseWriter, req *http.Request) {
	name := mux.Vars(req)["place"]
	place, ok := r.places.Lookup(name)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown place %q", name))
		return
	}
	r.enqueue(w, NavigationRequest{Target: place.Coordinate, Place: place.Name, Source: SourceRemote})
}

func (r *Remote) enqueue(w http.ResponseWriter, nr NavigationRequest) {
	select {
	case r.requests <- nr:
		writeJSON(w, http.StatusAccepted, placeJSON{Name: nr.Place, Lat: nr.Target.Lat, Lon: nr.Target.Lon})
	default:
		writeError(w, http.StatusServiceUnavailable, errors.New("navigation queue is full"))
	}
}

func (r *Remote) handleCamera(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, r.Snapshot())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("could not write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
