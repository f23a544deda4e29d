// Package daemon provides the long-running read-only budget service.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"sync"
	"time"

	"github.com/theirongolddev/dials/internal/advisor"
	"github.com/theirongolddev/dials/internal/budget"
	"github.com/theirongolddev/dials/internal/model"
	"github.com/theirongolddev/dials/internal/pipeline"
	"github.com/theirongolddev/dials/internal/store"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Config controls the daemon runtime behavior.
type Config struct {
	Backend      store.Backend
	Codec        store.Codec
	Advisor      *advisor.Advisor
	Logger       *log.Logger
	Source       string // human description of where the blob lives
	Interval     time.Duration
	Addr         string
	EventsBuffer int
}

// Snapshot is the budget and its derived metrics at one poll.
type Snapshot struct {
	At      time.Time     `json:"at"`
	Budget  model.Budget  `json:"budget"`
	Metrics model.Metrics `json:"metrics"`
}

// Delta captures total changes between polls.
type Delta struct {
	Income    float64 `json:"income"`
	Fixed     float64 `json:"fixed"`
	Future    float64 `json:"future"`
	Dials     float64 `json:"dials"`
	Remaining float64 `json:"remaining"`
	DialCount int     `json:"dial_count"`
}

func (d Delta) isZero() bool {
	return d.Income == 0 &&
		d.Fixed == 0 &&
		d.Future == 0 &&
		d.Dials == 0 &&
		d.Remaining == 0 &&
		d.DialCount == 0
}

// Event is emitted whenever the persisted budget changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time    `json:"started_at"`
	LastPollAt      time.Time    `json:"last_poll_at"`
	PollIntervalSec int          `json:"poll_interval_sec"`
	PollCount       int64        `json:"poll_count"`
	Source          string       `json:"source"`
	Totals          model.Totals `json:"totals"`
	OverBudget      bool         `json:"over_budget"`
	AdviceEnabled   bool         `json:"advice_enabled"`
	LastError       string       `json:"last_error,omitempty"`
	EventCount      int          `json:"event_count"`
	SubscriberCount int          `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg     Config
	log     *log.Logger
	metrics *promMetrics
	budget  *budget.Store // read-only: only Refresh and Snapshot are called

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service with the provided config.
func New(cfg Config) *Service {
	if cfg.Interval < time.Second {
		cfg.Interval = 5 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8797"
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Advisor == nil {
		cfg.Advisor = advisor.New(nil, cfg.Logger, 0)
	}

	logger := cfg.Logger.WithPrefix("serve")
	return &Service{
		cfg:       cfg,
		log:       logger,
		budget:    budget.NewStore(cfg.Backend, cfg.Codec, logger),
		metrics:   newPromMetrics(),
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/budget", s.handleBudget)
	mux.HandleFunc("/v1/metrics", s.handleMetrics)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)
	mux.HandleFunc("/v1/advice", s.handleAdvice)
	mux.Handle("/metrics", s.metrics.handler())
	return mux
}

// Run serves HTTP and polls the blob until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("daemon http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		// Seed initial snapshot so status is useful immediately.
		s.pollOnce()

		ticker := time.NewTicker(s.cfg.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				s.pollOnce()
			}
		}
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// pollOnce reloads the blob through the read-only budget store. A missing
// or unreadable blob keeps the store's current record, which is the
// default record until the first good read, so a snapshot always exists
// after the first poll.
func (s *Service) pollOnce() {
	_, err := s.budget.Refresh()
	b := s.budget.Snapshot()
	now := time.Now()
	s.metrics.polls.Inc()
	if err != nil {
		s.metrics.pollErrors.Inc()
	}

	snap := Snapshot{At: now, Budget: b, Metrics: pipeline.Compute(b)}
	s.metrics.observe(snap.Metrics)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
	}

	switch {
	case !prevExists:
		s.nextEventID++
		ev = Event{ID: s.nextEventID, Type: "snapshot", Timestamp: now, Snapshot: snap}
		publish = true
	case !reflect.DeepEqual(prev.Budget, snap.Budget):
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      "budget_changed",
			Timestamp: now,
			Snapshot:  snap,
			Delta:     diffSnapshots(prev, snap),
		}
		publish = true
	}
	s.mu.Unlock()

	if publish {
		s.log.Debug("budget updated", "event", ev.Type, "remaining", snap.Metrics.Totals.Remaining)
		s.publishEvent(ev)
	}
}

func diffSnapshots(prev, curr Snapshot) Delta {
	p, c := prev.Metrics.Totals, curr.Metrics.Totals
	return Delta{
		Income:    c.Income - p.Income,
		Fixed:     c.Fixed - p.Fixed,
		Future:    c.Future - p.Future,
		Dials:     c.Dials - p.Dials,
		Remaining: c.Remaining - p.Remaining,
		DialCount: len(curr.Budget.Dials) - len(prev.Budget.Dials),
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) currentSnapshot() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, s.hasSnapshot
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		Source:          s.cfg.Source,
		Totals:          s.snapshot.Metrics.Totals,
		OverBudget:      s.snapshot.Metrics.OverBudget(),
		AdviceEnabled:   s.cfg.Advisor.Enabled(),
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.snapshotStatus())
}

func (s *Service) handleBudget(w http.ResponseWriter, _ *http.Request) {
	if snap, ok := s.requireSnapshot(w); ok {
		writeJSON(w, snap.Budget)
	}
}

func (s *Service) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	if snap, ok := s.requireSnapshot(w); ok {
		writeJSON(w, snap.Metrics)
	}
}

// requireSnapshot answers 503 until the first successful poll.
func (s *Service) requireSnapshot(w http.ResponseWriter) (Snapshot, bool) {
	snap, ok := s.currentSnapshot()
	if !ok {
		http.Error(w, "no snapshot yet", http.StatusServiceUnavailable)
	}
	return snap, ok
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, events)
}

// handleAdvice asks the advisor about the current snapshot. The answer is
// always well-formed: failures come back as the fallback advice.
func (s *Service) handleAdvice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	snap, ok := s.requireSnapshot(w)
	if !ok {
		return
	}

	adv := s.cfg.Advisor.Advise(r.Context(), advisor.BuildSummary(snap.Budget))
	outcome := "generated"
	if adv.Fallback {
		outcome = "fallback"
	}
	s.metrics.advice.WithLabelValues(outcome).Inc()

	writeJSON(w, adv)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	snap, _ := s.currentSnapshot()
	writeSSE(w, Event{Type: "snapshot", Timestamp: time.Now(), Snapshot: snap})
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
