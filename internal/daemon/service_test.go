package daemon

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/dials/internal/advisor"
	"github.com/theirongolddev/dials/internal/model"
	"github.com/theirongolddev/dials/internal/store"

	"github.com/charmbracelet/log"
)

func newTestService(t *testing.T, buffer int) (*Service, *store.MemoryBackend) {
	t.Helper()
	backend := store.NewMemoryBackend()
	s := New(Config{
		Backend:      backend,
		Codec:        store.JSONCodec{},
		Logger:       log.New(io.Discard),
		Interval:     10 * time.Second,
		EventsBuffer: buffer,
	})
	return s, backend
}

func putBudget(t *testing.T, backend store.Backend, b model.Budget) {
	t.Helper()
	data, err := store.JSONCodec{}.Encode(b)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := backend.Put(data); err != nil {
		t.Fatalf("Put: %v", err)
	}
}

func TestDiffSnapshots(t *testing.T) {
	prev := Snapshot{
		Budget: model.Budget{Dials: []model.Dial{{ID: "1"}}},
		Metrics: model.Metrics{Totals: model.Totals{
			Income: 1000, Fixed: 500, Future: 100, Dials: 200, Remaining: 200,
		}},
	}
	curr := Snapshot{
		Budget: model.Budget{Dials: []model.Dial{{ID: "1"}, {ID: "2"}}},
		Metrics: model.Metrics{Totals: model.Totals{
			Income: 1000, Fixed: 500, Future: 100, Dials: 450, Remaining: -50,
		}},
	}

	delta := diffSnapshots(prev, curr)
	if delta.Dials != 250 {
		t.Fatalf("Dials delta = %v, want 250", delta.Dials)
	}
	if delta.Remaining != -250 {
		t.Fatalf("Remaining delta = %v, want -250", delta.Remaining)
	}
	if delta.DialCount != 1 {
		t.Fatalf("DialCount delta = %d, want 1", delta.DialCount)
	}
	if delta.Income != 0 || delta.Fixed != 0 {
		t.Fatalf("unexpected delta %+v", delta)
	}
	if delta.isZero() {
		t.Fatal("delta unexpectedly reported as zero")
	}
	if !diffSnapshots(prev, prev).isZero() {
		t.Fatal("self diff should be zero")
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s, _ := newTestService(t, 2)

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

func TestPollOnceEmitsEvents(t *testing.T) {
	s, backend := newTestService(t, 10)

	// Missing blob serves the default record.
	s.pollOnce()
	snap, ok := s.currentSnapshot()
	if !ok {
		t.Fatal("no snapshot after first poll")
	}
	if len(snap.Budget.Dials) != 3 || snap.Metrics.Totals.Income != 0 {
		t.Fatalf("first snapshot = %+v, want the default record", snap.Budget)
	}

	// Unchanged blob publishes nothing new.
	s.pollOnce()

	b := model.DefaultBudget()
	b.Dials = append(b.Dials, model.Dial{ID: "x", Name: "Books", Value: 100_000})
	putBudget(t, backend, b)
	s.pollOnce()

	s.mu.RLock()
	events := append([]Event(nil), s.events...)
	polls := s.pollCount
	s.mu.RUnlock()

	if polls != 3 {
		t.Fatalf("pollCount = %d, want 3", polls)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].Type != "snapshot" || events[1].Type != "budget_changed" {
		t.Fatalf("event types = %q, %q", events[0].Type, events[1].Type)
	}
	if events[1].Delta.Dials != 100_000 || events[1].Delta.DialCount != 1 {
		t.Fatalf("delta = %+v", events[1].Delta)
	}
}

func TestPollOnceKeepsSnapshotOnDecodeError(t *testing.T) {
	s, backend := newTestService(t, 10)
	b := model.DefaultBudget()
	b.Income = 4_000_000
	putBudget(t, backend, b)
	s.pollOnce()

	if err := backend.Put([]byte("not a budget")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	s.pollOnce()

	st := s.snapshotStatus()
	if st.LastError == "" {
		t.Fatal("LastError empty after decode failure")
	}
	if st.Totals.Income != 4_000_000 {
		t.Fatalf("snapshot replaced on failure: income = %v", st.Totals.Income)
	}
}

func TestCorruptBlobAtStartServesDefaults(t *testing.T) {
	s, backend := newTestService(t, 10)
	if err := backend.Put([]byte("{not json")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	s.pollOnce()

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/budget", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /v1/budget = %d %q, want 200", rec.Code, rec.Body.String())
	}
	var got model.Budget
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode budget: %v", err)
	}
	if len(got.Dials) != 3 || got.Income != 0 {
		t.Fatalf("budget = %+v, want the default record", got)
	}

	st := s.snapshotStatus()
	if st.LastError == "" {
		t.Fatal("LastError empty after decode failure")
	}

	// The blob recovers: the next poll applies it and clears the error.
	b := model.DefaultBudget()
	b.Income = 2_000_000
	putBudget(t, backend, b)
	s.pollOnce()
	st = s.snapshotStatus()
	if st.LastError != "" || st.Totals.Income != 2_000_000 {
		t.Fatalf("status after recovery = %+v", st)
	}
}

func TestHandlers(t *testing.T) {
	s, backend := newTestService(t, 10)
	b := model.DefaultBudget()
	b.Income = 1000
	b.Fixed = model.FixedCosts{Rent: 700}
	b.Future = model.FutureAllocation{}
	b.Dials = []model.Dial{{ID: "1", Name: "Food", Value: 500}}
	putBudget(t, backend, b)
	s.pollOnce()

	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/status")
	if err != nil {
		t.Fatalf("GET status: %v", err)
	}
	var st Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	resp.Body.Close()
	if !st.OverBudget || st.Totals.Remaining != -200 {
		t.Fatalf("status = %+v, want over budget with -200 remaining", st)
	}
	if st.AdviceEnabled {
		t.Fatal("advice enabled without a generator")
	}

	resp, err = http.Get(srv.URL + "/v1/metrics")
	if err != nil {
		t.Fatalf("GET metrics: %v", err)
	}
	var m model.Metrics
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatalf("decode metrics: %v", err)
	}
	resp.Body.Close()
	if m.Percentages.Fixed != 70 {
		t.Fatalf("fixed pct = %v, want 70", m.Percentages.Fixed)
	}

	resp, err = http.Get(srv.URL + "/v1/advice")
	if err != nil {
		t.Fatalf("GET advice: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("GET advice status = %d, want 405", resp.StatusCode)
	}

	resp, err = http.Post(srv.URL+"/v1/advice", "application/json", nil)
	if err != nil {
		t.Fatalf("POST advice: %v", err)
	}
	var adv model.Advice
	if err := json.NewDecoder(resp.Body).Decode(&adv); err != nil {
		t.Fatalf("decode advice: %v", err)
	}
	resp.Body.Close()
	if adv.Summary != model.FallbackAdvice().Summary || len(adv.Tips) != 3 {
		t.Fatalf("advice = %+v, want fallback", adv)
	}

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	for _, want := range []string{
		"dials_income 1000",
		`dials_group_total{group="remaining"} -200`,
		`dials_advice_requests_total{outcome="fallback"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("/metrics missing %q:\n%s", want, body)
		}
	}
}

func TestBudgetBeforeFirstPoll(t *testing.T) {
	s, _ := newTestService(t, 10)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/budget", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

type cannedGenerator struct {
	adv model.Advice
}

func (g cannedGenerator) Generate(context.Context, string) (model.Advice, error) {
	return g.adv, nil
}

func TestAdviceOutcomeLabel(t *testing.T) {
	logger := log.New(io.Discard)
	// Generated text identical to the fallback still counts as generated.
	s := New(Config{
		Backend: store.NewMemoryBackend(),
		Codec:   store.JSONCodec{},
		Logger:  logger,
		Advisor: advisor.New(cannedGenerator{adv: model.FallbackAdvice()}, logger, time.Second),
	})
	s.pollOnce()

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/advice", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /v1/advice = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	if !strings.Contains(body, `dials_advice_requests_total{outcome="generated"} 1`) {
		t.Fatalf("/metrics missing generated outcome:\n%s", body)
	}
	if strings.Contains(body, `outcome="fallback"`) {
		t.Fatalf("/metrics counted a fallback:\n%s", body)
	}
}
