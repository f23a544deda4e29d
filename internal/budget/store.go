// Package budget owns the single in-process budget record. Every mutation
// swaps in a modified copy and then persists it.
package budget

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/theirongolddev/dials/internal/model"
	"github.com/theirongolddev/dials/internal/store"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// ErrInvalidAmount is returned for negative or non-finite amounts. The
// record is left untouched.
var ErrInvalidAmount = errors.New("budget: amount must be a finite number >= 0")

// Store holds the current record and writes it through a store.Backend.
// It is safe for concurrent use; each mutation is persisted while the lock
// is held, so the blob always matches the latest record.
type Store struct {
	mu      sync.Mutex
	record  model.Budget
	backend store.Backend
	codec   store.Codec
	log     *log.Logger
	newID   func() string

	// onChange, if set, runs after every successful mutation.
	onChange func(model.Budget)
}

// Option customizes a Store.
type Option func(*Store)

// WithIDFunc replaces the dial id generator.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithOnChange registers a callback that receives a snapshot after each
// mutation.
func WithOnChange(fn func(model.Budget)) Option {
	return func(s *Store) { s.onChange = fn }
}

// NewStore returns a store holding the default record. Call Load to pick up
// persisted state.
func NewStore(backend store.Backend, codec store.Codec, logger *log.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{
		record:  model.DefaultBudget(),
		backend: backend,
		codec:   codec,
		log:     logger,
		newID:   uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load replaces the record with the persisted one. A missing or undecodable
// blob is logged and the current record is kept. Reports whether persisted
// state was applied.
func (s *Store) Load() bool {
	applied, _ := s.Refresh()
	return applied
}

// Refresh is Load with the failure returned. A missing blob is not an
// error. On any failure the current record is kept.
func (s *Store) Refresh() (bool, error) {
	data, err := s.backend.Get()
	if errors.Is(err, store.ErrNotFound) {
		s.log.Debug("no saved budget, using current record")
		return false, nil
	}
	if err != nil {
		s.log.Warn("reading saved budget", "err", err)
		return false, fmt.Errorf("reading budget: %w", err)
	}

	var b model.Budget
	if err := s.codec.Decode(data, &b); err != nil {
		s.log.Warn("saved budget is unreadable, keeping current record", "err", err)
		return false, fmt.Errorf("decoding budget: %w", err)
	}
	if b.Dials == nil {
		b.Dials = []model.Dial{}
	}

	s.mu.Lock()
	s.record = b
	s.mu.Unlock()
	return true, nil
}

// Save writes the current record. Failures are logged, not returned.
func (s *Store) Save() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.save(s.record)
}

// save must be called with s.mu held so writes reach the backend in
// mutation order.
func (s *Store) save(b model.Budget) {
	data, err := s.codec.Encode(b)
	if err != nil {
		s.log.Error("encoding budget", "err", err)
		return
	}
	if err := s.backend.Put(data); err != nil {
		s.log.Error("saving budget", "err", err)
	}
}

// Snapshot returns a deep copy of the current record.
func (s *Store) Snapshot() model.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record.Clone()
}

// mutate applies fn to a copy of the record. When fn reports a change the
// copy replaces the record and is saved before the lock is released.
func (s *Store) mutate(fn func(b *model.Budget) bool) {
	s.mu.Lock()
	next := s.record.Clone()
	if !fn(&next) {
		s.mu.Unlock()
		return
	}
	s.record = next
	s.save(next)
	snap := next.Clone()
	s.mu.Unlock()

	if s.onChange != nil {
		s.onChange(snap)
	}
}

func validAmount(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// SetIncome replaces the monthly income.
func (s *Store) SetIncome(v float64) error {
	if !validAmount(v) {
		return ErrInvalidAmount
	}
	s.mutate(func(b *model.Budget) bool {
		b.Income = v
		return true
	})
	return nil
}

// SetFixed replaces one fixed-cost amount. Unknown fields are ignored.
func (s *Store) SetFixed(field model.FixedField, v float64) error {
	if !validAmount(v) {
		return ErrInvalidAmount
	}
	s.mutate(func(b *model.Budget) bool {
		switch field {
		case model.FixedRent:
			b.Fixed.Rent = v
		case model.FixedUtilities:
			b.Fixed.Utilities = v
		case model.FixedOther:
			b.Fixed.Other = v
		default:
			return false
		}
		return true
	})
	return nil
}

// SetFuture replaces one future-allocation amount. Unknown fields are ignored.
func (s *Store) SetFuture(field model.FutureField, v float64) error {
	if !validAmount(v) {
		return ErrInvalidAmount
	}
	s.mutate(func(b *model.Budget) bool {
		switch field {
		case model.FutureSavings:
			b.Future.Savings = v
		case model.FutureInvestment:
			b.Future.Investment = v
		default:
			return false
		}
		return true
	})
	return nil
}

// AddDial appends a zero-value dial with a fresh id and returns that id.
func (s *Store) AddDial() string {
	id, _ := s.InsertDial(model.NewDialName, 0, "")
	return id
}

// InsertDial appends a dial with the given fields in a single mutation and
// returns its id. An empty name becomes model.NewDialName. Invalid amounts
// are rejected before anything changes.
func (s *Store) InsertDial(name string, value float64, description string) (string, error) {
	if !validAmount(value) {
		return "", ErrInvalidAmount
	}
	if name == "" {
		name = model.NewDialName
	}
	id := s.newID()
	s.mutate(func(b *model.Budget) bool {
		b.Dials = append(b.Dials, model.Dial{ID: id, Name: name, Value: value, Description: description})
		return true
	})
	return id, nil
}

// UpdateDial replaces the name and value of the dial with the given id, and
// its description when description is non-nil. Unknown ids are ignored.
func (s *Store) UpdateDial(id, name string, value float64, description *string) error {
	if !validAmount(value) {
		return ErrInvalidAmount
	}
	s.mutate(func(b *model.Budget) bool {
		i := b.DialIndex(id)
		if i < 0 {
			return false
		}
		d := b.Dials[i]
		d.Name = name
		d.Value = value
		if description != nil {
			d.Description = *description
		}
		b.Dials[i] = d
		return true
	})
	return nil
}

// RemoveDial deletes the dial with the given id. Unknown ids are ignored.
func (s *Store) RemoveDial(id string) {
	s.mutate(func(b *model.Budget) bool {
		i := b.DialIndex(id)
		if i < 0 {
			return false
		}
		b.Dials = append(b.Dials[:i], b.Dials[i+1:]...)
		return true
	})
}

// Dial returns the dial with the given id.
func (s *Store) Dial(id string) (model.Dial, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.record.DialIndex(id)
	if i < 0 {
		return model.Dial{}, false
	}
	return s.record.Dials[i], true
}
