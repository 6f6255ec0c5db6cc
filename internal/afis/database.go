// Package afis ranks a query against a database of candidate minutiae sets.
//
// The database is read-mostly: load it once, then query it many times.
// Writers take an exclusive lock; Identify copies the candidate list under a
// read lock and works on that snapshot, so mutations never race with an
// identify already in flight (they are simply not visible to it).
package afis

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/jtejido/afislr/internal/minutia"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var (
	ErrEmptyID           = errors.New("candidate id is empty")
	ErrNoMinutiae        = errors.New("candidate has no minutiae")
	ErrCandidateNotFound = errors.New("candidate not found")
)

// Database stores candidate minutiae keyed by id, iterated in id order.
type Database struct {
	mx         sync.RWMutex
	candidates *treemap.Map
	cfg        Config
	logger     *log.Logger
}

// candidate is one stored entry of a snapshot.
type candidate struct {
	id       string
	minutiae []minutia.Minutia
}

// NewDatabase creates an empty database.
func NewDatabase(cfg Config) *Database {
	return &Database{
		candidates: treemap.NewWithStringComparator(),
		cfg:        cfg,
	}
}

// SetLogger enables load/clear logging. nil disables it.
func (d *Database) SetLogger(l *log.Logger) {
	d.mx.Lock()
	defer d.mx.Unlock()
	d.logger = l
}

// Config returns the matching configuration.
func (d *Database) Config() Config {
	return d.cfg
}

func (d *Database) logf(format string, args ...interface{}) {
	if d.logger != nil {
		d.logger.Printf(format, args...)
	}
}

func validate(id string, ms []minutia.Minutia) error {
	if id == "" {
		return ErrEmptyID
	}
	if len(ms) == 0 {
		return fmt.Errorf("%q: %w", id, ErrNoMinutiae)
	}
	return nil
}

// Add stores a copy of ms under id, replacing any previous entry.
func (d *Database) Add(id string, ms []minutia.Minutia) error {
	if err := validate(id, ms); err != nil {
		return err
	}
	d.mx.Lock()
	defer d.mx.Unlock()
	d.candidates.Put(id, slices.Clone(ms))
	return nil
}

// AddCandidate is Add reporting success as a bool.
func (d *Database) AddCandidate(id string, ms []minutia.Minutia) bool {
	return d.Add(id, ms) == nil
}

// Load replaces the whole database. Nothing changes if any entry is invalid.
func (d *Database) Load(entries map[string][]minutia.Minutia) error {
	ids := maps.Keys(entries)
	slices.Sort(ids)
	for _, id := range ids {
		if err := validate(id, entries[id]); err != nil {
			return fmt.Errorf("loading candidates: %w", err)
		}
	}

	d.mx.Lock()
	defer d.mx.Unlock()
	d.candidates.Clear()
	for _, id := range ids {
		d.candidates.Put(id, slices.Clone(entries[id]))
	}
	d.logf("afis: loaded %d candidates", len(ids))
	return nil
}

// Remove deletes id and reports whether it existed.
func (d *Database) Remove(id string) bool {
	d.mx.Lock()
	defer d.mx.Unlock()
	if _, ok := d.candidates.Get(id); !ok {
		return false
	}
	d.candidates.Remove(id)
	return true
}

// Clear empties the database.
func (d *Database) Clear() {
	d.mx.Lock()
	defer d.mx.Unlock()
	n := d.candidates.Size()
	d.candidates.Clear()
	d.logf("afis: cleared %d candidates", n)
}

// Get returns the minutiae stored under id.
func (d *Database) Get(id string) ([]minutia.Minutia, bool) {
	d.mx.RLock()
	defer d.mx.RUnlock()
	v, ok := d.candidates.Get(id)
	if !ok {
		return nil, false
	}
	return slices.Clone(v.([]minutia.Minutia)), true
}

// Len returns the number of candidates.
func (d *Database) Len() int {
	d.mx.RLock()
	defer d.mx.RUnlock()
	return d.candidates.Size()
}

// IDs lists candidate ids in ascending order.
func (d *Database) IDs() []string {
	d.mx.RLock()
	defer d.mx.RUnlock()
	ids := make([]string, 0, d.candidates.Size())
	for _, k := range d.candidates.Keys() {
		ids = append(ids, k.(string))
	}
	return ids
}

// snapshot copies the candidate list in id order. Stored slices are never
// mutated in place, so sharing them is safe.
func (d *Database) snapshot() []candidate {
	d.mx.RLock()
	defer d.mx.RUnlock()
	out := make([]candidate, 0, d.candidates.Size())
	it := d.candidates.Iterator()
	for it.Next() {
		out = append(out, candidate{id: it.Key().(string), minutiae: it.Value().([]minutia.Minutia)})
	}
	return out
}

// VerifyID compares query with the stored candidate id.
func (d *Database) VerifyID(query []minutia.Minutia, id string) (MatchResult, error) {
	d.mx.RLock()
	v, ok := d.candidates.Get(id)
	d.mx.RUnlock()
	if !ok {
		return MatchResult{}, fmt.Errorf("%q: %w", id, ErrCandidateNotFound)
	}
	res := Verify(query, v.([]minutia.Minutia), d.cfg)
	res.CandidateID = id
	return res, nil
}
