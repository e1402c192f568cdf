// Package stats accumulates per-name running statistics and the
// fingerprint-keyed table that holds them.
package stats

import (
	"errors"

	"onebrc/internal/fixed"
)

// Aggregate is the running min/max/sum/count for one name. Sum is an
// int64 of tenths: a billion observations of 99.9 still fit.
type Aggregate struct {
	Name  string
	Min   fixed.Value
	Max   fixed.Value
	Sum   int64
	Count int64
}

// NewAggregate seeds an aggregate from a first observation.
func NewAggregate(name string, v fixed.Value) *Aggregate {
	return &Aggregate{Name: name, Min: v, Max: v, Sum: int64(v), Count: 1}
}

// Observe folds one more value in.
func (a *Aggregate) Observe(v fixed.Value) {
	if v < a.Min {
		a.Min = v
	}
	if v > a.Max {
		a.Max = v
	}
	a.Sum += int64(v)
	a.Count++
}

// Merge combines another aggregate for the same name into a. It is
// commutative and associative over min/max/sum/count, which is what lets
// the reduction fold worker tables in any order.
func (a *Aggregate) Merge(o *Aggregate) {
	if o.Min < a.Min {
		a.Min = o.Min
	}
	if o.Max > a.Max {
		a.Max = o.Max
	}
	a.Sum += o.Sum
	a.Count += o.Count
}

// Mean is the arithmetic mean in tenths. It is computed from Sum and
// Count only when asked, never maintained incrementally, so accumulation
// stays in the integer domain.
func (a *Aggregate) Mean() fixed.Value {
	return fixed.DivRound(a.Sum, a.Count)
}

// tableSlots is a power of two comfortably above the distinct-name bound
// of the input domain (ten thousand), so the hot loop never rehashes. The
// table refuses inserts past half capacity to keep probes short.
const tableSlots = 1 << 15

// ErrTableFull reports more distinct fingerprints than the table is sized
// for, which means the input broke the bounded-domain assumption.
var ErrTableFull = errors.New("aggregate table full")

// Table maps 64-bit fingerprints to aggregates. The fingerprint itself is
// the hash: slots are probed starting at key&mask, and occupancy is
// decided by fingerprint equality alone, never by comparing names. Two
// distinct names with equal fingerprints would silently share an
// aggregate; the length pseudo-byte in the default fingerprint lowers
// that probability but nothing detects it.
type Table struct {
	slots [tableSlots]slot
	n     int
}

type slot struct {
	key uint64
	agg *Aggregate
}

// NewTable returns an empty table at full capacity; it never grows.
func NewTable() *Table { return &Table{} }

// Len reports the number of distinct fingerprints recorded.
func (t *Table) Len() int { return t.n }

// Upsert records one observation of name under key, seeding a new
// aggregate on first sight. The name bytes are copied on creation so the
// table never aliases a scan buffer.
func (t *Table) Upsert(key uint64, name []byte, v fixed.Value) error {
	i := int(key & (tableSlots - 1))
	for {
		s := &t.slots[i]
		switch {
		case s.agg == nil:
			if t.n >= tableSlots/2 {
				return ErrTableFull
			}
			s.key = key
			s.agg = NewAggregate(string(name), v)
			t.n++
			return nil
		case s.key == key:
			s.agg.Observe(v)
			return nil
		}
		i = (i + 1) & (tableSlots - 1)
	}
}

// Merge folds every entry of other into t by fingerprint: absent entries
// move in, present ones merge. other must not be used afterwards.
func (t *Table) Merge(other *Table) error {
	for i := range other.slots {
		s := &other.slots[i]
		if s.agg == nil {
			continue
		}
		if err := t.add(s.key, s.agg); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) add(key uint64, agg *Aggregate) error {
	i := int(key & (tableSlots - 1))
	for {
		s := &t.slots[i]
		switch {
		case s.agg == nil:
			if t.n >= tableSlots/2 {
				return ErrTableFull
			}
			s.key = key
			s.agg = agg
			t.n++
			return nil
		case s.key == key:
			s.agg.Merge(agg)
			return nil
		}
		i = (i + 1) & (tableSlots - 1)
	}
}

// Range calls fn for every aggregate until fn returns false. Order is
// unspecified. The table can be ranged over again afterwards.
func (t *Table) Range(fn func(*Aggregate) bool) {
	for i := range t.slots {
		if a := t.slots[i].agg; a != nil && !fn(a) {
			return
		}
	}
}
