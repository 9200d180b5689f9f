package journal

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/tradejournal/pkg/id"
)

// ErrNotFound is returned when no record carries the requested id.
var ErrNotFound = errors.New("trade not found")

var newID = id.New

// Ledger is the ordered set of trades. Insertion order is display order.
type Ledger struct {
	trades []TradeRecord
}

// NewLedger wraps trades as given. Callers own id uniqueness.
func NewLedger(trades ...TradeRecord) *Ledger {
	l := &Ledger{trades: make([]TradeRecord, len(trades))}
	copy(l.trades, trades)
	return l
}

// Len returns the number of records.
func (l *Ledger) Len() int { return len(l.trades) }

// Trades returns a copy of the records in ledger order.
func (l *Ledger) Trades() []TradeRecord {
	out := make([]TradeRecord, len(l.trades))
	copy(out, l.trades)
	return out
}

// Clone returns an independent copy.
func (l *Ledger) Clone() *Ledger {
	return NewLedger(l.trades...)
}

func (l *Ledger) index(tradeID string) int {
	for i := range l.trades {
		if l.trades[i].ID == tradeID {
			return i
		}
	}
	return -1
}

// Get looks a record up by id.
func (l *Ledger) Get(tradeID string) (TradeRecord, error) {
	i := l.index(tradeID)
	if i < 0 {
		return TradeRecord{}, fmt.Errorf("%w: %s", ErrNotFound, tradeID)
	}
	return l.trades[i], nil
}

// Add validates t, gives it a fresh id and appends it.
func (l *Ledger) Add(t TradeRecord) (TradeRecord, error) {
	t = t.Normalized()
	if err := Validate(t); err != nil {
		return TradeRecord{}, err
	}
	t.ID = newID()
	l.trades = append(l.trades, t)
	return t, nil
}

// Update replaces the record with the given id, keeping its id and place.
func (l *Ledger) Update(tradeID string, t TradeRecord) (TradeRecord, error) {
	i := l.index(tradeID)
	if i < 0 {
		return TradeRecord{}, fmt.Errorf("%w: %s", ErrNotFound, tradeID)
	}
	t = t.Normalized()
	if err := Validate(t); err != nil {
		return TradeRecord{}, err
	}
	t.ID = tradeID
	l.trades[i] = t
	return t, nil
}

// Delete removes the record with the given id.
func (l *Ledger) Delete(tradeID string) error {
	i := l.index(tradeID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, tradeID)
	}
	l.trades = append(l.trades[:i], l.trades[i+1:]...)
	return nil
}

// assignIDs fills in missing or repeated ids, returning how many it minted.
func (l *Ledger) assignIDs() int {
	seen := make(map[string]bool, len(l.trades))
	minted := 0
	for i := range l.trades {
		if l.trades[i].ID == "" || seen[l.trades[i].ID] {
			l.trades[i].ID = newID()
			minted++
		}
		seen[l.trades[i].ID] = true
	}
	return minted
}
