package journal

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Service runs each change as load, mutate, save. A rejected or failed
// change leaves the backing store as it was.
type Service struct {
	store Store
	log   zerolog.Logger
}

func NewService(store Store, log zerolog.Logger) *Service {
	return &Service{store: store, log: log}
}

// Load returns the current ledger. Ids minted for rows that had none are
// saved straight away so the next load sees the same ids.
func (s *Service) Load() (*Ledger, LoadReport, error) {
	l, rep, err := s.store.Load()
	if err != nil {
		return nil, rep, fmt.Errorf("load journal: %w", err)
	}
	if rep.Assigned > 0 {
		if err := s.store.Save(l); err != nil {
			return nil, rep, fmt.Errorf("save assigned ids: %w", err)
		}
		s.log.Info().Int("assigned", rep.Assigned).Msg("saved new trade ids")
	}
	return l, rep, nil
}

// Get returns one trade.
func (s *Service) Get(tradeID string) (TradeRecord, error) {
	l, _, err := s.Load()
	if err != nil {
		return TradeRecord{}, err
	}
	return l.Get(tradeID)
}

// Add appends a new trade and persists the ledger.
func (s *Service) Add(t TradeRecord) (TradeRecord, error) {
	if err := Validate(t.Normalized()); err != nil {
		return TradeRecord{}, err
	}
	l, rep, err := s.Load()
	if err != nil {
		return TradeRecord{}, err
	}
	s.warnDropped(rep)

	added, err := l.Add(t)
	if err != nil {
		return TradeRecord{}, err
	}
	if err := s.store.Save(l); err != nil {
		return TradeRecord{}, fmt.Errorf("save journal: %w", err)
	}
	s.log.Info().Str("id", added.ID).Str("stock", added.Stock).Msg("trade added")
	return added, nil
}

// Update replaces the trade with the given id and persists the ledger.
func (s *Service) Update(tradeID string, t TradeRecord) (TradeRecord, error) {
	if err := Validate(t.Normalized()); err != nil {
		return TradeRecord{}, err
	}
	l, rep, err := s.Load()
	if err != nil {
		return TradeRecord{}, err
	}
	s.warnDropped(rep)

	updated, err := l.Update(tradeID, t)
	if err != nil {
		return TradeRecord{}, err
	}
	if err := s.store.Save(l); err != nil {
		return TradeRecord{}, fmt.Errorf("save journal: %w", err)
	}
	s.log.Info().Str("id", tradeID).Str("stock", updated.Stock).Msg("trade updated")
	return updated, nil
}

// Delete removes the trade with the given id and persists the ledger.
func (s *Service) Delete(tradeID string) error {
	l, rep, err := s.Load()
	if err != nil {
		return err
	}
	s.warnDropped(rep)

	if err := l.Delete(tradeID); err != nil {
		return err
	}
	if err := s.store.Save(l); err != nil {
		return fmt.Errorf("save journal: %w", err)
	}
	s.log.Info().Str("id", tradeID).Msg("trade deleted")
	return nil
}

// Close releases the store.
func (s *Service) Close() error {
	return s.store.Close()
}

func (s *Service) warnDropped(rep LoadReport) {
	if rep.Dropped > 0 {
		s.log.Warn().Int("dropped", rep.Dropped).Msg("unreadable rows will not be written back")
	}
}
