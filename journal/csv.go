// journal/csv.go
package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// CSVStore keeps the ledger in a single CSV file.
type CSVStore struct {
	path    string
	backups int
	log     zerolog.Logger
}

// NewCSVStore returns a store for path. Nothing touches disk until Load or
// Save.
func NewCSVStore(path string, opts ...StoreOption) *CSVStore {
	o := buildOptions(opts)
	return &CSVStore{
		path:    path,
		backups: o.backups,
		log:     o.log.With().Str("journal", path).Logger(),
	}
}

// Path returns the backing file.
func (s *CSVStore) Path() string { return s.path }

// Load reads the file. A missing file is created empty with the header.
// Rows that fail to parse are dropped and listed in the report.
func (s *CSVStore) Load() (*Ledger, LoadReport, error) {
	var rep LoadReport

	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		l := NewLedger()
		if err := s.write(l); err != nil {
			return nil, rep, fmt.Errorf("create journal: %w", err)
		}
		s.log.Info().Msg("created empty journal")
		return l, rep, nil
	}
	if err != nil {
		return nil, rep, fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return NewLedger(), rep, nil
	}
	if err != nil {
		return nil, rep, fmt.Errorf("read header: %w", err)
	}
	idx, err := headerIndex(header)
	if err != nil {
		return nil, rep, err
	}

	var trades []TradeRecord
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				rep.Rows++
				rep.drop(pe.Line, "", pe.Err.Error())
				continue
			}
			return nil, rep, fmt.Errorf("read journal: %w", err)
		}
		rep.Rows++
		line, _ := r.FieldPos(0)

		t, err := parseRow(idx.row(rec))
		if err != nil {
			var ce *columnError
			if errors.As(err, &ce) {
				rep.drop(line, ce.column, ce.err.Error())
			} else {
				rep.drop(line, "", err.Error())
			}
			continue
		}
		trades = append(trades, t)
	}

	l := NewLedger(trades...)
	rep.Assigned = l.assignIDs()

	if rep.Dropped > 0 {
		ev := s.log.Warn().Int("dropped", rep.Dropped).Int("rows", rep.Rows)
		for _, is := range rep.Issues {
			ev = ev.Str(fmt.Sprintf("line_%d", is.Line), is.Column+": "+is.Reason)
		}
		ev.Msg("dropped unreadable journal rows")
	}
	if rep.Assigned > 0 {
		s.log.Info().Int("assigned", rep.Assigned).Msg("assigned ids to journal rows")
	}
	return l, rep, nil
}

// Save rewrites the whole file. The new contents land in a temp file that
// is renamed over the old one, so readers see either version in full.
func (s *CSVStore) Save(l *Ledger) error {
	if err := s.write(l); err != nil {
		return err
	}
	s.log.Debug().Int("trades", l.Len()).Msg("journal saved")
	return nil
}

// Close is a no-op; the file is only open during Load and Save.
func (s *CSVStore) Close() error { return nil }

func (s *CSVStore) write(l *Ledger) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create journal dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	w := csv.NewWriter(tmp)
	if err := w.Write(Columns); err != nil {
		cleanup()
		return fmt.Errorf("write header: %w", err)
	}
	for _, t := range l.trades {
		if err := w.Write(formatRow(t).fields()); err != nil {
			cleanup()
			return fmt.Errorf("write trade %s: %w", t.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		cleanup()
		return fmt.Errorf("flush journal: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("sync journal: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		cleanup()
		return fmt.Errorf("chmod journal: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if s.backups > 0 {
		s.rotateVersions()
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace journal: %w", err)
	}
	return nil
}

// rotateVersions shifts <file>.v1..v(n-1) up by one and copies the current
// file to v1. The current file stays in place until the rename.
func (s *CSVStore) rotateVersions() {
	cur, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	os.Remove(versionPath(s.path, s.backups))
	for i := s.backups; i > 1; i-- {
		os.Rename(versionPath(s.path, i-1), versionPath(s.path, i))
	}
	if err := os.WriteFile(versionPath(s.path, 1), cur, 0o644); err != nil {
		s.log.Warn().Err(err).Msg("journal backup failed")
	}
}

func versionPath(path string, n int) string {
	return fmt.Sprintf("%s.v%d", path, n)
}

type columnIndex map[string]int

func headerIndex(header []string) (columnIndex, error) {
	idx := make(columnIndex, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	var missing []string
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("journal header missing columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func (idx columnIndex) get(rec []string, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return rec[i]
}

func (idx columnIndex) row(rec []string) row {
	return row{
		Date:     idx.get(rec, "Date"),
		Stock:    idx.get(rec, "Stock"),
		Entry:    idx.get(rec, "Entry Price"),
		Target1:  idx.get(rec, "Target 1"),
		Target2:  idx.get(rec, "Target 2"),
		Target3:  idx.get(rec, "Target 3"),
		StopLoss: idx.get(rec, "Stop Loss"),
		Quantity: idx.get(rec, "Quantity"),
		Status:   idx.get(rec, "Status"),
		Exit:     idx.get(rec, "Exit Price"),
		Notes:    idx.get(rec, "Notes"),
		ID:       idx.get(rec, "ID"),
	}
}
