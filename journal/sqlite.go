package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

// SQLiteStore keeps the ledger in a SQLite table. Row order is kept in the
// position column.
type SQLiteStore struct {
	db  *sql.DB
	log zerolog.Logger
}

func NewSQLiteStore(path string, opts ...StoreOption) (*SQLiteStore, error) {
	o := buildOptions(opts)

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{
		db:  db,
		log: o.log.With().Str("journal", path).Logger(),
	}, nil
}

func (s *SQLiteStore) Load() (*Ledger, LoadReport, error) {
	var rep LoadReport

	rows, err := s.db.Query(`
		SELECT position, id, date, stock, entry_price, target1, target2, target3,
		       stop_loss, quantity, status, exit_price, notes
		FROM trades
		ORDER BY position ASC`)
	if err != nil {
		return nil, rep, fmt.Errorf("query trades: %w", err)
	}
	defer rows.Close()

	var trades []TradeRecord
	for rows.Next() {
		var (
			pos int
			r   row
		)
		if err := rows.Scan(
			&pos,
			&r.ID,
			&r.Date,
			&r.Stock,
			&r.Entry,
			&r.Target1,
			&r.Target2,
			&r.Target3,
			&r.StopLoss,
			&r.Quantity,
			&r.Status,
			&r.Exit,
			&r.Notes,
		); err != nil {
			return nil, rep, err
		}
		rep.Rows++

		t, err := parseRow(r)
		if err != nil {
			var ce *columnError
			if errors.As(err, &ce) {
				rep.drop(pos, ce.column, ce.err.Error())
			} else {
				rep.drop(pos, "", err.Error())
			}
			continue
		}
		trades = append(trades, t)
	}
	if err := rows.Err(); err != nil {
		return nil, rep, err
	}

	l := NewLedger(trades...)
	rep.Assigned = l.assignIDs()
	if rep.Dropped > 0 {
		s.log.Warn().Int("dropped", rep.Dropped).Int("rows", rep.Rows).Msg("dropped unreadable journal rows")
	}
	return l, rep, nil
}

// Save replaces every row in one transaction.
func (s *SQLiteStore) Save(l *Ledger) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.Exec(`DELETE FROM trades`); err != nil {
		return fmt.Errorf("clear trades: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO trades
		(id, position, date, stock, entry_price, target1, target2, target3, stop_loss, quantity, status, exit_price, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range l.trades {
		r := formatRow(t)
		if _, err = stmt.Exec(
			r.ID, i, r.Date, r.Stock, r.Entry, r.Target1, r.Target2, r.Target3,
			r.StopLoss, t.Quantity, r.Status, r.Exit, r.Notes,
		); err != nil {
			return fmt.Errorf("insert trade %s: %w", t.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.log.Debug().Int("trades", l.Len()).Msg("journal saved")
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
