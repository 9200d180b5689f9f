package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	"github.com/rustyeddy/tradejournal/journal"
)

// tradeFields holds the raw trade flags shared by add and edit.
type tradeFields struct {
	Date     string
	Stock    string
	Entry    string
	Target1  string
	Target2  string
	Target3  string
	StopLoss string
	Quantity int64
	Status   string
	Exit     string
	Notes    string
}

func (f *tradeFields) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.Date, "date", "", "trade date YYYY-MM-DD (default today)")
	fs.StringVarP(&f.Stock, "stock", "s", "", "ticker, e.g. TCS")
	fs.StringVarP(&f.Entry, "entry", "e", "", "entry price")
	fs.StringVar(&f.Target1, "t1", "", "target 1")
	fs.StringVar(&f.Target2, "t2", "", "target 2")
	fs.StringVar(&f.Target3, "t3", "", "target 3")
	fs.StringVar(&f.StopLoss, "sl", "", "stop loss")
	fs.Int64VarP(&f.Quantity, "qty", "q", 0, "quantity")
	fs.StringVar(&f.Status, "status", "", "Open or Closed")
	fs.StringVar(&f.Exit, "exit", "", "exit price (Closed trades)")
	fs.StringVarP(&f.Notes, "notes", "n", "", "free-form notes")
}

// apply copies every flag the user set onto t. Unset flags leave t alone,
// which is what edit needs; add starts from a blank record.
func (f *tradeFields) apply(fs *pflag.FlagSet, t *journal.TradeRecord) error {
	var err error
	if fs.Changed("date") {
		if t.Date, err = journal.ParseDate(f.Date); err != nil {
			return err
		}
	}
	if fs.Changed("stock") {
		t.Stock = journal.NormalizeSymbol(f.Stock)
	}
	for _, p := range []struct {
		flag string
		dst  *decimal.Decimal
		raw  string
	}{
		{"entry", &t.EntryPrice, f.Entry},
		{"t1", &t.Target1, f.Target1},
		{"t2", &t.Target2, f.Target2},
		{"t3", &t.Target3, f.Target3},
		{"sl", &t.StopLoss, f.StopLoss},
		{"exit", &t.ExitPrice, f.Exit},
	} {
		if !fs.Changed(p.flag) {
			continue
		}
		if *p.dst, err = parsePrice(p.raw); err != nil {
			return fmt.Errorf("--%s: %w", p.flag, err)
		}
	}
	if fs.Changed("qty") {
		t.Quantity = f.Quantity
	}
	if fs.Changed("status") {
		if t.Status, err = journal.ParseStatus(f.Status); err != nil {
			return err
		}
	}
	if fs.Changed("notes") {
		t.Notes = f.Notes
	}
	return nil
}

// parsePrice reads an optional price; empty means unset.
func parsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a number: %q", s)
	}
	return d, nil
}

// newTrade is the starting point for add.
func newTrade(now time.Time) journal.TradeRecord {
	return journal.TradeRecord{
		Date:   journal.Day(now),
		Status: journal.StatusOpen,
	}
}
