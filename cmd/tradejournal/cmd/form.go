package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/journal"
)

type tradeAnswers struct {
	Date     string
	Stock    string
	Entry    string
	Target1  string `survey:"target1"`
	Target2  string `survey:"target2"`
	Target3  string `survey:"target3"`
	StopLoss string `survey:"stop_loss"`
	Quantity string
	Status   string
	Exit     string
	Notes    string
}

func priceValidator(required bool) survey.Validator {
	return func(val interface{}) error {
		str := strings.TrimSpace(val.(string))
		if str == "" {
			if required {
				return fmt.Errorf("value is required")
			}
			return nil
		}
		d, err := decimal.NewFromString(str)
		if err != nil {
			return fmt.Errorf("not a number")
		}
		if d.IsNegative() {
			return fmt.Errorf("must not be negative")
		}
		return nil
	}
}

func levelText(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

// promptTrade runs the add/edit form prefilled with def.
func promptTrade(title string, def journal.TradeRecord) (journal.TradeRecord, error) {
	qty := ""
	if def.Quantity > 0 {
		qty = strconv.FormatInt(def.Quantity, 10)
	}
	status := string(def.Status)
	if status != string(journal.StatusClosed) {
		status = string(journal.StatusOpen)
	}

	questions := []*survey.Question{
		{
			Name: "date",
			Prompt: &survey.Input{
				Message: "Date (YYYY-MM-DD):",
				Default: def.Date.Format(journal.DateLayout),
			},
			Validate: func(val interface{}) error {
				_, err := journal.ParseDate(val.(string))
				return err
			},
		},
		{
			Name:      "stock",
			Prompt:    &survey.Input{Message: "Stock:", Default: def.Stock, Help: "Ticker without exchange suffix, e.g. TCS"},
			Validate:  survey.Required,
			Transform: survey.TransformString(strings.ToUpper),
		},
		{Name: "entry", Prompt: &survey.Input{Message: "Entry price:", Default: levelText(def.EntryPrice)}, Validate: priceValidator(true)},
		{Name: "target1", Prompt: &survey.Input{Message: "Target 1:", Default: levelText(def.Target1)}, Validate: priceValidator(false)},
		{Name: "target2", Prompt: &survey.Input{Message: "Target 2:", Default: levelText(def.Target2)}, Validate: priceValidator(false)},
		{Name: "target3", Prompt: &survey.Input{Message: "Target 3:", Default: levelText(def.Target3)}, Validate: priceValidator(false)},
		{Name: "stop_loss", Prompt: &survey.Input{Message: "Stop loss:", Default: levelText(def.StopLoss)}, Validate: priceValidator(false)},
		{
			Name:   "quantity",
			Prompt: &survey.Input{Message: "Quantity:", Default: qty},
			Validate: func(val interface{}) error {
				q, err := strconv.ParseInt(strings.TrimSpace(val.(string)), 10, 64)
				if err != nil || q < 1 {
					return fmt.Errorf("quantity must be a whole number of at least 1")
				}
				return nil
			},
		},
		{
			Name: "status",
			Prompt: &survey.Select{
				Message: "Status:",
				Options: []string{string(journal.StatusOpen), string(journal.StatusClosed)},
				Default: status,
			},
		},
		{Name: "exit", Prompt: &survey.Input{Message: "Exit price (Closed only):", Default: levelText(def.ExitPrice)}, Validate: priceValidator(false)},
		{Name: "notes", Prompt: &survey.Multiline{Message: "Notes:", Default: def.Notes}},
	}

	fmt.Println(title)
	var a tradeAnswers
	if err := survey.Ask(questions, &a); err != nil {
		return journal.TradeRecord{}, err
	}
	return a.record(def)
}

// record converts answers back onto def, keeping its id.
func (a tradeAnswers) record(def journal.TradeRecord) (journal.TradeRecord, error) {
	t := journal.TradeRecord{ID: def.ID, Notes: a.Notes}

	var err error
	if t.Date, err = journal.ParseDate(a.Date); err != nil {
		return t, err
	}
	t.Stock = journal.NormalizeSymbol(a.Stock)
	if t.Quantity, err = strconv.ParseInt(strings.TrimSpace(a.Quantity), 10, 64); err != nil {
		return t, fmt.Errorf("quantity: %w", err)
	}
	if t.Status, err = journal.ParseStatus(a.Status); err != nil {
		return t, err
	}
	for _, p := range []struct {
		dst *decimal.Decimal
		raw string
	}{
		{&t.EntryPrice, a.Entry},
		{&t.Target1, a.Target1},
		{&t.Target2, a.Target2},
		{&t.Target3, a.Target3},
		{&t.StopLoss, a.StopLoss},
		{&t.ExitPrice, a.Exit},
	} {
		if *p.dst, err = parsePrice(p.raw); err != nil {
			return t, err
		}
	}
	return t, nil
}
