package dashboard

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/alert"
	"github.com/rustyeddy/tradejournal/journal"
)

// CurrencySymbol prefixes money amounts.
var CurrencySymbol = "₹"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	summaryStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(0, 1)

	headerCellStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3B82F6")).Padding(0, 1)
	cellStyle       = lipgloss.NewStyle().Padding(0, 1)
	editingStyle    = cellStyle.Background(lipgloss.Color("#1F2937"))

	gainStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	lossStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	alertStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// Headers are the table columns in display order.
var Headers = []string{
	"ID", "Date", "Stock", "Entry", "T1", "T2", "T3", "SL", "Qty", "Status", "Exit", "Current (Change%)", "PnL", "R:R", "Alerts",
}

// Render writes the summary, table and alert lines for v.
func Render(w io.Writer, v View) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Trading Journal"))
	b.WriteString("\n")
	b.WriteString(summaryStyle.Render(SummaryLine(v)))
	b.WriteString("\n")

	if len(v.Rows) == 0 {
		b.WriteString(mutedStyle.Render("No trades match the current filter."))
		b.WriteString("\n")
	} else {
		b.WriteString(tableFor(v).Render())
		b.WriteString("\n")
	}

	for _, line := range AlertLines(v.Rows) {
		b.WriteString(alertStyle.Render(line))
		b.WriteString("\n")
	}

	var foot []string
	if v.Dropped > 0 {
		foot = append(foot, fmt.Sprintf("%d unreadable rows skipped", v.Dropped))
	}
	if !v.UpdatedAt.IsZero() {
		foot = append(foot, "updated "+v.UpdatedAt.Format("15:04:05"))
	}
	if len(foot) > 0 {
		b.WriteString(mutedStyle.Render(strings.Join(foot, " | ")))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// SummaryLine is the one-line PnL summary.
func SummaryLine(v View) string {
	s := v.Summary
	line := fmt.Sprintf("Open PnL: %s | Closed PnL: %s | Total PnL: %s | Showing %d of %d",
		Money(s.Open), Money(s.Closed), Money(s.Total), len(v.Rows), v.Total)
	if s.Partial {
		line += " | no price: " + strings.Join(s.Unpriced, ", ")
	}
	return line
}

// AlertLines lists one line per open row that has alerts.
func AlertLines(rows []Row) []string {
	var out []string
	for _, r := range rows {
		if len(r.Alerts) == 0 {
			continue
		}
		out = append(out, fmt.Sprintf("%s: %s at %s",
			r.Trade.Stock, strings.Join(alert.Labels(r.Alerts), ", "), r.Price.StringFixed(2)))
	}
	return out
}

func tableFor(v View) *table.Table {
	cells := make([][]string, 0, len(v.Rows))
	for _, r := range v.Rows {
		cells = append(cells, cellsFor(r))
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(Headers...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			if row < 0 || row >= len(v.Rows) {
				return cellStyle
			}
			r := v.Rows[row]
			if v.State.EditingID != "" && r.Trade.ID == v.State.EditingID {
				return editingStyle
			}
			switch Headers[col] {
			case "Current (Change%)":
				if !r.Priced {
					return cellStyle.Inherit(mutedStyle)
				}
				return signStyle(r.ChangePct)
			case "PnL":
				return signStyle(r.PnL)
			case "Alerts":
				return cellStyle.Inherit(alertStyle)
			}
			return cellStyle
		})
}

func signStyle(d decimal.Decimal) lipgloss.Style {
	switch {
	case d.IsNegative():
		return cellStyle.Inherit(lossStyle)
	case d.IsPositive():
		return cellStyle.Inherit(gainStyle)
	}
	return cellStyle
}

func cellsFor(r Row) []string {
	t := r.Trade
	pl := ""
	if t.IsClosed() || r.Priced {
		pl = Money(r.PnL)
	}
	rr := ""
	if !r.RR.IsZero() {
		rr = r.RR.StringFixed(2)
	}
	return []string{
		shortID(t.ID),
		t.Date.Format(journal.DateLayout),
		t.Stock,
		t.EntryPrice.StringFixed(2),
		level(t.Target1),
		level(t.Target2),
		level(t.Target3),
		level(t.StopLoss),
		fmt.Sprintf("%d", t.Quantity),
		string(t.Status),
		exit(t),
		r.Current,
		pl,
		rr,
		strings.Join(alert.Labels(r.Alerts), ", "),
	}
}

func level(d decimal.Decimal) string {
	if d.IsZero() {
		return "-"
	}
	return d.StringFixed(2)
}

func exit(t journal.TradeRecord) string {
	if !t.IsClosed() {
		return "-"
	}
	return t.ExitPrice.StringFixed(2)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Money formats an amount as -₹1,234.50: sign first, then the currency
// symbol, two decimal places and thousands separators.
func Money(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var grouped strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(c)
	}

	sign := ""
	if d.IsNegative() && !d.Round(2).IsZero() {
		sign = "-"
	}
	return sign + CurrencySymbol + grouped.String() + frac
}
