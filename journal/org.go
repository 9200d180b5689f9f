package journal

import (
	"fmt"
	"strings"
)

// FormatTradeOrg renders a TradeRecord as an Org-mode block suitable for
// pasting into a journal. Structured facts go in the PROPERTIES drawer,
// free-form notes under their own heading.
func FormatTradeOrg(t TradeRecord) string {
	heading := fmt.Sprintf("** Trade: %s %s (%s)", t.Stock, t.Status, shortID(t.ID))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":ID: %s\n", t.ID))
	b.WriteString(fmt.Sprintf(":DATE: %s\n", t.Date.Format(DateLayout)))
	b.WriteString(fmt.Sprintf(":STOCK: %s\n", t.Stock))
	b.WriteString(fmt.Sprintf(":QUANTITY: %d\n", t.Quantity))
	b.WriteString(fmt.Sprintf(":ENTRY_PRICE: %s\n", t.EntryPrice.StringFixed(2)))
	for _, p := range []struct {
		key string
		val string
	}{
		{"TARGET_1", optional(t.Target1)},
		{"TARGET_2", optional(t.Target2)},
		{"TARGET_3", optional(t.Target3)},
		{"STOP_LOSS", optional(t.StopLoss)},
	} {
		if p.val != "" {
			b.WriteString(fmt.Sprintf(":%s: %s\n", p.key, p.val))
		}
	}
	b.WriteString(fmt.Sprintf(":STATUS: %s\n", t.Status))
	if t.IsClosed() {
		b.WriteString(fmt.Sprintf(":EXIT_PRICE: %s\n", t.ExitPrice.StringFixed(2)))
		pl := t.ExitPrice.Sub(t.EntryPrice).Mul(t.Qty())
		b.WriteString(fmt.Sprintf(":REALIZED_PL: %s\n", pl.StringFixed(2)))
	}
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Notes\n")
	if notes := strings.TrimSpace(t.Notes); notes != "" {
		for _, line := range strings.Split(notes, "\n") {
			b.WriteString("- " + strings.TrimSpace(line) + "\n")
		}
	} else {
		b.WriteString("- \n")
	}

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []TradeRecord) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
