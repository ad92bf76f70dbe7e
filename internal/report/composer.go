// Package report assembles the final Telegram message. Pure formatting, no
// I/O.
package report

import (
	"fmt"
	"strings"
	"time"

	"itisinvest/internal/calculator"
	"itisinvest/internal/model"
)

// Section placeholders.
const (
	LedgerNotConfigured = "_Carteira não configurada._"
	NoData              = "_Sem dados disponíveis._"
)

const separator = "──────────────"

// LedgerEntry pairs a position valuation with its narrative line.
type LedgerEntry struct {
	Perf      model.PerformanceRecord
	Narrative model.NarrativeResult
}

// ScreenerEntry pairs a screener candidate with its narrative line.
type ScreenerEntry struct {
	Candidate model.ScreenerCandidate
	Narrative model.NarrativeResult
}

// FormatLedgerSection formats one block per held position.
func FormatLedgerSection(entries []LedgerEntry, aggregate float64) string {
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "📈 *%s* %+.2f%% | valor: $%.2f\n",
			e.Perf.Symbol, e.Perf.VariationPct, calculator.Round2(e.Perf.PositionValue))
		fmt.Fprintf(&b, "🧠 %s\n\n", e.Narrative.Text)
	}
	fmt.Fprintf(&b, "💰 *Valor total:* $%.2f", calculator.Round2(aggregate))
	return b.String()
}

// FormatScreenerSection formats one block per momentum candidate, in rank
// order.
func FormatScreenerSection(entries []ScreenerEntry) string {
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	for i, e := range entries {
		name := e.Candidate.Symbol
		if e.Candidate.Name != "" {
			name = fmt.Sprintf("%s (%s)", e.Candidate.Symbol, e.Candidate.Name)
		}
		fmt.Fprintf(&b, "🚀 *%s* %+.2f%% | $%.2f\n", name, e.Candidate.VariationPct, e.Candidate.CurrentPrice)
		fmt.Fprintf(&b, "🧠 %s", e.Narrative.Text)
		if i < len(entries)-1 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

// Compose concatenates the preamble, ledger section, separator and screener
// section. Empty sections are replaced by the NoData placeholder so the
// message structure stays stable.
func Compose(ledgerSection, screenerSection string, now time.Time) string {
	if ledgerSection == "" {
		ledgerSection = NoData
	}
	if screenerSection == "" {
		screenerSection = NoData
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🤖 *itisinvest — Relatório* | %s\n\n", now.Format("2006-01-02"))
	b.WriteString("💼 *Carteira*\n")
	b.WriteString(ledgerSection)
	b.WriteString("\n")
	b.WriteString(separator)
	b.WriteString("\n🔭 *Radar*\n")
	b.WriteString(screenerSection)
	return b.String()
}
