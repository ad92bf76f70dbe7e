// Package runner executes one full evaluation: ledger valuation, momentum
// scan, narrative generation, report delivery and history append.
package runner

import (
	"context"
	"errors"
	"log"
	"time"

	"itisinvest/internal/calculator"
	"itisinvest/internal/collector"
	"itisinvest/internal/history"
	"itisinvest/internal/ledger"
	"itisinvest/internal/model"
	"itisinvest/internal/narrative"
	"itisinvest/internal/report"
	"itisinvest/internal/screener"
)

// Explainer produces a narrative for a fact set. Satisfied by
// *narrative.Engine.
type Explainer interface {
	Explain(ctx context.Context, facts narrative.Facts) model.NarrativeResult
}

// Sender delivers the composed report. Satisfied by
// *notifier.TelegramNotifier.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// Runner wires the whole pipeline for one sequential run.
type Runner struct {
	Fetcher   collector.Fetcher
	Screener  *screener.Screener
	Narrative Explainer
	Notifier  Sender
	History   *history.Store

	LedgerFile    string
	Universe      []string
	HeadlineCount int
}

// Run processes all ledger positions in order, appends the valuation
// snapshot, then scans the universe, and finally delivers one report.
// Per-symbol and per-backend failures degrade sections, they never abort the
// run; only report delivery ends it, and even that is log-only.
func (r *Runner) Run(ctx context.Context) {
	start := time.Now()
	log.Println("[INFO] run started")

	ledgerSection := r.ledgerPass(ctx)
	screenerSection := r.screenerPass(ctx)

	msg := report.Compose(ledgerSection, screenerSection, time.Now())
	if r.Notifier != nil {
		if err := r.Notifier.Send(ctx, msg); err != nil {
			log.Printf("[ERROR] send report: %v", err)
		}
	}
	log.Printf("[INFO] run finished in %s", time.Since(start).Round(time.Millisecond))
}

// ledgerPass values every held position against its cost basis and appends
// the aggregate to the history log.
func (r *Runner) ledgerPass(ctx context.Context) string {
	positions, err := ledger.Load(r.LedgerFile)
	if err != nil {
		if errors.Is(err, ledger.ErrNotConfigured) {
			log.Printf("[WARN] ledger: %v", err)
			return report.LedgerNotConfigured
		}
		log.Printf("[ERROR] load ledger: %v", err)
		return report.LedgerNotConfigured
	}

	var entries []report.LedgerEntry
	var aggregate float64
	for _, p := range positions {
		obs, err := r.Fetcher.FetchCloses(ctx, p.Symbol, 2)
		if err != nil {
			log.Printf("[WARN] ledger: %v, skipping", err)
			continue
		}
		price := obs.Closes[len(obs.Closes)-1]
		variation, err := calculator.VariationPct(p.CostBasis, price)
		if err != nil {
			log.Printf("[WARN] ledger: %s: %v, skipping", p.Symbol, err)
			continue
		}
		perf := model.PerformanceRecord{
			Symbol:        p.Symbol,
			CurrentPrice:  price,
			VariationPct:  variation,
			PositionValue: calculator.PositionValue(price, p.Quantity),
		}
		aggregate += perf.PositionValue

		result := r.Narrative.Explain(ctx, narrative.Facts{
			Symbol:       p.Symbol,
			VariationPct: variation,
			Price:        price,
		})
		entries = append(entries, report.LedgerEntry{Perf: perf, Narrative: result})
	}

	// One snapshot per run, written once the ledger pass completes. A day with
	// no valued position appends nothing rather than a zero row.
	if r.History != nil && len(entries) > 0 {
		if err := r.History.Append(time.Now(), aggregate); err != nil {
			log.Printf("[ERROR] history append: %v", err)
		}
	}

	return report.FormatLedgerSection(entries, aggregate)
}

// screenerPass scans the universe and narrates the retained candidates in
// rank order.
func (r *Runner) screenerPass(ctx context.Context) string {
	candidates := r.Screener.Screen(ctx, r.Universe)

	var entries []report.ScreenerEntry
	for _, c := range candidates {
		facts := narrative.Facts{
			Symbol:       c.Symbol,
			VariationPct: c.VariationPct,
			Price:        c.CurrentPrice,
		}
		if r.HeadlineCount > 0 {
			titles, err := r.Fetcher.FetchHeadlines(ctx, c.Symbol, r.HeadlineCount)
			if err != nil {
				log.Printf("[WARN] headlines for %s: %v", c.Symbol, err)
			}
			facts.Context = titles
		}
		result := r.Narrative.Explain(ctx, facts)
		entries = append(entries, report.ScreenerEntry{Candidate: c, Narrative: result})
	}
	return report.FormatScreenerSection(entries)
}
