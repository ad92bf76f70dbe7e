// Package screener scans a candidate universe for short-term positive price
// momentum. Downside moves are never candidates: the radar screens for upside,
// alerts on held positions are the ledger's job.
package screener

import (
	"context"
	"log"
	"sort"

	"itisinvest/internal/calculator"
	"itisinvest/internal/collector"
	"itisinvest/internal/model"
)

// Screener ranks universe symbols by variation over a trailing window.
type Screener struct {
	Fetcher collector.Fetcher

	Sessions        int     // trailing window for the variation, >= 2
	MinVariationPct float64 // candidates must exceed this (and be positive)
	MinVolume       float64 // 0 disables the volume floor
	TopN            int
	MASessions      int // 0 disables the moving-average strength gate
}

// Screen scans the universe and returns candidates ordered descending by
// variation, truncated to TopN. Ties keep universe iteration order.
// Per-symbol fetch failures are skipped, never fatal.
func (s *Screener) Screen(ctx context.Context, universe []string) []model.ScreenerCandidate {
	var candidates []model.ScreenerCandidate

	for _, symbol := range universe {
		lookback := s.Sessions
		if s.MASessions > lookback {
			lookback = s.MASessions
		}
		obs, err := s.Fetcher.FetchCloses(ctx, symbol, lookback)
		if err != nil {
			log.Printf("[WARN] screener: %v, skipping", err)
			continue
		}

		window := obs.Closes
		if len(window) > s.Sessions {
			window = window[len(window)-s.Sessions:]
		}
		if len(window) < 2 {
			log.Printf("[WARN] screener: %s has %d closes, skipping", symbol, len(window))
			continue
		}
		now := window[len(window)-1]
		variation, err := calculator.VariationPct(window[0], now)
		if err != nil {
			log.Printf("[WARN] screener: %s: %v, skipping", symbol, err)
			continue
		}
		if variation <= s.MinVariationPct || variation <= 0 {
			continue
		}

		// Strength gate: only consider symbols trading above their moving
		// average when enough history is available.
		if s.MASessions > 0 {
			ma, err := calculator.CalculateSMA(obs.Closes, s.MASessions)
			if err != nil {
				log.Printf("[WARN] screener: %s MA%d: %v, skipping", symbol, s.MASessions, err)
				continue
			}
			if now <= ma {
				continue
			}
		}

		c := model.ScreenerCandidate{Symbol: symbol, VariationPct: variation, CurrentPrice: now}
		if quote, err := s.Fetcher.FetchQuote(ctx, symbol); err == nil {
			c.Name = quote.Name
			c.Volume = quote.Volume
			if s.MinVolume > 0 && quote.Volume < s.MinVolume {
				continue
			}
		}
		candidates = append(candidates, c)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].VariationPct > candidates[j].VariationPct
	})
	if s.TopN > 0 && len(candidates) > s.TopN {
		candidates = candidates[:s.TopN]
	}
	return candidates
}
