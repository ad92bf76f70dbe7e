package report

import (
	"strings"
	"testing"
	"time"

	"itisinvest/internal/model"
)

var testDay = time.Date(2025, 3, 14, 13, 0, 0, 0, time.UTC)

func TestCompose_EmptySectionsGetPlaceholders(t *testing.T) {
	msg := Compose("", "", testDay)
	if got := strings.Count(msg, NoData); got != 2 {
		t.Errorf("expected 2 placeholders, got %d:\n%s", got, msg)
	}
	if !strings.Contains(msg, "2025-03-14") {
		t.Error("preamble should carry the run date")
	}
}

func TestCompose_LedgerNotConfiguredPassedThrough(t *testing.T) {
	msg := Compose(LedgerNotConfigured, "radar ok", testDay)
	if !strings.Contains(msg, LedgerNotConfigured) {
		t.Error("not-configured placeholder missing")
	}
	if !strings.Contains(msg, "radar ok") {
		t.Error("screener section should still populate")
	}
}

func TestCompose_SectionOrder(t *testing.T) {
	msg := Compose("LEDGER_BLOCK", "SCREENER_BLOCK", testDay)
	li := strings.Index(msg, "LEDGER_BLOCK")
	si := strings.Index(msg, "SCREENER_BLOCK")
	if li < 0 || si < 0 || li > si {
		t.Errorf("ledger section must precede screener section:\n%s", msg)
	}
}

func TestFormatLedgerSection(t *testing.T) {
	entries := []LedgerEntry{
		{
			Perf: model.PerformanceRecord{
				Symbol: "AAPL", CurrentPrice: 165, VariationPct: 10, PositionValue: 1650,
			},
			Narrative: model.NarrativeResult{Text: "em alta", Source: "m1"},
		},
	}
	s := FormatLedgerSection(entries, 1650)
	for _, want := range []string{"*AAPL*", "+10.00%", "$1650.00", "em alta", "Valor total"} {
		if !strings.Contains(s, want) {
			t.Errorf("ledger section missing %q:\n%s", want, s)
		}
	}
}

func TestFormatLedgerSection_SignedVariation(t *testing.T) {
	entries := []LedgerEntry{
		{
			Perf:      model.PerformanceRecord{Symbol: "TSLA", VariationPct: -4.5, PositionValue: 200},
			Narrative: model.NarrativeResult{Text: "x", Source: "m1"},
		},
	}
	if s := FormatLedgerSection(entries, 200); !strings.Contains(s, "-4.50%") {
		t.Errorf("negative variation should be signed:\n%s", s)
	}
}

func TestFormatLedgerSection_Empty(t *testing.T) {
	if s := FormatLedgerSection(nil, 0); s != "" {
		t.Errorf("expected empty string for no entries, got %q", s)
	}
}

func TestFormatScreenerSection(t *testing.T) {
	entries := []ScreenerEntry{
		{
			Candidate: model.ScreenerCandidate{Symbol: "NVDA", VariationPct: 8, CurrentPrice: 120, Name: "NVIDIA Corp"},
			Narrative: model.NarrativeResult{Text: "momentum forte", Source: "m1"},
		},
		{
			Candidate: model.ScreenerCandidate{Symbol: "AMD", VariationPct: 5, CurrentPrice: 160},
			Narrative: model.NarrativeResult{Text: "a observar", Source: "m1"},
		},
	}
	s := FormatScreenerSection(entries)
	for _, want := range []string{"NVDA (NVIDIA Corp)", "+8.00%", "momentum forte", "*AMD*", "a observar"} {
		if !strings.Contains(s, want) {
			t.Errorf("screener section missing %q:\n%s", want, s)
		}
	}
	if strings.Index(s, "NVDA") > strings.Index(s, "AMD") {
		t.Error("screener entries must keep rank order")
	}
}
