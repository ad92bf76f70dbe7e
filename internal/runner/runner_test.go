package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"itisinvest/internal/collector"
	"itisinvest/internal/history"
	"itisinvest/internal/model"
	"itisinvest/internal/narrative"
	"itisinvest/internal/report"
	"itisinvest/internal/screener"
)

type stubExplainer struct {
	facts []narrative.Facts
}

func (s *stubExplainer) Explain(_ context.Context, f narrative.Facts) model.NarrativeResult {
	s.facts = append(s.facts, f)
	return model.NarrativeResult{Text: "nota sobre " + f.Symbol, Source: "stub-model"}
}

type captureSender struct {
	messages []string
	err      error
}

func (c *captureSender) Send(_ context.Context, text string) error {
	if c.err != nil {
		return c.err
	}
	c.messages = append(c.messages, text)
	return nil
}

func writeLedgerFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "carteira.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write ledger: %v", err)
	}
	return path
}

func newTestRunner(t *testing.T, mock *collector.MockFetcher, ledgerPath string) (*Runner, *stubExplainer, *captureSender, string) {
	t.Helper()
	explainer := &stubExplainer{}
	sender := &captureSender{}
	historyPath := filepath.Join(t.TempDir(), "historico.csv")
	r := &Runner{
		Fetcher: mock,
		Screener: &screener.Screener{
			Fetcher:         mock,
			Sessions:        5,
			MinVariationPct: 3.0,
			TopN:            5,
		},
		Narrative:     explainer,
		Notifier:      sender,
		History:       history.NewStore(historyPath),
		LedgerFile:    ledgerPath,
		Universe:      []string{"AAA", "BBB", "CCC"},
		HeadlineCount: 3,
	}
	return r, explainer, sender, historyPath
}

func TestRun_FullPipeline(t *testing.T) {
	ledgerPath := writeLedgerFile(t, "ticker,preco_compra,quantidade\nAAPL,150,10\n")
	mock := &collector.MockFetcher{
		Closes: map[string][]float64{
			"AAPL": {160, 165},
			"AAA":  {100, 105},
			"BBB":  {100, 98},
			"CCC":  {100, 108},
		},
		Headlines: map[string][]string{
			"CCC": {"CCC rallies on earnings"},
		},
	}
	r, explainer, sender, historyPath := newTestRunner(t, mock, ledgerPath)

	r.Run(context.Background())

	if len(sender.messages) != 1 {
		t.Fatalf("expected one delivered report, got %d", len(sender.messages))
	}
	msg := sender.messages[0]

	// Ledger: variation versus cost basis, value = price × quantity.
	for _, want := range []string{"*AAPL*", "+10.00%", "$1650.00", "nota sobre AAPL"} {
		if !strings.Contains(msg, want) {
			t.Errorf("report missing %q:\n%s", want, msg)
		}
	}

	// Screener: C (8%) then A (5%), B excluded.
	ci := strings.Index(msg, "*CCC*")
	ai := strings.Index(msg, "*AAA*")
	if ci < 0 || ai < 0 || ci > ai {
		t.Errorf("expected CCC before AAA in screener section:\n%s", msg)
	}
	if strings.Contains(msg, "*BBB*") {
		t.Errorf("BBB below threshold must not appear:\n%s", msg)
	}

	// Ordering is deterministic: ledger facts first, then screener rank order.
	var symbols []string
	for _, f := range explainer.facts {
		symbols = append(symbols, f.Symbol)
	}
	if got := fmt.Sprint(symbols); got != "[AAPL CCC AAA]" {
		t.Errorf("expected narrative order [AAPL CCC AAA], got %s", got)
	}

	// Headlines flow into the screener facts.
	for _, f := range explainer.facts {
		if f.Symbol == "CCC" && len(f.Context) == 0 {
			t.Error("expected headlines in CCC facts")
		}
	}

	// Exactly one snapshot row after the ledger pass.
	data, err := os.ReadFile(historyPath)
	if err != nil {
		t.Fatalf("history file not written: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 snapshot row, got %d lines", len(lines))
	}
	if !strings.HasSuffix(lines[1], ",1650.00") {
		t.Errorf("unexpected snapshot row: %q", lines[1])
	}
}

func TestRun_LedgerMissing(t *testing.T) {
	mock := &collector.MockFetcher{
		Closes: map[string][]float64{"AAA": {100, 110}},
	}
	r, _, sender, historyPath := newTestRunner(t, mock, filepath.Join(t.TempDir(), "missing.csv"))
	r.Universe = []string{"AAA"}

	r.Run(context.Background())

	if len(sender.messages) != 1 {
		t.Fatalf("expected one delivered report, got %d", len(sender.messages))
	}
	msg := sender.messages[0]
	if !strings.Contains(msg, report.LedgerNotConfigured) {
		t.Errorf("expected not-configured placeholder:\n%s", msg)
	}
	if !strings.Contains(msg, "*AAA*") {
		t.Errorf("screener section should still populate:\n%s", msg)
	}
	if _, err := os.Stat(historyPath); !os.IsNotExist(err) {
		t.Error("no snapshot should be appended without a ledger pass")
	}
}

func TestRun_AllFetchesFail(t *testing.T) {
	ledgerPath := writeLedgerFile(t, "ticker,preco_compra\nAAPL,150\n")
	mock := &collector.MockFetcher{
		Failures: map[string]collector.FailReason{
			"AAPL": collector.ReasonNetwork,
			"AAA":  collector.ReasonNetwork,
		},
	}
	r, _, sender, historyPath := newTestRunner(t, mock, ledgerPath)
	r.Universe = []string{"AAA"}

	r.Run(context.Background())

	if len(sender.messages) != 1 {
		t.Fatalf("run must still deliver a report, got %d messages", len(sender.messages))
	}
	if got := strings.Count(sender.messages[0], report.NoData); got != 2 {
		t.Errorf("expected both sections to show the no-data placeholder, got %d:\n%s", got, sender.messages[0])
	}
	if _, err := os.Stat(historyPath); !os.IsNotExist(err) {
		t.Error("no snapshot should be appended when nothing was valued")
	}
}

func TestRun_DeliveryFailureDoesNotPanic(t *testing.T) {
	ledgerPath := writeLedgerFile(t, "ticker,preco_compra\nAAPL,150\n")
	mock := &collector.MockFetcher{
		Closes: map[string][]float64{"AAPL": {160, 165}},
	}
	r, _, sender, _ := newTestRunner(t, mock, ledgerPath)
	sender.err = fmt.Errorf("telegram unavailable")
	r.Universe = nil

	// Must complete: delivery failures are log-only.
	r.Run(context.Background())
}
