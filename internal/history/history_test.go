package history

import (
	"os"
	"path/filepath"
	"testing"

	"form4watch/internal/types"
)

func testManager(t *testing.T, dir string) *Manager {
	t.Helper()
	m, err := newManagerAt(filepath.Join(dir, "history.json"), "UTC")
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}
	return m
}

func TestFilterNewMatchesFresh(t *testing.T) {
	m := testManager(t, t.TempDir())

	filing := types.Filing{Company: "ACME INDUSTRIES INC", AccessionNo: "0000123456-26-000042"}

	got := m.FilterNewMatches(filing, []string{"acme", "dividend"})
	if len(got) != 2 {
		t.Errorf("fresh history should pass all keywords, got %v", got)
	}

	if got := m.FilterNewMatches(filing, nil); got != nil {
		t.Errorf("no keywords should yield nil, got %v", got)
	}
}

func TestRecordMatchesSuppressesRepeats(t *testing.T) {
	m := testManager(t, t.TempDir())

	filing := types.Filing{Company: "ACME INDUSTRIES INC", AccessionNo: "0000123456-26-000042"}

	m.RecordMatches([]types.Match{
		{Filing: filing, KeywordsFound: []string{"acme"}},
	})

	if got := m.FilterNewMatches(filing, []string{"acme"}); got != nil {
		t.Errorf("recorded keyword should be suppressed, got %v", got)
	}

	got := m.FilterNewMatches(filing, []string{"acme", "dividend"})
	if len(got) != 1 || got[0] != "dividend" {
		t.Errorf("only the new keyword should pass, got %v", got)
	}

	// A different filing is unaffected.
	other := types.Filing{Company: "Widgets Corp", AccessionNo: "0000987654-26-000007"}
	if got := m.FilterNewMatches(other, []string{"acme"}); len(got) != 1 {
		t.Errorf("other filing should not be suppressed, got %v", got)
	}
}

func TestHistoryPersistsAcrossManagers(t *testing.T) {
	dir := t.TempDir()

	filing := types.Filing{Company: "ACME INDUSTRIES INC", AccessionNo: "0000123456-26-000042"}

	first := testManager(t, dir)
	first.RecordMatches([]types.Match{
		{Filing: filing, KeywordsFound: []string{"acme"}},
	})

	if _, err := os.Stat(first.HistoryFilePath()); err != nil {
		t.Fatalf("history file was not written: %v", err)
	}

	second := testManager(t, dir)
	if got := second.FilterNewMatches(filing, []string{"acme"}); got != nil {
		t.Errorf("reloaded history should suppress recorded keyword, got %v", got)
	}
}

func TestMatchKeyFallsBackWithoutAccessionNo(t *testing.T) {
	withAcc := types.Filing{Company: "ACME", AccessionNo: "0000123456-26-000042"}
	if matchKey(withAcc) != "0000123456-26-000042" {
		t.Errorf("matchKey = %q", matchKey(withAcc))
	}

	withoutAcc := types.Filing{Company: "ACME", Updated: "2026-08-21T11:58:03-04:00"}
	if matchKey(withoutAcc) != "ACME|2026-08-21T11:58:03-04:00" {
		t.Errorf("matchKey = %q", matchKey(withoutAcc))
	}
}

func TestInvalidTimezone(t *testing.T) {
	if _, err := newManagerAt(filepath.Join(t.TempDir(), "history.json"), "Not/AZone"); err == nil {
		t.Fatal("expected an error for an invalid time zone")
	}
}
