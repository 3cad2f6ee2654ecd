package ansitok

import "testing"

func TestTruncateVisibleColumnsNoTruncationRoundTrips(t *testing.T) {
	s := "\x1b[1mhi\x1b[0m"
	if got := TruncateVisibleColumns(s, 10); got != s {
		t.Fatalf("got %q, want %q", got, s)
	}
}

func TestTruncateVisibleColumnsCutsAndClosesStyle(t *testing.T) {
	s := "\x1b[1mhello world\x1b[0m"
	got := TruncateVisibleColumns(s, 5)
	want := "\x1b[1mhello\x1b[0m"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTruncateVisibleColumnsPlainText(t *testing.T) {
	if got := TruncateVisibleColumns("hello world", 5); got != "hello" {
		t.Fatalf("got %q", got)
	}
}

func TestTruncateVisibleColumnsAllowsWideClusterPastBoundary(t *testing.T) {
	// "Test世" has width 6; truncating to 5 columns has only one column of
	// room left for the width-2 cluster, but the unguarded split still keeps
	// it whole rather than dropping it, so the whole string survives.
	got := TruncateVisibleColumns("Test世", 5)
	if got != "Test世" {
		t.Fatalf("got %q, want %q", got, "Test世")
	}
}
