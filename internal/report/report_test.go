package report_test

import (
	"testing"

	"onebrc/internal/fixed"
	"onebrc/internal/report"
	"onebrc/internal/stats"
)

func seed(t *testing.T, tbl *stats.Table, key uint64, name string, vs ...fixed.Value) {
	t.Helper()
	for _, v := range vs {
		if err := tbl.Upsert(key, []byte(name), v); err != nil {
			t.Fatalf("Upsert(%q): %v", name, err)
		}
	}
}

func TestFormatEmpty(t *testing.T) {
	if got := report.Format(stats.NewTable()); got != "{}" {
		t.Errorf("Format = %q, want {}", got)
	}
}

func TestFormatSingle(t *testing.T) {
	tbl := stats.NewTable()
	seed(t, tbl, 1, "B", -25)

	if got, want := report.Format(tbl), "{B=-2.5/-2.5/-2.5}"; got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestFormatScenario(t *testing.T) {
	tbl := stats.NewTable()
	seed(t, tbl, 1, "A", 10, 30)
	seed(t, tbl, 2, "B", -25)

	if got, want := report.Format(tbl), "{A=1.0/2.0/3.0, B=-2.5/-2.5/-2.5}"; got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestFormatSortsByByteValue(t *testing.T) {
	tbl := stats.NewTable()
	// Keys chosen so table iteration order differs from name order.
	seed(t, tbl, 900, "Zagreb", 10)
	seed(t, tbl, 5, "Ürümqi", 10) // multibyte first rune sorts after ASCII
	seed(t, tbl, 300, "Aarhus", 10)

	want := "{Aarhus=1.0/1.0/1.0, Zagreb=1.0/1.0/1.0, Ürümqi=1.0/1.0/1.0}"
	if got := report.Format(tbl); got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestFormatMeanRounding(t *testing.T) {
	tbl := stats.NewTable()
	seed(t, tbl, 7, "A", 10, 11) // mean 1.05 rounds toward +inf
	if got, want := report.Format(tbl), "{A=1.0/1.1/1.1}"; got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}
