package engine

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/riboflow/go-riboflow/petri"
	"github.com/riboflow/go-riboflow/translate"
)

func pipeline(t *testing.T, marking, ribosomes int) *petri.Network {
	t.Helper()
	chains := []translate.Chain{{Name: "chainA", Sequence: "MALWM", Product: "preinsulin"}}
	net, err := translate.Compile(chains, translate.Params{InitialChainsMarking: marking})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if ribosomes >= 0 {
		net, err = translate.ExtendWithRibosomes(net, chains, translate.RibosomeParams{InitialRibosomes: ribosomes})
		if err != nil {
			t.Fatalf("ExtendWithRibosomes failed: %v", err)
		}
	}
	return net
}

func TestEnabledAndFire(t *testing.T) {
	net := petri.Build().
		Place("in", 1).
		Place("out", 0).
		Transition("move").
		Flow("in", "move", "out", 1).
		Done()

	e := New(net, 1)
	enabled := e.Enabled()
	if len(enabled) != 1 || enabled[0] != "move" {
		t.Fatalf("Expected [move] enabled, got %v", enabled)
	}

	if err := e.Fire("move"); err != nil {
		t.Fatalf("Fire failed: %v", err)
	}
	if e.Tokens("in") != 0 || e.Tokens("out") != 1 {
		t.Errorf("Expected in=0 out=1, got in=%d out=%d", e.Tokens("in"), e.Tokens("out"))
	}

	if err := e.Fire("move"); err == nil {
		t.Error("Firing a disabled transition should fail")
	}
	if e.Tokens("out") != 1 {
		t.Error("Failed fire must not change the marking")
	}
}

func TestRunWithoutRibosomesCompletes(t *testing.T) {
	// 2 copies of a 5-step chain: every firing makes progress, so the
	// run drains in exactly 2*5 steps no matter the random order.
	net := pipeline(t, 2, -1)
	h := New(net, 42).Run(RunOptions{MaxSteps: 1000})

	if h.Steps() != 10 {
		t.Errorf("Expected exactly 10 steps, got %d", h.Steps())
	}
	final := h.Final()
	if final["p_preinsulin"] != 2 {
		t.Errorf("Expected 2 product tokens, got %d", final["p_preinsulin"])
	}
	for i := 0; i < 5; i++ {
		label := translate.PositionPlace("chainA", i)
		if final[label] != 0 {
			t.Errorf("Expected %s drained, got %d", label, final[label])
		}
	}
}

func TestRunWithScarceRibosomes(t *testing.T) {
	net := pipeline(t, 2, 1)
	h := New(net, 7).Run(RunOptions{MaxSteps: 1000})

	final := h.Final()
	if final["p_preinsulin"] != 2 {
		t.Errorf("Expected 2 product tokens, got %d", final["p_preinsulin"])
	}
	// The single ribosome is returned once the last copy finishes.
	if final["p_free_ribosomes"] != 1 {
		t.Errorf("Expected the ribosome back in the pool, got %d", final["p_free_ribosomes"])
	}
	if h.Steps() != 10 {
		t.Errorf("Expected exactly 10 steps, got %d", h.Steps())
	}

	// With one ribosome, at most one copy is ever in flight: the sum
	// of tokens on intermediate positions never exceeds 1.
	for _, row := range h.Rows {
		inFlight := 0
		for i := 1; i < 5; i++ {
			inFlight += row[h.Column(translate.PositionPlace("chainA", i))]
		}
		if inFlight > 1 {
			t.Fatalf("More than one copy in flight with a single ribosome: %v", row)
		}
	}
}

func TestRunStopsAtProductGoal(t *testing.T) {
	net := pipeline(t, 10, -1)
	h := New(net, 3).Run(RunOptions{MaxSteps: 10000, StopPlace: "p_preinsulin", StopCount: 2})

	if got := h.Final()["p_preinsulin"]; got != 2 {
		t.Errorf("Expected run to stop at 2 product tokens, got %d", got)
	}
}

func TestRunStopsWhenDead(t *testing.T) {
	net := petri.Build().
		Place("in", 1).
		Place("out", 0).
		Transition("move").
		Flow("in", "move", "out", 1).
		Done()

	h := New(net, 1).Run(RunOptions{MaxSteps: 100})
	if h.Steps() != 1 {
		t.Errorf("Expected 1 step before the dead marking, got %d", h.Steps())
	}
}

func TestRunIsDeterministicPerSeed(t *testing.T) {
	a := New(pipeline(t, 3, 2), 99).Run(RunOptions{MaxSteps: 50})
	b := New(pipeline(t, 3, 2), 99).Run(RunOptions{MaxSteps: 50})

	if len(a.Rows) != len(b.Rows) {
		t.Fatalf("Runs with the same seed diverged: %d vs %d rows", len(a.Rows), len(b.Rows))
	}
	for i := range a.Rows {
		for j := range a.Rows[i] {
			if a.Rows[i][j] != b.Rows[i][j] {
				t.Fatalf("Runs with the same seed diverged at row %d", i)
			}
		}
	}
}

func TestHistoryColumnsSorted(t *testing.T) {
	net := pipeline(t, 1, 1)
	h := New(net, 1).Run(RunOptions{MaxSteps: 1})

	for i := 1; i < len(h.Columns); i++ {
		if h.Columns[i-1] >= h.Columns[i] {
			t.Fatalf("Columns not sorted: %v", h.Columns)
		}
	}
}

func TestHistoryMax(t *testing.T) {
	net := pipeline(t, 2, -1)
	h := New(net, 42).Run(RunOptions{MaxSteps: 1000})

	if max, ok := h.Max("p_preinsulin"); !ok || max != 2 {
		t.Errorf("Expected max 2, got %d (ok=%v)", max, ok)
	}
	if max, ok := h.Max("p_chainA_0"); !ok || max != 2 {
		t.Errorf("Expected max 2 for the seed place, got %d (ok=%v)", max, ok)
	}
	if _, ok := h.Max("p_ghost"); ok {
		t.Error("Expected ok=false for an unknown column")
	}
}

func TestHistoryWriteCSV(t *testing.T) {
	net := petri.Build().
		Place("a", 1).
		Place("b", 0).
		Transition("t").
		Flow("a", "t", "b", 1).
		Done()

	h := New(net, 1).Run(RunOptions{MaxSteps: 10})

	var buf bytes.Buffer
	if err := h.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "a,b" {
		t.Errorf("Expected header 'a,b', got %q", lines[0])
	}
	if lines[1] != "1,0" || lines[2] != "0,1" {
		t.Errorf("Unexpected rows: %v", lines[1:])
	}
}

func TestHistoryReadCSV(t *testing.T) {
	net := pipeline(t, 2, 1)
	h := New(net, 7).Run(RunOptions{MaxSteps: 1000})

	var buf bytes.Buffer
	if err := h.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	got, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if !reflect.DeepEqual(got.Columns, h.Columns) {
		t.Errorf("Expected columns %v, got %v", h.Columns, got.Columns)
	}
	if !reflect.DeepEqual(got.Rows, h.Rows) {
		t.Errorf("Rows did not survive the round trip")
	}

	if _, err := ReadCSV(strings.NewReader("a,b\n1,x\n")); err == nil {
		t.Error("Expected an error for a non-integer cell")
	}
}
