package mdmath

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"pkt.systems/mdmath/texmath"
)

func TestLayoutTableWidths(t *testing.T) {
	t.Parallel()
	rows := [][]string{{"1", "22"}, {"333"}}
	g, err := LayoutTable([]string{"A", "BB"}, rows, nil)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if diff := cmp.Diff([]int{8, 8}, g.Widths); diff != "" {
		t.Fatalf("widths (-want +got):\n%s", diff)
	}
	got := g.FormatRow(rows[1])
	want := "333     " + "  " + strings.Repeat(" ", 8)
	if got != want {
		t.Fatalf("unexpected output\nwant: %q\n got: %q", want, got)
	}
	if g.Width() != 18 {
		t.Fatalf("unexpected width %d", g.Width())
	}
}

func TestLayoutTableWideCells(t *testing.T) {
	t.Parallel()
	g, err := LayoutTable([]string{"名前", "x"}, [][]string{{"a", "a much longer cell"}}, []Align{AlignRight, AlignCenter})
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if diff := cmp.Diff([]int{8, 18}, g.Widths); diff != "" {
		t.Fatalf("widths (-want +got):\n%s", diff)
	}
	got := g.FormatRow([]string{"名前", "mid"})
	want := "    名前" + "  " + "       mid        "
	if got != want {
		t.Fatalf("unexpected output\nwant: %q\n got: %q", want, got)
	}
}

func TestLayoutTableIgnoresANSI(t *testing.T) {
	t.Parallel()
	styled := "\x1b[1mbold text here\x1b[0m"
	g, err := LayoutTable([]string{styled}, nil, nil)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if g.Widths[0] != 14 {
		t.Fatalf("expected ANSI-free width 14, got %d", g.Widths[0])
	}
}

func TestLayoutTableNoColumns(t *testing.T) {
	t.Parallel()
	_, err := LayoutTable([]string{"", " "}, [][]string{{""}}, nil)
	if !errors.Is(err, ErrNoColumns) {
		t.Fatalf("expected ErrNoColumns, got %v", err)
	}
}

func TestNewGridPanicsOnNegativeFloor(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	NewGrid(-1, []string{"a"})
}

func TestGridRule(t *testing.T) {
	t.Parallel()
	g := NewGrid(2, []string{"abc", "d"})
	if got := g.Rule("─"); got != "───  ──" {
		t.Fatalf("unexpected rule %q", got)
	}
}

func TestLayoutMatrix(t *testing.T) {
	t.Parallel()
	rows := [][]string{{"1", "20"}, {"300", "4"}}
	tests := []struct {
		kind texmath.MatrixKind
		want []string
	}{
		{texmath.PMatrix, []string{"(1    20)", "(300  4 )"}},
		{texmath.BMatrix, []string{"[1    20]", "[300  4 ]"}},
		{texmath.NormMatrix, []string{"‖1    20‖", "‖300  4 ‖"}},
		{texmath.Matrix, []string{"  1    20  ", "  300  4   "}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(string(tc.kind), func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tc.want, LayoutMatrix(tc.kind, rows)); diff != "" {
				t.Fatalf("matrix (-want +got):\n%s", diff)
			}
		})
	}
}
