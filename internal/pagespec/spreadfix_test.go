package pagespec

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSpreadFixTokens(t *testing.T) {
	tests := []struct {
		pageCount int
		want      string
	}{
		{4, "R90 3 R-90 1 R90 2 R-90 4"},
		{8, "R90 7 R-90 5 R90 3 R-90 1 R90 2 R-90 4 R90 6 R-90 8"},
		{12, "R90 11 R-90 9 R90 7 R-90 5 R90 3 R-90 1 R90 2 R-90 4 R90 6 R-90 8 R90 10 R-90 12"},
	}
	for _, tc := range tests {
		got, err := SpreadFix(tc.pageCount)
		if err != nil {
			t.Fatalf("SpreadFix(%d): %v", tc.pageCount, err)
		}
		if d := cmp.Diff(strings.Fields(tc.want), got); d != "" {
			t.Errorf("SpreadFix(%d) mismatch (-want +got):\n%s", tc.pageCount, d)
		}
	}
}

func TestSpreadFixParsesToRequests(t *testing.T) {
	tokens, err := SpreadFix(8)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ParseSection(0, tokens, 8)
	if err != nil {
		t.Fatal(err)
	}

	want := []PageRequest{
		{Index: 6, Rotation: 90},
		{Index: 4, Rotation: 270},
		{Index: 2, Rotation: 90},
		{Index: 0, Rotation: 270},
		{Index: 1, Rotation: 90},
		{Index: 3, Rotation: 270},
		{Index: 5, Rotation: 90},
		{Index: 7, Rotation: 270},
	}
	if d := cmp.Diff(want, got.Requests); d != "" {
		t.Errorf("requests mismatch (-want +got):\n%s", d)
	}
}

func TestSpreadFixUsesEveryPageOnce(t *testing.T) {
	for n := 4; n <= 64; n += 4 {
		tokens, err := SpreadFix(n)
		if err != nil {
			t.Fatal(err)
		}
		sec, err := ParseSection(0, tokens, n)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		seen := make(map[int]bool)
		for _, r := range sec.Requests {
			if seen[r.Index] {
				t.Fatalf("n=%d: page %d requested twice", n, r.Index+1)
			}
			seen[r.Index] = true
		}
		if len(seen) != n {
			t.Fatalf("n=%d: got %d distinct pages", n, len(seen))
		}
	}
}

func TestSpreadFixInvalidPageCount(t *testing.T) {
	for _, n := range []int{0, -4, 1, 2, 3, 5, 6, 10, 14} {
		_, err := SpreadFix(n)
		if !errors.Is(err, ErrInvalidSpreadPageCount) {
			t.Errorf("SpreadFix(%d): got %v, want ErrInvalidSpreadPageCount", n, err)
		}
	}
}
