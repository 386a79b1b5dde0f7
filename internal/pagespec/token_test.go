package pagespec

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		raw  string
		want Token
	}{
		{"=", Token{Kind: KindMixOp, Raw: "=", Mode: Interleave}},
		{"+", Token{Kind: KindMixOp, Raw: "+", Mode: Append}},
		{"R0", Token{Kind: KindRotation, Raw: "R0"}},
		{"R90", Token{Kind: KindRotation, Raw: "R90", Degrees: 90}},
		{"R-90", Token{Kind: KindRotation, Raw: "R-90", Degrees: -90}},
		{"R+180", Token{Kind: KindRotation, Raw: "R+180", Degrees: 180}},
		{"7", Token{Kind: KindSinglePage, Raw: "7", Page: 7}},
		{"2-5", Token{Kind: KindPageRange, Raw: "2-5", Terms: []Term{
			{Start: 2, End: 5, HasStart: true, HasEnd: true},
		}}},
		{"7-", Token{Kind: KindPageRange, Raw: "7-", Terms: []Term{
			{Start: 7, HasStart: true},
		}}},
		{"-11", Token{Kind: KindPageRange, Raw: "-11", Terms: []Term{
			{End: 11, HasEnd: true},
		}}},
		{"-", Token{Kind: KindPageRange, Raw: "-", Terms: []Term{{}}}},
		{"1,3-5,9-", Token{Kind: KindPageRange, Raw: "1,3-5,9-", Terms: []Term{
			{Single: true, Start: 1, End: 1, HasStart: true, HasEnd: true},
			{Start: 3, End: 5, HasStart: true, HasEnd: true},
			{Start: 9, HasStart: true},
		}}},
		{"99999999999999999999", Token{Kind: KindSinglePage, Raw: "99999999999999999999", Page: math.MaxInt}},
		{"in.pdf", Token{Kind: KindOther, Raw: "in.pdf"}},
		{"1,,3", Token{Kind: KindOther, Raw: "1,,3"}},
		{"1,", Token{Kind: KindOther, Raw: "1,"}},
		{"1-2-3", Token{Kind: KindOther, Raw: "1-2-3"}},
		{"--", Token{Kind: KindOther, Raw: "--"}},
		{"r90", Token{Kind: KindOther, Raw: "r90"}},
		{"R90x", Token{Kind: KindOther, Raw: "R90x"}},
		{"==", Token{Kind: KindOther, Raw: "=="}},
		{"", Token{Kind: KindOther, Raw: ""}},
	}
	for _, tc := range tests {
		got, err := Classify(tc.raw)
		if err != nil {
			t.Errorf("Classify(%q): unexpected error: %v", tc.raw, err)
			continue
		}
		if d := cmp.Diff(tc.want, got); d != "" {
			t.Errorf("Classify(%q) mismatch (-want +got):\n%s", tc.raw, d)
		}
	}
}

func TestClassifyRotationErrors(t *testing.T) {
	for _, raw := range []string{"R", "R-", "R+", "R99999999999999999999"} {
		_, err := Classify(raw)
		if !errors.Is(err, ErrInvalidRotation) {
			t.Errorf("Classify(%q): got %v, want ErrInvalidRotation", raw, err)
		}
	}
}

func TestNormalizeRotation(t *testing.T) {
	tests := []struct {
		deg  int
		want Rotation
	}{
		{0, 0}, {90, 90}, {180, 180}, {270, 270},
		{-90, 270}, {-180, 180}, {-270, 90}, {360, 0}, {450, 90}, {-720, 0},
	}
	for _, tc := range tests {
		got, err := NormalizeRotation(tc.deg)
		if err != nil {
			t.Errorf("NormalizeRotation(%d): %v", tc.deg, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NormalizeRotation(%d) = %d, want %d", tc.deg, got, tc.want)
		}
	}

	for _, deg := range []int{45, -30, 91, 1} {
		if _, err := NormalizeRotation(deg); !errors.Is(err, ErrInvalidRotation) {
			t.Errorf("NormalizeRotation(%d): got %v, want ErrInvalidRotation", deg, err)
		}
	}
}
