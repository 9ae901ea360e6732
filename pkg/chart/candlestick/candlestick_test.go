package candlestick

import (
	"math"
	"testing"
)

const tol = 1e-9

func TestFlatBodyHasZeroHeight(t *testing.T) {
	l := Build([]Record{{Date: "d1", Open: 10, High: 12, Low: 8, Close: 10}}, Options{})
	b := l.Bars[0]
	if b.Body.Height != 0 {
		t.Errorf("Body.Height = %v, want 0", b.Body.Height)
	}
	if !b.Up || b.Color != DefaultUpColor {
		t.Errorf("open==close should count as up, got Up=%v Color=%s", b.Up, b.Color)
	}
}

func TestPriceBoundsPadded(t *testing.T) {
	recs := []Record{
		{Open: 10, High: 20, Low: 10, Close: 15},
		{Open: 15, High: 30, Low: 12, Close: 12},
	}
	l := Build(recs, Options{})
	if math.Abs(l.MinPrice-9) > tol || math.Abs(l.MaxPrice-31) > tol {
		t.Errorf("bounds = [%v, %v], want [9, 31]", l.MinPrice, l.MaxPrice)
	}
	// The highest high sits 5% of the range below the top.
	top := l.Bars[1].Wick.Top
	if want := 100 * 1 / 22.0; math.Abs(top-want) > tol {
		t.Errorf("Wick.Top = %v, want %v", top, want)
	}
}

func TestZeroRangeStaysFinite(t *testing.T) {
	l := Build([]Record{{Open: 5, High: 5, Low: 5, Close: 5}}, Options{})
	if l.MaxPrice <= l.MinPrice {
		t.Fatalf("bounds = [%v, %v], want non-empty", l.MinPrice, l.MaxPrice)
	}
	w := l.Bars[0].Wick
	if math.IsNaN(w.Top) || math.Abs(w.Top-50) > tol || math.Abs(w.Bottom-50) > tol {
		t.Errorf("wick = %+v, want centered at 50", w)
	}
}

func TestBarGeometry(t *testing.T) {
	recs := []Record{
		{Date: "a", Open: 10, High: 14, Low: 9, Close: 13},
		{Date: "b", Open: 13, High: 13, Low: 10, Close: 11},
	}
	l := Build(recs, Options{DownColor: "#000000"})
	if l.BarWidth != 50 {
		t.Fatalf("BarWidth = %v, want 50", l.BarWidth)
	}
	b := l.Bars[1]
	if b.Body.X != 50 || b.Body.Width != 40 {
		t.Errorf("body x/width = %v/%v, want 50/40", b.Body.X, b.Body.Width)
	}
	if b.Wick.X != 70 {
		t.Errorf("Wick.X = %v, want 70", b.Wick.X)
	}
	if b.Up || b.Color.Hex() != "#000000" {
		t.Errorf("down bar Up=%v Color=%s, want false #000000", b.Up, b.Color)
	}
	if b.Body.Y < b.Wick.Top || b.Body.Bottom() > b.Wick.Bottom+tol {
		t.Errorf("body %+v escapes wick %+v", b.Body, b.Wick)
	}
}

func TestYLabels(t *testing.T) {
	l := Build([]Record{{Open: 0, High: 100, Low: 0, Close: 100}}, Options{})
	if len(l.YLabels) != 6 {
		t.Fatalf("len(YLabels) = %d, want 6", len(l.YLabels))
	}
	first, last := l.YLabels[0], l.YLabels[5]
	if first.Percent != 0 || first.Value != l.MaxPrice {
		t.Errorf("first label = %+v, want max at 0%%", first)
	}
	if last.Percent != 100 || math.Abs(last.Value-l.MinPrice) > tol {
		t.Errorf("last label = %+v, want min at 100%%", last)
	}
	if first.Text != "105.00" {
		t.Errorf("first label text = %q, want 105.00", first.Text)
	}
}

func TestXLabelStride(t *testing.T) {
	tests := []struct {
		n    int
		want []int
	}{
		{n: 3, want: []int{0, 1, 2}},
		{n: 10, want: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{n: 25, want: []int{0, 3, 6, 9, 12, 15, 18, 21, 24}},
	}
	for _, tt := range tests {
		recs := make([]Record, tt.n)
		for i := range recs {
			recs[i] = Record{Date: string(rune('A' + i)), Open: 1, High: 2, Low: 0, Close: 1}
		}
		l := Build(recs, Options{})
		if len(l.XLabels) != len(tt.want) {
			t.Errorf("n=%d: %d labels, want %d", tt.n, len(l.XLabels), len(tt.want))
			continue
		}
		for i, idx := range tt.want {
			if l.XLabels[i].Text != recs[idx].Date {
				t.Errorf("n=%d: label %d = %q, want %q", tt.n, i, l.XLabels[i].Text, recs[idx].Date)
			}
		}
	}
}

func TestVolumeBars(t *testing.T) {
	recs := []Record{
		{Open: 1, High: 2, Low: 0, Close: 1, Volume: 50},
		{Open: 1, High: 2, Low: 0, Close: 1, Volume: 200},
	}
	l := Build(recs, Options{})
	v0, v1 := l.Bars[0].Volume, l.Bars[1].Volume
	if v0 == nil || v1 == nil {
		t.Fatal("expected volume rects")
	}
	if v1.Height != 100 || v1.Y != 0 {
		t.Errorf("max volume rect = %+v, want full height", *v1)
	}
	if v0.Height != 25 || v0.Bottom() != 100 {
		t.Errorf("volume rect = %+v, want height 25 anchored at 100", *v0)
	}

	l = Build([]Record{{Open: 1, High: 2, Low: 0, Close: 1}}, Options{})
	if l.Bars[0].Volume != nil {
		t.Error("volume rect emitted without volume data")
	}
}

func TestEmpty(t *testing.T) {
	if l := Build(nil, Options{}); len(l.Bars) != 0 || len(l.YLabels) != 0 {
		t.Errorf("Build(nil) = %+v, want empty", l)
	}
}
