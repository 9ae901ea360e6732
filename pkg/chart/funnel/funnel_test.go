package funnel

import (
	"fmt"
	"testing"
)

func TestWidthsAndMargins(t *testing.T) {
	tests := []struct {
		name        string
		values      []float64
		wantWidths  []float64
		wantMargins []float64
	}{
		{
			name:        "halving",
			values:      []float64{100, 50, 25},
			wantWidths:  []float64{100, 50, 25},
			wantMargins: []float64{0, 25, 37.5},
		},
		{
			name:        "max in the middle",
			values:      []float64{20, 80, 40},
			wantWidths:  []float64{25, 100, 50},
			wantMargins: []float64{37.5, 0, 25},
		},
		{
			name:        "all zero",
			values:      []float64{0, 0},
			wantWidths:  []float64{0, 0},
			wantMargins: []float64{50, 50},
		},
		{
			name:        "negative clamps",
			values:      []float64{10, -5},
			wantWidths:  []float64{100, 0},
			wantMargins: []float64{0, 50},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]Item, len(tt.values))
			for i, v := range tt.values {
				items[i] = Item{Name: fmt.Sprint(i), Value: v}
			}
			l := Build(items, Options{})
			for i, s := range l.Segments {
				if s.WidthPercent != tt.wantWidths[i] {
					t.Errorf("segment %d width = %v, want %v", i, s.WidthPercent, tt.wantWidths[i])
				}
				if s.MarginLeft != tt.wantMargins[i] {
					t.Errorf("segment %d margin = %v, want %v", i, s.MarginLeft, tt.wantMargins[i])
				}
			}
		})
	}
}

func TestConnectors(t *testing.T) {
	l := Build([]Item{{Value: 100}, {Value: 50}, {Value: 25}}, Options{})
	if len(l.Connectors) != 2 {
		t.Fatalf("len(Connectors) = %d, want 2", len(l.Connectors))
	}
	c := l.Connectors[1]
	if c.From != 1 || c.WidthPercent != 50 || c.MarginLeft != 25 {
		t.Errorf("Connectors[1] = %+v, want {1 50 25}", c)
	}
}

func TestRectsStack(t *testing.T) {
	l := Build([]Item{{Value: 4, Color: "#112233"}, {Value: 2}, {Value: 1}, {Value: 1}}, Options{})
	for i, s := range l.Segments {
		if s.Rect.Y != float64(i)*25 || s.Rect.Height != 25 {
			t.Errorf("segment %d rect = %+v", i, s.Rect)
		}
		if s.Rect.X != s.MarginLeft || s.Rect.Width != s.WidthPercent {
			t.Errorf("segment %d rect %+v disagrees with width/margin", i, s.Rect)
		}
	}
	if got := l.Segments[0].Color.Hex(); got != "#112233" {
		t.Errorf("explicit color = %s", got)
	}
	if got := l.Segments[1].Color.Hex(); got != "#91cc75" {
		t.Errorf("palette color = %s, want #91cc75", got)
	}
}

func ExampleBuild() {
	l := Build([]Item{
		{Name: "visits", Value: 100},
		{Name: "signups", Value: 50},
		{Name: "orders", Value: 25},
	}, Options{})
	for _, s := range l.Segments {
		fmt.Printf("%s: width=%g margin=%g\n", s.Item.Name, s.WidthPercent, s.MarginLeft)
	}
	// Output:
	// visits: width=100 margin=0
	// signups: width=50 margin=25
	// orders: width=25 margin=37.5
}
