package retained

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{"overlap", Rect{0, 0, 10, 5}, Rect{5, 2, 10, 10}, Rect{5, 2, 5, 3}},
		{"contained", Rect{0, 0, 10, 10}, Rect{2, 2, 3, 3}, Rect{2, 2, 3, 3}},
		{"disjoint", Rect{0, 0, 2, 2}, Rect{5, 5, 2, 2}, Rect{X: 0, Y: 0}},
		{"touching edges", Rect{0, 0, 2, 2}, Rect{2, 0, 2, 2}, Rect{X: 0, Y: 0}},
		{"negative origin", Rect{-3, -3, 5, 5}, Rect{0, 0, 10, 10}, Rect{0, 0, 2, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.a.Intersect(tt.b)); diff != "" {
				t.Errorf("Intersect() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{2, 3, 4, 2}
	tests := []struct {
		p    Point
		want bool
	}{
		{Point{2, 3}, true},
		{Point{5, 4}, true},
		{Point{6, 4}, false},
		{Point{5, 5}, false},
		{Point{1, 3}, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

// buildNested returns root -> mid -> leaf laid out at known offsets.
func buildNested(t *testing.T) (tree *Tree, root, mid, leaf *Control) {
	t.Helper()
	root = NewControl().SetName("root")
	mid = NewControl().SetName("mid")
	leaf = NewControl().SetName("leaf")
	if err := root.Attach(mid); err != nil {
		t.Fatal(err)
	}
	if err := mid.Attach(leaf); err != nil {
		t.Fatal(err)
	}
	tree = NewTree(DefaultTreeConfig())
	tree.Resize(Size{40, 20})
	if err := tree.SetRoot(root); err != nil {
		t.Fatal(err)
	}
	tree.UpdateLayout()
	// Place children by hand; the overlay policy would put them all at 0,0.
	mid.Arrange(Rect{3, 2, 20, 10})
	leaf.Arrange(Rect{4, 5, 5, 1})
	return tree, root, mid, leaf
}

func TestTranslatePoint(t *testing.T) {
	_, root, mid, leaf := buildNested(t)

	if got := TranslatePoint(leaf, Point{0, 0}, nil); got != (Point{7, 7}) {
		t.Errorf("leaf origin in screen = %v, want {7 7}", got)
	}
	if got := TranslatePoint(nil, Point{7, 7}, leaf); got != (Point{0, 0}) {
		t.Errorf("screen {7 7} in leaf = %v, want {0 0}", got)
	}
	if got := TranslatePoint(leaf, Point{1, 0}, mid); got != (Point{5, 5}) {
		t.Errorf("leaf {1 0} in mid = %v, want {5 5}", got)
	}
	if got := TranslatePoint(root, Point{2, 2}, root); got != (Point{2, 2}) {
		t.Errorf("identity translate = %v", got)
	}
}

func TestTranslatePointRoundTrip(t *testing.T) {
	_, root, mid, leaf := buildNested(t)
	controls := []*Control{nil, root, mid, leaf}
	points := []Point{{0, 0}, {3, 9}, {-4, 2}, {100, -7}}

	for _, a := range controls {
		for _, b := range controls {
			for _, p := range points {
				there := TranslatePoint(a, p, b)
				if back := TranslatePoint(b, there, a); back != p {
					t.Errorf("round trip %v via %v/%v = %v", p, a, b, back)
				}
			}
		}
	}
}

func TestScreenRect(t *testing.T) {
	_, _, _, leaf := buildNested(t)
	if diff := cmp.Diff(Rect{7, 7, 5, 1}, leaf.ScreenRect()); diff != "" {
		t.Errorf("ScreenRect() mismatch (-want +got):\n%s", diff)
	}
}
