package layout

import "testing"

func TestResolve_TopLeftRight(t *testing.T) {
	tree := Build([]string{"top", "left", "right"}, 3)

	cases := []struct {
		index    int
		declared string
		want     string
	}{
		{0, "top", "top"},
		{1, "left", "left"},
		{2, "right", "right"},
	}
	for _, c := range cases {
		if got := tree.Resolve(c.index, c.declared); got != c.want {
			t.Fatalf("Resolve(%d, %q) = %q, want %q", c.index, c.declared, got, c.want)
		}
	}
}

func TestResolve_NoPositionsTwoPanels(t *testing.T) {
	tree := Build([]string{"", ""}, 2)
	if got := tree.Resolve(0, ""); got != "left" {
		t.Fatalf("Resolve(0, none) = %q, want left", got)
	}
	if got := tree.Resolve(1, ""); got != "right" {
		t.Fatalf("Resolve(1, none) = %q, want right", got)
	}
}

func TestResolve_Fallbacks(t *testing.T) {
	tests := []struct {
		name      string
		positions []string
		panels    int
		index     int
		declared  string
		want      string
	}{
		{"unknown declared uses ordinal", []string{"left", "right"}, 2, 1, "sidebar", "right"},
		{"ordinal wraps", []string{"left", "right"}, 2, 4, "", "left"},
		{"negative index wraps", []string{"left", "right"}, 2, -1, "", "right"},
		{"top bottom relocates", []string{"top", "bottom"}, 2, 0, "top", "left"},
		{"declared is normalized", []string{"top", "left", "right"}, 3, 0, "  Top ", "top"},
		{"middle is not a leaf", []string{"top", "bottom", "left", "right"}, 4, 3, "middle", "bottom"},
		{"single region absorbs everything", []string{"top"}, 3, 2, "", "top"},
		{"main for lone panel", nil, 1, 0, "", "main"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := Build(tt.positions, tt.panels)
			if got := tree.Resolve(tt.index, tt.declared); got != tt.want {
				t.Fatalf("Resolve(%d, %q) = %q, want %q", tt.index, tt.declared, got, tt.want)
			}
		})
	}
}

func TestResolve_AlwaysLeafAndIdempotent(t *testing.T) {
	names := []string{"top", "bottom", "left", "right", "main", "middle", "sidebar"}
	declared := append([]string{""}, names...)
	for mask := 0; mask < 1<<len(names); mask++ {
		var positions []string
		for i, n := range names {
			if mask&(1<<i) != 0 {
				positions = append(positions, n)
			}
		}
		for panels := 0; panels <= 6; panels++ {
			tree := Build(positions, panels)
			for index := -2; index < 8; index++ {
				for _, d := range declared {
					got := tree.Resolve(index, d)
					if !tree.HasLeaf(got) {
						t.Fatalf("Build(%v, %d).Resolve(%d, %q) = %q, not a leaf of %v",
							positions, panels, index, d, got, tree.Leaves())
					}
					if again := tree.Resolve(index, d); again != got {
						t.Fatalf("Resolve(%d, %q) not idempotent: %q then %q", index, d, got, again)
					}
				}
			}
		}
	}
}

func TestResolve_NilTree(t *testing.T) {
	var tree *Tree
	if got := tree.Resolve(3, "top"); got != RegionMain {
		t.Fatalf("nil Resolve = %q, want %q", got, RegionMain)
	}
}
