package layout

// Rect is a terminal rectangle in cells.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Empty reports whether the rectangle has no drawable area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Rects splits a width x height area across the leaves of the tree.
func (t *Tree) Rects(width, height int) map[string]Rect {
	out := make(map[string]Rect)
	if t == nil || t.root == nil {
		return out
	}
	rectsForNode(t.root, Rect{W: width, H: height}, out)
	return out
}

func rectsForNode(node *Node, rect Rect, out map[string]Rect) {
	if node == nil || rect.Empty() {
		return
	}
	if node.IsLeaf() {
		out[node.Name] = rect
		return
	}
	if node.Axis == AxisHorizontal {
		sizes := Sizes(node.Children, rect.W)
		x := rect.X
		for i, child := range node.Children {
			rectsForNode(child, Rect{X: x, Y: rect.Y, W: sizes[i], H: rect.H}, out)
			x += sizes[i]
		}
		return
	}
	sizes := Sizes(node.Children, rect.H)
	y := rect.Y
	for i, child := range node.Children {
		rectsForNode(child, Rect{X: rect.X, Y: y, W: rect.W, H: sizes[i]}, out)
		y += sizes[i]
	}
}

// Sizes distributes total cells across children by ratio. Rounding slack goes
// to the last child so the sizes always sum to total.
func Sizes(children []*Node, total int) []int {
	count := len(children)
	sizes := make([]int, count)
	if count == 0 || total <= 0 {
		return sizes
	}
	sum := 0
	for i, child := range children {
		if child == nil || child.Ratio <= 0 {
			sizes[i] = 1
		} else {
			sizes[i] = child.Ratio
		}
		sum += sizes[i]
	}
	acc := 0
	for i := range sizes {
		sizes[i] = sizes[i] * total / sum
		acc += sizes[i]
	}
	sizes[count-1] += total - acc
	return sizes
}
