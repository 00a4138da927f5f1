package layout

import (
	"sort"
	"strings"
)

// Well-known region names.
const (
	RegionMain   = "main"
	RegionTop    = "top"
	RegionBottom = "bottom"
	RegionLeft   = "left"
	RegionRight  = "right"
	RegionMiddle = "middle"
)

// Axis is the direction a split node lays out its children.
type Axis int

const (
	// AxisHorizontal places children side by side.
	AxisHorizontal Axis = iota
	// AxisVertical stacks children top to bottom.
	AxisVertical
)

func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// Kind records which construction rule produced a tree.
type Kind int

const (
	KindSingle Kind = iota
	KindLeftRight
	KindTopPair
	KindFourWay
	KindCountDefault
)

func (k Kind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindLeftRight:
		return "left-right"
	case KindTopPair:
		return "top-pair"
	case KindFourWay:
		return "four-way"
	case KindCountDefault:
		return "count-default"
	default:
		return "unknown"
	}
}

// Node is one region. Leaves carry content; split nodes only carry children.
type Node struct {
	Name     string
	Axis     Axis
	Ratio    int
	Children []*Node
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return n != nil && len(n.Children) == 0
}

// Tree is the region layout derived from the declared panel positions. It is
// built once per dashboard run and never mutated afterwards.
type Tree struct {
	root     *Node
	kind     Kind
	leaves   []string
	index    map[string]*Node
	fallback []string
}

// Build derives a tree from the declared positions of every panel. Positions
// are treated as a set: order and repetition do not change the result.
// panelCount is the total number of panels, including those without a
// position.
func Build(positions []string, panelCount int) *Tree {
	set := distinct(positions)

	switch {
	case len(set) == 0 && panelCount <= 1:
		return newTree(KindSingle, leaf(RegionMain), []string{RegionMain})
	case len(set) == 1:
		return newTree(KindSingle, leaf(set[0]), []string{set[0]})
	case sameSet(set, RegionLeft, RegionRight):
		return newTree(KindLeftRight, leftRight(), []string{RegionLeft, RegionRight})
	case len(set) == 3 && contains(set, RegionTop):
		rest := without(set, RegionTop)
		root := split(AxisVertical,
			leaf(RegionTop),
			split(AxisHorizontal, leaf(rest[0]), leaf(rest[1])),
		)
		return newTree(KindTopPair, root, []string{RegionTop, rest[0], rest[1]})
	case sameSet(set, RegionTop, RegionBottom, RegionLeft, RegionRight):
		middle := leftRight()
		middle.Name = RegionMiddle
		middle.Ratio = 2
		root := split(AxisVertical, leaf(RegionTop), middle, leaf(RegionBottom))
		return newTree(KindFourWay, root, []string{RegionTop, RegionLeft, RegionRight, RegionBottom})
	default:
		return countDefault(panelCount)
	}
}

func countDefault(panelCount int) *Tree {
	switch {
	case panelCount <= 1:
		return newTree(KindCountDefault, leaf(RegionMain), []string{RegionMain})
	case panelCount == 2:
		return newTree(KindCountDefault, leftRight(), []string{RegionLeft, RegionRight})
	default:
		root := split(AxisVertical, leaf(RegionTop), leftRight())
		return newTree(KindCountDefault, root, []string{RegionTop, RegionLeft, RegionRight})
	}
}

func newTree(kind Kind, root *Node, fallback []string) *Tree {
	t := &Tree{
		root:     root,
		kind:     kind,
		index:    make(map[string]*Node),
		fallback: fallback,
	}
	t.collect(root)
	return t
}

func (t *Tree) collect(n *Node) {
	if n == nil {
		return
	}
	if n.IsLeaf() {
		t.leaves = append(t.leaves, n.Name)
		t.index[n.Name] = n
		return
	}
	for _, child := range n.Children {
		t.collect(child)
	}
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	if t == nil {
		return nil
	}
	return t.root
}

// Kind returns the construction rule that produced the tree.
func (t *Tree) Kind() Kind {
	if t == nil {
		return KindSingle
	}
	return t.kind
}

// Leaves returns the leaf names in traversal order.
func (t *Tree) Leaves() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.leaves))
	copy(out, t.leaves)
	return out
}

// HasLeaf reports whether name is an addressable leaf.
func (t *Tree) HasLeaf(name string) bool {
	if t == nil {
		return false
	}
	_, ok := t.index[name]
	return ok
}

// Leaf returns the leaf node with the given name.
func (t *Tree) Leaf(name string) *Node {
	if t == nil {
		return nil
	}
	return t.index[name]
}

// FirstLeaf returns the first leaf in traversal order.
func (t *Tree) FirstLeaf() string {
	if t == nil || len(t.leaves) == 0 {
		return RegionMain
	}
	return t.leaves[0]
}

// Fallback returns the ordered region list used for panels whose position
// cannot be honored.
func (t *Tree) Fallback() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.fallback))
	copy(out, t.fallback)
	return out
}

func leaf(name string) *Node {
	return &Node{Name: name, Ratio: 1}
}

func split(axis Axis, children ...*Node) *Node {
	return &Node{Axis: axis, Ratio: 1, Children: children}
}

func leftRight() *Node {
	return split(AxisHorizontal, leaf(RegionLeft), leaf(RegionRight))
}

// NormalizePosition trims and lower-cases a declared position.
func NormalizePosition(position string) string {
	return strings.ToLower(strings.TrimSpace(position))
}

// distinct returns the normalized, non-empty positions in canonical order.
func distinct(positions []string) []string {
	seen := make(map[string]struct{}, len(positions))
	out := make([]string, 0, len(positions))
	for _, p := range positions {
		p = NormalizePosition(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := rank(out[i]), rank(out[j])
		if ri != rj {
			return ri < rj
		}
		return out[i] < out[j]
	})
	return out
}

var canonicalRank = map[string]int{
	RegionTop:    0,
	RegionLeft:   1,
	RegionMain:   2,
	RegionMiddle: 3,
	RegionRight:  4,
	RegionBottom: 5,
}

func rank(name string) int {
	if r, ok := canonicalRank[name]; ok {
		return r
	}
	return len(canonicalRank)
}

func sameSet(set []string, names ...string) bool {
	if len(set) != len(names) {
		return false
	}
	for _, n := range names {
		if !contains(set, n) {
			return false
		}
	}
	return true
}

func contains(set []string, name string) bool {
	for _, s := range set {
		if s == name {
			return true
		}
	}
	return false
}

func without(set []string, name string) []string {
	out := make([]string, 0, len(set))
	for _, s := range set {
		if s != name {
			out = append(out, s)
		}
	}
	return out
}
