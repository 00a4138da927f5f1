package layout

// Resolve maps a panel's ordinal index and declared position to a leaf name.
// A declared position that names a leaf wins; anything else (absent, unknown,
// or not part of this tree shape) falls back to the tree's fallback list by
// index. The result always names a leaf of t.
func (t *Tree) Resolve(index int, declared string) string {
	if t == nil {
		return RegionMain
	}
	if name := NormalizePosition(declared); name != "" && t.HasLeaf(name) {
		return name
	}
	n := len(t.fallback)
	if n == 0 {
		return RegionMain
	}
	i := index % n
	if i < 0 {
		i += n
	}
	return t.fallback[i]
}
