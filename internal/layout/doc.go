// Package layout turns the declared panel positions into a region tree and
// resolves each panel to a region of that tree.
//
// # Construction
//
// Build looks at the set of distinct declared positions once, at startup:
//
//	{}                      one panel  -> main
//	{p}                                -> p
//	{left, right}                      -> left | right
//	{top, a, b}                        -> top / (a | b)
//	{top, bottom, left, right}         -> top / middle(left | right) / bottom
//	anything else                      -> by panel count:
//	                                      1 -> main
//	                                      2 -> left | right
//	                                      3+ -> top / (left | right)
//
// Each rule also fixes the fallback list the resolver uses for panels whose
// position is missing or not a leaf of the chosen shape.
//
// # Resolution
//
// Resolve(index, declared) returns declared when it is a leaf, otherwise
// fallback[index mod len(fallback)]. Every name it returns is a leaf of the
// tree it was called on, for every tree Build can produce. When the declared
// positions only partially match a supported shape, the ordinal fallback can
// move a panel away from the region it asked for.
//
// # Geometry
//
// Rects and Sizes split a terminal area across the leaves by node ratio. The
// middle row of the four-way layout has ratio 2.
package layout
