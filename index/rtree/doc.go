// Package rtree implements a static R-tree over star positions. The tree is
// bulk-loaded with Sort-Tile-Recursive packing and answers nearest-neighbor
// queries with a best-first traversal that yields stars lazily in
// non-decreasing squared distance.
//
// A Tree is immutable once built and safe for concurrent queries.
package rtree
