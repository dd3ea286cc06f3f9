// Package index defines the contract shared by the spatial indexes in this
// module: build once from a star catalog, then answer lazy nearest-neighbor
// queries ordered by squared Euclidean distance. Implementations include an
// STR bulk-loaded R-tree and a brute-force baseline.
package index
