package index

import "fmt"

// Kind names an index implementation.
type Kind string

const (
	KindRTree Kind = "rtree"
	KindBrute Kind = "brute"
)

// ParseKind validates an index name; the empty string selects KindRTree.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case "", KindRTree:
		return KindRTree, nil
	case KindBrute:
		return KindBrute, nil
	}
	return "", fmt.Errorf("index: unknown kind %q", s)
}
