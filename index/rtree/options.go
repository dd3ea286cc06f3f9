package rtree

// DefaultNodeSize is the maximum number of entries per node when no
// WithNodeSize option is given.
const DefaultNodeSize = 16

const minNodeSize = 2

type options struct {
	nodeSize    int
	parallelism int
}

// Option configures Build.
type Option func(*options)

// WithNodeSize sets the maximum fan-out of every node. Values <= 0 select
// DefaultNodeSize; 1 is raised to 2.
func WithNodeSize(n int) Option {
	return func(o *options) {
		switch {
		case n <= 0:
			o.nodeSize = DefaultNodeSize
		case n < minNodeSize:
			o.nodeSize = minNodeSize
		default:
			o.nodeSize = n
		}
	}
}

// WithBuildParallelism bounds how many slabs are sorted concurrently while
// packing a level. Values <= 1 build sequentially.
func WithBuildParallelism(p int) Option {
	return func(o *options) {
		if p < 1 {
			p = 1
		}
		o.parallelism = p
	}
}

func newOptions(opts []Option) options {
	o := options{nodeSize: DefaultNodeSize, parallelism: 1}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
