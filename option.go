package btreeslab

// DefaultOrder is the Knuth order of a tree when none is configured.
// Each leaf holds at most DefaultOrder items; each internal node holds
// at most DefaultOrder children.
const DefaultOrder = 8

// Options configures tree behavior.
type Options struct {
	order    int // Knuth order of the tree. Must be at least 4.
	capacity int // Maximum number of live nodes. 0 means unbounded.
	logger   Logger
}

// DefaultOptions returns safe default configuration.
//
//goland:noinspection GoUnusedExportedFunction
func DefaultOptions() Options {
	return Options{
		order:    DefaultOrder,
		capacity: 0,
		logger:   DiscardLogger{},
	}
}

// Option configures tree options using the functional options pattern.
type Option func(*Options)

// WithOrder sets the Knuth order of the tree: the maximum number of
// children of an internal node, and the maximum number of items in a
// leaf. Panics if order is less than 4.
//
//goland:noinspection GoUnusedExportedFunction
func WithOrder(order int) Option {
	return func(opts *Options) {
		if order < 4 {
			panic(ErrOrderTooSmall)
		}
		opts.order = order
	}
}

// WithFixedCapacity backs the tree with a fixed-capacity arena holding at
// most n nodes. Once the bound is reached, insertions that would need a
// new node fail with ErrArenaFull and leave the tree untouched.
//
//goland:noinspection GoUnusedExportedFunction
func WithFixedCapacity(n int) Option {
	return func(opts *Options) {
		opts.capacity = n
	}
}

// WithLogger sets the logger used for structural events. The default
// discards everything.
//
//goland:noinspection GoUnusedExportedFunction
func WithLogger(l Logger) Option {
	return func(opts *Options) {
		opts.logger = l
	}
}
