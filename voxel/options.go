package voxel

import "github.com/datatrails/go-datatrails-common/logger"

type RootOptions struct {
	Log logger.Logger
}

// Option is a generic option type shared by the root constructors.
// Implementations type assert to their options record and ignore options that
// do not apply to them.
type Option func(any)

// WithLogger sets the logger a root reports dropped writes to.
func WithLogger(log logger.Logger) Option {
	return func(opts any) {
		if o, ok := opts.(*RootOptions); ok {
			o.Log = log
		}
	}
}

func newRootOptions(opts ...Option) RootOptions {
	var o RootOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func checkWorldLog2Dim(log2dim uint8) error {
	if log2dim > MaxWorldLog2Dim {
		return ErrWorldTooLarge
	}
	return nil
}
