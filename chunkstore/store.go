package chunkstore

import "context"

// Store is the minimal object store the Saver needs. Names are the relative
// paths produced by SnapshotPath and SealPath.
type Store interface {
	// Put writes data under name. When failIfExists is set an existing object
	// is left untouched and ErrSnapshotExists is returned.
	Put(ctx context.Context, name string, data []byte, failIfExists bool) error

	// Get returns the object contents or an error wrapping ErrSnapshotNotFound.
	Get(ctx context.Context, name string) ([]byte, error)
}
