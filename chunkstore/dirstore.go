package chunkstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/gofrs/flock"
)

const (
	lockFileName   = "LOCK"
	lockRetryDelay = 10 * time.Millisecond
)

// DirStore keeps objects as files below a root directory. Writers take an
// advisory lock on the root so concurrent processes sharing a directory do
// not interleave a check-then-write. The file lock is per process, so mu
// serializes writers within it.
type DirStore struct {
	log  logger.Logger
	root string

	mu   sync.Mutex
	lock *flock.Flock
}

// NewDirStore creates root if needed and returns a store rooted there.
func NewDirStore(log logger.Logger, root string) (*DirStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &DirStore{
		log:  log,
		root: root,
		lock: flock.New(filepath.Join(root, lockFileName)),
	}, nil
}

func (d *DirStore) Root() string { return d.root }

func (d *DirStore) path(name string) string {
	return filepath.Join(d.root, filepath.FromSlash(name))
}

// Put writes data under name. Writers in other processes are excluded by
// the store's lock file.
func (d *DirStore) Put(ctx context.Context, name string, data []byte, failIfExists bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	locked, err := d.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return err
	}
	if !locked {
		return fmt.Errorf("chunkstore: could not lock %s", d.root)
	}
	defer func() {
		if err := d.lock.Unlock(); err != nil && d.log != nil {
			d.log.Infof("dirstore: unlock %s: %v", d.root, err)
		}
	}()

	p := d.path(name)
	if failIfExists {
		if _, err := os.Stat(p); err == nil {
			return fmt.Errorf("%w: %s", ErrSnapshotExists, name)
		}
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}

	// write then rename so readers never see a partial object
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, p); err != nil {
		return err
	}
	if d.log != nil {
		d.log.Debugf("dirstore: wrote %s (%d bytes)", name, len(data))
	}
	return nil
}

// Get reads name, mapping a missing file to ErrSnapshotNotFound.
func (d *DirStore) Get(ctx context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(d.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, name)
	}
	return data, err
}
