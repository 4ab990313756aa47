package chunkstore

import (
	"context"
	"errors"
	"fmt"
	"io"

	azStorageBlob "github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/datatrails/go-datatrails-common/azblob"
	"github.com/datatrails/go-datatrails-common/logger"
)

const (
	azblobBlobNotFound = "BlobNotFound"
	azblobBlobExists   = "BlobAlreadyExists"
	azblobCondNotMet   = "ConditionNotMet"
)

// BlobClient is the subset of the azblob storer used to persist snapshots.
type BlobClient interface {
	Put(ctx context.Context, identity string, source io.ReadSeekCloser, opts ...azblob.Option) (*azblob.WriteResponse, error)
	Reader(ctx context.Context, identity string, opts ...azblob.Option) (*azblob.ReaderResponse, error)
}

// BlobStore keeps snapshots in an azure blob container.
type BlobStore struct {
	log    logger.Logger
	client BlobClient
}

// NewBlobStore wraps an azure blob client.
func NewBlobStore(log logger.Logger, client BlobClient) *BlobStore {
	return &BlobStore{log: log, client: client}
}

// Put uploads data. With failIfExists the upload is conditional on the blob
// being absent.
func (b *BlobStore) Put(ctx context.Context, name string, data []byte, failIfExists bool) error {
	var opts []azblob.Option
	if failIfExists {
		// fail without modifying if a blob matches any etag
		opts = append(opts, azblob.WithEtagNoneMatch("*"))
	}
	_, err := b.client.Put(ctx, name, azblob.NewBytesReaderCloser(data), opts...)
	if err != nil {
		return WrapBlobExists(err)
	}
	if b.log != nil {
		b.log.Debugf("blobstore: wrote %s (%d bytes)", name, len(data))
	}
	return nil
}

func (b *BlobStore) Get(ctx context.Context, name string) ([]byte, error) {
	rr, err := b.client.Reader(ctx, name)
	if err != nil {
		return nil, WrapBlobNotFound(err)
	}
	if closer, ok := rr.Reader.(io.Closer); ok {
		defer closer.Close()
	}
	return io.ReadAll(rr.Reader)
}

// AsStorageError unwraps err to an azure StorageError if it is one.
func AsStorageError(err error) (azStorageBlob.StorageError, bool) {
	serr := &azStorageBlob.StorageError{}
	//nolint
	ierr, ok := err.(*azStorageBlob.InternalError)
	if ierr == nil || !ok {
		return azStorageBlob.StorageError{}, false
	}
	if !ierr.As(&serr) {
		return azStorageBlob.StorageError{}, false
	}
	return *serr, true
}

// WrapBlobNotFound translates the azure sdk blob not found error to
// ErrSnapshotNotFound. Any other err, including nil, is returned as is.
func WrapBlobNotFound(err error) error {
	if err == nil || errors.Is(err, ErrSnapshotNotFound) {
		return err
	}
	serr, ok := AsStorageError(err)
	if !ok || serr.ErrorCode != azblobBlobNotFound {
		return err
	}
	return fmt.Errorf("%s: %w", err.Error(), ErrSnapshotNotFound)
}

// WrapBlobExists translates the conditional create failures to
// ErrSnapshotExists.
func WrapBlobExists(err error) error {
	if err == nil || errors.Is(err, ErrSnapshotExists) {
		return err
	}
	serr, ok := AsStorageError(err)
	if !ok {
		return err
	}
	switch serr.ErrorCode {
	case azblobBlobExists, azblobCondNotMet:
		return fmt.Errorf("%s: %w", err.Error(), ErrSnapshotExists)
	}
	return err
}

func IsSnapshotNotFound(err error) bool {
	return errors.Is(WrapBlobNotFound(err), ErrSnapshotNotFound)
}
