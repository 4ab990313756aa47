package chunkstore

import "errors"

var (
	ErrSnapshotNotFound = errors.New("chunkstore: snapshot not found")
	ErrSnapshotExists   = errors.New("chunkstore: snapshot already exists")
	ErrDimsMismatch     = errors.New("chunkstore: snapshot has the wrong number of dimensions")
	ErrBadValueCount    = errors.New("chunkstore: chunk value count does not match the leaf size")
	ErrUnknownCodec     = errors.New("chunkstore: unknown codec")
	ErrDuplicateChunk   = errors.New("chunkstore: snapshot holds the same chunk key twice")
	ErrBadPath          = errors.New("chunkstore: path does not match the snapshot schema")
	ErrSealVerifyFailed = errors.New("chunkstore: seal verification failed")
	ErrNoSigner         = errors.New("chunkstore: a signer is required to seal snapshots")
)
