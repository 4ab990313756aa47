package chunkstore

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/taylorrsallen/Luxana/voxel"
)

// Saver persists sparse roots as numbered snapshots of a world.
type Saver struct {
	Log   logger.Logger
	Store Store
	Opts  SaverOptions
}

// NewSaver defaults to the CBOR codec when none is given.
func NewSaver(log logger.Logger, store Store, opts ...Option) (*Saver, error) {
	s := &Saver{Log: log, Store: store}
	for _, opt := range opts {
		opt(&s.Opts)
	}
	if s.Opts.Codec == nil {
		codec, err := NewCBORCodec()
		if err != nil {
			return nil, err
		}
		s.Opts.Codec = codec
	}
	if s.Opts.SealCodec == nil && (s.Opts.Signer != nil || s.Opts.COSEVerifier != nil) {
		codec, err := NewSealCodec()
		if err != nil {
			return nil, err
		}
		s.Opts.SealCodec = &codec
	}
	return s, nil
}

func (s *Saver) Codec() Codec { return s.Opts.Codec }

// Save2d encodes root and writes it as snapshot seq of worldID, sealing it
// when the saver has a signer.
func Save2d[T any](ctx context.Context, s *Saver, worldID uuid.UUID, seq uint32, root *voxel.SparseRoot2d[T]) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "chunkstore.Save2d")
	defer span.Finish()

	snap, err := Encode2d(ctx, root, s.Opts.Codec, worldID)
	if err != nil {
		return err
	}
	return s.put(ctx, worldID, seq, snap)
}

func Save3d[T any](ctx context.Context, s *Saver, worldID uuid.UUID, seq uint32, root *voxel.SparseRoot3d[T]) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "chunkstore.Save3d")
	defer span.Finish()

	snap, err := Encode3d(ctx, root, s.Opts.Codec, worldID)
	if err != nil {
		return err
	}
	return s.put(ctx, worldID, seq, snap)
}

// Load2d reads snapshot seq of worldID back into a new sparse root.
func Load2d[T any](ctx context.Context, s *Saver, worldID uuid.UUID, seq uint32, opts ...voxel.Option) (*voxel.SparseRoot2d[T], error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "chunkstore.Load2d")
	defer span.Finish()

	snap, err := s.Snapshot(ctx, worldID, seq)
	if err != nil {
		return nil, err
	}
	return Decode2d[T](ctx, snap, s.Opts.Codec, opts...)
}

func Load3d[T any](ctx context.Context, s *Saver, worldID uuid.UUID, seq uint32, opts ...voxel.Option) (*voxel.SparseRoot3d[T], error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "chunkstore.Load3d")
	defer span.Finish()

	snap, err := s.Snapshot(ctx, worldID, seq)
	if err != nil {
		return nil, err
	}
	return Decode3d[T](ctx, snap, s.Opts.Codec, opts...)
}

// put seals before it writes anything, so a signing failure leaves no
// snapshot behind. The seal is written after the snapshot; if that second
// write fails the snapshot is present but unsealed and Verify reports it.
func (s *Saver) put(ctx context.Context, worldID uuid.UUID, seq uint32, snap *Snapshot) error {
	data, err := s.Opts.Codec.Marshal(snap)
	if err != nil {
		return err
	}
	path := SnapshotPath(worldID, seq)

	var seal []byte
	if s.Opts.Signer != nil {
		digest := sha256.Sum256(data)
		seal, err = NewSealer(s.Opts.KeyID, *s.Opts.SealCodec, s.Opts.Signer).Seal(Manifest{
			WorldID:    snap.WorldID,
			Seq:        seq,
			Dims:       snap.Dims,
			Codec:      s.Opts.Codec.Name(),
			ChunkCount: uint32(len(snap.Chunks)),
			Digest:     digest[:],
			Timestamp:  time.Now().UnixMilli(),
		})
		if err != nil {
			return fmt.Errorf("seal %s: %w", path, err)
		}
	}

	if err := s.Store.Put(ctx, path, data, s.Opts.FailIfExists); err != nil {
		return err
	}
	s.Log.Infof("saved %s: %d chunks, %d bytes, codec %s", path, len(snap.Chunks), len(data), s.Opts.Codec.Name())

	if seal == nil {
		return nil
	}
	return s.Store.Put(ctx, SealPath(worldID, seq), seal, s.Opts.FailIfExists)
}

// Snapshot reads and decodes the snapshot envelope. When a verifier is
// configured the seal is checked first and a missing seal is an error.
func (s *Saver) Snapshot(ctx context.Context, worldID uuid.UUID, seq uint32) (*Snapshot, error) {
	path := SnapshotPath(worldID, seq)
	data, err := s.Store.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	if s.Opts.COSEVerifier != nil {
		if _, err := s.verify(ctx, worldID, seq, data); err != nil {
			return nil, err
		}
	}
	var snap Snapshot
	if err := s.Opts.Codec.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if snap.WorldID != worldID.String() {
		return nil, fmt.Errorf("%w: %s holds world %s", ErrBadPath, path, snap.WorldID)
	}
	return &snap, nil
}

// Verify checks the seal of a stored snapshot and returns its manifest.
func (s *Saver) Verify(ctx context.Context, worldID uuid.UUID, seq uint32) (Manifest, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "chunkstore.Verify")
	defer span.Finish()

	if s.Opts.COSEVerifier == nil {
		return Manifest{}, fmt.Errorf("%w: no verifier configured", ErrSealVerifyFailed)
	}
	data, err := s.Store.Get(ctx, SnapshotPath(worldID, seq))
	if err != nil {
		return Manifest{}, err
	}
	return s.verify(ctx, worldID, seq, data)
}

func (s *Saver) verify(ctx context.Context, worldID uuid.UUID, seq uint32, data []byte) (Manifest, error) {
	seal, err := s.Store.Get(ctx, SealPath(worldID, seq))
	if err != nil {
		return Manifest{}, err
	}
	m, err := VerifySeal(*s.Opts.SealCodec, s.Opts.COSEVerifier, seal, data)
	if err != nil {
		return Manifest{}, err
	}
	if m.WorldID != worldID.String() || m.Seq != seq {
		return Manifest{}, fmt.Errorf("%w: seal is for %s/%d", ErrSealVerifyFailed, m.WorldID, m.Seq)
	}
	return m, nil
}
