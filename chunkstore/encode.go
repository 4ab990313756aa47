package chunkstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/taylorrsallen/Luxana/bitmask"
	"github.com/taylorrsallen/Luxana/voxel"
	"golang.org/x/sync/errgroup"
)

func bitmaskFromRecord(c *ChunkRecord) bitmask.Bitmask {
	return bitmask.FromWords(c.Mask)
}

// encodeValues must be called with the leaf read locked.
func encodeValues[T any](codec Codec, mask *bitmask.Bitmask, values []T) ([]uint64, []byte, error) {
	data, err := codec.Marshal(values)
	if err != nil {
		return nil, nil, err
	}
	words := mask.Clone()
	return words.Raw(), data, nil
}

// Encode2d captures every chunk of root. Chunks are encoded concurrently; the
// records are ordered by chunk key.
func Encode2d[T any](ctx context.Context, root *voxel.SparseRoot2d[T], codec Codec, worldID uuid.UUID) (*Snapshot, error) {
	bg, err := codec.Marshal(root.Background())
	if err != nil {
		return nil, err
	}
	s := &Snapshot{
		WorldID:    worldID.String(),
		Dims:       2,
		Log2Dim:    root.Log2Dim(),
		Background: bg,
		CreatedAt:  time.Now().UnixMilli(),
	}

	var keys []voxel.IVec2
	var leaves []*voxel.Leaf2d[T]
	root.ForEachChunk(func(key voxel.IVec2, leaf *voxel.Leaf2d[T]) bool {
		keys = append(keys, key)
		leaves = append(leaves, leaf)
		return true
	})

	s.Chunks = make([]ChunkRecord, len(keys))
	g, ctx := errgroup.WithContext(ctx)
	for i := range keys {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			leaf := leaves[i]
			leaf.RLock()
			mask, values, err := encodeValues(codec, leaf.Mask(), leaf.Data()[:])
			leaf.RUnlock()
			if err != nil {
				return fmt.Errorf("chunk %v: %w", keys[i], err)
			}
			s.Chunks[i] = ChunkRecord{Key: [3]int32{keys[i].X, keys[i].Y, 0}, Mask: mask, Values: values}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return s, nil
}

// Decode2d rebuilds a sparse root from a 2D snapshot.
func Decode2d[T any](ctx context.Context, s *Snapshot, codec Codec, opts ...voxel.Option) (*voxel.SparseRoot2d[T], error) {
	if s.Dims != 2 {
		return nil, fmt.Errorf("%w: want 2, have %d", ErrDimsMismatch, s.Dims)
	}
	var bg T
	if err := codec.Unmarshal(s.Background, &bg); err != nil {
		return nil, err
	}
	root, err := voxel.NewSparseRoot2d[T](s.Log2Dim, bg, opts...)
	if err != nil {
		return nil, err
	}

	if err := checkUniqueKeys(s.Chunks); err != nil {
		return nil, err
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := range s.Chunks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec := &s.Chunks[i]
			var data [voxel.Chunk2dSize]T
			if err := decodeValues(codec, rec, data[:]); err != nil {
				return err
			}
			leaf, err := voxel.NewLeaf2dFrom(&data, bitmaskFromRecord(rec))
			if err != nil {
				return err
			}
			return root.InsertChunk(voxel.IVec2{X: rec.Key[0], Y: rec.Key[1]}, leaf)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return root, nil
}

func Encode3d[T any](ctx context.Context, root *voxel.SparseRoot3d[T], codec Codec, worldID uuid.UUID) (*Snapshot, error) {
	bg, err := codec.Marshal(root.Background())
	if err != nil {
		return nil, err
	}
	s := &Snapshot{
		WorldID:    worldID.String(),
		Dims:       3,
		Log2Dim:    root.Log2Dim(),
		Background: bg,
		CreatedAt:  time.Now().UnixMilli(),
	}

	var keys []voxel.IVec3
	var leaves []*voxel.Leaf3d[T]
	root.ForEachChunk(func(key voxel.IVec3, leaf *voxel.Leaf3d[T]) bool {
		keys = append(keys, key)
		leaves = append(leaves, leaf)
		return true
	})

	s.Chunks = make([]ChunkRecord, len(keys))
	g, ctx := errgroup.WithContext(ctx)
	for i := range keys {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			leaf := leaves[i]
			leaf.RLock()
			mask, values, err := encodeValues(codec, leaf.Mask(), leaf.Data()[:])
			leaf.RUnlock()
			if err != nil {
				return fmt.Errorf("chunk %v: %w", keys[i], err)
			}
			s.Chunks[i] = ChunkRecord{Key: [3]int32{keys[i].X, keys[i].Y, keys[i].Z}, Mask: mask, Values: values}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return s, nil
}

func Decode3d[T any](ctx context.Context, s *Snapshot, codec Codec, opts ...voxel.Option) (*voxel.SparseRoot3d[T], error) {
	if s.Dims != 3 {
		return nil, fmt.Errorf("%w: want 3, have %d", ErrDimsMismatch, s.Dims)
	}
	var bg T
	if err := codec.Unmarshal(s.Background, &bg); err != nil {
		return nil, err
	}
	root, err := voxel.NewSparseRoot3d[T](s.Log2Dim, bg, opts...)
	if err != nil {
		return nil, err
	}

	if err := checkUniqueKeys(s.Chunks); err != nil {
		return nil, err
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := range s.Chunks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec := &s.Chunks[i]
			var data [voxel.Chunk3dSize]T
			if err := decodeValues(codec, rec, data[:]); err != nil {
				return err
			}
			leaf, err := voxel.NewLeaf3dFrom(&data, bitmaskFromRecord(rec))
			if err != nil {
				return err
			}
			return root.InsertChunk(voxel.IVec3{X: rec.Key[0], Y: rec.Key[1], Z: rec.Key[2]}, leaf)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return root, nil
}

// checkUniqueKeys rejects snapshots that would restore two records into the
// same chunk.
func checkUniqueKeys(chunks []ChunkRecord) error {
	seen := make(map[[3]int32]struct{}, len(chunks))
	for i := range chunks {
		if _, ok := seen[chunks[i].Key]; ok {
			return fmt.Errorf("%w: %v", ErrDuplicateChunk, chunks[i].Key)
		}
		seen[chunks[i].Key] = struct{}{}
	}
	return nil
}

func decodeValues[T any](codec Codec, rec *ChunkRecord, dst []T) error {
	var values []T
	if err := codec.Unmarshal(rec.Values, &values); err != nil {
		return fmt.Errorf("chunk %v: %w", rec.Key, err)
	}
	if len(values) != len(dst) {
		return fmt.Errorf("%w: chunk %v has %d, want %d", ErrBadValueCount, rec.Key, len(values), len(dst))
	}
	copy(dst, values)
	return nil
}
