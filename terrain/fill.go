package terrain

import (
	"context"

	"github.com/taylorrsallen/Luxana/voxel"
	"golang.org/x/sync/errgroup"
)

// FillHeightmap writes a height byte to every in-bounds cell of root. Chunks
// are generated concurrently by up to workers goroutines; workers <= 0 means
// no limit.
func FillHeightmap(ctx context.Context, root *voxel.SparseRoot2d[uint8], seed uint32, p Params, workers int) error {
	s := NewSampler(seed, p)
	half := root.HalfTotalDim()

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for cy := -half; cy < half; cy += voxel.Chunk2dDim {
		for cx := -half; cx < half; cx += voxel.Chunk2dDim {
			key := voxel.IVec2{X: cx, Y: cy}
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				fillHeightChunk(root, s, key)
				return nil
			})
		}
	}
	return g.Wait()
}

func fillHeightChunk(root *voxel.SparseRoot2d[uint8], s *Sampler, key voxel.IVec2) {
	for y := int32(0); y < voxel.Chunk2dDim; y++ {
		for x := int32(0); x < voxel.Chunk2dDim; x++ {
			c := key.Add(voxel.IVec2{X: x, Y: y})
			root.SetValueOn(c, HeightByte(s.Height(float32(c.X), float32(c.Y))))
		}
	}
}

// FillDensity turns the height field into solid ground. Each (x, z) column is
// filled from the world floor up to surface * height world cells, so surface
// scales the terrain relief against the world's vertical extent. Solid cells
// hold the column's height byte; chunks entirely above ground are never
// created.
func FillDensity(ctx context.Context, root *voxel.SparseRoot3d[uint8], seed uint32, p Params, surface float32, workers int) error {
	s := NewSampler(seed, p)
	half := root.HalfTotalDim()

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for cz := -half; cz < half; cz += voxel.Chunk3dDim {
		for cx := -half; cx < half; cx += voxel.Chunk3dDim {
			column := voxel.IVec2{X: cx, Y: cz}
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				fillDensityColumn(root, s, column, surface)
				return nil
			})
		}
	}
	return g.Wait()
}

func fillDensityColumn(root *voxel.SparseRoot3d[uint8], s *Sampler, column voxel.IVec2, surface float32) {
	half := root.HalfTotalDim()
	total := root.TotalDim()
	for z := column.Y; z < column.Y+voxel.Chunk3dDim; z++ {
		for x := column.X; x < column.X+voxel.Chunk3dDim; x++ {
			h := s.Height(float32(x), float32(z))
			top := SurfaceHeight(h, surface, total) - half
			for y := -half; y < top; y++ {
				root.SetValueOn(voxel.IVec3{X: x, Y: y, Z: z}, HeightByte(h))
			}
		}
	}
}

// HeightByte quantizes a [0, 1] noise value.
func HeightByte(h float32) uint8 {
	return uint8(h * 255)
}

// SurfaceHeight is the number of solid cells in a column of total cells.
func SurfaceHeight(h, surface float32, total int32) int32 {
	top := int32(h * surface * float32(total))
	return min(max(top, 0), total)
}
