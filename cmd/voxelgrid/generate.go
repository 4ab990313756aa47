package main

import (
	"fmt"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/google/uuid"
	"github.com/taylorrsallen/Luxana/chunkstore"
	"github.com/taylorrsallen/Luxana/terrain"
	"github.com/taylorrsallen/Luxana/voxel"
	"github.com/urfave/cli/v2"
)

var generateCommand = &cli.Command{
	Name:  "generate",
	Usage: "generate a world from noise and save it as a snapshot",
	Flags: []cli.Flag{
		dimsFlag,
		worldFlag,
		seqFlag,
		keyFlag,
		&cli.UintFlag{Name: "log2dim", Usage: "log2 of the world size in chunks per axis", Value: 3, EnvVars: []string{"VOXELGRID_LOG2DIM"}},
		&cli.UintFlag{Name: "seed", Usage: "noise seed", EnvVars: []string{"VOXELGRID_SEED"}},
		&cli.Float64Flag{Name: "scale", Value: float64(terrain.DefaultParams().Scale)},
		&cli.UintFlag{Name: "octaves", Value: uint(terrain.DefaultParams().Octaves)},
		&cli.Float64Flag{Name: "persistence", Value: float64(terrain.DefaultParams().Persistence)},
		&cli.Float64Flag{Name: "lacunarity", Value: float64(terrain.DefaultParams().Lacunarity)},
		&cli.Float64Flag{Name: "surface", Usage: "3D only: fraction of the world height the terrain may fill", Value: 0.5},
		&cli.IntFlag{Name: "workers", Usage: "chunk generation goroutines, 0 for no limit", EnvVars: []string{"VOXELGRID_WORKERS"}},
		&cli.BoolFlag{Name: "fail-if-exists", Usage: "refuse to overwrite an existing snapshot"},
	},
	Action: generate,
}

func generate(c *cli.Context) error {
	log := logger.Sugar.WithServiceName("voxelgrid")

	if n := c.Uint("log2dim"); n > voxel.MaxWorldLog2Dim {
		return fmt.Errorf("--log2dim %d: %w", n, voxel.ErrWorldTooLarge)
	}

	world := uuid.New()
	if c.IsSet(worldFlag.Name) {
		var err error
		if world, err = worldIDFlag(c); err != nil {
			return err
		}
	}

	opts := []chunkstore.Option{chunkstore.WithFailIfExists(c.Bool("fail-if-exists"))}
	if path := c.String(keyFlag.Name); path != "" {
		key, err := readPrivateKey(path)
		if err != nil {
			return err
		}
		signer, err := chunkstore.NewES256Signer(key)
		if err != nil {
			return err
		}
		opts = append(opts, chunkstore.WithSigner(signer, path))
	}
	saver, err := newSaver(c, log, opts...)
	if err != nil {
		return err
	}

	p := terrain.Params{
		Scale:       float32(c.Float64("scale")),
		Octaves:     uint32(c.Uint("octaves")),
		Persistence: float32(c.Float64("persistence")),
		Lacunarity:  float32(c.Float64("lacunarity")),
	}
	p.Validate()

	var (
		log2dim = uint8(c.Uint("log2dim"))
		seed    = uint32(c.Uint("seed"))
		seq     = uint32(c.Uint(seqFlag.Name))
		workers = c.Int("workers")
		chunks  int
	)
	rootOpts := []voxel.Option{voxel.WithLogger(log)}

	switch dims := c.Uint(dimsFlag.Name); dims {
	case 2:
		root, err := voxel.NewSparseRoot2d[uint8](log2dim, 0, rootOpts...)
		if err != nil {
			return err
		}
		if err := terrain.FillHeightmap(c.Context, root, seed, p, workers); err != nil {
			return err
		}
		if err := chunkstore.Save2d(c.Context, saver, world, seq, root); err != nil {
			return err
		}
		chunks = root.ChunkCount()
	case 3:
		root, err := voxel.NewSparseRoot3d[uint8](log2dim, 0, rootOpts...)
		if err != nil {
			return err
		}
		if err := terrain.FillDensity(c.Context, root, seed, p, float32(c.Float64("surface")), workers); err != nil {
			return err
		}
		if err := chunkstore.Save3d(c.Context, saver, world, seq, root); err != nil {
			return err
		}
		chunks = root.ChunkCount()
	default:
		return fmt.Errorf("--%s must be 2 or 3, got %d", dimsFlag.Name, dims)
	}

	fmt.Fprintf(c.App.Writer, "world %s seq %d: %d chunks\n", world, seq, chunks)
	return nil
}
